package partitionidentity

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownIdentifier   = errors.New("unknown partition identifier kind")
	ErrUnsupportedPlatform = errors.New("not supported on this platform")
)

// ParseError is returned when text is not a recognized identifier string.
type ParseError struct {
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("'%s' is not a valid partition identifier string", e.Input)
}

func NewParseError(input string) error {
	return &ParseError{
		Input: input,
	}
}

// DirectoryUnavailableError is returned when the by-<token> directory for an identifier
// cannot be read. The environment is expected to provide these directories.
type DirectoryUnavailableError struct {
	By  Identifier
	Dir string
	Err error
}

func (e *DirectoryUnavailableError) Error() string {
	return fmt.Sprintf("unable to read %s directory %s: %v", e.By, e.Dir, e.Err)
}

func (e *DirectoryUnavailableError) Unwrap() error {
	return e.Err
}

func NewDirectoryUnavailableError(by Identifier, dir string, err error) error {
	return &DirectoryUnavailableError{
		By:  by,
		Dir: dir,
		Err: err,
	}
}
