package partitionidentity

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

const DefaultFstabPath = "/etc/fstab"

// FstabEntry is one line of an fstab-format file.
type FstabEntry struct {
	Source     string
	MountPoint string
	Type       string
	Options    string
}

// Identity parses the source field, e.g. UUID=... or /dev/sda1.
// Pseudo filesystems such as "proc" or "tmpfs" return a *ParseError.
func (e FstabEntry) Identity() (PartitionIdentity, error) {
	return Parse(e.Source)
}

// ParseFstab reads fstab-format lines. Blank lines and # comments are skipped,
// fields are whitespace separated and may use octal escapes such as \040 for a space.
// Lines with fewer than two fields are an error.
func ParseFstab(r io.Reader) ([]FstabEntry, error) {
	var entries []FstabEntry
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("fstab line %d: expected at least 2 fields, got %d", lineNo, len(fields))
		}
		entry := FstabEntry{
			Source:     unescapeFstab(fields[0]),
			MountPoint: unescapeFstab(fields[1]),
		}
		if len(fields) > 2 {
			entry.Type = fields[2]
		}
		if len(fields) > 3 {
			entry.Options = fields[3]
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// unescapeFstab decodes \NNN octal escapes. Anything that is not a complete
// three digit octal escape is kept as is.
func unescapeFstab(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+3 < len(s) && isOctal(s[i+1]) && isOctal(s[i+2]) && isOctal(s[i+3]) {
			b.WriteByte((s[i+1]-'0')<<6 | (s[i+2]-'0')<<3 | (s[i+3] - '0'))
			i += 3
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isOctal(c byte) bool {
	return c >= '0' && c <= '7'
}
