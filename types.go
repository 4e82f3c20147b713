package partitionidentity

import "strings"

const (
	diskByDefaultRoot = "/dev/disk"
	diskByPrefix      = "by-"
)

// Identifier is the kind of identity a partition is addressed by.
type Identifier string

const (
	IdentifierByID        Identifier = "id"
	IdentifierByLabel     Identifier = "label"
	IdentifierByPartLabel Identifier = "partlabel"
	IdentifierByPartUUID  Identifier = "partuuid"
	IdentifierByPath      Identifier = "path"
	IdentifierByUUID      Identifier = "uuid"
)

// Identifiers returns every known Identifier, in a stable order.
func Identifiers() []Identifier {
	return []Identifier{
		IdentifierByID,
		IdentifierByLabel,
		IdentifierByPartLabel,
		IdentifierByPartUUID,
		IdentifierByPath,
		IdentifierByUUID,
	}
}

// Valid reports whether i is one of the known identifiers.
func (i Identifier) Valid() bool {
	switch i {
	case IdentifierByID, IdentifierByLabel, IdentifierByPartLabel,
		IdentifierByPartUUID, IdentifierByPath, IdentifierByUUID:
		return true
	}
	return false
}

// Token returns the lowercase name of the identifier, as used in /dev/disk/by-<token>.
func (i Identifier) Token() string {
	return string(i)
}

// Directory returns the backing directory under /dev/disk, or "" for
// IdentifierByPath, which is resolved by the path itself.
func (i Identifier) Directory() string {
	return i.directoryIn(diskByDefaultRoot)
}

func (i Identifier) directoryIn(root string) string {
	if i == IdentifierByPath || !i.Valid() {
		return ""
	}
	return root + "/" + diskByPrefix + i.Token()
}

// prefix is the text-form prefix, e.g. PARTUUID=.
func (i Identifier) prefix() string {
	return strings.ToUpper(i.Token()) + "="
}

// PartitionIdentity is a claim about a partition: the kind of identifier and its value.
// It does not hold the device path, which can change between calls; use DevicePath.
// Values are comparable with ==.
type PartitionIdentity struct {
	by    Identifier
	value string
}

func NewPartitionIdentity(by Identifier, value string) PartitionIdentity {
	return PartitionIdentity{by: by, value: value}
}

func NewID(value string) PartitionIdentity { return NewPartitionIdentity(IdentifierByID, value) }
func NewLabel(value string) PartitionIdentity { return NewPartitionIdentity(IdentifierByLabel, value) }
func NewPartLabel(value string) PartitionIdentity { return NewPartitionIdentity(IdentifierByPartLabel, value) }
func NewPartUUID(value string) PartitionIdentity { return NewPartitionIdentity(IdentifierByPartUUID, value) }
func NewPath(value string) PartitionIdentity { return NewPartitionIdentity(IdentifierByPath, value) }
func NewUUID(value string) PartitionIdentity { return NewPartitionIdentity(IdentifierByUUID, value) }

func (p PartitionIdentity) By() Identifier {
	return p.by
}

func (p PartitionIdentity) Value() string {
	return p.value
}

// IsZero reports whether p is the zero PartitionIdentity.
func (p PartitionIdentity) IsZero() bool {
	return p == PartitionIdentity{}
}

// String returns the text form: the bare path for IdentifierByPath, KIND=value otherwise.
func (p PartitionIdentity) String() string {
	if p.by == IdentifierByPath || p.by == "" {
		return p.value
	}
	return p.by.prefix() + p.value
}

// textPrefixed lists the identifiers that have a KIND= text form.
// Prefixes are matched at the start of the input, so LABEL= never matches PARTLABEL=x.
var textPrefixed = []Identifier{
	IdentifierByPartLabel,
	IdentifierByPartUUID,
	IdentifierByID,
	IdentifierByLabel,
	IdentifierByUUID,
}

// Parse reads the text form used by fstab and friends: a bare absolute path,
// or one of ID=, LABEL=, PARTLABEL=, PARTUUID=, UUID= followed by the value.
func Parse(text string) (PartitionIdentity, error) {
	if strings.HasPrefix(text, "/") {
		return NewPath(text), nil
	}
	for _, by := range textPrefixed {
		if value, ok := strings.CutPrefix(text, by.prefix()); ok {
			return NewPartitionIdentity(by, value), nil
		}
	}
	return PartitionIdentity{}, NewParseError(text)
}

func (p PartitionIdentity) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *PartitionIdentity) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
