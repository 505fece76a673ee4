package spatialout

import "fmt"

// Type is the primitive type of a table column.
type Type uint8

const (
	Uint8 Type = iota + 1
	Uint16
	Uint32
	Uint64
	Float32
	Utf8
)

var typeNames = map[Type]string{
	Uint8:   "uint8",
	Uint16:  "uint16",
	Uint32:  "uint32",
	Uint64:  "uint64",
	Float32: "float32",
	Utf8:    "utf8",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(%d)", uint8(t))
}

// Numeric reports whether values of t are numbers.
func (t Type) Numeric() bool {
	return t >= Uint8 && t <= Float32
}

// Field describes one column of a table.
type Field struct {
	Name     string
	Type     Type
	Nullable bool
}

// Schema is the ordered list of fields of a table. Names should be unique
// for downstream tools but this is not enforced.
type Schema []Field

// Names returns the field names in order.
func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, f := range s {
		names[i] = f.Name
	}
	return names
}
