package spatialout

import "strconv"

// Column is a homogeneous array of values with per-row validity.
type Column interface {
	Type() Type
	Len() int
	// Valid reports whether row i holds a value. A row that is not valid is null.
	Valid(i int) bool
	// AppendText appends the textual form of row i to dst. It must only be
	// called for valid rows.
	AppendText(dst []byte, i int) []byte
}

type (
	Uint8s   []uint8
	Uint16s  []uint16
	Uint32s  []uint32
	Uint64s  []uint64
	Float32s []float32
	Strings  []string
)

func (c Uint8s) Type() Type     { return Uint8 }
func (c Uint8s) Len() int       { return len(c) }
func (c Uint8s) Valid(int) bool { return true }
func (c Uint8s) AppendText(dst []byte, i int) []byte {
	return strconv.AppendUint(dst, uint64(c[i]), 10)
}

func (c Uint16s) Type() Type     { return Uint16 }
func (c Uint16s) Len() int       { return len(c) }
func (c Uint16s) Valid(int) bool { return true }
func (c Uint16s) AppendText(dst []byte, i int) []byte {
	return strconv.AppendUint(dst, uint64(c[i]), 10)
}

func (c Uint32s) Type() Type     { return Uint32 }
func (c Uint32s) Len() int       { return len(c) }
func (c Uint32s) Valid(int) bool { return true }
func (c Uint32s) AppendText(dst []byte, i int) []byte {
	return strconv.AppendUint(dst, uint64(c[i]), 10)
}

func (c Uint64s) Type() Type     { return Uint64 }
func (c Uint64s) Len() int       { return len(c) }
func (c Uint64s) Valid(int) bool { return true }
func (c Uint64s) AppendText(dst []byte, i int) []byte {
	return strconv.AppendUint(dst, c[i], 10)
}

func (c Float32s) Type() Type     { return Float32 }
func (c Float32s) Len() int       { return len(c) }
func (c Float32s) Valid(int) bool { return true }
func (c Float32s) AppendText(dst []byte, i int) []byte {
	return appendFloat32(dst, c[i])
}

func (c Strings) Type() Type     { return Utf8 }
func (c Strings) Len() int       { return len(c) }
func (c Strings) Valid(int) bool { return true }
func (c Strings) AppendText(dst []byte, i int) []byte {
	return append(dst, c[i]...)
}

// appendFloat32 writes the shortest decimal that parses back to the same float32.
func appendFloat32(dst []byte, v float32) []byte {
	return strconv.AppendFloat(dst, float64(v), 'g', -1, 32)
}

// masked overlays a validity mask on a column.
type masked struct {
	Column
	valid []bool
}

// WithValidity returns c with rows i where valid[i] is false marked null.
// A nil mask leaves every row valid. The mask must be as long as c.
func WithValidity(c Column, valid []bool) Column {
	if valid == nil {
		return c
	}
	return masked{Column: c, valid: valid}
}

func (m masked) Valid(i int) bool { return m.valid[i] }

// unmask returns the values and the validity mask of c. The mask is nil when
// every row is valid.
func unmask(c Column) (Column, []bool) {
	if m, ok := c.(masked); ok {
		return m.Column, m.valid
	}
	return c, nil
}

// Text renders row i of c, returning ok=false for a null row.
func Text(c Column, i int) (s string, ok bool) {
	if !c.Valid(i) {
		return "", false
	}
	return string(c.AppendText(nil, i)), true
}
