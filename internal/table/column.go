package table

import (
	"strconv"
)

// Kind is the storage type of a column.
type Kind int

const (
	String Kind = iota
	Float
	Int
)

func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Float:
		return "float"
	case Int:
		return "int"
	}
	return "unknown"
}

// Column is a named, nullable, typed vector. Exactly one of the value slices
// is populated, matching Kind; valid[i] is false for null cells.
type Column struct {
	Name string
	Kind Kind

	strs   []string
	floats []float64
	ints   []int64
	valid  []bool
}

// NewString builds a text column. A nil valid slice marks every cell non-null.
func NewString(name string, vals []string, valid []bool) *Column {
	return &Column{Name: name, Kind: String, strs: vals, valid: fillValid(valid, len(vals))}
}

// NewFloat builds a float64 column. A nil valid slice marks every cell non-null.
func NewFloat(name string, vals []float64, valid []bool) *Column {
	return &Column{Name: name, Kind: Float, floats: vals, valid: fillValid(valid, len(vals))}
}

// NewInt builds an int64 column. A nil valid slice marks every cell non-null.
func NewInt(name string, vals []int64, valid []bool) *Column {
	return &Column{Name: name, Kind: Int, ints: vals, valid: fillValid(valid, len(vals))}
}

func fillValid(valid []bool, n int) []bool {
	if valid != nil {
		return valid
	}
	valid = make([]bool, n)
	for i := range valid {
		valid[i] = true
	}
	return valid
}

// Len returns the number of cells.
func (c *Column) Len() int {
	return len(c.valid)
}

// IsNull reports whether cell i is null.
func (c *Column) IsNull(i int) bool {
	return !c.valid[i]
}

// Str returns cell i of a String column.
func (c *Column) Str(i int) (string, bool) {
	if c.Kind != String || !c.valid[i] {
		return "", false
	}
	return c.strs[i], true
}

// Float returns cell i as a float64. Int cells are widened; String cells
// never convert.
func (c *Column) Float(i int) (float64, bool) {
	if !c.valid[i] {
		return 0, false
	}
	switch c.Kind {
	case Float:
		return c.floats[i], true
	case Int:
		return float64(c.ints[i]), true
	}
	return 0, false
}

// Int returns cell i as an int64. Float cells are truncated toward zero.
func (c *Column) Int(i int) (int64, bool) {
	if !c.valid[i] {
		return 0, false
	}
	switch c.Kind {
	case Int:
		return c.ints[i], true
	case Float:
		return int64(c.floats[i]), true
	}
	return 0, false
}

// Format renders cell i as text. Null cells return ok=false.
func (c *Column) Format(i int) (string, bool) {
	if !c.valid[i] {
		return "", false
	}
	switch c.Kind {
	case Float:
		return strconv.FormatFloat(c.floats[i], 'g', -1, 64), true
	case Int:
		return strconv.FormatInt(c.ints[i], 10), true
	}
	return c.strs[i], true
}

// take returns a new column holding the cells at idx, in idx order.
func (c *Column) take(idx []int) *Column {
	out := &Column{Name: c.Name, Kind: c.Kind, valid: make([]bool, len(idx))}
	switch c.Kind {
	case String:
		out.strs = make([]string, len(idx))
	case Float:
		out.floats = make([]float64, len(idx))
	case Int:
		out.ints = make([]int64, len(idx))
	}
	for j, i := range idx {
		out.valid[j] = c.valid[i]
		switch c.Kind {
		case String:
			out.strs[j] = c.strs[i]
		case Float:
			out.floats[j] = c.floats[i]
		case Int:
			out.ints[j] = c.ints[i]
		}
	}
	return out
}
