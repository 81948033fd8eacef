// Package table is a small in-memory columnar dataset: named, equal-length,
// nullable columns with the handful of operations the classifier needs.
package table

import (
	"fmt"

	"github.com/gyeh/ptclass/internal/normalize"
)

// Table is an ordered set of equal-length columns.
type Table struct {
	cols  []*Column
	index map[string]int
	rows  int
}

// New builds a table from columns. All columns must have the same length and
// distinct names.
func New(cols ...*Column) (*Table, error) {
	t := &Table{index: make(map[string]int, len(cols))}
	for _, c := range cols {
		if err := t.Add(c); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// NumRows returns the row count.
func (t *Table) NumRows() int {
	return t.rows
}

// Names returns the column names in order.
func (t *Table) Names() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.Name
	}
	return names
}

// Has reports whether the named column exists.
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Missing returns the subset of names that are not columns of t, in the
// order given.
func (t *Table) Missing(names ...string) []string {
	var missing []string
	for _, n := range names {
		if !t.Has(n) {
			missing = append(missing, n)
		}
	}
	return missing
}

// Column returns the named column or nil.
func (t *Table) Column(name string) *Column {
	i, ok := t.index[name]
	if !ok {
		return nil
	}
	return t.cols[i]
}

// Columns returns the columns in order. The slice is shared.
func (t *Table) Columns() []*Column {
	return t.cols
}

// Add appends a column, or replaces an existing column of the same name in
// place. The first column added to an empty table fixes the row count.
func (t *Table) Add(c *Column) error {
	if len(t.cols) == 0 {
		t.rows = c.Len()
	}
	if c.Len() != t.rows {
		return fmt.Errorf("column %q has %d rows, table has %d", c.Name, c.Len(), t.rows)
	}
	if i, ok := t.index[c.Name]; ok {
		t.cols[i] = c
		return nil
	}
	t.index[c.Name] = len(t.cols)
	t.cols = append(t.cols, c)
	return nil
}

// Drop removes the named columns. Unknown names are ignored.
func (t *Table) Drop(names ...string) {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}
	kept := t.cols[:0]
	for _, c := range t.cols {
		if !drop[c.Name] {
			kept = append(kept, c)
		}
	}
	t.cols = kept
	t.reindex()
}

func (t *Table) reindex() {
	t.index = make(map[string]int, len(t.cols))
	for i, c := range t.cols {
		t.index[c.Name] = i
	}
}

// Clone returns a shallow copy: a new column list sharing column storage.
// Adding or dropping columns on the clone leaves t untouched.
func (t *Table) Clone() *Table {
	out := &Table{cols: append([]*Column(nil), t.cols...), rows: t.rows}
	out.reindex()
	return out
}

// Row returns the text rendering of row i, nil for null cells.
func (t *Table) Row(i int) []*string {
	row := make([]*string, len(t.cols))
	for j, c := range t.cols {
		if s, ok := c.Format(i); ok {
			row[j] = &s
		}
	}
	return row
}

// Dedup returns a table without exact duplicate rows, keeping the first
// occurrence of each, and the number of rows removed.
func (t *Table) Dedup() (*Table, int) {
	seen := make(map[[32]byte]struct{}, t.rows)
	keep := make([]int, 0, t.rows)
	for i := 0; i < t.rows; i++ {
		key := normalize.RowHash(t.Row(i)...)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keep = append(keep, i)
	}
	if len(keep) == t.rows {
		return t, 0
	}
	out := &Table{rows: len(keep), cols: make([]*Column, len(t.cols))}
	for j, c := range t.cols {
		out.cols[j] = c.take(keep)
	}
	out.reindex()
	return out, t.rows - len(keep)
}
