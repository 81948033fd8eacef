// Package tableio reads and writes tables as CSV or Parquet files.
package tableio

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gyeh/ptclass/internal/table"
)

// Kind is a file format. It is always chosen explicitly by the caller.
type Kind int

const (
	CSV Kind = iota
	Parquet
)

// ParseKind maps a format name to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return CSV, nil
	case "parquet":
		return Parquet, nil
	}
	return 0, fmt.Errorf("unknown file format %q (want csv or parquet)", s)
}

func (k Kind) String() string {
	if k == Parquet {
		return "parquet"
	}
	return "csv"
}

// OutputPath replaces the extension of path with "_out" plus the extension
// of k: data/contacts.csv → data/contacts_out.csv.
func OutputPath(path string, k Kind) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + "_out." + k.String()
}

// Read loads a whole file. textCols are read as text in addition to the
// timestamp and identifier columns.
func Read(k Kind, path string, textCols ...string) (*table.Table, error) {
	if k == Parquet {
		return ReadParquet(path, textCols...)
	}
	return ReadCSV(path, textCols...)
}

// Write stores t at path.
func Write(k Kind, path string, t *table.Table) error {
	if k == Parquet {
		return WriteParquet(path, t)
	}
	return WriteCSV(path, t)
}

// Info is the cheap-to-obtain shape of a file.
type Info struct {
	Columns []string
	Rows    int64
}

// Inspect reports a file's columns and row count without building a table.
func Inspect(k Kind, path string) (*Info, error) {
	if k == Parquet {
		return inspectParquet(path)
	}
	return inspectCSV(path)
}

// textSet merges the always-text columns with extra ones.
func textSet(extra []string) map[string]bool {
	set := make(map[string]bool)
	for _, c := range append(defaultTextColumns(), extra...) {
		set[c] = true
	}
	return set
}
