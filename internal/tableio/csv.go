package tableio

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gyeh/ptclass/internal/model"
	"github.com/gyeh/ptclass/internal/normalize"
	"github.com/gyeh/ptclass/internal/table"
)

func defaultTextColumns() []string {
	return model.TextColumns()
}

func openCSV(path string) (*os.File, *csv.Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}

	bufReader := bufio.NewReaderSize(file, 256*1024)

	// Skip UTF-8 BOM if present
	bom, err := bufReader.Peek(3)
	if err == nil && len(bom) >= 3 && bom[0] == 0xEF && bom[1] == 0xBB && bom[2] == 0xBF {
		bufReader.Discard(3)
	}

	reader := csv.NewReader(bufReader)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	return file, reader, nil
}

func readCSVHeader(r *csv.Reader) ([]string, error) {
	headers, err := r.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("read header row: empty file")
	}
	if err != nil {
		return nil, fmt.Errorf("read header row: %w", err)
	}
	seen := make(map[string]bool, len(headers))
	for i, h := range headers {
		h = normalize.NormalizeHeader(h)
		if seen[h] {
			return nil, fmt.Errorf("duplicate column %q", h)
		}
		seen[h] = true
		headers[i] = h
	}
	return headers, nil
}

// ReadCSV loads a CSV file with a single header row. Timestamp, identifier
// and textCols columns stay text, cell for cell. Every other column becomes
// Int when all its non-empty cells are integers or all are booleans (stored
// as 1/0), Float when they are all numbers, and String otherwise.
// Blank cells are null. Surrounding spaces are ignored for typing only.
func ReadCSV(path string, textCols ...string) (*table.Table, error) {
	file, reader, err := openCSV(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	headers, err := readCSVHeader(reader)
	if err != nil {
		return nil, err
	}

	cells := make([][]string, len(headers))
	valid := make([][]bool, len(headers))
	var rowNum int64 = 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		rowNum++
		if err != nil {
			return nil, fmt.Errorf("read csv row %d: %w", rowNum, err)
		}
		for j := range headers {
			var v string
			if j < len(record) {
				v = record[j]
			}
			cells[j] = append(cells[j], v)
			valid[j] = append(valid[j], strings.TrimSpace(v) != "")
		}
	}

	text := textSet(textCols)
	cols := make([]*table.Column, len(headers))
	for j, name := range headers {
		if text[name] {
			cols[j] = table.NewString(name, cells[j], valid[j])
			continue
		}
		cols[j] = inferColumn(name, cells[j], valid[j])
	}
	return table.New(cols...)
}

func inferColumn(name string, cells []string, valid []bool) *table.Column {
	if ints, ok := parseCells(cells, valid, func(s string) (int64, error) {
		return strconv.ParseInt(s, 10, 64)
	}); ok {
		return table.NewInt(name, ints, valid)
	}
	if ints, ok := parseCells(cells, valid, parseBoolInt); ok {
		return table.NewInt(name, ints, valid)
	}
	if floats, ok := parseCells(cells, valid, func(s string) (float64, error) {
		return strconv.ParseFloat(s, 64)
	}); ok {
		return table.NewFloat(name, floats, valid)
	}
	return table.NewString(name, cells, valid)
}

// parseCells applies parse to every valid cell, stopping at the first
// failure.
func parseCells[T any](cells []string, valid []bool, parse func(string) (T, error)) ([]T, bool) {
	out := make([]T, len(cells))
	for i, s := range cells {
		if !valid[i] {
			continue
		}
		v, err := parse(strings.TrimSpace(s))
		if err != nil {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

func parseBoolInt(s string) (int64, error) {
	b, err := strconv.ParseBool(s)
	if err != nil || !b {
		return 0, err
	}
	return 1, nil
}

func inspectCSV(path string) (*Info, error) {
	file, reader, err := openCSV(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	headers, err := readCSVHeader(reader)
	if err != nil {
		return nil, err
	}
	info := &Info{Columns: headers}
	for {
		_, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row %d: %w", info.Rows+2, err)
		}
		info.Rows++
	}
	return info, nil
}

// WriteCSV writes t with a header row. Null cells are written empty.
func WriteCSV(path string, t *table.Table) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}

	bw := bufio.NewWriterSize(file, 256*1024)
	w := csv.NewWriter(bw)
	if err := w.Write(t.Names()); err != nil {
		file.Close()
		return fmt.Errorf("write csv header: %w", err)
	}

	cols := t.Columns()
	record := make([]string, len(cols))
	for i := 0; i < t.NumRows(); i++ {
		for j, c := range cols {
			record[j], _ = c.Format(i)
		}
		if err := w.Write(record); err != nil {
			file.Close()
			return fmt.Errorf("write csv row %d: %w", i+1, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		file.Close()
		return fmt.Errorf("flush csv: %w", err)
	}
	if err := bw.Flush(); err != nil {
		file.Close()
		return fmt.Errorf("flush csv: %w", err)
	}
	return file.Close()
}
