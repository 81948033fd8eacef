package tableio

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"

	"github.com/gyeh/ptclass/internal/table"
)

const readBatchSize = 1024

// parquetColumn accumulates one top-level leaf column while reading.
type parquetColumn struct {
	name  string
	index int
	kind  table.Kind
	strs  []string
	flts  []float64
	ints  []int64
	valid []bool
}

func (c *parquetColumn) append(v parquet.Value) {
	if v.IsNull() {
		c.valid = append(c.valid, false)
		switch c.kind {
		case table.String:
			c.strs = append(c.strs, "")
		case table.Float:
			c.flts = append(c.flts, 0)
		case table.Int:
			c.ints = append(c.ints, 0)
		}
		return
	}
	c.valid = append(c.valid, true)
	switch c.kind {
	case table.String:
		c.strs = append(c.strs, valueText(v))
	case table.Float:
		c.flts = append(c.flts, valueFloat(v))
	case table.Int:
		c.ints = append(c.ints, valueInt(v))
	}
}

func (c *parquetColumn) column() *table.Column {
	switch c.kind {
	case table.Float:
		return table.NewFloat(c.name, c.flts, c.valid)
	case table.Int:
		return table.NewInt(c.name, c.ints, c.valid)
	}
	return table.NewString(c.name, c.strs, c.valid)
}

func valueText(v parquet.Value) string {
	switch v.Kind() {
	case parquet.Boolean:
		if v.Boolean() {
			return "1"
		}
		return "0"
	case parquet.Int32:
		return strconv.FormatInt(int64(v.Int32()), 10)
	case parquet.Int64:
		return strconv.FormatInt(v.Int64(), 10)
	case parquet.Float:
		return strconv.FormatFloat(float64(v.Float()), 'g', -1, 32)
	case parquet.Double:
		return strconv.FormatFloat(v.Double(), 'g', -1, 64)
	}
	return string(v.ByteArray())
}

func valueFloat(v parquet.Value) float64 {
	if v.Kind() == parquet.Float {
		return float64(v.Float())
	}
	return v.Double()
}

func valueInt(v parquet.Value) int64 {
	switch v.Kind() {
	case parquet.Boolean:
		if v.Boolean() {
			return 1
		}
		return 0
	case parquet.Int32:
		return int64(v.Int32())
	}
	return v.Int64()
}

func kindOf(t parquet.Type) (table.Kind, bool) {
	switch t.Kind() {
	case parquet.Boolean, parquet.Int32, parquet.Int64:
		return table.Int, true
	case parquet.Float, parquet.Double:
		return table.Float, true
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return table.String, true
	}
	return 0, false
}

func openParquet(path string) (*os.File, *parquet.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open parquet file: %w", err)
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("stat parquet file: %w", err)
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("parse parquet file: %w", err)
	}
	return f, pf, nil
}

// ReadParquet loads the flat top-level columns of a Parquet file. Booleans
// and integers become Int columns, floating point becomes Float, byte
// arrays become String. Timestamp, identifier and textCols columns are
// always String. Nested or INT96 columns are skipped.
func ReadParquet(path string, textCols ...string) (*table.Table, error) {
	f, pf, err := openParquet(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := parquet.NewReader(pf)
	defer reader.Close()

	text := textSet(textCols)
	schema := reader.Schema()
	byIndex := make(map[int]*parquetColumn)
	var ordered []*parquetColumn
	for _, colPath := range schema.Columns() {
		if len(colPath) != 1 {
			continue
		}
		leaf, ok := schema.Lookup(colPath...)
		if !ok || leaf.MaxRepetitionLevel > 0 {
			continue
		}
		kind, ok := kindOf(leaf.Node.Type())
		if !ok {
			continue
		}
		if text[colPath[0]] {
			kind = table.String
		}
		pc := &parquetColumn{name: colPath[0], index: leaf.ColumnIndex, kind: kind}
		byIndex[leaf.ColumnIndex] = pc
		ordered = append(ordered, pc)
	}

	buf := make([]parquet.Row, readBatchSize)
	var rowNum int64
	for {
		n, readErr := reader.ReadRows(buf)
		for i := 0; i < n; i++ {
			rowNum++
			for _, v := range buf[i] {
				if pc, ok := byIndex[v.Column()]; ok {
					pc.append(v)
				}
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return nil, fmt.Errorf("read parquet at row %d: %w", rowNum, readErr)
		}
	}

	cols := make([]*table.Column, len(ordered))
	for i, pc := range ordered {
		cols[i] = pc.column()
	}
	return table.New(cols...)
}

func inspectParquet(path string) (*Info, error) {
	f, pf, err := openParquet(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info := &Info{Rows: pf.NumRows()}
	for _, colPath := range pf.Schema().Columns() {
		if len(colPath) == 1 {
			info.Columns = append(info.Columns, colPath[0])
		}
	}
	return info, nil
}

// schemaFor builds an all-optional flat schema matching t's columns.
func schemaFor(t *table.Table) *parquet.Schema {
	group := make(parquet.Group, len(t.Columns()))
	for _, c := range t.Columns() {
		var node parquet.Node
		switch c.Kind {
		case table.Float:
			node = parquet.Leaf(parquet.DoubleType)
		case table.Int:
			node = parquet.Int(64)
		default:
			node = parquet.String()
		}
		group[c.Name] = parquet.Optional(node)
	}
	return parquet.NewSchema("contacts", group)
}

// WriteParquet writes t as a zstd-compressed Parquet file. Parquet groups
// order columns by name, so the file's column order is alphabetical.
func WriteParquet(path string, t *table.Table) error {
	schema := schemaFor(t)
	cols := t.Columns()
	indexes := make([]int, len(cols))
	for j, c := range cols {
		leaf, ok := schema.Lookup(c.Name)
		if !ok {
			return fmt.Errorf("column %q missing from parquet schema", c.Name)
		}
		indexes[j] = leaf.ColumnIndex
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create parquet file: %w", err)
	}

	writer := parquet.NewWriter(file, schema,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedDefault}),
		parquet.CreatedBy("ptclass", "1.0", ""),
	)

	batch := make([]parquet.Row, 0, readBatchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if _, err := writer.WriteRows(batch); err != nil {
			return fmt.Errorf("write parquet rows: %w", err)
		}
		batch = batch[:0]
		return nil
	}

	for i := 0; i < t.NumRows(); i++ {
		row := make(parquet.Row, len(cols))
		for j, c := range cols {
			row[indexes[j]] = cellValue(c, i).Level(0, definition(c, i), indexes[j])
		}
		batch = append(batch, row)
		if len(batch) == cap(batch) {
			if err := flush(); err != nil {
				file.Close()
				return err
			}
		}
	}
	if err := flush(); err != nil {
		file.Close()
		return err
	}

	if err := writer.Close(); err != nil {
		file.Close()
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return file.Close()
}

func definition(c *table.Column, i int) int {
	if c.IsNull(i) {
		return 0
	}
	return 1
}

func cellValue(c *table.Column, i int) parquet.Value {
	if c.IsNull(i) {
		return parquet.NullValue()
	}
	switch c.Kind {
	case table.Float:
		v, _ := c.Float(i)
		return parquet.DoubleValue(v)
	case table.Int:
		v, _ := c.Int(i)
		return parquet.Int64Value(v)
	}
	s, _ := c.Str(i)
	return parquet.ByteArrayValue([]byte(s))
}
