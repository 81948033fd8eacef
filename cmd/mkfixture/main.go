// mkfixture writes a synthetic registry contact extract for local runs and
// tests. Rows cover acute and elective priorities, same-day and overnight
// stays, multi-day admissions, a few unparseable timestamps and exact
// duplicates.
// Usage: go run ./cmd/mkfixture --out testdata/contacts.parquet --format parquet --rows 500
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	goparquet "github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"

	"github.com/gyeh/ptclass/internal/model"
	"github.com/gyeh/ptclass/internal/table"
	"github.com/gyeh/ptclass/internal/tableio"
)

func main() {
	out := flag.String("out", "testdata/contacts.csv", "output file")
	format := flag.String("format", "csv", "output format: csv or parquet")
	maxRows := flag.Int("rows", 200, "rows to generate")
	seed := flag.Int64("seed", 1, "random seed")
	flag.Parse()

	kind, err := tableio.ParseKind(*format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	rows := generate(rand.New(rand.NewSource(*seed)), *maxRows)

	if kind == tableio.Parquet {
		err = writeParquet(*out, rows)
	} else {
		err = writeCSV(*out, rows)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "write: %v\n", err)
		os.Exit(1)
	}

	acute, overnight, broken := 0, 0, 0
	for _, r := range rows {
		if *r.Priority == "ATA1" {
			acute++
		}
		if *r.DateStart != *r.DateEnd {
			overnight++
		}
		if *r.TimeStart == "??" {
			broken++
		}
	}
	fmt.Printf("Wrote %d rows to %s\n", len(rows), *out)
	fmt.Printf("  %-10s %d\n", "acute", acute)
	fmt.Printf("  %-10s %d\n", "overnight", overnight)
	fmt.Printf("  %-10s %d\n", "broken", broken)
}

var departments = []string{"MED01", "SURG02", "ORTH03", "PED04", "GYN05"}

func generate(rng *rand.Rand, n int) []model.ContactRow {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := make([]model.ContactRow, 0, n)
	for i := 0; len(rows) < n; i++ {
		start := base.Add(time.Duration(rng.Intn(365*24*60)) * time.Minute)

		// Mostly short contacts with a long tail of admissions.
		var stay time.Duration
		switch p := rng.Float64(); {
		case p < 0.6:
			stay = time.Duration(rng.Intn(8*60)) * time.Minute
		case p < 0.85:
			stay = time.Duration(8*60+rng.Intn(16*60)) * time.Minute
		default:
			stay = time.Duration(24*60+rng.Intn(14*24*60)) * time.Minute
		}
		end := start.Add(stay)

		priority := "ATA3"
		if rng.Float64() < 0.55 {
			priority = "ATA1"
		}
		timeStart := start.Format("15:04")
		if i%97 == 0 {
			timeStart = "??"
		}

		row := model.ContactRow{
			PatientID:    strPtr(fmt.Sprintf("P%06d", rng.Intn(n))),
			ContactID:    strPtr(fmt.Sprintf("C%07d", i)),
			DepartmentID: strPtr(departments[rng.Intn(len(departments))]),
			Priority:     strPtr(priority),
			DateStart:    strPtr(start.Format("01/02/2006")),
			TimeStart:    strPtr(timeStart),
			DateEnd:      strPtr(end.Format("01/02/2006")),
			TimeEnd:      strPtr(end.Format("15:04")),
		}
		rows = append(rows, row)

		// Registry extracts repeat contacts now and then.
		if i%53 == 0 && len(rows) < n {
			rows = append(rows, row)
		}
	}
	return rows
}

func writeParquet(path string, rows []model.ContactRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer f.Close()

	writer := goparquet.NewGenericWriter[model.ContactRow](f,
		goparquet.Compression(&zstd.Codec{Level: zstd.SpeedDefault}),
		goparquet.CreatedBy("mkfixture", "1.0", ""),
	)
	if _, err := writer.Write(rows); err != nil {
		return fmt.Errorf("write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("close writer: %w", err)
	}
	return nil
}

func writeCSV(path string, rows []model.ContactRow) error {
	cols := []struct {
		name string
		get  func(r *model.ContactRow) *string
	}{
		{model.ColPatientID, func(r *model.ContactRow) *string { return r.PatientID }},
		{model.ColContactID, func(r *model.ContactRow) *string { return r.ContactID }},
		{model.ColDepartmentID, func(r *model.ContactRow) *string { return r.DepartmentID }},
		{model.ColPriority, func(r *model.ContactRow) *string { return r.Priority }},
		{model.ColDateStart, func(r *model.ContactRow) *string { return r.DateStart }},
		{model.ColTimeStart, func(r *model.ContactRow) *string { return r.TimeStart }},
		{model.ColDateEnd, func(r *model.ContactRow) *string { return r.DateEnd }},
		{model.ColTimeEnd, func(r *model.ContactRow) *string { return r.TimeEnd }},
	}

	columns := make([]*table.Column, len(cols))
	for j, c := range cols {
		vals := make([]string, len(rows))
		valid := make([]bool, len(rows))
		for i := range rows {
			if p := c.get(&rows[i]); p != nil {
				vals[i], valid[i] = *p, true
			}
		}
		columns[j] = table.NewString(c.name, vals, valid)
	}
	t, err := table.New(columns...)
	if err != nil {
		return err
	}
	return tableio.WriteCSV(path, t)
}

func strPtr(s string) *string { return &s }
