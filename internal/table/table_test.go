package table

import (
	"testing"
)

func sampleTable(t *testing.T) *Table {
	t.Helper()
	tb, err := New(
		NewString("id", []string{"a", "b", "a", "c"}, nil),
		NewFloat("h", []float64{1.5, 2, 1.5, 0}, []bool{true, true, true, false}),
		NewInt("n", []int64{1, 2, 1, 3}, nil),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return tb
}

func TestNew_LengthMismatch(t *testing.T) {
	_, err := New(
		NewString("a", []string{"x", "y"}, nil),
		NewInt("b", []int64{1}, nil),
	)
	if err == nil {
		t.Fatal("expected error for unequal column lengths")
	}
}

func TestHasMissing(t *testing.T) {
	tb := sampleTable(t)
	if !tb.Has("h") || tb.Has("zzz") {
		t.Error("Has returned wrong answer")
	}
	missing := tb.Missing("id", "x", "n", "y")
	if len(missing) != 2 || missing[0] != "x" || missing[1] != "y" {
		t.Errorf("Missing = %v, want [x y]", missing)
	}
}

func TestAdd_ReplacesInPlace(t *testing.T) {
	tb := sampleTable(t)
	if err := tb.Add(NewInt("h", []int64{9, 9, 9, 9}, nil)); err != nil {
		t.Fatalf("Add: %v", err)
	}
	names := tb.Names()
	if len(names) != 3 || names[1] != "h" {
		t.Fatalf("unexpected names after replace: %v", names)
	}
	if v, ok := tb.Column("h").Int(3); !ok || v != 9 {
		t.Errorf("replaced column not visible: %v %v", v, ok)
	}
}

func TestClone_Independent(t *testing.T) {
	tb := sampleTable(t)
	c := tb.Clone()
	if err := c.Add(NewInt("extra", []int64{0, 0, 0, 0}, nil)); err != nil {
		t.Fatalf("Add: %v", err)
	}
	c.Drop("id")
	if tb.Has("extra") || !tb.Has("id") {
		t.Error("clone changes leaked into the original")
	}
	if c.Has("id") || !c.Has("extra") {
		t.Errorf("clone has wrong columns: %v", c.Names())
	}
	if c.Column("h") == nil {
		t.Error("clone index broken after Drop")
	}
}

func TestDedup(t *testing.T) {
	tb := sampleTable(t)
	out, removed := tb.Dedup()
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	if out.NumRows() != 3 {
		t.Fatalf("rows = %d, want 3", out.NumRows())
	}
	ids := []string{"a", "b", "c"}
	for i, want := range ids {
		if got, _ := out.Column("id").Str(i); got != want {
			t.Errorf("row %d id = %q, want %q", i, got, want)
		}
	}
	if !out.Column("h").IsNull(2) {
		t.Error("null must survive dedup")
	}
	if tb.NumRows() != 4 {
		t.Error("Dedup modified its input")
	}
}

func TestDedup_NullVersusEmpty(t *testing.T) {
	tb, err := New(NewString("s", []string{"", ""}, []bool{true, false}))
	if err != nil {
		t.Fatal(err)
	}
	if _, removed := tb.Dedup(); removed != 0 {
		t.Error("null and empty string rows must not be treated as duplicates")
	}
}

func TestColumnConversions(t *testing.T) {
	c := NewInt("n", []int64{7}, nil)
	if v, ok := c.Float(0); !ok || v != 7 {
		t.Errorf("Int→Float = %v %v", v, ok)
	}
	f := NewFloat("f", []float64{2.9}, nil)
	if v, ok := f.Int(0); !ok || v != 2 {
		t.Errorf("Float→Int = %v %v", v, ok)
	}
	if s, ok := f.Format(0); !ok || s != "2.9" {
		t.Errorf("Format = %q %v", s, ok)
	}
	s := NewString("s", []string{"3"}, nil)
	if _, ok := s.Float(0); ok {
		t.Error("String columns must not convert to Float")
	}
}
