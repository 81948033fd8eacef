package classify

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gyeh/ptclass/internal/model"
	"github.com/gyeh/ptclass/internal/table"
)

// contact is one row of precomputed indicators.
type contact struct {
	elective, overnight int64
	durationH           float64
}

func indicatorTable(t *testing.T, rows ...contact) *table.Table {
	t.Helper()
	n := len(rows)
	el, on, o24 := make([]int64, n), make([]int64, n), make([]int64, n)
	dur := make([]float64, n)
	for i, r := range rows {
		el[i], on[i], dur[i] = r.elective, r.overnight, r.durationH
		if r.durationH >= 24 {
			o24[i] = 1
		}
	}
	tb, err := table.New(
		table.NewInt(model.ColElective, el, nil),
		table.NewInt(model.ColOvernight, on, nil),
		table.NewInt(model.ColOver24h, o24, nil),
		table.NewFloat(model.ColDurationH, dur, nil),
	)
	if err != nil {
		t.Fatalf("table.New: %v", err)
	}
	return tb
}

func labels(t *testing.T, res *Result) []string {
	t.Helper()
	col := res.Table.Column(model.ColPatientType)
	if col == nil {
		t.Fatal("patient_type column missing")
	}
	out := make([]string, col.Len())
	for i := range out {
		out[i], _ = col.Str(i)
	}
	return out
}

func classifyOne(t *testing.T, m Method, c contact) string {
	t.Helper()
	res, err := Classify(indicatorTable(t, c), m)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	return labels(t, res)[0]
}

func TestCluster_Examples(t *testing.T) {
	cases := []struct {
		c    contact
		want model.PatientType
	}{
		{contact{elective: 0, overnight: 0, durationH: 5}, model.AcuteOutpatient},
		{contact{elective: 1, overnight: 1, durationH: 0}, model.Inpatient},
		{contact{elective: 1, overnight: 1, durationH: 50}, model.Inpatient},
		{contact{elective: 1, overnight: 0, durationH: 2}, model.ElectiveOutpatient},
		{contact{elective: 0, overnight: 1, durationH: 30}, model.Inpatient},
	}
	for _, tc := range cases {
		if got := classifyOne(t, Cluster, tc.c); got != string(tc.want) {
			t.Errorf("cluster %+v = %q, want %q", tc.c, got, tc.want)
		}
	}
}

func TestHybridVersusCluster(t *testing.T) {
	short := contact{elective: 0, overnight: 0, durationH: 3}
	if got := classifyOne(t, Hybrid, short); got != string(model.AcuteOutpatient) {
		t.Errorf("hybrid 3h acute = %q", got)
	}
	if got := classifyOne(t, Cluster, short); got != string(model.AcuteOutpatient) {
		t.Errorf("cluster 3h acute = %q", got)
	}

	moderate := contact{elective: 0, overnight: 0, durationH: 7}
	if got := classifyOne(t, Cluster, moderate); got != string(model.AcuteOutpatient) {
		t.Errorf("cluster 7h acute = %q, want Acute Outpatient", got)
	}
	if got := classifyOne(t, Hybrid, moderate); got != string(model.Inpatient) {
		t.Errorf("hybrid 7h acute = %q, want Inpatient", got)
	}
}

func TestThresholdBoundaries(t *testing.T) {
	cases := []struct {
		m    Method
		c    contact
		want model.PatientType
	}{
		{Cluster, contact{0, 0, 9}, model.Inpatient},
		{Cluster, contact{0, 0, 8.999}, model.AcuteOutpatient},
		{Cluster, contact{1, 0, 3.5}, model.Inpatient},
		{Cluster, contact{1, 0, 3.499}, model.ElectiveOutpatient},
		{Cluster, contact{0, 0, 24}, model.Inpatient},
		{Hybrid, contact{1, 0, 2.6}, model.Inpatient},
		{Hybrid, contact{1, 0, 2.599}, model.ElectiveOutpatient},
		{Hybrid, contact{0, 0, 4}, model.Inpatient},
		{Hybrid, contact{0, 0, 3.999}, model.AcuteOutpatient},
	}
	for _, tc := range cases {
		if got := classifyOne(t, tc.m, tc.c); got != string(tc.want) {
			t.Errorf("%s %+v = %q, want %q", tc.m, tc.c, got, tc.want)
		}
	}
}

// reference restates the rule tables as plain branching.
func reference(m Method, c contact) model.PatientType {
	over24 := c.durationH >= 24
	acuteCut, electiveCut := 9.0, 3.5
	if m == Hybrid {
		acuteCut, electiveCut = 4, 2.6
	}
	if c.elective == 0 {
		if over24 || c.durationH >= acuteCut {
			return model.Inpatient
		}
		return model.AcuteOutpatient
	}
	if c.overnight == 1 || c.durationH >= electiveCut {
		return model.Inpatient
	}
	return model.ElectiveOutpatient
}

func TestDurationSweep(t *testing.T) {
	var rows []contact
	for d := 0.0; d <= 30; d += 0.25 {
		for _, el := range []int64{0, 1} {
			for _, on := range []int64{0, 1} {
				rows = append(rows, contact{elective: el, overnight: on, durationH: d})
			}
		}
	}
	tb := indicatorTable(t, rows...)

	diverge := 0
	for _, m := range []Method{Cluster, Hybrid} {
		res, err := Classify(tb, m)
		if err != nil {
			t.Fatalf("Classify(%s): %v", m, err)
		}
		if res.Unlabeled != 0 {
			t.Errorf("%s left %d rows unlabeled", m, res.Unlabeled)
		}
		got := labels(t, res)
		total := 0
		for i, r := range rows {
			if want := reference(m, r); got[i] != string(want) {
				t.Errorf("%s %+v = %q, want %q", m, r, got[i], want)
			}
			total++
		}
		sum := 0
		for _, n := range res.Counts {
			sum += n
		}
		if sum != total {
			t.Errorf("%s counts sum to %d, want %d", m, sum, total)
		}
	}
	for _, r := range rows {
		if reference(Cluster, r) != reference(Hybrid, r) {
			diverge++
		}
	}
	if diverge == 0 {
		t.Error("expected the methods to diverge at moderate durations")
	}
}

func TestHybridDepartment(t *testing.T) {
	mk := func(el int64, p float64) *table.Table {
		tb, err := table.New(
			table.NewInt(model.ColElective, []int64{el}, nil),
			table.NewFloat(model.ColPOvernight, []float64{p}, nil),
		)
		if err != nil {
			t.Fatal(err)
		}
		return tb
	}
	cases := []struct {
		el   int64
		p    float64
		want model.PatientType
	}{
		{0, 0.23, model.Inpatient},
		{0, 0.22, model.AcuteOutpatient},
		{1, 0.3, model.Inpatient},
		{1, 0.29, model.ElectiveOutpatient},
		{1, 0.25, model.ElectiveOutpatient},
		{0, 0.25, model.Inpatient},
	}
	for _, tc := range cases {
		res, err := Classify(mk(tc.el, tc.p), HybridDepartment)
		if err != nil {
			t.Fatalf("Classify: %v", err)
		}
		if got := labels(t, res)[0]; got != string(tc.want) {
			t.Errorf("elective=%d p=%v = %q, want %q", tc.el, tc.p, got, tc.want)
		}
	}
}

func rawTable(t *testing.T) *table.Table {
	t.Helper()
	tb, err := table.New(
		table.NewString(model.ColPriority, []string{"ATA1", "ATA3", "ATA1x", ""}, []bool{true, true, true, false}),
		table.NewString(model.ColDateStart, []string{"01/01/2024", "01/01/2024", "01/01/2024", "01/01/2024"}, nil),
		table.NewString(model.ColTimeStart, []string{"10:00", "08:00", "20:00", "10:00"}, nil),
		table.NewString(model.ColDateEnd, []string{"01/01/2024", "01/01/2024", "01/03/2024", "01/01/2024"}, nil),
		table.NewString(model.ColTimeEnd, []string{"15:00", "10:00", "08:00", "11:00"}, nil),
	)
	if err != nil {
		t.Fatalf("table.New: %v", err)
	}
	return tb
}

func intAt(t *testing.T, tb *table.Table, col string, i int) (int64, bool) {
	t.Helper()
	c := tb.Column(col)
	if c == nil {
		t.Fatalf("column %s missing", col)
	}
	return c.Int(i)
}

func TestClassify_DerivesMissingColumns(t *testing.T) {
	res, err := Classify(rawTable(t), Cluster)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	wantDerived := []string{model.ColDurationH, model.ColElective, model.ColOvernight, model.ColOver24h}
	if fmt.Sprint(res.Derived) != fmt.Sprint(wantDerived) {
		t.Errorf("Derived = %v, want %v", res.Derived, wantDerived)
	}

	tb := res.Table
	expect := []struct {
		col   string
		vals  []int64
		nulls []bool
	}{
		{model.ColDurationH, []int64{5, 2, 36, 1}, nil},
		{model.ColElective, []int64{0, 1, 0, 0}, []bool{false, false, false, true}},
		{model.ColOvernight, []int64{0, 0, 1, 0}, nil},
		{model.ColOver24h, []int64{0, 0, 1, 0}, nil},
	}
	for _, e := range expect {
		for i, want := range e.vals {
			got, ok := intAt(t, tb, e.col, i)
			if e.nulls != nil && e.nulls[i] {
				if ok {
					t.Errorf("%s[%d] = %d, want null", e.col, i, got)
				}
				continue
			}
			if !ok || got != want {
				t.Errorf("%s[%d] = %d (ok=%v), want %d", e.col, i, got, ok, want)
			}
		}
	}

	got := labels(t, res)
	want := []string{string(model.AcuteOutpatient), string(model.ElectiveOutpatient), string(model.Inpatient), ""}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d = %q, want %q", i, got[i], want[i])
		}
	}
	if res.Unlabeled != 1 || !tb.Column(model.ColPatientType).IsNull(3) {
		t.Errorf("expected row 3 unlabeled, got Unlabeled=%d", res.Unlabeled)
	}
}

func TestClassify_BooleanTextIndicators(t *testing.T) {
	tb, err := table.New(
		table.NewString(model.ColElective, []string{"true", "false"}, nil),
		table.NewString(model.ColOvernight, []string{"false", "False"}, nil),
		table.NewFloat(model.ColDurationH, []float64{2, 5}, nil),
	)
	if err != nil {
		t.Fatal(err)
	}
	res, err := Classify(tb, Cluster)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	got := labels(t, res)
	want := []string{string(model.ElectiveOutpatient), string(model.AcuteOutpatient)}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d = %q, want %q", i, got[i], want[i])
		}
	}
	if res.Unlabeled != 0 {
		t.Errorf("Unlabeled = %d, want 0", res.Unlabeled)
	}
}

func TestClassify_TextDuration(t *testing.T) {
	// One unparseable cell leaves duration_h as text; the others still count.
	tb, err := table.New(
		table.NewInt(model.ColElective, []int64{0, 0, 1, 0}, nil),
		table.NewInt(model.ColOvernight, []int64{0, 0, 0, 0}, nil),
		table.NewString(model.ColDurationH, []string{"5", "NA", "2", "30"}, nil),
	)
	if err != nil {
		t.Fatal(err)
	}
	res, err := Classify(tb, Cluster)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}

	over := res.Table.Column(model.ColOver24h)
	for i, want := range []int64{0, -1, 0, 1} {
		got, ok := over.Int(i)
		if want < 0 {
			if ok {
				t.Errorf("over24h[%d] = %d, want null", i, got)
			}
			continue
		}
		if !ok || got != want {
			t.Errorf("over24h[%d] = %d (ok=%v), want %d", i, got, ok, want)
		}
	}

	got := labels(t, res)
	want := []string{string(model.AcuteOutpatient), "", string(model.ElectiveOutpatient), string(model.Inpatient)}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d = %q, want %q", i, got[i], want[i])
		}
	}
	if res.Unlabeled != 1 {
		t.Errorf("Unlabeled = %d, want 1", res.Unlabeled)
	}
}

func TestClassify_ExistingColumnsUntouched(t *testing.T) {
	tb := rawTable(t)
	// Contradicts priority on purpose: the given column must win.
	if err := tb.Add(table.NewInt(model.ColElective, []int64{1, 1, 1, 1}, nil)); err != nil {
		t.Fatal(err)
	}
	if err := tb.Add(table.NewFloat(model.ColDurationH, []float64{2.5, 2.5, 2.5, 2.5}, nil)); err != nil {
		t.Fatal(err)
	}

	res, err := Classify(tb, Cluster)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if len(res.Derived) != 2 || res.Derived[0] != model.ColOvernight || res.Derived[1] != model.ColOver24h {
		t.Errorf("Derived = %v, want [overnight over24h]", res.Derived)
	}
	for i := 0; i < 4; i++ {
		if v, _ := intAt(t, res.Table, model.ColElective, i); v != 1 {
			t.Errorf("elective[%d] changed to %d", i, v)
		}
		if v, _ := res.Table.Column(model.ColDurationH).Float(i); v != 2.5 {
			t.Errorf("duration_h[%d] changed to %v", i, v)
		}
	}
	if tb.Has(model.ColPatientType) || tb.Has(model.ColOvernight) {
		t.Error("Classify modified its input table")
	}

	// Classifying the output again changes nothing but the label column.
	again, err := Classify(res.Table, Cluster)
	if err != nil {
		t.Fatalf("second Classify: %v", err)
	}
	if len(again.Derived) != 0 {
		t.Errorf("second pass derived %v", again.Derived)
	}
	first, second := labels(t, res), labels(t, again)
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("row %d relabeled %q → %q", i, first[i], second[i])
		}
	}
}

func TestClassify_MissingColumns(t *testing.T) {
	tb, err := table.New(
		table.NewString(model.ColDateStart, []string{"01/01/2024"}, nil),
		table.NewString("ward", []string{"A"}, nil),
	)
	if err != nil {
		t.Fatal(err)
	}

	_, err = Classify(tb, Cluster)
	var mce *model.MissingColumnsError
	if !errors.As(err, &mce) {
		t.Fatalf("expected MissingColumnsError, got %v", err)
	}
	want := []string{
		model.ColDurationH, model.ColTimeStart, model.ColDateEnd, model.ColTimeEnd,
		model.ColOvernight, model.ColElective, model.ColPriority,
	}
	if fmt.Sprint(mce.Missing) != fmt.Sprint(want) {
		t.Errorf("Missing = %v, want %v", mce.Missing, want)
	}

	_, err = Classify(tb, HybridDepartment)
	if !errors.As(err, &mce) {
		t.Fatalf("expected MissingColumnsError, got %v", err)
	}
	want = []string{model.ColPOvernight, model.ColElective, model.ColPriority}
	if fmt.Sprint(mce.Missing) != fmt.Sprint(want) {
		t.Errorf("department Missing = %v, want %v", mce.Missing, want)
	}
}

func TestClassify_DepartmentIgnoresDuration(t *testing.T) {
	tb, err := table.New(
		table.NewString(model.ColPriority, []string{"ATA3"}, nil),
		table.NewFloat(model.ColPOvernight, []float64{0.1}, nil),
	)
	if err != nil {
		t.Fatal(err)
	}
	res, err := Classify(tb, HybridDepartment)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if res.Table.Has(model.ColDurationH) || res.Table.Has(model.ColOvernight) {
		t.Error("department method should not derive contact-level columns")
	}
	if got := labels(t, res)[0]; got != string(model.ElectiveOutpatient) {
		t.Errorf("label = %q, want Elective Outpatient", got)
	}
}

func TestExhaustiveness(t *testing.T) {
	for _, m := range AllMethods {
		r := Exhaustiveness(m)
		if r.Probes == 0 {
			t.Errorf("%s: no probes", m)
		}
		if !r.Exhaustive() {
			t.Errorf("%s: gaps at %v", m, r.Gaps)
		}
		if len(r.Overlaps) != 0 {
			t.Errorf("%s: overlapping branches at %v", m, r.Overlaps)
		}
	}
}

func TestParseMethod(t *testing.T) {
	for _, m := range AllMethods {
		got, err := ParseMethod(m.String())
		if err != nil || got != m {
			t.Errorf("ParseMethod(%q) = %v, %v", m.String(), got, err)
		}
	}
	if m, err := ParseMethod(""); err != nil || m != Cluster {
		t.Errorf("default method = %v, %v", m, err)
	}
	if _, err := ParseMethod("kmeans"); err == nil {
		t.Error("expected error for unknown method")
	}
}
