package model

import (
	"fmt"
	"strings"
)

// Column names shared by the duration deriver, the classifier and the
// file adapters.
const (
	ColPatientID    = "patient_id"
	ColContactID    = "contact_id"
	ColDepartmentID = "department_id"
	ColPriority     = "priority"

	ColDateStart = "date_start"
	ColTimeStart = "time_start"
	ColDateEnd   = "date_end"
	ColTimeEnd   = "time_end"

	ColDurationS = "duration_s"
	ColDurationM = "duration_m"
	ColDurationH = "duration_h"
	ColDurationD = "duration_d"

	ColElective   = "elective"
	ColOvernight  = "overnight"
	ColOver24h    = "over24h"
	ColPOvernight = "p_overnight"

	ColPatientType = "patient_type"
)

// TimestampColumns are the raw text columns the duration deriver consumes.
var TimestampColumns = []string{ColDateStart, ColTimeStart, ColDateEnd, ColTimeEnd}

// IdentifierColumns are always read as text regardless of their content.
var IdentifierColumns = []string{ColPatientID, ColContactID, ColDepartmentID, ColPriority}

// TextColumns returns the columns a CSV adapter must never type-infer.
func TextColumns() []string {
	cols := make([]string, 0, len(TimestampColumns)+len(IdentifierColumns))
	cols = append(cols, TimestampColumns...)
	return append(cols, IdentifierColumns...)
}

// MissingColumnsError reports a dataset that lacks columns an operation
// needs. Requirement describes the accepted alternatives in words.
type MissingColumnsError struct {
	Requirement string
	Missing     []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing columns [%s]: dataset must contain %s",
		strings.Join(e.Missing, ", "), e.Requirement)
}
