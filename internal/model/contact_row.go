package model

// ContactRow mirrors the Parquet layout of a registry contact extract.
// Dates and times stay text, exactly as the registry delivers them; the
// indicator and duration columns are optional because extracts may carry
// them precomputed or not at all.
type ContactRow struct {
	PatientID    *string `parquet:"patient_id,optional"`
	ContactID    *string `parquet:"contact_id,optional"`
	DepartmentID *string `parquet:"department_id,optional"`
	Priority     *string `parquet:"priority,optional"`

	// Raw timestamps (month/day/year, hh:mm[:ss])
	DateStart *string `parquet:"date_start,optional"`
	TimeStart *string `parquet:"time_start,optional"`
	DateEnd   *string `parquet:"date_end,optional"`
	TimeEnd   *string `parquet:"time_end,optional"`

	// Precomputed indicators
	DurationH  *float64 `parquet:"duration_h,optional"`
	Elective   *int64   `parquet:"elective,optional"`
	Overnight  *int64   `parquet:"overnight,optional"`
	POvernight *float64 `parquet:"p_overnight,optional"`
}

