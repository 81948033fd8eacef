package model

// PatientType is the three-way classification label of a contact.
type PatientType string

const (
	Inpatient          PatientType = "Inpatient"
	AcuteOutpatient    PatientType = "Acute Outpatient"
	ElectiveOutpatient PatientType = "Elective Outpatient"
)

// AllPatientTypes lists the labels in report order.
var AllPatientTypes = []PatientType{Inpatient, AcuteOutpatient, ElectiveOutpatient}

// Valid reports whether p is one of the three labels.
func (p PatientType) Valid() bool {
	for _, pt := range AllPatientTypes {
		if p == pt {
			return true
		}
	}
	return false
}
