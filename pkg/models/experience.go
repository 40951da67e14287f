package models

import "time"

// Experience is one user's submitted report about working at a clinic.
// Dates are kept as literal YYYY-MM-DD text; a nil EndDate means the
// engagement is ongoing or the user did not know the end date.
type Experience struct {
	ID              int64     `json:"id"`
	ClinicID        int64     `json:"clinic_id"`
	UserID          int64     `json:"user_id"`
	StartDate       string    `json:"start_date"`
	EndDate         *string   `json:"end_date,omitempty"`
	Payment         string    `json:"payment"`
	ContractSigned  bool      `json:"contract_signed"`
	PatientCulture  string    `json:"patient_culture"`
	PatientCount    string    `json:"patient_count"`
	InsuranceStatus string    `json:"insurance_status"`
	Environment     string    `json:"environment"`
	Rating          int       `json:"rating"`
	Comment         string    `json:"comment"`
	CreatedAt       time.Time `json:"created_at"`
}
