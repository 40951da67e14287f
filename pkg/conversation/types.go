// Package conversation implements the questionnaire state machine: per-user
// sessions, the ordered step table for the add and view flows, and the
// dispatcher that advances them.
package conversation

import (
	"context"

	"github.com/dandanapp/dandanbot/pkg/models"
)

// State identifies the prompt a session is currently waiting on.
// A user with no session is idle.
type State string

const (
	// Add flow, in strict order
	StateClinicName      State = "clinic_name"
	StateProvince        State = "province"
	StateCity            State = "city"
	StateStartDate       State = "start_date"
	StateEndDate         State = "end_date"
	StatePayment         State = "payment"
	StateContract        State = "contract"
	StatePatientCulture  State = "patient_culture"
	StatePatientCount    State = "patient_count"
	StateInsuranceStatus State = "insurance_status"
	StateEnvironment     State = "environment"
	StateRating          State = "rating"
	StateComment         State = "comment"

	// View flow
	StateViewProvince    State = "view_province"
	StateClinicSelection State = "clinic_selection"

	// stateCommit is the terminal marker after the last add-flow answer.
	stateCommit State = "commit"
)

// Draft accumulates a session's answers before commit. Clinic name, province
// and city are transient: on commit they resolve to a clinic id.
type Draft struct {
	ClinicName      string
	Province        string
	City            string
	StartDate       string
	EndDate         *string
	Payment         string
	ContractSigned  bool
	PatientCulture  string
	PatientCount    string
	InsuranceStatus string
	Environment     string
	Rating          int
	Comment         string
}

// Session is one user's in-progress flow. Sessions are volatile: a process
// restart discards them, which is acceptable for draft answers.
type Session struct {
	UserID int64
	FlowID string // correlates this flow's log lines
	State  State
	Draft  Draft
}

// ClinicStore is the persistence surface the dispatcher needs for clinics.
type ClinicStore interface {
	GetOrCreate(ctx context.Context, name, province, city string) (int64, error)
	ByID(ctx context.Context, id int64) (*models.Clinic, error)
	StatsByProvince(ctx context.Context, province string) ([]models.ClinicStats, error)
}

// ExperienceStore is the persistence surface the dispatcher needs for experiences.
type ExperienceStore interface {
	Save(ctx context.Context, exp *models.Experience) error
	ByClinic(ctx context.Context, clinicID int64) ([]models.Experience, error)
}
