package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dandanapp/dandanbot/pkg/models"
)

// pgForeignKeyViolation is the PostgreSQL error code for a failed FK check.
const pgForeignKeyViolation = "23503"

// ExperienceService manages experience rows
type ExperienceService struct {
	db *sql.DB
}

// NewExperienceService creates a new ExperienceService
func NewExperienceService(db *sql.DB) *ExperienceService {
	return &ExperienceService{db: db}
}

// Save inserts one experience row. The clinic must already exist; the add
// flow guarantees clinic-before-experience ordering, so an FK violation here
// is unexpected and reported as a wrapped ErrNotFound.
func (s *ExperienceService) Save(ctx context.Context, exp *models.Experience) error {
	if exp.Rating < 1 || exp.Rating > 5 {
		return NewValidationError("rating", "must be between 1 and 5")
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO experiences (
		     clinic_id, user_id, start_date, end_date, payment, contract_signed,
		     patient_culture, patient_count, insurance_status, environment,
		     rating, comment)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		exp.ClinicID, exp.UserID, exp.StartDate, exp.EndDate, exp.Payment,
		exp.ContractSigned, exp.PatientCulture, exp.PatientCount,
		exp.InsuranceStatus, exp.Environment, exp.Rating, exp.Comment)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return fmt.Errorf("clinic %d: %w", exp.ClinicID, ErrNotFound)
		}
		return fmt.Errorf("failed to save experience: %w", err)
	}
	return nil
}

// ByClinic returns a clinic's experiences, newest first.
func (s *ExperienceService) ByClinic(ctx context.Context, clinicID int64) ([]models.Experience, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, clinic_id, user_id, start_date, end_date, payment,
		        contract_signed, patient_culture, patient_count,
		        insurance_status, environment, rating, comment, created_at
		 FROM experiences
		 WHERE clinic_id = $1
		 ORDER BY created_at DESC, id DESC`,
		clinicID)
	if err != nil {
		return nil, fmt.Errorf("failed to query experiences: %w", err)
	}
	defer rows.Close()

	var exps []models.Experience
	for rows.Next() {
		var exp models.Experience
		if err := rows.Scan(
			&exp.ID, &exp.ClinicID, &exp.UserID, &exp.StartDate, &exp.EndDate,
			&exp.Payment, &exp.ContractSigned, &exp.PatientCulture,
			&exp.PatientCount, &exp.InsuranceStatus, &exp.Environment,
			&exp.Rating, &exp.Comment, &exp.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan experience row: %w", err)
		}
		exps = append(exps, exp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read experience rows: %w", err)
	}
	return exps, nil
}
