// Package services contains the persistence service layer.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dandanapp/dandanbot/pkg/models"
)

const queryTimeout = 5 * time.Second

// ClinicService manages clinic rows and their per-province aggregates
type ClinicService struct {
	db *sql.DB
}

// NewClinicService creates a new ClinicService
func NewClinicService(db *sql.DB) *ClinicService {
	return &ClinicService{db: db}
}

// GetOrCreate resolves a clinic by its (name, province, city) triple, creating
// it when absent. Inputs are trimmed before lookup. Concurrent callers racing
// on the same triple converge on a single row: the insert uses
// ON CONFLICT DO NOTHING, so no unique-constraint error is ever visible here.
func (s *ClinicService) GetOrCreate(ctx context.Context, name, province, city string) (int64, error) {
	name = strings.TrimSpace(name)
	province = strings.TrimSpace(province)
	city = strings.TrimSpace(city)

	if name == "" {
		return 0, NewValidationError("name", "required")
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var id int64
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO clinics (name, province, city)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (name, province, city) DO NOTHING
		 RETURNING id`,
		name, province, city).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("failed to insert clinic: %w", err)
	}

	// Conflict: the row already exists (possibly created by a racing caller).
	err = s.db.QueryRowContext(ctx,
		`SELECT id FROM clinics WHERE name = $1 AND province = $2 AND city = $3`,
		name, province, city).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to look up clinic after conflict: %w", err)
	}
	return id, nil
}

// ByID fetches a single clinic. Returns ErrNotFound when no row matches.
func (s *ClinicService) ByID(ctx context.Context, id int64) (*models.Clinic, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	clinic := &models.Clinic{ID: id}
	err := s.db.QueryRowContext(ctx,
		`SELECT name, province, city FROM clinics WHERE id = $1`,
		id).Scan(&clinic.Name, &clinic.Province, &clinic.City)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get clinic %d: %w", id, err)
	}
	return clinic, nil
}

// StatsByProvince returns every clinic registered in the province together
// with its rounded average rating and experience count, best average first.
// Clinics without experiences appear with average 0 and count 0; the query is
// clinic-driven with a left join, matching the browse flow's expectations.
func (s *ClinicService) StatsByProvince(ctx context.Context, province string) ([]models.ClinicStats, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx,
		`SELECT cl.id, cl.name, cl.city,
		        COALESCE(ROUND(AVG(ex.rating)::numeric, 1), 0)::float8,
		        COUNT(ex.id)
		 FROM clinics cl
		 LEFT JOIN experiences ex ON ex.clinic_id = cl.id
		 WHERE cl.province = $1
		 GROUP BY cl.id, cl.name, cl.city
		 ORDER BY 4 DESC, cl.name`,
		strings.TrimSpace(province))
	if err != nil {
		return nil, fmt.Errorf("failed to query clinic stats: %w", err)
	}
	defer rows.Close()

	var stats []models.ClinicStats
	for rows.Next() {
		var st models.ClinicStats
		if err := rows.Scan(&st.ClinicID, &st.Name, &st.City, &st.Average, &st.Count); err != nil {
			return nil, fmt.Errorf("failed to scan clinic stats row: %w", err)
		}
		stats = append(stats, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read clinic stats rows: %w", err)
	}
	return stats, nil
}
