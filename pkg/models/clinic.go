// Package models contains the entities shared across the service layer.
package models

// Clinic is a dental practice identified by its (name, province, city) triple.
type Clinic struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Province string `json:"province"`
	City     string `json:"city"`
}

// ClinicStats is one row of the per-province ranking.
// Average is rounded to one decimal by the store query; Go never re-rounds it.
type ClinicStats struct {
	ClinicID int64   `json:"clinic_id"`
	Name     string  `json:"name"`
	City     string  `json:"city"`
	Average  float64 `json:"average"`
	Count    int     `json:"count"`
}
