package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dandanapp/dandanbot/pkg/models"
	"github.com/dandanapp/dandanbot/pkg/services"
	"github.com/dandanapp/dandanbot/test/util"
)

func TestClinicGetOrCreateIdempotent(t *testing.T) {
	db := util.SetupTestDatabase(t)
	svc := services.NewClinicService(db)
	ctx := context.Background()

	id1, err := svc.GetOrCreate(ctx, "کلینیک لبخند", "تهران", "تهران")
	require.NoError(t, err)
	require.NotZero(t, id1)

	id2, err := svc.GetOrCreate(ctx, "کلینیک لبخند", "تهران", "تهران")
	require.NoError(t, err)
	assert.Equal(t, id1, id2, "same triple must resolve to the same id")

	// Trimming normalizes before lookup
	id3, err := svc.GetOrCreate(ctx, "  کلینیک لبخند ", "تهران", " تهران ")
	require.NoError(t, err)
	assert.Equal(t, id1, id3)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM clinics").Scan(&count))
	assert.Equal(t, 1, count, "exactly one row despite repeated creation")
}

func TestClinicGetOrCreateDistinctTriples(t *testing.T) {
	db := util.SetupTestDatabase(t)
	svc := services.NewClinicService(db)
	ctx := context.Background()

	id1, err := svc.GetOrCreate(ctx, "کلینیک الف", "تهران", "تهران")
	require.NoError(t, err)
	id2, err := svc.GetOrCreate(ctx, "کلینیک الف", "تهران", "کرج")
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2, "different city is a different clinic")
}

func TestClinicByID(t *testing.T) {
	db := util.SetupTestDatabase(t)
	svc := services.NewClinicService(db)
	ctx := context.Background()

	id, err := svc.GetOrCreate(ctx, "کلینیک الف", "فارس", "شیراز")
	require.NoError(t, err)

	clinic, err := svc.ByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "کلینیک الف", clinic.Name)
	assert.Equal(t, "فارس", clinic.Province)
	assert.Equal(t, "شیراز", clinic.City)

	_, err = svc.ByID(ctx, 99999)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestClinicStatsByProvince(t *testing.T) {
	db := util.SetupTestDatabase(t)
	clinics := services.NewClinicService(db)
	experiences := services.NewExperienceService(db)
	ctx := context.Background()

	lowID, err := clinics.GetOrCreate(ctx, "کلینیک کم", "تهران", "تهران")
	require.NoError(t, err)
	highID, err := clinics.GetOrCreate(ctx, "کلینیک زیاد", "تهران", "کرج")
	require.NoError(t, err)
	emptyID, err := clinics.GetOrCreate(ctx, "کلینیک خالی", "تهران", "ورامین")
	require.NoError(t, err)
	otherID, err := clinics.GetOrCreate(ctx, "کلینیک دیگر", "فارس", "شیراز")
	require.NoError(t, err)

	save := func(clinicID int64, rating int) {
		require.NoError(t, experiences.Save(ctx, &models.Experience{
			ClinicID:  clinicID,
			UserID:    1,
			StartDate: "2024-01-01",
			Rating:    rating,
		}))
	}
	save(lowID, 2)
	save(lowID, 3)
	save(highID, 5)
	save(highID, 4)
	save(highID, 4)
	save(otherID, 1)

	stats, err := clinics.StatsByProvince(ctx, "تهران")
	require.NoError(t, err)
	require.Len(t, stats, 3, "only the requested province, clinics without experiences included")

	assert.Equal(t, highID, stats[0].ClinicID, "ordered by average descending")
	assert.InDelta(t, 4.3, stats[0].Average, 0.001, "average rounded to one decimal")
	assert.Equal(t, 3, stats[0].Count)

	assert.Equal(t, lowID, stats[1].ClinicID)
	assert.InDelta(t, 2.5, stats[1].Average, 0.001)
	assert.Equal(t, 2, stats[1].Count)

	assert.Equal(t, emptyID, stats[2].ClinicID)
	assert.Zero(t, stats[2].Average, "no experiences averages to 0")
	assert.Zero(t, stats[2].Count)
}

func TestClinicStatsEmptyProvince(t *testing.T) {
	db := util.SetupTestDatabase(t)
	svc := services.NewClinicService(db)

	stats, err := svc.StatsByProvince(context.Background(), "گیلان")
	require.NoError(t, err)
	assert.Empty(t, stats)
}
