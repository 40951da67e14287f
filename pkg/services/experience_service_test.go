package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dandanapp/dandanbot/pkg/models"
	"github.com/dandanapp/dandanbot/pkg/services"
	"github.com/dandanapp/dandanbot/test/util"
)

func TestExperienceSaveAndList(t *testing.T) {
	db := util.SetupTestDatabase(t)
	clinics := services.NewClinicService(db)
	experiences := services.NewExperienceService(db)
	ctx := context.Background()

	clinicID, err := clinics.GetOrCreate(ctx, "کلینیک لبخند", "تهران", "تهران")
	require.NoError(t, err)

	end := "2024-06-01"
	require.NoError(t, experiences.Save(ctx, &models.Experience{
		ClinicID:        clinicID,
		UserID:          42,
		StartDate:       "2024-01-01",
		EndDate:         &end,
		Payment:         "ماهانه",
		ContractSigned:  true,
		PatientCulture:  "خوب",
		PatientCount:    "زیاد",
		InsuranceStatus: "دارد",
		Environment:     "مناسب",
		Rating:          5,
		Comment:         "عالی",
	}))

	exps, err := experiences.ByClinic(ctx, clinicID)
	require.NoError(t, err)
	require.Len(t, exps, 1)

	exp := exps[0]
	assert.Equal(t, int64(42), exp.UserID)
	assert.Equal(t, "2024-01-01", exp.StartDate)
	require.NotNil(t, exp.EndDate)
	assert.Equal(t, "2024-06-01", *exp.EndDate)
	assert.True(t, exp.ContractSigned)
	assert.Equal(t, 5, exp.Rating)
	assert.Equal(t, "عالی", exp.Comment)
	assert.WithinDuration(t, time.Now(), exp.CreatedAt, time.Minute, "created_at is server-assigned")
}

func TestExperienceNilEndDateRoundTrips(t *testing.T) {
	db := util.SetupTestDatabase(t)
	clinics := services.NewClinicService(db)
	experiences := services.NewExperienceService(db)
	ctx := context.Background()

	clinicID, err := clinics.GetOrCreate(ctx, "کلینیک", "قم", "قم")
	require.NoError(t, err)

	require.NoError(t, experiences.Save(ctx, &models.Experience{
		ClinicID:  clinicID,
		UserID:    1,
		StartDate: "2024-01-01",
		Rating:    3,
	}))

	exps, err := experiences.ByClinic(ctx, clinicID)
	require.NoError(t, err)
	require.Len(t, exps, 1)
	assert.Nil(t, exps[0].EndDate, "absent end date stays absent")
}

func TestExperienceListNewestFirst(t *testing.T) {
	db := util.SetupTestDatabase(t)
	clinics := services.NewClinicService(db)
	experiences := services.NewExperienceService(db)
	ctx := context.Background()

	clinicID, err := clinics.GetOrCreate(ctx, "کلینیک", "یزد", "یزد")
	require.NoError(t, err)

	for _, comment := range []string{"اول", "دوم", "سوم"} {
		require.NoError(t, experiences.Save(ctx, &models.Experience{
			ClinicID:  clinicID,
			UserID:    1,
			StartDate: "2024-01-01",
			Rating:    4,
			Comment:   comment,
		}))
	}

	exps, err := experiences.ByClinic(ctx, clinicID)
	require.NoError(t, err)
	require.Len(t, exps, 3)
	assert.Equal(t, "سوم", exps[0].Comment)
	assert.Equal(t, "دوم", exps[1].Comment)
	assert.Equal(t, "اول", exps[2].Comment)
}

func TestExperienceSaveUnknownClinic(t *testing.T) {
	db := util.SetupTestDatabase(t)
	experiences := services.NewExperienceService(db)

	err := experiences.Save(context.Background(), &models.Experience{
		ClinicID:  99999,
		UserID:    1,
		StartDate: "2024-01-01",
		Rating:    3,
	})
	assert.ErrorIs(t, err, services.ErrNotFound, "FK violation surfaces as not-found")
}

func TestExperienceSaveInvalidRating(t *testing.T) {
	db := util.SetupTestDatabase(t)
	experiences := services.NewExperienceService(db)

	err := experiences.Save(context.Background(), &models.Experience{
		ClinicID:  1,
		UserID:    1,
		StartDate: "2024-01-01",
		Rating:    6,
	})
	assert.True(t, services.IsValidationError(err))
}

func TestClinicDeleteCascadesExperiences(t *testing.T) {
	db := util.SetupTestDatabase(t)
	clinics := services.NewClinicService(db)
	experiences := services.NewExperienceService(db)
	ctx := context.Background()

	clinicID, err := clinics.GetOrCreate(ctx, "کلینیک", "سمنان", "سمنان")
	require.NoError(t, err)
	require.NoError(t, experiences.Save(ctx, &models.Experience{
		ClinicID:  clinicID,
		UserID:    1,
		StartDate: "2024-01-01",
		Rating:    2,
	}))

	_, err = db.ExecContext(ctx, "DELETE FROM clinics WHERE id = $1", clinicID)
	require.NoError(t, err)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM experiences").Scan(&count))
	assert.Zero(t, count, "deleting a clinic removes its experiences")
}
