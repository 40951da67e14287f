package format

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dandanapp/dandanbot/pkg/models"
)

var testClinic = &models.Clinic{
	ID:       1,
	Name:     "کلینیک لبخند",
	Province: "تهران",
	City:     "تهران",
}

func makeExperience(rating int, comment string) models.Experience {
	end := "2024-06-01"
	return models.Experience{
		ClinicID:        1,
		UserID:          42,
		StartDate:       "2024-01-01",
		EndDate:         &end,
		Payment:         "ماهانه",
		ContractSigned:  true,
		PatientCulture:  "خوب",
		PatientCount:    "زیاد",
		InsuranceStatus: "دارد",
		Environment:     "مناسب",
		Rating:          rating,
		Comment:         comment,
		CreatedAt:       time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestClinicDetailHeaderIsOwnPage(t *testing.T) {
	pages := ClinicDetail(testClinic, []models.Experience{makeExperience(4, "")})

	require.Len(t, pages, 2)
	assert.Equal(t, "کلینیک لبخند (تهران، تهران)\n\n", pages[0])
	assert.Contains(t, pages[1], "★★★★☆")
	assert.Contains(t, pages[1], "2024-01-01-2024-06-01")
	assert.Contains(t, pages[1], "2024-07-01 12:00:00")
}

func TestClinicDetailUnknownEndDate(t *testing.T) {
	exp := makeExperience(3, "")
	exp.EndDate = nil

	pages := ClinicDetail(testClinic, []models.Experience{exp})
	require.Len(t, pages, 2)
	assert.Contains(t, pages[1], "2024-01-01-نامشخص")
}

func TestClinicDetailCommentOnlyWhenPresent(t *testing.T) {
	with := ClinicDetail(testClinic, []models.Experience{makeExperience(5, "عالی بود")})
	assert.Contains(t, with[1], "عالی بود")

	without := ClinicDetail(testClinic, []models.Experience{makeExperience(5, "")})
	lines := strings.Split(strings.TrimSuffix(without[1], "\n"), "\n")
	assert.Len(t, lines, 10, "block without comment has exactly ten lines incl. separator")
}

func TestClinicDetailEmptyFieldsRenderDash(t *testing.T) {
	exp := makeExperience(2, "")
	exp.Payment = ""
	exp.InsuranceStatus = ""

	pages := ClinicDetail(testClinic, []models.Experience{exp})
	lines := strings.Split(pages[1], "\n")
	assert.Equal(t, "-", lines[2], "empty payment renders a dash")
	assert.Equal(t, "-", lines[6], "empty insurance renders a dash")
}

func TestClinicDetailPagination(t *testing.T) {
	// Large comments force the concatenated blocks well past the threshold
	longComment := strings.Repeat("نظر", 300) // 900 characters
	var exps []models.Experience
	for i := 0; i < 8; i++ {
		exps = append(exps, makeExperience(1+i%5, longComment))
	}

	pages := ClinicDetail(testClinic, exps)
	require.GreaterOrEqual(t, len(pages), 3, "header plus at least two block pages")

	// Every page stays under the threshold plus one block of overflow
	blockSize := utf8.RuneCountInString(experienceBlock(exps[0]))
	for i, page := range pages {
		assert.LessOrEqual(t, utf8.RuneCountInString(page), PageLimit+blockSize, "page %d", i)
	}

	// Concatenating all pages reconstructs the full, ordered data
	joined := strings.Join(pages, "")
	assert.Equal(t, len(exps), strings.Count(joined, blockSeparator))
	var single strings.Builder
	single.WriteString(pages[0])
	for _, exp := range exps {
		single.WriteString(experienceBlock(exp))
	}
	assert.Equal(t, single.String(), joined)
}

func TestClinicDetailNoExperiences(t *testing.T) {
	pages := ClinicDetail(testClinic, nil)
	require.Len(t, pages, 1, "only the header is delivered")
}

func TestProvinceSummary(t *testing.T) {
	stats := []models.ClinicStats{
		{ClinicID: 1, Name: "کلینیک الف", City: "تهران", Average: 4.5, Count: 2},
		{ClinicID: 2, Name: "کلینیک ب", City: "کرج", Average: 0, Count: 0},
	}

	out := ProvinceSummary(stats)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "کلینیک الف (تهران) ★★★★⭑ (2)", lines[0])
	assert.Equal(t, "کلینیک ب (کرج) ☆☆☆☆☆ (0)", lines[1])
}
