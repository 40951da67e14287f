package format

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dandanapp/dandanbot/pkg/models"
)

// PageLimit is the per-message size threshold in characters (code points).
// A block that would push the running buffer past it starts a new message.
const PageLimit = 3800

const (
	unknownEndDate = "نامشخص"
	contractYes    = "بله"
	contractNo     = "خیر"
	blockSeparator = "-----"
)

// ClinicDetail renders a clinic's full experience history as an ordered
// sequence of message chunks. The header is always its own leading chunk;
// experience blocks (newest first, as the store returns them) are packed
// into subsequent chunks of at most PageLimit characters each.
func ClinicDetail(clinic *models.Clinic, exps []models.Experience) []string {
	header := fmt.Sprintf("%s (%s، %s)\n\n", clinic.Name, clinic.City, clinic.Province)
	pages := []string{header}

	var buf strings.Builder
	for _, exp := range exps {
		blk := experienceBlock(exp)
		if buf.Len() > 0 && utf8.RuneCountInString(buf.String())+utf8.RuneCountInString(blk) > PageLimit {
			pages = append(pages, buf.String())
			buf.Reset()
		}
		buf.WriteString(blk)
	}
	if buf.Len() > 0 {
		pages = append(pages, buf.String())
	}
	return pages
}

func experienceBlock(exp models.Experience) string {
	end := unknownEndDate
	if exp.EndDate != nil && *exp.EndDate != "" {
		end = *exp.EndDate
	}
	contract := contractNo
	if exp.ContractSigned {
		contract = contractYes
	}

	lines := []string{
		Stars(float64(exp.Rating)),
		exp.StartDate + "-" + end,
		orDash(exp.Payment),
		contract,
		orDash(exp.PatientCulture),
		orDash(exp.PatientCount),
		orDash(exp.InsuranceStatus),
		orDash(exp.Environment),
	}
	if exp.Comment != "" {
		lines = append(lines, exp.Comment)
	}
	lines = append(lines, exp.CreatedAt.Format("2006-01-02 15:04:05"))

	return strings.Join(lines, "\n") + "\n" + blockSeparator + "\n"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
