// Package exports renders lead data into xlsx workbooks, for direct
// download or archival in object storage.
package exports

import (
	"fmt"
	"strings"
	"time"

	"github.com/tealeg/xlsx/v2"

	"boothlead_backend/internal/leads/domain"
	"boothlead_backend/internal/leads/scoring"
	"boothlead_backend/internal/leads/segment"
)

var leadHeaders = []string{
	"Captured At", "First Name", "Last Name", "Business Name", "Business Type",
	"Email", "Phone", "City", "State", "Zip",
	"Brands", "Categories", "Preferred Contact", "Dwell Seconds", "Visits",
	"Placed Order", "Notes", "Lead Score", "Lead Grade", "Engagement Level",
}

// BuildWorkbook flattens every lead into a Leads sheet and derives a
// Summary sheet from a single segmentation pass. Scores are recomputed
// from the snapshots so the two sheets always agree.
func BuildWorkbook(leads []domain.Lead) (*xlsx.File, error) {
	file := xlsx.NewFile()

	leadSheet, err := file.AddSheet("Leads")
	if err != nil {
		return nil, fmt.Errorf("failed to add Leads sheet: %w", err)
	}

	headerRow := leadSheet.AddRow()
	for _, h := range leadHeaders {
		headerRow.AddCell().Value = h
	}

	for _, lead := range leads {
		breakdown := scoring.Score(lead)
		row := leadSheet.AddRow()

		row.AddCell().Value = lead.CapturedAt.Format(time.RFC3339)
		row.AddCell().Value = lead.FirstName
		row.AddCell().Value = deref(lead.LastName)
		row.AddCell().Value = deref(lead.BusinessName)
		row.AddCell().Value = string(lead.BusinessType)
		row.AddCell().Value = deref(lead.Email)
		row.AddCell().Value = deref(lead.Phone)
		row.AddCell().Value = deref(lead.City)
		row.AddCell().Value = deref(lead.State)
		row.AddCell().Value = deref(lead.ZipCode)
		row.AddCell().Value = brandList(lead)
		row.AddCell().Value = categoryList(lead)
		row.AddCell().Value = contactMethod(lead)
		row.AddCell().Value = dwell(lead)
		row.AddCell().SetInt(lead.VisitCount)
		row.AddCell().Value = yesNo(lead.PlacedOrder)
		row.AddCell().Value = deref(lead.Notes)
		row.AddCell().SetInt(breakdown.Total)
		row.AddCell().Value = string(breakdown.Grade)
		row.AddCell().Value = string(breakdown.Tier)
	}

	summarySheet, err := file.AddSheet("Summary")
	if err != nil {
		return nil, fmt.Errorf("failed to add Summary sheet: %w", err)
	}
	writeSummary(summarySheet, leads)

	return file, nil
}

func writeSummary(sheet *xlsx.Sheet, leads []domain.Lead) {
	seg := segment.Segment(leads)

	addCount := func(label string, count int) {
		row := sheet.AddRow()
		row.AddCell().Value = label
		row.AddCell().SetInt(count)
	}

	addCount("Total Leads", len(leads))

	sheet.AddRow()
	addCount("Hot", len(seg.Hot))
	addCount("Warm", len(seg.Warm))
	addCount("Cold", len(seg.Cold))

	sheet.AddRow()
	for _, grade := range []scoring.Grade{scoring.GradeA, scoring.GradeB, scoring.GradeC, scoring.GradeD} {
		addCount("Grade "+string(grade), len(seg.ByGrade[grade]))
	}

	sheet.AddRow()
	addCount("Wholesale", len(seg.ByBusinessType[domain.BusinessTypeWholesale]))
	addCount("Retail", len(seg.ByBusinessType[domain.BusinessTypeRetail]))
}

func brandList(lead domain.Lead) string {
	names := make([]string, 0, len(lead.Brands))
	for _, b := range lead.Brands {
		names = append(names, b.Name())
	}
	return strings.Join(names, ", ")
}

func categoryList(lead domain.Lead) string {
	names := make([]string, 0, len(lead.Categories))
	for _, c := range lead.Categories {
		names = append(names, c.Name())
	}
	return strings.Join(names, ", ")
}

func contactMethod(lead domain.Lead) string {
	if lead.ContactMethod == nil {
		return ""
	}
	return lead.ContactMethod.Name()
}

func dwell(lead domain.Lead) string {
	if lead.DwellSeconds == nil {
		return ""
	}
	return fmt.Sprintf("%d", *lead.DwellSeconds)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
