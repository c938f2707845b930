package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/dentalops/vob-extractor/internal/repository"
	"github.com/dentalops/vob-extractor/internal/vob"
)

// Service produces XLSX bytes for stored verification forms.
type Service struct {
	forms  repository.FormRepository
	logger *slog.Logger
}

func NewService(forms repository.FormRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{forms: forms, logger: logger}
}

var sectionTitles = map[string]string{
	vob.SectionPatientInfo:   "Patient Information",
	vob.SectionPolicyInfo:    "Policy Information",
	vob.SectionPlanInfo:      "Plan Information",
	vob.SectionMaxDeductible: "Maximums & Deductibles",
	vob.SectionBenefits:      "Benefits",
	vob.SectionLimitations:   "Limitations",
	vob.SectionCallDetails:   "Call Details",
}

var fieldTitles = map[string]string{
	"patientName":          "Patient Name",
	"dob":                  "Date of Birth",
	"subscriberName":       "Subscriber Name",
	"subscriberDob":        "Subscriber DOB",
	"memberId":             "Member ID",
	"relationship":         "Relationship",
	"insuranceCompany":     "Insurance Company",
	"policyNumber":         "Policy Number",
	"groupNumber":          "Group Number",
	"payerId":              "Payer ID",
	"insurancePhone":       "Insurance Phone",
	"effectiveDate":        "Effective Date",
	"planType":             "Plan Type",
	"employer":             "Employer",
	"networkStatus":        "Network Status",
	"feeSchedule":          "Fee Schedule",
	"calendarOrFiscal":     "Calendar or Fiscal Year",
	"annualMaxIndividual":  "Annual Max (Individual)",
	"annualMaxRemaining":   "Annual Max Remaining",
	"deductibleIndividual": "Deductible (Individual)",
	"deductibleRemaining":  "Deductible Remaining",
	"deductibleAppliesTo":  "Deductible Applies To",
	"preventive":           "Preventive",
	"basic":                "Basic",
	"major":                "Major",
	"orthodontic":          "Orthodontic",
	"orthoLifetimeMax":     "Ortho Lifetime Max",
	"orthoAgeLimit":        "Ortho Age Limit",
	"waitingPeriods":       "Waiting Periods",
	"examFrequency":        "Exam Frequency",
	"prophyFrequency":      "Prophy Frequency",
	"fmxPanoFrequency":     "FMX/Pano Frequency",
	"bwxFrequency":         "BWX Frequency",
	"crownsFrequency":      "Crowns Frequency",
	"missingToothClause":   "Missing Tooth Clause",
	"replacementClause":    "Replacement Clause",
	"referenceNumber":      "Reference Number",
	"repName":              "Rep Name",
	"callDate":             "Call Date",
	"verifiedBy":           "Verified By",
	"notes":                "Notes",
}

// ExportFormXLSX returns an XLSX workbook (as bytes) for one stored form.
// Sections render as bold header rows followed by label/value rows.
func (s *Service) ExportFormXLSX(ctx context.Context, formID uuid.UUID) ([]byte, error) {
	start := time.Now()

	form, err := s.forms.GetByID(ctx, formID)
	if err != nil {
		return nil, fmt.Errorf("load form: %w", err)
	}

	buf, err := RenderRecordXLSX(&form.Record, form.PatientName)
	if err != nil {
		return nil, err
	}

	s.logger.Info("export.xlsx.ok",
		"form_id", formID.String(),
		"fields_found", form.Record.FieldsFound(),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf, nil
}

// RenderRecordXLSX builds the workbook without touching storage, so the
// CLI can export ad-hoc extraction results too.
func RenderRecordXLSX(record *vob.BenefitsRecord, title string) ([]byte, error) {
	f := excelize.NewFile()
	const sheet = "Verification"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	if index, _ := f.GetSheetIndex("Sheet1"); index != -1 {
		_ = f.DeleteSheet("Sheet1")
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})

	write := func(row, col int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, v)
	}

	row := 1
	if title != "" {
		write(row, 1, "Insurance Verification")
		write(row, 2, title)
		cell, _ := excelize.CoordinatesToCellName(1, row)
		_ = f.SetCellStyle(sheet, cell, cell, headerStyle)
		row += 2
	}

	lastSection := ""
	for _, entry := range record.Entries() {
		if entry.Section != lastSection {
			if lastSection != "" {
				row++
			}
			sectionTitle := sectionTitles[entry.Section]
			if sectionTitle == "" {
				sectionTitle = entry.Section
			}
			write(row, 1, sectionTitle)
			cell, _ := excelize.CoordinatesToCellName(1, row)
			_ = f.SetCellStyle(sheet, cell, cell, headerStyle)
			row++
			lastSection = entry.Section
		}

		label := fieldTitles[entry.Field]
		if label == "" {
			label = entry.Field
		}
		write(row, 1, label)
		write(row, 2, entry.Value)
		row++
	}

	_ = f.SetColWidth(sheet, "A", "A", 26)
	_ = f.SetColWidth(sheet, "B", "B", 48)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}
