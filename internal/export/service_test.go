package export

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/dentalops/vob-extractor/internal/common"
	"github.com/dentalops/vob-extractor/internal/repository"
	"github.com/dentalops/vob-extractor/internal/vob"
)

func sampleRecord() vob.BenefitsRecord {
	var rec vob.BenefitsRecord
	rec.PatientInfo.PatientName = "Jane Doe"
	rec.PolicyInfo.InsuranceCompany = "Guardian"
	rec.Benefits.Preventive = "100%"
	return rec
}

func TestRenderRecordXLSX(t *testing.T) {
	rec := sampleRecord()
	data, err := RenderRecordXLSX(&rec, "")
	if err != nil {
		t.Fatalf("RenderRecordXLSX() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	const sheet = "Verification"
	got := func(cell string) string {
		v, err := f.GetCellValue(sheet, cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s): %v", cell, err)
		}
		return v
	}

	if v := got("A1"); v != "Patient Information" {
		t.Errorf("A1 = %q, want section header", v)
	}
	if v := got("A2"); v != "Patient Name" {
		t.Errorf("A2 = %q, want field label", v)
	}
	if v := got("B2"); v != "Jane Doe" {
		t.Errorf("B2 = %q, want field value", v)
	}

	// every populated value lands somewhere in the sheet
	rows, err := f.GetRows(sheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	want := map[string]bool{"Jane Doe": false, "Guardian": false, "100%": false}
	for _, row := range rows {
		for _, cell := range row {
			if _, ok := want[cell]; ok {
				want[cell] = true
			}
		}
	}
	for v, seen := range want {
		if !seen {
			t.Errorf("value %q not present in workbook", v)
		}
	}
}

func TestRenderRecordXLSXWithTitle(t *testing.T) {
	rec := sampleRecord()
	data, err := RenderRecordXLSX(&rec, "Jane Doe")
	if err != nil {
		t.Fatalf("RenderRecordXLSX() error = %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	if v, _ := f.GetCellValue("Verification", "A1"); v != "Insurance Verification" {
		t.Errorf("A1 = %q, want title row", v)
	}
	if v, _ := f.GetCellValue("Verification", "B1"); v != "Jane Doe" {
		t.Errorf("B1 = %q, want patient name", v)
	}
}

type fakeForms struct {
	form *repository.VOBForm
}

func (f *fakeForms) Create(ctx context.Context, form *repository.VOBForm) (uuid.UUID, error) {
	return form.ID, nil
}

func (f *fakeForms) GetByID(ctx context.Context, id uuid.UUID) (*repository.VOBForm, error) {
	if f.form == nil || f.form.ID != id {
		return nil, common.NewAppError("FORM_NOT_FOUND", id.String(), common.ErrNotFound)
	}
	return f.form, nil
}

func (f *fakeForms) Update(ctx context.Context, id uuid.UUID, record vob.BenefitsRecord) error {
	return nil
}

func (f *fakeForms) ListRecent(ctx context.Context, limit int) ([]*repository.VOBForm, error) {
	return nil, nil
}

func TestExportFormXLSX(t *testing.T) {
	form := &repository.VOBForm{ID: uuid.New(), PatientName: "Jane Doe", Record: sampleRecord()}
	svc := NewService(&fakeForms{form: form}, nil)

	data, err := svc.ExportFormXLSX(context.Background(), form.ID)
	if err != nil {
		t.Fatalf("ExportFormXLSX() error = %v", err)
	}
	if _, err := excelize.OpenReader(bytes.NewReader(data)); err != nil {
		t.Errorf("output is not a readable workbook: %v", err)
	}

	if _, err := svc.ExportFormXLSX(context.Background(), uuid.New()); err == nil {
		t.Error("ExportFormXLSX() succeeded for unknown form id")
	}
}
