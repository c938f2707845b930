package vob

import "testing"

func TestMergeOverwritesOnlyNonEmptyLeaves(t *testing.T) {
	form := FormState{
		PatientInfo: PatientInfo{PatientName: "Jane Doe", MemberID: "OLD-1"},
		PolicyInfo:  PolicyInfo{InsuranceCompany: "MetLife"},
	}
	rec := BenefitsRecord{
		PatientInfo: PatientInfo{MemberID: "NEW-2"},
		Benefits:    Benefits{Preventive: "100%"},
	}

	got := Merge(&rec, form)

	if got.PatientInfo.PatientName != "Jane Doe" {
		t.Errorf("patientName = %q, want form value kept", got.PatientInfo.PatientName)
	}
	if got.PatientInfo.MemberID != "NEW-2" {
		t.Errorf("memberId = %q, want new value", got.PatientInfo.MemberID)
	}
	if got.PolicyInfo.InsuranceCompany != "MetLife" {
		t.Errorf("insuranceCompany = %q, want form value kept", got.PolicyInfo.InsuranceCompany)
	}
	if got.Benefits.Preventive != "100%" {
		t.Errorf("preventive = %q, want new value", got.Benefits.Preventive)
	}
}

func TestMergeWhitespaceSourceDoesNotOverwrite(t *testing.T) {
	form := FormState{CallDetails: CallDetails{Notes: "keep me"}}
	rec := BenefitsRecord{CallDetails: CallDetails{Notes: "   "}}

	got := Merge(&rec, form)
	if got.CallDetails.Notes != "keep me" {
		t.Errorf("notes = %q, want %q", got.CallDetails.Notes, "keep me")
	}
}

func TestMergeLeavesInputsUntouched(t *testing.T) {
	form := FormState{PatientInfo: PatientInfo{PatientName: "Original"}}
	rec := BenefitsRecord{PatientInfo: PatientInfo{PatientName: "Replacement"}}

	got := Merge(&rec, form)

	if form.PatientInfo.PatientName != "Original" {
		t.Errorf("form mutated: patientName = %q", form.PatientInfo.PatientName)
	}
	if rec.PatientInfo.PatientName != "Replacement" {
		t.Errorf("record mutated: patientName = %q", rec.PatientInfo.PatientName)
	}
	if got.PatientInfo.PatientName != "Replacement" {
		t.Errorf("merged patientName = %q, want %q", got.PatientInfo.PatientName, "Replacement")
	}
}

func TestMergeEmptyRecordIsIdentity(t *testing.T) {
	form := FormState{
		PatientInfo:   PatientInfo{PatientName: "Jane Doe", DOB: "01/02/1990"},
		MaxDeductible: MaxDeductible{AnnualMaxIndividual: "1,500"},
	}
	got := Merge(&BenefitsRecord{}, form)
	if got != form {
		t.Errorf("Merge(empty, form) = %+v, want form unchanged", got)
	}
}
