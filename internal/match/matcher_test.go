package match

import (
	"strings"
	"testing"

	"github.com/dentalops/vob-extractor/internal/extract"
)

func viewOf(text string) extract.TextView {
	return extract.TextView{Raw: strings.ReplaceAll(text, "\n", " "), Paired: text, Pages: 1}
}

func TestMatchLabeledFields(t *testing.T) {
	text := strings.Join([]string{
		"Patient Name: Jane Doe DOB: 01/02/1990",
		"Member ID: ABC123456",
		"Insurance Company: Guardian",
		"Group Number: G-4417",
		"Annual Maximum: $1,500.00",
		"Deductible: $50",
		"Preventive Coverage: 100%",
		"Basic Coverage: 80%",
		"Major Coverage: 50%",
	}, "\n")

	m := NewMatcher(nil)
	rec := m.Match(viewOf(text))

	checks := []struct {
		name, got, want string
	}{
		{"patientName", rec.PatientInfo.PatientName, "Jane Doe"},
		{"dob", rec.PatientInfo.DOB, "01/02/1990"},
		{"memberId", rec.PatientInfo.MemberID, "ABC123456"},
		{"insuranceCompany", rec.PolicyInfo.InsuranceCompany, "Guardian"},
		{"groupNumber", rec.PolicyInfo.GroupNumber, "G-4417"},
		{"annualMaxIndividual", rec.MaxDeductible.AnnualMaxIndividual, "1,500"},
		{"deductibleIndividual", rec.MaxDeductible.DeductibleIndividual, "50"},
		{"preventive", rec.Benefits.Preventive, "100%"},
		{"basic", rec.Benefits.Basic, "80%"},
		{"major", rec.Benefits.Major, "50%"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %q, want %q", c.name, c.got, c.want)
		}
	}
	if found := rec.FieldsFound(); found < 3 {
		t.Errorf("FieldsFound() = %d, want at least 3", found)
	}
}

func TestMatchIsCaseInsensitive(t *testing.T) {
	m := NewMatcher(nil)
	rec := m.Match(viewOf("PATIENT NAME: JOHN SMITH\nGROUP NUMBER: 778812"))

	if rec.PatientInfo.PatientName != "JOHN SMITH" {
		t.Errorf("patientName = %q, want %q", rec.PatientInfo.PatientName, "JOHN SMITH")
	}
	if rec.PolicyInfo.GroupNumber != "778812" {
		t.Errorf("groupNumber = %q, want %q", rec.PolicyInfo.GroupNumber, "778812")
	}
}

func TestMatchRejectsImplausiblePercentage(t *testing.T) {
	m := NewMatcher(nil)
	rec := m.Match(viewOf("Basic Coverage: 150%"))

	if rec.Benefits.Basic != "" {
		t.Errorf("basic = %q, want empty for out-of-range percentage", rec.Benefits.Basic)
	}
}

func TestMatchEmptyTextFindsNothing(t *testing.T) {
	m := NewMatcher(nil)
	rec := m.Match(extract.TextView{})

	if found := rec.FieldsFound(); found != 0 {
		t.Errorf("FieldsFound() = %d, want 0", found)
	}
}

func TestMatchColumnLayout(t *testing.T) {
	text := strings.Join([]string{
		"Subscriber Name        Robert Brown",
		"Effective Date         03/01/2023",
	}, "\n")

	m := NewMatcher(nil)
	rec := m.Match(viewOf(text))

	if rec.PatientInfo.SubscriberName != "Robert Brown" {
		t.Errorf("subscriberName = %q, want %q", rec.PatientInfo.SubscriberName, "Robert Brown")
	}
	if rec.PolicyInfo.EffectiveDate != "03/01/2023" {
		t.Errorf("effectiveDate = %q, want %q", rec.PolicyInfo.EffectiveDate, "03/01/2023")
	}
}

func TestDetectorsFillUnlabeledFields(t *testing.T) {
	text := strings.Join([]string{
		"Delta Dental of California",
		"This is a PPO plan, in-network benefits summary",
	}, "\n")

	m := NewMatcher(nil)
	rec := m.Match(viewOf(text))

	if rec.PolicyInfo.InsuranceCompany != "Delta Dental" {
		t.Errorf("insuranceCompany = %q, want %q", rec.PolicyInfo.InsuranceCompany, "Delta Dental")
	}
	if rec.PlanInfo.PlanType != "PPO" {
		t.Errorf("planType = %q, want %q", rec.PlanInfo.PlanType, "PPO")
	}
	if rec.PlanInfo.NetworkStatus != "In Network" {
		t.Errorf("networkStatus = %q, want %q", rec.PlanInfo.NetworkStatus, "In Network")
	}
}

func TestDetectorPrefersDHMOOverHMO(t *testing.T) {
	m := NewMatcher(nil)
	rec := m.Match(viewOf("Coverage summary for your DHMO plan"))

	if rec.PlanInfo.PlanType != "DHMO" {
		t.Errorf("planType = %q, want %q", rec.PlanInfo.PlanType, "DHMO")
	}
}

func TestCoveragePercentFallback(t *testing.T) {
	// no "label: value" pair, percentages sit in a table-ish layout
	text := "Benefit breakdown\nPreventive    100\nMajor    50"

	m := NewMatcher(nil)
	rec := m.Match(viewOf(text))

	if rec.Benefits.Preventive != "100%" {
		t.Errorf("preventive = %q, want %q", rec.Benefits.Preventive, "100%")
	}
	if rec.Benefits.Major != "50%" {
		t.Errorf("major = %q, want %q", rec.Benefits.Major, "50%")
	}
}

func TestCutAtNextLabel(t *testing.T) {
	m := NewMatcher(nil)
	tests := []struct {
		in, want string
	}{
		{"Jane Doe DOB: 01/02/1990", "Jane Doe"},
		{"Jane Doe", "Jane Doe"},
		{"Acme Corp Group Number: 12", "Acme Corp"},
	}
	for _, tt := range tests {
		if got := m.cutAtNextLabel(tt.in); got != tt.want {
			t.Errorf("cutAtNextLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
