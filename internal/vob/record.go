package vob

import "strings"

// Section names as they appear in JSON and in catalog target paths.
const (
	SectionPatientInfo   = "patientInfo"
	SectionPolicyInfo    = "policyInfo"
	SectionPlanInfo      = "planInfo"
	SectionMaxDeductible = "maxDeductible"
	SectionBenefits      = "benefits"
	SectionLimitations   = "limitations"
	SectionCallDetails   = "callDetails"
)

// PatientInfo holds the patient and subscriber identity fields.
type PatientInfo struct {
	PatientName    string `json:"patientName"`
	DOB            string `json:"dob"`
	SubscriberName string `json:"subscriberName"`
	SubscriberDOB  string `json:"subscriberDob"`
	MemberID       string `json:"memberId"`
	Relationship   string `json:"relationship"`
}

// PolicyInfo holds carrier and policy identifiers.
type PolicyInfo struct {
	InsuranceCompany string `json:"insuranceCompany"`
	PolicyNumber     string `json:"policyNumber"`
	GroupNumber      string `json:"groupNumber"`
	PayerID          string `json:"payerId"`
	InsurancePhone   string `json:"insurancePhone"`
	EffectiveDate    string `json:"effectiveDate"`
}

// PlanInfo holds plan-level attributes.
type PlanInfo struct {
	PlanType         string `json:"planType"`
	Employer         string `json:"employer"`
	NetworkStatus    string `json:"networkStatus"`
	FeeSchedule      string `json:"feeSchedule"`
	CalendarOrFiscal string `json:"calendarOrFiscal"`
}

// MaxDeductible holds annual maximum and deductible amounts.
type MaxDeductible struct {
	AnnualMaxIndividual  string `json:"annualMaxIndividual"`
	AnnualMaxRemaining   string `json:"annualMaxRemaining"`
	DeductibleIndividual string `json:"deductibleIndividual"`
	DeductibleRemaining  string `json:"deductibleRemaining"`
	DeductibleAppliesTo  string `json:"deductibleAppliesTo"`
}

// Benefits holds coverage percentages and ortho terms.
type Benefits struct {
	Preventive       string `json:"preventive"`
	Basic            string `json:"basic"`
	Major            string `json:"major"`
	Orthodontic      string `json:"orthodontic"`
	OrthoLifetimeMax string `json:"orthoLifetimeMax"`
	OrthoAgeLimit    string `json:"orthoAgeLimit"`
	WaitingPeriods   string `json:"waitingPeriods"`
}

// Limitations holds frequency limitations and clauses.
type Limitations struct {
	ExamFrequency      string `json:"examFrequency"`
	ProphyFrequency    string `json:"prophyFrequency"`
	FMXPanoFrequency   string `json:"fmxPanoFrequency"`
	BWXFrequency       string `json:"bwxFrequency"`
	CrownsFrequency    string `json:"crownsFrequency"`
	MissingToothClause string `json:"missingToothClause"`
	ReplacementClause  string `json:"replacementClause"`
}

// CallDetails holds verification-call bookkeeping.
type CallDetails struct {
	ReferenceNumber string `json:"referenceNumber"`
	RepName         string `json:"repName"`
	CallDate        string `json:"callDate"`
	VerifiedBy      string `json:"verifiedBy"`
	Notes           string `json:"notes"`
}

// BenefitsRecord is the sectioned output of one extraction attempt. A fresh
// record is produced per attempt; the merger reads it but never mutates it.
type BenefitsRecord struct {
	PatientInfo   PatientInfo   `json:"patientInfo"`
	PolicyInfo    PolicyInfo    `json:"policyInfo"`
	PlanInfo      PlanInfo      `json:"planInfo"`
	MaxDeductible MaxDeductible `json:"maxDeductible"`
	Benefits      Benefits      `json:"benefits"`
	Limitations   Limitations   `json:"limitations"`
	CallDetails   CallDetails   `json:"callDetails"`
}

// FormState is the caller-owned, long-lived form data. It shares the record
// shape; the merger's only contract with it is the non-empty-leaf overwrite.
type FormState = BenefitsRecord

// Path addresses one leaf field inside a sectioned record.
type Path struct {
	Section string
	Field   string
}

type leafRef struct {
	Section string
	Field   string
	Value   *string
}

// leaves enumerates every leaf of the record in a stable order. Merge and
// FieldsFound both rely on this being the single source of truth for the
// record's shape.
func (r *BenefitsRecord) leaves() []leafRef {
	return []leafRef{
		{SectionPatientInfo, "patientName", &r.PatientInfo.PatientName},
		{SectionPatientInfo, "dob", &r.PatientInfo.DOB},
		{SectionPatientInfo, "subscriberName", &r.PatientInfo.SubscriberName},
		{SectionPatientInfo, "subscriberDob", &r.PatientInfo.SubscriberDOB},
		{SectionPatientInfo, "memberId", &r.PatientInfo.MemberID},
		{SectionPatientInfo, "relationship", &r.PatientInfo.Relationship},

		{SectionPolicyInfo, "insuranceCompany", &r.PolicyInfo.InsuranceCompany},
		{SectionPolicyInfo, "policyNumber", &r.PolicyInfo.PolicyNumber},
		{SectionPolicyInfo, "groupNumber", &r.PolicyInfo.GroupNumber},
		{SectionPolicyInfo, "payerId", &r.PolicyInfo.PayerID},
		{SectionPolicyInfo, "insurancePhone", &r.PolicyInfo.InsurancePhone},
		{SectionPolicyInfo, "effectiveDate", &r.PolicyInfo.EffectiveDate},

		{SectionPlanInfo, "planType", &r.PlanInfo.PlanType},
		{SectionPlanInfo, "employer", &r.PlanInfo.Employer},
		{SectionPlanInfo, "networkStatus", &r.PlanInfo.NetworkStatus},
		{SectionPlanInfo, "feeSchedule", &r.PlanInfo.FeeSchedule},
		{SectionPlanInfo, "calendarOrFiscal", &r.PlanInfo.CalendarOrFiscal},

		{SectionMaxDeductible, "annualMaxIndividual", &r.MaxDeductible.AnnualMaxIndividual},
		{SectionMaxDeductible, "annualMaxRemaining", &r.MaxDeductible.AnnualMaxRemaining},
		{SectionMaxDeductible, "deductibleIndividual", &r.MaxDeductible.DeductibleIndividual},
		{SectionMaxDeductible, "deductibleRemaining", &r.MaxDeductible.DeductibleRemaining},
		{SectionMaxDeductible, "deductibleAppliesTo", &r.MaxDeductible.DeductibleAppliesTo},

		{SectionBenefits, "preventive", &r.Benefits.Preventive},
		{SectionBenefits, "basic", &r.Benefits.Basic},
		{SectionBenefits, "major", &r.Benefits.Major},
		{SectionBenefits, "orthodontic", &r.Benefits.Orthodontic},
		{SectionBenefits, "orthoLifetimeMax", &r.Benefits.OrthoLifetimeMax},
		{SectionBenefits, "orthoAgeLimit", &r.Benefits.OrthoAgeLimit},
		{SectionBenefits, "waitingPeriods", &r.Benefits.WaitingPeriods},

		{SectionLimitations, "examFrequency", &r.Limitations.ExamFrequency},
		{SectionLimitations, "prophyFrequency", &r.Limitations.ProphyFrequency},
		{SectionLimitations, "fmxPanoFrequency", &r.Limitations.FMXPanoFrequency},
		{SectionLimitations, "bwxFrequency", &r.Limitations.BWXFrequency},
		{SectionLimitations, "crownsFrequency", &r.Limitations.CrownsFrequency},
		{SectionLimitations, "missingToothClause", &r.Limitations.MissingToothClause},
		{SectionLimitations, "replacementClause", &r.Limitations.ReplacementClause},

		{SectionCallDetails, "referenceNumber", &r.CallDetails.ReferenceNumber},
		{SectionCallDetails, "repName", &r.CallDetails.RepName},
		{SectionCallDetails, "callDate", &r.CallDetails.CallDate},
		{SectionCallDetails, "verifiedBy", &r.CallDetails.VerifiedBy},
		{SectionCallDetails, "notes", &r.CallDetails.Notes},
	}
}

// SetField writes v into the leaf addressed by p. Returns false when the
// path names no leaf of the record.
func (r *BenefitsRecord) SetField(p Path, v string) bool {
	for _, lf := range r.leaves() {
		if lf.Section == p.Section && lf.Field == p.Field {
			*lf.Value = v
			return true
		}
	}
	return false
}

// GetField reads the leaf addressed by p.
func (r *BenefitsRecord) GetField(p Path) (string, bool) {
	for _, lf := range r.leaves() {
		if lf.Section == p.Section && lf.Field == p.Field {
			return *lf.Value, true
		}
	}
	return "", false
}

// FieldEntry is a read-only view of one leaf, in declaration order.
type FieldEntry struct {
	Section string
	Field   string
	Value   string
}

// Entries snapshots every leaf of the record in a stable order, for
// renderers that walk the whole form.
func (r *BenefitsRecord) Entries() []FieldEntry {
	refs := r.leaves()
	out := make([]FieldEntry, 0, len(refs))
	for _, lf := range refs {
		out = append(out, FieldEntry{Section: lf.Section, Field: lf.Field, Value: *lf.Value})
	}
	return out
}

// FieldsFound counts the non-empty leaves of the record. This count, not a
// boolean, is the sole success signal surfaced to the caller.
func (r *BenefitsRecord) FieldsFound() int {
	n := 0
	for _, lf := range r.leaves() {
		if strings.TrimSpace(*lf.Value) != "" {
			n++
		}
	}
	return n
}
