package llm

import "github.com/dentalops/vob-extractor/internal/vob"

// sectionFields is the canonical section->field table for the benefits
// record JSON shape. The schema builder and the sanitizer both derive from
// it so the two can never disagree.
var sectionFields = map[string][]string{
	vob.SectionPatientInfo:   {"patientName", "dob", "subscriberName", "subscriberDob", "memberId", "relationship"},
	vob.SectionPolicyInfo:    {"insuranceCompany", "policyNumber", "groupNumber", "payerId", "insurancePhone", "effectiveDate"},
	vob.SectionPlanInfo:      {"planType", "employer", "networkStatus", "feeSchedule", "calendarOrFiscal"},
	vob.SectionMaxDeductible: {"annualMaxIndividual", "annualMaxRemaining", "deductibleIndividual", "deductibleRemaining", "deductibleAppliesTo"},
	vob.SectionBenefits:      {"preventive", "basic", "major", "orthodontic", "orthoLifetimeMax", "orthoAgeLimit", "waitingPeriods"},
	vob.SectionLimitations:   {"examFrequency", "prophyFrequency", "fmxPanoFrequency", "bwxFrequency", "crownsFrequency", "missingToothClause", "replacementClause"},
	vob.SectionCallDetails:   {"referenceNumber", "repName", "callDate", "verifiedBy", "notes"},
}

var sectionOrder = []string{
	vob.SectionPatientInfo,
	vob.SectionPolicyInfo,
	vob.SectionPlanInfo,
	vob.SectionMaxDeductible,
	vob.SectionBenefits,
	vob.SectionLimitations,
	vob.SectionCallDetails,
}

// BuildBenefitsJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map. It is embedded in the model prompt and also used locally to
// validate the model's response. Every leaf is an optional string: a field
// the model cannot find is simply omitted, never null.
func BuildBenefitsJSONSchema() map[string]any {
	props := map[string]any{}
	for section, fields := range sectionFields {
		sprops := map[string]any{}
		for _, f := range fields {
			sprops[f] = map[string]any{"type": "string"}
		}
		props[section] = map[string]any{
			"type":                 "object",
			"additionalProperties": false,
			"properties":           sprops,
		}
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
	}
}
