package vob

// ValueKind tells the matcher how to validate and render an extracted value.
type ValueKind int

const (
	FreeText ValueKind = iota
	Currency
	Percentage
	Date
)

// FieldSpec describes one form field to recover: the label synonyms to
// search for (tried in order, first plausible match wins), the kind of
// value expected after the label, and the record leaf it fills.
type FieldSpec struct {
	Labels []string
	Kind   ValueKind
	Target Path
}

// Catalog returns the declarative label catalog driving the heuristic
// matcher. Labels are stored lowercase and without trailing colons; the
// matcher is case-insensitive and tolerates ":" or "-" after the label.
func Catalog() []FieldSpec {
	return []FieldSpec{
		// patientInfo
		{Labels: []string{"patient name", "member name", "patient"}, Kind: FreeText, Target: Path{SectionPatientInfo, "patientName"}},
		{Labels: []string{"patient dob", "date of birth", "birth date", "dob"}, Kind: Date, Target: Path{SectionPatientInfo, "dob"}},
		{Labels: []string{"subscriber name", "policy holder", "policyholder", "insured name"}, Kind: FreeText, Target: Path{SectionPatientInfo, "subscriberName"}},
		{Labels: []string{"subscriber dob", "subscriber date of birth"}, Kind: Date, Target: Path{SectionPatientInfo, "subscriberDob"}},
		{Labels: []string{"member id", "subscriber id", "id number", "id #"}, Kind: FreeText, Target: Path{SectionPatientInfo, "memberId"}},
		{Labels: []string{"relationship to subscriber", "relationship"}, Kind: FreeText, Target: Path{SectionPatientInfo, "relationship"}},

		// policyInfo
		{Labels: []string{"insurance company", "insurance carrier", "carrier name", "carrier", "payer name"}, Kind: FreeText, Target: Path{SectionPolicyInfo, "insuranceCompany"}},
		{Labels: []string{"policy number", "policy #", "certificate number"}, Kind: FreeText, Target: Path{SectionPolicyInfo, "policyNumber"}},
		{Labels: []string{"group number", "group #", "group no"}, Kind: FreeText, Target: Path{SectionPolicyInfo, "groupNumber"}},
		{Labels: []string{"payer id", "payor id"}, Kind: FreeText, Target: Path{SectionPolicyInfo, "payerId"}},
		{Labels: []string{"insurance phone", "phone number", "customer service", "phone"}, Kind: FreeText, Target: Path{SectionPolicyInfo, "insurancePhone"}},
		{Labels: []string{"effective date", "coverage effective", "plan effective"}, Kind: Date, Target: Path{SectionPolicyInfo, "effectiveDate"}},

		// planInfo
		{Labels: []string{"plan type", "type of plan"}, Kind: FreeText, Target: Path{SectionPlanInfo, "planType"}},
		{Labels: []string{"employer name", "employer", "group name"}, Kind: FreeText, Target: Path{SectionPlanInfo, "employer"}},
		// bare "network" is deliberately not a label here: phrases like
		// "in-network benefits" would satisfy it with junk, the keyword
		// detector handles those documents instead
		{Labels: []string{"network status"}, Kind: FreeText, Target: Path{SectionPlanInfo, "networkStatus"}},
		{Labels: []string{"fee schedule"}, Kind: FreeText, Target: Path{SectionPlanInfo, "feeSchedule"}},
		{Labels: []string{"benefit period", "calendar year or fiscal", "plan year"}, Kind: FreeText, Target: Path{SectionPlanInfo, "calendarOrFiscal"}},

		// maxDeductible
		{Labels: []string{"annual max (ind)", "annual maximum (individual)", "annual maximum", "annual max", "yearly maximum"}, Kind: Currency, Target: Path{SectionMaxDeductible, "annualMaxIndividual"}},
		{Labels: []string{"max remaining", "maximum remaining", "remaining maximum", "remaining benefits"}, Kind: Currency, Target: Path{SectionMaxDeductible, "annualMaxRemaining"}},
		{Labels: []string{"deductible (ind)", "individual deductible", "deductible"}, Kind: Currency, Target: Path{SectionMaxDeductible, "deductibleIndividual"}},
		{Labels: []string{"deductible remaining", "remaining deductible"}, Kind: Currency, Target: Path{SectionMaxDeductible, "deductibleRemaining"}},
		{Labels: []string{"deductible applies to", "applies to"}, Kind: FreeText, Target: Path{SectionMaxDeductible, "deductibleAppliesTo"}},

		// benefits
		{Labels: []string{"preventive coverage", "preventive/diagnostic", "preventive"}, Kind: Percentage, Target: Path{SectionBenefits, "preventive"}},
		{Labels: []string{"basic coverage", "basic services", "basic"}, Kind: Percentage, Target: Path{SectionBenefits, "basic"}},
		{Labels: []string{"major coverage", "major services", "major"}, Kind: Percentage, Target: Path{SectionBenefits, "major"}},
		{Labels: []string{"orthodontic coverage", "orthodontics", "orthodontic", "ortho coverage"}, Kind: Percentage, Target: Path{SectionBenefits, "orthodontic"}},
		{Labels: []string{"ortho lifetime max", "orthodontic lifetime maximum", "lifetime max"}, Kind: Currency, Target: Path{SectionBenefits, "orthoLifetimeMax"}},
		{Labels: []string{"ortho age limit", "age limit"}, Kind: FreeText, Target: Path{SectionBenefits, "orthoAgeLimit"}},
		{Labels: []string{"waiting period", "waiting periods"}, Kind: FreeText, Target: Path{SectionBenefits, "waitingPeriods"}},

		// limitations
		{Labels: []string{"exam frequency", "exams"}, Kind: FreeText, Target: Path{SectionLimitations, "examFrequency"}},
		{Labels: []string{"prophy frequency", "cleaning frequency", "prophy"}, Kind: FreeText, Target: Path{SectionLimitations, "prophyFrequency"}},
		{Labels: []string{"fmx/pano frequency", "fmx frequency", "pano frequency", "fmx"}, Kind: FreeText, Target: Path{SectionLimitations, "fmxPanoFrequency"}},
		{Labels: []string{"bwx frequency", "bitewing frequency", "bitewings"}, Kind: FreeText, Target: Path{SectionLimitations, "bwxFrequency"}},
		{Labels: []string{"crown frequency", "crowns frequency", "crowns"}, Kind: FreeText, Target: Path{SectionLimitations, "crownsFrequency"}},
		{Labels: []string{"missing tooth clause", "missing tooth"}, Kind: FreeText, Target: Path{SectionLimitations, "missingToothClause"}},
		{Labels: []string{"replacement clause", "replacement"}, Kind: FreeText, Target: Path{SectionLimitations, "replacementClause"}},

		// callDetails
		{Labels: []string{"reference number", "reference #", "ref number", "ref #", "call reference"}, Kind: FreeText, Target: Path{SectionCallDetails, "referenceNumber"}},
		{Labels: []string{"rep name", "representative", "spoke with", "spoke to"}, Kind: FreeText, Target: Path{SectionCallDetails, "repName"}},
		{Labels: []string{"call date", "date of call"}, Kind: Date, Target: Path{SectionCallDetails, "callDate"}},
		{Labels: []string{"verified by"}, Kind: FreeText, Target: Path{SectionCallDetails, "verifiedBy"}},
	}
}
