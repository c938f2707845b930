package constants

// KnownCarriers is the fixed catalog of dental insurance carriers the
// detector scans for when no labeled insurer field is found. Order matters:
// the first name found in the document wins, so more specific names sit
// above shorter ones they contain (e.g. "Delta Dental" before "Delta").
var KnownCarriers = []string{
	"Delta Dental",
	"MetLife",
	"Cigna",
	"Aetna",
	"United Concordia",
	"UnitedHealthcare",
	"United Healthcare",
	"Guardian",
	"Humana",
	"Ameritas",
	"Principal",
	"GEHA",
	"Anthem",
	"Blue Cross Blue Shield",
	"BCBS",
	"Careington",
	"DenteMax",
	"Liberty Dental",
	"Physicians Mutual",
	"Renaissance",
	"Sun Life",
	"Lincoln Financial",
	"Mutual of Omaha",
	"Assurant",
	"DentaQuest",
}

// PlanType pairs the substring searched for in document text with the
// display value written into the record.
type PlanType struct {
	Keyword string
	Display string
}

// PlanTypes is scanned in order; "dhmo" sits above "hmo" so DHMO plans are
// not reported as HMO.
var PlanTypes = []PlanType{
	{Keyword: "ppo", Display: "PPO"},
	{Keyword: "dhmo", Display: "DHMO"},
	{Keyword: "hmo", Display: "HMO"},
	{Keyword: "indemnity", Display: "Indemnity"},
	{Keyword: "epo", Display: "EPO"},
}

// Network status substrings and their display values.
var (
	InNetworkKeywords  = []string{"in network", "in-network"}
	OutNetworkKeywords = []string{"out of network", "out-of-network"}

	InNetworkDisplay  = "In Network"
	OutNetworkDisplay = "Out of Network"
)
