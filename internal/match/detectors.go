package match

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dentalops/vob-extractor/constants"
	"github.com/dentalops/vob-extractor/internal/vob"
)

// coverageWindow bounds how far past a category word the tabular coverage
// fallback looks for a percentage.
const coverageWindow = 40

// applyDetectors fills fields that typically do not appear as label:value
// pairs: the carrier name anywhere in the document, the plan type keyword,
// the network status phrase, and percentages sitting in a tabular benefits
// breakdown. Each detector only runs when the labeled search left the field
// empty.
func (m *Matcher) applyDetectors(doc *document, rec *vob.BenefitsRecord) {
	if strings.TrimSpace(rec.PolicyInfo.InsuranceCompany) == "" {
		for _, carrier := range constants.KnownCarriers {
			if strings.Contains(doc.lowerRaw, strings.ToLower(carrier)) {
				rec.PolicyInfo.InsuranceCompany = carrier
				break
			}
		}
	}

	if strings.TrimSpace(rec.PlanInfo.PlanType) == "" {
		for _, pt := range constants.PlanTypes {
			if strings.Contains(doc.lowerRaw, pt.Keyword) {
				rec.PlanInfo.PlanType = pt.Display
				break
			}
		}
	}

	if strings.TrimSpace(rec.PlanInfo.NetworkStatus) == "" {
		rec.PlanInfo.NetworkStatus = detectNetworkStatus(doc.lowerRaw)
	}

	coverageFallbacks := []struct {
		word   string
		target vob.Path
	}{
		{"preventive", vob.Path{Section: vob.SectionBenefits, Field: "preventive"}},
		{"basic", vob.Path{Section: vob.SectionBenefits, Field: "basic"}},
		{"major", vob.Path{Section: vob.SectionBenefits, Field: "major"}},
		{"orthodontic", vob.Path{Section: vob.SectionBenefits, Field: "orthodontic"}},
	}
	for _, cf := range coverageFallbacks {
		if v, ok := rec.GetField(cf.target); !ok || strings.TrimSpace(v) != "" {
			continue
		}
		if v, ok := coveragePercent(doc.lowerRaw, cf.word); ok {
			rec.SetField(cf.target, v)
		}
	}
}

func detectNetworkStatus(lowerRaw string) string {
	for _, kw := range constants.InNetworkKeywords {
		if strings.Contains(lowerRaw, kw) {
			return constants.InNetworkDisplay
		}
	}
	for _, kw := range constants.OutNetworkKeywords {
		if strings.Contains(lowerRaw, kw) {
			return constants.OutNetworkDisplay
		}
	}
	return ""
}

// coveragePercent finds the category word, skips past any non-digit text,
// and takes the first 1-3 digit run within the window, accepting 0-100.
func coveragePercent(lowerRaw, word string) (string, bool) {
	idx := strings.Index(lowerRaw, word)
	if idx < 0 {
		return "", false
	}
	tail := lowerRaw[idx+len(word):]
	if len(tail) > coverageWindow {
		tail = tail[:coverageWindow]
	}
	run := reDigitRun.FindString(tail)
	if run == "" || len(run) > 3 {
		return "", false
	}
	n, err := strconv.Atoi(run)
	if err != nil || n > 100 {
		return "", false
	}
	return fmt.Sprintf("%d%%", n), true
}
