package vob

import "strings"

// Merge copies every non-empty leaf of rec over a copy of form and returns
// the copy. Empty leaves in rec leave the corresponding form value
// untouched; form leaves with no catalog counterpart are never written.
// Merge is total: it cannot fail for any well-formed record.
func Merge(rec *BenefitsRecord, form FormState) FormState {
	out := form
	src := rec.leaves()
	dst := out.leaves()
	for i := range src {
		if strings.TrimSpace(*src[i].Value) != "" {
			*dst[i].Value = *src[i].Value
		}
	}
	return out
}
