package match

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/dentalops/vob-extractor/internal/vob"
)

var (
	reColumnGap = regexp.MustCompile(`\s{2,}`)
	reNumberRun = regexp.MustCompile(`\d[\d,]*(?:\.\d+)?`)
	reDigitRun  = regexp.MustCompile(`\d+`)
	reDateShape = regexp.MustCompile(`\d{1,4}[-/]\d{1,2}[-/]\d{1,4}`)
)

// normalizeValue validates and renders a raw candidate for the given value
// kind. A field is only considered found when its candidate survives this.
func normalizeValue(kind vob.ValueKind, raw string) (string, bool) {
	switch kind {
	case vob.Currency:
		return normalizeCurrency(raw)
	case vob.Percentage:
		return normalizePercentage(raw)
	case vob.Date:
		return normalizeDate(raw)
	default:
		return normalizeFreeText(raw)
	}
}

func normalizeFreeText(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	s = strings.TrimRight(s, " \t.,;:-")
	if len(s) < 1 || len(s) > 99 {
		return "", false
	}
	return s, true
}

// normalizeCurrency takes the first numeric run, strips thousands
// separators, and re-renders the amount with separators for display.
// Fractional cents are kept only when non-zero.
func normalizeCurrency(raw string) (string, bool) {
	m := reNumberRun.FindString(raw)
	if m == "" {
		return "", false
	}
	clean := strings.ReplaceAll(m, ",", "")
	f, err := strconv.ParseFloat(clean, 64)
	if err != nil || f < 0 {
		return "", false
	}
	return formatAmount(f), true
}

func formatAmount(f float64) string {
	// round to cents first so a fraction like .999 carries into the whole
	// part instead of rendering as ".00"
	f = math.Round(f*100) / 100
	whole := int64(f)
	out := groupThousands(whole)
	if frac := f - float64(whole); frac > 1e-9 {
		out += fmt.Sprintf("%.2f", frac)[1:]
	}
	return out
}

func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteString(",")
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// normalizePercentage accepts the first digit run when it is 1-3 digits and
// in [0,100], rendering it as "N%".
func normalizePercentage(raw string) (string, bool) {
	m := reDigitRun.FindString(raw)
	if m == "" || len(m) > 3 {
		return "", false
	}
	n, err := strconv.Atoi(m)
	if err != nil || n > 100 {
		return "", false
	}
	return fmt.Sprintf("%d%%", n), true
}

// normalizeDate accepts any date-shaped substring. Calendar validity is
// deliberately not checked: the tool stays tolerant of malformatted but
// meaningful dates.
func normalizeDate(raw string) (string, bool) {
	m := reDateShape.FindString(raw)
	if m == "" {
		return "", false
	}
	return m, true
}
