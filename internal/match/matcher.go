package match

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/dentalops/vob-extractor/internal/extract"
	"github.com/dentalops/vob-extractor/internal/vob"
)

// Matcher recovers a BenefitsRecord from a document's text views using a
// declarative label catalog. Matching never fails: an unmatched field is
// simply left empty.
type Matcher struct {
	catalog   []vob.FieldSpec
	allLabels []string
	patterns  map[string][]*regexp.Regexp
	logger    *slog.Logger
}

// Extracted text values shorter/longer than this are implausible for the
// whole-document regex fallback and get rejected.
const (
	minRegexValueLen = 1
	maxRegexValueLen = 59
)

var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "with": {},
	"from": {}, "this": {}, "that": {},
}

func NewMatcher(logger *slog.Logger) *Matcher {
	return NewMatcherWithCatalog(vob.Catalog(), logger)
}

func NewMatcherWithCatalog(catalog []vob.FieldSpec, logger *slog.Logger) *Matcher {
	if logger == nil {
		logger = slog.Default()
	}
	m := &Matcher{
		catalog:  catalog,
		patterns: make(map[string][]*regexp.Regexp),
		logger:   logger,
	}
	for _, spec := range catalog {
		for _, label := range spec.Labels {
			m.allLabels = append(m.allLabels, strings.ToLower(label))
			if _, ok := m.patterns[label]; !ok {
				m.patterns[label] = compileLabelPatterns(label)
			}
		}
	}
	return m
}

// compileLabelPatterns builds the three regex shapes anchored on a label:
// "label[:\s]+value", "label\s*:\s*value" and "label\s+value", where value
// is a bounded run of word/punctuation characters.
func compileLabelPatterns(label string) []*regexp.Regexp {
	q := regexp.QuoteMeta(strings.ToLower(label))
	const valuePat = `([\w$%.,/#&'()-]+(?:[ \t][\w$%.,/#&'()-]+){0,6})`
	return []*regexp.Regexp{
		regexp.MustCompile(`(?i)` + q + `[:\s]+` + valuePat),
		regexp.MustCompile(`(?i)` + q + `\s*:\s*` + valuePat),
		regexp.MustCompile(`(?i)` + q + `\s+` + valuePat),
	}
}

type document struct {
	view     extract.TextView
	lines    []string
	lower    []string
	lowerRaw string
}

func newDocument(view extract.TextView) *document {
	lines := strings.Split(view.Paired, "\n")
	lower := make([]string, len(lines))
	for i, l := range lines {
		lower[i] = strings.ToLower(l)
	}
	return &document{
		view:     view,
		lines:    lines,
		lower:    lower,
		lowerRaw: strings.ToLower(view.Raw),
	}
}

// Match runs the catalog and the domain detectors over the text views and
// returns a fresh record.
func (m *Matcher) Match(view extract.TextView) *vob.BenefitsRecord {
	doc := newDocument(view)
	rec := &vob.BenefitsRecord{}
	for _, spec := range m.catalog {
		if v, ok := m.findField(doc, spec); ok {
			rec.SetField(spec.Target, v)
		}
	}
	m.applyDetectors(doc, rec)
	return rec
}

// findField tries, per candidate label: the line-based extraction, then the
// column-split fallback; when no line yields a value, the whole-document
// regex fallback. First plausible value wins.
func (m *Matcher) findField(doc *document, spec vob.FieldSpec) (string, bool) {
	for _, label := range spec.Labels {
		ll := strings.ToLower(label)
		for i, low := range doc.lower {
			idx := strings.Index(low, ll)
			if idx < 0 {
				continue
			}
			line := doc.lines[i]
			if len(line) != len(low) {
				// non-ASCII case folding changed byte offsets; fall
				// back to the lowered line
				line = low
			}
			rest := trimLabelSep(line[idx+len(ll):])
			if loc := reColumnGap.FindStringIndex(rest); loc != nil {
				rest = rest[:loc[0]]
			}
			rest = m.cutAtNextLabel(rest)
			if v, ok := normalizeValue(spec.Kind, rest); ok {
				return v, true
			}
			if v, ok := m.columnValue(line, ll, spec.Kind); ok {
				return v, true
			}
		}
	}
	for _, label := range spec.Labels {
		if v, ok := m.regexValue(doc.view.Raw, label, spec.Kind); ok {
			return v, true
		}
		if v, ok := m.regexValue(doc.view.Paired, label, spec.Kind); ok {
			return v, true
		}
	}
	return "", false
}

// columnValue splits the line into columns on runs of two or more spaces
// and takes the column following the one that contains the label.
func (m *Matcher) columnValue(line, lowerLabel string, kind vob.ValueKind) (string, bool) {
	cols := reColumnGap.Split(line, -1)
	for i := 0; i+1 < len(cols); i++ {
		if strings.Contains(strings.ToLower(cols[i]), lowerLabel) {
			if v, ok := normalizeValue(kind, strings.TrimSpace(cols[i+1])); ok {
				return v, true
			}
		}
	}
	return "", false
}

func (m *Matcher) regexValue(text, label string, kind vob.ValueKind) (string, bool) {
	for _, re := range m.patterns[label] {
		groups := re.FindStringSubmatch(text)
		if groups == nil {
			continue
		}
		cand := strings.TrimSpace(groups[1])
		if loc := reColumnGap.FindStringIndex(cand); loc != nil {
			cand = cand[:loc[0]]
		}
		cand = m.cutAtNextLabel(cand)
		if _, bad := stopwords[strings.ToLower(cand)]; bad {
			continue
		}
		if len(cand) < minRegexValueLen || len(cand) > maxRegexValueLen {
			continue
		}
		if v, ok := normalizeValue(kind, cand); ok {
			return v, true
		}
	}
	return "", false
}

// cutAtNextLabel truncates a candidate value at the first occurrence of any
// catalog label that is followed by a colon, so a line like
// "Patient Name: Jane Doe DOB: 01/02/1990" yields "Jane Doe" rather than
// the whole remainder.
func (m *Matcher) cutAtNextLabel(rest string) string {
	low := strings.ToLower(rest)
	cut := len(rest)
	for _, lbl := range m.allLabels {
		idx := strings.Index(low, lbl)
		if idx < 0 || idx >= cut {
			continue
		}
		j := idx + len(lbl)
		for j < len(low) && low[j] == ' ' {
			j++
		}
		if j < len(low) && low[j] == ':' {
			cut = idx
		}
	}
	return strings.TrimSpace(rest[:cut])
}

// trimLabelSep strips the "label: value" separator left over after the
// label itself has been removed.
func trimLabelSep(s string) string {
	s = strings.TrimLeft(s, " \t")
	for len(s) > 0 && (s[0] == ':' || s[0] == '-') {
		s = strings.TrimLeft(s[1:], " \t")
	}
	return s
}
