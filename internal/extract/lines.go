package extract

import (
	"math"
	"sort"
	"strings"
)

// buildRawText joins every fragment in document order with a single space,
// with a newline between pages.
func buildRawText(pages [][]Fragment) string {
	var b strings.Builder
	first := true
	for _, frags := range pages {
		if len(frags) == 0 {
			continue
		}
		if !first {
			b.WriteString("\n")
		}
		first = false
		for i, f := range frags {
			if i > 0 {
				b.WriteString(" ")
			}
			b.WriteString(f.Text)
		}
	}
	return b.String()
}

// buildPairedText reconstructs the visual line layout page by page and joins
// the pages' lines with newlines.
func buildPairedText(pages [][]Fragment, tolerance float64) string {
	var lines []string
	for _, frags := range pages {
		lines = append(lines, pairLines(frags, tolerance)...)
	}
	return strings.Join(lines, "\n")
}

// pairLines sorts fragments top-to-bottom (descending Y, since PDF origin is
// bottom-left), left-to-right within the tolerance band, then groups
// consecutive fragments into lines wherever the Y gap from the previous
// fragment exceeds the tolerance. Fragments exactly at the tolerance
// boundary stay on the same line.
func pairLines(frags []Fragment, tolerance float64) []string {
	if len(frags) == 0 {
		return nil
	}

	sorted := make([]Fragment, len(frags))
	copy(sorted, frags)
	sort.SliceStable(sorted, func(i, j int) bool {
		if math.Abs(sorted[i].Y-sorted[j].Y) < tolerance {
			return sorted[i].X < sorted[j].X
		}
		return sorted[i].Y > sorted[j].Y
	})

	var lines []string
	var cur []string
	prevY := sorted[0].Y
	for _, f := range sorted {
		if prevY-f.Y > tolerance && len(cur) > 0 {
			lines = append(lines, strings.Join(cur, " "))
			cur = cur[:0]
		}
		cur = append(cur, f.Text)
		prevY = f.Y
	}
	if len(cur) > 0 {
		lines = append(lines, strings.Join(cur, " "))
	}
	return lines
}
