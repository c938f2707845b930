package constants

import (
	"strings"
	"testing"
)

func TestNormalizeExt(t *testing.T) {
	tests := []struct{ in, want string }{
		{".PDF", "pdf"},
		{"pdf", "pdf"},
		{".pdf", "pdf"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeExt(tt.in); got != tt.want {
			t.Errorf("NormalizeExt(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPlanTypesOrderDisambiguatesDHMO(t *testing.T) {
	dhmo, hmo := -1, -1
	for i, pt := range PlanTypes {
		switch pt.Keyword {
		case "dhmo":
			dhmo = i
		case "hmo":
			hmo = i
		}
	}
	if dhmo == -1 || hmo == -1 {
		t.Fatal("PlanTypes missing dhmo or hmo")
	}
	if dhmo > hmo {
		t.Error("dhmo must be scanned before hmo")
	}
}

func TestKnownCarriersAreScanReady(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range KnownCarriers {
		if strings.TrimSpace(c) != c || c == "" {
			t.Errorf("carrier %q has surrounding whitespace", c)
		}
		if seen[c] {
			t.Errorf("duplicate carrier %q", c)
		}
		seen[c] = true
	}
}
