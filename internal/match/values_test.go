package match

import (
	"testing"

	"github.com/dentalops/vob-extractor/internal/vob"
)

func TestNormalizeCurrency(t *testing.T) {
	tests := []struct {
		raw    string
		want   string
		wantOK bool
	}{
		{"$1,500.00", "1,500", true},
		{"1500", "1,500", true},
		{"$2,000", "2,000", true},
		{"$1,234.56", "1,234.56", true},
		{"750.50", "750.50", true},
		{"$0", "0", true},
		{"1000000", "1,000,000", true},
		// fraction rounding carries into the whole part
		{"999.999", "1,000", true},
		{"1,499.999", "1,500", true},
		{"749.994", "749.99", true},
		{"no amount here", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := normalizeCurrency(tt.raw)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("normalizeCurrency(%q) = %q, %v; want %q, %v", tt.raw, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestNormalizePercentage(t *testing.T) {
	tests := []struct {
		raw    string
		want   string
		wantOK bool
	}{
		{"100%", "100%", true},
		{"80", "80%", true},
		{"0%", "0%", true},
		{"150%", "", false},
		{"101", "", false},
		{"1000", "", false},
		{"covered at 50 percent", "50%", true},
		{"n/a", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := normalizePercentage(tt.raw)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("normalizePercentage(%q) = %q, %v; want %q, %v", tt.raw, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		raw    string
		want   string
		wantOK bool
	}{
		{"01/02/1990", "01/02/1990", true},
		{"2024-01-15", "2024-01-15", true},
		{"1/2/90", "1/2/90", true},
		// shape only, calendar validity is not checked
		{"13/45/9999", "13/45/9999", true},
		{"effective 01/01/2024 through", "01/01/2024", true},
		{"January 2024", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := normalizeDate(tt.raw)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("normalizeDate(%q) = %q, %v; want %q, %v", tt.raw, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestNormalizeFreeText(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   string
		wantOK bool
	}{
		{"plain", "Jane Doe", "Jane Doe", true},
		{"trailing punctuation stripped", "PPO.", "PPO", true},
		{"surrounding space", "  2 per year  ", "2 per year", true},
		{"empty", "   ", "", false},
		{"too long", string(make([]byte, 120)), "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := normalizeFreeText(tt.raw)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("normalizeFreeText(%q) = %q, %v; want %q, %v", tt.raw, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestNormalizeValueDispatch(t *testing.T) {
	if got, ok := normalizeValue(vob.Currency, "$1,500.00"); !ok || got != "1,500" {
		t.Errorf("currency dispatch = %q, %v", got, ok)
	}
	if got, ok := normalizeValue(vob.Percentage, "80%"); !ok || got != "80%" {
		t.Errorf("percentage dispatch = %q, %v", got, ok)
	}
	if got, ok := normalizeValue(vob.Date, "01/02/1990"); !ok || got != "01/02/1990" {
		t.Errorf("date dispatch = %q, %v", got, ok)
	}
	if got, ok := normalizeValue(vob.FreeText, "Guardian"); !ok || got != "Guardian" {
		t.Errorf("free text dispatch = %q, %v", got, ok)
	}
}
