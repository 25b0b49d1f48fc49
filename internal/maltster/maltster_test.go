package maltster

import (
	"reflect"
	"testing"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantBrand string
		wantOK    bool
	}{
		{"bestmalz short form", "BEST Pale Ale", "BESTMALZ", true},
		{"bestmalz long form", "BESTMALZ Pilsner", "BESTMALZ", true},
		{"simpsons", "Simpsons Crystal 60L", "Simpsons", true},
		{"simpson singular", "Simpson Maris Otter", "Simpsons", true},
		{"chateau accent", "Château Pilsen", "Castle Malting", true},
		{"chateau plain", "Chateau Cara Ruby", "Castle Malting", true},
		{"castle malting full", "Castle Malting Pale Ale", "Castle Malting", true},
		{"weyermann", "Weyermann CaraMunich II", "Weyermann", true},
		{"fawcett", "Fawcett Maris Otter", "Thomas Fawcett", true},
		{"no brand", "Crystal 60L", "", false},
		{"brand word inside other word", "bestseller malt", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			brand, ok := Extract(tt.input)
			if ok != tt.wantOK || brand != tt.wantBrand {
				t.Errorf("Extract(%q) = (%q, %v), want (%q, %v)",
					tt.input, brand, ok, tt.wantBrand, tt.wantOK)
			}
		})
	}
}

func TestExtractPrefersLongestAlias(t *testing.T) {
	// "Simpsons Best Pale Ale" contains both the Simpsons token and the
	// BESTMALZ short form; it is a Simpsons product.
	brand, ok := Extract("Simpsons Best Pale Ale")
	if !ok || brand != "Simpsons" {
		t.Errorf("Extract = (%q, %v), want (Simpsons, true)", brand, ok)
	}
}

func TestCanonicalBrand(t *testing.T) {
	tests := []struct {
		supplier string
		want     string
	}{
		{"BESTMALZ", "BESTMALZ"},
		{"BEST", "BESTMALZ"},
		{"Château", "Castle Malting"},
		{"Acme Malting Co", "Acme Malting Co"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := CanonicalBrand(tt.supplier); got != tt.want {
			t.Errorf("CanonicalBrand(%q) = %q, want %q", tt.supplier, got, tt.want)
		}
	}
}

func TestCompatible(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"neither branded", "", "", true},
		{"same brand", "Simpsons", "Simpsons", true},
		{"different brands", "BESTMALZ", "Simpsons", false},
		{"one side unbranded", "BESTMALZ", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compatible(tt.a, tt.b); got != tt.want {
				t.Errorf("Compatible(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestStripBrandTokens(t *testing.T) {
	got := StripBrandTokens([]string{"simpsons", "best", "pale", "ale"})
	// Both brand tokens are stripped; the remaining words describe the malt.
	want := []string{"pale", "ale"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("StripBrandTokens = %v, want %v", got, want)
	}
}
