package yeast

import (
	"reflect"
	"testing"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode string
		wantLab  Lab
		wantOK   bool
	}{
		{"fermentis us dash", "Safale US-05", "US-05", LabFermentis, true},
		{"fermentis us bare", "us05 dry yeast", "US-05", LabFermentis, true},
		{"fermentis s code", "Safale S-04 English Ale", "S-04", LabFermentis, true},
		{"fermentis lager slash", "Saflager W-34/70", "W-34/70", LabFermentis, true},
		{"white labs", "WLP001 California Ale", "WLP001", LabWhiteLabs, true},
		{"white labs spaced", "WLP 002 English Ale", "WLP002", LabWhiteLabs, true},
		{"wyeast with cue", "Wyeast 1056 American Ale", "1056", LabWyeast, true},
		{"bare four digits without cue", "1056 American Ale", "", LabUnknown, false},
		{"lallemand bry", "BRY-97 West Coast", "BRY-97", LabLallemand, true},
		{"lallemand cbc", "CBC-1 Cask and Bottle", "CBC-1", LabLallemand, true},
		{"omega", "OYL-004 West Coast Ale I", "OYL-004", LabOmega, true},
		{"imperial with cue", "Imperial A07 Flagship", "A07", LabImperial, true},
		{"mangrove jacks", "Mangrove Jack's M44 West Coast", "M44", LabMangroveJacks, true},
		{"no code no cue", "Nottingham Ale", "", LabUnknown, false},
		{"malt is not yeast", "Crystal 60L", "", LabUnknown, false},
		{"empty", "", "", LabUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := Extract(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("Extract(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if id.Code != tt.wantCode || id.Lab != tt.wantLab {
				t.Errorf("Extract(%q) = (%q, %q), want (%q, %q)",
					tt.input, id.Code, id.Lab, tt.wantCode, tt.wantLab)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"US-05", "us05"},
		{"us05", "us05"},
		{"US 05", "us05"},
		{"WLP001", "wlp001"},
		{"W-34/70", "w34/70"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Normalize(tt.code); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestSameStrainIgnoresLab(t *testing.T) {
	// Identity comparison is by normalized code only; the lab field is
	// supplementary evidence, not authoritative.
	a := FromCode("US-05", "")
	b := FromCode("us05", "White Labs") // mislabeled upstream
	if a.NormalizedCode != b.NormalizedCode {
		t.Errorf("normalized codes differ: %q vs %q", a.NormalizedCode, b.NormalizedCode)
	}
	if b.Lab != LabWhiteLabs {
		t.Errorf("explicit lab hint should win, got %q", b.Lab)
	}
}

func TestCanonicalLab(t *testing.T) {
	tests := []struct {
		hint string
		want Lab
	}{
		{"Safale", LabFermentis},
		{"Saflager", LabFermentis},
		{"Lesaffre", LabFermentis},
		{"White Labs", LabWhiteLabs},
		{"Danstar", LabLallemand},
		{"Mangrove Jack's", LabMangroveJacks},
		{"Some Homebrew Shop", LabUnknown},
		{"", LabUnknown},
	}

	for _, tt := range tests {
		if got := CanonicalLab(tt.hint); got != tt.want {
			t.Errorf("CanonicalLab(%q) = %q, want %q", tt.hint, got, tt.want)
		}
	}
}

func TestIsYeastName(t *testing.T) {
	yes := []string{"Safale US-05", "American Ale Yeast", "WLP001 California Ale", "Lallemand Verdant IPA"}
	for _, name := range yes {
		if !IsYeastName(name) {
			t.Errorf("IsYeastName(%q) = false, want true", name)
		}
	}

	no := []string{"Crystal 60L", "Cascade", "Maris Otter"}
	for _, name := range no {
		if IsYeastName(name) {
			t.Errorf("IsYeastName(%q) = true, want false", name)
		}
	}
}

func TestEquivalentsOf(t *testing.T) {
	tests := []struct {
		name string
		code string
		want []string
	}{
		{
			name: "group key lookup",
			code: "us05",
			want: []string{"wlp001", "1056", "bry97", "oyl004", "a07", "m44"},
		},
		{
			name: "member lookup returns key plus others",
			code: "wlp001",
			want: []string{"us05", "1056", "bry97", "oyl004", "a07", "m44"},
		},
		{
			name: "lager member",
			code: "2124",
			want: []string{"w34/70", "wlp830", "m84"},
		},
		{
			name: "unknown code",
			code: "xyz99",
			want: nil,
		},
		{
			name: "empty",
			code: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EquivalentsOf(tt.code)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("EquivalentsOf(%q) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}

func TestEquivalent(t *testing.T) {
	if !Equivalent("us05", "wlp001") {
		t.Error("us05 and wlp001 should be equivalent")
	}
	if !Equivalent("wlp001", "1056") {
		t.Error("equivalence should hold between two members")
	}
	if Equivalent("us05", "s04") {
		t.Error("different groups must not be equivalent")
	}
	if Equivalent("us05", "us05") {
		t.Error("a strain is identical to itself, not equivalent")
	}
}
