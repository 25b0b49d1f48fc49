// Package yeast recognizes lab-specific strain codes in free text. Yeast
// products are the one ingredient class where name similarity is actively
// dangerous: "S-04" and "S-05" are one edit apart and completely different
// beers. Identity therefore comes from the strain code alone; everything
// else in the name is decoration.
package yeast

import (
	"regexp"
	"strings"
)

// Lab identifies a yeast producer. The lab field is supplementary evidence
// only: two identities are the same strain iff their normalized codes are
// equal, regardless of lab, because upstream data sometimes omits or
// mislabels the producer.
type Lab string

const (
	LabFermentis     Lab = "fermentis"
	LabWhiteLabs     Lab = "whitelabs"
	LabWyeast        Lab = "wyeast"
	LabLallemand     Lab = "lallemand"
	LabOmega         Lab = "omega"
	LabImperial      Lab = "imperial"
	LabMangroveJacks Lab = "mangrovejacks"
	LabUnknown       Lab = "unknown"
)

// Identity is a parsed yeast strain code.
type Identity struct {
	Code           string // canonical casing, e.g. "US-05"
	Lab            Lab
	NormalizedCode string // the comparison key
}

// codePattern is one lab-specific code convention. Patterns with a cue only
// fire when the surrounding text mentions the lab, which keeps loose shapes
// like a bare 4-digit Wyeast number from matching random numbers.
type codePattern struct {
	re     *regexp.Regexp
	prefix string // canonical prefix prepended to the captured digits
	sep    string // separator between prefix and digits in canonical form
	cues   []string
}

// labPatterns is tried in fixed order; the first hit wins. Mangrove Jack's
// comes last because its single-letter prefix is the loosest shape.
var labPatterns = []struct {
	lab      Lab
	patterns []codePattern
}{
	{LabFermentis, []codePattern{
		{re: regexp.MustCompile(`(?i)\bus-?(\d{2})\b`), prefix: "US", sep: "-"},
		{re: regexp.MustCompile(`(?i)\bs-?(\d{2,3})\b`), prefix: "S", sep: "-"},
		{re: regexp.MustCompile(`(?i)\bw-?(\d{2}(?:/\d{2})?)\b`), prefix: "W", sep: "-"},
	}},
	{LabWhiteLabs, []codePattern{
		{re: regexp.MustCompile(`(?i)\bwlp\s?-?(\d{3})\b`), prefix: "WLP", sep: ""},
	}},
	{LabWyeast, []codePattern{
		{re: regexp.MustCompile(`\b(\d{4})\b`), prefix: "", sep: "", cues: []string{"wyeast", "activator"}},
	}},
	{LabLallemand, []codePattern{
		{re: regexp.MustCompile(`(?i)\bbry-?(\d+)\b`), prefix: "BRY", sep: "-"},
		{re: regexp.MustCompile(`(?i)\bcbc-?(\d+)\b`), prefix: "CBC", sep: "-"},
	}},
	{LabOmega, []codePattern{
		{re: regexp.MustCompile(`(?i)\boyl-?(\d{3})\b`), prefix: "OYL", sep: "-"},
	}},
	{LabImperial, []codePattern{
		{re: regexp.MustCompile(`(?i)\ba(\d{2})\b`), prefix: "A", sep: "", cues: []string{"imperial", "yeast"}},
	}},
	{LabMangroveJacks, []codePattern{
		{re: regexp.MustCompile(`(?i)\bm-?(\d{2})\b`), prefix: "M", sep: ""},
	}},
}

// labAliases maps the producer names upstream systems actually use to a Lab.
// Fermentis in particular is named three different ways in the wild.
var labAliases = map[string]Lab{
	"fermentis":        LabFermentis,
	"safale":           LabFermentis,
	"saflager":         LabFermentis,
	"safbrew":          LabFermentis,
	"lesaffre":         LabFermentis,
	"white labs":       LabWhiteLabs,
	"whitelabs":        LabWhiteLabs,
	"wlp":              LabWhiteLabs,
	"wyeast":           LabWyeast,
	"lallemand":        LabLallemand,
	"danstar":          LabLallemand,
	"omega":            LabOmega,
	"omega yeast":      LabOmega,
	"omega yeast labs": LabOmega,
	"imperial":         LabImperial,
	"imperial yeast":   LabImperial,
	"mangrove jack's":  LabMangroveJacks,
	"mangrove jacks":   LabMangroveJacks,
	"mangrove jack":    LabMangroveJacks,
}

// Normalize produces the comparison key for a strain code: lowercase with
// hyphens and whitespace stripped. "US-05", "us05" and "US 05" all collapse
// to "us05".
func Normalize(code string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(code) {
		if r == '-' || r == ' ' || r == '\t' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// CanonicalLab maps an externally supplied lab hint through the alias table.
// Unrecognized hints yield LabUnknown rather than being trusted verbatim.
func CanonicalLab(hint string) Lab {
	if hint == "" {
		return LabUnknown
	}
	if lab, ok := labAliases[strings.ToLower(strings.TrimSpace(hint))]; ok {
		return lab
	}
	return LabUnknown
}

// Extract recognizes a strain code in free text. Labs are tried in a fixed
// order and the first pattern hit wins. The boolean is false when no
// convention matches; a failed extraction is not an error, the caller simply
// has no structured identity to work with.
func Extract(text string) (Identity, bool) {
	if text == "" {
		return Identity{}, false
	}
	lower := strings.ToLower(text)

	for _, entry := range labPatterns {
		for _, p := range entry.patterns {
			if !cuesPresent(lower, p.cues) {
				continue
			}
			m := p.re.FindStringSubmatch(text)
			if m == nil {
				continue
			}
			code := canonicalCode(p, m[1])
			return Identity{
				Code:           code,
				Lab:            entry.lab,
				NormalizedCode: Normalize(code),
			}, true
		}
	}
	return Identity{}, false
}

// FromCode builds an identity from a structured product-code hint. The code
// is run through the extractors for canonical casing and lab attribution;
// an explicit lab hint, mapped through the alias table, takes precedence
// over whatever the pattern implies.
func FromCode(productCode, labHint string) Identity {
	id, ok := Extract(productCode)
	if !ok {
		code := strings.ToUpper(strings.TrimSpace(productCode))
		id = Identity{Code: code, Lab: LabUnknown, NormalizedCode: Normalize(code)}
	}
	if lab := CanonicalLab(labHint); lab != LabUnknown {
		id.Lab = lab
	}
	return id
}

func canonicalCode(p codePattern, digits string) string {
	if p.prefix == "" {
		return digits
	}
	return p.prefix + p.sep + strings.ToUpper(digits)
}

func cuesPresent(lowerText string, cues []string) bool {
	if len(cues) == 0 {
		return true
	}
	for _, cue := range cues {
		if strings.Contains(lowerText, cue) {
			return true
		}
	}
	return false
}

// yeastWords classify a query as yeast-like even when no code is present.
var yeastWords = []string{
	"yeast", "ale yeast", "lager yeast", "safale", "saflager", "safbrew",
	"wyeast", "white labs", "wlp", "lallemand", "danstar", "omega",
	"imperial", "mangrove", "kveik", "brettanomyces", "saccharomyces",
}

// IsYeastName reports whether a name reads like a yeast product, either by
// keyword or by a successful code extraction.
func IsYeastName(name string) bool {
	lower := strings.ToLower(name)
	for _, w := range yeastWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	_, ok := Extract(name)
	return ok
}
