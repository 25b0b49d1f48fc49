// Package maltster recognizes malt supplier brands in product names.
// Identical malt names from different maltsters are not interchangeable, so
// the matcher gates malt comparisons on brand compatibility before looking
// at anything else.
package maltster

import (
	"sort"
	"strings"

	"github.com/brewmatch/internal/normalize"
)

// brandAliases maps every known spelling variant to its canonical brand.
// Single-word aliases are matched as whole tokens (so "BEST Pale Ale" hits
// BESTMALZ but "bestseller" would not); multi-word aliases are matched by
// substring on the canonical lowercase form.
var brandAliases = map[string]string{
	"best":           "BESTMALZ",
	"bestmalz":       "BESTMALZ",
	"simpson":        "Simpsons",
	"simpsons":       "Simpsons",
	"château":        "Castle Malting",
	"chateau":        "Castle Malting",
	"castle malting": "Castle Malting",
	"weyermann":      "Weyermann",
	"crisp":          "Crisp",
	"dingemans":      "Dingemans",
	"briess":         "Briess",
	"fawcett":        "Thomas Fawcett",
	"thomas fawcett": "Thomas Fawcett",
	"muntons":        "Muntons",
	"bairds":         "Bairds",
	"rahr":           "Rahr",
	"viking":         "Viking",
	"ireks":          "Ireks",
	"pauls":          "Pauls",
	"swaen":          "Swaen",
	"the swaen":      "Swaen",
	"gladfield":      "Gladfield",
}

// aliasOrder holds the alias keys sorted longest-first, then alphabetically.
// Longest-first makes extraction deterministic when a name contains several
// brand tokens ("Simpsons Best Pale Ale" is a Simpsons product, not a
// BESTMALZ one).
var aliasOrder = func() []string {
	keys := make([]string, 0, len(brandAliases))
	for k := range brandAliases {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}()

// Extract detects a supplier brand in an ingredient name and returns its
// canonical form. The second return is false when no known brand token is
// present.
func Extract(name string) (string, bool) {
	if name == "" {
		return "", false
	}

	canonical := normalize.Canonical(name)
	tokens := make(map[string]bool)
	for _, tok := range normalize.Tokens(name) {
		tokens[tok] = true
	}

	for _, alias := range aliasOrder {
		if strings.Contains(alias, " ") {
			if strings.Contains(canonical, alias) {
				return brandAliases[alias], true
			}
		} else if tokens[alias] {
			return brandAliases[alias], true
		}
	}
	return "", false
}

// CanonicalBrand maps a supplier string supplied as a structured hint through
// the alias table. Unrecognized suppliers are returned trimmed as-is, so
// two hints naming the same unknown supplier still compare equal.
func CanonicalBrand(supplier string) string {
	if supplier == "" {
		return ""
	}
	if brand, ok := Extract(supplier); ok {
		return brand
	}
	return strings.TrimSpace(supplier)
}

// Compatible reports whether two names may be treated as the same supplier's
// product. Only a pair of differing detected brands is incompatible; a name
// with no detected brand is compatible with anything, since most catalog and
// recipe names omit the supplier. An incompatible pair is never a direct
// match; at most it surfaces as a low-confidence different-maltster
// suggestion.
func Compatible(brandA, brandB string) bool {
	if brandA == "" || brandB == "" {
		return true
	}
	return brandA == brandB
}

// StripBrandTokens removes any known brand alias token from a token list,
// leaving the words that describe the malt itself.
func StripBrandTokens(tokens []string) []string {
	kept := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if _, isBrand := brandAliases[tok]; !isBrand {
			kept = append(kept, tok)
		}
	}
	return kept
}
