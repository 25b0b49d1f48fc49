// Package hops carries the static hop substitution table. Hop substitutes
// are brewing lore, not string similarity: Cascade and Centennial share no
// name tokens but swap freely, while Crystal the hop has nothing to do with
// crystal malt. The table is curated and read-only.
package hops

import (
	"strings"

	"github.com/brewmatch/internal/normalize"
)

// substitutes maps a canonical hop name (lowercase) to its accepted
// substitutes, best first.
var substitutes = map[string][]string{
	// American
	"cascade":    {"Centennial", "Amarillo", "Citra", "Ahtanum"},
	"centennial": {"Cascade", "Chinook", "Columbus", "Simcoe"},
	"chinook":    {"Columbus", "Centennial", "Simcoe", "Nugget"},
	"columbus":   {"Chinook", "Centennial", "CTZ", "Zeus"},
	"simcoe":     {"Chinook", "Columbus", "Amarillo"},
	"amarillo":   {"Cascade", "Centennial", "Citra", "Simcoe"},
	"citra":      {"Amarillo", "Mosaic", "Simcoe", "Galaxy"},
	"mosaic":     {"Citra", "Simcoe", "Amarillo", "El Dorado"},
	"nugget":     {"Chinook", "Columbus", "Magnum", "Galena"},
	"warrior":    {"Columbus", "Simcoe", "Magnum"},
	"el dorado":  {"Citra", "Mosaic", "Simcoe"},

	// English
	"east kent goldings": {"Fuggle", "UK Goldings", "Styrian Goldings", "First Gold"},
	"fuggle":             {"East Kent Goldings", "Willamette", "Styrian Goldings"},
	"uk goldings":        {"East Kent Goldings", "Fuggle", "Styrian Goldings"},
	"first gold":         {"East Kent Goldings", "Fuggle", "Crystal"},
	"challenger":         {"Target", "Admiral", "Northern Brewer"},
	"target":             {"Challenger", "Admiral", "Fuggle"},

	// German
	"hallertau":              {"Hallertauer Mittelfruh", "Liberty", "Mt. Hood", "Tettnang"},
	"hallertauer mittelfruh": {"Hallertau", "Liberty", "Crystal", "Hersbrucker"},
	"hersbrucker":            {"Hallertau", "Tettnang", "Spalt"},
	"tettnang":               {"Saaz", "Spalt", "Hallertau", "Santiam"},
	"spalt":                  {"Tettnang", "Saaz", "Hallertau"},
	"magnum":                 {"Nugget", "Horizon", "Columbus"},
	"perle":                  {"Northern Brewer", "Hallertau", "Mt. Hood"},
	"northern brewer":        {"Perle", "Chinook", "Cluster"},
	"hallertau blanc":        {"Nelson Sauvin", "Sauvignon Blanc"},
	"mandarina bavaria":      {"Citra", "Cascade", "Hull Melon"},

	// Czech
	"saaz": {"Tettnang", "Spalt", "Sterling", "Styrian Goldings"},

	// American noble-style
	"liberty":    {"Hallertau", "Mt. Hood", "Crystal"},
	"mt. hood":   {"Hallertau", "Liberty", "Crystal"},
	"crystal":    {"Hallertau", "Liberty", "Mt. Hood", "Hersbrucker"},
	"sterling":   {"Saaz", "Tettnang"},
	"willamette": {"Fuggle", "Tettnang", "Styrian Goldings"},

	// Slovenian
	"styrian goldings": {"Fuggle", "Willamette", "UK Goldings"},

	// Australian / NZ
	"galaxy":        {"Citra", "Simcoe", "Amarillo"},
	"nelson sauvin": {"Galaxy", "Motueka", "Hallertau Blanc"},
	"motueka":       {"Saaz", "Nelson Sauvin", "Sterling"},
	"vic secret":    {"Galaxy", "Citra"},
}

// SubstitutesFor returns the accepted substitutes for a hop, best first.
// The lookup tolerates decorated names ("Cascade Hops (US)" still resolves
// to Cascade). Unknown hops return nil.
func SubstitutesFor(name string) []string {
	canonical := normalize.Canonical(name)
	if canonical == "" {
		return nil
	}

	if subs, ok := substitutes[canonical]; ok {
		return copyOf(subs)
	}

	// Decorated name: the canonical hop name appears inside it.
	best := ""
	for hop := range substitutes {
		if strings.Contains(canonical, hop) && len(hop) > len(best) {
			best = hop
		}
	}
	if best != "" {
		return copyOf(substitutes[best])
	}
	return nil
}

// IsSubstitute reports whether candidate is an accepted substitute for the
// given hop.
func IsSubstitute(hop, candidate string) bool {
	cand := normalize.Canonical(candidate)
	for _, sub := range SubstitutesFor(hop) {
		s := normalize.Canonical(sub)
		if cand == s || strings.Contains(cand, s) {
			return true
		}
	}
	return false
}

func copyOf(subs []string) []string {
	out := make([]string, len(subs))
	copy(out, subs)
	return out
}
