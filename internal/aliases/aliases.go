// Package aliases maps ingredient name variants to a canonical form.
// Homebrew data sources spell the same ingredient a dozen ways ("2 row",
// "two-row", "US 2-Row"); the table here collapses those to one name so
// callers can key caches and dedupe inventories consistently. The table is
// a presentation aid and deliberately plays no part in match scoring.
package aliases

import (
	"sort"
	"strings"

	"github.com/brewmatch/internal/normalize"
)

// aliasTable maps a canonical ingredient name to the variants seen in the
// wild. Keys and values are stored lowercase.
var aliasTable = map[string][]string{
	// Grains
	"2-row": {
		"two-row",
		"2 row",
		"pale malt 2-row",
		"2-row pale",
		"2-row pale malt",
		"american 2-row",
		"us 2-row",
	},
	"pilsner": {
		"pils",
		"pilsner malt",
		"pilsen",
		"pils malt",
		"german pilsner",
		"bohemian pilsner",
	},
	"munich": {
		"munich malt",
		"münchner",
		"munchner",
		"munich i",
		"munich ii",
	},
	"vienna":         {"vienna malt", "wiener"},
	"maris otter":    {"maris otter pale", "mo", "marris otter"},
	"crystal 60":     {"caramel 60", "c60", "crystal 60l", "caramel 60l"},
	"crystal 40":     {"caramel 40", "c40", "crystal 40l", "caramel 40l"},
	"crystal 20":     {"caramel 20", "c20", "crystal 20l", "caramel 20l"},
	"chocolate malt": {"chocolate", "choc malt"},
	"black malt":     {"black patent", "black patent malt"},
	"roasted barley": {"roast barley"},
	"wheat malt":     {"wheat", "malted wheat"},
	"flaked oats":    {"oats", "oat flakes"},
	"flaked wheat":   {"wheat flakes"},

	// Hops
	"cascade":            {"cascade hops", "cascade (us)", "us cascade"},
	"centennial":         {"centennial hops", "centennial (us)"},
	"citra":              {"citra hops", "citra (us)"},
	"mosaic":             {"mosaic hops", "mosaic (us)"},
	"simcoe":             {"simcoe hops", "simcoe (us)"},
	"amarillo":           {"amarillo hops", "amarillo (us)"},
	"galaxy":             {"galaxy hops", "galaxy (au)", "australian galaxy"},
	"nelson sauvin":      {"nelson", "nelson sauvin (nz)"},
	"saaz":               {"saaz hops", "czech saaz"},
	"hallertau":          {"hallertauer", "hallertau mittelfrüh", "hallertauer mittelfruh"},
	"east kent goldings": {"ekg", "kent goldings", "goldings"},
	"fuggle":             {"fuggles", "fuggle hops"},

	// Yeasts
	"us-05": {
		"safale us-05",
		"us05",
		"american ale yeast",
		"us-05 american ale",
		"fermentis us-05",
	},
	"s-04": {
		"safale s-04",
		"s04",
		"english ale yeast",
		"s-04 english ale",
		"fermentis s-04",
	},
	"s-33":           {"safale s-33", "s33"},
	"w-34/70":        {"saflager w-34/70", "w34/70", "34/70", "german lager yeast"},
	"nottingham":     {"danstar nottingham", "lallemand nottingham"},
	"london ale iii": {"wyeast 1318", "1318"},
	"california ale": {"wlp001", "wyeast 1056", "1056", "american ale"},

	// Misc
	"irish moss":       {"carrageenan", "whirlfloc"},
	"gypsum":           {"calcium sulfate", "caso4"},
	"calcium chloride": {"cacl2"},
}

// aliasIndex is the inverted table, variant to canonical name. Built once
// at init so lookups are a single map hit.
var aliasIndex = buildIndex()

func buildIndex() map[string]string {
	idx := make(map[string]string)
	for canonical, variants := range aliasTable {
		for _, v := range variants {
			idx[normalize.Canonical(v)] = canonical
		}
	}
	return idx
}

// Canonical returns the canonical name for an ingredient. Known canonical
// names return themselves, known variants return their canonical form, and
// everything else returns the lowercased, whitespace-collapsed input.
func Canonical(name string) string {
	n := normalize.Canonical(name)
	if _, ok := aliasTable[n]; ok {
		return n
	}
	if canonical, ok := aliasIndex[n]; ok {
		return canonical
	}
	return n
}

// Known reports whether the name resolves to an entry in the alias table,
// either as a canonical name or as a variant.
func Known(name string) bool {
	n := normalize.Canonical(name)
	if _, ok := aliasTable[n]; ok {
		return true
	}
	_, ok := aliasIndex[n]
	return ok
}

// Suggest returns up to limit canonical names starting with the given
// prefix, sorted alphabetically. Used by interactive surfaces for
// completion.
func Suggest(prefix string, limit int) []string {
	p := normalize.Canonical(prefix)
	if p == "" || limit <= 0 {
		return nil
	}
	var out []string
	for canonical := range aliasTable {
		if strings.HasPrefix(canonical, p) {
			out = append(out, canonical)
		}
	}
	sort.Strings(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
