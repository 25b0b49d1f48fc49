package yeast

import "sort"

// equivalenceGroups records strains generally understood to be functionally
// interchangeable, keyed and stored by normalized code. The table is
// bidirectional: a lookup may hit either the group key or any member.
// Membership is curated knowledge, never inferred from name similarity.
var equivalenceGroups = map[string][]string{
	// American Ale / "Chico" strain family.
	"us05": {"wlp001", "1056", "bry97", "oyl004", "a07", "m44"},
	// Whitbread English ale.
	"s04": {"wlp007", "1098"},
	// Weihenstephan 34/70 lager.
	"w34/70": {"wlp830", "2124", "m84"},
	// Weihenstephan weizen.
	"wb06": {"wlp300", "3068", "m20"},
	// Köln / German ale.
	"k97": {"wlp029", "1007"},
	// Belgian saison.
	"be134": {"wlp565", "3724"},
	// Belgian abbey.
	"be256": {"wlp530", "3787"},
}

// sortedGroupKeys keeps member-lookup iteration deterministic.
var sortedGroupKeys = func() []string {
	keys := make([]string, 0, len(equivalenceGroups))
	for k := range equivalenceGroups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}()

// EquivalentsOf returns the normalized codes of strains functionally
// interchangeable with the given one, excluding the query itself. An unknown
// code returns nil; that is not an error, simply "no known equivalents."
func EquivalentsOf(normalizedCode string) []string {
	if normalizedCode == "" {
		return nil
	}

	if members, ok := equivalenceGroups[normalizedCode]; ok {
		out := make([]string, len(members))
		copy(out, members)
		return out
	}

	for _, key := range sortedGroupKeys {
		for _, member := range equivalenceGroups[key] {
			if member != normalizedCode {
				continue
			}
			out := make([]string, 0, len(equivalenceGroups[key]))
			out = append(out, key)
			for _, other := range equivalenceGroups[key] {
				if other != normalizedCode {
					out = append(out, other)
				}
			}
			return out
		}
	}
	return nil
}

// Equivalent reports whether two normalized codes belong to the same
// equivalence group.
func Equivalent(a, b string) bool {
	if a == "" || b == "" || a == b {
		return false
	}
	for _, eq := range EquivalentsOf(a) {
		if eq == b {
			return true
		}
	}
	return false
}
