// Package fuzzy scores ingredient names that carry no recognized domain
// structure - most hops, miscellaneous additives, non-crystal grains. It is
// deliberately simple: exact equality, containment, then token overlap.
// Exactly one rule fires per pair; the rules are alternatives, not summed
// signals.
package fuzzy

import (
	"strings"

	"github.com/antzucaro/matchr"

	"github.com/brewmatch/internal/normalize"
)

// Rule identifies which scoring rule produced a result.
type Rule int

const (
	RuleNone Rule = iota
	RuleExact
	RuleQueryInCandidate
	RuleCandidateInQuery
	RuleWordOverlap
)

const (
	scoreExact            = 100.0
	scoreQueryInCandidate = 85.0
	scoreCandidateInQuery = 80.0
	overlapScale          = 70.0
	overlapFloor          = 30.0

	// Tokens this long or longer still count as shared when they are a
	// single edit apart, so "casade" finds "cascade". Short tokens must
	// match exactly: one edit between "s-04" and "s-05" is a different
	// product, not a typo.
	minEditDistanceTokenLen = 5
)

// Result is a scored comparison between two names.
type Result struct {
	Score   float64
	Rule    Rule
	Overlap float64 // token overlap ratio, set for RuleWordOverlap only
}

// Score compares a query name against a candidate name. First applicable
// rule wins:
//
//  1. case-insensitive equality scores 100;
//  2. full containment scores 85 (query inside candidate) or 80 (candidate
//     inside query) - querying a specific product with a generic term is
//     slightly weaker evidence than the reverse;
//  3. token overlap |intersection|/|union| over filler-stripped tokens,
//     scaled to 0-70, dropped below a floor of 30.
//
// A zero Result (RuleNone) means the pair is not worth reporting at all.
func Score(query, candidate string) Result {
	q := normalize.Canonical(query)
	c := normalize.Canonical(candidate)
	if q == "" || c == "" {
		return Result{}
	}

	if q == c {
		return Result{Score: scoreExact, Rule: RuleExact}
	}
	if strings.Contains(c, q) {
		return Result{Score: scoreQueryInCandidate, Rule: RuleQueryInCandidate}
	}
	if strings.Contains(q, c) {
		return Result{Score: scoreCandidateInQuery, Rule: RuleCandidateInQuery}
	}

	ratio := OverlapRatio(normalize.ContentTokens(query), normalize.ContentTokens(candidate))
	score := ratio * overlapScale
	if score < overlapFloor {
		return Result{}
	}
	return Result{Score: score, Rule: RuleWordOverlap, Overlap: ratio}
}

// OverlapRatio computes |intersection| / |union| over two token lists.
// Tokens pair when equal, or when both are at least five characters and a
// single Damerau-Levenshtein edit apart (typo tolerance).
func OverlapRatio(queryTokens, candTokens []string) float64 {
	if len(queryTokens) == 0 || len(candTokens) == 0 {
		return 0
	}

	qset := dedupe(queryTokens)
	cset := dedupe(candTokens)

	matched := 0
	used := make([]bool, len(cset))
	for _, q := range qset {
		for i, c := range cset {
			if used[i] {
				continue
			}
			if tokensMatch(q, c) {
				used[i] = true
				matched++
				break
			}
		}
	}

	union := len(qset) + len(cset) - matched
	if union == 0 {
		return 0
	}
	return float64(matched) / float64(union)
}

func tokensMatch(a, b string) bool {
	if a == b {
		return true
	}
	if len(a) < minEditDistanceTokenLen || len(b) < minEditDistanceTokenLen {
		return false
	}
	return matchr.DamerauLevenshtein(a, b) <= 1
}

func dedupe(tokens []string) []string {
	seen := make(map[string]bool, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if !seen[tok] {
			seen[tok] = true
			out = append(out, tok)
		}
	}
	return out
}
