// Package matcher resolves free-form brewing ingredient descriptions
// against a product catalog and proposes ranked substitutes. The engine
// classifies each query, runs the applicable identity cascade (yeast strain
// codes, malt color bands, brand-gated fuzzy text), merges candidates, and
// attaches a machine-readable rationale to every score.
package matcher

import (
	"sort"

	"github.com/brewmatch/internal/color"
	"github.com/brewmatch/internal/debug"
	"github.com/brewmatch/internal/fuzzy"
	"github.com/brewmatch/internal/hops"
	"github.com/brewmatch/internal/maltster"
	"github.com/brewmatch/internal/normalize"
	"github.com/brewmatch/internal/yeast"
)

// Engine runs ingredient resolution. It holds only configuration; every
// call is stateless and safe for concurrent use.
type Engine struct {
	opts Options
}

// NewEngine creates an engine, filling unset options with defaults.
func NewEngine(opts Options) *Engine {
	if opts.MinScore <= 0 {
		opts.MinScore = DefaultMinScore
	}
	if opts.ToleranceEBC <= 0 {
		opts.ToleranceEBC = DefaultToleranceEBC
	}
	if opts.MaxAlternates <= 0 {
		opts.MaxAlternates = DefaultMaxAlternates
	}
	return &Engine{opts: opts}
}

// Options returns the engine's effective configuration.
func (e *Engine) Options() Options {
	return e.opts
}

// strategy selects which identity cascade applies to a query.
type strategy int

const (
	strategyGeneric strategy = iota
	strategyYeast
	strategyCrystal
)

// yeast cascade scores
const (
	scoreStrainCode  = 100.0
	scoreSameLabName = 80.0
	overlapWeight    = 0.7
	overlapMinRatio  = 0.6
	scoreEquivalent  = 40.0
)

// cross-maltster suggestions never exceed this score and need at least
// this much brand-stripped word overlap to surface at all.
const (
	differentMaltsterCap      = 30.0
	differentMaltsterMinRatio = 0.3
)

// hopSubstituteScore ranks a curated hop substitute above anything name
// similarity alone can produce, but below a direct identity match.
const hopSubstituteScore = 90.0

// Resolve matches a query against the catalog and returns the ranked
// outcome. Empty queries and empty catalogs resolve to a not-found result,
// never an error.
func (e *Engine) Resolve(query IngredientQuery, catalog []CatalogEntry) MatchResult {
	debug.Header(e.opts.Debug)
	defer debug.Footer(e.opts.Debug)
	defer debug.Timing(e.opts.Debug, "resolve")()

	candidates := e.scoreAll(query, catalog)
	return e.assemble(dedupeAndRank(candidates), e.opts.MinScore)
}

// FindSubstitutes searches for replacements for an ingredient that is
// assumed to be unavailable. The catalog entry matching the query itself is
// excluded, the acceptance threshold drops so near misses surface, and
// curated hop substitutes are injected ahead of name similarity.
func (e *Engine) FindSubstitutes(query IngredientQuery, catalog []CatalogEntry) MatchResult {
	debug.Header(e.opts.Debug)
	defer debug.Footer(e.opts.Debug)
	defer debug.Timing(e.opts.Debug, "substitutes")()

	queryCanonical := normalize.Canonical(query.Name)
	var others []CatalogEntry
	var candidates []MatchCandidate
	for _, entry := range catalog {
		if normalize.Canonical(entry.Name) == queryCanonical {
			continue
		}
		others = append(others, entry)
		if hops.IsSubstitute(query.Name, entry.Name) {
			debug.Printf(e.opts.Debug, "hop substitute table: %s -> %s", query.Name, entry.Name)
			candidates = append(candidates, MatchCandidate{
				CandidateID:   entry.ID,
				CandidateName: entry.Name,
				Score:         hopSubstituteScore,
				Type:          MatchEquivalent,
				Details: MatchDetails{
					Equivalence: &EquivalenceDetails{
						QueryCode:     normalize.Canonical(query.Name),
						CandidateCode: normalize.Canonical(entry.Name),
						Group:         hops.SubstitutesFor(query.Name),
					},
					Warning: "accepted hop substitute; flavor profile differs",
				},
			})
		}
	}

	candidates = append(candidates, e.scoreAll(query, others)...)
	return e.assemble(dedupeAndRank(candidates), SubstituteMinScore)
}

// scoreAll classifies the query and scores every catalog entry through the
// applicable cascade.
func (e *Engine) scoreAll(query IngredientQuery, catalog []CatalogEntry) []MatchCandidate {
	if normalize.Canonical(query.Name) == "" || len(catalog) == 0 {
		return nil
	}

	switch e.classify(query) {
	case strategyYeast:
		debug.Printf(e.opts.Debug, "query %q: yeast identity cascade", query.Name)
		return e.matchYeast(query, catalog)
	case strategyCrystal:
		debug.Printf(e.opts.Debug, "query %q: color band matching", query.Name)
		return e.matchCrystal(query, catalog)
	default:
		debug.Printf(e.opts.Debug, "query %q: generic fuzzy matching", query.Name)
		return e.matchGeneric(query, catalog)
	}
}

// classify picks the identity strategy. Structured hints are checked before
// text parsing; a crystal-named query without any usable color band falls
// through to the generic path rather than failing.
func (e *Engine) classify(query IngredientQuery) strategy {
	if query.Hints.Lab != "" || query.Hints.ProductCode != "" || yeast.IsYeastName(query.Name) {
		return strategyYeast
	}
	if color.IsCrystalName(query.Name) {
		if _, ok := queryColorBand(query); ok {
			return strategyCrystal
		}
	}
	return strategyGeneric
}

// queryColorBand resolves the query's color band, preferring the supplied
// hint over text extraction.
func queryColorBand(query IngredientQuery) (color.Band, bool) {
	if query.Hints.ColorLovibond != nil {
		return color.PointFromLovibond(*query.Hints.ColorLovibond, color.SourceSupplied), true
	}
	return color.ParseBand(query.Name)
}

// queryBrand resolves the query's maltster brand, preferring the supplier
// hint over text extraction.
func queryBrand(query IngredientQuery) string {
	if query.Hints.Supplier != "" {
		return maltster.CanonicalBrand(query.Hints.Supplier)
	}
	brand, _ := maltster.Extract(query.Name)
	return brand
}

// queryIdentity resolves the query's yeast identity. A product_code hint is
// authoritative; otherwise the code is extracted from the name text. The
// second return reports whether a strain code was found at all.
func queryIdentity(query IngredientQuery) (yeast.Identity, bool) {
	if query.Hints.ProductCode != "" {
		return yeast.FromCode(query.Hints.ProductCode, query.Hints.Lab), true
	}
	if id, ok := yeast.Extract(query.Name); ok {
		if lab := yeast.CanonicalLab(query.Hints.Lab); lab != yeast.LabUnknown {
			id.Lab = lab
		}
		return id, true
	}
	return yeast.Identity{Lab: yeast.CanonicalLab(query.Hints.Lab)}, false
}

// matchYeast runs the four-level strain cascade. Levels are mutually
// exclusive per candidate; the first level that fires decides the score.
func (e *Engine) matchYeast(query IngredientQuery, catalog []CatalogEntry) []MatchCandidate {
	queryID, haveCode := queryIdentity(query)
	queryCanonical := normalize.Canonical(query.Name)

	var out []MatchCandidate
	for _, entry := range catalog {
		if cand, ok := exactNameMatch(queryCanonical, entry); ok {
			out = append(out, cand)
			continue
		}

		candID, candHasCode := yeast.Extract(entry.Name + " " + entry.Description)

		// Level 1: same normalized strain code is the same product.
		if haveCode && candHasCode && queryID.NormalizedCode == candID.NormalizedCode {
			out = append(out, MatchCandidate{
				CandidateID:   entry.ID,
				CandidateName: entry.Name,
				Score:         scoreStrainCode,
				Type:          MatchYeastID,
				Details: MatchDetails{
					YeastID: &YeastIDDetails{MatchedCode: candID.Code, Lab: string(candID.Lab)},
				},
			})
			continue
		}

		// Level 2: same lab plus shared descriptive words.
		if queryID.Lab != yeast.LabUnknown && candHasCode && candID.Lab == queryID.Lab {
			if shared := normalize.SharedContentWords(query.Name, entry.Name); shared >= 2 {
				out = append(out, MatchCandidate{
					CandidateID:   entry.ID,
					CandidateName: entry.Name,
					Score:         scoreSameLabName,
					Type:          MatchLabName,
					Details: MatchDetails{
						YeastID: &YeastIDDetails{MatchedCode: candID.Code, Lab: string(candID.Lab)},
						Overlap: &OverlapDetails{SharedWords: shared},
					},
				})
				continue
			}
		}

		// Level 3: heavy token overlap without an identity link.
		ratio := fuzzy.OverlapRatio(normalize.ContentTokens(query.Name), normalize.ContentTokens(entry.Name))
		if ratio >= overlapMinRatio {
			out = append(out, MatchCandidate{
				CandidateID:   entry.ID,
				CandidateName: entry.Name,
				Score:         ratio * 100 * overlapWeight,
				Type:          MatchWordOverlap,
				Details: MatchDetails{
					Overlap: &OverlapDetails{Ratio: ratio},
				},
			})
			continue
		}

		// Level 4: known functional equivalent from another lab.
		if haveCode && candHasCode && yeast.Equivalent(queryID.NormalizedCode, candID.NormalizedCode) {
			out = append(out, MatchCandidate{
				CandidateID:   entry.ID,
				CandidateName: entry.Name,
				Score:         scoreEquivalent,
				Type:          MatchEquivalent,
				Details: MatchDetails{
					Equivalence: &EquivalenceDetails{
						QueryCode:     queryID.Code,
						CandidateCode: candID.Code,
						Group:         yeast.EquivalentsOf(queryID.NormalizedCode),
					},
					Warning: "equivalent strain from another lab; verify fermentation profile",
				},
			})
		}
	}
	return out
}

// matchCrystal scores crystal/caramel malts by color band. Candidates from
// an incompatible maltster skip color scoring and may only surface as
// cross-maltster suggestions; candidates without a parseable band fall back
// to name similarity.
func (e *Engine) matchCrystal(query IngredientQuery, catalog []CatalogEntry) []MatchCandidate {
	band, _ := queryColorBand(query)
	qBrand := queryBrand(query)
	queryCanonical := normalize.Canonical(query.Name)

	var out []MatchCandidate
	for _, entry := range catalog {
		if cand, ok := exactNameMatch(queryCanonical, entry); ok {
			out = append(out, cand)
			continue
		}

		candBrand, _ := maltster.Extract(entry.Name)
		if !maltster.Compatible(qBrand, candBrand) {
			if cand, ok := crossMaltsterSuggestion(query, qBrand, entry, candBrand); ok {
				out = append(out, cand)
			}
			continue
		}

		if color.IsCrystalName(entry.Name) {
			if candBand, ok := entryColorBand(entry); ok {
				score := color.MatchScore(band.EBCMid, candBand.EBCMin, candBand.EBCMax, e.opts.ToleranceEBC)
				debug.Printf(e.opts.Debug, "color %s vs %s: %.1f", band, candBand, score)
				if score > 0 {
					out = append(out, MatchCandidate{
						CandidateID:   entry.ID,
						CandidateName: entry.Name,
						Score:         score,
						Type:          MatchColor,
						Details: MatchDetails{
							Color: &ColorMatchDetails{
								TargetEBC:     band.EBCMid,
								ProductEBCMin: candBand.EBCMin,
								ProductEBCMax: candBand.EBCMax,
								DifferenceEBC: bandDistance(band.EBCMid, candBand),
							},
						},
					})
				}
				continue
			}
		}

		if cand, ok := fuzzyCandidate(query.Name, entry, MatchFuzzyName); ok {
			out = append(out, cand)
		}
	}
	return out
}

// matchGeneric scores by name similarity, brand-gated when a maltster is
// detected on both sides.
func (e *Engine) matchGeneric(query IngredientQuery, catalog []CatalogEntry) []MatchCandidate {
	qBrand := queryBrand(query)
	queryCanonical := normalize.Canonical(query.Name)

	var out []MatchCandidate
	for _, entry := range catalog {
		if cand, ok := exactNameMatch(queryCanonical, entry); ok {
			out = append(out, cand)
			continue
		}

		candBrand, _ := maltster.Extract(entry.Name)
		if !maltster.Compatible(qBrand, candBrand) {
			if cand, ok := crossMaltsterSuggestion(query, qBrand, entry, candBrand); ok {
				out = append(out, cand)
			}
			continue
		}

		if cand, ok := fuzzyCandidate(query.Name, entry, ""); ok {
			out = append(out, cand)
		}
	}
	return out
}

// exactNameMatch handles the one rule shared by every path: an identical
// name is the same product, scoring 100 regardless of brand or identity
// evidence.
func exactNameMatch(queryCanonical string, entry CatalogEntry) (MatchCandidate, bool) {
	if queryCanonical == "" || normalize.Canonical(entry.Name) != queryCanonical {
		return MatchCandidate{}, false
	}
	return MatchCandidate{
		CandidateID:   entry.ID,
		CandidateName: entry.Name,
		Score:         100,
		Type:          MatchExact,
	}, true
}

// fuzzyCandidate wraps the generic text matcher. An explicit forceType
// overrides the per-rule tag, used on the malt path where a similarity
// fallback should read as fuzzy_name rather than a structural claim.
func fuzzyCandidate(queryName string, entry CatalogEntry, forceType MatchType) (MatchCandidate, bool) {
	res := fuzzy.Score(queryName, entry.Name)
	if res.Rule == fuzzy.RuleNone {
		return MatchCandidate{}, false
	}

	matchType := forceType
	if matchType == "" {
		switch res.Rule {
		case fuzzy.RuleExact:
			matchType = MatchExact
		case fuzzy.RuleQueryInCandidate:
			matchType = MatchContains
		case fuzzy.RuleCandidateInQuery:
			matchType = MatchPartial
		default:
			matchType = MatchWordOverlap
		}
	}

	cand := MatchCandidate{
		CandidateID:   entry.ID,
		CandidateName: entry.Name,
		Score:         res.Score,
		Type:          matchType,
	}
	if res.Rule == fuzzy.RuleWordOverlap {
		cand.Details.Overlap = &OverlapDetails{Ratio: res.Overlap}
	}
	return cand, true
}

// crossMaltsterSuggestion builds the low-confidence suggestion allowed for
// a candidate from a different maltster. It needs meaningful word overlap
// once brand tokens are stripped, and its score is hard-capped so it can
// never be mistaken for a usable match.
func crossMaltsterSuggestion(query IngredientQuery, qBrand string, entry CatalogEntry, candBrand string) (MatchCandidate, bool) {
	qTokens := maltster.StripBrandTokens(normalize.ContentTokens(query.Name))
	cTokens := maltster.StripBrandTokens(normalize.ContentTokens(entry.Name))
	ratio := fuzzy.OverlapRatio(qTokens, cTokens)
	if ratio < differentMaltsterMinRatio {
		return MatchCandidate{}, false
	}
	return MatchCandidate{
		CandidateID:   entry.ID,
		CandidateName: entry.Name,
		Score:         differentMaltsterCap * ratio,
		Type:          MatchDifferentMaltster,
		Details: MatchDetails{
			Brand:   &BrandDetails{QueryBrand: qBrand, CandidateBrand: candBrand},
			Overlap: &OverlapDetails{Ratio: ratio},
			Warning: "different maltster; not a like-for-like substitute",
		},
	}, true
}

// entryColorBand parses a candidate's color band from its name, falling
// back to the description.
func entryColorBand(entry CatalogEntry) (color.Band, bool) {
	if band, ok := color.ParseBand(entry.Name); ok {
		return band, true
	}
	return color.ParseBand(entry.Description)
}

// bandDistance is the distance from a target to the nearest band edge,
// zero inside the band.
func bandDistance(target float64, band color.Band) float64 {
	switch {
	case target < band.EBCMin:
		return band.EBCMin - target
	case target > band.EBCMax:
		return target - band.EBCMax
	default:
		return 0
	}
}

// dedupeAndRank keeps the highest score per catalog entry and sorts the
// survivors by score, then name, then id, so identical inputs always yield
// identical output order.
func dedupeAndRank(candidates []MatchCandidate) []MatchCandidate {
	best := make(map[string]MatchCandidate, len(candidates))
	order := make([]string, 0, len(candidates))
	for _, cand := range candidates {
		existing, seen := best[cand.CandidateID]
		if !seen {
			order = append(order, cand.CandidateID)
			best[cand.CandidateID] = cand
		} else if cand.Score > existing.Score {
			best[cand.CandidateID] = cand
		}
	}

	out := make([]MatchCandidate, 0, len(order))
	for _, id := range order {
		out = append(out, best[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		if out[i].CandidateName != out[j].CandidateName {
			return out[i].CandidateName < out[j].CandidateName
		}
		return out[i].CandidateID < out[j].CandidateID
	})
	return out
}

// assemble splits ranked candidates into the result shape: best match and
// capped alternatives above the threshold, everything else above zero as
// suggestions.
func (e *Engine) assemble(candidates []MatchCandidate, minScore float64) MatchResult {
	var result MatchResult
	for _, cand := range candidates {
		e.attachStock(&cand)
		switch {
		case cand.Score >= minScore && result.BestMatch == nil:
			best := cand
			result.Found = true
			result.BestMatch = &best
			result.RequiresConfirmation = best.Type == MatchEquivalent || best.Type == MatchDifferentMaltster
		case cand.Score >= minScore:
			if len(result.Alternatives) < e.opts.MaxAlternates {
				result.Alternatives = append(result.Alternatives, cand)
			}
		case cand.Score > 0:
			result.Suggestions = append(result.Suggestions, cand)
		}
	}
	debug.Printf(e.opts.Debug, "found=%v alternatives=%d suggestions=%d",
		result.Found, len(result.Alternatives), len(result.Suggestions))
	return result
}

func (e *Engine) attachStock(cand *MatchCandidate) {
	if !e.opts.IncludeStock || e.opts.Stock == nil {
		return
	}
	if amount, ok := e.opts.Stock[cand.CandidateID]; ok {
		stock := amount
		cand.StockAmount = &stock
	}
}
