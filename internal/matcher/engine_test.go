package matcher

import (
	"math"
	"reflect"
	"testing"
)

func floatEq(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestResolveExactMatchDominance(t *testing.T) {
	engine := NewEngine(DefaultOptions())
	catalog := []CatalogEntry{
		{ID: "h1", Name: "Cascade Hops"},
		{ID: "h2", Name: "Cascade"},
		{ID: "h3", Name: "Centennial"},
	}

	result := engine.Resolve(IngredientQuery{Name: "Cascade"}, catalog)
	if !result.Found {
		t.Fatal("expected a match")
	}
	if result.BestMatch.CandidateID != "h2" {
		t.Fatalf("best = %s, want the exact-name entry h2", result.BestMatch.CandidateID)
	}
	if result.BestMatch.Score != 100 || result.BestMatch.Type != MatchExact {
		t.Errorf("best = %.0f %s, want 100 exact", result.BestMatch.Score, result.BestMatch.Type)
	}
	if result.RequiresConfirmation {
		t.Error("exact match should not require confirmation")
	}
}

func TestResolveYeastIdentityPrecedence(t *testing.T) {
	engine := NewEngine(DefaultOptions())
	catalog := []CatalogEntry{
		{ID: "y1", Name: "Safale US-05"},
		{ID: "y2", Name: "WLP001 California Ale"},
	}
	query := IngredientQuery{
		Name:  "US-05",
		Hints: QueryHints{ProductCode: "US-05"},
	}

	result := engine.Resolve(query, catalog)
	if !result.Found {
		t.Fatal("expected a match")
	}
	if result.BestMatch.CandidateID != "y1" || result.BestMatch.Score != 100 || result.BestMatch.Type != MatchYeastID {
		t.Fatalf("best = %s %.0f %s, want y1 100 yeast_id",
			result.BestMatch.CandidateID, result.BestMatch.Score, result.BestMatch.Type)
	}
	if result.BestMatch.Details.YeastID == nil || result.BestMatch.Details.YeastID.MatchedCode != "US-05" {
		t.Errorf("missing yeast rationale: %+v", result.BestMatch.Details)
	}

	// The White Labs strain is the same group, so it surfaces only as an
	// equivalent suggestion at the fixed score.
	if len(result.Suggestions) != 1 {
		t.Fatalf("suggestions = %d, want 1", len(result.Suggestions))
	}
	sug := result.Suggestions[0]
	if sug.CandidateID != "y2" || sug.Score != 40 || sug.Type != MatchEquivalent {
		t.Errorf("suggestion = %s %.0f %s, want y2 40 equivalent", sug.CandidateID, sug.Score, sug.Type)
	}
	if sug.Details.Equivalence == nil || sug.Details.Warning == "" {
		t.Errorf("equivalent suggestion missing rationale: %+v", sug.Details)
	}
}

func TestResolveSameLabSharedWords(t *testing.T) {
	engine := NewEngine(DefaultOptions())
	catalog := []CatalogEntry{
		{ID: "y1", Name: "Safale US-05 American Ale"},
	}
	query := IngredientQuery{
		Name:  "American Ale",
		Hints: QueryHints{Lab: "Safale"},
	}

	result := engine.Resolve(query, catalog)
	if !result.Found {
		t.Fatal("expected a match")
	}
	if result.BestMatch.Score != 80 || result.BestMatch.Type != MatchLabName {
		t.Errorf("best = %.0f %s, want 80 lab_name", result.BestMatch.Score, result.BestMatch.Type)
	}
}

func TestResolveYeastWordOverlap(t *testing.T) {
	engine := NewEngine(DefaultOptions())
	catalog := []CatalogEntry{
		{ID: "y1", Name: "WLP001 California Ale"},
	}

	// No code, no lab hint. Two of three content words overlap, which is
	// above the 0.6 floor and scores ratio * 100 * 0.7.
	result := engine.Resolve(IngredientQuery{Name: "California Ale Yeast"}, catalog)
	if result.Found {
		t.Fatalf("overlap score should sit below the default threshold, got best %+v", result.BestMatch)
	}
	if len(result.Suggestions) != 1 {
		t.Fatalf("suggestions = %d, want 1", len(result.Suggestions))
	}
	sug := result.Suggestions[0]
	if sug.Type != MatchWordOverlap {
		t.Errorf("type = %s, want word_overlap", sug.Type)
	}
	if !floatEq(sug.Score, (2.0/3.0)*100*0.7) {
		t.Errorf("score = %v, want %v", sug.Score, (2.0/3.0)*100*0.7)
	}
}

func TestResolveBrandGating(t *testing.T) {
	engine := NewEngine(DefaultOptions())
	catalog := []CatalogEntry{
		{ID: "m1", Name: "Simpsons Best Pale Ale"},
	}
	query := IngredientQuery{
		Name:  "BEST Pale Ale",
		Hints: QueryHints{Supplier: "BESTMALZ"},
	}

	result := engine.Resolve(query, catalog)
	if result.Found {
		t.Fatalf("cross-maltster pair must not be a direct match, got %+v", result.BestMatch)
	}
	if len(result.Suggestions) != 1 {
		t.Fatalf("suggestions = %d, want 1", len(result.Suggestions))
	}
	sug := result.Suggestions[0]
	if sug.Type != MatchDifferentMaltster {
		t.Errorf("type = %s, want different_maltster", sug.Type)
	}
	if sug.Score > 30 {
		t.Errorf("score = %v, must never exceed 30", sug.Score)
	}
	if sug.Details.Brand == nil ||
		sug.Details.Brand.QueryBrand != "BESTMALZ" ||
		sug.Details.Brand.CandidateBrand != "Simpsons" {
		t.Errorf("brand rationale = %+v", sug.Details.Brand)
	}
}

func TestResolveExactNameBypassesBrandGate(t *testing.T) {
	// An identical string is the same product even when the detected
	// brands disagree with the supplier hint.
	engine := NewEngine(DefaultOptions())
	catalog := []CatalogEntry{
		{ID: "m1", Name: "Simpsons Pale Ale"},
	}
	query := IngredientQuery{
		Name:  "Simpsons Pale Ale",
		Hints: QueryHints{Supplier: "BESTMALZ"},
	}

	result := engine.Resolve(query, catalog)
	if !result.Found || result.BestMatch.Type != MatchExact || result.BestMatch.Score != 100 {
		t.Fatalf("got %+v, want exact 100", result.BestMatch)
	}
}

func TestResolveColorToleranceBoundary(t *testing.T) {
	engine := NewEngine(DefaultOptions())
	catalog := []CatalogEntry{
		{ID: "c1", Name: "Crystal 140-160 EBC"},
	}

	// Distance 30 from the upper band edge with the default tolerance of
	// 30 EBC scores exactly 50.
	result := engine.Resolve(IngredientQuery{Name: "Caramel 190 EBC"}, catalog)
	if !result.Found {
		t.Fatal("expected a boundary match")
	}
	if result.BestMatch.Type != MatchColor || !floatEq(result.BestMatch.Score, 50) {
		t.Fatalf("got %s %.2f, want color 50.00", result.BestMatch.Type, result.BestMatch.Score)
	}
	details := result.BestMatch.Details.Color
	if details == nil || !floatEq(details.DifferenceEBC, 30) || !floatEq(details.TargetEBC, 190) {
		t.Errorf("color rationale = %+v", details)
	}

	// Distance 61 is beyond tolerance: the candidate disappears entirely.
	result = engine.Resolve(IngredientQuery{Name: "Caramel 221 EBC"}, catalog)
	if result.Found || len(result.Suggestions) != 0 {
		t.Errorf("out-of-tolerance color should yield nothing, got %+v", result)
	}
}

func TestResolveColorInsideBand(t *testing.T) {
	engine := NewEngine(DefaultOptions())
	catalog := []CatalogEntry{
		{ID: "c1", Name: "Crystal 140-160 EBC"},
		{ID: "c2", Name: "Crystal 40-60 EBC"},
	}
	lovibond := 150.0 / 2.63
	query := IngredientQuery{
		Name:  "Crystal Dark",
		Hints: QueryHints{ColorLovibond: &lovibond},
	}

	result := engine.Resolve(query, catalog)
	if !result.Found {
		t.Fatal("expected a match")
	}
	if result.BestMatch.CandidateID != "c1" || result.BestMatch.Type != MatchColor {
		t.Fatalf("best = %+v, want c1 color", result.BestMatch)
	}
	if !floatEq(result.BestMatch.Score, 100) {
		t.Errorf("inside-band score = %v, want 100", result.BestMatch.Score)
	}
}

func TestResolveDeterminism(t *testing.T) {
	engine := NewEngine(DefaultOptions())
	catalog := []CatalogEntry{
		{ID: "h3", Name: "Cascade Pellets"},
		{ID: "h1", Name: "Cascade Hops"},
		{ID: "h2", Name: "US Cascade"},
	}
	query := IngredientQuery{Name: "Cascade"}

	first := engine.Resolve(query, catalog)
	second := engine.Resolve(query, catalog)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("results differ between identical calls:\n%+v\n%+v", first, second)
	}
}

func TestResolveTiesBreakByName(t *testing.T) {
	engine := NewEngine(DefaultOptions())
	// Both candidates contain the query and score 85.
	catalog := []CatalogEntry{
		{ID: "b", Name: "Saaz Hops Premium"},
		{ID: "a", Name: "Saaz Hops Czech"},
	}

	result := engine.Resolve(IngredientQuery{Name: "Saaz"}, catalog)
	if !result.Found {
		t.Fatal("expected a match")
	}
	if result.BestMatch.CandidateName != "Saaz Hops Czech" {
		t.Errorf("tie broke to %q, want alphabetical first", result.BestMatch.CandidateName)
	}
}

func TestResolveThresholdConsistency(t *testing.T) {
	catalog := []CatalogEntry{
		{ID: "1", Name: "Cascade"},
		{ID: "2", Name: "Cascade Hops"},
		{ID: "3", Name: "US Cascade Pellets"},
		{ID: "4", Name: "Mosaic Cascade Blend"},
	}
	query := IngredientQuery{Name: "Cascade"}

	loose := NewEngine(Options{MinScore: 50}).Resolve(query, catalog)
	strict := NewEngine(Options{MinScore: 90}).Resolve(query, catalog)

	looseAbove := len(loose.Alternatives)
	if loose.Found {
		looseAbove++
	}
	strictAbove := len(strict.Alternatives)
	if strict.Found {
		strictAbove++
	}
	if strictAbove > looseAbove {
		t.Errorf("raising min_score grew the above-threshold set: %d -> %d", looseAbove, strictAbove)
	}
	total := func(r MatchResult) int {
		n := len(r.Alternatives) + len(r.Suggestions)
		if r.Found {
			n++
		}
		return n
	}
	if total(strict) > total(loose) {
		t.Errorf("raising min_score grew the total candidate set")
	}
}

func TestResolveEmptyInputs(t *testing.T) {
	engine := NewEngine(DefaultOptions())

	result := engine.Resolve(IngredientQuery{Name: ""}, []CatalogEntry{{ID: "1", Name: "Cascade"}})
	if result.Found || result.BestMatch != nil || len(result.Suggestions) != 0 {
		t.Errorf("empty query should resolve to nothing, got %+v", result)
	}

	result = engine.Resolve(IngredientQuery{Name: "Cascade"}, nil)
	if result.Found || len(result.Alternatives) != 0 || len(result.Suggestions) != 0 {
		t.Errorf("empty catalog should resolve to nothing, got %+v", result)
	}
}

func TestResolveAlternativesCap(t *testing.T) {
	engine := NewEngine(DefaultOptions())
	catalog := []CatalogEntry{
		{ID: "1", Name: "Saaz"},
		{ID: "2", Name: "Saaz Hops A"},
		{ID: "3", Name: "Saaz Hops B"},
		{ID: "4", Name: "Saaz Hops C"},
		{ID: "5", Name: "Saaz Hops D"},
		{ID: "6", Name: "Saaz Hops E"},
		{ID: "7", Name: "Saaz Hops F"},
	}

	result := engine.Resolve(IngredientQuery{Name: "Saaz"}, catalog)
	if !result.Found {
		t.Fatal("expected a match")
	}
	if len(result.Alternatives) != DefaultMaxAlternates {
		t.Errorf("alternatives = %d, want %d", len(result.Alternatives), DefaultMaxAlternates)
	}
}

func TestResolveStockPassthrough(t *testing.T) {
	engine := NewEngine(Options{
		IncludeStock: true,
		Stock:        map[string]float64{"h1": 250},
	})
	catalog := []CatalogEntry{
		{ID: "h1", Name: "Cascade"},
		{ID: "h2", Name: "Cascade Hops"},
	}

	result := engine.Resolve(IngredientQuery{Name: "Cascade"}, catalog)
	if !result.Found {
		t.Fatal("expected a match")
	}
	if result.BestMatch.StockAmount == nil || *result.BestMatch.StockAmount != 250 {
		t.Errorf("stock = %v, want 250", result.BestMatch.StockAmount)
	}
	for _, alt := range result.Alternatives {
		if alt.CandidateID == "h2" && alt.StockAmount != nil {
			t.Error("h2 has no stock entry, amount should be nil")
		}
	}
}

func TestFindSubstitutesHopTable(t *testing.T) {
	engine := NewEngine(DefaultOptions())
	catalog := []CatalogEntry{
		{ID: "h1", Name: "Cascade"},
		{ID: "h2", Name: "Centennial"},
		{ID: "h3", Name: "Saaz"},
	}

	result := engine.FindSubstitutes(IngredientQuery{Name: "Cascade"}, catalog)
	if !result.Found {
		t.Fatal("expected a substitute")
	}
	best := result.BestMatch
	if best.CandidateID != "h2" || best.Score != 90 || best.Type != MatchEquivalent {
		t.Fatalf("best = %s %.0f %s, want h2 90 equivalent", best.CandidateID, best.Score, best.Type)
	}
	if !result.RequiresConfirmation {
		t.Error("a substitute is not an identification; confirmation required")
	}
	// The query's own catalog entry never comes back.
	for _, c := range append(result.Alternatives, result.Suggestions...) {
		if c.CandidateID == "h1" {
			t.Error("substitute search returned the queried ingredient itself")
		}
	}
}

func TestFindSubstitutesLowerThreshold(t *testing.T) {
	engine := NewEngine(DefaultOptions())
	catalog := []CatalogEntry{
		{ID: "m1", Name: "Flaked Wheat"},
	}

	// Overlap of {flaked, torrified, wheat} vs {flaked, wheat} is 2/3,
	// scoring about 47: below the resolve threshold but above the
	// substitute-discovery one.
	query := IngredientQuery{Name: "Flaked Torrified Wheat"}
	resolved := engine.Resolve(query, catalog)
	if resolved.Found {
		t.Fatalf("resolve should not accept %.2f", resolved.BestMatch.Score)
	}
	subs := engine.FindSubstitutes(query, catalog)
	if !subs.Found {
		t.Fatal("substitute search should accept the same candidate")
	}
}

func TestDedupeAndRank(t *testing.T) {
	ranked := dedupeAndRank([]MatchCandidate{
		{CandidateID: "a", CandidateName: "A", Score: 60},
		{CandidateID: "a", CandidateName: "A", Score: 85},
		{CandidateID: "b", CandidateName: "B", Score: 70},
	})
	if len(ranked) != 2 {
		t.Fatalf("len = %d, want 2", len(ranked))
	}
	if ranked[0].CandidateID != "a" || ranked[0].Score != 85 {
		t.Errorf("top = %+v, want a at its highest score", ranked[0])
	}
	if ranked[1].CandidateID != "b" {
		t.Errorf("second = %+v, want b", ranked[1])
	}
}
