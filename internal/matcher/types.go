package matcher

// MatchType is the rationale tag attached to every scored candidate. It is
// used both for ranking explanation and for the downstream auto-apply
// policy.
type MatchType string

const (
	MatchExact             MatchType = "exact"
	MatchYeastID           MatchType = "yeast_id"
	MatchLabName           MatchType = "lab_name"
	MatchFuzzyName         MatchType = "fuzzy_name"
	MatchColor             MatchType = "color"
	MatchContains          MatchType = "contains"
	MatchPartial           MatchType = "partial"
	MatchWordOverlap       MatchType = "word_overlap"
	MatchEquivalent        MatchType = "equivalent"
	MatchDifferentMaltster MatchType = "different_maltster"
)

// QueryHints carries structured fields supplied by an upstream system.
// When present they take precedence over values parsed out of the name
// text, since structured data beats regex extraction.
type QueryHints struct {
	Supplier      string
	Origin        string
	Lab           string
	ProductCode   string
	ColorLovibond *float64
}

// IngredientQuery is the thing to resolve: free text plus optional hints.
// Constructed fresh per lookup and never mutated.
type IngredientQuery struct {
	Name  string
	Hints QueryHints
}

// CatalogEntry is a candidate product in the searchable inventory. The
// description, when present, is a secondary parse source for color.
type CatalogEntry struct {
	ID          string
	Name        string
	Description string
}

// YeastIDDetails explains a strain-code match.
type YeastIDDetails struct {
	MatchedCode string
	Lab         string
}

// ColorMatchDetails explains a color-band match.
type ColorMatchDetails struct {
	TargetEBC     float64
	ProductEBCMin float64
	ProductEBCMax float64
	DifferenceEBC float64
}

// EquivalenceDetails explains an equivalence-graph or substitute-table hit.
type EquivalenceDetails struct {
	QueryCode     string
	CandidateCode string
	Group         []string
}

// BrandDetails explains a cross-maltster pairing.
type BrandDetails struct {
	QueryBrand     string
	CandidateBrand string
}

// OverlapDetails explains a token-overlap score.
type OverlapDetails struct {
	Ratio       float64
	SharedWords int
}

// MatchDetails is the rationale payload for a candidate. Exactly the
// fields relevant to the candidate's MatchType are set; the rest stay nil.
type MatchDetails struct {
	YeastID     *YeastIDDetails
	Color       *ColorMatchDetails
	Equivalence *EquivalenceDetails
	Brand       *BrandDetails
	Overlap     *OverlapDetails
	Warning     string
}

// MatchCandidate is one scored comparison between a query and a catalog
// entry. Candidates are never mutated after construction; the orchestrator
// only filters, sorts, and deduplicates lists of them.
type MatchCandidate struct {
	CandidateID   string
	CandidateName string
	Score         float64
	Type          MatchType
	Details       MatchDetails
	StockAmount   *float64
}

// MatchResult is the resolution outcome.
type MatchResult struct {
	Found                bool
	BestMatch            *MatchCandidate
	Alternatives         []MatchCandidate
	Suggestions          []MatchCandidate
	RequiresConfirmation bool
}

// Options is the configuration surface exposed to callers.
type Options struct {
	// MinScore is the floor a candidate must meet to be the best match or
	// an alternative. Lower scores become suggestions.
	MinScore float64
	// ToleranceEBC is the color distance at which a color match decays to
	// half credit.
	ToleranceEBC float64
	// MaxAlternates caps the alternatives list.
	MaxAlternates int
	// IncludeStock copies stock quantities from Stock onto candidates.
	IncludeStock bool
	Stock        map[string]float64
	Debug        bool
}

// DefaultMinScore is the resolution threshold; substitute discovery uses
// the lower SubstituteMinScore so near misses still surface.
const (
	DefaultMinScore      = 50.0
	SubstituteMinScore   = 30.0
	DefaultToleranceEBC  = 30.0
	DefaultMaxAlternates = 4
)

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		MinScore:      DefaultMinScore,
		ToleranceEBC:  DefaultToleranceEBC,
		MaxAlternates: DefaultMaxAlternates,
	}
}
