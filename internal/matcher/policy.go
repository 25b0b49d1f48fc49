package matcher

// Decision is what a caller should do with a resolution outcome. Bulk
// importers auto-apply only unambiguous matches; everything else goes to a
// human.
type Decision string

const (
	DecisionAutoApply Decision = "auto_apply"
	DecisionConfirm   Decision = "confirm"
	DecisionReject    Decision = "reject"
)

// DefaultAutoApplyScore is the score a best match must reach before the
// policy allows applying it without confirmation.
const DefaultAutoApplyScore = 90.0

// Policy classifies match results into caller actions.
type Policy struct {
	AutoApplyScore float64
}

// DefaultPolicy returns the documented default policy.
func DefaultPolicy() Policy {
	return Policy{AutoApplyScore: DefaultAutoApplyScore}
}

// Classify maps a result to a decision. Equivalent-strain and
// cross-maltster matches always require confirmation regardless of score,
// because they are substitutions rather than identifications.
func (p Policy) Classify(result MatchResult) Decision {
	if !result.Found || result.BestMatch == nil {
		return DecisionReject
	}
	if result.RequiresConfirmation {
		return DecisionConfirm
	}
	if result.BestMatch.Score >= p.AutoApplyScore {
		return DecisionAutoApply
	}
	return DecisionConfirm
}
