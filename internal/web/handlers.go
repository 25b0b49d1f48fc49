package web

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/brewmatch/internal/aliases"
	"github.com/brewmatch/internal/matcher"
)

const defaultAliasLimit = 10

// candidateResponse is the wire shape of one scored candidate.
type candidateResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Score       float64         `json:"score"`
	MatchType   string          `json:"match_type"`
	Details     detailsResponse `json:"details"`
	StockAmount *float64        `json:"stock_amount,omitempty"`
}

type detailsResponse struct {
	YeastID     *matcher.YeastIDDetails     `json:"yeast_id,omitempty"`
	Color       *matcher.ColorMatchDetails  `json:"color,omitempty"`
	Equivalence *matcher.EquivalenceDetails `json:"equivalence,omitempty"`
	Brand       *matcher.BrandDetails       `json:"brand,omitempty"`
	Overlap     *matcher.OverlapDetails     `json:"overlap,omitempty"`
	Warning     string                      `json:"warning,omitempty"`
}

// resolveResponse is the wire shape of a resolution outcome.
type resolveResponse struct {
	Found                bool                `json:"found"`
	BestMatch            *candidateResponse  `json:"best_match,omitempty"`
	Alternatives         []candidateResponse `json:"alternatives"`
	Suggestions          []candidateResponse `json:"suggestions"`
	RequiresConfirmation bool                `json:"requires_confirmation"`
	Decision             string              `json:"decision"`
}

func toCandidateResponse(c matcher.MatchCandidate) candidateResponse {
	return candidateResponse{
		ID:        c.CandidateID,
		Name:      c.CandidateName,
		Score:     c.Score,
		MatchType: string(c.Type),
		Details: detailsResponse{
			YeastID:     c.Details.YeastID,
			Color:       c.Details.Color,
			Equivalence: c.Details.Equivalence,
			Brand:       c.Details.Brand,
			Overlap:     c.Details.Overlap,
			Warning:     c.Details.Warning,
		},
		StockAmount: c.StockAmount,
	}
}

func (s *Server) toResolveResponse(result matcher.MatchResult) resolveResponse {
	resp := resolveResponse{
		Found:                result.Found,
		Alternatives:         []candidateResponse{},
		Suggestions:          []candidateResponse{},
		RequiresConfirmation: result.RequiresConfirmation,
		Decision:             string(s.policy.Classify(result)),
	}
	if result.BestMatch != nil {
		best := toCandidateResponse(*result.BestMatch)
		resp.BestMatch = &best
	}
	for _, alt := range result.Alternatives {
		resp.Alternatives = append(resp.Alternatives, toCandidateResponse(alt))
	}
	for _, sug := range result.Suggestions {
		resp.Suggestions = append(resp.Suggestions, toCandidateResponse(sug))
	}
	return resp
}

// queryFromRequest builds the ingredient query from URL parameters.
func queryFromRequest(r *http.Request) (matcher.IngredientQuery, bool) {
	params := r.URL.Query()
	query := matcher.IngredientQuery{
		Name: params.Get("name"),
		Hints: matcher.QueryHints{
			Supplier:    params.Get("supplier"),
			Origin:      params.Get("origin"),
			Lab:         params.Get("lab"),
			ProductCode: params.Get("product_code"),
		},
	}
	if raw := params.Get("color_lovibond"); raw != "" {
		if lovibond, err := strconv.ParseFloat(raw, 64); err == nil {
			query.Hints.ColorLovibond = &lovibond
		}
	}
	return query, query.Name != ""
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	query, ok := queryFromRequest(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "name parameter is required")
		return
	}

	entries, err := s.source.Entries(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, "catalog unavailable: "+err.Error())
		return
	}

	result := s.engine.Resolve(query, entries)
	writeJSON(w, http.StatusOK, s.toResolveResponse(result))
}

func (s *Server) handleSubstitutes(w http.ResponseWriter, r *http.Request) {
	query, ok := queryFromRequest(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "name parameter is required")
		return
	}

	entries, err := s.source.Entries(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, "catalog unavailable: "+err.Error())
		return
	}

	result := s.engine.FindSubstitutes(query, entries)
	writeJSON(w, http.StatusOK, s.toResolveResponse(result))
}

// handleAliases serves name canonicalization and prefix completion for
// search boxes. With "name" it resolves one alias; with "prefix" it lists
// canonical names for autocomplete.
func (s *Server) handleAliases(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	if name := params.Get("name"); name != "" {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"name":      name,
			"canonical": aliases.Canonical(name),
			"known":     aliases.Known(name),
		})
		return
	}

	prefix := params.Get("prefix")
	if prefix == "" {
		writeError(w, http.StatusBadRequest, "name or prefix parameter is required")
		return
	}
	limit := defaultAliasLimit
	if raw := params.Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	suggestions := aliases.Suggest(prefix, limit)
	if suggestions == nil {
		suggestions = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"prefix":      prefix,
		"suggestions": suggestions,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok"}
	if _, err := s.source.Entries(r.Context()); err != nil {
		status["status"] = "degraded"
		status["catalog"] = err.Error()
	}
	writeJSON(w, http.StatusOK, status)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
