package server

import (
	"net/http"

	"github.com/jonathan/skillmatch/internal/db"
	"github.com/jonathan/skillmatch/internal/query"
)

// SearchResponse echoes the criteria extracted from the query text with the hits.
type SearchResponse struct {
	Criteria query.Criteria        `json:"criteria"`
	Results  []db.CandidateSummary `json:"results"`
}

// handleSearchCandidates turns free text such as "senior python developer with 5+ years" into
// structured criteria and filters stored candidates by them.
func (s *Server) handleSearchCandidates(w http.ResponseWriter, r *http.Request) {
	if _, err := s.currentUser(r); err != nil {
		s.handleError(w, r, err)
		return
	}

	limit, err := queryLimit(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	criteria := query.Extract(r.URL.Query().Get("q"))
	if criteria.IsEmpty() {
		s.handleError(w, r, &ErrValidation{Field: "q", Message: "no search terms recognized"})
		return
	}

	results, err := s.store.SearchCandidates(r.Context(), criteria, limit)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, SearchResponse{Criteria: criteria, Results: results})
}
