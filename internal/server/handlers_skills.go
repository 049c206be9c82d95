package server

import (
	"net/http"
	"strconv"

	"github.com/jonathan/skillmatch/internal/parsing"
	"github.com/jonathan/skillmatch/internal/types"
)

// ---------------------------------------------------------------------
// Skill Catalog Handlers
// ---------------------------------------------------------------------

func (s *Server) handleCreateSkill(w http.ResponseWriter, r *http.Request) {
	var req types.CreateSkillRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	if parsing.NormalizeSkillName(req.Name) == "" {
		s.handleError(w, r, &ErrValidation{Field: "Name", Message: "required"})
		return
	}

	skill, err := s.store.CreateSkill(r.Context(), req.Name, req.Description)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, skill)
}

func (s *Server) handleListSkills(w http.ResponseWriter, r *http.Request) {
	limit, err := queryLimit(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	skills, err := s.store.ListSkills(r.Context(), r.URL.Query().Get("q"), limit)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"skills": skills})
}

// queryLimit reads the optional ?limit= parameter. Zero means the store default.
func queryLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0, &ErrValidation{Field: "limit", Message: "must be a non-negative integer"}
	}
	return limit, nil
}
