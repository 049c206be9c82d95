package server

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/jonathan/skillmatch/internal/logger"
	"github.com/jonathan/skillmatch/internal/matching"
	"github.com/jonathan/skillmatch/internal/types"
)

// ---------------------------------------------------------------------
// Matching and Ranking Handlers
// ---------------------------------------------------------------------

// RankResponse lists candidates for a job, best fit first.
type RankResponse struct {
	JobID   string                  `json:"job_id"`
	Results []types.RankedCandidate `json:"results"`
}

// handleMatch scores an inline job against an inline candidate. Nothing is read or stored.
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req types.MatchRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	if req.Candidate != nil {
		if err := validateExperience(req.Candidate.Experience); err != nil {
			s.handleError(w, r, err)
			return
		}
	}

	result, err := matching.MatchAt(req.Job, req.Candidate, s.now())
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// validateExperience requires every inline experience entry to carry a start date.
func validateExperience(entries []types.ExperienceEntry) error {
	for i, e := range entries {
		if e.StartDate.IsZero() {
			return &ErrValidation{Field: fmt.Sprintf("candidate.experience[%d].start_date", i), Message: "required"}
		}
	}
	return nil
}

// handleJobMatch scores a stored candidate against a stored job.
func (s *Server) handleJobMatch(w http.ResponseWriter, r *http.Request) {
	jobID, err := pathID(r, "id")
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	candidateID, err := pathID(r, "candidate_id")
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	user, err := s.currentUser(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if !canViewCandidate(user, candidateID) {
		s.handleError(w, r, &ErrForbidden{Action: "view this candidate"})
		return
	}

	job, err := s.store.LoadJobPosting(r.Context(), jobID)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if job == nil {
		s.handleError(w, r, &ErrNotFound{Resource: "job", ID: jobID.String()})
		return
	}

	candidate, err := s.store.LoadCandidateProfile(r.Context(), candidateID)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if candidate == nil {
		s.handleError(w, r, &ErrNotFound{Resource: "candidate", ID: candidateID.String()})
		return
	}

	result, err := s.ranker.Match(job, candidate)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// handleRank ranks the listed stored candidates against a job the caller manages.
func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	jobID, err := pathID(r, "id")
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	user, err := s.currentUser(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	var req types.RankRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	candidateIDs, err := parseIDs("CandidateIDs", req.CandidateIDs)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	job, err := s.loadManagedJob(r, user, jobID, "rank candidates for this job")
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	candidates, err := s.store.LoadCandidateProfiles(r.Context(), candidateIDs)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	ranked, err := s.ranker.Rank(r.Context(), job.Posting(), candidates)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	s.logger.Debug("ranked candidates for job",
		zap.String(logger.FieldJobID, jobID.String()),
		zap.Int("requested", len(candidateIDs)),
		zap.Int("ranked", len(ranked)))

	s.jsonResponse(w, http.StatusOK, RankResponse{JobID: jobID.String(), Results: ranked})
}
