package server

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/jonathan/skillmatch/internal/db"
	"github.com/jonathan/skillmatch/internal/logger"
	"github.com/jonathan/skillmatch/internal/types"
)

// ---------------------------------------------------------------------
// Application Handlers
// ---------------------------------------------------------------------

// handleApply submits the caller's application. The match result at submission time is stored
// with it.
func (s *Server) handleApply(w http.ResponseWriter, r *http.Request) {
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

	var req types.ApplyRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}

	job, err := s.store.GetJob(r.Context(), jobID)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if job == nil {
		s.handleError(w, r, &ErrNotFound{Resource: "job", ID: jobID.String()})
		return
	}
	if job.Status != types.JobStatusOpen {
		s.handleError(w, r, &ErrValidation{Field: "job", Message: "not open for applications"})
		return
	}

	candidate, err := s.store.LoadCandidateProfile(r.Context(), user.ID)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if candidate == nil {
		s.handleError(w, r, &ErrUserNotFound{UserID: user.ID})
		return
	}

	result, err := s.ranker.Match(job.Posting(), candidate)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	app, err := s.store.CreateApplication(r.Context(), &db.ApplicationCreateInput{
		JobID:       jobID,
		CandidateID: user.ID,
		CoverLetter: req.CoverLetter,
		Result:      result,
	})
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	s.logger.Info("application submitted",
		zap.String(logger.FieldJobID, jobID.String()),
		zap.String(logger.FieldCandidateID, user.ID.String()),
		zap.Float64("match_score", result.OverallScore))

	s.jsonResponse(w, http.StatusCreated, app)
}

func (s *Server) handleListApplications(w http.ResponseWriter, r *http.Request) {
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
	if _, err := s.loadManagedJob(r, user, jobID, "review applications for this job"); err != nil {
		s.handleError(w, r, err)
		return
	}

	apps, err := s.store.ListApplicationsByJob(r.Context(), jobID)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"applications": apps})
}

func (s *Server) handleApplicationStats(w http.ResponseWriter, r *http.Request) {
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
	if _, err := s.loadManagedJob(r, user, jobID, "review applications for this job"); err != nil {
		s.handleError(w, r, err)
		return
	}

	stats, err := s.store.GetApplicationStats(r.Context(), jobID)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, stats)
}
