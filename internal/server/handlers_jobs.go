package server

import (
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/skillmatch/internal/db"
	"github.com/jonathan/skillmatch/internal/ingestion"
	"github.com/jonathan/skillmatch/internal/logger"
	"github.com/jonathan/skillmatch/internal/types"
)

// ---------------------------------------------------------------------
// Job Handlers
// ---------------------------------------------------------------------

func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	var req types.CreateJobRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}

	level, err := types.ParseExperienceLevel(req.ExperienceLevel)
	if err != nil {
		s.handleError(w, r, &ErrValidation{Field: "ExperienceLevel", Message: err.Error()})
		return
	}

	// Rich-text descriptions are stored as plain text so keyword extraction sees words, not markup
	description, err := ingestion.NormalizeDescription(req.Description)
	if err != nil {
		s.handleError(w, r, &ErrValidation{Field: "Description", Message: err.Error()})
		return
	}

	required, err := parseIDs("RequiredSkillIDs", req.RequiredSkillIDs)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	preferred, err := parseIDs("PreferredSkillIDs", req.PreferredSkillIDs)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := s.requireSkills(r, "RequiredSkillIDs", required); err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := s.requireSkills(r, "PreferredSkillIDs", preferred); err != nil {
		s.handleError(w, r, err)
		return
	}

	job, err := s.store.CreateJob(r.Context(), &db.JobCreateInput{
		EmployerID:        user.ID,
		Title:             req.Title,
		Description:       description,
		Location:          req.Location,
		ExperienceLevel:   level,
		Status:            types.JobStatusOpen,
		RequiredSkillIDs:  required,
		PreferredSkillIDs: preferred,
	})
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	s.logger.Info("job created",
		zap.String(logger.FieldJobID, job.ID.String()),
		zap.String(logger.FieldUserID, user.ID.String()))

	s.jsonResponse(w, http.StatusCreated, job)
}

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	limit, err := queryLimit(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	filters := db.JobFilters{Status: types.JobStatusOpen, Limit: limit}
	if status := r.URL.Query().Get("status"); status != "" {
		filters.Status = types.JobStatus(status)
		if !filters.Status.Valid() {
			s.handleError(w, r, &ErrValidation{Field: "status", Message: "unknown job status"})
			return
		}
	}
	if raw := r.URL.Query().Get("employer_id"); raw != "" {
		employerID, err := uuid.Parse(raw)
		if err != nil {
			s.handleError(w, r, &ErrValidation{Field: "employer_id", Message: "must be a UUID"})
			return
		}
		filters.EmployerID = &employerID
	}

	jobs, err := s.store.ListJobs(r.Context(), filters)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"jobs": jobs})
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	jobID, err := pathID(r, "id")
	if err != nil {
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

	s.jsonResponse(w, http.StatusOK, job)
}

func (s *Server) handleUpdateJobStatus(w http.ResponseWriter, r *http.Request) {
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

	var req types.UpdateJobStatusRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}

	if _, err := s.loadManagedJob(r, user, jobID, "update this job"); err != nil {
		s.handleError(w, r, err)
		return
	}

	updated, err := s.store.UpdateJobStatus(r.Context(), jobID, req.Status)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if !updated {
		s.handleError(w, r, &ErrNotFound{Resource: "job", ID: jobID.String()})
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"id": jobID.String(), "status": string(req.Status)})
}
