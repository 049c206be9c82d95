package server

import (
	"net/http"

	"github.com/jonathan/skillmatch/internal/types"
)

// ---------------------------------------------------------------------
// Profile Handlers (the authenticated caller's own candidate data)
// ---------------------------------------------------------------------

// ProfileResponse is the caller's account together with the profile the engine scores.
type ProfileResponse struct {
	User    *types.User             `json:"user"`
	Profile *types.CandidateProfile `json:"profile"`
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.respondWithProfile(w, r, http.StatusOK, user)
}

func (s *Server) handleAddSkills(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	var req types.AddSkillsRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}

	ids, err := parseIDs("SkillIDs", req.SkillIDs)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := s.requireSkills(r, "SkillIDs", ids); err != nil {
		s.handleError(w, r, err)
		return
	}

	if err := s.store.AddUserSkills(r.Context(), user.ID, ids); err != nil {
		s.handleError(w, r, err)
		return
	}

	s.respondWithProfile(w, r, http.StatusOK, user)
}

func (s *Server) handleAddExperience(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	var req types.AddExperienceRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	if req.StartDate.IsZero() {
		s.handleError(w, r, &ErrValidation{Field: "StartDate", Message: "required"})
		return
	}
	if req.EndDate != nil && req.EndDate.Before(req.StartDate.Time) {
		s.handleError(w, r, &ErrValidation{Field: "EndDate", Message: "before start_date"})
		return
	}

	entry, err := s.store.AddExperienceEntry(r.Context(), user.ID, types.ExperienceEntry{
		Company:   req.Company,
		Title:     req.Title,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Current:   req.Current,
	})
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, entry)
}

func (s *Server) handleAddEducation(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	var req types.AddEducationRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}

	entry, err := s.store.AddEducationEntry(r.Context(), user.ID, types.EducationEntry{
		Institution: req.Institution,
		Degree:      req.Degree,
		Field:       req.Field,
	})
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, entry)
}

func (s *Server) respondWithProfile(w http.ResponseWriter, r *http.Request, status int, user *types.User) {
	profile, err := s.store.LoadCandidateProfile(r.Context(), user.ID)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if profile == nil {
		s.handleError(w, r, &ErrUserNotFound{UserID: user.ID})
		return
	}
	s.jsonResponse(w, status, ProfileResponse{User: user, Profile: profile})
}
