package server

import (
	"net/http"
	"slices"

	"github.com/google/uuid"

	"github.com/jonathan/skillmatch/internal/db"
	"github.com/jonathan/skillmatch/internal/server/middleware"
	"github.com/jonathan/skillmatch/internal/types"
)

// currentUser loads the authenticated caller.
func (s *Server) currentUser(r *http.Request) (*types.User, error) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		return nil, &ErrInvalidCredentials{}
	}
	return s.userService.GetUser(r.Context(), userID)
}

// canManageJob reports whether user may rank candidates and review applications for job.
// Employers manage their own jobs; recruiters and admins manage any job.
func canManageJob(user *types.User, job *db.Job) bool {
	switch user.Role {
	case types.RoleAdmin, types.RoleRecruiter:
		return true
	case types.RoleEmployer:
		return job.EmployerID == user.ID
	}
	return false
}

// canViewCandidate reports whether user may see scores for candidateID.
func canViewCandidate(user *types.User, candidateID uuid.UUID) bool {
	return user.ID == candidateID || slices.Contains(types.HiringRoles, user.Role)
}

// loadManagedJob loads job id and checks that user manages it.
func (s *Server) loadManagedJob(r *http.Request, user *types.User, id uuid.UUID, action string) (*db.Job, error) {
	job, err := s.store.GetJob(r.Context(), id)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, &ErrNotFound{Resource: "job", ID: id.String()}
	}
	if !canManageJob(user, job) {
		return nil, &ErrForbidden{Action: action}
	}
	return job, nil
}

// parseIDs parses UUID strings, dropping repeats while keeping first-seen order.
func parseIDs(field string, raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	seen := make(map[uuid.UUID]bool, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, &ErrValidation{Field: field, Message: "must contain UUIDs"}
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids, nil
}

// requireSkills checks that every id names a catalog skill.
func (s *Server) requireSkills(r *http.Request, field string, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	skills, err := s.store.GetSkillsByIDs(r.Context(), ids)
	if err != nil {
		return err
	}
	found := make(map[uuid.UUID]bool, len(skills))
	for _, sk := range skills {
		found[sk.ID] = true
	}
	for _, id := range ids {
		if !found[id] {
			return &ErrValidation{Field: field, Message: "unknown skill " + id.String()}
		}
	}
	return nil
}
