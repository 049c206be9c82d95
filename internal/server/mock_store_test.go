package server

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/skillmatch/internal/db"
	"github.com/jonathan/skillmatch/internal/parsing"
	"github.com/jonathan/skillmatch/internal/query"
	"github.com/jonathan/skillmatch/internal/types"
)

// mockStore is an in-memory Store for handler tests.
type mockStore struct {
	mu           sync.Mutex
	users        map[uuid.UUID]*db.User
	skills       map[uuid.UUID]db.Skill
	jobs         map[uuid.UUID]*db.Job
	userSkills   map[uuid.UUID][]uuid.UUID
	experience   map[uuid.UUID][]db.ExperienceEntry
	education    map[uuid.UUID][]db.EducationEntry
	applications []db.Application
	pingErr      error
	failWith     error // returned by every data method when set
	lastSearch   *query.Criteria
}

func newMockStore() *mockStore {
	return &mockStore{
		users:      map[uuid.UUID]*db.User{},
		skills:     map[uuid.UUID]db.Skill{},
		jobs:       map[uuid.UUID]*db.Job{},
		userSkills: map[uuid.UUID][]uuid.UUID{},
		experience: map[uuid.UUID][]db.ExperienceEntry{},
		education:  map[uuid.UUID][]db.EducationEntry{},
	}
}

// ----- User Methods -----

func (m *mockStore) CreateUser(_ context.Context, name, email, phone string, role types.UserRole, passwordHash string) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return uuid.Nil, m.failWith
	}
	for _, existing := range m.users {
		if strings.EqualFold(existing.Email, email) {
			return uuid.Nil, db.ErrEmailTaken
		}
	}
	now := time.Now()
	u := &db.User{
		ID: uuid.New(), Name: name, Email: email, Phone: phone, Role: role,
		PasswordHash: passwordHash, PasswordSet: passwordHash != "", CreatedAt: now, UpdatedAt: now,
	}
	m.users[u.ID] = u
	return u.ID, nil
}

func (m *mockStore) GetUser(_ context.Context, id uuid.UUID) (*db.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *mockStore) GetUserByEmail(_ context.Context, email string) (*db.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockStore) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	u, err := m.GetUserByEmail(ctx, email)
	return u != nil, err
}

func (m *mockStore) UpdatePassword(_ context.Context, userID uuid.UUID, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[userID]; ok {
		u.PasswordHash = passwordHash
		u.PasswordSet = true
	}
	return m.failWith
}

func (m *mockStore) Ping(context.Context) error { return m.pingErr }

func (m *mockStore) Close() {}

// ----- Skill Methods -----

func (m *mockStore) CreateSkill(_ context.Context, name, description string) (*db.Skill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	name = parsing.NormalizeSkillName(name)
	slug := parsing.Slugify(name)
	for _, s := range m.skills {
		if s.Slug == slug {
			cp := s
			return &cp, nil
		}
	}
	s := db.Skill{ID: uuid.New(), Name: name, Slug: slug, Description: description, CreatedAt: time.Now()}
	m.skills[s.ID] = s
	return &s, nil
}

func (m *mockStore) GetSkillsByIDs(_ context.Context, ids []uuid.UUID) ([]db.Skill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []db.Skill{}
	for _, id := range ids {
		if s, ok := m.skills[id]; ok {
			out = append(out, s)
		}
	}
	return out, m.failWith
}

func (m *mockStore) ListSkills(_ context.Context, prefix string, _ int) ([]db.Skill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []db.Skill{}
	for _, s := range m.skills {
		if strings.HasPrefix(strings.ToLower(s.Name), strings.ToLower(prefix)) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, m.failWith
}

// ----- Job Methods -----

func (m *mockStore) skillsFor(ids []uuid.UUID) []db.Skill {
	out := make([]db.Skill, 0, len(ids))
	for _, id := range ids {
		out = append(out, m.skills[id])
	}
	return out
}

func (m *mockStore) CreateJob(_ context.Context, input *db.JobCreateInput) (*db.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	status := input.Status
	if status == "" {
		status = types.JobStatusOpen
	}
	now := time.Now()
	j := &db.Job{
		ID: uuid.New(), EmployerID: input.EmployerID, Title: input.Title, Description: input.Description,
		Location: input.Location, ExperienceLevel: input.ExperienceLevel, Status: status,
		RequiredSkills: m.skillsFor(input.RequiredSkillIDs), PreferredSkills: m.skillsFor(input.PreferredSkillIDs),
		CreatedAt: now, UpdatedAt: now,
	}
	m.jobs[j.ID] = j
	cp := *j
	return &cp, nil
}

func (m *mockStore) GetJob(_ context.Context, id uuid.UUID) (*db.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	j, ok := m.jobs[id]
	if !ok {
		return nil, nil
	}
	cp := *j
	return &cp, nil
}

func (m *mockStore) ListJobs(_ context.Context, filters db.JobFilters) ([]db.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []db.Job{}
	for _, j := range m.jobs {
		if filters.Status != "" && j.Status != filters.Status {
			continue
		}
		if filters.EmployerID != nil && j.EmployerID != *filters.EmployerID {
			continue
		}
		out = append(out, *j)
	}
	return out, m.failWith
}

func (m *mockStore) UpdateJobStatus(_ context.Context, id uuid.UUID, status types.JobStatus) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[id]
	if !ok {
		return false, m.failWith
	}
	j.Status = status
	return true, m.failWith
}

func (m *mockStore) LoadJobPosting(ctx context.Context, id uuid.UUID) (*types.JobPosting, error) {
	j, err := m.GetJob(ctx, id)
	if err != nil || j == nil {
		return nil, err
	}
	return j.Posting(), nil
}

// ----- Profile Methods -----

func (m *mockStore) AddUserSkills(_ context.Context, userID uuid.UUID, skillIDs []uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	have := map[uuid.UUID]bool{}
	for _, id := range m.userSkills[userID] {
		have[id] = true
	}
	for _, id := range skillIDs {
		if !have[id] {
			m.userSkills[userID] = append(m.userSkills[userID], id)
			have[id] = true
		}
	}
	m.bump(userID)
	return nil
}

func (m *mockStore) bump(userID uuid.UUID) {
	if u, ok := m.users[userID]; ok {
		u.ProfileVersion++
	}
}

func (m *mockStore) AddExperienceEntry(_ context.Context, userID uuid.UUID, entry types.ExperienceEntry) (*db.ExperienceEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	e := db.ExperienceEntry{
		ID: uuid.New(), UserID: userID, Company: entry.Company, Title: entry.Title,
		StartDate: entry.StartDate.Time, Current: entry.Current, CreatedAt: time.Now(),
	}
	if entry.EndDate != nil {
		end := entry.EndDate.Time
		e.EndDate = &end
	}
	m.experience[userID] = append(m.experience[userID], e)
	m.bump(userID)
	return &e, nil
}

func (m *mockStore) AddEducationEntry(_ context.Context, userID uuid.UUID, entry types.EducationEntry) (*db.EducationEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	e := db.EducationEntry{
		ID: uuid.New(), UserID: userID, Institution: entry.Institution,
		Degree: entry.Degree, Field: entry.Field, CreatedAt: time.Now(),
	}
	m.education[userID] = append(m.education[userID], e)
	m.bump(userID)
	return &e, nil
}

func (m *mockStore) LoadCandidateProfile(_ context.Context, userID uuid.UUID) (*types.CandidateProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	u, ok := m.users[userID]
	if !ok {
		return nil, nil
	}
	p := &types.CandidateProfile{
		ID:         u.ID.String(),
		Name:       u.Name,
		Skills:     []types.SkillRef{},
		Experience: []types.ExperienceEntry{},
		Education:  []types.EducationEntry{},
		Version:    u.ProfileVersion,
	}
	for _, id := range m.userSkills[userID] {
		p.Skills = append(p.Skills, m.skills[id].Ref())
	}
	for _, e := range m.experience[userID] {
		entry := types.ExperienceEntry{Company: e.Company, Title: e.Title, StartDate: types.Date{Time: e.StartDate}, Current: e.Current}
		if e.EndDate != nil {
			entry.EndDate = &types.Date{Time: *e.EndDate}
		}
		p.Experience = append(p.Experience, entry)
	}
	for _, e := range m.education[userID] {
		p.Education = append(p.Education, types.EducationEntry{Institution: e.Institution, Degree: e.Degree, Field: e.Field})
	}
	return p, nil
}

func (m *mockStore) LoadCandidateProfiles(ctx context.Context, userIDs []uuid.UUID) ([]*types.CandidateProfile, error) {
	out := []*types.CandidateProfile{}
	for _, id := range userIDs {
		p, err := m.LoadCandidateProfile(ctx, id)
		if err != nil {
			return nil, err
		}
		if p != nil {
			out = append(out, p)
		}
	}
	return out, nil
}

// ----- Application Methods -----

func (m *mockStore) CreateApplication(_ context.Context, input *db.ApplicationCreateInput) (*db.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	for _, a := range m.applications {
		if a.JobID == input.JobID && a.CandidateID == input.CandidateID {
			return nil, db.ErrAlreadyApplied
		}
	}
	now := time.Now()
	a := db.Application{
		ID: uuid.New(), JobID: input.JobID, CandidateID: input.CandidateID, Status: types.ApplicationPending,
		CoverLetter: input.CoverLetter, CreatedAt: now, UpdatedAt: now,
	}
	if input.Result != nil {
		a.MatchScore = input.Result.OverallScore
		a.MatchDetails = input.Result
	}
	m.applications = append(m.applications, a)
	return &a, nil
}

func (m *mockStore) ListApplicationsByJob(_ context.Context, jobID uuid.UUID) ([]db.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []db.Application{}
	for _, a := range m.applications {
		if a.JobID == jobID {
			out = append(out, a)
		}
	}
	return out, m.failWith
}

func (m *mockStore) GetApplicationStats(ctx context.Context, jobID uuid.UUID) (*types.ApplicationStats, error) {
	apps, err := m.ListApplicationsByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	stats := &types.ApplicationStats{ByStatus: map[types.ApplicationStatus]int{}}
	var sum float64
	for _, a := range apps {
		stats.Total++
		stats.ByStatus[a.Status]++
		sum += a.MatchScore
	}
	if stats.Total > 0 {
		stats.AverageMatchScore = sum / float64(stats.Total)
	}
	return stats, nil
}

// ----- Search Methods -----

func (m *mockStore) SearchCandidates(_ context.Context, c query.Criteria, _ int) ([]db.CandidateSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastSearch = &c
	out := []db.CandidateSummary{}
	for id, u := range m.users {
		if u.Role != types.RoleSeeker {
			continue
		}
		hits := 0
		for _, sid := range m.userSkills[id] {
			for _, want := range c.Skills {
				if strings.EqualFold(m.skills[sid].Name, want) {
					hits++
				}
			}
		}
		if len(c.Skills) > 0 && hits == 0 {
			continue
		}
		out = append(out, db.CandidateSummary{ID: id, Name: u.Name, SkillHits: hits})
	}
	return out, m.failWith
}
