// Package types provides the value types shared by the scoring engine and its collaborators.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"strings"
)

// SkillRef identifies a skill. Two refs are the same skill when their IDs match;
// Name is carried only for display.
type SkillRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ExperienceLevel is the ordinal seniority a job asks for. The zero value means unset.
type ExperienceLevel int

// Experience levels in ascending order.
const (
	LevelUnset ExperienceLevel = iota
	LevelEntry
	LevelJunior
	LevelMid
	LevelSenior
	LevelLead
	LevelExecutive
)

var levelNames = map[ExperienceLevel]string{
	LevelEntry:     "entry",
	LevelJunior:    "junior",
	LevelMid:       "mid",
	LevelSenior:    "senior",
	LevelLead:      "lead",
	LevelExecutive: "executive",
}

// ExperienceLevels returns every set level in ascending order.
func ExperienceLevels() []ExperienceLevel {
	return []ExperienceLevel{LevelEntry, LevelJunior, LevelMid, LevelSenior, LevelLead, LevelExecutive}
}

// IsSet reports whether the level is one of the defined ordinals.
func (l ExperienceLevel) IsSet() bool {
	_, ok := levelNames[l]
	return ok
}

func (l ExperienceLevel) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return ""
}

// ParseExperienceLevel parses a level name. An empty string yields LevelUnset.
func ParseExperienceLevel(s string) (ExperienceLevel, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return LevelUnset, nil
	}
	for level, name := range levelNames {
		if name == s {
			return level, nil
		}
	}
	return LevelUnset, fmt.Errorf("unknown experience level: %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (l ExperienceLevel) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *ExperienceLevel) UnmarshalText(text []byte) error {
	level, err := ParseExperienceLevel(string(text))
	if err != nil {
		return err
	}
	*l = level
	return nil
}

// JobStatus is the publication state of a job.
type JobStatus string

// Job statuses.
const (
	JobStatusDraft    JobStatus = "draft"
	JobStatusOpen     JobStatus = "open"
	JobStatusClosed   JobStatus = "closed"
	JobStatusArchived JobStatus = "archived"
)

// Valid reports whether s is a known job status.
func (s JobStatus) Valid() bool {
	switch s {
	case JobStatusDraft, JobStatusOpen, JobStatusClosed, JobStatusArchived:
		return true
	}
	return false
}

// JobPosting is a fully materialized job as seen by the scoring engine.
type JobPosting struct {
	ID              string          `json:"id"`
	Title           string          `json:"title,omitempty"`
	RequiredSkills  []SkillRef      `json:"required_skills"`
	PreferredSkills []SkillRef      `json:"preferred_skills"`
	ExperienceLevel ExperienceLevel `json:"experience_level,omitempty"`
	Description     string          `json:"description"`
}
