// Package matching computes a deterministic 0-100 compatibility score between a job posting and a
// candidate profile, with strengths, gaps and recommendations.
//
// The engine is a set of pure functions over fully materialized values from package types. It
// performs no I/O and holds no shared state, so it is safe to call from any number of goroutines.
// Incomplete data (no experience level, empty skill sets, no education) degrades to defined
// neutral or base scores; only a nil job or candidate is rejected.
package matching
