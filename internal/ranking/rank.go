// Package ranking scores many candidates against one job concurrently and orders them by fit.
package ranking

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/skillmatch/internal/logger"
	"github.com/jonathan/skillmatch/internal/matching"
	"github.com/jonathan/skillmatch/internal/types"
)

// DefaultConcurrency bounds the number of candidates scored at once.
const DefaultConcurrency = 8

// Ranker ranks candidates for a job. A Ranker is safe for concurrent use.
type Ranker struct {
	concurrency int
	cache       *Cache
	now         func() time.Time
	logger      *zap.Logger
}

// Option configures a Ranker.
type Option func(*Ranker)

// WithConcurrency sets the maximum number of concurrent scorings. Values below 1 are ignored.
func WithConcurrency(n int) Option {
	return func(r *Ranker) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

// WithCache memoizes results across Rank calls.
func WithCache(c *Cache) Option {
	return func(r *Ranker) {
		r.cache = c
	}
}

// WithClock sets the reference time used for ongoing experience.
func WithClock(now func() time.Time) Option {
	return func(r *Ranker) {
		r.now = now
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *zap.Logger) Option {
	return func(r *Ranker) {
		r.logger = l
	}
}

// NewRanker creates a Ranker with the given options.
func NewRanker(opts ...Option) *Ranker {
	r := &Ranker{
		concurrency: DefaultConcurrency,
		now:         time.Now,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Rank scores every candidate against job and returns them ordered by overall score, highest
// first. Equal scores are ordered by candidate ID. Nil candidates are skipped. Rank stops early
// and returns the context error if ctx is cancelled.
func (r *Ranker) Rank(ctx context.Context, job *types.JobPosting, candidates []*types.CandidateProfile) ([]types.RankedCandidate, error) {
	if job == nil {
		return nil, &matching.InvalidArgumentError{Argument: "job"}
	}

	asOf := r.now()
	results := make([]*types.RankedCandidate, len(candidates))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for i, candidate := range candidates {
		if candidate == nil {
			continue
		}
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			result, err := r.score(job, candidate, asOf)
			if err != nil {
				return fmt.Errorf("failed to score candidate %s: %w", candidate.ID, err)
			}
			results[i] = &types.RankedCandidate{
				CandidateID: candidate.ID,
				Name:        candidate.Name,
				Result:      result,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	ranked := make([]types.RankedCandidate, 0, len(results))
	for _, rc := range results {
		if rc != nil {
			ranked = append(ranked, *rc)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Result.OverallScore != ranked[j].Result.OverallScore {
			return ranked[i].Result.OverallScore > ranked[j].Result.OverallScore
		}
		return ranked[i].CandidateID < ranked[j].CandidateID
	})

	r.logger.Debug("ranked candidates",
		zap.String(logger.FieldJobID, job.ID),
		zap.Int("candidates", len(ranked)))

	return ranked, nil
}

// Match scores a single candidate against job at the ranker's clock, using the cache when one
// is configured.
func (r *Ranker) Match(job *types.JobPosting, candidate *types.CandidateProfile) (*types.MatchResult, error) {
	if job == nil {
		return nil, &matching.InvalidArgumentError{Argument: "job"}
	}
	if candidate == nil {
		return nil, &matching.InvalidArgumentError{Argument: "candidate"}
	}
	return r.score(job, candidate, r.now())
}

func (r *Ranker) score(job *types.JobPosting, candidate *types.CandidateProfile, asOf time.Time) (*types.MatchResult, error) {
	if r.cache == nil {
		return matching.MatchAt(job, candidate, asOf)
	}

	key := Key{JobID: job.ID, CandidateID: candidate.ID, Version: candidate.Version, Year: asOf.Year()}
	if cached, ok := r.cache.Get(key); ok {
		return cached, nil
	}

	result, err := matching.MatchAt(job, candidate, asOf)
	if err != nil {
		return nil, err
	}
	r.cache.Put(key, result)
	return result, nil
}
