package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/skillmatch/internal/observability"
	"github.com/jonathan/skillmatch/internal/ranking"
	"github.com/jonathan/skillmatch/internal/schemas"
	"github.com/jonathan/skillmatch/internal/types"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank candidates against a job",
	Long:  "Score every candidate in a JSON array file against a job posting and print them best fit first.",
	RunE:  runRank,
}

var (
	rankJobFile        string
	rankCandidatesFile string
	rankOutputFile     string
	rankAsOf           string
	rankConcurrency    int
	rankTop            int
	rankVerbose        bool
)

func init() {
	rankCmd.Flags().StringVarP(&rankJobFile, "job", "j", "", "Path to job posting JSON file (required)")
	rankCmd.Flags().StringVarP(&rankCandidatesFile, "candidates", "c", "", "Path to JSON array of candidate profiles (required)")
	rankCmd.Flags().StringVarP(&rankOutputFile, "out", "o", "", "Path to output JSON file (default stdout)")
	rankCmd.Flags().StringVar(&rankAsOf, "as-of", "", "Date treated as today for ongoing roles, YYYY-MM-DD (default today)")
	rankCmd.Flags().IntVar(&rankConcurrency, "concurrency", 8, "Number of candidates scored in parallel")
	rankCmd.Flags().IntVar(&rankTop, "top", 0, "Only output the best N candidates (0 for all)")
	rankCmd.Flags().BoolVarP(&rankVerbose, "verbose", "v", false, "Print a readable summary to stderr")

	_ = rankCmd.MarkFlagRequired("job")
	_ = rankCmd.MarkFlagRequired("candidates")

	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, _ []string) error {
	if rankConcurrency < 1 {
		return fmt.Errorf("--concurrency must be at least 1")
	}
	if rankTop < 0 {
		return fmt.Errorf("--top must not be negative")
	}
	asOf, err := parseAsOf(rankAsOf)
	if err != nil {
		return err
	}

	var job types.JobPosting
	if err := readDocument(schemas.JobPosting, rankJobFile, &job); err != nil {
		return fmt.Errorf("invalid job: %w", err)
	}
	candidates, err := readCandidates(rankCandidatesFile)
	if err != nil {
		return fmt.Errorf("invalid candidates: %w", err)
	}

	ranker := ranking.NewRanker(
		ranking.WithConcurrency(rankConcurrency),
		ranking.WithClock(func() time.Time { return asOf }),
	)
	ranked, err := ranker.Rank(cmd.Context(), &job, candidates)
	if err != nil {
		return err
	}
	if rankTop > 0 && len(ranked) > rankTop {
		ranked = ranked[:rankTop]
	}

	if rankVerbose {
		p := observability.NewPrinter(cmd.ErrOrStderr())
		p.PrintJobPosting(&job)
		p.PrintRanking(ranked)
	}

	return writeJSON(cmd.OutOrStdout(), rankOutputFile, ranked)
}
