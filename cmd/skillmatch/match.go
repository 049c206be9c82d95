package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/skillmatch/internal/matching"
	"github.com/jonathan/skillmatch/internal/observability"
	"github.com/jonathan/skillmatch/internal/schemas"
	"github.com/jonathan/skillmatch/internal/types"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score one candidate against one job",
	Long:  "Score a candidate profile JSON file against a job posting JSON file and print the match result as JSON.",
	RunE:  runMatch,
}

var (
	matchJobFile       string
	matchCandidateFile string
	matchOutputFile    string
	matchAsOf          string
	matchVerbose       bool
)

func init() {
	matchCmd.Flags().StringVarP(&matchJobFile, "job", "j", "", "Path to job posting JSON file (required)")
	matchCmd.Flags().StringVarP(&matchCandidateFile, "candidate", "c", "", "Path to candidate profile JSON file (required)")
	matchCmd.Flags().StringVarP(&matchOutputFile, "out", "o", "", "Path to output JSON file (default stdout)")
	matchCmd.Flags().StringVar(&matchAsOf, "as-of", "", "Date treated as today for ongoing roles, YYYY-MM-DD (default today)")
	matchCmd.Flags().BoolVarP(&matchVerbose, "verbose", "v", false, "Print a readable summary to stderr")

	_ = matchCmd.MarkFlagRequired("job")
	_ = matchCmd.MarkFlagRequired("candidate")

	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, _ []string) error {
	asOf, err := parseAsOf(matchAsOf)
	if err != nil {
		return err
	}

	var job types.JobPosting
	if err := readDocument(schemas.JobPosting, matchJobFile, &job); err != nil {
		return fmt.Errorf("invalid job: %w", err)
	}
	var candidate types.CandidateProfile
	if err := readDocument(schemas.CandidateProfile, matchCandidateFile, &candidate); err != nil {
		return fmt.Errorf("invalid candidate: %w", err)
	}

	result, err := matching.MatchAt(&job, &candidate, asOf)
	if err != nil {
		return err
	}

	if matchVerbose {
		p := observability.NewPrinter(cmd.ErrOrStderr())
		p.PrintJobPosting(&job)
		p.PrintMatchResult(result)
	}

	return writeJSON(cmd.OutOrStdout(), matchOutputFile, result)
}
