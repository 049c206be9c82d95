// Package main provides the skillmatch command: the scoring API server and offline scoring tools.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "skillmatch",
	Short: "SkillMatch candidate-job compatibility scoring",
	Long: "SkillMatch scores how well candidates fit job postings. It serves the scoring REST API and " +
		"can score, rank and parse search queries offline from JSON files.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
