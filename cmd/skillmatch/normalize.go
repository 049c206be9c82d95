package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/skillmatch/internal/ingestion"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize-description",
	Short: "Convert a job description to the plain text the scorer reads",
	Long:  "Strip HTML markup and normalize whitespace and bullets in a job description, as the server does when a job is created.",
	RunE:  runNormalize,
}

var (
	normalizeInputFile  string
	normalizeOutputFile string
)

func init() {
	normalizeCmd.Flags().StringVarP(&normalizeInputFile, "in", "i", "", "Path to description file (default stdin)")
	normalizeCmd.Flags().StringVarP(&normalizeOutputFile, "out", "o", "", "Path to output text file (default stdout)")
	rootCmd.AddCommand(normalizeCmd)
}

func runNormalize(cmd *cobra.Command, _ []string) error {
	var content []byte
	var err error
	if normalizeInputFile == "" {
		content, err = io.ReadAll(cmd.InOrStdin())
	} else {
		content, err = os.ReadFile(normalizeInputFile)
	}
	if err != nil {
		return fmt.Errorf("failed to read description: %w", err)
	}

	text, err := ingestion.NormalizeDescription(string(content))
	if err != nil {
		return err
	}
	text += "\n"

	if normalizeOutputFile == "" {
		_, err = io.WriteString(cmd.OutOrStdout(), text)
		return err
	}
	if err := os.WriteFile(normalizeOutputFile, []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
