package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/skillmatch/internal/observability"
	"github.com/jonathan/skillmatch/internal/query"
)

var parseQueryCmd = &cobra.Command{
	Use:   "parse-query [text...]",
	Short: "Extract search criteria from free text",
	Long: `Extract skills, a minimum years threshold, a role and an education keyword from a free-text
candidate search, e.g. skillmatch parse-query "senior python developer with 5+ years".`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParseQuery,
}

var (
	parseQueryVerbose bool
	parseQueryStrict  bool
)

func init() {
	parseQueryCmd.Flags().BoolVarP(&parseQueryVerbose, "verbose", "v", false, "Print a readable summary to stderr")
	parseQueryCmd.Flags().BoolVar(&parseQueryStrict, "strict", false, "Fail when no criteria are recognized")
	rootCmd.AddCommand(parseQueryCmd)
}

func runParseQuery(cmd *cobra.Command, args []string) error {
	criteria := query.Extract(strings.Join(args, " "))

	if parseQueryVerbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintCriteria(criteria)
	}
	if parseQueryStrict && criteria.IsEmpty() {
		return fmt.Errorf("no search terms recognized")
	}

	return writeJSON(cmd.OutOrStdout(), "", criteria)
}
