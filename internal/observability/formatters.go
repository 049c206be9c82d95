// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/skillmatch/internal/query"
	"github.com/jonathan/skillmatch/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// barWidth is the width of a full-score bar
	barWidth = 20
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// scoreBar renders a 0-100 score as a fixed-width bar.
func scoreBar(score float64) string {
	filled := int(score / 100 * barWidth)
	filled = max(0, min(filled, barWidth))
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}

func skillNames(refs []types.SkillRef) string {
	names := make([]string, len(refs))
	for i, r := range refs {
		names[i] = r.Name
		if names[i] == "" {
			names[i] = r.ID
		}
	}
	return strings.Join(names, ", ")
}

// PrintJobPosting outputs a human-readable summary of the job being scored.
func (p *Printer) PrintJobPosting(job *types.JobPosting) {
	if job == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Job:       %s\n", job.ID))
	if job.Title != "" {
		sb.WriteString(fmt.Sprintf("Title:     %s\n", job.Title))
	}
	level := job.ExperienceLevel.String()
	if level == "" {
		level = "(any)"
	}
	sb.WriteString(fmt.Sprintf("Level:     %s\n", level))

	if len(job.RequiredSkills) > 0 {
		sb.WriteString(fmt.Sprintf("Required:  %s\n", skillNames(job.RequiredSkills)))
	}
	if len(job.PreferredSkills) > 0 {
		sb.WriteString(fmt.Sprintf("Preferred: %s\n", skillNames(job.PreferredSkills)))
	}

	p.printBox("JOB POSTING", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMatchResult outputs the sub-scores and feedback of a single match.
func (p *Printer) PrintMatchResult(result *types.MatchResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall     %6.2f  %s\n", result.OverallScore, scoreBar(result.OverallScore)))
	sb.WriteString(fmt.Sprintf("Skills      %6.2f  %s\n", result.SkillScore, scoreBar(result.SkillScore)))
	sb.WriteString(fmt.Sprintf("Experience  %6.2f  %s\n", result.ExperienceScore, scoreBar(result.ExperienceScore)))
	sb.WriteString(fmt.Sprintf("Education   %6.2f  %s\n", result.EducationScore, scoreBar(result.EducationScore)))

	sections := []struct {
		label string
		items []string
	}{
		{"Strengths:", result.Strengths},
		{"Gaps:", result.Gaps},
		{"Recommendations:", result.Recommendations},
	}
	for _, s := range sections {
		if len(s.items) == 0 {
			continue
		}
		sb.WriteString("\n" + s.label + "\n")
		for _, item := range s.items {
			sb.WriteString(fmt.Sprintf("  • %s\n", item))
		}
	}

	p.printBox("MATCH RESULT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRanking outputs the top N ranked candidates with their overall scores.
func (p *Printer) PrintRanking(ranked []types.RankedCandidate) {
	if len(ranked) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total candidates ranked: %d\n\n", len(ranked)))

	count := min(len(ranked), maxItemsToShow)
	for i := 0; i < count; i++ {
		rc := ranked[i]
		label := rc.CandidateID
		if rc.Name != "" {
			label = fmt.Sprintf("%s (%s)", rc.Name, rc.CandidateID)
		}
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, label))
		if rc.Result != nil {
			sb.WriteString(fmt.Sprintf("    Score: %.2f  skills %.0f · exp %.0f · edu %.0f\n",
				rc.Result.OverallScore, rc.Result.SkillScore, rc.Result.ExperienceScore, rc.Result.EducationScore))
		}
	}

	if len(ranked) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more candidates", len(ranked)-maxItemsToShow))
	}

	p.printBox("TOP RANKED CANDIDATES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCriteria outputs the filters extracted from a search query.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintCriteria(c query.Criteria) {
	if c.IsEmpty() {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "NO SEARCH TERMS RECOGNIZED")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	if len(c.Skills) > 0 {
		sb.WriteString(fmt.Sprintf("Skills:     %s\n", strings.Join(c.Skills, ", ")))
	}
	if c.MinYears != nil {
		sb.WriteString(fmt.Sprintf("Min years:  %d\n", *c.MinYears))
	}
	if c.Role != nil {
		sb.WriteString(fmt.Sprintf("Role:       %s\n", *c.Role))
	}
	if c.Education != nil {
		sb.WriteString(fmt.Sprintf("Education:  %s\n", *c.Education))
	}

	p.printBox("SEARCH CRITERIA", strings.TrimSuffix(sb.String(), "\n"))
}
