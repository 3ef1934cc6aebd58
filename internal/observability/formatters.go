// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/talent-match/internal/features"
	"github.com/jonathan/talent-match/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintProfile outputs the feature set extracted from the caller's context.
func (p *Printer) PrintProfile(set features.Set) {
	var sb strings.Builder

	if len(set.Skills) > 0 {
		sb.WriteString("Skills:\n")
		count := min(len(set.Skills), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", set.Skills[i]))
		}
		if len(set.Skills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(set.Skills)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if set.Location != "" {
		sb.WriteString(fmt.Sprintf("Location:   %s\n", set.Location))
	}
	if set.Industry != "" {
		sb.WriteString(fmt.Sprintf("Industry:   %s\n", set.Industry))
	}
	if set.ExperienceYears != nil {
		sb.WriteString(fmt.Sprintf("Experience: %.1f years\n", *set.ExperienceYears))
	}

	if sb.Len() == 0 {
		sb.WriteString("(no profile features found)\n")
	}

	p.printBox("EXTRACTED PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMatches outputs the recommendation results with scores and reasons.
func (p *Printer) PrintMatches(items []types.DisplayItem) {
	if len(items) == 0 {
		p.printBox("RECOMMENDATIONS", "(no matches found)")
		return
	}

	var sb strings.Builder
	for i, item := range items {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, item.Label))
		if item.Subtitle != "" {
			sb.WriteString(fmt.Sprintf("   %s\n", item.Subtitle))
		}
		sb.WriteString(fmt.Sprintf("   match %.0f%%  (%s)\n", item.MatchScore*100, item.Source))
		for _, reason := range item.Reasons {
			sb.WriteString(fmt.Sprintf("   • %s\n", reason))
		}
		if i < len(items)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("RECOMMENDATIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintScoreBreakdown outputs the per-component score contributions of one match.
func (p *Printer) PrintScoreBreakdown(item types.DisplayItem) {
	if len(item.ScoreBreakdown) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s\n\n", item.Label))
	for _, name := range sortedKeys(item.ScoreBreakdown) {
		sb.WriteString(fmt.Sprintf("  %-22s %.3f\n", name, item.ScoreBreakdown[name]))
	}
	if item.VectorScore != nil {
		sb.WriteString(fmt.Sprintf("  %-22s %.3f\n", "vector_similarity", *item.VectorScore))
	}

	p.printBox("SCORE BREAKDOWN", strings.TrimSuffix(sb.String(), "\n"))
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
