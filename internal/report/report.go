// Package report renders the computed summaries for the console.
// It is pure presentation over already-computed values.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"repoactivity/internal/dateutil"
	"repoactivity/internal/domain"
)

const rule = "================================================================================"

const dateLayout = "2006-01-02"

// WriteHeader prints the banner describing the analyzed repository, branch
// and window.
func WriteHeader(w io.Writer, ref domain.RepositoryRef, branch string, window dateutil.Window) {
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "| repo = %-20s owner = %-20s branch = %-15s\n", ref.Name, ref.Owner, branch)
	fmt.Fprintf(w, "| start date = %-14s end date = %-20s\n", formatBound(window.Start), formatBound(window.End))
	fmt.Fprintln(w, rule)
}

func formatBound(t *time.Time) string {
	if t == nil {
		return "none"
	}
	return t.Format(dateLayout)
}

// WriteTopAuthors prints the ranked commit author table.
func WriteTopAuthors(w io.Writer, tallies []domain.AuthorTally) {
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "%3s  %-30s | %s\n", "N", "Name", "Count")
	for i, tally := range tallies {
		fmt.Fprintf(w, "%3d. %-30s | %3d\n", i+1, tally.Name, tally.Count)
	}
	fmt.Fprintln(w, rule)
}

// WriteSummary prints one open/closed/old block; label names the resource
// kind ("PR", "Issues").
func WriteSummary(w io.Writer, label string, summary domain.Summary) {
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "| Open %s = %d\n", label, summary.Open)
	fmt.Fprintf(w, "| Closed %s = %d\n", label, summary.Closed)
	fmt.Fprintf(w, "| Old %s = %d\n", label, summary.Old)
	if summary.Open > 0 {
		fmt.Fprintf(w, "| Median open age (days) = %.1f\n", summary.MedianOpenAgeDays)
	}
	fmt.Fprintln(w, rule)
}

// Document is the machine-readable form of a full analysis run.
type Document struct {
	Repository   domain.RepositoryRef `json:"repository"`
	Branch       string               `json:"branch"`
	Start        *time.Time           `json:"start,omitempty"`
	End          *time.Time           `json:"end,omitempty"`
	TopAuthors   []domain.AuthorTally `json:"top_authors"`
	PullRequests domain.Summary       `json:"pull_requests"`
	Issues       domain.Summary       `json:"issues"`
}

// WriteJSON prints the document as pretty-printed JSON.
func WriteJSON(w io.Writer, doc Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
