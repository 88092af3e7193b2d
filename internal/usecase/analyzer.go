// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"log"
	"sort"
	"time"

	"github.com/montanaflynn/stats"

	"repoactivity/internal/dateutil"
	"repoactivity/internal/domain"
	"repoactivity/internal/gateway"
)

// TopAuthorLimit caps the ranked commit author table.
const TopAuthorLimit = 30

// Age thresholds, in whole days, after which an open item counts as old.
const (
	oldPullRequestAgeDays = 30
	oldIssueAgeDays       = 14
)

// Analyzer aggregates the activity of a single repository inside an optional
// date window. Its configuration is immutable after construction and every
// run is fully synchronous: the aggregations execute one after another and
// each blocks until its requests complete or fail.
type Analyzer struct {
	fetcher gateway.Fetcher
	ref     domain.RepositoryRef
	window  dateutil.Window
	branch  string
	logger  *log.Logger
	now     func() time.Time
}

// NewAnalyzer creates a new Analyzer instance. An empty branch disables the
// pull request base branch filter and lets commit listing fall back to the
// repository's default branch.
func NewAnalyzer(fetcher gateway.Fetcher, ref domain.RepositoryRef, window dateutil.Window, branch string, logger *log.Logger) *Analyzer {
	return &Analyzer{
		fetcher: fetcher,
		ref:     ref,
		window:  window,
		branch:  branch,
		logger:  logger,
		now:     time.Now,
	}
}

// TopCommitAuthors ranks commit authors on the analyzed branch by number of
// commits whose committer date falls inside the window, and returns at most
// TopAuthorLimit tallies ordered by count descending. Authors with equal
// counts are ordered by display name ascending.
func (a *Analyzer) TopCommitAuthors(ctx context.Context) ([]domain.AuthorTally, error) {
	a.logger.Println("Usecase: Ranking commit authors...")
	commits, err := a.fetcher.ListCommits(ctx, a.ref, a.branch)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, commit := range commits {
		if !a.window.Contains(commit.CommittedAt) {
			continue
		}
		counts[displayName(commit)]++
	}

	tallies := make([]domain.AuthorTally, 0, len(counts))
	for name, count := range counts {
		tallies = append(tallies, domain.AuthorTally{Name: name, Count: count})
	}
	sort.Slice(tallies, func(i, j int) bool {
		if tallies[i].Count != tallies[j].Count {
			return tallies[i].Count > tallies[j].Count
		}
		return tallies[i].Name < tallies[j].Name
	})
	if len(tallies) > TopAuthorLimit {
		tallies = tallies[:TopAuthorLimit]
	}
	a.logger.Printf("Usecase: Ranked %d commit authors.\n", len(tallies))
	return tallies, nil
}

// displayName is the label commits are grouped under: the author name, with
// the committer login as a fallback so anonymous-author commits still group
// under a stable key.
func displayName(commit domain.CommitRecord) string {
	if commit.AuthorName != "" {
		return commit.AuthorName
	}
	return commit.CommitterLogin
}

// SummarizePullRequests counts open, closed and old-open pull requests whose
// creation date falls inside the window and whose base branch matches the
// configured branch filter, if any.
func (a *Analyzer) SummarizePullRequests(ctx context.Context) (domain.Summary, error) {
	a.logger.Println("Usecase: Summarizing pull requests...")
	pulls, err := a.fetcher.ListPullRequests(ctx, a.ref)
	if err != nil {
		return domain.Summary{}, err
	}

	var matched []domain.PullRequestRecord
	for _, pull := range pulls {
		if !a.window.Contains(pull.CreatedAt) {
			continue
		}
		if a.branch != "" && pull.BaseBranch != a.branch {
			continue
		}
		matched = append(matched, pull)
	}

	var summary domain.Summary
	var openAges []float64
	for _, pull := range matched {
		if pull.State != "open" {
			summary.Closed++
			continue
		}
		age := a.ageDays(pull.CreatedAt)
		if age > oldPullRequestAgeDays {
			summary.Old++
		}
		openAges = append(openAges, float64(age))
	}
	summary.Open = len(matched) - summary.Closed
	summary.MedianOpenAgeDays = medianOrZero(openAges)
	a.logger.Printf("Usecase: Summarized %d pull requests.\n", len(matched))
	return summary, nil
}

// SummarizeIssues counts open, closed and old-open issues. The window's start
// bound is delegated to the API's since parameter; the end bound is applied
// client-side to both state sets.
func (a *Analyzer) SummarizeIssues(ctx context.Context) (domain.Summary, error) {
	a.logger.Println("Usecase: Summarizing issues...")
	closedSet, err := a.fetchIssuesWithin(ctx, "closed")
	if err != nil {
		return domain.Summary{}, err
	}
	openSet, err := a.fetchIssuesWithin(ctx, "open")
	if err != nil {
		return domain.Summary{}, err
	}

	total := len(openSet) + len(closedSet)
	summary := domain.Summary{
		Open:   total - len(closedSet),
		Closed: len(closedSet),
	}
	var openAges []float64
	for _, issue := range openSet {
		age := a.ageDays(issue.CreatedAt)
		if age > oldIssueAgeDays {
			summary.Old++
		}
		openAges = append(openAges, float64(age))
	}
	summary.MedianOpenAgeDays = medianOrZero(openAges)
	a.logger.Printf("Usecase: Summarized %d issues.\n", total)
	return summary, nil
}

// fetchIssuesWithin fetches one issue state set and drops issues created at
// or past the window's end bound.
func (a *Analyzer) fetchIssuesWithin(ctx context.Context, state string) ([]domain.IssueRecord, error) {
	issues, err := a.fetcher.ListIssues(ctx, a.ref, state, a.window.Start)
	if err != nil {
		return nil, err
	}
	var matched []domain.IssueRecord
	for _, issue := range issues {
		if !dateutil.Within(a.window.End, issue.CreatedAt, dateutil.After) {
			continue
		}
		matched = append(matched, issue)
	}
	return matched, nil
}

// ageDays returns the whole days elapsed from t to now, or 0 for a nil t.
func (a *Analyzer) ageDays(t *time.Time) int {
	if t == nil {
		return 0
	}
	return int(a.now().Sub(*t).Hours() / 24)
}

// medianOrZero returns the median of ages, or 0 for an empty set.
func medianOrZero(ages []float64) float64 {
	if len(ages) == 0 {
		return 0
	}
	median, err := stats.Median(ages)
	if err != nil {
		return 0
	}
	return median
}
