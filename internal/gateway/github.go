// Package gateway provides a gateway to the GitHub REST API,
// abstracting away the underlying client, authentication and pagination.
package gateway

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"

	"repoactivity/internal/domain"
)

// perPage is the page size requested from every list endpoint.
const perPage = 100

// RequestFailedError reports a non-2xx response from the GitHub API.
// The run aborts on the first occurrence: no retry, no partial results.
type RequestFailedError struct {
	Request    string
	StatusCode int
	Body       string
}

func (e *RequestFailedError) Error() string {
	return fmt.Sprintf("request %q failed with status %d: %s", e.Request, e.StatusCode, e.Body)
}

// Fetcher defines the behavior of a gateway for fetching the activity of a
// single repository from GitHub.
type Fetcher interface {
	// ListCommits fetches one page of commits reachable from branch.
	ListCommits(ctx context.Context, ref domain.RepositoryRef, branch string) ([]domain.CommitRecord, error)
	// ListPullRequests fetches every pull request regardless of state,
	// preserving page order and in-page order.
	ListPullRequests(ctx context.Context, ref domain.RepositoryRef) ([]domain.PullRequestRecord, error)
	// ListIssues fetches every issue in the given state, optionally
	// restricted server-side to those created at or after since.
	ListIssues(ctx context.Context, ref domain.RepositoryRef, state string, since *time.Time) ([]domain.IssueRecord, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	client *github.Client
	logger *log.Logger
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
// An empty token means unauthenticated requests; otherwise a bearer token
// transport is stacked on top of the rate limit waiter.
func NewGitHubGateway(token string, logger *log.Logger) (*GitHubGateway, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	var transport http.RoundTripper = rateLimitWaiter
	if token != "" {
		transport = &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
		}
	}
	return &GitHubGateway{
		client: github.NewClient(&http.Client{Transport: transport}),
		logger: logger,
	}, nil
}

// ListCommits fetches a single page of commits reachable from branch. An
// empty branch lets the API fall back to the repository's default branch.
func (g *GitHubGateway) ListCommits(ctx context.Context, ref domain.RepositoryRef, branch string) ([]domain.CommitRecord, error) {
	g.logger.Println("Fetching commit data...")
	opts := &github.CommitsListOptions{
		SHA:         branch,
		ListOptions: github.ListOptions{PerPage: perPage},
	}
	commits, resp, err := g.client.Repositories.ListCommits(ctx, ref.Owner, ref.Name, opts)
	if err != nil {
		return nil, g.wrapErr(fmt.Sprintf("list commits for %s", ref), resp, err)
	}
	records := make([]domain.CommitRecord, 0, len(commits))
	for _, c := range commits {
		record := domain.CommitRecord{
			CommitterLogin: c.GetCommitter().GetLogin(),
		}
		if commit := c.GetCommit(); commit != nil {
			record.AuthorName = commit.GetAuthor().GetName()
			if committer := commit.GetCommitter(); committer != nil && committer.Date != nil {
				d := committer.Date.Time
				record.CommittedAt = &d
			}
		}
		records = append(records, record)
	}
	g.logger.Printf("Completed fetching commit data: %d commits.\n", len(records))
	return records, nil
}

// ListPullRequests paginates the pull request listing with state=all until a
// page comes back empty.
func (g *GitHubGateway) ListPullRequests(ctx context.Context, ref domain.RepositoryRef) ([]domain.PullRequestRecord, error) {
	g.logger.Println("Fetching pull request data...")
	opts := &github.PullRequestListOptions{
		State:       "all",
		ListOptions: github.ListOptions{Page: 1, PerPage: perPage},
	}
	var records []domain.PullRequestRecord
	for {
		pulls, resp, err := g.client.PullRequests.List(ctx, ref.Owner, ref.Name, opts)
		if err != nil {
			return nil, g.wrapErr(fmt.Sprintf("list pull requests for %s page %d", ref, opts.Page), resp, err)
		}
		if len(pulls) == 0 {
			break
		}
		for _, p := range pulls {
			record := domain.PullRequestRecord{
				Number:     p.GetNumber(),
				State:      p.GetState(),
				BaseBranch: p.GetBase().GetRef(),
			}
			if p.CreatedAt != nil {
				d := p.CreatedAt.Time
				record.CreatedAt = &d
			}
			if p.ClosedAt != nil {
				d := p.ClosedAt.Time
				record.ClosedAt = &d
			}
			records = append(records, record)
		}
		opts.Page++
		g.logger.Println("  Fetching next page of pull requests...")
	}
	g.logger.Printf("Completed fetching pull request data: %d pull requests.\n", len(records))
	return records, nil
}

// ListIssues paginates the issue listing for one state until a page comes
// back empty. When since is non-nil it is forwarded as the API's lower bound
// on creation date; no since parameter is sent otherwise.
func (g *GitHubGateway) ListIssues(ctx context.Context, ref domain.RepositoryRef, state string, since *time.Time) ([]domain.IssueRecord, error) {
	g.logger.Printf("Fetching %s issue data...\n", state)
	opts := &github.IssueListByRepoOptions{
		State:       state,
		ListOptions: github.ListOptions{Page: 1, PerPage: perPage},
	}
	if since != nil {
		opts.Since = *since
	}
	var records []domain.IssueRecord
	for {
		issues, resp, err := g.client.Issues.ListByRepo(ctx, ref.Owner, ref.Name, opts)
		if err != nil {
			return nil, g.wrapErr(fmt.Sprintf("list %s issues for %s page %d", state, ref, opts.Page), resp, err)
		}
		if len(issues) == 0 {
			break
		}
		for _, issue := range issues {
			record := domain.IssueRecord{State: issue.GetState()}
			if issue.CreatedAt != nil {
				d := issue.CreatedAt.Time
				record.CreatedAt = &d
			}
			records = append(records, record)
		}
		opts.Page++
		g.logger.Println("  Fetching next page of issues...")
	}
	g.logger.Printf("Completed fetching %s issue data: %d issues.\n", state, len(records))
	return records, nil
}

// wrapErr converts a failed API call into a RequestFailedError when a non-2xx
// response was received, and wraps transport-level failures otherwise.
func (g *GitHubGateway) wrapErr(request string, resp *github.Response, err error) error {
	if resp != nil && (resp.StatusCode < 200 || resp.StatusCode >= 300) {
		body := err.Error()
		if errResp, ok := err.(*github.ErrorResponse); ok {
			body = errResp.Message
		}
		return &RequestFailedError{Request: request, StatusCode: resp.StatusCode, Body: body}
	}
	return fmt.Errorf("failed to %s: %w", request, err)
}
