// Package domain contains the core data structures and domain logic for the application.
package domain

import "time"

// CommitRecord is one commit reachable from the analyzed branch.
// Records are rebuilt from the API on every run; nothing is persisted.
type CommitRecord struct {
	AuthorName     string
	CommitterLogin string
	CommittedAt    *time.Time
}

// AuthorTally is one row of the ranked commit author table.
type AuthorTally struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// PullRequestRecord is one pull request as listed by the API.
// State is "open" or "closed"; GitHub reports merged pull requests as closed.
type PullRequestRecord struct {
	Number     int
	CreatedAt  *time.Time
	ClosedAt   *time.Time
	State      string
	BaseBranch string
}

// IssueRecord is one issue as listed by the API.
type IssueRecord struct {
	CreatedAt *time.Time
	State     string
}

// Summary is the open/closed/old breakdown for one resource kind.
// An open item counts as old once its age exceeds the kind's threshold
// (30 days for pull requests, 14 for issues).
type Summary struct {
	Open              int     `json:"open"`
	Closed            int     `json:"closed"`
	Old               int     `json:"old"`
	MedianOpenAgeDays float64 `json:"median_open_age_days"`
}
