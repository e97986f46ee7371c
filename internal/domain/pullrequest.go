package domain

import "time"

// PullRequest carries the subset of the GitHub pull-request payload the
// weekly report consumes. CreatedAt and ClosedAt are nil when the API omits
// them; GitHub reports merged and unmerged pull requests alike as "closed".
type PullRequest struct {
	Number    int
	Title     string
	State     string
	URL       string
	CreatedAt *time.Time
	ClosedAt  *time.Time
}
