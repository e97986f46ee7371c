package gateway

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"

	"github.com/jollyroger/weekly-summary/internal/domain"
)

// DefaultGitHubAPIURL is the public GitHub REST endpoint.
const DefaultGitHubAPIURL = "https://api.github.com"

// PullRequestFetcher defines the GitHub side of the report's data sources.
type PullRequestFetcher interface {
	FetchPullRequests(ctx context.Context) ([]domain.PullRequest, error)
}

// GitHubGateway lists pull requests for a single repository through the
// GitHub REST API.
type GitHubGateway struct {
	client *github.Client
	owner  string
	repo   string
	logger *log.Logger
}

// NewGitHubGateway creates a gateway for owner/repo. token may be empty;
// unauthenticated requests work but run against much lower rate limits.
// apiURL overrides the API endpoint, mainly for tests.
func NewGitHubGateway(apiURL, token, owner, repo string, logger *log.Logger) (*GitHubGateway, error) {
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

	client := github.NewClient(&http.Client{Transport: transport})
	client.UserAgent = userAgent
	if apiURL != "" && apiURL != DefaultGitHubAPIURL {
		base, err := url.Parse(strings.TrimSuffix(apiURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("invalid github api url %q: %w", apiURL, err)
		}
		client.BaseURL = base
	}

	return &GitHubGateway{
		client: client,
		owner:  owner,
		repo:   repo,
		logger: logger,
	}, nil
}

// FetchPullRequests lists every pull request of the repository, open and
// closed alike, following pagination to the end.
func (g *GitHubGateway) FetchPullRequests(ctx context.Context) ([]domain.PullRequest, error) {
	g.logger.Printf("Fetching pull requests for %s/%s...", g.owner, g.repo)
	opts := &github.PullRequestListOptions{
		State:       "all",
		ListOptions: github.ListOptions{PerPage: 100},
	}
	var pulls []domain.PullRequest
	for {
		page, resp, err := g.client.PullRequests.List(ctx, g.owner, g.repo, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list pull requests: %w", err)
		}
		for _, pr := range page {
			rec := domain.PullRequest{
				Number: pr.GetNumber(),
				Title:  pr.GetTitle(),
				State:  pr.GetState(),
				URL:    pr.GetHTMLURL(),
			}
			if pr.CreatedAt != nil {
				t := pr.CreatedAt.Time
				rec.CreatedAt = &t
			}
			if pr.ClosedAt != nil {
				t := pr.ClosedAt.Time
				rec.ClosedAt = &t
			}
			pulls = append(pulls, rec)
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
		g.logger.Println("  Fetching next page of pull requests...")
	}
	g.logger.Printf("Fetched %d pull requests", len(pulls))
	return pulls, nil
}
