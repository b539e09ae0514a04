// Package github provides the GitHub REST client used as the issue source.
package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v67/github"
	"golang.org/x/oauth2"

	"github.com/runoshun/issue-feed/internal/domain"
)

// Ensure Client implements domain.IssueSource.
var _ domain.IssueSource = (*Client)(nil)

// Factory builds Clients for the provider lifecycle.
var Factory domain.IssueSourceFactory = domain.IssueSourceFactoryFunc(
	func(cfg domain.ProviderConfig, token string) (domain.IssueSource, error) {
		c, err := NewClient(cfg, token)
		if err != nil {
			return nil, err
		}
		return c, nil
	},
)

// Client lists issues assigned to the authenticated user.
type Client struct {
	api *github.Client
}

// NewClient creates a client for cfg. No request is made; an invalid token
// is only detected by the first ListAssigned call. Requests are bounded only
// by the context passed to ListAssigned.
func NewClient(cfg domain.ProviderConfig, token string) (*Client, error) {
	baseURL, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/") + "/")
	if err != nil {
		return nil, domain.NewConfigError("base_url", err.Error())
	}

	httpClient := &http.Client{}
	if token != "" {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		httpClient = oauth2.NewClient(ctx, ts)
	}

	api := github.NewClient(httpClient)
	api.BaseURL = baseURL
	if cfg.UserAgent != "" {
		api.UserAgent = cfg.UserAgent
	}

	return &Client{api: api}, nil
}

// ListAssigned performs one GET /issues?filter=assigned request and maps
// the result in upstream order.
func (c *Client) ListAssigned(ctx context.Context) ([]domain.Issue, error) {
	issues, _, err := c.api.Issues.List(ctx, true, &github.IssueListOptions{
		Filter: "assigned",
	})
	if err != nil {
		return nil, fmt.Errorf("list assigned issues: %w", err)
	}

	res := make([]domain.Issue, 0, len(issues))
	for _, issue := range issues {
		res = append(res, toDomainIssue(issue))
	}
	return res, nil
}

func toDomainIssue(issue *github.Issue) domain.Issue {
	labels := make([]string, 0, len(issue.Labels))
	for _, label := range issue.Labels {
		labels = append(labels, label.GetName())
	}
	return domain.Issue{
		Repository: issue.GetRepository().GetName(),
		Number:     issue.GetNumber(),
		Title:      issue.GetTitle(),
		Labels:     labels,
	}
}
