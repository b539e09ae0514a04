// Package usecase contains the application use cases.
package usecase

import (
	"context"
	"slices"

	"github.com/runoshun/issue-feed/internal/domain"
)

// FetchFeedInput contains the parameters of one pipeline run.
type FetchFeedInput struct {
	ProviderName     string   // Used to attribute fetch errors
	Icon             string   // Icon attached to every item
	ExcludeWithLabel []string // Drop issues carrying any of these labels
	FilterRepo       []string // Keep only these repositories (empty = all)
}

// FetchFeedOutput contains the result of a pipeline run.
type FetchFeedOutput struct {
	Items   []domain.FeedItem // Display items in upstream order
	Fetched int               // Number of issues returned upstream
}

// FetchFeed is the fetch -> filter -> project pipeline.
type FetchFeed struct {
	source domain.IssueSource
}

// NewFetchFeed creates a new FetchFeed use case.
func NewFetchFeed(source domain.IssueSource) *FetchFeed {
	return &FetchFeed{source: source}
}

// Execute fetches assigned issues once, filters them and projects the survivors.
// A failed fetch is returned as *domain.FetchError; nothing is retried.
func (uc *FetchFeed) Execute(ctx context.Context, in FetchFeedInput) (*FetchFeedOutput, error) {
	issues, err := uc.source.ListAssigned(ctx)
	if err != nil {
		return nil, domain.NewFetchError(in.ProviderName, err)
	}

	// Labels are filtered before projection.
	kept := ExcludeWithLabels(issues, in.ExcludeWithLabel)
	kept = FilterByRepo(kept, in.FilterRepo)

	items := make([]domain.FeedItem, 0, len(kept))
	for _, issue := range kept {
		items = append(items, domain.NewFeedItem(issue, in.Icon))
	}

	return &FetchFeedOutput{
		Items:   items,
		Fetched: len(issues),
	}, nil
}

// ExcludeWithLabels removes issues that carry at least one of labels.
func ExcludeWithLabels(issues []domain.Issue, labels []string) []domain.Issue {
	if len(labels) == 0 {
		return issues
	}
	result := make([]domain.Issue, 0, len(issues))
	for _, issue := range issues {
		if !issue.HasAnyLabel(labels) {
			result = append(result, issue)
		}
	}
	return result
}

// FilterByRepo keeps issues whose repository is in repos.
// An empty repos list keeps everything.
func FilterByRepo(issues []domain.Issue, repos []string) []domain.Issue {
	if len(repos) == 0 {
		return issues
	}
	result := make([]domain.Issue, 0, len(issues))
	for _, issue := range issues {
		if slices.Contains(repos, issue.Repository) {
			result = append(result, issue)
		}
	}
	return result
}
