package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/runoshun/issue-feed/internal/domain"
	"github.com/runoshun/issue-feed/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchFeed_Execute_ExampleFromDashboard(t *testing.T) {
	// Setup
	source := testutil.NewMockIssueSource(
		testutil.Issue("core", 12, "Fix bug", "blocked"),
		testutil.Issue("core", 13, "Add feature"),
	)
	uc := NewFetchFeed(source)

	// Execute
	out, err := uc.Execute(context.Background(), FetchFeedInput{
		ExcludeWithLabel: []string{"blocked"},
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"[core #13] Add feature"}, domain.Messages(out.Items))
	assert.Equal(t, 2, out.Fetched)
	assert.Equal(t, 1, source.Calls())
}

func TestFetchFeed_Execute_EmptyExclusionKeepsAll(t *testing.T) {
	source := testutil.NewMockIssueSource(
		testutil.Issue("core", 1, "One", "blocked"),
		testutil.Issue("web", 2, "Two", "bug"),
		testutil.Issue("api", 3, "Three"),
	)

	for _, labels := range [][]string{nil, {}} {
		out, err := NewFetchFeed(source).Execute(context.Background(), FetchFeedInput{ExcludeWithLabel: labels})
		require.NoError(t, err)
		assert.Len(t, out.Items, len(source.Issues))
	}
}

func TestFetchFeed_Execute_ExcludedLabelWinsOverOthers(t *testing.T) {
	source := testutil.NewMockIssueSource(
		testutil.Issue("core", 1, "Mixed", "bug", "wontfix", "help wanted"),
		testutil.Issue("core", 2, "Clean", "bug"),
		testutil.Issue("core", 3, "Other case", "WontFix"),
	)

	out, err := NewFetchFeed(source).Execute(context.Background(), FetchFeedInput{
		ExcludeWithLabel: []string{"wontfix", "blocked"},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{
		"[core #2] Clean",
		"[core #3] Other case",
	}, domain.Messages(out.Items))
}

func TestFetchFeed_Execute_PreservesUpstreamOrder(t *testing.T) {
	source := testutil.NewMockIssueSource(
		testutil.Issue("zeta", 9, "Last alphabetically"),
		testutil.Issue("alpha", 1, "First alphabetically"),
		testutil.Issue("mid", 5, "Middle"),
	)

	out, err := NewFetchFeed(source).Execute(context.Background(), FetchFeedInput{})

	require.NoError(t, err)
	assert.Equal(t, []string{
		testutil.Messagef("zeta", 9, "Last alphabetically"),
		testutil.Messagef("alpha", 1, "First alphabetically"),
		testutil.Messagef("mid", 5, "Middle"),
	}, domain.Messages(out.Items))
}

func TestFetchFeed_Execute_ProjectsIcon(t *testing.T) {
	source := testutil.NewMockIssueSource(testutil.Issue("core", 4, "Title"))

	out, err := NewFetchFeed(source).Execute(context.Background(), FetchFeedInput{Icon: "/assets/icon-3.png"})

	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, domain.FeedItem{Message: "[core #4] Title", Icon: "/assets/icon-3.png"}, out.Items[0])
}

func TestFetchFeed_Execute_FilterRepo(t *testing.T) {
	source := testutil.NewMockIssueSource(
		testutil.Issue("core", 1, "Core issue"),
		testutil.Issue("web", 2, "Web issue"),
		testutil.Issue("core", 3, "Blocked core issue", "blocked"),
	)

	out, err := NewFetchFeed(source).Execute(context.Background(), FetchFeedInput{
		ExcludeWithLabel: []string{"blocked"},
		FilterRepo:       []string{"core"},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"[core #1] Core issue"}, domain.Messages(out.Items))
}

func TestFetchFeed_Execute_FetchError(t *testing.T) {
	source := &testutil.MockIssueSource{Err: errors.New("401 Bad credentials")}

	out, err := NewFetchFeed(source).Execute(context.Background(), FetchFeedInput{ProviderName: "Github"})

	require.Error(t, err)
	assert.Nil(t, out)
	assert.ErrorIs(t, err, domain.ErrFetchFailed)
	var fetchErr *domain.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, "Github", fetchErr.Provider)
	assert.Equal(t, 1, source.Calls(), "no retry on failure")
}

func TestFetchFeed_Execute_EmptyUpstream(t *testing.T) {
	out, err := NewFetchFeed(testutil.NewMockIssueSource()).Execute(context.Background(), FetchFeedInput{})

	require.NoError(t, err)
	assert.NotNil(t, out.Items)
	assert.Empty(t, out.Items)
}

func TestExcludeWithLabels(t *testing.T) {
	issues := []domain.Issue{
		testutil.Issue("a", 1, "x", "blocked"),
		testutil.Issue("a", 2, "y"),
	}

	assert.Len(t, ExcludeWithLabels(issues, nil), 2)
	assert.Len(t, ExcludeWithLabels(issues, []string{"other"}), 2)
	kept := ExcludeWithLabels(issues, []string{"blocked"})
	require.Len(t, kept, 1)
	assert.Equal(t, 2, kept[0].Number)
}

func TestFilterByRepo(t *testing.T) {
	issues := []domain.Issue{
		testutil.Issue("core", 1, "x"),
		testutil.Issue("web", 2, "y"),
	}

	assert.Len(t, FilterByRepo(issues, nil), 2)
	assert.Empty(t, FilterByRepo(issues, []string{"api"}))
	kept := FilterByRepo(issues, []string{"web", "api"})
	require.Len(t, kept, 1)
	assert.Equal(t, "web", kept[0].Repository)
}
