// Package git provides read-only access to the local git repository.
package git

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-git/go-git/v5"
	"github.com/runoshun/issue-feed/internal/domain"
)

// DefaultRemote is the remote consulted first when resolving the repository name.
const DefaultRemote = "origin"

// Ensure Detector implements domain.RepoDetector.
var _ domain.RepoDetector = (*Detector)(nil)

// Client wraps an opened repository.
type Client struct {
	repo     *git.Repository
	repoRoot string
}

// NewClient opens the repository containing dir, searching parent directories.
func NewClient(dir string) (*Client, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, domain.ErrNotGitRepository
		}
		return nil, fmt.Errorf("open repository: %w", err)
	}

	var root string
	if wt, err := repo.Worktree(); err == nil {
		root = wt.Filesystem.Root()
	}
	return &Client{repo: repo, repoRoot: root}, nil
}

// RepoRoot returns the worktree root, or "" for bare repositories.
func (c *Client) RepoRoot() string {
	return c.repoRoot
}

// RemoteURL returns the first URL of the origin remote. When there is no
// origin, the alphabetically first remote is used.
func (c *Client) RemoteURL() (string, error) {
	remote, err := c.repo.Remote(DefaultRemote)
	if errors.Is(err, git.ErrRemoteNotFound) {
		remotes, listErr := c.repo.Remotes()
		if listErr != nil {
			return "", fmt.Errorf("list remotes: %w", listErr)
		}
		if len(remotes) == 0 {
			return "", domain.ErrNoRemote
		}
		sort.Slice(remotes, func(i, j int) bool {
			return remotes[i].Config().Name < remotes[j].Config().Name
		})
		remote, err = remotes[0], nil
	}
	if err != nil {
		return "", fmt.Errorf("read remote: %w", err)
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", domain.ErrNoRemote
	}
	return urls[0], nil
}

// RepoName returns the repository name derived from the remote URL.
func (c *Client) RepoName() (string, error) {
	remoteURL, err := c.RemoteURL()
	if err != nil {
		return "", err
	}
	name := domain.RepoNameFromRemoteURL(remoteURL)
	if name == "" {
		return "", fmt.Errorf("%w: cannot parse %q", domain.ErrNoRemote, remoteURL)
	}
	return name, nil
}

// Detector resolves the current repository name lazily, so commands that
// never ask for it work outside a repository.
type Detector struct {
	dir string
}

// NewDetector creates a Detector rooted at dir.
func NewDetector(dir string) *Detector {
	return &Detector{dir: dir}
}

// CurrentRepoName opens the repository around dir and returns its name.
func (d *Detector) CurrentRepoName() (string, error) {
	client, err := NewClient(d.dir)
	if err != nil {
		return "", err
	}
	return client.RepoName()
}
