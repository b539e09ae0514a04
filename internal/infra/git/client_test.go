package git

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/runoshun/issue-feed/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRepo(t *testing.T, remotes map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	for name, url := range remotes {
		_, err := repo.CreateRemote(&gitconfig.RemoteConfig{Name: name, URLs: []string{url}})
		require.NoError(t, err)
	}
	return dir
}

func TestNewClient_NotARepository(t *testing.T) {
	_, err := NewClient(t.TempDir())

	assert.ErrorIs(t, err, domain.ErrNotGitRepository)
}

func TestNewClient_FromSubdirectory(t *testing.T) {
	dir := setupTestRepo(t, nil)
	sub := filepath.Join(dir, "internal", "pkg")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	client, err := NewClient(sub)

	require.NoError(t, err)
	assert.Equal(t, dir, client.RepoRoot())
}

func TestClient_RepoName(t *testing.T) {
	tests := []struct {
		name    string
		remotes map[string]string
		want    string
	}{
		{
			name:    "https origin",
			remotes: map[string]string{"origin": "https://github.com/acme/core.git"},
			want:    "core",
		},
		{
			name:    "ssh origin",
			remotes: map[string]string{"origin": "git@github.com:acme/web.git"},
			want:    "web",
		},
		{
			name: "origin wins over other remotes",
			remotes: map[string]string{
				"aaa":    "https://github.com/fork/other.git",
				"origin": "https://github.com/acme/api.git",
			},
			want: "api",
		},
		{
			name: "falls back to first remote by name",
			remotes: map[string]string{
				"upstream": "https://github.com/acme/zeta.git",
				"fork":     "https://github.com/me/alpha.git",
			},
			want: "alpha",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(setupTestRepo(t, tt.remotes))
			require.NoError(t, err)

			got, err := client.RepoName()

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClient_RepoName_NoRemote(t *testing.T) {
	client, err := NewClient(setupTestRepo(t, nil))
	require.NoError(t, err)

	_, err = client.RepoName()

	assert.ErrorIs(t, err, domain.ErrNoRemote)
}

func TestDetector_CurrentRepoName(t *testing.T) {
	dir := setupTestRepo(t, map[string]string{"origin": "https://github.com/acme/core"})

	name, err := NewDetector(dir).CurrentRepoName()
	require.NoError(t, err)
	assert.Equal(t, "core", name)

	_, err = NewDetector(t.TempDir()).CurrentRepoName()
	assert.ErrorIs(t, err, domain.ErrNotGitRepository)
}
