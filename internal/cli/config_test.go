package cli

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/runoshun/issue-feed/internal/app"
	"github.com/runoshun/issue-feed/internal/domain"
	"github.com/runoshun/issue-feed/internal/infra/config"
	"github.com/runoshun/issue-feed/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newConfigTestContainer creates an app.Container with real config infrastructure.
// It returns the container, the project directory and the global config directory.
func newConfigTestContainer(t *testing.T) (*app.Container, string, string) {
	t.Helper()

	projectDir := t.TempDir()
	globalDir := filepath.Join(t.TempDir(), "issue-feed")

	c := app.NewWithDeps(
		app.Config{WorkDir: projectDir, GlobalConfigDir: globalDir},
		config.NewLoaderWithGlobalDir(projectDir, globalDir),
		config.NewManagerWithGlobalDir(projectDir, globalDir),
		&testutil.MockIssueSourceFactory{Source: testutil.NewMockIssueSource()},
		slog.New(slog.DiscardHandler),
	)
	return c, projectDir, globalDir
}

func runConfigCommand(t *testing.T, c *app.Container, args ...string) (string, error) {
	t.Helper()
	cmd := newConfigCommand(c)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// =============================================================================
// Config Command Tests
// =============================================================================

func TestConfigCommand_NoSubcommand_ShowsHelp(t *testing.T) {
	c, _, _ := newConfigTestContainer(t)

	output, err := runConfigCommand(t, c)

	require.NoError(t, err)
	assert.Contains(t, output, "Available Commands:")
	assert.Contains(t, output, "show")
	assert.Contains(t, output, "template")
	assert.Contains(t, output, "init")
}

// =============================================================================
// Config Show Subcommand Tests
// =============================================================================

func TestConfigShow_NoFiles(t *testing.T) {
	c, projectDir, globalDir := newConfigTestContainer(t)

	output, err := runConfigCommand(t, c, "show")

	require.NoError(t, err)
	assert.Contains(t, output, "[Loaded from]")
	assert.Contains(t, output, filepath.Join(globalDir, domain.ConfigFileName)+" (not found)")
	assert.Contains(t, output, domain.ProjectConfigPath(projectDir)+" (not found)")
	assert.Contains(t, output, "[Effective Config]")
	assert.Contains(t, output, `name = 'Github'`)
	assert.Contains(t, output, `base_url = 'https://api.github.com'`)
	assert.Contains(t, output, `exclude_with_label = ['blocked']`)
	assert.Contains(t, output, `interval = '1m0s'`)
}

func TestConfigShow_ProjectOverridesGlobal(t *testing.T) {
	c, projectDir, globalDir := newConfigTestContainer(t)
	require.NoError(t, os.MkdirAll(globalDir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(globalDir, domain.ConfigFileName), []byte(`
[provider]
user_agent = "global-agent"
exclude_with_label = ["wip"]
`), 0o600))
	require.NoError(t, os.WriteFile(domain.ProjectConfigPath(projectDir), []byte(`
[provider]
exclude_with_label = []
filter_repo = ["core"]
`), 0o600))

	output, err := runConfigCommand(t, c, "show")

	require.NoError(t, err)
	assert.NotContains(t, output, "(not found)")
	assert.Contains(t, output, `user_agent = 'global-agent'`)
	assert.Contains(t, output, `exclude_with_label = []`)
	assert.Contains(t, output, `filter_repo = ['core']`)
}

func TestConfigShow_IgnoreProject(t *testing.T) {
	c, projectDir, _ := newConfigTestContainer(t)
	require.NoError(t, os.WriteFile(domain.ProjectConfigPath(projectDir), []byte(`
[provider]
user_agent = "project-agent"
`), 0o600))

	output, err := runConfigCommand(t, c, "show", "--ignore-project")

	require.NoError(t, err)
	assert.NotContains(t, output, domain.ProjectConfigFileName)
	assert.NotContains(t, output, "project-agent")
	assert.Contains(t, output, `user_agent = 'master-console v3'`)
}

func TestConfigShow_RedactsToken(t *testing.T) {
	c, projectDir, _ := newConfigTestContainer(t)
	require.NoError(t, os.WriteFile(domain.ProjectConfigPath(projectDir), []byte(`
[provider]
auth = "ghp_supersecret"
`), 0o600))

	output, err := runConfigCommand(t, c, "show")

	require.NoError(t, err)
	assert.NotContains(t, output, "ghp_supersecret")
	assert.Contains(t, output, `auth = '********'`)
}

func TestConfigShow_BrokenFile(t *testing.T) {
	c, projectDir, _ := newConfigTestContainer(t)
	require.NoError(t, os.WriteFile(domain.ProjectConfigPath(projectDir), []byte("[provider\n"), 0o600))

	_, err := runConfigCommand(t, c, "show")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config")
}

func TestFormatEffectiveConfig_IsValidTOML(t *testing.T) {
	cfg := domain.NewDefaultConfig()
	var buf bytes.Buffer

	require.NoError(t, formatEffectiveConfig(&buf, cfg, cfg.ProviderConfig().Redacted()))

	var decoded map[string]any
	require.NoError(t, toml.Unmarshal(buf.Bytes(), &decoded))
	assert.Contains(t, decoded, "provider")
	assert.Contains(t, decoded, "log")
	assert.Contains(t, decoded, "watch")
	assert.Contains(t, decoded, "serve")
}

// =============================================================================
// Config Template Subcommand Tests
// =============================================================================

func TestConfigTemplate_OutputsTemplate(t *testing.T) {
	c, _, _ := newConfigTestContainer(t)

	output, err := runConfigCommand(t, c, "template")

	require.NoError(t, err)
	assert.Contains(t, output, "[provider]")
	assert.Contains(t, output, "[watch]")
	assert.Contains(t, output, "[serve]")
}

func TestConfigTemplate_IgnoresBrokenFiles(t *testing.T) {
	c, projectDir, _ := newConfigTestContainer(t)
	require.NoError(t, os.WriteFile(domain.ProjectConfigPath(projectDir), []byte("[provider\n"), 0o600))

	output, err := runConfigCommand(t, c, "template")

	require.NoError(t, err)
	assert.Contains(t, output, "[provider]")
}

func TestConfigTemplate_NilContainer(t *testing.T) {
	output, err := runConfigCommand(t, nil, "template")

	require.NoError(t, err)
	assert.Contains(t, output, "[provider]")
}

// =============================================================================
// Config Init Subcommand Tests
// =============================================================================

func TestConfigInit_CreatesProjectConfig(t *testing.T) {
	c, projectDir, _ := newConfigTestContainer(t)

	output, err := runConfigCommand(t, c, "init")

	require.NoError(t, err)
	path := domain.ProjectConfigPath(projectDir)
	assert.Contains(t, output, "Created config file: "+path)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "[provider]")
}

func TestConfigInit_CreatesGlobalConfig(t *testing.T) {
	c, _, globalDir := newConfigTestContainer(t)

	output, err := runConfigCommand(t, c, "init", "--global")

	require.NoError(t, err)
	path := filepath.Join(globalDir, domain.ConfigFileName)
	assert.Contains(t, output, "Created config file: "+path)
	assert.FileExists(t, path)
}

func TestConfigInit_AlreadyExists(t *testing.T) {
	c, projectDir, _ := newConfigTestContainer(t)
	require.NoError(t, os.WriteFile(domain.ProjectConfigPath(projectDir), []byte("# mine\n"), 0o600))

	_, err := runConfigCommand(t, c, "init")

	assert.ErrorIs(t, err, domain.ErrConfigExists)
	content, readErr := os.ReadFile(domain.ProjectConfigPath(projectDir))
	require.NoError(t, readErr)
	assert.Equal(t, "# mine\n", string(content))
}

func TestConfigInit_TemplateRoundTrips(t *testing.T) {
	c, projectDir, _ := newConfigTestContainer(t)
	_, err := runConfigCommand(t, c, "init")
	require.NoError(t, err)

	cfg, err := config.NewLoaderWithGlobalDir(projectDir, "").Load()

	require.NoError(t, err)
	assert.Empty(t, cfg.Warnings)
	assert.Equal(t, domain.DefaultProviderConfig(), cfg.ProviderConfig())
}
