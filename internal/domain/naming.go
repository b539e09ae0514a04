package domain

import (
	"path/filepath"
	"regexp"
	"strings"
)

// File and directory names.
const (
	AppDirName            = "issue-feed"
	ConfigFileName        = "config.toml"
	ProjectConfigFileName = ".issue-feed.toml"
	LogsDirName           = "logs"
)

// GlobalConfigDir returns the global configuration directory under configHome.
func GlobalConfigDir(configHome string) string {
	return filepath.Join(configHome, AppDirName)
}

// ProjectConfigPath returns the project configuration file inside dir.
func ProjectConfigPath(dir string) string {
	return filepath.Join(dir, ProjectConfigFileName)
}

// GlobalLogPath returns the path to the shared feed log file.
func GlobalLogPath(logDir string) string {
	return filepath.Join(logDir, "feed.log")
}

// ProviderLogPath returns the path to a provider-specific log file.
func ProviderLogPath(logDir, provider string) string {
	return filepath.Join(logDir, SanitizeName(provider)+".log")
}

var unsafeNameChars = regexp.MustCompile(`[^a-z0-9_-]+`)

// SanitizeName lowercases name and replaces characters unsafe in file names.
func SanitizeName(name string) string {
	s := unsafeNameChars.ReplaceAllString(strings.ToLower(name), "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "provider"
	}
	return s
}

// RepoNameFromRemoteURL extracts the repository name from a git remote URL.
// Both "https://github.com/owner/repo.git" and "git@github.com:owner/repo.git"
// yield "repo". Returns "" when no name can be found.
func RepoNameFromRemoteURL(remote string) string {
	s := strings.TrimSpace(remote)
	s = strings.TrimRight(s, "/")
	s = strings.TrimSuffix(s, ".git")
	if i := strings.LastIndexAny(s, "/:"); i >= 0 {
		s = s[i+1:]
	}
	return s
}
