// Package validate holds URL and output-path validation for the CLI.
package validate

import (
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// youtubeDomains are the hosts accepted as YouTube URLs
var youtubeDomains = []string{"youtube.com", "www.youtube.com", "youtu.be"}

// Relaxed YouTube URL pattern: supports watch, playlist, embed, shorts
var youtubeURLPattern = regexp.MustCompile(`(?i)^https?://(www\.)?(youtube\.com|youtu\.be)/.+`)

// IsValidYouTubeURL checks if the string looks like a valid YouTube URL.
// Parse failures count as invalid; the function never panics.
func IsValidYouTubeURL(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}
	if !youtubeURLPattern.MatchString(raw) {
		return false
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}
	host := strings.ToLower(parsed.Hostname())
	for _, domain := range youtubeDomains {
		if host == domain {
			return true
		}
	}
	return false
}

// NormalizePath converts a user-provided path to an absolute path,
// expanding ~ and environment variables. It does not touch the filesystem.
func NormalizePath(path string) (string, error) {
	path = os.ExpandEnv(path)
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return filepath.Abs(path)
}

// EnsureDir creates the directory (and parents) if it does not exist.
// It is idempotent and surfaces filesystem errors unchanged.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
