package version

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

var (
	Current       = "v1.0.0" // Will be overwritten by ldflags during build
	GitHubAPI     = "https://api.github.com/repos/marcoviana/awsvault/releases/latest"
	CheckInterval = 24 * time.Hour
)

type gitHubRelease struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

type lastCheck struct {
	LastChecked   time.Time `json:"last_checked"`
	LatestVersion string    `json:"latest_version"`
}

// CheckForUpdates probes for a newer release in the background, at
// most once per CheckInterval. Failures are silent.
func CheckForUpdates(configDir string) {
	if !shouldCheck(configDir) {
		return
	}

	go func() {
		latest, url, err := FetchLatest()
		if err != nil {
			return
		}
		if IsNewer(latest, Current) {
			fmt.Fprintf(os.Stderr, "\nUpdate available: %s -> %s\n", Current, latest)
			fmt.Fprintf(os.Stderr, "Download: %s\n\n", url)
		}
		saveLastCheck(configDir, latest)
	}()
}

func shouldCheck(configDir string) bool {
	data, err := os.ReadFile(cachePath(configDir))
	if err != nil {
		return true
	}
	var check lastCheck
	if err := json.Unmarshal(data, &check); err != nil {
		return true
	}
	return time.Since(check.LastChecked) > CheckInterval
}

func cachePath(configDir string) string {
	return filepath.Join(configDir, "version_check.json")
}

// FetchLatest queries the GitHub releases API for the newest tag.
func FetchLatest() (string, string, error) {
	client := &http.Client{Timeout: 3 * time.Second}
	resp, err := client.Get(GitHubAPI)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return "", "", fmt.Errorf("status %d", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	var release gitHubRelease
	if err := json.Unmarshal(body, &release); err != nil {
		return "", "", err
	}
	return release.TagName, release.HTMLURL, nil
}

// IsNewer compares two semantic version tags lexically.
func IsNewer(latest, current string) bool {
	latest = strings.TrimPrefix(latest, "v")
	current = strings.TrimPrefix(current, "v")
	return latest > current
}

func saveLastCheck(configDir, version string) {
	check := lastCheck{LastChecked: time.Now(), LatestVersion: version}
	data, _ := json.Marshal(check)
	os.WriteFile(cachePath(configDir), data, 0600)
}
