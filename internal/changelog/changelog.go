// Package changelog fetches release notes for upgraded dependencies.
// The notes feed tier-2 prompts as supporting docs and can be browsed
// directly from the CLI.
package changelog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/browser"
)

const (
	defaultBaseURL = "https://api.github.com"
	defaultTimeout = 30 * time.Second
)

// Release is one GitHub release of a dependency.
type Release struct {
	TagName     string    `json:"tag_name"`
	Name        string    `json:"name"`
	Body        string    `json:"body"`
	HTMLURL     string    `json:"html_url"`
	Prerelease  bool      `json:"prerelease"`
	PublishedAt time.Time `json:"published_at"`
}

// Client fetches release metadata from the GitHub API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// ClientOption configures the changelog client.
type ClientOption func(*Client)

// WithBaseURL overrides the API endpoint (GHES support, tests).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// WithToken sets the bearer token for authenticated requests.
func WithToken(token string) ClientOption {
	return func(c *Client) {
		c.token = token
	}
}

// NewClient creates a changelog client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Releases fetches the most recent releases of owner/repo, newest
// first. limit <= 0 means the API default page.
func (c *Client) Releases(ctx context.Context, repo string, limit int) ([]Release, error) {
	if err := validateRepo(repo); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/repos/%s/releases", c.baseURL, repo)
	if limit > 0 {
		url = fmt.Sprintf("%s?per_page=%d", url, limit)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch releases: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github api returned status %d: %s", resp.StatusCode, firstLine(string(body)))
	}

	var releases []Release
	if err := json.Unmarshal(body, &releases); err != nil {
		return nil, fmt.Errorf("failed to parse releases: %w", err)
	}

	return releases, nil
}

// Notes concatenates release bodies between two tags into a single
// supporting-docs string for the generator. Releases outside the
// (fromTag, toTag] range are skipped; empty tags disable that bound.
func (c *Client) Notes(ctx context.Context, repo, fromTag, toTag string) (string, error) {
	releases, err := c.Releases(ctx, repo, 30)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	include := toTag == ""
	for _, r := range releases {
		if toTag != "" && r.TagName == toTag {
			include = true
		}
		if fromTag != "" && r.TagName == fromTag {
			break
		}
		if !include || r.Prerelease || strings.TrimSpace(r.Body) == "" {
			continue
		}
		fmt.Fprintf(&b, "## %s\n%s\n\n", r.TagName, strings.TrimSpace(r.Body))
	}

	return b.String(), nil
}

// ReleasesURL returns the browsable releases page for owner/repo.
func ReleasesURL(repo string) string {
	return fmt.Sprintf("https://github.com/%s/releases", repo)
}

// OpenInBrowser opens the releases page in the system browser.
func OpenInBrowser(repo string) error {
	if err := validateRepo(repo); err != nil {
		return err
	}
	return browser.OpenURL(ReleasesURL(repo))
}

// validateRepo checks for the owner/repo shape.
func validateRepo(repo string) error {
	parts := strings.Split(repo, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return fmt.Errorf("invalid repository %q: expected owner/repo", repo)
	}
	return nil
}

// firstLine truncates multi-line API error bodies.
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
