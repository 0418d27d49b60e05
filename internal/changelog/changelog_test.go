package changelog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const releasesJSON = `[
  {"tag_name": "6.0.0", "name": "v6", "body": "Breaking: pipeable operators.", "html_url": "https://github.com/ReactiveX/rxjs/releases/tag/6.0.0", "published_at": "2018-04-24T00:00:00Z"},
  {"tag_name": "6.0.0-rc.1", "name": "rc", "body": "Release candidate.", "prerelease": true, "published_at": "2018-04-01T00:00:00Z"},
  {"tag_name": "5.5.0", "name": "v5.5", "body": "Adds pipe().", "published_at": "2017-10-01T00:00:00Z"},
  {"tag_name": "5.4.0", "name": "v5.4", "body": "Older release.", "published_at": "2017-05-01T00:00:00Z"}
]`

func newTestClient(t *testing.T, status int, body string) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return NewClient(WithBaseURL(srv.URL)), srv
}

func TestReleases(t *testing.T) {
	client, _ := newTestClient(t, http.StatusOK, releasesJSON)

	releases, err := client.Releases(context.Background(), "ReactiveX/rxjs", 10)
	if err != nil {
		t.Fatalf("Releases() unexpected error: %v", err)
	}
	if len(releases) != 4 {
		t.Fatalf("Releases() = %d releases, want 4", len(releases))
	}
	if releases[0].TagName != "6.0.0" {
		t.Errorf("first release = %q, want newest first", releases[0].TagName)
	}
}

func TestReleasesAPIError(t *testing.T) {
	client, _ := newTestClient(t, http.StatusNotFound, `{"message": "Not Found"}`)

	_, err := client.Releases(context.Background(), "nobody/nothing", 5)
	if err == nil {
		t.Fatal("Releases() on 404 returned no error")
	}
}

func TestReleasesInvalidRepo(t *testing.T) {
	client := NewClient()
	for _, repo := range []string{"", "norepo", "a/b/c", "/b", "a/"} {
		if _, err := client.Releases(context.Background(), repo, 1); err == nil {
			t.Errorf("Releases(%q) accepted a malformed repo", repo)
		}
	}
}

func TestNotesRange(t *testing.T) {
	client, _ := newTestClient(t, http.StatusOK, releasesJSON)

	notes, err := client.Notes(context.Background(), "ReactiveX/rxjs", "5.5.0", "6.0.0")
	if err != nil {
		t.Fatalf("Notes() unexpected error: %v", err)
	}

	if !strings.Contains(notes, "Breaking: pipeable operators.") {
		t.Errorf("notes missing 6.0.0 body: %q", notes)
	}
	if strings.Contains(notes, "Release candidate.") {
		t.Errorf("notes include prerelease body: %q", notes)
	}
	if strings.Contains(notes, "Adds pipe().") {
		t.Errorf("notes include the exclusive from tag: %q", notes)
	}
	if strings.Contains(notes, "Older release.") {
		t.Errorf("notes include releases below the range: %q", notes)
	}
}

func TestNotesNoBounds(t *testing.T) {
	client, _ := newTestClient(t, http.StatusOK, releasesJSON)

	notes, err := client.Notes(context.Background(), "ReactiveX/rxjs", "", "")
	if err != nil {
		t.Fatalf("Notes() unexpected error: %v", err)
	}
	if !strings.Contains(notes, "Older release.") {
		t.Errorf("unbounded notes should include every stable release: %q", notes)
	}
}

func TestReleasesURL(t *testing.T) {
	want := "https://github.com/angular/angular/releases"
	if got := ReleasesURL("angular/angular"); got != want {
		t.Errorf("ReleasesURL() = %q, want %q", got, want)
	}
}
