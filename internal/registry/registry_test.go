package registry

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"verso/internal/semver"
)

const testPackument = `{
  "dist-tags": {"latest": "5.4.5"},
  "versions": {
    "5.4.5": {},
    "4.9.5": {},
    "10.0.0": {},
    "5.5.0-beta": {},
    "3.9.10": {}
  }
}`

func newTestServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/typescript" {
			t.Errorf("unexpected request path %q", r.URL.Path)
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestLatest(t *testing.T) {
	server := newTestServer(t, http.StatusOK, testPackument)
	client := Client{BaseURL: server.URL, Package: "typescript"}

	got, err := client.Latest(context.Background())
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	want := semver.Version{Major: 5, Minor: 4, Patch: 5}
	if got != want {
		t.Fatalf("Latest = %v, want %v", got, want)
	}
}

func TestVersionsSortedAndFiltered(t *testing.T) {
	server := newTestServer(t, http.StatusOK, testPackument)
	client := Client{BaseURL: server.URL, Package: "typescript"}

	got, err := client.Versions(context.Background())
	if err != nil {
		t.Fatalf("Versions: %v", err)
	}
	want := []semver.Version{
		{Major: 3, Minor: 9, Patch: 10},
		{Major: 4, Minor: 9, Patch: 5},
		{Major: 5, Minor: 4, Patch: 5},
		{Major: 10},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Versions = %v, want %v", got, want)
	}
}

func TestNotFound(t *testing.T) {
	server := newTestServer(t, http.StatusNotFound, `{"error":"Not found"}`)
	client := Client{BaseURL: server.URL, Package: "typescript"}

	_, err := client.Latest(context.Background())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Latest error = %v, want ErrNotFound", err)
	}
}

func TestServerError(t *testing.T) {
	server := newTestServer(t, http.StatusInternalServerError, "boom")
	client := Client{BaseURL: server.URL, Package: "typescript"}

	if _, err := client.Versions(context.Background()); err == nil {
		t.Fatal("Versions succeeded against a failing registry")
	}
}

func TestMissingLatestTag(t *testing.T) {
	server := newTestServer(t, http.StatusOK, `{"versions":{"1.0.0":{}}}`)
	client := Client{BaseURL: server.URL, Package: "typescript"}

	if _, err := client.Latest(context.Background()); err == nil {
		t.Fatal("Latest succeeded without a latest tag")
	}
}
