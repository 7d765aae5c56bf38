// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/desertthunder/setx/internal/models"
)

// MockService is a configurable test double for [services.Service].
//
// Each operation delegates to the corresponding func field when set and
// otherwise returns a zero value. Call arguments are recorded for assertions.
type MockService struct {
	SearchFn func(artist, title string) (*models.Track, error)
	CreateFn func(name string, public bool) (*models.Playlist, error)
	AddFn    func(playlistID string, uris []string) error
	UserFn   func() (*models.User, error)

	SearchCalls []string   // "artist|title" per call, in order
	CreateCalls []string   // playlist names, in order
	AddCalls    [][]string // URI batches, in order
}

func (m *MockService) Authenticate(ctx context.Context, credentials map[string]string) error {
	return nil
}

func (m *MockService) CurrentUser(ctx context.Context) (*models.User, error) {
	if m.UserFn != nil {
		return m.UserFn()
	}
	return &models.User{ID: "mock_user"}, nil
}

func (m *MockService) SearchTrack(ctx context.Context, artist, title string) (*models.Track, error) {
	m.SearchCalls = append(m.SearchCalls, artist+"|"+title)
	if m.SearchFn != nil {
		return m.SearchFn(artist, title)
	}
	return nil, nil
}

func (m *MockService) CreatePlaylist(ctx context.Context, name, description string, public bool) (*models.Playlist, error) {
	m.CreateCalls = append(m.CreateCalls, name)
	if m.CreateFn != nil {
		return m.CreateFn(name, public)
	}
	return &models.Playlist{ID: "mock_playlist", Name: name, Description: description, Public: public}, nil
}

func (m *MockService) AddTracks(ctx context.Context, playlistID string, uris []string) error {
	m.AddCalls = append(m.AddCalls, uris)
	if m.AddFn != nil {
		return m.AddFn(playlistID, uris)
	}
	return nil
}

func (m *MockService) Name() string { return "mock" }

// MockFetcher serves parsed documents from an in-memory map keyed by URL.
type MockFetcher struct {
	Docs map[string]*goquery.Document
	Err  error

	FetchCalls []string
}

func (m *MockFetcher) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	m.FetchCalls = append(m.FetchCalls, url)
	if m.Err != nil {
		return nil, m.Err
	}
	doc, ok := m.Docs[url]
	if !ok {
		return nil, errors.New("no document for " + url)
	}
	return doc, nil
}

// MustParseHTML parses an HTML string into a goquery document, failing the test on error.
func MustParseHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("failed to parse HTML fixture: %v", err)
	}
	return doc
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

var _ io.Writer = (*FWriter)(nil)
