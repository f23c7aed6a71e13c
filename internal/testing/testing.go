// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/desertthunder/ytag/internal/models"
)

// MockService is a configurable test double for [services.Service].
//
// Each operation delegates to the corresponding func field when set and
// returns a zero value otherwise. Call counters record how many times each
// operation ran.
type MockService struct {
	UploadsPlaylistIDFunc  func(ctx context.Context) (string, error)
	PlaylistItemsPageFunc  func(ctx context.Context, playlistID, pageToken string) ([]string, string, error)
	VideosMetadataFunc     func(ctx context.Context, videoIDs []string) ([]models.VideoRecord, error)
	CreatePlaylistFunc     func(ctx context.Context, title, description, privacy string) (*models.Playlist, error)
	InsertPlaylistItemFunc func(ctx context.Context, playlistID, videoID string) error

	UploadsCalls int
	PageCalls    int
	VideosCalls  int
	CreateCalls  int
	InsertCalls  int

	// InsertedIDs records video IDs passed to InsertPlaylistItem, in order.
	InsertedIDs []string
}

func (m *MockService) UploadsPlaylistID(ctx context.Context) (string, error) {
	m.UploadsCalls++
	if m.UploadsPlaylistIDFunc != nil {
		return m.UploadsPlaylistIDFunc(ctx)
	}
	return "", nil
}

func (m *MockService) PlaylistItemsPage(ctx context.Context, playlistID, pageToken string) ([]string, string, error) {
	m.PageCalls++
	if m.PlaylistItemsPageFunc != nil {
		return m.PlaylistItemsPageFunc(ctx, playlistID, pageToken)
	}
	return nil, "", nil
}

func (m *MockService) VideosMetadata(ctx context.Context, videoIDs []string) ([]models.VideoRecord, error) {
	m.VideosCalls++
	if m.VideosMetadataFunc != nil {
		return m.VideosMetadataFunc(ctx, videoIDs)
	}
	return nil, nil
}

func (m *MockService) CreatePlaylist(ctx context.Context, title, description, privacy string) (*models.Playlist, error) {
	m.CreateCalls++
	if m.CreatePlaylistFunc != nil {
		return m.CreatePlaylistFunc(ctx, title, description, privacy)
	}
	return &models.Playlist{ID: "mock-playlist", Title: title, Description: description, Privacy: privacy}, nil
}

func (m *MockService) InsertPlaylistItem(ctx context.Context, playlistID, videoID string) error {
	m.InsertCalls++
	m.InsertedIDs = append(m.InsertedIDs, videoID)
	if m.InsertPlaylistItemFunc != nil {
		return m.InsertPlaylistItemFunc(ctx, playlistID, videoID)
	}
	return nil
}

func (m *MockService) Name() string { return "mock" }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
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

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertFileMissing(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("File should not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
