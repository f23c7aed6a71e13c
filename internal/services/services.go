// package services defines interface Service for the video platform API
package services

import (
	"context"

	"github.com/desertthunder/ytag/internal/models"
)

// PageSize is the maximum number of entries per list request and the maximum
// number of ids per metadata batch, fixed by the remote API.
const PageSize = 50

// Service defines the contract the analysis and creation pipelines need from
// the video platform.
type Service interface {
	// UploadsPlaylistID returns the id of the authenticated channel's
	// uploads collection, the enumeration root for analysis.
	UploadsPlaylistID(ctx context.Context) (string, error)

	// PlaylistItemsPage fetches one page of up to [PageSize] video ids from
	// playlistID. pageToken is the continuation token from the previous
	// page, empty for the first. next is empty on the final page.
	PlaylistItemsPage(ctx context.Context, playlistID, pageToken string) (ids []string, next string, err error)

	// VideosMetadata batch-fetches metadata for up to [PageSize] video ids.
	// Videos without tags yield records with an empty tag list.
	VideosMetadata(ctx context.Context, videoIDs []string) ([]models.VideoRecord, error)

	// CreatePlaylist creates a new empty playlist with the given title,
	// description and privacy status (public, private or unlisted).
	CreatePlaylist(ctx context.Context, title, description, privacy string) (*models.Playlist, error)

	// InsertPlaylistItem appends one video to the playlist.
	InsertPlaylistItem(ctx context.Context, playlistID, videoID string) error

	// Name returns the name of the service (e.g. "YouTube")
	Name() string
}
