// YouTube Data API v3 implementation of [Service]
//
// Built on the generated client in google.golang.org/api/youtube/v3. The
// caller supplies an authorized *http.Client from the credential store.
package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/desertthunder/ytag/internal/models"
	"github.com/desertthunder/ytag/internal/shared"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// YouTubeService implements [Service] against the YouTube Data API v3.
type YouTubeService struct {
	yt      *youtube.Service
	limiter *rate.Limiter
}

// NewYouTubeService builds a service over an authorized HTTP client.
//
// requestsPerSecond caps outbound calls client-side; zero disables the
// limiter. Additional options (e.g. a test endpoint) are appended last so
// they win over the defaults.
func NewYouTubeService(ctx context.Context, client *http.Client, requestsPerSecond float64, opts ...option.ClientOption) (*YouTubeService, error) {
	clientOpts := append([]option.ClientOption{option.WithHTTPClient(client)}, opts...)

	yt, err := youtube.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	var limiter *rate.Limiter
	if requestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), 1)
	}

	return &YouTubeService{yt: yt, limiter: limiter}, nil
}

// Name returns the service name.
func (y *YouTubeService) Name() string {
	return "YouTube"
}

// wait blocks until the rate limiter admits one more API call.
func (y *YouTubeService) wait(ctx context.Context) error {
	if y.limiter == nil {
		return nil
	}
	if err := y.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}
	return nil
}

// UploadsPlaylistID resolves the authenticated channel's uploads collection id.
//
// Calls channels.list with mine=true and the contentDetails part.
func (y *YouTubeService) UploadsPlaylistID(ctx context.Context) (string, error) {
	if err := y.wait(ctx); err != nil {
		return "", err
	}

	resp, err := y.yt.Channels.List([]string{"contentDetails"}).Mine(true).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("%w: channels.list: %v", shared.ErrAPIRequest, err)
	}

	if len(resp.Items) == 0 {
		return "", fmt.Errorf("%w: no channel for the authenticated user", shared.ErrChannelNotFound)
	}

	details := resp.Items[0].ContentDetails
	if details == nil || details.RelatedPlaylists == nil || details.RelatedPlaylists.Uploads == "" {
		return "", fmt.Errorf("%w: channel has no uploads playlist", shared.ErrChannelNotFound)
	}

	return details.RelatedPlaylists.Uploads, nil
}

// PlaylistItemsPage fetches one page of video ids from the playlist.
//
// Ids are returned in response order with no deduplication; next is the
// opaque continuation token, empty on the final page.
func (y *YouTubeService) PlaylistItemsPage(ctx context.Context, playlistID, pageToken string) ([]string, string, error) {
	if err := y.wait(ctx); err != nil {
		return nil, "", err
	}

	call := y.yt.PlaylistItems.List([]string{"contentDetails"}).
		PlaylistId(playlistID).
		MaxResults(PageSize).
		Context(ctx)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	resp, err := call.Do()
	if err != nil {
		return nil, "", fmt.Errorf("%w: playlistItems.list: %v", shared.ErrAPIRequest, err)
	}

	ids := make([]string, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.ContentDetails != nil {
			ids = append(ids, item.ContentDetails.VideoId)
		}
	}

	return ids, resp.NextPageToken, nil
}

// VideosMetadata batch-fetches snippet metadata for up to [PageSize] ids.
func (y *YouTubeService) VideosMetadata(ctx context.Context, videoIDs []string) ([]models.VideoRecord, error) {
	if len(videoIDs) == 0 {
		return nil, fmt.Errorf("%w: no video ids provided", shared.ErrInvalidArgument)
	}
	if len(videoIDs) > PageSize {
		return nil, fmt.Errorf("%w: at most %d video ids per request", shared.ErrInvalidArgument, PageSize)
	}

	if err := y.wait(ctx); err != nil {
		return nil, err
	}

	resp, err := y.yt.Videos.List([]string{"snippet"}).Id(videoIDs...).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: videos.list: %v", shared.ErrAPIRequest, err)
	}

	records := make([]models.VideoRecord, 0, len(resp.Items))
	for _, item := range resp.Items {
		var tags []string
		if item.Snippet != nil {
			tags = item.Snippet.Tags
		}
		records = append(records, models.NewVideoRecord(item.Id, tags))
	}

	return records, nil
}

// CreatePlaylist creates a new empty playlist resource.
func (y *YouTubeService) CreatePlaylist(ctx context.Context, title, description, privacy string) (*models.Playlist, error) {
	if !models.ValidPrivacy(privacy) {
		return nil, fmt.Errorf("%w: invalid privacy status %q", shared.ErrInvalidArgument, privacy)
	}

	if err := y.wait(ctx); err != nil {
		return nil, err
	}

	playlist := &youtube.Playlist{
		Snippet: &youtube.PlaylistSnippet{
			Title:       title,
			Description: description,
		},
		Status: &youtube.PlaylistStatus{
			PrivacyStatus: privacy,
		},
	}

	resp, err := y.yt.Playlists.Insert([]string{"snippet", "status"}, playlist).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: playlists.insert: %v", shared.ErrAPIRequest, err)
	}

	created := &models.Playlist{
		ID:          resp.Id,
		Title:       title,
		Description: description,
		Privacy:     privacy,
	}
	if resp.Snippet != nil && resp.Snippet.Title != "" {
		created.Title = resp.Snippet.Title
	}

	return created, nil
}

// InsertPlaylistItem appends one video to the playlist.
func (y *YouTubeService) InsertPlaylistItem(ctx context.Context, playlistID, videoID string) error {
	if err := y.wait(ctx); err != nil {
		return err
	}

	item := &youtube.PlaylistItem{
		Snippet: &youtube.PlaylistItemSnippet{
			PlaylistId: playlistID,
			ResourceId: &youtube.ResourceId{
				Kind:    "youtube#video",
				VideoId: videoID,
			},
		},
	}

	if _, err := y.yt.PlaylistItems.Insert([]string{"snippet"}, item).Context(ctx).Do(); err != nil {
		return fmt.Errorf("%w: playlistItems.insert: %v", shared.ErrAPIRequest, err)
	}

	return nil
}
