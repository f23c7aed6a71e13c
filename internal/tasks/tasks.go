package tasks

import (
	"context"
	"fmt"
	"sync"

	"github.com/desertthunder/ytag/internal/models"
	"github.com/desertthunder/ytag/internal/services"
	"github.com/desertthunder/ytag/internal/shared"
)

// CreationRequest describes one playlist creation run.
type CreationRequest struct {
	Title       string               // Playlist title
	Description string               // Playlist description
	Privacy     string               // One of models.PrivacyPublic/Private/Unlisted
	Tag         string               // Target tag; matching is case-insensitive
	Videos      []models.VideoRecord // Candidate pool from a prior analysis
}

// Engine defines the channel analysis and playlist creation operations.
type Engine interface {
	// Analyze fetches every upload on the authenticated user's channel and
	// aggregates tag frequencies across them.
	Analyze(ctx context.Context, progress chan<- ProgressUpdate) (*models.AnalysisResult, error)

	// CreatePlaylist creates a playlist and inserts every video whose tag set
	// contains the target tag.
	CreatePlaylist(ctx context.Context, progress chan<- ProgressUpdate, req CreationRequest) (*models.CreationResult, error)
}

// TagEngine implements Engine against a [services.Service].
//
// At most one operation may be outstanding at a time; starting a second while
// the first is running fails with [shared.ErrTaskInFlight].
type TagEngine struct {
	svc services.Service

	mu   sync.Mutex
	busy bool
}

// NewTagEngine creates a TagEngine backed by the provided service.
func NewTagEngine(svc services.Service) *TagEngine {
	return &TagEngine{svc: svc}
}

// begin marks the engine busy, refusing if an operation is already running.
func (e *TagEngine) begin() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.busy {
		return fmt.Errorf("%w: an analysis or creation task is already running", shared.ErrTaskInFlight)
	}
	e.busy = true
	return nil
}

func (e *TagEngine) end() {
	e.mu.Lock()
	e.busy = false
	e.mu.Unlock()
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *TagEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}

// Analyze runs the full analysis pipeline: resolve the uploads playlist, page
// through every video ID, batch-fetch metadata, and aggregate tag counts.
func (e *TagEngine) Analyze(ctx context.Context, progress chan<- ProgressUpdate) (*models.AnalysisResult, error) {
	if e.svc == nil {
		return nil, fmt.Errorf("%w: service not initialized", shared.ErrInvalidInput)
	}
	if err := e.begin(); err != nil {
		return nil, err
	}
	defer e.end()

	e.sendProgress(progress, authorizeUpdate())
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.sendProgress(progress, fetchChannelUpdate())
	uploadsID, err := e.svc.UploadsPlaylistID(ctx)
	if err != nil {
		return nil, err
	}

	e.sendProgress(progress, fetchVideoListUpdate())
	ids, err := e.fetchAllIDs(ctx, uploadsID)
	if err != nil {
		return nil, err
	}

	records, err := e.collectRecords(ctx, ids, progress)
	if err != nil {
		return nil, err
	}

	result := &models.AnalysisResult{
		UploadsPlaylistID: uploadsID,
		Tags:              countTags(records),
		Videos:            records,
	}
	e.sendProgress(progress, analysisDoneUpdate(result))
	return result, nil
}

// CreatePlaylist creates a playlist and populates it with every candidate
// video, one insertion call per video, in candidate order.
//
// A zero-candidate request creates the playlist, performs no insertions, and
// succeeds with InsertedCount 0; the empty playlist is left in place. The
// first insertion failure aborts the rest: the returned error wraps
// [shared.ErrAPIRequest] and the partial result carries the count inserted
// before the failure.
func (e *TagEngine) CreatePlaylist(ctx context.Context, progress chan<- ProgressUpdate, req CreationRequest) (*models.CreationResult, error) {
	if e.svc == nil {
		return nil, fmt.Errorf("%w: service not initialized", shared.ErrInvalidInput)
	}
	if req.Title == "" {
		return nil, fmt.Errorf("%w: playlist title is required", shared.ErrMissingArgument)
	}
	if !models.ValidPrivacy(req.Privacy) {
		return nil, fmt.Errorf("%w: privacy must be public, private, or unlisted, got %q", shared.ErrInvalidArgument, req.Privacy)
	}
	if err := e.begin(); err != nil {
		return nil, err
	}
	defer e.end()

	e.sendProgress(progress, createPlaylistUpdate(req.Title))
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	playlist, err := e.svc.CreatePlaylist(ctx, req.Title, req.Description, req.Privacy)
	if err != nil {
		return nil, err
	}

	var candidates []string
	for _, rec := range req.Videos {
		if rec.HasTag(req.Tag) {
			candidates = append(candidates, rec.ID)
		}
	}

	result := &models.CreationResult{
		Playlist:       *playlist,
		Tag:            req.Tag,
		RequestedCount: len(candidates),
	}

	for i, videoID := range candidates {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if err := e.svc.InsertPlaylistItem(ctx, playlist.ID, videoID); err != nil {
			return result, fmt.Errorf("failed after %d of %d insertions: %w", result.InsertedCount, len(candidates), err)
		}
		result.InsertedCount++
		e.sendProgress(progress, insertItemUpdate(i+1, len(candidates)))
	}

	e.sendProgress(progress, creationDoneUpdate(result))
	return result, nil
}
