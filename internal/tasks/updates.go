package tasks

import (
	"fmt"

	"github.com/desertthunder/ytag/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Percent int    // Overall completion, 0-100
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	Authorize Phase = iota
	FetchChannel
	FetchVideoList
	FetchMetadata
	CreatePlaylist
	InsertItems
	Done
)

func (p Phase) String() string {
	switch p {
	case Authorize:
		return "authorize"
	case FetchChannel:
		return "fetch_channel"
	case FetchVideoList:
		return "fetch_video_list"
	case FetchMetadata:
		return "fetch_metadata"
	case CreatePlaylist:
		return "create_playlist"
	case InsertItems:
		return "insert_items"
	case Done:
		return "done"
	default:
		return ""
	}
}

func authorizeUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   Authorize,
		Percent: 0,
		Message: "Authorizing with YouTube...",
	}
}

func fetchChannelUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchChannel,
		Percent: 10,
		Message: "Fetching channel information...",
	}
}

func fetchVideoListUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchVideoList,
		Percent: 20,
		Message: "Fetching upload list...",
	}
}

// fetchMetadataUpdate reports batch completion proportionally across the
// 40-90 band of the analysis pipeline.
func fetchMetadataUpdate(batch, totalBatches int) ProgressUpdate {
	percent := 40
	if totalBatches > 0 {
		percent = 40 + (50*batch)/totalBatches
	}
	return ProgressUpdate{
		Phase:   FetchMetadata,
		Percent: percent,
		Message: fmt.Sprintf("Fetching video details (%d/%d)...", batch, totalBatches),
	}
}

func analysisDoneUpdate(result *models.AnalysisResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Done,
		Percent: 100,
		Message: fmt.Sprintf("Analysis complete: %d videos, %d unique tags", len(result.Videos), len(result.Tags)),
		Data:    result,
	}
}

func createPlaylistUpdate(title string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CreatePlaylist,
		Percent: 10,
		Message: fmt.Sprintf("Creating playlist %q...", title),
	}
}

// insertItemUpdate reports insertion progress proportionally across the
// 20-100 band of the creation pipeline.
func insertItemUpdate(inserted, total int) ProgressUpdate {
	percent := 20
	if total > 0 {
		percent = 20 + (80*inserted)/total
	}
	return ProgressUpdate{
		Phase:   InsertItems,
		Percent: percent,
		Message: fmt.Sprintf("Adding videos (%d/%d)...", inserted, total),
	}
}

func creationDoneUpdate(result *models.CreationResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Done,
		Percent: 100,
		Message: fmt.Sprintf("Playlist created: %s (%d videos)", result.Playlist.Title, result.InsertedCount),
		Data:    result,
	}
}
