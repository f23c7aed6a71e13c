package models

import (
	"fmt"
	"time"
)

// AnalysisRun summarizes one completed analysis for the run history store.
type AnalysisRun struct {
	RunID             string
	Sequence          int
	UploadsPlaylistID string
	VideoCount        int
	UniqueTags        int
	Created           time.Time
	Deleted           *time.Time
}

func (r *AnalysisRun) ID() string           { return r.RunID }
func (r *AnalysisRun) CreatedAt() time.Time { return r.Created }

// Validate checks the run row before it is written.
func (r *AnalysisRun) Validate() error {
	if r.RunID == "" {
		return fmt.Errorf("run id cannot be empty")
	}
	if r.UploadsPlaylistID == "" {
		return fmt.Errorf("uploads playlist id cannot be empty")
	}
	if r.VideoCount < 0 || r.UniqueTags < 0 {
		return fmt.Errorf("counts cannot be negative")
	}
	return nil
}

// CreatedPlaylist records one playlist created from a tag.
type CreatedPlaylist struct {
	RecordID       string
	Sequence       int
	RunID          string
	PlaylistID     string
	Title          string
	Tag            string
	Privacy        string
	RequestedCount int
	InsertedCount  int
	Created        time.Time
	Deleted        *time.Time
}

func (p *CreatedPlaylist) ID() string           { return p.RecordID }
func (p *CreatedPlaylist) CreatedAt() time.Time { return p.Created }

// Validate checks the playlist row before it is written.
func (p *CreatedPlaylist) Validate() error {
	if p.RecordID == "" {
		return fmt.Errorf("record id cannot be empty")
	}
	if p.PlaylistID == "" {
		return fmt.Errorf("playlist id cannot be empty")
	}
	if p.Title == "" {
		return fmt.Errorf("title cannot be empty")
	}
	if p.Tag == "" {
		return fmt.Errorf("tag cannot be empty")
	}
	if !ValidPrivacy(p.Privacy) {
		return fmt.Errorf("invalid privacy status: %s", p.Privacy)
	}
	if p.InsertedCount < 0 || p.RequestedCount < 0 {
		return fmt.Errorf("counts cannot be negative")
	}
	return nil
}
