package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/desertthunder/ytag/internal/models"
	"github.com/desertthunder/ytag/internal/repositories"
	"github.com/desertthunder/ytag/internal/tasks"
	"github.com/urfave/cli/v3"
)

// PlaylistCreate analyzes the channel, then creates a playlist holding every
// video whose tag set contains the target tag.
func (r *Runner) PlaylistCreate(ctx context.Context, cmd *cli.Command) error {
	tag := cmd.String("tag")
	title := cmd.String("title")
	if title == "" {
		title = tag
	}
	description := cmd.String("description")
	if description == "" {
		description = fmt.Sprintf("Videos tagged %q", tag)
	}
	privacy := cmd.String("privacy")
	quiet := cmd.Bool("quiet")

	engine, err := r.ensureEngine(ctx)
	if err != nil {
		return err
	}

	r.writePlain("Analyzing channel for tag %q...\n", tag)

	progressCh := make(chan tasks.ProgressUpdate, 50)
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		for update := range progressCh {
			if !quiet {
				r.writePlain("[%3d%%] %s\n", update.Percent, update.Message)
			}
		}
	}()

	analysis, err := engine.Analyze(ctx, progressCh)
	close(progressCh)
	<-drained
	if err != nil {
		return err
	}

	matching := 0
	for _, rec := range analysis.Videos {
		if rec.HasTag(tag) {
			matching++
		}
	}

	r.writePlain("\nFound %d of %d videos tagged %q\n", matching, len(analysis.Videos), tag)

	if !cmd.Bool("yes") {
		ok, err := r.confirm(fmt.Sprintf("Create %s playlist '%s' with %d videos?", privacy, title, matching))
		if err != nil {
			return err
		}
		if !ok {
			r.writePlain("Aborted.\n")
			return nil
		}
	}

	createCh := make(chan tasks.ProgressUpdate, 50)
	createDrained := make(chan struct{})
	go func() {
		defer close(createDrained)
		for update := range createCh {
			if !quiet {
				r.writePlain("[%3d%%] %s\n", update.Percent, update.Message)
			}
		}
	}()

	result, err := engine.CreatePlaylist(ctx, createCh, tasks.CreationRequest{
		Title:       title,
		Description: description,
		Privacy:     privacy,
		Tag:         tag,
		Videos:      analysis.Videos,
	})
	close(createCh)
	<-createDrained

	if err != nil {
		if result != nil {
			r.writePlain("\n✗ Creation failed after %d of %d insertions\n", result.InsertedCount, result.RequestedCount)
		}
		return err
	}

	r.recordCreation(result)

	r.writePlain("\n")
	r.writePlainHeader("Playlist Created")
	r.writePlain("Title: %s\n", result.Playlist.Title)
	r.writePlain("ID: %s\n", result.Playlist.ID)
	r.writePlain("Privacy: %s\n", result.Playlist.Privacy)
	r.writePlain("Videos added: %d/%d\n", result.InsertedCount, result.RequestedCount)
	if result.RequestedCount == 0 {
		r.writePlain("No videos carry this tag; the playlist was left empty.\n")
	}

	return nil
}

// confirm prompts on stdin and accepts y/yes.
func (r *Runner) confirm(prompt string) (bool, error) {
	r.writePlain("%s [y/N]: ", prompt)

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

// recordCreation writes a created-playlist row to the history database.
// Best effort, same as recordRun.
func (r *Runner) recordCreation(result *models.CreationResult) {
	db, err := r.historyDB()
	if err != nil {
		r.logger.Warn("history database unavailable, playlist not recorded", "error", err)
		return
	}
	defer db.Close()

	record := &models.CreatedPlaylist{
		PlaylistID:     result.Playlist.ID,
		Title:          result.Playlist.Title,
		Tag:            result.Tag,
		Privacy:        result.Playlist.Privacy,
		RequestedCount: result.RequestedCount,
		InsertedCount:  result.InsertedCount,
	}

	repo := repositories.NewCreatedPlaylistRepository(db)
	if err := repo.Create(record); err != nil {
		r.logger.Warn("failed to record created playlist", "error", err)
	}
}
