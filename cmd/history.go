package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/ytag/internal/repositories"
	"github.com/urfave/cli/v3"
)

// HistoryRuns lists recorded analysis runs, newest first.
func (r *Runner) HistoryRuns(ctx context.Context, cmd *cli.Command) error {
	db, err := r.historyDB()
	if err != nil {
		return fmt.Errorf("history database unavailable, run 'ytag setup database' first: %w", err)
	}
	defer db.Close()

	repo := repositories.NewAnalysisRunRepository(db)
	runs, err := repo.List(map[string]any{"limit": cmd.Int("limit")})
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(runs, true)
	}

	if len(runs) == 0 {
		return r.writePlain("No analysis runs recorded.\n")
	}

	r.writePlainHeader("Analysis Runs")
	for _, run := range runs {
		r.writePlain("#%d  %s  videos=%d tags=%d  %s\n",
			run.Sequence,
			run.Created.Format("2006-01-02 15:04"),
			run.VideoCount,
			run.UniqueTags,
			run.RunID,
		)
	}

	return nil
}

// HistoryPlaylists lists playlists created from tags, newest first.
func (r *Runner) HistoryPlaylists(ctx context.Context, cmd *cli.Command) error {
	db, err := r.historyDB()
	if err != nil {
		return fmt.Errorf("history database unavailable, run 'ytag setup database' first: %w", err)
	}
	defer db.Close()

	repo := repositories.NewCreatedPlaylistRepository(db)
	records, err := repo.List(map[string]any{
		"tag":   cmd.String("tag"),
		"limit": cmd.Int("limit"),
	})
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(records, true)
	}

	if len(records) == 0 {
		return r.writePlain("No created playlists recorded.\n")
	}

	r.writePlainHeader("Created Playlists")
	for _, record := range records {
		r.writePlain("#%d  %s  '%s' tag=%s %s added=%d/%d\n",
			record.Sequence,
			record.Created.Format("2006-01-02 15:04"),
			record.Title,
			record.Tag,
			record.Privacy,
			record.InsertedCount,
			record.RequestedCount,
		)
	}

	return nil
}
