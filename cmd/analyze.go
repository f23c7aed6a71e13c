package main

import (
	"context"
	"database/sql"
	"os"

	"github.com/desertthunder/ytag/internal/formatter"
	"github.com/desertthunder/ytag/internal/models"
	"github.com/desertthunder/ytag/internal/repositories"
	"github.com/desertthunder/ytag/internal/shared"
	"github.com/desertthunder/ytag/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Analyze fetches every upload on the authenticated channel and prints the
// ranked tag table.
func (r *Runner) Analyze(ctx context.Context, cmd *cli.Command) error {
	engine, err := r.ensureEngine(ctx)
	if err != nil {
		return err
	}

	quiet := cmd.Bool("quiet")

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

	result, err := engine.Analyze(ctx, progressCh)
	close(progressCh)
	<-drained

	if err != nil {
		return err
	}

	runID := r.recordRun(result)

	if cmd.Bool("json") {
		return r.writeJSON(result, cmd.Bool("pretty"))
	}

	if path := cmd.String("csv"); path != "" {
		written, err := formatter.WriteCSVExport(result, path)
		if err != nil {
			return err
		}
		r.writePlain("✓ CSV written to %s\n", written)
	}

	if path := cmd.String("markdown"); path != "" {
		written, err := formatter.WriteMarkdownExport(result, path)
		if err != nil {
			return err
		}
		r.writePlain("✓ Markdown written to %s\n", written)
	}

	r.writePlain("\n")
	r.writePlainHeader("Tag Analysis")
	r.writePlain("Videos: %d\n", len(result.Videos))
	r.writePlain("Unique tags: %d\n", len(result.Tags))
	if runID != "" {
		r.writePlain("Run recorded: %s\n", runID)
	}
	r.writePlain("\n")

	tags := result.Tags
	if limit := cmd.Int("limit"); limit > 0 && limit < len(tags) {
		tags = tags[:limit]
	}

	for i, tc := range tags {
		r.writePlain("%4d. %s (%d)\n", i+1, tc.Tag, tc.Count)
	}

	if len(tags) < len(result.Tags) {
		r.writePlain("... and %d more\n", len(result.Tags)-len(tags))
	}

	return nil
}

// recordRun writes an analysis run row to the history database. History is
// best effort: a missing or uninitialized database logs a warning and the
// command continues.
func (r *Runner) recordRun(result *models.AnalysisResult) string {
	db, err := r.historyDB()
	if err != nil {
		r.logger.Warn("history database unavailable, run not recorded", "error", err)
		return ""
	}
	defer db.Close()

	run := &models.AnalysisRun{
		UploadsPlaylistID: result.UploadsPlaylistID,
		VideoCount:        len(result.Videos),
		UniqueTags:        len(result.Tags),
	}

	repo := repositories.NewAnalysisRunRepository(db)
	if err := repo.Create(run); err != nil {
		r.logger.Warn("failed to record analysis run", "error", err)
		return ""
	}

	return run.RunID
}

// historyDB opens the history database, failing when it has not been set up.
func (r *Runner) historyDB() (*sql.DB, error) {
	if _, err := os.Stat(r.config.Database.Path); err != nil {
		return nil, err
	}

	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return nil, err
	}

	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)
	return db, nil
}
