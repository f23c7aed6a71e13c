package repositories

import (
	"database/sql"
	"testing"

	"github.com/desertthunder/ytag/internal/models"
	"github.com/desertthunder/ytag/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		t.Fatalf("failed to enable foreign keys: %v", err)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func newRun() *models.AnalysisRun {
	return &models.AnalysisRun{UploadsPlaylistID: "UUchannel", VideoCount: 12, UniqueTags: 5}
}

func TestAnalysisRunRepository(t *testing.T) {
	t.Run("Create", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewAnalysisRunRepository(db)
		run := newRun()

		if err := repo.Create(run); err != nil {
			t.Fatalf("failed to create analysis run: %v", err)
		}

		if run.RunID == "" {
			t.Error("run ID should be set after creation")
		}
		if run.Sequence != 1 {
			t.Errorf("expected sequence 1, got %d", run.Sequence)
		}
		if run.Created.IsZero() {
			t.Error("created timestamp should be set")
		}

		second := newRun()
		if err := repo.Create(second); err != nil {
			t.Fatalf("failed to create second run: %v", err)
		}
		if second.Sequence != 2 {
			t.Errorf("expected sequence 2, got %d", second.Sequence)
		}
	})

	t.Run("Create ValidationError", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewAnalysisRunRepository(db)
		run := &models.AnalysisRun{}

		if err := repo.Create(run); err == nil {
			t.Fatal("expected validation error for empty uploads playlist id")
		}
	})

	t.Run("Get", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewAnalysisRunRepository(db)
		run := newRun()
		if err := repo.Create(run); err != nil {
			t.Fatalf("failed to create analysis run: %v", err)
		}

		got, err := repo.Get(run.RunID)
		if err != nil {
			t.Fatalf("failed to get analysis run: %v", err)
		}

		if got.UploadsPlaylistID != "UUchannel" {
			t.Errorf("expected uploads playlist UUchannel, got %s", got.UploadsPlaylistID)
		}
		if got.VideoCount != 12 || got.UniqueTags != 5 {
			t.Errorf("unexpected counts: videos=%d tags=%d", got.VideoCount, got.UniqueTags)
		}

		if _, err := repo.Get("nonexistent-id"); err == nil {
			t.Fatal("expected error when getting nonexistent run")
		}
	})

	t.Run("Delete", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewAnalysisRunRepository(db)
		run := newRun()
		if err := repo.Create(run); err != nil {
			t.Fatalf("failed to create analysis run: %v", err)
		}

		if err := repo.Delete(run.RunID); err != nil {
			t.Fatalf("failed to delete analysis run: %v", err)
		}

		if _, err := repo.Get(run.RunID); err == nil {
			t.Error("deleted run should not be retrievable")
		}

		if err := repo.Delete(run.RunID); err == nil {
			t.Error("expected error when deleting an already deleted run")
		}
	})

	t.Run("List", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewAnalysisRunRepository(db)
		for i := 0; i < 3; i++ {
			if err := repo.Create(newRun()); err != nil {
				t.Fatalf("failed to create analysis run: %v", err)
			}
		}

		runs, err := repo.List(nil)
		if err != nil {
			t.Fatalf("failed to list analysis runs: %v", err)
		}
		if len(runs) != 3 {
			t.Fatalf("expected 3 runs, got %d", len(runs))
		}

		for i := 1; i < len(runs); i++ {
			if runs[i].Sequence >= runs[i-1].Sequence {
				t.Error("runs should be ordered newest first")
			}
		}

		limited, err := repo.List(map[string]any{"limit": 2})
		if err != nil {
			t.Fatalf("failed to list with limit: %v", err)
		}
		if len(limited) != 2 {
			t.Errorf("expected 2 runs with limit, got %d", len(limited))
		}
		if limited[0].Sequence != 3 {
			t.Errorf("expected newest run first, got sequence %d", limited[0].Sequence)
		}
	})
}

func newPlaylistRecord(runID string) *models.CreatedPlaylist {
	return &models.CreatedPlaylist{
		RunID:          runID,
		PlaylistID:     "PLabc",
		Title:          "cats",
		Tag:            "cats",
		Privacy:        models.PrivacyPublic,
		RequestedCount: 4,
		InsertedCount:  4,
	}
}

func TestCreatedPlaylistRepository(t *testing.T) {
	t.Run("Create And Get", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewCreatedPlaylistRepository(db)
		record := newPlaylistRecord("")

		if err := repo.Create(record); err != nil {
			t.Fatalf("failed to create playlist record: %v", err)
		}

		if record.RecordID == "" {
			t.Error("record ID should be set after creation")
		}

		got, err := repo.Get(record.RecordID)
		if err != nil {
			t.Fatalf("failed to get playlist record: %v", err)
		}

		if got.RunID != "" {
			t.Errorf("expected empty run id, got %s", got.RunID)
		}
		if got.Tag != "cats" || got.InsertedCount != 4 {
			t.Errorf("unexpected record: tag=%s inserted=%d", got.Tag, got.InsertedCount)
		}
	})

	t.Run("Create With Run ForeignKey", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		runs := NewAnalysisRunRepository(db)
		run := newRun()
		if err := runs.Create(run); err != nil {
			t.Fatalf("failed to create analysis run: %v", err)
		}

		repo := NewCreatedPlaylistRepository(db)
		record := newPlaylistRecord(run.RunID)

		if err := repo.Create(record); err != nil {
			t.Fatalf("failed to create playlist record: %v", err)
		}

		got, err := repo.Get(record.RecordID)
		if err != nil {
			t.Fatalf("failed to get playlist record: %v", err)
		}
		if got.RunID != run.RunID {
			t.Errorf("expected run id %s, got %s", run.RunID, got.RunID)
		}

		orphan := newPlaylistRecord("missing-run")
		if err := repo.Create(orphan); err == nil {
			t.Error("expected foreign key violation for unknown run id")
		}
	})

	t.Run("Create ValidationError", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewCreatedPlaylistRepository(db)
		record := newPlaylistRecord("")
		record.Privacy = "secret"

		if err := repo.Create(record); err == nil {
			t.Fatal("expected validation error for invalid privacy")
		}
	})

	t.Run("Delete", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewCreatedPlaylistRepository(db)
		record := newPlaylistRecord("")
		if err := repo.Create(record); err != nil {
			t.Fatalf("failed to create playlist record: %v", err)
		}

		if err := repo.Delete(record.RecordID); err != nil {
			t.Fatalf("failed to delete playlist record: %v", err)
		}

		if _, err := repo.Get(record.RecordID); err == nil {
			t.Error("deleted record should not be retrievable")
		}
	})

	t.Run("List Filters", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		runs := NewAnalysisRunRepository(db)
		run := newRun()
		if err := runs.Create(run); err != nil {
			t.Fatalf("failed to create analysis run: %v", err)
		}

		repo := NewCreatedPlaylistRepository(db)

		first := newPlaylistRecord(run.RunID)
		if err := repo.Create(first); err != nil {
			t.Fatalf("failed to create first record: %v", err)
		}

		second := newPlaylistRecord("")
		second.Tag = "dogs"
		second.Title = "dogs"
		if err := repo.Create(second); err != nil {
			t.Fatalf("failed to create second record: %v", err)
		}

		all, err := repo.List(nil)
		if err != nil {
			t.Fatalf("failed to list records: %v", err)
		}
		if len(all) != 2 {
			t.Fatalf("expected 2 records, got %d", len(all))
		}
		if all[0].Tag != "dogs" {
			t.Errorf("expected newest record first, got tag %s", all[0].Tag)
		}

		byTag, err := repo.List(map[string]any{"tag": "cats"})
		if err != nil {
			t.Fatalf("failed to list by tag: %v", err)
		}
		if len(byTag) != 1 || byTag[0].RecordID != first.RecordID {
			t.Errorf("expected only the cats record, got %d records", len(byTag))
		}

		byRun, err := repo.List(map[string]any{"run_id": run.RunID})
		if err != nil {
			t.Fatalf("failed to list by run: %v", err)
		}
		if len(byRun) != 1 || byRun[0].RunID != run.RunID {
			t.Errorf("expected only the record linked to the run, got %d records", len(byRun))
		}

		limited, err := repo.List(map[string]any{"limit": 1})
		if err != nil {
			t.Fatalf("failed to list with limit: %v", err)
		}
		if len(limited) != 1 {
			t.Errorf("expected 1 record with limit, got %d", len(limited))
		}
	})
}

func TestNextSequence(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	for want := 1; want <= 3; want++ {
		got, err := NextSequence(db, "analysis_runs")
		if err != nil {
			t.Fatalf("failed to get next sequence: %v", err)
		}
		if got != want {
			t.Errorf("expected sequence %d, got %d", want, got)
		}
	}

	one, err := NextSequence(db, "created_playlists")
	if err != nil {
		t.Fatalf("failed to get next sequence for created_playlists: %v", err)
	}
	if one != 1 {
		t.Errorf("sequences should be independent per table, got %d", one)
	}

	if _, err := NextSequence(db, "missing_table"); err == nil {
		t.Error("expected error for unknown sequence table")
	}
}
