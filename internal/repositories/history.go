package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/ytag/internal/models"
	"github.com/desertthunder/ytag/internal/shared"
)

// AnalysisRunRepository implements models.Repository[*models.AnalysisRun] for the run history.
type AnalysisRunRepository struct {
	db *sql.DB
}

// NewAnalysisRunRepository creates a new AnalysisRunRepository with the given database connection
func NewAnalysisRunRepository(db *sql.DB) *AnalysisRunRepository {
	return &AnalysisRunRepository{db: db}
}

// Create inserts a new analysis run with generated ID and sequence
func (r *AnalysisRunRepository) Create(run *models.AnalysisRun) error {
	sequence, err := NextSequence(r.db, "analysis_runs")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	run.RunID = shared.GenerateID()
	run.Sequence = sequence
	if run.Created.IsZero() {
		run.Created = time.Now()
	}

	if err := run.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO analysis_runs (id, sequence, uploads_playlist_id, video_count, unique_tags, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		run.RunID,
		run.Sequence,
		run.UploadsPlaylistID,
		run.VideoCount,
		run.UniqueTags,
		run.Created,
	)
	if err != nil {
		return fmt.Errorf("failed to insert analysis run: %w", err)
	}

	return nil
}

// Get retrieves an analysis run by ID, excluding soft-deleted rows
func (r *AnalysisRunRepository) Get(id string) (*models.AnalysisRun, error) {
	query := `
		SELECT id, sequence, uploads_playlist_id, video_count, unique_tags, created_at, deleted_at
		FROM analysis_runs
		WHERE id = ? AND deleted_at IS NULL
	`

	var (
		run       models.AnalysisRun
		deletedAt sql.NullTime
	)
	err := r.db.QueryRow(query, id).Scan(&run.RunID, &run.Sequence, &run.UploadsPlaylistID, &run.VideoCount, &run.UniqueTags, &run.Created, &deletedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("analysis run not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan analysis run: %w", err)
	}
	if deletedAt.Valid {
		run.Deleted = &deletedAt.Time
	}

	return &run, nil
}

// Delete soft-deletes an analysis run by ID
func (r *AnalysisRunRepository) Delete(id string) error {
	query := `
		UPDATE analysis_runs
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete analysis run: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("analysis run not found or already deleted: %s", id)
	}

	return nil
}

// List retrieves analysis runs newest-first, excluding soft-deleted rows
func (r *AnalysisRunRepository) List(criteria map[string]any) ([]*models.AnalysisRun, error) {
	query := `
		SELECT id, sequence, uploads_playlist_id, video_count, unique_tags, created_at, deleted_at
		FROM analysis_runs
		WHERE deleted_at IS NULL
		ORDER BY sequence DESC
	`

	args := []any{}
	if limit, ok := criteria["limit"].(int); ok && limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query analysis runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.AnalysisRun
	for rows.Next() {
		var (
			run       models.AnalysisRun
			deletedAt sql.NullTime
		)
		if err := rows.Scan(&run.RunID, &run.Sequence, &run.UploadsPlaylistID, &run.VideoCount, &run.UniqueTags, &run.Created, &deletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan analysis run: %w", err)
		}
		if deletedAt.Valid {
			run.Deleted = &deletedAt.Time
		}
		runs = append(runs, &run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return runs, nil
}

// CreatedPlaylistRepository implements models.Repository[*models.CreatedPlaylist] for the run history.
type CreatedPlaylistRepository struct {
	db *sql.DB
}

// NewCreatedPlaylistRepository creates a new CreatedPlaylistRepository with the given database connection
func NewCreatedPlaylistRepository(db *sql.DB) *CreatedPlaylistRepository {
	return &CreatedPlaylistRepository{db: db}
}

// Create inserts a new created-playlist record with generated ID and sequence
func (r *CreatedPlaylistRepository) Create(record *models.CreatedPlaylist) error {
	sequence, err := NextSequence(r.db, "created_playlists")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	record.RecordID = shared.GenerateID()
	record.Sequence = sequence
	if record.Created.IsZero() {
		record.Created = time.Now()
	}

	if err := record.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO created_playlists (id, sequence, run_id, playlist_id, title, tag, privacy, requested_count, inserted_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		record.RecordID,
		record.Sequence,
		nullString(record.RunID),
		record.PlaylistID,
		record.Title,
		record.Tag,
		record.Privacy,
		record.RequestedCount,
		record.InsertedCount,
		record.Created,
	)
	if err != nil {
		return fmt.Errorf("failed to insert created playlist: %w", err)
	}

	return nil
}

// Get retrieves a created-playlist record by ID, excluding soft-deleted rows
func (r *CreatedPlaylistRepository) Get(id string) (*models.CreatedPlaylist, error) {
	query := `
		SELECT id, sequence, run_id, playlist_id, title, tag, privacy, requested_count, inserted_count, created_at, deleted_at
		FROM created_playlists
		WHERE id = ? AND deleted_at IS NULL
	`

	record, err := scanCreatedPlaylist(r.db.QueryRow(query, id).Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("created playlist not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan created playlist: %w", err)
	}

	return record, nil
}

// Delete soft-deletes a created-playlist record by ID
func (r *CreatedPlaylistRepository) Delete(id string) error {
	query := `
		UPDATE created_playlists
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete created playlist: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("created playlist not found or already deleted: %s", id)
	}

	return nil
}

// List retrieves created-playlist records newest-first, excluding soft-deleted rows.
// Supports filtering by run_id and tag.
func (r *CreatedPlaylistRepository) List(criteria map[string]any) ([]*models.CreatedPlaylist, error) {
	query := `
		SELECT id, sequence, run_id, playlist_id, title, tag, privacy, requested_count, inserted_count, created_at, deleted_at
		FROM created_playlists
		WHERE deleted_at IS NULL
	`

	args := []any{}

	if runID, ok := criteria["run_id"].(string); ok && runID != "" {
		query += " AND run_id = ?"
		args = append(args, runID)
	}

	if tag, ok := criteria["tag"].(string); ok && tag != "" {
		query += " AND tag = ?"
		args = append(args, tag)
	}

	query += " ORDER BY sequence DESC"

	if limit, ok := criteria["limit"].(int); ok && limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query created playlists: %w", err)
	}
	defer rows.Close()

	var records []*models.CreatedPlaylist
	for rows.Next() {
		record, err := scanCreatedPlaylist(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan created playlist: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return records, nil
}

// scanCreatedPlaylist scans one row through the given Scan function, so the
// same column handling covers both *sql.Row and *sql.Rows.
func scanCreatedPlaylist(scan func(dest ...any) error) (*models.CreatedPlaylist, error) {
	var (
		record    models.CreatedPlaylist
		runID     sql.NullString
		deletedAt sql.NullTime
	)

	err := scan(
		&record.RecordID,
		&record.Sequence,
		&runID,
		&record.PlaylistID,
		&record.Title,
		&record.Tag,
		&record.Privacy,
		&record.RequestedCount,
		&record.InsertedCount,
		&record.Created,
		&deletedAt,
	)
	if err != nil {
		return nil, err
	}

	if runID.Valid {
		record.RunID = runID.String
	}
	if deletedAt.Valid {
		record.Deleted = &deletedAt.Time
	}

	return &record, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
