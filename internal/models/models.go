package models

import (
	"strings"
	"time"
)

// Model defines the base interface for all persistent models.
type Model interface {
	ID() string           // ID returns the unique identifier for this model
	CreatedAt() time.Time // CreatedAt returns when this model was created
	Validate() error      // Validate checks if the model's data is valid and returns an error if not
}

// Repository defines the interface for data access operations.
// Implementations handle database interactions for specific model types.
type Repository[T Model] interface {
	Create(model T) error                      // Create inserts a new model into the database
	Get(id string) (T, error)                  // Get retrieves a model by its ID
	Delete(id string) error                    // Delete removes a model from the database by its ID
	List(criteria map[string]any) ([]T, error) // List retrieves all models matching the given criteria
}

// NormalizeTag returns the grouping form of a tag: lower-cased, surrounding whitespace removed.
func NormalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

// VideoRecord is one video from the channel's uploads playlist with its tag set.
//
// Immutable after creation; a new analysis run replaces the whole collection.
type VideoRecord struct {
	ID   string   `json:"id"`
	Tags []string `json:"tags"` // original casing, response order

	normalized map[string]struct{}
}

// NewVideoRecord builds a VideoRecord and its normalized tag set.
func NewVideoRecord(id string, tags []string) VideoRecord {
	normalized := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		normalized[NormalizeTag(tag)] = struct{}{}
	}
	return VideoRecord{ID: id, Tags: tags, normalized: normalized}
}

// HasTag reports whether the record's normalized tag set contains the normalized form of tag.
func (v VideoRecord) HasTag(tag string) bool {
	_, ok := v.normalized[NormalizeTag(tag)]
	return ok
}

// TagCount pairs a display tag with the number of videos whose tag set contains it.
//
// Derived, never stored: recomputed from the full VideoRecord collection each run.
type TagCount struct {
	Tag   string `json:"tag"`   // display form (first-occurrence casing)
	Count int    `json:"count"` // videos carrying the normalized tag
}

// AnalysisResult carries everything one analysis run produced.
//
// Videos is retained so a later playlist creation can reuse the tag sets
// without re-fetching.
type AnalysisResult struct {
	UploadsPlaylistID string        `json:"uploads_playlist_id"`
	Tags              []TagCount    `json:"tags"` // descending by count
	Videos            []VideoRecord `json:"videos"`
}

// Playlist represents a playlist resource on the video platform.
type Playlist struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Privacy     string `json:"privacy"`
}

// CreationResult is the outcome of one playlist creation request.
//
// InsertedCount is the number of successful insertions, which is less than
// RequestedCount when an insertion fails mid-run.
type CreationResult struct {
	Playlist       Playlist `json:"playlist"`
	Tag            string   `json:"tag"`
	RequestedCount int      `json:"requested_count"`
	InsertedCount  int      `json:"inserted_count"`
}

// Privacy statuses accepted by the playlist creation endpoint.
const (
	PrivacyPublic   = "public"
	PrivacyPrivate  = "private"
	PrivacyUnlisted = "unlisted"
)

// ValidPrivacy reports whether privacy is one of the accepted statuses.
func ValidPrivacy(privacy string) bool {
	switch privacy {
	case PrivacyPublic, PrivacyPrivate, PrivacyUnlisted:
		return true
	}
	return false
}
