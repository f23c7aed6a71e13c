package tasks

import (
	"context"
	"fmt"
	"testing"

	"github.com/desertthunder/ytag/internal/models"
	"github.com/desertthunder/ytag/internal/services"
)

func TestCountTags(t *testing.T) {
	t.Run("display form is the first-seen casing", func(t *testing.T) {
		recs := []models.VideoRecord{
			models.NewVideoRecord("v1", []string{"Cats"}),
			models.NewVideoRecord("v2", []string{"cats"}),
			models.NewVideoRecord("v3", []string{"CATS"}),
		}

		tags := countTags(recs)
		if len(tags) != 1 {
			t.Fatalf("countTags() len = %d, want 1", len(tags))
		}
		if tags[0].Tag != "Cats" {
			t.Errorf("countTags() display = %q, want %q", tags[0].Tag, "Cats")
		}
		if tags[0].Count != 3 {
			t.Errorf("countTags() count = %d, want 3", tags[0].Count)
		}
	})

	t.Run("sorted descending by count", func(t *testing.T) {
		recs := []models.VideoRecord{
			models.NewVideoRecord("v1", []string{"rare", "common"}),
			models.NewVideoRecord("v2", []string{"common"}),
			models.NewVideoRecord("v3", []string{"common"}),
		}

		tags := countTags(recs)
		if tags[0].Tag != "common" || tags[0].Count != 3 {
			t.Errorf("countTags()[0] = %v/%d, want common/3", tags[0].Tag, tags[0].Count)
		}
		if tags[1].Tag != "rare" || tags[1].Count != 1 {
			t.Errorf("countTags()[1] = %v/%d, want rare/1", tags[1].Tag, tags[1].Count)
		}
	})

	t.Run("ties retain first-insertion order", func(t *testing.T) {
		// x appears 3 times, y and z twice each with y seen before z
		recs := []models.VideoRecord{
			models.NewVideoRecord("v1", []string{"y", "x"}),
			models.NewVideoRecord("v2", []string{"z", "x"}),
			models.NewVideoRecord("v3", []string{"y", "z", "x"}),
		}

		tags := countTags(recs)
		want := []string{"x", "y", "z"}
		for i, name := range want {
			if tags[i].Tag != name {
				t.Errorf("countTags()[%d] = %q, want %q", i, tags[i].Tag, name)
			}
		}
	})

	t.Run("repeated casings within one video count once", func(t *testing.T) {
		recs := []models.VideoRecord{
			models.NewVideoRecord("v1", []string{"Cats", "cats"}),
			models.NewVideoRecord("v2", []string{"cats"}),
		}

		tags := countTags(recs)
		if len(tags) != 1 {
			t.Fatalf("countTags() len = %d, want 1", len(tags))
		}
		if tags[0].Count != 2 {
			t.Errorf("countTags() count = %d, want 2", tags[0].Count)
		}
		if tags[0].Tag != "Cats" {
			t.Errorf("countTags() display = %q, want %q", tags[0].Tag, "Cats")
		}
	})

	t.Run("untagged videos contribute nothing", func(t *testing.T) {
		recs := []models.VideoRecord{
			models.NewVideoRecord("v1", nil),
			models.NewVideoRecord("v2", []string{"solo"}),
		}

		tags := countTags(recs)
		if len(tags) != 1 || tags[0].Tag != "solo" {
			t.Errorf("countTags() = %v, want [solo]", tags)
		}
	})

	t.Run("no records yields no tags", func(t *testing.T) {
		if tags := countTags(nil); len(tags) != 0 {
			t.Errorf("countTags(nil) = %v, want empty", tags)
		}
	})
}

func TestFetchAllIDs(t *testing.T) {
	t.Run("follows continuation tokens and preserves order", func(t *testing.T) {
		svc := &mockService{
			pages: map[string]pageResult{
				"":   {ids: []string{"a", "b"}, next: "t1"},
				"t1": {ids: []string{"c"}, next: "t2"},
				"t2": {ids: []string{"d", "e"}, next: ""},
			},
		}
		engine := NewTagEngine(svc)

		ids, err := engine.fetchAllIDs(context.Background(), "UU1")
		if err != nil {
			t.Fatalf("fetchAllIDs() error = %v", err)
		}

		want := []string{"a", "b", "c", "d", "e"}
		if len(ids) != len(want) {
			t.Fatalf("fetchAllIDs() len = %d, want %d", len(ids), len(want))
		}
		for i, id := range want {
			if ids[i] != id {
				t.Errorf("fetchAllIDs()[%d] = %q, want %q", i, ids[i], id)
			}
		}
	})

	t.Run("duplicates are kept", func(t *testing.T) {
		svc := &mockService{
			pages: map[string]pageResult{
				"":   {ids: []string{"a", "a"}, next: "t1"},
				"t1": {ids: []string{"a"}, next: ""},
			},
		}
		engine := NewTagEngine(svc)

		ids, err := engine.fetchAllIDs(context.Background(), "UU1")
		if err != nil {
			t.Fatalf("fetchAllIDs() error = %v", err)
		}
		if len(ids) != 3 {
			t.Errorf("fetchAllIDs() len = %d, want 3 (no deduplication)", len(ids))
		}
	})
}

func TestCollectRecords(t *testing.T) {
	t.Run("one metadata request per batch of 50", func(t *testing.T) {
		calls := 0
		ids := make([]string, 0, 120)
		metadata := map[string][]string{}
		for i := 0; i < 120; i++ {
			id := fmt.Sprintf("v%03d", i)
			ids = append(ids, id)
			metadata[id] = []string{"t"}
		}

		svc := &countingService{mockService: mockService{metadata: metadata}, calls: &calls}
		engine := NewTagEngine(svc)

		recs, err := engine.collectRecords(context.Background(), ids, nil)
		if err != nil {
			t.Fatalf("collectRecords() error = %v", err)
		}
		if len(recs) != 120 {
			t.Errorf("collectRecords() len = %d, want 120", len(recs))
		}
		if calls != 3 {
			t.Errorf("collectRecords() metadata calls = %d, want 3 (ceil(120/%d))", calls, services.PageSize)
		}
	})

	t.Run("batch sizes never exceed the page size", func(t *testing.T) {
		var sizes []int
		svc := &sizeRecordingService{sizes: &sizes}
		engine := NewTagEngine(svc)

		ids := make([]string, 101)
		for i := range ids {
			ids[i] = fmt.Sprintf("v%d", i)
		}

		if _, err := engine.collectRecords(context.Background(), ids, nil); err != nil {
			t.Fatalf("collectRecords() error = %v", err)
		}

		want := []int{50, 50, 1}
		if len(sizes) != len(want) {
			t.Fatalf("collectRecords() batches = %v, want %v", sizes, want)
		}
		for i := range want {
			if sizes[i] != want[i] {
				t.Errorf("collectRecords() batch[%d] = %d, want %d", i, sizes[i], want[i])
			}
		}
	})
}

type countingService struct {
	mockService
	calls *int
}

func (c *countingService) VideosMetadata(ctx context.Context, videoIDs []string) ([]models.VideoRecord, error) {
	*c.calls++
	return c.mockService.VideosMetadata(ctx, videoIDs)
}

type sizeRecordingService struct {
	mockService
	sizes *[]int
}

func (s *sizeRecordingService) VideosMetadata(ctx context.Context, videoIDs []string) ([]models.VideoRecord, error) {
	*s.sizes = append(*s.sizes, len(videoIDs))
	records := make([]models.VideoRecord, 0, len(videoIDs))
	for _, id := range videoIDs {
		records = append(records, models.NewVideoRecord(id, nil))
	}
	return records, nil
}
