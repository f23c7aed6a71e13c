package tasks

import (
	"context"
	"sort"

	"github.com/desertthunder/ytag/internal/models"
	"github.com/desertthunder/ytag/internal/services"
)

// fetchAllIDs pages through the uploads playlist and collects video IDs in
// response order. Pages are requested with an opaque continuation token until
// the API stops returning one. No deduplication: a video the API returns
// twice appears twice.
func (e *TagEngine) fetchAllIDs(ctx context.Context, playlistID string) ([]string, error) {
	var ids []string
	token := ""
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		pageIDs, next, err := e.svc.PlaylistItemsPage(ctx, playlistID, token)
		if err != nil {
			return nil, err
		}
		ids = append(ids, pageIDs...)

		if next == "" {
			return ids, nil
		}
		token = next
	}
}

// collectRecords batch-fetches metadata for every video ID, emitting a
// progress update per completed batch.
func (e *TagEngine) collectRecords(ctx context.Context, ids []string, progress chan<- ProgressUpdate) ([]models.VideoRecord, error) {
	totalBatches := (len(ids) + services.PageSize - 1) / services.PageSize
	records := make([]models.VideoRecord, 0, len(ids))

	for batch := 0; batch < totalBatches; batch++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		start := batch * services.PageSize
		end := min(start+services.PageSize, len(ids))

		batchRecords, err := e.svc.VideosMetadata(ctx, ids[start:end])
		if err != nil {
			return nil, err
		}
		records = append(records, batchRecords...)

		e.sendProgress(progress, fetchMetadataUpdate(batch+1, totalBatches))
	}

	return records, nil
}

// countTags aggregates tag frequencies across all records. The count for a
// tag is the number of videos whose normalized tag set contains it.
//
// Grouping is by normalized (lower-cased, trimmed) tag. The display form for
// each group is the casing of the tag's first occurrence in fetch order,
// obtained by building the display map from a reverse scan of the raw tag
// stream so earlier entries shadow later ones. Results are sorted descending
// by count with a stable sort; ties retain first-insertion order.
func countTags(records []models.VideoRecord) []models.TagCount {
	counts := make(map[string]int)
	var order []string // normalized tags in first-insertion order
	var raw []string   // full raw tag stream in fetch order

	for _, rec := range records {
		seenInVideo := make(map[string]struct{}, len(rec.Tags))
		for _, tag := range rec.Tags {
			norm := models.NormalizeTag(tag)
			raw = append(raw, tag)

			// a video listing the same tag in two casings counts once
			if _, dup := seenInVideo[norm]; dup {
				continue
			}
			seenInVideo[norm] = struct{}{}

			if _, seen := counts[norm]; !seen {
				order = append(order, norm)
			}
			counts[norm]++
		}
	}

	display := make(map[string]string, len(order))
	for i := len(raw) - 1; i >= 0; i-- {
		display[models.NormalizeTag(raw[i])] = raw[i]
	}

	tags := make([]models.TagCount, 0, len(order))
	for _, norm := range order {
		tags = append(tags, models.TagCount{Tag: display[norm], Count: counts[norm]})
	}

	sort.SliceStable(tags, func(i, j int) bool {
		return tags[i].Count > tags[j].Count
	})
	return tags
}
