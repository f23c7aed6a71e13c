// Package models defines domain entities and persistence interfaces for the ytag tag analyzer.
//
// The package contains two categories of types:
//
// 1. Pipeline values: in-memory results of one analysis or creation run
//   - [VideoRecord] : one uploaded video with its raw and normalized tags
//   - [TagCount] : a display tag with the number of videos carrying it
//   - [AnalysisResult] : ranked tags plus the record collection they came from
//   - [Playlist] : a playlist resource as returned by the video platform
//   - [CreationResult] : outcome of one playlist creation request
//
// 2. Persisted entities: sqlite-backed run history rows
//   - [AnalysisRun] : summary of one completed analysis
//   - [CreatedPlaylist] : one playlist created from a tag
//
// Pipeline values are immutable after creation and invalidated by the next
// analysis run; persisted entities implement [Model] and are stored through
// [Repository] implementations.
package models
