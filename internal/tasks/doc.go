// Package tasks orchestrates channel analysis and playlist creation with real-time progress reporting.
//
// # Core Operations
//
// The [Engine] interface defines two operations:
//
//  1. [Engine.Analyze] : Full channel tag analysis
//     - Resolves the authenticated user's uploads playlist
//     - Pages through every video ID (50 per page, no deduplication)
//     - Batch-fetches metadata 50 IDs at a time
//     - Aggregates tag frequencies, display casing from first occurrence
//
//  2. [Engine.CreatePlaylist] : Tag-targeted playlist creation
//     - Creates the playlist resource first
//     - Inserts every video whose tag set contains the target tag, one call per video
//     - Stops on the first insertion failure, reporting the partial count
//
// # Progress Reporting
//
// All operations send [ProgressUpdate] values over a caller-supplied channel.
// Updates carry an overall percentage (0-100), a phase, and a display message.
// Sends use select with default so a slow or absent consumer never blocks the
// pipeline.
//
// # Single Flight
//
// A [TagEngine] runs at most one operation at a time. Starting a second while
// one is active fails immediately with [shared.ErrTaskInFlight] rather than
// queueing.
//
// # Cancellation
//
// Both operations honor context cancellation, checked at each batch boundary
// and before each network call. A canceled creation run returns the partial
// result alongside the context error.
package tasks
