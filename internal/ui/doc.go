// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow from channel analysis to playlist creation:
//  1. [AnalyzeView] : Watch analysis progress while uploads are fetched
//  2. [TagListView] : Browse the ranked tag table and pick a tag
//  3. [FormView] : Enter a playlist title and cycle the privacy setting
//  4. [ConfirmView] : Confirm the creation request
//  5. [CreateView] : Monitor insertion progress
//  6. [ResultView] : Display the created playlist and insertion counts
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Progress updates flow through a channel from the TagEngine, providing non-blocking status reporting during long operations.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
