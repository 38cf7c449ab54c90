// Package ui implements an interactive terminal browser for a task file using bubbletea's Elm architecture.
//
// The TUI has two views:
//  1. [ListView] : Browse records, toggle the done-only filter, reload from disk
//  2. [AddView] : Type a new task and append it to the file
//
// The [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the [Msg] union type.
// File reads and writes run as commands so the UI never blocks on disk.
//
// Keyboard navigation uses vim-style bindings (j/k, d, r, a, enter, esc, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
