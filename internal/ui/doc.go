// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow over a single catalog:
//  1. [BookListView] : Browse and filter books (the list filter is a title search)
//  2. [MemberPickView] : Choose the member a selected book is checked out to
//  3. [StatsView] : Aggregate counts for the catalog
//  4. [LogView] : The transaction log in append order
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the [Msg] union type.
// Catalog operations run as [tea.Cmd] functions so the catalog is never touched from View.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, r, s, l, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
