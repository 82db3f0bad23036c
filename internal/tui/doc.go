// Package tui implements the interactive sift terminal UI.
//
// The screen has a filter panel on the left ([filter.Panel]) and the
// current output on the right. Filter changes made in the panel are staged
// on the manager and only reach the record list when the user activates
// with enter. Activation runs as a [tea.Cmd] so a slow predicate never
// blocks the event loop; the result arrives as a [FilteredMsg].
//
// With watching enabled, the [App] reloads the dataset when a file changes
// and sends a [ReloadMsg], which rebuilds the manager and carries the staged
// filter state over by name.
package tui
