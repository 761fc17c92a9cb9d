// Package ui contains the Bubble Tea program that browses a catalog as a
// stack of searchable lists.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages.
//   - While the action menu is open it consumes key presses. Otherwise each
//     tea.Msg is routed through a typed handler registry so it is handled by a
//     focused function (navigation for key presses, page loads, backend
//     updates).
//   - Every Update ends in finishUpdate, which lays out the current screen,
//     re-centres the selection and returns commands queued by collection
//     callbacks (for example a load-more request).
//
// State ownership:
//   - Each screen owns an item registry and a selection controller from
//     internal/ui/state. Only the top screen's controller is mounted, so
//     selections are remembered in the top frame of the navigation stack
//     (internal/state.NavStack) and restored when the user returns to a parent.
//   - The catalog itself lives in internal/state.CatalogStore, kept current by
//     the dispatcher.
//   - Committing an entry runs through the internal/ui/command bus.
//
// Backend interactions:
//   - A backend.Watcher streams catalog reloads; applyBackendEvent stores the
//     new catalog and reconciles every open screen with it.
//   - Pages are fetched through backend.Pager in tea.Cmd values; stale pages
//     are dropped by generation.
package ui
