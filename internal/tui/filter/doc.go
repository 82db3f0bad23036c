// Package filter provides the filter panel of the sift TUI.
//
// The panel lists every filter of a [core.Manager] in declaration order with
// its staged state and payload. Key presses stage changes on the manager;
// nothing reaches the record list until the user activates.
//
// # Keyboard Input Handling
//
// The [InputResult] type captures the result of handling a key press:
//
//	result, cmd := p.HandleKey(keyMsg)
//	if result.Activate {
//	    // recompute the output
//	}
//
// # Panel Rendering
//
//	panel := filter.RenderPanel(p, width)
package filter
