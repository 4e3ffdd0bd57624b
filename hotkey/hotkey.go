// Package hotkey registers a global Ctrl+Shift+Space shortcut that
// toggles the focus session without the terminal having focus.
package hotkey

type Hotkey interface {
	Register() error
	Unregister()
	Pressed() <-chan struct{}
}
