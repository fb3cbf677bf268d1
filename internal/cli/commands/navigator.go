package commands

import "sync"

// Navigator is the CLI's stand-in for the browser location. Commands set a
// virtual path before talking to the backend; when a 401 handler forces a
// navigation, the target is recorded so the command can tell the user what
// happened.
type Navigator struct {
	mu         sync.Mutex
	location   string
	redirected string
}

// NewNavigator returns a navigator positioned nowhere
func NewNavigator() *Navigator {
	return &Navigator{}
}

// SetLocation moves the virtual location and forgets past redirects
func (n *Navigator) SetLocation(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.location = path
	n.redirected = ""
}

// Location returns the current virtual path
func (n *Navigator) Location() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.location
}

// Navigate records a forced navigation and moves the location there
func (n *Navigator) Navigate(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.location = path
	n.redirected = path
}

// Redirected reports whether a forced navigation happened since the last
// SetLocation, and where to
func (n *Navigator) Redirected() (string, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.redirected, n.redirected != ""
}
