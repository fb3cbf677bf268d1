package client

// Navigator abstracts the browser location so the 401 handler can decide
// whether to force a navigation to a login page. The CLI maps its commands
// onto virtual paths; tests use a spy.
type Navigator interface {
	// Location returns the current path, e.g. "/dashboard"
	Location() string
	// Navigate forces a full navigation to path
	Navigate(path string)
}

// NopNavigator ignores navigation. Useful where no view exists to redirect.
type NopNavigator struct{}

func (NopNavigator) Location() string { return "" }

func (NopNavigator) Navigate(string) {}
