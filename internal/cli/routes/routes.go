// Package routes names the storefront's navigable surfaces and provides the
// navigator used by the guard and the session-expiry handler.
package routes

import "github.com/rs/zerolog"

// Route paths, kept identical to the web client so redirect semantics stay
// comparable across both frontends.
const (
	Root          = "/"
	Login         = "/login"
	Home          = "/home"
	Cart          = "/cart"
	AdminCategory = "/admin/category"
	AdminProduct  = "/admin/product"
)

// Navigator tracks the current route and performs redirects. The CLI backs
// it with a tracker; tests use a recording implementation.
type Navigator interface {
	Current() string
	Go(path string)
}

// Tracker is the CLI navigator. Each command sets its entry route before
// consulting the guard; redirects are logged and recorded so the command can
// react to where it ended up.
type Tracker struct {
	current string
	logger  zerolog.Logger
}

// NewTracker creates a navigator starting at the given route.
func NewTracker(start string, logger zerolog.Logger) *Tracker {
	if start == "" {
		start = Root
	}
	return &Tracker{current: start, logger: logger}
}

func (t *Tracker) Current() string {
	return t.current
}

func (t *Tracker) Go(path string) {
	t.logger.Debug().Str("from", t.current).Str("to", path).Msg("navigating")
	t.current = path
}
