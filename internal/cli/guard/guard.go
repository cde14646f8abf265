// Package guard gates navigation into protected surfaces by authentication
// state and role membership.
package guard

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/shopd-dev/shopd/internal/cli/routes"
	"github.com/shopd-dev/shopd/internal/cli/session"
)

// Decision is the outcome of a guard check.
type Decision int

const (
	// DecisionAllow renders the guarded surface.
	DecisionAllow Decision = iota
	// DecisionLogin redirected to the login route: no valid session.
	DecisionLogin
	// DecisionHome redirected to the authenticated landing page: the
	// session's role is not in the allowlist. Deliberately a demotion,
	// not an error.
	DecisionHome
)

// Guard authorizes navigation using the session service. Checks are
// re-evaluated on every guarded navigation and never cached.
type Guard struct {
	sessions *session.Service
	nav      routes.Navigator
	logger   zerolog.Logger
}

// New creates a guard and wires the central session-expiry handler: when the
// dispatcher tears a session down after a 401, the navigator is sent to the
// login route unless it is already there.
func New(sessions *session.Service, nav routes.Navigator, logger zerolog.Logger) *Guard {
	g := &Guard{sessions: sessions, nav: nav, logger: logger}
	sessions.OnExpired(g.handleExpiry)
	return g
}

// Check evaluates the current session against a role allowlist. Roles are
// compared case-insensitively; allowlists are written lowercase.
func (g *Guard) Check(allow []string) Decision {
	token := g.sessions.Token()
	if token == "" || session.IsExpired(token) {
		g.logger.Debug().Msg("no valid token, redirecting to login")
		g.nav.Go(routes.Login)
		return DecisionLogin
	}

	sess := g.sessions.Current()
	if sess == nil {
		g.logger.Debug().Msg("no stored user, redirecting to login")
		g.nav.Go(routes.Login)
		return DecisionLogin
	}

	if !roleAllowed(sess.Role, allow) {
		g.logger.Debug().Str("role", sess.Role).Strs("allow", allow).Msg("role not allowed, redirecting home")
		g.nav.Go(routes.Home)
		return DecisionHome
	}

	return DecisionAllow
}

func (g *Guard) handleExpiry() {
	if g.nav.Current() != routes.Login {
		g.nav.Go(routes.Login)
	}
}

func roleAllowed(role string, allow []string) bool {
	for _, candidate := range allow {
		if strings.EqualFold(role, candidate) {
			return true
		}
	}
	return false
}
