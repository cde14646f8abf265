package guard

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/shopd-dev/shopd/internal/cli/routes"
	"github.com/shopd-dev/shopd/internal/cli/session"
	"github.com/shopd-dev/shopd/internal/cli/tokenstore"
)

// recordingNavigator captures every redirect for assertions.
type recordingNavigator struct {
	current string
	visited []string
}

func (n *recordingNavigator) Current() string { return n.current }

func (n *recordingNavigator) Go(path string) {
	n.current = path
	n.visited = append(n.visited, path)
}

func mintToken(t *testing.T, email string, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return signed
}

func newTestGuard(t *testing.T, token, userJSON string) (*Guard, *recordingNavigator, *session.Service) {
	t.Helper()
	durable := tokenstore.NewMemory()
	if token != "" {
		_ = durable.Set(tokenstore.KeyToken, token)
	}
	if userJSON != "" {
		_ = durable.Set(tokenstore.KeyUser, userJSON)
	}
	store := tokenstore.New(durable, tokenstore.NewMemory(), zerolog.Nop())
	sessions := session.NewService(store, zerolog.Nop())
	nav := &recordingNavigator{current: routes.AdminCategory}
	return New(sessions, nav, zerolog.Nop()), nav, sessions
}

func TestGuard_Check(t *testing.T) {
	validToken := mintToken(t, "a@b.com", time.Now().Add(time.Hour))
	expiredToken := mintToken(t, "a@b.com", time.Now().Add(-time.Hour))

	tests := []struct {
		name     string
		token    string
		userJSON string
		allow    []string
		want     Decision
		wantNav  string
	}{
		{
			name:    "no token redirects to login",
			allow:   []string{"admin"},
			want:    DecisionLogin,
			wantNav: routes.Login,
		},
		{
			name:     "expired token redirects to login",
			token:    expiredToken,
			userJSON: `{"email":"a@b.com","role":"admin"}`,
			allow:    []string{"admin"},
			want:     DecisionLogin,
			wantNav:  routes.Login,
		},
		{
			name:    "token without stored user redirects to login",
			token:   validToken,
			allow:   []string{"admin"},
			want:    DecisionLogin,
			wantNav: routes.Login,
		},
		{
			name:     "allowed role renders",
			token:    validToken,
			userJSON: `{"email":"a@b.com","role":"admin"}`,
			allow:    []string{"admin"},
			want:     DecisionAllow,
			wantNav:  routes.AdminCategory,
		},
		{
			name:     "role mismatch demotes to home",
			token:    validToken,
			userJSON: `{"email":"a@b.com","role":"user"}`,
			allow:    []string{"admin"},
			want:     DecisionHome,
			wantNav:  routes.Home,
		},
		{
			name:     "uppercase stored role matches lowercase allowlist",
			token:    validToken,
			userJSON: `{"email":"a@b.com","role":"ADMIN"}`,
			allow:    []string{"admin"},
			want:     DecisionAllow,
			wantNav:  routes.AdminCategory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, nav, _ := newTestGuard(t, tt.token, tt.userJSON)

			if got := g.Check(tt.allow); got != tt.want {
				t.Errorf("Check = %v, expected %v", got, tt.want)
			}
			if nav.Current() != tt.wantNav {
				t.Errorf("expected navigator at %q, got %q", tt.wantNav, nav.Current())
			}
		})
	}
}

func TestGuard_CheckNotCachedAcrossNavigations(t *testing.T) {
	validToken := mintToken(t, "a@b.com", time.Now().Add(time.Hour))
	g, nav, sessions := newTestGuard(t, validToken, `{"email":"a@b.com","role":"admin"}`)

	if got := g.Check([]string{"admin"}); got != DecisionAllow {
		t.Fatalf("expected initial check to allow, got %v", got)
	}

	// Logout between navigations must be observed by the next check.
	sessions.Clear()
	nav.current = routes.AdminCategory

	if got := g.Check([]string{"admin"}); got != DecisionLogin {
		t.Errorf("expected re-check after logout to redirect to login, got %v", got)
	}
}

func TestGuard_ExpiryRedirectsToLogin(t *testing.T) {
	g, nav, sessions := newTestGuard(t, "jwt-abc", `{"email":"a@b.com","role":"user"}`)
	_ = g

	sessions.Expire()

	if nav.Current() != routes.Login {
		t.Errorf("expected navigator at login after expiry, got %q", nav.Current())
	}
	if len(nav.visited) != 1 {
		t.Errorf("expected exactly one redirect, got %d", len(nav.visited))
	}
}

func TestGuard_ExpiryAtLoginDoesNotRedirect(t *testing.T) {
	g, nav, sessions := newTestGuard(t, "jwt-abc", "")
	_ = g
	nav.current = routes.Login

	sessions.Expire()

	if len(nav.visited) != 0 {
		t.Errorf("expected no redirect while already at login, got %v", nav.visited)
	}
}
