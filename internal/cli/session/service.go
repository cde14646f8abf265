package session

import (
	"encoding/json"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/shopd-dev/shopd/internal/cli/tokenstore"
)

// Role values as persisted. Roles are normalized to lowercase at the single
// ingestion point (login) and compared case-insensitively everywhere else.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// placeholderEmail labels a stored user whose record is missing an email.
const placeholderEmail = "user"

// StoredUser is the account record persisted at login and overwritten on
// re-login. The email comes from the token's subject, not from the login
// response body.
type StoredUser struct {
	Email    string `json:"email"`
	Role     string `json:"role"`
	FullName string `json:"fullName"`
	ID       int    `json:"id"`
}

// Session is the resolved identity used for authorization decisions in the
// CLI. It is derived on demand and never persisted.
type Session struct {
	Email string
	Role  string
}

// IsAdmin reports whether the session carries the admin role.
func (s *Session) IsAdmin() bool {
	return s != nil && strings.EqualFold(s.Role, RoleAdmin)
}

// BuildStoredUser derives the persistable user record from a login
// response. The email is taken from the decoded token's subject; the role is
// normalized to lowercase regardless of the casing the API returned.
func BuildStoredUser(token, role, fullName string, id int) (StoredUser, error) {
	claims, err := Decode(token)
	if err != nil {
		return StoredUser{}, err
	}
	return StoredUser{
		Email:    claims.Email(),
		Role:     strings.ToLower(role),
		FullName: fullName,
		ID:       id,
	}, nil
}

// Service is the single injected owner of auth state. All consumers read
// the session through it instead of touching storage directly, and can
// subscribe to be notified when the state changes.
type Service struct {
	store  *tokenstore.Store
	logger zerolog.Logger

	mu          sync.Mutex
	subscribers []func(*Session)
	onExpired   []func()
}

// NewService creates a session service over the given token store.
func NewService(store *tokenstore.Store, logger zerolog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Token returns the stored access token, durable scope first.
func (s *Service) Token() string {
	return s.store.Read()
}

// Current resolves the session from the stored user record. It returns nil
// if the record is absent or unparsable. The role is lowercased and a
// missing email falls back to a placeholder label; resolution never fails.
func (s *Service) Current() *Session {
	raw := s.store.ReadUser()
	if raw == "" {
		return nil
	}

	var user StoredUser
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		s.logger.Debug().Err(err).Msg("stored user record is unparsable")
		return nil
	}

	email := user.Email
	if email == "" {
		email = placeholderEmail
	}
	return &Session{Email: email, Role: strings.ToLower(user.Role)}
}

// Authenticated reports whether a non-expired token and a resolvable
// session are both present.
func (s *Service) Authenticated() bool {
	token := s.Token()
	if token == "" || IsExpired(token) {
		return false
	}
	return s.Current() != nil
}

// Establish persists the credentials issued at login. The remember flag
// selects the durable scope; otherwise the session lasts only until logout
// or reboot. Subscribers are notified with the freshly resolved session.
func (s *Service) Establish(token, refreshToken string, user StoredUser, remember bool) error {
	user.Role = strings.ToLower(user.Role)

	serialized, err := json.Marshal(user)
	if err != nil {
		return err
	}

	scope := tokenstore.ScopeEphemeral
	if remember {
		scope = tokenstore.ScopeDurable
	}

	creds := tokenstore.Credentials{
		Token:        token,
		RefreshToken: refreshToken,
		User:         string(serialized),
		ExpiresIn:    expiresIn(token),
	}
	if err := s.store.Save(scope, creds); err != nil {
		return err
	}

	s.logger.Info().Str("email", user.Email).Str("role", user.Role).Bool("remember", remember).Msg("session established")
	s.notify(s.Current())
	return nil
}

// Clear tears down both storage scopes and notifies subscribers with a nil
// session. Used by logout.
func (s *Service) Clear() {
	s.store.Clear()
	s.notify(nil)
}

// Expire tears down the session in response to an authorization failure and
// additionally fires the expiry handlers. The dispatcher calls this for
// every 401, no matter which endpoint produced it.
func (s *Service) Expire() {
	s.logger.Warn().Msg("session expired, clearing stored credentials")
	s.Clear()

	s.mu.Lock()
	handlers := make([]func(), len(s.onExpired))
	copy(handlers, s.onExpired)
	s.mu.Unlock()

	for _, handler := range handlers {
		handler()
	}
}

// Subscribe registers a callback invoked whenever the session changes. The
// callback receives the new session, or nil after a teardown.
func (s *Service) Subscribe(fn func(*Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// OnExpired registers a handler for auth-expiry teardowns. Navigation
// concerns hook in here so the transport layer stays unaware of them.
func (s *Service) OnExpired(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onExpired = append(s.onExpired, fn)
}

func (s *Service) notify(sess *Session) {
	s.mu.Lock()
	subscribers := make([]func(*Session), len(s.subscribers))
	copy(subscribers, s.subscribers)
	s.mu.Unlock()

	for _, fn := range subscribers {
		fn(sess)
	}
}

// expiresIn derives the token lifetime in seconds from its claims. An
// undecodable token yields an empty value; the field is informational.
func expiresIn(token string) string {
	claims, err := Decode(token)
	if err != nil || claims.ExpiresAt == nil || claims.IssuedAt == nil {
		return ""
	}
	seconds := int64(claims.ExpiresAt.Sub(claims.IssuedAt.Time).Seconds())
	if seconds < 0 {
		return ""
	}
	return strconv.FormatInt(seconds, 10)
}
