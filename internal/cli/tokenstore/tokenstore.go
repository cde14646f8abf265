// Package tokenstore persists authentication state for the CLI across two
// storage scopes: a durable scope backed by the OS keychain ("remember me")
// and an ephemeral scope that survives only the current login session.
package tokenstore

import "github.com/rs/zerolog"

// Storage keys shared by both scopes. The layout matches the storefront API
// web client so tooling can be pointed at the same account state.
const (
	KeyToken        = "token"
	KeyRefreshToken = "refreshToken"
	KeyUser         = "user"
	KeyExpiresIn    = "expiresIn"
)

// Scope selects which backend a save targets. The caller chooses the scope
// explicitly (login's --remember flag); it is never auto-detected.
type Scope int

const (
	// ScopeDurable persists across machine restarts.
	ScopeDurable Scope = iota
	// ScopeEphemeral lasts for the current session only.
	ScopeEphemeral
)

// Backend is a flat key/value store for one storage scope. Get returns an
// empty string for a missing key; errors are reserved for real storage
// failures. This allows mocking the keyring in tests.
type Backend interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

// Credentials is the full set of fields written on login.
type Credentials struct {
	Token        string
	RefreshToken string
	User         string // JSON-serialized stored user
	ExpiresIn    string
}

// Store coordinates the durable and ephemeral scopes.
type Store struct {
	durable   Backend
	ephemeral Backend
	logger    zerolog.Logger
}

// New creates a store over the given backends.
func New(durable, ephemeral Backend, logger zerolog.Logger) *Store {
	return &Store{durable: durable, ephemeral: ephemeral, logger: logger}
}

// NewDefault creates the production store: OS keyring for the durable scope
// and a temp-dir session file for the ephemeral scope.
func NewDefault(logger zerolog.Logger) *Store {
	return New(NewKeyring(), NewSessionFile(""), logger)
}

func (s *Store) backend(scope Scope) Backend {
	if scope == ScopeDurable {
		return s.durable
	}
	return s.ephemeral
}

// Save writes all credential fields to the chosen scope.
func (s *Store) Save(scope Scope, creds Credentials) error {
	b := s.backend(scope)
	fields := map[string]string{
		KeyToken:        creds.Token,
		KeyRefreshToken: creds.RefreshToken,
		KeyUser:         creds.User,
		KeyExpiresIn:    creds.ExpiresIn,
	}
	for _, key := range []string{KeyToken, KeyRefreshToken, KeyUser, KeyExpiresIn} {
		if err := b.Set(key, fields[key]); err != nil {
			return err
		}
	}
	return nil
}

// Read returns the stored token, checking the durable scope before the
// ephemeral one. The first non-empty token wins. Absence is an empty string,
// never an error.
func (s *Store) Read() string {
	return s.read(KeyToken)
}

// ReadRefreshToken returns the stored refresh token, durable scope first.
func (s *Store) ReadRefreshToken() string {
	return s.read(KeyRefreshToken)
}

// ReadUser returns the serialized stored user, durable scope first.
func (s *Store) ReadUser() string {
	return s.read(KeyUser)
}

func (s *Store) read(key string) string {
	for _, b := range []Backend{s.durable, s.ephemeral} {
		value, err := b.Get(key)
		if err != nil {
			// Treat a broken backend as absence; callers only care
			// whether a credential is available.
			s.logger.Debug().Str("key", key).Err(err).Msg("token store read failed")
			continue
		}
		if value != "" {
			return value
		}
	}
	return ""
}

// Clear removes every credential field from both scopes. It is idempotent
// and never fails: a key that is already gone is a success.
func (s *Store) Clear() {
	for _, b := range []Backend{s.durable, s.ephemeral} {
		for _, key := range []string{KeyToken, KeyRefreshToken, KeyUser, KeyExpiresIn} {
			if err := b.Delete(key); err != nil {
				s.logger.Debug().Str("key", key).Err(err).Msg("token store delete failed")
			}
		}
	}
}
