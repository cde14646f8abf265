package tokenstore

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func newTestStore() (*Store, *Memory, *Memory) {
	durable := NewMemory()
	ephemeral := NewMemory()
	return New(durable, ephemeral, zerolog.Nop()), durable, ephemeral
}

func TestStore_SaveWritesAllFields(t *testing.T) {
	store, durable, _ := newTestStore()

	creds := Credentials{
		Token:        "jwt-abc",
		RefreshToken: "refresh-abc",
		User:         `{"email":"a@b.com","role":"admin"}`,
		ExpiresIn:    "3600",
	}
	if err := store.Save(ScopeDurable, creds); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for key, want := range map[string]string{
		KeyToken:        creds.Token,
		KeyRefreshToken: creds.RefreshToken,
		KeyUser:         creds.User,
		KeyExpiresIn:    creds.ExpiresIn,
	} {
		got, _ := durable.Get(key)
		if got != want {
			t.Errorf("key %q: expected %q, got %q", key, want, got)
		}
	}
}

func TestStore_ReadPrefersDurableScope(t *testing.T) {
	store, _, _ := newTestStore()

	if err := store.Save(ScopeDurable, Credentials{Token: "durable-token"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Save(ScopeEphemeral, Credentials{Token: "ephemeral-token"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := store.Read(); got != "durable-token" {
		t.Errorf("expected durable token to win, got %q", got)
	}
}

func TestStore_ReadFallsBackToEphemeralScope(t *testing.T) {
	store, _, _ := newTestStore()

	if err := store.Save(ScopeEphemeral, Credentials{Token: "ephemeral-token"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := store.Read(); got != "ephemeral-token" {
		t.Errorf("expected ephemeral token, got %q", got)
	}
}

func TestStore_ReadEmptyWhenUnauthenticated(t *testing.T) {
	store, _, _ := newTestStore()

	if got := store.Read(); got != "" {
		t.Errorf("expected empty token, got %q", got)
	}
	if got := store.ReadUser(); got != "" {
		t.Errorf("expected empty user, got %q", got)
	}
}

func TestStore_ClearRemovesBothScopes(t *testing.T) {
	tests := []struct {
		name  string
		scope Scope
	}{
		{name: "saved durable", scope: ScopeDurable},
		{name: "saved ephemeral", scope: ScopeEphemeral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, _, _ := newTestStore()
			creds := Credentials{Token: "jwt-abc", User: `{"email":"a@b.com"}`}
			if err := store.Save(tt.scope, creds); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			store.Clear()

			if got := store.Read(); got != "" {
				t.Errorf("expected empty token after clear, got %q", got)
			}
			if got := store.ReadUser(); got != "" {
				t.Errorf("expected empty user after clear, got %q", got)
			}
		})
	}
}

func TestStore_ClearIsIdempotent(t *testing.T) {
	store, _, _ := newTestStore()

	// Clearing an already-empty store must not panic or error.
	store.Clear()
	store.Clear()

	if got := store.Read(); got != "" {
		t.Errorf("expected empty token, got %q", got)
	}
}

func TestSessionFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	backend := NewSessionFile(path)

	if err := backend.Set(KeyToken, "jwt-abc"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := backend.Get(KeyToken)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "jwt-abc" {
		t.Errorf("expected 'jwt-abc', got %q", got)
	}

	if err := backend.Delete(KeyToken); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err = backend.Get(KeyToken)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "" {
		t.Errorf("expected empty value after delete, got %q", got)
	}
}

func TestSessionFile_DeleteMissingKeyIsNoop(t *testing.T) {
	backend := NewSessionFile(filepath.Join(t.TempDir(), "session.json"))

	if err := backend.Delete(KeyToken); err != nil {
		t.Fatalf("expected no error deleting missing key, got: %v", err)
	}
}
