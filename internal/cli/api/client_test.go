package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/shopd-dev/shopd/internal/cli/session"
	"github.com/shopd-dev/shopd/internal/cli/tokenstore"
)

func newTestClient(baseURL string) (*Client, *session.Service, *tokenstore.Memory) {
	durable := tokenstore.NewMemory()
	store := tokenstore.New(durable, tokenstore.NewMemory(), zerolog.Nop())
	sessions := session.NewService(store, zerolog.Nop())
	return New(baseURL, sessions, zerolog.Nop()), sessions, durable
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client, _, durable := newTestClient(srv.URL)
	_ = durable.Set(tokenstore.KeyToken, "jwt-abc")

	if _, err := client.Get(context.Background(), "/api/category", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer jwt-abc" {
		t.Errorf("expected 'Bearer jwt-abc', got %q", gotAuth)
	}
}

func TestClient_NoTokenNoAuthHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client, _, _ := newTestClient(srv.URL)

	if _, err := client.Get(context.Background(), "/api/category", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("expected no Authorization header, got %q", gotAuth)
	}
}

func TestClient_ReturnsFullEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Custom", "yes")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	client, _, _ := newTestClient(srv.URL)
	params := url.Values{"page": []string{"2"}}

	resp, err := client.Get(context.Background(), "/api/products", params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Status != http.StatusCreated {
		t.Errorf("expected status 201, got %d", resp.Status)
	}
	if string(resp.Data) != `{"ok":true}` {
		t.Errorf("unexpected payload: %s", resp.Data)
	}
	if resp.Headers.Get("X-Custom") != "yes" {
		t.Error("expected response headers to be passed through")
	}
	if resp.Config.URL != "/api/products" || resp.Config.Method != http.MethodGet {
		t.Errorf("unexpected request config: %+v", resp.Config)
	}
	if resp.Config.Params.Get("page") != "2" {
		t.Errorf("expected params on config, got %+v", resp.Config.Params)
	}
}

func TestClient_SetsJSONContentTypeForWrites(t *testing.T) {
	var gotContentType, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client, _, _ := newTestClient(srv.URL)

	_, err := client.Post(context.Background(), "/api/category", map[string]string{"categoryName": "Laptops"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotContentType != "application/json" {
		t.Errorf("expected JSON content type, got %q", gotContentType)
	}
	if gotBody != `{"categoryName":"Laptops"}` {
		t.Errorf("unexpected body: %s", gotBody)
	}
}

// A 401 from any endpoint, here a plain category fetch with nothing
// login-related about it, tears the session down exactly once and redirects
// exactly once via the expiry handler.
func TestClient_UnauthorizedTearsDownSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"token expired"}`))
	}))
	defer srv.Close()

	client, sessions, durable := newTestClient(srv.URL)
	_ = durable.Set(tokenstore.KeyToken, "jwt-abc")
	_ = durable.Set(tokenstore.KeyUser, `{"email":"a@b.com","role":"user"}`)

	expiries := 0
	sessions.OnExpired(func() { expiries++ })

	_, err := client.Get(context.Background(), "/api/category", nil)

	var authErr *AuthExpiredError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected *AuthExpiredError, got %v", err)
	}
	if authErr.URL != "/api/category" || authErr.Method != http.MethodGet {
		t.Errorf("unexpected error descriptor: %+v", authErr)
	}

	if got := sessions.Token(); got != "" {
		t.Errorf("expected token cleared, got %q", got)
	}
	if sess := sessions.Current(); sess != nil {
		t.Errorf("expected stored user cleared, got %+v", sess)
	}
	if expiries != 1 {
		t.Errorf("expected exactly one expiry event, got %d", expiries)
	}
}

func TestClient_ServerErrorSurfacesStatusAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error":"duplicate category name"}`))
	}))
	defer srv.Close()

	client, sessions, durable := newTestClient(srv.URL)
	_ = durable.Set(tokenstore.KeyToken, "jwt-abc")

	_, err := client.Post(context.Background(), "/api/category", map[string]string{"categoryName": "Laptops"})

	var srvErr *ServerError
	if !errors.As(err, &srvErr) {
		t.Fatalf("expected *ServerError, got %v", err)
	}
	if srvErr.Status != http.StatusConflict {
		t.Errorf("expected status 409, got %d", srvErr.Status)
	}
	if !strings.Contains(string(srvErr.Body), "duplicate category name") {
		t.Errorf("expected body to be surfaced, got %s", srvErr.Body)
	}
	if srvErr.URL != "/api/category" || srvErr.Method != http.MethodPost {
		t.Errorf("unexpected request descriptor: %+v", srvErr)
	}

	// Non-401 failures must not touch the session.
	if got := sessions.Token(); got != "jwt-abc" {
		t.Errorf("expected token untouched, got %q", got)
	}
}

func TestClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	client, _, _ := newTestClient(srv.URL)

	_, err := client.Get(context.Background(), "/api/category", nil)

	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected *NetworkError, got %v", err)
	}
}

func TestClient_SetupError(t *testing.T) {
	client, _, _ := newTestClient("http://localhost:0")

	// A channel cannot be marshaled, so the request is never sent.
	_, err := client.Post(context.Background(), "/api/category", map[string]any{"bad": make(chan int)})

	var setupErr *SetupError
	if !errors.As(err, &setupErr) {
		t.Fatalf("expected *SetupError, got %v", err)
	}
}
