package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopd-dev/shopd/internal/cli/api"
)

// LoginRequest is the credential payload for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is what the backend issues on successful login. Role casing
// is not guaranteed; callers normalize before persisting.
type LoginResponse struct {
	Token    string `json:"token"`
	Role     string `json:"role"`
	ID       int    `json:"id"`
	FullName string `json:"fullName"`
}

// RegisterRequest creates a new customer account.
type RegisterRequest struct {
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Profile is the full account record returned by profile and register
// endpoints.
type Profile struct {
	ID       int    `json:"id"`
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	IsActive bool   `json:"isActive"`
}

// Users wraps the user endpoints.
type Users struct {
	client *api.Client
}

// NewUsers creates the user service.
func NewUsers(client *api.Client) *Users {
	return &Users{client: client}
}

// Login posts the credentials and returns the issued token and account
// metadata. Server rejections are translated into the backend's own failure
// message where one can be extracted from the response body.
func (u *Users) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	resp, err := u.client.Post(ctx, "/api/user/login", LoginRequest{Email: email, Password: password})
	if err != nil {
		var srvErr *api.ServerError
		if errors.As(err, &srvErr) {
			return nil, fmt.Errorf("login failed: %s", failureMessage(srvErr.Body))
		}
		return nil, err
	}

	var login LoginResponse
	if err := unwrap(resp.Data, &login); err != nil {
		return nil, err
	}
	return &login, nil
}

// Register creates an account and returns its profile.
func (u *Users) Register(ctx context.Context, req RegisterRequest) (*Profile, error) {
	resp, err := u.client.Post(ctx, "/api/user/register", req)
	if err != nil {
		return nil, err
	}

	var profile Profile
	if err := unwrap(resp.Data, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Profile fetches the authenticated user's account record.
func (u *Users) Profile(ctx context.Context) (*Profile, error) {
	resp, err := u.client.Get(ctx, "/api/user/profile", nil)
	if err != nil {
		return nil, err
	}

	var profile Profile
	if err := unwrap(resp.Data, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// failureMessage digs a human-readable message out of an error body. The
// backend is inconsistent: some endpoints return {error:{details}}, some
// {message}, some a raw string.
func failureMessage(body []byte) string {
	var payload struct {
		Error *struct {
			Details string `json:"details"`
		} `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &payload) == nil {
		if payload.Error != nil && payload.Error.Details != "" {
			return payload.Error.Details
		}
		if payload.Message != "" {
			return payload.Message
		}
	}

	var raw string
	if json.Unmarshal(body, &raw) == nil && raw != "" {
		return raw
	}
	if len(body) > 0 {
		return string(body)
	}
	return "invalid credentials"
}
