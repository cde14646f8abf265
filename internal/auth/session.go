package auth

// SessionData represents the authenticated session context for a request
type SessionData struct {
	UserID int    `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}
