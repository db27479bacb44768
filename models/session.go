package models

// Session is the identity snapshot taken at login time. Tokens never
// expire and there is no logout path, so a session lives for the
// process lifetime.
type Session struct {
	Token  string `json:"-"`
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}
