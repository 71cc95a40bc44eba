package session

import "encoding/json"

// Session is the authenticated identity and credential held for one login.
// Role is kept as the raw claim string; the guard validates it before any
// access decision.
type Session struct {
	Token       string `json:"token"`
	Role        string `json:"userRole"`
	Email       string `json:"userEmail"`
	DisplayName string `json:"username"`
}

// UserBlob renders the combined JSON object stored alongside the
// individual fields. Field names are part of the storage contract and are
// read directly by other parts of the application.
func (s Session) UserBlob() string {
	b, err := json.Marshal(s)
	if err != nil {
		return "{}"
	}
	return string(b)
}
