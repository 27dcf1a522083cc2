// models/user.go
package models

// User represents a platform user.
type User struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Avatar     string   `json:"avatar"`
	Credits    float64  `json:"credits"`
	Interests  []string `json:"interests,omitempty"`
	Phone      string   `json:"phone,omitempty"`
	JoinedDate string   `json:"joinedDate,omitempty"`
}

// Session is the persisted login state: an opaque bearer token plus the
// cached user it belongs to.
type Session struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// ActivityEntry is a row from the user's activity history.
type ActivityEntry struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Message   string `json:"message"`
	CreatedAt string `json:"createdAt"`
}
