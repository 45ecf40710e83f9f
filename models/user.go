package models

// User is a bot user. Created on first interaction and refreshed
// whenever the display name changes; there is no deletion path.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}
