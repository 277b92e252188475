package models

// User is a registered profile. Images holds every image currently attached
// to the profile, in attach order.
type User struct {
	ID           int     `json:"id"`
	Username     string  `json:"username"`
	PasswordHash string  `json:"-"` // don’t expose hash
	Images       []Image `json:"images"`
}
