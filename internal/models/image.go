package models

// Image is one hosted image attached to a user profile. Link is the public
// URL on the remote host; DeleteHash is the opaque token the host requires
// to delete the image and must never reach API clients.
type Image struct {
	ID         int    `json:"id"`
	Link       string `json:"link"`
	DeleteHash string `json:"-"` // deletion credential, server-side only
}
