package media

import "time"

const (
	TypeImage = "IMAGE"
	TypeVideo = "VIDEO"
)

func validMediaType(t string) bool {
	return t == TypeImage || t == TypeVideo
}

// Upload is a registered object in the media store, not yet attached to a
// post.
type Upload struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AttachItem describes one attachment to add to a post. SortOrder follows the
// position in the request list.
type AttachItem struct {
	Type      string `json:"type"`
	URL       string `json:"url"`
	Thumbnail string `json:"thumbnail"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Duration  int    `json:"duration"`
}
