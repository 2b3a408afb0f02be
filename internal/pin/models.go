package pin

import "time"

// Pin is a map marker for a located post. Pins stay on the map while the
// backing post is unexpired and the pin has not been deactivated.
type Pin struct {
	ID                string     `json:"id"`
	PostID            string     `json:"post_id"`
	Category          string     `json:"category"`
	Lat               float64    `json:"lat"`
	Lng               float64    `json:"lng"`
	City              string     `json:"city"`
	IsActive          bool       `json:"is_active"`
	ConfirmationCount int        `json:"confirmation_count"`
	LastConfirmedAt   *time.Time `json:"last_confirmed_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`

	// DistanceKm is filled by nearby queries, relative to the query point.
	DistanceKm float64 `json:"distance_km,omitempty"`
}
