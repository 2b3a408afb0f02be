package session

import "time"

// Viewport is the map camera state mirrored for the client.
type Viewport struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Zoom    float64 `json:"zoom"`
	Bearing float64 `json:"bearing"`
	Pitch   float64 `json:"pitch"`
}

// DefaultViewport is the fixed initial camera applied whenever no saved UI
// state exists or its TTL has lapsed.
func DefaultViewport() Viewport {
	return Viewport{Lat: 45.4642, Lng: 9.19, Zoom: 12}
}

// UIState is the ephemeral per-user interface state. Last write wins and the
// whole object resets when its TTL lapses.
type UIState struct {
	SelectedCategory string          `json:"selected_category"`
	Viewport         Viewport        `json:"viewport"`
	SelectedPinID    string          `json:"selected_pin_id,omitempty"`
	ActiveTab        string          `json:"active_tab"`
	Modals           map[string]bool `json:"modals,omitempty"`
}

func DefaultUIState() UIState {
	return UIState{
		SelectedCategory: "ALL",
		Viewport:         DefaultViewport(),
		ActiveTab:        "feed",
	}
}

// Snapshot is the durable mirror of the authenticated user, restored at
// startup and reconciled against the database copy on the next login.
type Snapshot struct {
	UserID        string    `json:"user_id"`
	Name          string    `json:"name"`
	Username      string    `json:"username"`
	AvatarURL     string    `json:"avatar_url,omitempty"`
	Level         string    `json:"level"`
	Points        int       `json:"points"`
	CurrentCity   string    `json:"current_city,omitempty"`
	Authenticated bool      `json:"authenticated"`
	SavedAt       time.Time `json:"saved_at"`
}
