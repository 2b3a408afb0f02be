package profile

import (
	"time"

	"backend-gigboard/internal/gamification"
)

// Worker type tags a user can hold.
const (
	TypeRider     = "RIDER"
	TypeDriver    = "DRIVER"
	TypeChauffeur = "CHAUFFEUR"
)

func validUserType(t string) bool {
	return t == TypeRider || t == TypeDriver || t == TypeChauffeur
}

type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email,omitempty"`
	Phone        string     `json:"phone,omitempty"`
	Name         string     `json:"name"`
	Username     string     `json:"username"`
	AvatarURL    string     `json:"avatar_url,omitempty"`
	Bio          string     `json:"bio,omitempty"`
	Points       int        `json:"points"`
	Level        string     `json:"level"`
	CurrentCity  string     `json:"current_city,omitempty"`
	Lat          float64    `json:"lat"`
	Lng          float64    `json:"lng"`
	HasLocation  bool       `json:"has_location"`
	LastActiveAt *time.Time `json:"last_active_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Profile is the user row merged with its worker-type tags, earned badges,
// and activity stats.
type Profile struct {
	User
	UserTypes []string             `json:"user_types"`
	Badges    []gamification.Badge `json:"badges"`
	Stats     Stats                `json:"stats"`
}

type Stats struct {
	Posts         int     `json:"posts"`
	HelpfulVotes  int     `json:"helpful_votes"`
	LevelProgress float64 `json:"level_progress"`
}

type UpdateRequest struct {
	Name        string `json:"name"`
	Bio         string `json:"bio"`
	AvatarURL   string `json:"avatar_url"`
	CurrentCity string `json:"current_city"`
}

type PresenceRequest struct {
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	City string  `json:"city"`
}
