package gamification

import "time"

// Point awards for community actions.
const (
	PointsPostCreated     = 10
	PointsHelpfulReceived = 5
	PointsPinConfirmed    = 2
)

type LeaderboardEntry struct {
	Rank      int    `json:"rank"`
	UserID    string `json:"user_id"`
	Name      string `json:"name"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
	Points    int    `json:"points"`
	Level     Level  `json:"level"`
	PostCount int    `json:"post_count"`
}

type LeaderboardStats struct {
	TotalUsers int `json:"total_users"`
	TotalPosts int `json:"total_posts"`
}

type Badge struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Description      string     `json:"description"`
	Icon             string     `json:"icon"`
	RequirementType  string     `json:"requirement_type"`
	RequirementValue int        `json:"requirement_value"`
	EarnedAt         *time.Time `json:"earned_at,omitempty"`
}
