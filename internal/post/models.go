package post

import "time"

const MaxContentChars = 500

type Post struct {
	ID             string         `json:"id"`
	AuthorID       string         `json:"author_id"`
	Content        string         `json:"content"`
	Category       Category       `json:"category"`
	CategorySource CategorySource `json:"category_source"`
	Lat            float64        `json:"lat"`
	Lng            float64        `json:"lng"`
	HasLocation    bool           `json:"has_location"`
	City           string         `json:"city"`
	Address        string         `json:"address,omitempty"`
	HelpfulCount   int            `json:"helpful_count"`
	CommentCount   int            `json:"comment_count"`
	IsEdited       bool           `json:"is_edited"`
	Author         *Author        `json:"author,omitempty"`
	Media          []Media        `json:"media,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	ExpiresAt      *time.Time     `json:"expires_at,omitempty"`
}

// Author is the joined subset of the user row shown on feed cards.
type Author struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
	Level     string `json:"level"`
	Points    int    `json:"points"`
}

type Media struct {
	ID        string `json:"id"`
	PostID    string `json:"post_id"`
	Type      string `json:"type"`
	URL       string `json:"url"`
	Thumbnail string `json:"thumbnail,omitempty"`
	SortOrder int    `json:"sort_order"`
}

type Comment struct {
	ID           string    `json:"id"`
	PostID       string    `json:"post_id"`
	AuthorID     string    `json:"author_id"`
	ParentID     string    `json:"parent_id,omitempty"`
	Content      string    `json:"content"`
	HelpfulCount int       `json:"helpful_count"`
	CreatedAt    time.Time `json:"created_at"`
}

type CreateRequest struct {
	AuthorID    string     `json:"author_id"`
	Content     string     `json:"content"`
	Category    Category   `json:"category"`
	Lat         float64    `json:"lat"`
	Lng         float64    `json:"lng"`
	HasLocation bool       `json:"has_location"`
	City        string     `json:"city"`
	Address     string     `json:"address"`
	ExpiresAt   *time.Time `json:"expires_at"`
}

type UpdateRequest struct {
	AuthorID string   `json:"author_id"`
	Content  string   `json:"content"`
	Category Category `json:"category"`
}
