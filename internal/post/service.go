package post

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"

	"backend-gigboard/internal/db"
	"backend-gigboard/internal/gamification"
	"backend-gigboard/internal/geocode"
	"backend-gigboard/internal/stream"

	"github.com/google/uuid"
)

type Service struct {
	db       db.Querier
	geocoder *geocode.Client
	points   *gamification.Service
	hub      *stream.Hub
}

func NewService(db db.Querier, geocoder *geocode.Client, points *gamification.Service, hub *stream.Hub) *Service {
	return &Service{db: db, geocoder: geocoder, points: points, hub: hub}
}

// resolveCategory applies the auto/manual rules: an absent or GENERAL
// selection, or one that agrees with detection, keeps the classifier's result
// as AUTO; only a different non-GENERAL choice is MANUAL.
func resolveCategory(content string, selected Category) (Category, CategorySource) {
	detected := Detect(content)
	if selected == "" || selected == CategoryGeneral || selected == detected {
		return detected, SourceAuto
	}
	return selected, SourceManual
}

func (s *Service) CreatePost(ctx context.Context, req CreateRequest) (Post, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return Post{}, errors.New("content required")
	}
	if len([]rune(content)) > MaxContentChars {
		return Post{}, errors.New("content exceeds 500 characters")
	}
	if req.City == "" {
		return Post{}, errors.New("city required")
	}
	if req.Category != "" && !ValidCategory(req.Category) {
		return Post{}, errors.New("unknown category")
	}

	p := Post{
		ID:          uuid.NewString(),
		AuthorID:    req.AuthorID,
		Content:     content,
		Lat:         req.Lat,
		Lng:         req.Lng,
		HasLocation: req.HasLocation,
		City:        req.City,
		Address:     req.Address,
		ExpiresAt:   req.ExpiresAt,
	}
	p.Category, p.CategorySource = resolveCategory(content, req.Category)

	if p.HasLocation && p.Address == "" {
		p.Address = s.geocoder.Reverse(ctx, p.Lat, p.Lng)
	}

	if p.HasLocation {
		row := s.db.QueryRow(ctx, `
			INSERT INTO posts (id, author_id, content, category, category_source, location, city, address, expires_at)
			VALUES ($1,$2,$3,$4,$5, ST_SetSRID(ST_MakePoint($6,$7), 4326)::geography, $8, $9, $10)
			RETURNING created_at, updated_at
		`, p.ID, p.AuthorID, p.Content, p.Category, p.CategorySource, p.Lng, p.Lat, p.City, p.Address, p.ExpiresAt)
		if err := row.Scan(&p.CreatedAt, &p.UpdatedAt); err != nil {
			return Post{}, err
		}

		_, err := s.db.Exec(ctx, `
			INSERT INTO pins (id, post_id, category, location, city)
			VALUES ($1,$2,$3, ST_SetSRID(ST_MakePoint($4,$5), 4326)::geography, $6)
		`, uuid.NewString(), p.ID, p.Category, p.Lng, p.Lat, p.City)
		if err != nil {
			return Post{}, err
		}
	} else {
		row := s.db.QueryRow(ctx, `
			INSERT INTO posts (id, author_id, content, category, category_source, city, address, expires_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
			RETURNING created_at, updated_at
		`, p.ID, p.AuthorID, p.Content, p.Category, p.CategorySource, p.City, p.Address, p.ExpiresAt)
		if err := row.Scan(&p.CreatedAt, &p.UpdatedAt); err != nil {
			return Post{}, err
		}
	}

	if s.points != nil {
		if _, _, err := s.points.AwardPoints(ctx, p.AuthorID, gamification.PointsPostCreated); err != nil {
			log.Printf("award points for user %s failed: %v", p.AuthorID, err)
		} else if err := s.points.EvaluateBadges(ctx, p.AuthorID); err != nil {
			log.Printf("badge evaluation for user %s failed: %v", p.AuthorID, err)
		}
	}

	if s.hub != nil {
		payload, _ := json.Marshal(p)
		s.hub.Broadcast(p.City, payload)
	}
	return p, nil
}

// Feed returns the newest unexpired posts with joined author and media,
// newest first.
func (s *Service) Feed(ctx context.Context, city string, limit int) ([]Post, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(ctx, `
		SELECT p.id, p.author_id, p.content, p.category, p.category_source,
		       COALESCE(ST_Y(p.location::geometry), 0), COALESCE(ST_X(p.location::geometry), 0),
		       p.location IS NOT NULL,
		       p.city, COALESCE(p.address, ''), p.helpful_count, p.comment_count, p.is_edited,
		       p.created_at, p.updated_at, p.expires_at,
		       u.id, u.name, u.username, COALESCE(u.avatar_url, ''), u.level, u.points
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE (p.expires_at IS NULL OR p.expires_at > now())
		  AND ($1 = '' OR p.city = $1)
		ORDER BY p.created_at DESC
		LIMIT $2
	`, city, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []Post
	var ids []string
	for rows.Next() {
		var p Post
		var a Author
		if err := rows.Scan(&p.ID, &p.AuthorID, &p.Content, &p.Category, &p.CategorySource,
			&p.Lat, &p.Lng, &p.HasLocation, &p.City, &p.Address, &p.HelpfulCount, &p.CommentCount,
			&p.IsEdited, &p.CreatedAt, &p.UpdatedAt, &p.ExpiresAt,
			&a.ID, &a.Name, &a.Username, &a.AvatarURL, &a.Level, &a.Points); err != nil {
			return nil, err
		}
		p.Author = &a
		ids = append(ids, p.ID)
		posts = append(posts, p)
	}

	media, err := s.loadMedia(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		posts[i].Media = media[posts[i].ID]
	}
	return posts, nil
}

func (s *Service) loadMedia(ctx context.Context, postIDs []string) (map[string][]Media, error) {
	if len(postIDs) == 0 {
		return map[string][]Media{}, nil
	}
	rows, err := s.db.Query(ctx, `
		SELECT id, post_id, type, url, COALESCE(thumbnail, ''), sort_order
		FROM post_media WHERE post_id = ANY($1)
		ORDER BY sort_order
	`, postIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	media := map[string][]Media{}
	for rows.Next() {
		var m Media
		if err := rows.Scan(&m.ID, &m.PostID, &m.Type, &m.URL, &m.Thumbnail, &m.SortOrder); err != nil {
			return nil, err
		}
		media[m.PostID] = append(media[m.PostID], m)
	}
	return media, nil
}

// UpdatePost edits an author's own post, re-running the classifier under the
// same auto/manual rules and flagging the post as edited.
func (s *Service) UpdatePost(ctx context.Context, id string, req UpdateRequest) (Post, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return Post{}, errors.New("content required")
	}
	if len([]rune(content)) > MaxContentChars {
		return Post{}, errors.New("content exceeds 500 characters")
	}
	if req.Category != "" && !ValidCategory(req.Category) {
		return Post{}, errors.New("unknown category")
	}

	category, source := resolveCategory(content, req.Category)

	row := s.db.QueryRow(ctx, `
		UPDATE posts
		SET content=$3, category=$4, category_source=$5, is_edited=TRUE, updated_at=now()
		WHERE id=$1 AND author_id=$2
		RETURNING id, author_id, content, category, category_source, city, COALESCE(address, ''),
		          helpful_count, comment_count, is_edited, created_at, updated_at
	`, id, req.AuthorID, content, category, source)

	var p Post
	if err := row.Scan(&p.ID, &p.AuthorID, &p.Content, &p.Category, &p.CategorySource, &p.City,
		&p.Address, &p.HelpfulCount, &p.CommentCount, &p.IsEdited, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return Post{}, err
	}
	return p, nil
}

// MarkHelpful bumps the helpful counter and awards points to the author.
func (s *Service) MarkHelpful(ctx context.Context, id string) (int, error) {
	row := s.db.QueryRow(ctx, `
		UPDATE posts SET helpful_count = helpful_count + 1
		WHERE id=$1
		RETURNING author_id, helpful_count
	`, id)

	var authorID string
	var count int
	if err := row.Scan(&authorID, &count); err != nil {
		return 0, err
	}

	if s.points != nil {
		if _, _, err := s.points.AwardPoints(ctx, authorID, gamification.PointsHelpfulReceived); err != nil {
			log.Printf("award points for user %s failed: %v", authorID, err)
		} else if err := s.points.EvaluateBadges(ctx, authorID); err != nil {
			log.Printf("badge evaluation for user %s failed: %v", authorID, err)
		}
	}
	return count, nil
}

func (s *Service) AddComment(ctx context.Context, postID, authorID, parentID, content string) (Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return Comment{}, errors.New("content required")
	}

	comment := Comment{
		ID:       uuid.NewString(),
		PostID:   postID,
		AuthorID: authorID,
		ParentID: parentID,
	}
	comment.Content = content

	row := s.db.QueryRow(ctx, `
		INSERT INTO comments (id, post_id, author_id, parent_id, content)
		VALUES ($1,$2,$3, NULLIF($4, ''), $5)
		RETURNING created_at
	`, comment.ID, comment.PostID, comment.AuthorID, comment.ParentID, comment.Content)
	if err := row.Scan(&comment.CreatedAt); err != nil {
		return Comment{}, err
	}

	_, err := s.db.Exec(ctx, `
		UPDATE posts SET comment_count = comment_count + 1 WHERE id=$1
	`, postID)
	if err != nil {
		return Comment{}, err
	}
	return comment, nil
}

func (s *Service) Comments(ctx context.Context, postID string) ([]Comment, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, post_id, author_id, COALESCE(parent_id, ''), content, helpful_count, created_at
		FROM comments WHERE post_id=$1
		ORDER BY created_at
	`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []Comment
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.AuthorID, &c.ParentID, &c.Content, &c.HelpfulCount, &c.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, nil
}
