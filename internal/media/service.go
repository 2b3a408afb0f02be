package media

import (
	"context"
	"errors"
	"strings"
	"time"

	"backend-gigboard/internal/db"
	"backend-gigboard/internal/post"

	"github.com/google/uuid"
)

const uploadURLTTL = 15 * time.Minute

type Service struct {
	db      db.Querier
	baseURL string
}

func NewService(db db.Querier, baseURL string) *Service {
	return &Service{db: db, baseURL: strings.TrimSuffix(baseURL, "/")}
}

// RegisterUpload records an object in the upload ledger and returns the URL
// the client should PUT the bytes to.
func (s *Service) RegisterUpload(ctx context.Context, userID, fileName, kind string) (Upload, error) {
	if !validMediaType(kind) {
		return Upload{}, errors.New("type must be IMAGE or VIDEO")
	}
	if fileName == "" {
		fileName = "upload"
	}

	up := Upload{
		ID:        uuid.NewString(),
		URL:       s.baseURL + "/" + fileName,
		ExpiresAt: time.Now().Add(uploadURLTTL),
	}
	_, err := s.db.Exec(ctx, `
		INSERT INTO media_uploads (id, user_id, url, kind)
		VALUES ($1,$2,$3,$4)
	`, up.ID, userID, up.URL, kind)
	if err != nil {
		return Upload{}, err
	}
	return up, nil
}

// Attach adds the items to a post in request order, continuing after any
// attachments the post already has.
func (s *Service) Attach(ctx context.Context, postID, authorID string, items []AttachItem) ([]post.Media, error) {
	if len(items) == 0 {
		return nil, errors.New("no attachments")
	}
	for _, item := range items {
		if !validMediaType(item.Type) {
			return nil, errors.New("type must be IMAGE or VIDEO")
		}
		if item.URL == "" {
			return nil, errors.New("url required")
		}
	}

	var owner string
	if err := s.db.QueryRow(ctx, `SELECT author_id FROM posts WHERE id=$1`, postID).Scan(&owner); err != nil {
		return nil, err
	}
	if owner != authorID {
		return nil, errors.New("cannot attach media to another user's post")
	}

	var next int
	err := s.db.QueryRow(ctx, `
		SELECT COALESCE(MAX(sort_order) + 1, 0) FROM post_media WHERE post_id=$1
	`, postID).Scan(&next)
	if err != nil {
		return nil, err
	}

	attached := make([]post.Media, 0, len(items))
	for i, item := range items {
		m := post.Media{
			ID:        uuid.NewString(),
			PostID:    postID,
			Type:      item.Type,
			URL:       item.URL,
			Thumbnail: item.Thumbnail,
			SortOrder: next + i,
		}
		_, err := s.db.Exec(ctx, `
			INSERT INTO post_media (id, post_id, type, url, thumbnail, width, height, duration, sort_order)
			VALUES ($1,$2,$3,$4, NULLIF($5, ''), NULLIF($6, 0), NULLIF($7, 0), NULLIF($8, 0), $9)
		`, m.ID, m.PostID, m.Type, m.URL, m.Thumbnail, item.Width, item.Height, item.Duration, m.SortOrder)
		if err != nil {
			return nil, err
		}
		attached = append(attached, m)
	}
	return attached, nil
}
