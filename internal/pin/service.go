package pin

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"backend-gigboard/internal/db"
	"backend-gigboard/internal/gamification"
	"backend-gigboard/internal/post"
	"backend-gigboard/internal/shared/geo"
	"backend-gigboard/internal/stream"
)

const (
	defaultRadiusKm = 5.0
	maxRadiusKm     = 100.0
)

type Service struct {
	db     db.Querier
	points *gamification.Service
	hub    *stream.Hub
}

func NewService(db db.Querier, points *gamification.Service, hub *stream.Hub) *Service {
	return &Service{db: db, points: points, hub: hub}
}

// Nearby returns active pins within radiusKm of the given point, closest
// first. Pins whose backing post has expired are excluded.
func (s *Service) Nearby(ctx context.Context, lat, lng, radiusKm float64, category string) ([]Pin, error) {
	if radiusKm <= 0 {
		radiusKm = defaultRadiusKm
	}
	if radiusKm > maxRadiusKm {
		return nil, errors.New("radius too large")
	}
	if category != "" && category != "ALL" && !post.ValidCategory(post.Category(category)) {
		return nil, errors.New("unknown category")
	}

	rows, err := s.db.Query(ctx, `
		SELECT pn.id, pn.post_id, pn.category,
		       ST_Y(pn.location::geometry), ST_X(pn.location::geometry),
		       pn.city, pn.is_active, pn.confirmation_count, pn.last_confirmed_at, pn.created_at
		FROM pins pn
		JOIN posts p ON p.id = pn.post_id
		WHERE pn.is_active
		  AND (p.expires_at IS NULL OR p.expires_at > now())
		  AND ST_DWithin(pn.location, ST_SetSRID(ST_MakePoint($1,$2), 4326)::geography, $3)
		  AND ($4 = '' OR $4 = 'ALL' OR pn.category = $4)
		ORDER BY ST_Distance(pn.location, ST_SetSRID(ST_MakePoint($1,$2), 4326)::geography)
	`, lng, lat, radiusKm*1000, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pins []Pin
	for rows.Next() {
		var p Pin
		if err := rows.Scan(&p.ID, &p.PostID, &p.Category, &p.Lat, &p.Lng, &p.City,
			&p.IsActive, &p.ConfirmationCount, &p.LastConfirmedAt, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.DistanceKm = geo.HaversineKm(lat, lng, p.Lat, p.Lng)
		pins = append(pins, p)
	}
	return pins, nil
}

// Confirm records a "still there" vote on a pin and awards points to the
// author of the backing post.
func (s *Service) Confirm(ctx context.Context, pinID string) (Pin, error) {
	row := s.db.QueryRow(ctx, `
		UPDATE pins pn
		SET confirmation_count = confirmation_count + 1, last_confirmed_at = now()
		FROM posts p
		WHERE pn.id=$1 AND p.id = pn.post_id AND pn.is_active
		RETURNING pn.id, pn.post_id, pn.category,
		          ST_Y(pn.location::geometry), ST_X(pn.location::geometry),
		          pn.city, pn.is_active, pn.confirmation_count, pn.last_confirmed_at, pn.created_at,
		          p.author_id
	`, pinID)

	var p Pin
	var authorID string
	if err := row.Scan(&p.ID, &p.PostID, &p.Category, &p.Lat, &p.Lng, &p.City,
		&p.IsActive, &p.ConfirmationCount, &p.LastConfirmedAt, &p.CreatedAt, &authorID); err != nil {
		return Pin{}, err
	}

	if s.points != nil {
		if _, _, err := s.points.AwardPoints(ctx, authorID, gamification.PointsPinConfirmed); err != nil {
			log.Printf("award points for user %s failed: %v", authorID, err)
		} else if err := s.points.EvaluateBadges(ctx, authorID); err != nil {
			log.Printf("badge evaluation for user %s failed: %v", authorID, err)
		}
	}

	if s.hub != nil {
		payload, _ := json.Marshal(confirmEvent{Type: "pin_confirmed", Pin: p})
		s.hub.Broadcast(p.City, payload)
	}
	return p, nil
}

// Deactivate takes a pin off the map without touching the post.
func (s *Service) Deactivate(ctx context.Context, pinID string) error {
	_, err := s.db.Exec(ctx, `UPDATE pins SET is_active=FALSE WHERE id=$1`, pinID)
	return err
}

type confirmEvent struct {
	Type string `json:"type"`
	Pin  Pin    `json:"pin"`
}
