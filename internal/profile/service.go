package profile

import (
	"context"
	"errors"

	"backend-gigboard/internal/db"
	"backend-gigboard/internal/gamification"
)

type Service struct {
	db     db.Querier
	points *gamification.Service
}

func NewService(database db.Querier, points *gamification.Service) *Service {
	return &Service{db: database, points: points}
}

func (s *Service) Get(ctx context.Context, id string) (Profile, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, COALESCE(email, ''), COALESCE(phone, ''), name, username,
		       COALESCE(avatar_url, ''), COALESCE(bio, ''), points, level,
		       COALESCE(current_city, ''),
		       COALESCE(ST_Y(last_location::geometry), 0), COALESCE(ST_X(last_location::geometry), 0),
		       last_location IS NOT NULL, last_active_at, created_at, updated_at
		FROM users WHERE id=$1
	`, id)

	var p Profile
	if err := row.Scan(&p.ID, &p.Email, &p.Phone, &p.Name, &p.Username, &p.AvatarURL, &p.Bio,
		&p.Points, &p.Level, &p.CurrentCity, &p.Lat, &p.Lng, &p.HasLocation,
		&p.LastActiveAt, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return Profile{}, err
	}

	types, err := s.userTypes(ctx, id)
	if err != nil {
		return Profile{}, err
	}
	p.UserTypes = types

	if s.points != nil {
		badges, err := s.points.Badges(ctx, id)
		if err != nil {
			return Profile{}, err
		}
		p.Badges = badges
	}

	stats, err := s.stats(ctx, id, p.Points, p.Level)
	if err != nil {
		return Profile{}, err
	}
	p.Stats = stats
	return p, nil
}

func (s *Service) userTypes(ctx context.Context, id string) ([]string, error) {
	rows, err := s.db.Query(ctx, `
		SELECT type FROM user_types WHERE user_id=$1 ORDER BY type
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, nil
}

func (s *Service) stats(ctx context.Context, id string, points int, level string) (Stats, error) {
	row := s.db.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(helpful_count), 0)
		FROM posts WHERE author_id=$1
	`, id)

	var st Stats
	if err := row.Scan(&st.Posts, &st.HelpfulVotes); err != nil {
		return Stats{}, err
	}
	st.LevelProgress = gamification.Progress(points, gamification.Level(level))
	return st, nil
}

// Update merges non-empty patch fields into the stored row in a single
// read-modify-write round trip.
func (s *Service) Update(ctx context.Context, id string, patch UpdateRequest) (Profile, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return Profile{}, err
	}
	if patch.Name != "" {
		current.Name = patch.Name
	}
	if patch.Bio != "" {
		current.Bio = patch.Bio
	}
	if patch.AvatarURL != "" {
		current.AvatarURL = patch.AvatarURL
	}
	if patch.CurrentCity != "" {
		current.CurrentCity = patch.CurrentCity
	}

	_, err = s.db.Exec(ctx, `
		UPDATE users
		SET name=$2, bio=NULLIF($3, ''), avatar_url=NULLIF($4, ''), current_city=NULLIF($5, ''), updated_at=now()
		WHERE id=$1
	`, id, current.Name, current.Bio, current.AvatarURL, current.CurrentCity)
	if err != nil {
		return Profile{}, err
	}
	return current, nil
}

// SetTypes replaces the user's worker-type tag set.
func (s *Service) SetTypes(ctx context.Context, id string, types []string) error {
	if len(types) == 0 {
		return errors.New("select at least one worker type")
	}
	for _, t := range types {
		if !validUserType(t) {
			return errors.New("unknown worker type: " + t)
		}
	}

	if _, err := s.db.Exec(ctx, `DELETE FROM user_types WHERE user_id=$1`, id); err != nil {
		return err
	}
	for _, t := range types {
		if _, err := s.db.Exec(ctx, `
			INSERT INTO user_types (user_id, type) VALUES ($1,$2)
			ON CONFLICT DO NOTHING
		`, id, t); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) UpdatePresence(ctx context.Context, id string, req PresenceRequest) error {
	_, err := s.db.Exec(ctx, `
		UPDATE users
		SET last_location = ST_SetSRID(ST_MakePoint($2,$3), 4326)::geography,
		    current_city = NULLIF($4, ''),
		    last_active_at = now()
		WHERE id=$1
	`, id, req.Lng, req.Lat, req.City)
	return err
}
