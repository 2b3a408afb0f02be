package gamification

import (
	"context"

	"backend-gigboard/internal/db"
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

// AwardPoints adds delta to a user's points and recomputes the level in the
// same statement so that level always matches the points band.
func (s *Service) AwardPoints(ctx context.Context, userID string, delta int) (int, Level, error) {
	row := s.db.QueryRow(ctx, `
		UPDATE users
		SET points = points + $2,
		    level = CASE
		        WHEN points + $2 >= 5000 THEN 'PLATINUM'
		        WHEN points + $2 >= 2000 THEN 'GOLD'
		        WHEN points + $2 >= 500 THEN 'SILVER'
		        ELSE 'BRONZE'
		    END,
		    updated_at = now()
		WHERE id = $1
		RETURNING points, level
	`, userID, delta)

	var points int
	var level Level
	if err := row.Scan(&points, &level); err != nil {
		return 0, "", err
	}
	return points, level, nil
}

// EvaluateBadges grants any badges whose requirement the user now satisfies.
// Already-earned badges are skipped via the unique constraint.
func (s *Service) EvaluateBadges(ctx context.Context, userID string) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO user_badges (user_id, badge_id)
		SELECT $1, b.id
		FROM badges b
		WHERE (b.requirement_type = 'POST_COUNT'
		       AND (SELECT COUNT(*) FROM posts WHERE author_id = $1) >= b.requirement_value)
		   OR (b.requirement_type = 'HELPFUL_COUNT'
		       AND (SELECT COALESCE(SUM(helpful_count), 0) FROM posts WHERE author_id = $1) >= b.requirement_value)
		ON CONFLICT DO NOTHING
	`, userID)
	return err
}

func (s *Service) Badges(ctx context.Context, userID string) ([]Badge, error) {
	rows, err := s.db.Query(ctx, `
		SELECT b.id, b.name, b.description, b.icon, b.requirement_type, b.requirement_value, ub.earned_at
		FROM user_badges ub
		JOIN badges b ON b.id = ub.badge_id
		WHERE ub.user_id = $1
		ORDER BY ub.earned_at
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var badges []Badge
	for rows.Next() {
		var b Badge
		if err := rows.Scan(&b.ID, &b.Name, &b.Description, &b.Icon, &b.RequirementType, &b.RequirementValue, &b.EarnedAt); err != nil {
			return nil, err
		}
		badges = append(badges, b)
	}
	return badges, nil
}

// Leaderboard returns the top users ordered by points with an explicit
// tie-break on earliest registration, then id, so ranks are deterministic.
func (s *Service) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, LeaderboardStats, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(ctx, `
		SELECT u.id, u.name, u.username, COALESCE(u.avatar_url, ''), u.points, u.level,
		       (SELECT COUNT(*) FROM posts p WHERE p.author_id = u.id)
		FROM users u
		ORDER BY u.points DESC, u.created_at ASC, u.id ASC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, LeaderboardStats{}, err
	}
	defer rows.Close()

	var entries []LeaderboardEntry
	for rows.Next() {
		var e LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.Name, &e.Username, &e.AvatarURL, &e.Points, &e.Level, &e.PostCount); err != nil {
			return nil, LeaderboardStats{}, err
		}
		e.Rank = len(entries) + 1
		entries = append(entries, e)
	}

	var stats LeaderboardStats
	row := s.db.QueryRow(ctx, `
		SELECT (SELECT COUNT(*) FROM users), (SELECT COUNT(*) FROM posts)
	`)
	if err := row.Scan(&stats.TotalUsers, &stats.TotalPosts); err != nil {
		return nil, LeaderboardStats{}, err
	}
	return entries, stats, nil
}
