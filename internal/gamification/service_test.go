package gamification

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
)

func TestAwardPoints(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`UPDATE users`).
		WithArgs("user-1", 10).
		WillReturnRows(pgxmock.NewRows([]string{"points", "level"}).AddRow(510, "SILVER"))

	svc := NewService(mock)
	points, level, err := svc.AwardPoints(context.Background(), "user-1", 10)
	if err != nil {
		t.Fatalf("award points: %v", err)
	}
	if points != 510 || level != LevelSilver {
		t.Fatalf("unexpected result: %d %s", points, level)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEvaluateAndListBadges(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectExec(`INSERT INTO user_badges`).
		WithArgs("user-1").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	svc := NewService(mock)
	if err := svc.EvaluateBadges(context.Background(), "user-1"); err != nil {
		t.Fatalf("evaluate badges: %v", err)
	}

	earnedAt := time.Now()
	mock.ExpectQuery(`SELECT b.id, b.name, b.description, b.icon`).
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "description", "icon", "requirement_type", "requirement_value", "earned_at"}).
			AddRow("badge-1", "Newcomer", "First post", "🌟", "POST_COUNT", 1, &earnedAt))

	badges, err := svc.Badges(context.Background(), "user-1")
	if err != nil || len(badges) != 1 {
		t.Fatalf("badges: %v", err)
	}
	if badges[0].Name != "Newcomer" {
		t.Fatalf("unexpected badge: %+v", badges[0])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestLeaderboardRanking(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT u.id, u.name, u.username`).
		WithArgs(50).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "username", "avatar_url", "points", "level", "post_count"}).
			AddRow("u-1", "Amir", "amir", "", 5200, "PLATINUM", 12).
			AddRow("u-2", "Lena", "lena", "", 750, "SILVER", 4))

	mock.ExpectQuery(`SELECT \(SELECT COUNT\(\*\) FROM users\)`).
		WillReturnRows(pgxmock.NewRows([]string{"total_users", "total_posts"}).AddRow(2, 16))

	svc := NewService(mock)
	entries, stats, err := svc.Leaderboard(context.Background(), 0)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(entries) != 2 || entries[0].Rank != 1 || entries[1].Rank != 2 {
		t.Fatalf("unexpected ranks: %+v", entries)
	}
	if stats.TotalUsers != 2 || stats.TotalPosts != 16 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
