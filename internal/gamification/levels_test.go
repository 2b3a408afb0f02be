package gamification

import "testing"

func TestLevelForPoints(t *testing.T) {
	cases := []struct {
		points int
		want   Level
	}{
		{0, LevelBronze},
		{499, LevelBronze},
		{500, LevelSilver},
		{1999, LevelSilver},
		{2000, LevelGold},
		{4999, LevelGold},
		{5000, LevelPlatinum},
		{123456, LevelPlatinum},
	}
	for _, tc := range cases {
		if got := LevelForPoints(tc.points); got != tc.want {
			t.Fatalf("LevelForPoints(%d) = %s, want %s", tc.points, got, tc.want)
		}
	}
}

func TestProgressSilver(t *testing.T) {
	// 750 points in SILVER: (750-500)/(2000-500)*100 = 16.67
	p := Progress(750, LevelSilver)
	if p < 16.6 || p > 16.7 {
		t.Fatalf("unexpected progress: %v", p)
	}
}

func TestProgressPlatinumTerminal(t *testing.T) {
	for _, points := range []int{5000, 10000, 999999} {
		if p := Progress(points, LevelPlatinum); p != 100 {
			t.Fatalf("expected 100 for platinum, got %v", p)
		}
	}
}

func TestProgressClamped(t *testing.T) {
	for _, tc := range []struct {
		points int
		level  Level
	}{
		{0, LevelBronze},
		{499, LevelBronze},
		{500, LevelSilver},
		{1999, LevelSilver},
		{2000, LevelGold},
		{4999, LevelGold},
	} {
		p := Progress(tc.points, tc.level)
		if p < 0 || p > 100 {
			t.Fatalf("progress out of range for %d/%s: %v", tc.points, tc.level, p)
		}
	}
}

func TestNextLevelMin(t *testing.T) {
	next, ok := NextLevelMin(LevelBronze)
	if !ok || next != 500 {
		t.Fatalf("unexpected next for bronze: %d", next)
	}
	if _, ok := NextLevelMin(LevelPlatinum); ok {
		t.Fatalf("platinum should have no next level")
	}
}
