package gamification

// Level is a plain string so values travel through pgx and JSON without
// conversion.
type Level = string

const (
	LevelBronze   Level = "BRONZE"
	LevelSilver   Level = "SILVER"
	LevelGold     Level = "GOLD"
	LevelPlatinum Level = "PLATINUM"
)

// ladder holds the level breakpoints in ascending order. A user's level is
// the highest band whose minimum does not exceed their points.
var ladder = []struct {
	Level Level
	Min   int
}{
	{LevelBronze, 0},
	{LevelSilver, 500},
	{LevelGold, 2000},
	{LevelPlatinum, 5000},
}

func LevelForPoints(points int) Level {
	level := LevelBronze
	for _, band := range ladder {
		if points >= band.Min {
			level = band.Level
		}
	}
	return level
}

func levelMin(level Level) int {
	for _, band := range ladder {
		if band.Level == level {
			return band.Min
		}
	}
	return 0
}

// NextLevelMin returns the minimum points of the level above the given one.
// The second return is false for the terminal level.
func NextLevelMin(level Level) (int, bool) {
	for i, band := range ladder {
		if band.Level == level && i+1 < len(ladder) {
			return ladder[i+1].Min, true
		}
	}
	return 0, false
}

// Progress reports progress toward the next level as a percentage in [0,100].
// The terminal level always reports 100.
func Progress(points int, level Level) float64 {
	nextMin, ok := NextLevelMin(level)
	if !ok {
		return 100
	}
	min := levelMin(level)
	p := float64(points-min) / float64(nextMin-min) * 100
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
