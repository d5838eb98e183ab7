package jddiff

import (
	"fmt"
	"math"
)

type Level int

const (
	LevelNone Level = iota
	LevelLow
	LevelMedium
	LevelHigh
)

const (
	NoCVText = "brak CV"

	highFit   = 70
	mediumFit = 40
)

// Badge is the fit indicator of one job.
type Badge struct {
	Text  string
	Level Level
}

// FitBadge never shows a percentage for a nil score.
func FitBadge(score *float64) Badge {
	if score == nil {
		return Badge{Text: NoCVText, Level: LevelNone}
	}

	v := *score
	text := fmt.Sprintf("%s%%", formatScore(v))
	switch {
	case v >= highFit:
		return Badge{Text: text, Level: LevelHigh}
	case v >= mediumFit:
		return Badge{Text: text, Level: LevelMedium}
	default:
		return Badge{Text: text, Level: LevelLow}
	}
}

func formatScore(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.1f", v)
}
