package mission

import (
	"fmt"
	"math"
)

// TimerLevel selects the countdown colour.
type TimerLevel int

const (
	TimerNormal TimerLevel = iota
	TimerWarning
	TimerCritical
)

// FormatTimer renders seconds as m:ss, rounding up partial seconds.
func FormatTimer(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(math.Ceil(seconds))
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// LevelFor returns the urgency of the remaining time.
func LevelFor(seconds float64) TimerLevel {
	switch {
	case seconds <= 30:
		return TimerCritical
	case seconds <= 60:
		return TimerWarning
	default:
		return TimerNormal
	}
}
