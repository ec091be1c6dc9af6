// Package schedule derives age-banded sleep targets and wake-window
// advisories from a baby's most recent sleep log.
package schedule

import (
	"fmt"
	"math"
	"time"
)

// Range is an inclusive min/max bound.
type Range struct {
	Min float64
	Max float64
}

// Target holds the recommended sleep amounts for one age band.
// TotalHours and NightSleep are hours, WakeWindow is minutes,
// Naps is a count per day.
type Target struct {
	TotalHours Range
	Naps       Range
	WakeWindow Range
	NightSleep Range
}

// Targets returns the sleep targets for a baby's age in whole months.
// The bands and bounds are fixed literals; this is a lookup table, not a
// formula.
func Targets(ageMonths int) Target {
	switch {
	case ageMonths < 1:
		return Target{
			TotalHours: Range{14, 17},
			Naps:       Range{5, 6},
			WakeWindow: Range{45, 60},
			NightSleep: Range{8, 10},
		}
	case ageMonths < 3:
		return Target{
			TotalHours: Range{14, 16},
			Naps:       Range{4, 5},
			WakeWindow: Range{60, 90},
			NightSleep: Range{9, 10},
		}
	case ageMonths < 5:
		return Target{
			TotalHours: Range{13, 15},
			Naps:       Range{3, 4},
			WakeWindow: Range{75, 120},
			NightSleep: Range{10, 11},
		}
	case ageMonths < 8:
		return Target{
			TotalHours: Range{13, 15},
			Naps:       Range{2, 3},
			WakeWindow: Range{120, 180},
			NightSleep: Range{10, 11},
		}
	case ageMonths < 13:
		return Target{
			TotalHours: Range{12, 14},
			Naps:       Range{2, 2},
			WakeWindow: Range{150, 210},
			NightSleep: Range{11, 12},
		}
	case ageMonths < 18:
		return Target{
			TotalHours: Range{12, 14},
			Naps:       Range{1, 2},
			WakeWindow: Range{240, 360},
			NightSleep: Range{11, 12},
		}
	default:
		return Target{
			TotalHours: Range{11, 14},
			Naps:       Range{1, 1},
			WakeWindow: Range{300, 420},
			NightSleep: Range{11, 12},
		}
	}
}

// WakeWindow is the advisory state of the current awake stretch.
type WakeWindow struct {
	Progress         float64 // 0..1 of the average window
	MinutesAwake     int
	MinutesRemaining float64 // fractional; odd bands have a half-minute average
	IsOverdue        bool    // past the band's max window
}

// WakeWindowProgress computes how far into the age-appropriate wake window
// the baby is, measured from the last wake time to now. Remaining time is
// kept fractional and rounded only at the display boundary.
func WakeWindowProgress(lastWake time.Time, ageMonths int, now time.Time) WakeWindow {
	t := Targets(ageMonths)
	avg := (t.WakeWindow.Min + t.WakeWindow.Max) / 2

	minutesAwake := int(now.Sub(lastWake).Minutes())
	remaining := avg - float64(minutesAwake)
	if remaining < 0 {
		remaining = 0
	}
	progress := float64(minutesAwake) / avg
	if progress > 1 {
		progress = 1
	}

	return WakeWindow{
		Progress:         progress,
		MinutesAwake:     minutesAwake,
		MinutesRemaining: remaining,
		IsOverdue:        float64(minutesAwake) > t.WakeWindow.Max,
	}
}

// NextNapTime predicts when the next nap should start: last wake time plus
// the band's average wake window.
func NextNapTime(lastWake time.Time, ageMonths int) time.Time {
	t := Targets(ageMonths)
	avg := (t.WakeWindow.Min + t.WakeWindow.Max) / 2
	return lastWake.Add(time.Duration(avg * float64(time.Minute)))
}

// FormatWakeWindowStatus renders the advisory line shown under the wake
// window card.
func FormatWakeWindowStatus(lastWake time.Time, ageMonths int, now time.Time) string {
	w := WakeWindowProgress(lastWake, ageMonths, now)
	if w.IsOverdue {
		return "Past nap time"
	}
	rem := int(math.Round(w.MinutesRemaining))
	if rem < 60 {
		return fmt.Sprintf("%dm until nap", rem)
	}
	return fmt.Sprintf("%dh %dm until nap", rem/60, rem%60)
}

// AgeInMonths returns the number of whole months between birth and now.
func AgeInMonths(birthDate, now time.Time) int {
	months := (now.Year()-birthDate.Year())*12 + int(now.Month()) - int(birthDate.Month())
	if now.Day() < birthDate.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}
