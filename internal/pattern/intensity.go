// Package pattern rolls a baby's raw daily aggregates into the 0-4
// activity intensity shown on the pattern grid.
package pattern

import "github.com/charmbracelet/lipgloss"

// Totals is one day's raw aggregates. Pumping volume and photo count ride
// along for display but do not influence intensity; only the three rhythm
// signals (sleep, feeds, diapers) are scored.
type Totals struct {
	SleepMinutes int
	FeedCount    int
	DiaperCount  int
	PumpingOz    float64
	PhotoCount   int
}

// Calculate maps a day's totals to an intensity in 0..4. Zero means no
// rhythm data was recorded that day.
func Calculate(t Totals) int {
	if t.SleepMinutes == 0 && t.FeedCount == 0 && t.DiaperCount == 0 {
		return 0
	}

	// Weighted score out of 100. Sleep tops out at 720 min (12h),
	// feeds at 8/day, diapers at 6/day.
	var score float64
	if t.SleepMinutes > 0 {
		score += min(float64(t.SleepMinutes)/720, 1) * 40
	}
	if t.FeedCount > 0 {
		score += min(float64(t.FeedCount)/8, 1) * 30
	}
	if t.DiaperCount > 0 {
		score += min(float64(t.DiaperCount)/6, 1) * 30
	}

	switch {
	case score < 20:
		return 1
	case score < 40:
		return 2
	case score < 70:
		return 3
	default:
		return 4
	}
}

// Intensity palettes indexed 0-4, light and dark variants.
var (
	lightColors = [5]lipgloss.Color{
		"#EEEEF0", // 0 - no data
		"#C0C0C4", // 1 - low
		"#808088", // 2 - medium-low
		"#44444C", // 3 - medium-high
		"#000000", // 4 - high
	}
	darkColors = [5]lipgloss.Color{
		"#1C1C1E",
		"#3A3A3C",
		"#6C6C70",
		"#AEAEB2",
		"#FFFFFF",
	}
)

// Color returns the palette entry for an intensity, clamped into [0, 4].
func Color(intensity int, dark bool) lipgloss.Color {
	if intensity < 0 {
		intensity = 0
	}
	if intensity > 4 {
		intensity = 4
	}
	if dark {
		return darkColors[intensity]
	}
	return lightColors[intensity]
}

func Label(intensity int) string {
	switch intensity {
	case 0:
		return "No data"
	case 1:
		return "Light"
	case 2:
		return "Moderate"
	case 3:
		return "Active"
	case 4:
		return "Very active"
	default:
		return "Unknown"
	}
}
