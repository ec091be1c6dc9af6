// Package units converts between the canonical storage unit (ounces) and
// the user's display unit. All volumes are persisted in ounces; metric
// conversion happens only at the presentation boundary.
package units

import "fmt"

const ozToMl = 29.5735

func OzToMl(oz float64) float64 {
	return oz * ozToMl
}

func MlToOz(ml float64) float64 {
	return ml / ozToMl
}

// ToStorage converts a display value to the stored ounce value.
func ToStorage(value float64, metric bool) float64 {
	if metric {
		return MlToOz(value)
	}
	return value
}

// ToDisplay converts a stored ounce value to the display unit.
func ToDisplay(oz float64, metric bool) float64 {
	if metric {
		return OzToMl(oz)
	}
	return oz
}

// FormatVolume renders a stored ounce value in the display unit with one
// decimal place.
func FormatVolume(oz float64, metric bool) string {
	if metric {
		return fmt.Sprintf("%.1f ml", OzToMl(oz))
	}
	return fmt.Sprintf("%.1f oz", oz)
}

func VolumeUnit(metric bool) string {
	if metric {
		return "ml"
	}
	return "oz"
}
