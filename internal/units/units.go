// Package units provides speed unit conversion and display labels.
package units

// KMPH selects kilometres per hour.
const KMPH = "kmph"

const mpsToKmph = 3.6

// ConvertSpeed converts a speed from meters per second to the target units.
// Unknown units return the input unchanged.
func ConvertSpeed(speedMPS float64, targetUnits string) float64 {
	switch targetUnits {
	case KMPH:
		return speedMPS * mpsToKmph
	default:
		return speedMPS
	}
}

// Label returns the display suffix for a unit, e.g. "km/h".
func Label(unit string) string {
	switch unit {
	case KMPH:
		return "km/h"
	default:
		return "m/s"
	}
}
