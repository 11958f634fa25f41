package fitness

import (
	"fmt"
	"math"
)

const defaultMET = 5.5

// metValues are metabolic equivalents per training focus.
//
//nolint:gochecknoglobals // lookup table.
var metValues = map[string]float64{
	"Chest":     6.0,
	"Back":      6.0,
	"Shoulders": 5.5,
	"Arms":      5.5,
	"Legs":      7.0,
	"Core":      4.5,
	"Cardio":    8.0,
	"Rest":      0,
}

// CaloriesBurned estimates the energy used by a session with MET × weight × hours.
// Unknown focus names use a moderate default.
func CaloriesBurned(focus string, minutes int, weightKg float64) int {
	met, ok := metValues[focus]
	if !ok {
		met = defaultMET
	}
	hours := float64(minutes) / 60 //nolint:mnd // minutes per hour
	return int(math.Round(met * weightKg * hours))
}

// FormatDuration renders minutes as "45m", "1h" or "1h 30m".
func FormatDuration(minutes int) string {
	const minutesPerHour = 60
	if minutes < minutesPerHour {
		return fmt.Sprintf("%dm", minutes)
	}
	hours, rest := minutes/minutesPerHour, minutes%minutesPerHour
	if rest == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, rest)
}
