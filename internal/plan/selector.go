package plan

import (
	"strings"
)

//nolint:gochecknoglobals // keyword tables.
var (
	compoundKeywords = []string{"Press", "Pull", "Row", "Squat", "Deadlift", "Dip"}
	circuitKeywords  = []string{
		"Push-ups", "Pull-ups", "Squats", "Burpees", "Mountain Climbers", "Jump Squats", "High Knees", "Plank",
		"Jumping Jacks",
	}
	strengthKeywords = []string{
		"Deadlifts", "Squats", "Bench Press", "Military Press", "Barbell Rows", "Pull-ups", "Overhead Press",
	}
)

func containsAny(name string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(name, k) {
			return true
		}
	}
	return false
}

// IsCompound reports whether the exercise is a multi-joint movement.
func IsCompound(name string) bool {
	return containsAny(name, compoundKeywords)
}

// IsCircuitFriendly reports whether the exercise suits fast bodyweight circuits.
func IsCircuitFriendly(name string) bool {
	return containsAny(name, circuitKeywords)
}

// IsHeavyCompound reports whether the exercise is a classic heavy strength lift.
func IsHeavyCompound(name string) bool {
	return containsAny(name, strengthKeywords)
}

// partition splits exercises by classify while keeping catalog order in both halves.
func partition(exercises []string, classify func(string) bool) ([]string, []string) {
	var matched, rest []string
	for _, e := range exercises {
		if classify(e) {
			matched = append(matched, e)
		} else {
			rest = append(rest, e)
		}
	}
	return matched, rest
}

// Select picks count exercises for group using the heuristic of style.
//
// The result has min(count, len(catalog[group])) distinct entries. Unknown groups and non-positive counts yield an
// empty slice. Unknown styles fall back to [Strength].
func Select(group MuscleGroup, count int, style Style) []string {
	exercises := catalog[group]
	if count <= 0 || len(exercises) == 0 {
		return []string{}
	}

	var ordered []string
	switch style {
	case Hypertrophy:
		ordered = hypertrophyOrder(exercises, count)
	case Circuit:
		preferred, others := partition(exercises, IsCircuitFriendly)
		ordered = append(preferred, others...)
	case Strength:
		fallthrough
	default:
		preferred, others := partition(exercises, IsHeavyCompound)
		ordered = append(preferred, others...)
	}

	n := min(count, len(ordered))
	return append(make([]string, 0, n), ordered[:n]...)
}

// hypertrophyOrder leads with up to half the count as compound lifts, then isolation work. When isolation runs out,
// the remaining slots continue the compound list after as many entries as have been picked so far.
func hypertrophyOrder(exercises []string, count int) []string {
	compound, isolation := partition(exercises, IsCompound)
	lead := min(max(1, count/2), len(compound)) //nolint:mnd // half of the exercises are compound.

	ordered := make([]string, 0, len(exercises))
	ordered = append(ordered, compound[:lead]...)
	ordered = append(ordered, isolation...)
	ordered = append(ordered, compound[min(len(compound), lead+len(isolation)):]...)
	return ordered
}
