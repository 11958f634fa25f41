package plan

import (
	"strings"
)

const (
	recoveryNote = "Recovery day - light stretching or walking recommended"
)

//nolint:gochecknoglobals // static rule tables.
var (
	levelProfiles = map[Level]LevelProfile{
		Beginner:     {ExercisesPerDay: 4, RestDays: 2},
		Intermediate: {ExercisesPerDay: 5, RestDays: 2},
		Advanced:     {ExercisesPerDay: 6, RestDays: 1},
	}

	goalProfiles = map[Goal]GoalProfile{
		MuscleBuilding: {
			PrimaryFocus: []MuscleGroup{Chest, Back, Legs, Shoulders, Arms},
			Style:        Hypertrophy,
		},
		FatLoss: {
			PrimaryFocus: []MuscleGroup{Cardio, Legs, Core, Chest, Back},
			Style:        Circuit,
		},
		StrengthTraining: {
			PrimaryFocus: []MuscleGroup{Back, Chest, Legs, Shoulders, Arms},
			Style:        Strength,
		},
	}

	// splits assign a muscle group to each weekday, Monday first.
	splits = map[Level][7]MuscleGroup{
		Beginner:     {Chest, Back, Rest, Legs, Arms, Rest, Core},
		Intermediate: {Chest, Back, Legs, Shoulders, Arms, Core, Rest},
		Advanced:     {Chest, Shoulders, Arms, Back, Arms, Legs, Rest},
	}
)

// Split returns the weekly muscle group assignment for level before any BMI adjustment.
func Split(level Level) ([7]MuscleGroup, bool) {
	s, ok := splits[level]
	return s, ok
}

// adjustForBMI replaces the first rest day after Monday with cardio when the user benefits from extra cardio and
// is not already training for fat loss.
func adjustForBMI(split [7]MuscleGroup, goal Goal, elevatedBMI bool) [7]MuscleGroup {
	if !elevatedBMI || goal == FatLoss {
		return split
	}
	for i := 1; i < len(split); i++ {
		if split[i] == Rest {
			split[i] = Cardio
			break
		}
	}
	return split
}

func focusNote(group MuscleGroup) string {
	return "Focus on " + strings.ToLower(string(group)) + " development"
}
