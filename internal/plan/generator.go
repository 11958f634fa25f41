package plan

import (
	"log/slog"

	"github.com/myrjola/fitcoach/internal/errors"
	"github.com/myrjola/fitcoach/internal/fitness"
)

// Generate builds the seven day plan for a fitness level and goal.
//
// bmi is accepted as is. It is part of the plan identity for caching but only category influences the plan:
// overweight and obese users who are not training for fat loss get their first rest day after Monday replaced with
// cardio. Unknown categories leave the split untouched.
//
// Unknown levels or goals return an error matching [ErrInvalidInput].
func Generate(level Level, goal Goal, bmi float64, category fitness.BMICategory) (WeekPlan, error) {
	profile, ok := levelProfiles[level]
	if !ok {
		return WeekPlan{}, errors.Wrap(ErrInvalidInput, "unknown fitness level", slog.String("level", string(level)))
	}
	goalProfile, ok := goalProfiles[goal]
	if !ok {
		return WeekPlan{}, errors.Wrap(ErrInvalidInput, "unknown goal", slog.String("goal", string(goal)))
	}

	split := adjustForBMI(splits[level], goal, category.ElevatedBMI())

	var p WeekPlan
	for i, group := range split {
		day := Day{
			Weekday:     Weekdays[i],
			MuscleGroup: group,
			Exercises:   []string{},
			Notes:       recoveryNote,
		}
		if group != Rest {
			day.Exercises = Select(group, profile.ExercisesPerDay, goalProfile.Style)
			day.Notes = focusNote(group)
		}
		p.days[i] = day
	}
	p.valid = true
	return p, nil
}
