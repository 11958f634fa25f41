// Package plan generates rule-based seven-day workout plans from a fitness level, a training goal and a BMI
// category.
//
// Everything in this package is deterministic: the same inputs always produce the same [WeekPlan].
package plan

import (
	"github.com/myrjola/fitcoach/internal/errors"
)

// ErrInvalidInput is returned when the fitness level or the goal is outside its enumerated domain.
var ErrInvalidInput = errors.NewSentinel("invalid input")

// MuscleGroup is a training focus for a day. It is either a catalog key or [Rest].
type MuscleGroup string

// Muscle group constants.
const (
	Chest     MuscleGroup = "Chest"
	Shoulders MuscleGroup = "Shoulders"
	Arms      MuscleGroup = "Arms"
	Back      MuscleGroup = "Back"
	Legs      MuscleGroup = "Legs"
	Core      MuscleGroup = "Core"
	Cardio    MuscleGroup = "Cardio"
	Rest      MuscleGroup = "Rest"
)

// Level is the self-reported training experience.
type Level string

// Fitness level constants.
const (
	Beginner     Level = "Beginner"
	Intermediate Level = "Intermediate"
	Advanced     Level = "Advanced"
)

// Goal is the primary training goal.
type Goal string

// Goal constants.
const (
	MuscleBuilding   Goal = "Muscle Building"
	FatLoss          Goal = "Fat Loss"
	StrengthTraining Goal = "Strength Training"
)

// Style selects the heuristic used to pick exercises for a day.
type Style string

// Workout style constants.
const (
	Hypertrophy Style = "hypertrophy"
	Circuit     Style = "circuit"
	Strength    Style = "strength"
)

// LevelProfile describes the training volume for a fitness level.
type LevelProfile struct {
	ExercisesPerDay int
	// RestDays is informational. The weekly splits decide the actual rest days.
	RestDays int
}

// GoalProfile describes how a goal is trained.
type GoalProfile struct {
	// PrimaryFocus lists the emphasised muscle groups. The generator does not reorder splits by it.
	PrimaryFocus []MuscleGroup
	Style        Style
}

// Levels returns the supported fitness levels from least to most experienced.
func Levels() []Level {
	return []Level{Beginner, Intermediate, Advanced}
}

// Goals returns the supported training goals.
func Goals() []Goal {
	return []Goal{MuscleBuilding, FatLoss, StrengthTraining}
}

// ParseLevel converts user input into a Level.
func ParseLevel(s string) (Level, error) {
	level := Level(s)
	if _, ok := levelProfiles[level]; !ok {
		return "", errors.Wrap(ErrInvalidInput, "unknown fitness level")
	}
	return level, nil
}

// ParseGoal converts user input into a Goal.
func ParseGoal(s string) (Goal, error) {
	goal := Goal(s)
	if _, ok := goalProfiles[goal]; !ok {
		return "", errors.Wrap(ErrInvalidInput, "unknown goal")
	}
	return goal, nil
}

// Profile returns the level profile.
func (l Level) Profile() (LevelProfile, bool) {
	p, ok := levelProfiles[l]
	return p, ok
}

// Profile returns the goal profile.
func (g Goal) Profile() (GoalProfile, bool) {
	p, ok := goalProfiles[g]
	if !ok {
		return GoalProfile{}, false
	}
	p.PrimaryFocus = append([]MuscleGroup(nil), p.PrimaryFocus...)
	return p, true
}

// Style returns the workout style of the goal or an empty Style for unknown goals.
func (g Goal) Style() Style {
	return goalProfiles[g].Style
}
