// Package coach stores visitor profiles, plans, progress and pose sessions and ties them to plan generation.
package coach

import (
	"maps"
	"slices"
	"time"

	"github.com/myrjola/fitcoach/internal/errors"
	"github.com/myrjola/fitcoach/internal/fitness"
	"github.com/myrjola/fitcoach/internal/plan"
)

var (
	// ErrNotFound is returned when the visitor has not stored the requested data yet.
	ErrNotFound = errors.NewSentinel("not found")
	// ErrNoVisitor is returned when the context carries no visitor ID.
	ErrNoVisitor = errors.NewSentinel("no visitor in context")
	// ErrRestDay is returned when completing a recovery day.
	ErrRestDay = errors.NewSentinel("rest days cannot be completed")
)

// Gender as entered in the profile form.
type Gender string

// Gender constants.
const (
	Male   Gender = "Male"
	Female Gender = "Female"
	Other  Gender = "Other"
)

// Genders returns the selectable genders.
func Genders() []Gender {
	return []Gender{Male, Female, Other}
}

// Profile is the information a visitor enters before a plan is generated.
type Profile struct {
	Name     string
	Age      int
	Gender   Gender
	HeightCm float64
	WeightKg float64
	Level    plan.Level
	Goal     plan.Goal
}

// BMI returns the body mass index rounded to one decimal.
func (p Profile) BMI() float64 {
	return fitness.BMI(p.WeightKg, p.HeightCm)
}

// Category returns the BMI category.
func (p Profile) Category() fitness.BMICategory {
	return fitness.CategoryFor(p.BMI())
}

// Validate returns [fitness.ValidationErrors] keyed by form field when the profile is incomplete or out of range.
func (p Profile) Validate() error {
	errs := fitness.ValidationErrors{}
	maps.Copy(errs, fitness.ValidateProfile(p.Name, p.Age, p.HeightCm, p.WeightKg))
	if !slices.Contains(Genders(), p.Gender) {
		errs["gender"] = "Please select a gender"
	}
	if _, ok := p.Level.Profile(); !ok {
		errs["fitness_level"] = "Please select a fitness level"
	}
	if _, ok := p.Goal.Profile(); !ok {
		errs["goal"] = "Please select a goal"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Plan is the stored plan of a visitor.
type Plan struct {
	Week      plan.WeekPlan
	Generated time.Time
}

// PoseSummary is the outcome of one live pose analysis session.
type PoseSummary struct {
	Exercise    string
	Reps        int
	CorrectReps int
	Finished    time.Time
}

// Accuracy returns the share of correct reps in percent.
func (s PoseSummary) Accuracy() float64 {
	if s.Reps == 0 {
		return 0
	}
	return float64(s.CorrectReps) * 100 / float64(s.Reps) //nolint:mnd // percent.
}
