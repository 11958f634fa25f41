package plan

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/myrjola/fitcoach/internal/errors"
)

// Weekdays lists the plan days in order, Monday first.
//
//nolint:gochecknoglobals // fixed ordering.
var Weekdays = [7]time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday,
}

// Day is the plan for one weekday.
type Day struct {
	Weekday     time.Weekday
	MuscleGroup MuscleGroup
	// Exercises is empty exactly when MuscleGroup is Rest.
	Exercises []string
	Notes     string
}

// IsRest reports whether the day is a recovery day.
func (d Day) IsRest() bool {
	return d.MuscleGroup == Rest
}

func (d Day) clone() Day {
	d.Exercises = append(make([]string, 0, len(d.Exercises)), d.Exercises...)
	return d
}

// WeekPlan is an immutable seven day plan. The zero value has no days; use [Generate] to build one.
type WeekPlan struct {
	days  [7]Day
	valid bool
}

// IsZero reports whether the plan was never generated.
func (p WeekPlan) IsZero() bool {
	return !p.valid
}

// Days returns a copy of the days, Monday first.
func (p WeekPlan) Days() []Day {
	if !p.valid {
		return nil
	}
	days := make([]Day, len(p.days))
	for i, d := range p.days {
		days[i] = d.clone()
	}
	return days
}

// Day returns the plan for weekday.
func (p WeekPlan) Day(weekday time.Weekday) (Day, bool) {
	if !p.valid {
		return Day{}, false
	}
	for _, d := range p.days {
		if d.Weekday == weekday {
			return d.clone(), true
		}
	}
	return Day{}, false
}

// ActiveDays counts the days that are not rest days.
func (p WeekPlan) ActiveDays() int {
	n := 0
	for _, d := range p.Days() {
		if !d.IsRest() {
			n++
		}
	}
	return n
}

// TotalExercises counts the exercises over the whole week.
func (p WeekPlan) TotalExercises() int {
	n := 0
	for _, d := range p.Days() {
		n += len(d.Exercises)
	}
	return n
}

// Split returns the muscle group of each day, Monday first.
func (p WeekPlan) Split() []MuscleGroup {
	groups := make([]MuscleGroup, 0, len(p.days))
	for _, d := range p.Days() {
		groups = append(groups, d.MuscleGroup)
	}
	return groups
}

type dayJSON struct {
	Day         string      `json:"day"`
	MuscleGroup MuscleGroup `json:"muscle_group"`
	Exercises   []string    `json:"exercises"`
	Notes       string      `json:"notes"`
}

// MarshalJSON encodes the plan as an array of days, Monday first.
func (p WeekPlan) MarshalJSON() ([]byte, error) {
	out := make([]dayJSON, 0, len(p.days))
	for _, d := range p.Days() {
		out = append(out, dayJSON{
			Day:         d.Weekday.String(),
			MuscleGroup: d.MuscleGroup,
			Exercises:   d.Exercises,
			Notes:       d.Notes,
		})
	}
	b, err := json.Marshal(out)
	if err != nil {
		return nil, errors.Wrap(err, "marshal week plan")
	}
	return b, nil
}

// UnmarshalJSON decodes a plan produced by MarshalJSON and checks that it covers Monday to Sunday in order.
func (p *WeekPlan) UnmarshalJSON(data []byte) error {
	var in []dayJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return errors.Wrap(err, "unmarshal week plan")
	}
	if len(in) != len(Weekdays) {
		return errors.New("week plan must have seven days", slog.Int("days", len(in)))
	}
	var days [7]Day
	for i, d := range in {
		if d.Day != Weekdays[i].String() {
			return errors.New("week plan days out of order",
				slog.String("got", d.Day), slog.String("want", Weekdays[i].String()))
		}
		if (d.MuscleGroup == Rest) != (len(d.Exercises) == 0) {
			return errors.New("rest days must have no exercises", slog.String("day", d.Day))
		}
		days[i] = Day{
			Weekday:     Weekdays[i],
			MuscleGroup: d.MuscleGroup,
			Exercises:   append([]string{}, d.Exercises...),
			Notes:       d.Notes,
		}
	}
	p.days = days
	p.valid = true
	return nil
}
