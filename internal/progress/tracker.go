// Package progress tracks completed workouts for a single week plan.
package progress

import (
	"slices"
	"time"

	"github.com/myrjola/fitcoach/internal/ptr"
)

// DateLayout is the key format of [Tracker.DailyLogs].
const DateLayout = time.DateOnly

// Tracker holds the completion state of the current plan. The zero value is an empty tracker with no plan.
//
// A Tracker is not safe for concurrent use. Callers persist it between requests.
type Tracker struct {
	WorkoutsCompleted int `json:"workouts_completed"`
	// TotalWorkouts is the number of training days in the plan.
	TotalWorkouts int `json:"total_workouts"`
	StreakDays    int `json:"streak_days"`
	// LastWorkout is the calendar date of the latest completion, nil before the first one.
	LastWorkout *time.Time `json:"last_workout,omitempty"`
	// DailyLogs maps a date in DateLayout to the weekday names completed on that date.
	DailyLogs map[string][]string `json:"daily_logs"`
}

// Reset starts tracking a new plan with totalWorkouts training days.
func (t *Tracker) Reset(totalWorkouts int) {
	*t = Tracker{
		WorkoutsCompleted: 0,
		TotalWorkouts:     max(totalWorkouts, 0),
		StreakDays:        0,
		LastWorkout:       nil,
		DailyLogs:         map[string][]string{},
	}
}

// MarkComplete logs the plan day weekday as done at now.
//
// It returns false when the weekday was already logged on the same date. The streak grows when the previous
// completion was yesterday, stays when it was today and restarts at one otherwise.
func (t *Tracker) MarkComplete(weekday time.Weekday, now time.Time) bool {
	today := truncateToDate(now)
	key := today.Format(DateLayout)
	name := weekday.String()

	if slices.Contains(t.DailyLogs[key], name) {
		return false
	}
	if t.DailyLogs == nil {
		t.DailyLogs = map[string][]string{}
	}
	t.DailyLogs[key] = append(t.DailyLogs[key], name)
	t.WorkoutsCompleted++

	switch {
	case t.LastWorkout == nil:
		t.StreakDays = 1
	case t.LastWorkout.Equal(today):
		t.StreakDays = max(t.StreakDays, 1)
	case t.LastWorkout.AddDate(0, 0, 1).Equal(today):
		t.StreakDays++
	default:
		t.StreakDays = 1
	}
	t.LastWorkout = ptr.Ref(today)
	return true
}

// CompletedOn reports whether weekday was logged on the date of at.
func (t *Tracker) CompletedOn(weekday time.Weekday, at time.Time) bool {
	return slices.Contains(t.DailyLogs[truncateToDate(at).Format(DateLayout)], weekday.String())
}

// CompletionRate returns the completed share of the plan in percent. Plans without workouts count as one workout
// so the rate never divides by zero.
func (t *Tracker) CompletionRate() float64 {
	return float64(t.WorkoutsCompleted) * 100 / float64(max(t.TotalWorkouts, 1)) //nolint:mnd // percent.
}

// DayActivity lists the plan days completed on one date.
type DayActivity struct {
	Date      time.Time
	Completed []string
}

// Activity returns the daily logs sorted by date, oldest first.
func (t *Tracker) Activity() []DayActivity {
	activity := make([]DayActivity, 0, len(t.DailyLogs))
	for key, completed := range t.DailyLogs {
		date, err := time.ParseInLocation(DateLayout, key, time.UTC)
		if err != nil {
			continue
		}
		activity = append(activity, DayActivity{
			Date:      date,
			Completed: slices.Clone(completed),
		})
	}
	slices.SortFunc(activity, func(a, b DayActivity) int {
		return a.Date.Compare(b.Date)
	})
	return activity
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
