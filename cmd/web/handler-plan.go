package main

import (
	"net/http"
	"time"

	"github.com/myrjola/fitcoach/internal/coach"
	"github.com/myrjola/fitcoach/internal/errors"
	"github.com/myrjola/fitcoach/internal/fitness"
	"github.com/myrjola/fitcoach/internal/plan"
)

// minutesPerExercise is the rough session length used for duration and calorie estimates.
const minutesPerExercise = 10

type dayView struct {
	plan.Day
	Slug           string
	IsToday        bool
	CompletedToday bool
	Duration       string
	Calories       int
}

type planTemplateData struct {
	BaseTemplateData
	Profile        coach.Profile
	BMI            float64
	Category       fitness.BMICategory
	Days           []dayView
	ActiveDays     int
	TotalExercises int
	Generated      time.Time
}

func toDayViews(p coach.Plan, profile coach.Profile, completedToday func(time.Weekday) bool, now time.Time) []dayView {
	days := p.Week.Days()
	views := make([]dayView, 0, len(days))
	for _, d := range days {
		v := dayView{
			Day:            d,
			Slug:           weekdaySlug(d.Weekday),
			IsToday:        d.Weekday == now.Weekday(),
			CompletedToday: completedToday(d.Weekday),
			Duration:       "",
			Calories:       0,
		}
		if !d.IsRest() {
			minutes := len(d.Exercises) * minutesPerExercise
			v.Duration = fitness.FormatDuration(minutes)
			v.Calories = fitness.CaloriesBurned(string(d.MuscleGroup), minutes, profile.WeightKg)
		}
		views = append(views, v)
	}
	return views
}

func (app *application) planGET(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	profile, err := app.coachService.Profile(ctx)
	if err != nil {
		app.visitorError(w, r, err)
		return
	}
	stored, err := app.coachService.Plan(ctx)
	if err != nil {
		app.visitorError(w, r, err)
		return
	}
	tracker, err := app.coachService.Progress(ctx)
	if err != nil {
		app.visitorError(w, r, err)
		return
	}

	now := time.Now()
	completedToday := func(weekday time.Weekday) bool {
		return tracker.CompletedOn(weekday, now)
	}
	data := planTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Profile:          profile,
		BMI:              profile.BMI(),
		Category:         profile.Category(),
		Days:             toDayViews(stored, profile, completedToday, now),
		ActiveDays:       stored.Week.ActiveDays(),
		TotalExercises:   stored.Week.TotalExercises(),
		Generated:        stored.Generated,
	}
	app.render(w, r, http.StatusOK, "plan", data)
}

func (app *application) dayCompletePOST(w http.ResponseWriter, r *http.Request) {
	weekday, ok := app.parseWeekdayParam(w, r)
	if !ok {
		return
	}
	_, err := app.coachService.MarkDayComplete(r.Context(), weekday)
	switch {
	case errors.Is(err, coach.ErrRestDay):
		http.Error(w, "Rest days cannot be completed", http.StatusBadRequest)
		return
	case err != nil:
		app.visitorError(w, r, err)
		return
	}
	redirect(w, r, "/plan#day-"+weekdaySlug(weekday))
}
