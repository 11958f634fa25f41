package main

import (
	"math/rand/v2"
	"net/http"
	"slices"

	"github.com/myrjola/fitcoach/internal/coach"
	"github.com/myrjola/fitcoach/internal/fitness"
	"github.com/myrjola/fitcoach/internal/progress"
)

const (
	recentPoseSessions = 10
	recentActivityDays = 14
)

type progressTemplateData struct {
	BaseTemplateData
	Tracker        progress.Tracker
	CompletionRate float64
	Message        string
	Activity       []progress.DayActivity
	PoseSessions   []coach.PoseSummary
}

func (app *application) progressGET(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tracker, err := app.coachService.Progress(ctx)
	if err != nil {
		app.visitorError(w, r, err)
		return
	}
	poses, err := app.coachService.PoseSummaries(ctx, recentPoseSessions)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	activity := tracker.Activity()
	slices.Reverse(activity)
	if len(activity) > recentActivityDays {
		activity = activity[:recentActivityDays]
	}

	rate := tracker.CompletionRate()
	data := progressTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Tracker:          tracker,
		CompletionRate:   rate,
		Message:          fitness.MotivationalMessage(rate, rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))), //nolint:gosec // not security sensitive.
		Activity:         activity,
		PoseSessions:     poses,
	}
	app.render(w, r, http.StatusOK, "progress", data)
}
