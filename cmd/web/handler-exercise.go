package main

import (
	"net/http"

	"github.com/myrjola/fitcoach/internal/fitness"
	"github.com/myrjola/fitcoach/internal/plan"
)

type exerciseTemplateData struct {
	BaseTemplateData
	Name        string
	MuscleGroup plan.MuscleGroup
	Tip         fitness.Tip
	// Markdown is the tip rendered with mdToHTML in the template.
	Markdown string
}

// exerciseGET shows the coaching cues of a catalog exercise.
func (app *application) exerciseGET(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	group, ok := plan.FindExercise(name)
	if !ok {
		app.notFound(w, r)
		return
	}
	tip, err := fitness.TipFor(name)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	data := exerciseTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Name:             name,
		MuscleGroup:      group,
		Tip:              tip,
		Markdown:         tip.Markdown(),
	}
	app.render(w, r, http.StatusOK, "exercise", data)
}
