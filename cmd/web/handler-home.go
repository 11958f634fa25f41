package main

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/myrjola/fitcoach/internal/coach"
	"github.com/myrjola/fitcoach/internal/errors"
	"github.com/myrjola/fitcoach/internal/fitness"
	"github.com/myrjola/fitcoach/internal/plan"
)

// profileForm holds the raw form values so that invalid input can be shown back to the visitor.
type profileForm struct {
	Name         string
	Age          string
	Gender       string
	Height       string
	Weight       string
	FitnessLevel string
	Goal         string
}

func formFromProfile(p coach.Profile) profileForm {
	return profileForm{
		Name:         p.Name,
		Age:          strconv.Itoa(p.Age),
		Gender:       string(p.Gender),
		Height:       formatFloat(p.HeightCm),
		Weight:       formatFloat(p.WeightKg),
		FitnessLevel: string(p.Level),
		Goal:         string(p.Goal),
	}
}

// profile converts the form into a coach.Profile. Unparseable numbers become zero and fail validation later.
func (f profileForm) profile() coach.Profile {
	age, _ := strconv.Atoi(f.Age)
	height, _ := strconv.ParseFloat(f.Height, 64)
	weight, _ := strconv.ParseFloat(f.Weight, 64)
	return coach.Profile{
		Name:     strings.TrimSpace(f.Name),
		Age:      age,
		Gender:   coach.Gender(f.Gender),
		HeightCm: height,
		WeightKg: weight,
		Level:    plan.Level(f.FitnessLevel),
		Goal:     plan.Goal(f.Goal),
	}
}

type homeTemplateData struct {
	BaseTemplateData
	Form       profileForm
	Errors     fitness.ValidationErrors
	HasProfile bool
	Genders    []coach.Gender
	Levels     []plan.Level
	Goals      []plan.Goal
}

func (app *application) newHomeTemplateData(r *http.Request, form profileForm) homeTemplateData {
	return homeTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Form:             form,
		Errors:           nil,
		HasProfile:       false,
		Genders:          coach.Genders(),
		Levels:           plan.Levels(),
		Goals:            plan.Goals(),
	}
}

func (app *application) home(w http.ResponseWriter, r *http.Request) {
	defaults := profileForm{
		Name:         "",
		Age:          "25",
		Gender:       string(coach.Male),
		Height:       "170",
		Weight:       "70",
		FitnessLevel: string(plan.Beginner),
		Goal:         string(plan.MuscleBuilding),
	}
	data := app.newHomeTemplateData(r, defaults)

	p, err := app.coachService.Profile(r.Context())
	switch {
	case errors.Is(err, coach.ErrNotFound):
	case err != nil:
		app.serverError(w, r, err)
		return
	default:
		data.Form = formFromProfile(p)
		data.HasProfile = true
	}

	app.render(w, r, http.StatusOK, "home", data)
}

func (app *application) profilePOST(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.serverError(w, r, fmt.Errorf("parse form: %w", err))
		return
	}
	form := profileForm{
		Name:         r.PostForm.Get("name"),
		Age:          r.PostForm.Get("age"),
		Gender:       r.PostForm.Get("gender"),
		Height:       r.PostForm.Get("height"),
		Weight:       r.PostForm.Get("weight"),
		FitnessLevel: r.PostForm.Get("fitness_level"),
		Goal:         r.PostForm.Get("goal"),
	}

	_, err := app.coachService.SaveProfile(r.Context(), form.profile())
	var verrs fitness.ValidationErrors
	if errors.As(err, &verrs) {
		data := app.newHomeTemplateData(r, form)
		data.Errors = verrs
		app.render(w, r, http.StatusUnprocessableEntity, "home", data)
		return
	}
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	redirect(w, r, "/plan")
}

func (app *application) profileDeletePOST(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := app.coachService.DeleteVisitor(ctx); err != nil {
		app.serverError(w, r, err)
		return
	}
	if err := app.sessionManager.Destroy(ctx); err != nil {
		app.serverError(w, r, fmt.Errorf("destroy session: %w", err))
		return
	}
	redirect(w, r, "/")
}
