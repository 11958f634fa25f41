package main

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/myrjola/fitcoach/internal/errors"
	"github.com/myrjola/fitcoach/internal/fitness"
	"github.com/myrjola/fitcoach/internal/plan"
	"github.com/rs/cors"
)

const maxAPIRequestBytes = 16 * 1024

type bodyRequest struct {
	HeightCm float64 `json:"height_cm"`
	WeightKg float64 `json:"weight_kg"`
}

type planRequest struct {
	bodyRequest

	FitnessLevel string `json:"fitness_level"`
	Goal         string `json:"goal"`
}

type bmiResponse struct {
	BMI      float64             `json:"bmi"`
	Category fitness.BMICategory `json:"category"`
	Color    string              `json:"color"`
}

type planResponse struct {
	bmiResponse

	FitnessLevel   plan.Level    `json:"fitness_level"`
	Goal           plan.Goal     `json:"goal"`
	ActiveDays     int           `json:"active_days"`
	TotalExercises int           `json:"total_exercises"`
	Plan           plan.WeekPlan `json:"plan"`
}

type catalogResponse struct {
	MuscleGroup plan.MuscleGroup `json:"muscle_group"`
	Exercises   []string         `json:"exercises"`
}

type errorResponse struct {
	Error  string                   `json:"error"`
	Fields fitness.ValidationErrors `json:"fields,omitempty"`
}

// apiRoutes serves the stateless JSON API under /api/v1. It shares the plan cache with the MCP server.
func (app *application) apiRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.New(cors.Options{ //nolint:exhaustruct // defaults are fine for the rest.
		AllowedOrigins: app.corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300, //nolint:mnd // seconds.
	}).Handler)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/plans", app.apiPlanPOST)
		r.Post("/bmi", app.apiBMIPOST)
		r.Get("/catalog", app.apiCatalogGET)
		r.Get("/catalog/{group}", app.apiCatalogGroupGET)
		r.Get("/exercises/{name}/tip", app.apiExerciseTipGET)
	})
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found", Fields: nil})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed", Fields: nil})
	})
	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg, Fields: nil})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxAPIRequestBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return false
	}
	return true
}

// measure validates the body measurements and responds with 422 when they are out of range.
func measure(w http.ResponseWriter, req bodyRequest) (bmiResponse, bool) {
	if verrs := fitness.ValidateBody(req.HeightCm, req.WeightKg); verrs != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "invalid measurements", Fields: verrs})
		return bmiResponse{}, false
	}
	bmi := fitness.BMI(req.WeightKg, req.HeightCm)
	category := fitness.CategoryFor(bmi)
	return bmiResponse{BMI: bmi, Category: category, Color: category.Color()}, true
}

func (app *application) apiBMIPOST(w http.ResponseWriter, r *http.Request) {
	var req bodyRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, ok := measure(w, req)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (app *application) apiPlanPOST(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	level, err := plan.ParseLevel(req.FitnessLevel)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "unknown fitness_level: "+req.FitnessLevel)
		return
	}
	goal, err := plan.ParseGoal(req.Goal)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "unknown goal: "+req.Goal)
		return
	}
	bmi, ok := measure(w, req.bodyRequest)
	if !ok {
		return
	}
	week, err := app.plans.Generate(level, goal, bmi.BMI, bmi.Category)
	if err != nil {
		app.logger.LogAttrs(r.Context(), slog.LevelError, "generate plan", errors.SlogError(err))
		writeJSONError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}
	writeJSON(w, http.StatusOK, planResponse{
		bmiResponse:    bmi,
		FitnessLevel:   level,
		Goal:           goal,
		ActiveDays:     week.ActiveDays(),
		TotalExercises: week.TotalExercises(),
		Plan:           week,
	})
}

func (app *application) apiCatalogGET(w http.ResponseWriter, _ *http.Request) {
	groups := plan.MuscleGroups()
	out := make([]catalogResponse, 0, len(groups))
	for _, g := range groups {
		out = append(out, catalogResponse{MuscleGroup: g, Exercises: plan.Exercises(g)})
	}
	writeJSON(w, http.StatusOK, out)
}

func (app *application) apiCatalogGroupGET(w http.ResponseWriter, r *http.Request) {
	group, ok := plan.ParseMuscleGroup(chi.URLParam(r, "group"))
	if !ok {
		writeJSONError(w, http.StatusNotFound, "unknown muscle group: "+chi.URLParam(r, "group"))
		return
	}
	writeJSON(w, http.StatusOK, catalogResponse{MuscleGroup: group, Exercises: plan.Exercises(group)})
}

func (app *application) apiExerciseTipGET(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if _, ok := plan.FindExercise(name); !ok {
		writeJSONError(w, http.StatusNotFound, "unknown exercise: "+name)
		return
	}
	tip, err := fitness.TipFor(name)
	if err != nil {
		app.logger.LogAttrs(r.Context(), slog.LevelError, "load tip", errors.SlogError(err))
		writeJSONError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}
	writeJSON(w, http.StatusOK, tip)
}
