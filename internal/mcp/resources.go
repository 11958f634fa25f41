package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/myrjola/fitcoach/internal/errors"
	"github.com/myrjola/fitcoach/internal/plan"
)

const mimeJSON = "application/json"

type catalogEntry struct {
	MuscleGroup plan.MuscleGroup `json:"muscle_group"`
	Exercises   []string         `json:"exercises"`
}

func catalogEntries() []catalogEntry {
	groups := plan.MuscleGroups()
	entries := make([]catalogEntry, 0, len(groups))
	for _, g := range groups {
		entries = append(entries, catalogEntry{MuscleGroup: g, Exercises: plan.Exercises(g)})
	}
	return entries
}

type levelRules struct {
	Level           plan.Level         `json:"level"`
	ExercisesPerDay int                `json:"exercises_per_day"`
	Split           []plan.MuscleGroup `json:"split"`
}

type goalRules struct {
	Goal         plan.Goal          `json:"goal"`
	Style        plan.Style         `json:"style"`
	PrimaryFocus []plan.MuscleGroup `json:"primary_focus"`
}

type planRules struct {
	Levels []levelRules `json:"levels"`
	Goals  []goalRules  `json:"goals"`
}

func rulesDocument() planRules {
	var r planRules
	for _, level := range plan.Levels() {
		profile, _ := level.Profile()
		split, _ := plan.Split(level)
		r.Levels = append(r.Levels, levelRules{
			Level:           level,
			ExercisesPerDay: profile.ExercisesPerDay,
			Split:           split[:],
		})
	}
	for _, goal := range plan.Goals() {
		profile, _ := goal.Profile()
		r.Goals = append(r.Goals, goalRules{Goal: goal, Style: profile.Style, PrimaryFocus: profile.PrimaryFocus})
	}
	return r
}

func textResource(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "marshal resource")
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: mimeJSON,
			Text:     string(data),
		},
	}, nil
}

func (h *handlers) catalog(_ context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return textResource(req.Params.URI, catalogEntries())
}

func (h *handlers) rules(_ context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return textResource(req.Params.URI, rulesDocument())
}
