package mcp

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/myrjola/fitcoach/internal/plan"
	"github.com/myrjola/fitcoach/internal/testhelpers"
)

func newHandlers(t *testing.T) *handlers {
	t.Helper()
	return &handlers{plans: plan.NewCache(8), logger: testhelpers.NewTestLogger(t)}
}

func toolRequest(name string, args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil || len(result.Content) == 0 {
		t.Fatal("empty tool result")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want mcp.TextContent", result.Content[0])
	}
	return text.Text
}

func TestGeneratePlan(t *testing.T) {
	h := newHandlers(t)
	result, err := h.generatePlan(t.Context(), toolRequest("generate_plan", map[string]any{
		"fitness_level": "Beginner",
		"goal":          "Muscle Building",
		"height_cm":     175.0,
		"weight_kg":     67.4,
	}))
	if err != nil {
		t.Fatalf("generatePlan() error = %v", err)
	}
	if result.IsError {
		t.Fatalf("generatePlan() returned tool error: %s", resultText(t, result))
	}

	var got struct {
		BMI            float64 `json:"bmi"`
		Category       string  `json:"category"`
		ActiveDays     int     `json:"active_days"`
		TotalExercises int     `json:"total_exercises"`
		Plan           []struct {
			Day         string   `json:"day"`
			MuscleGroup string   `json:"muscle_group"`
			Exercises   []string `json:"exercises"`
		} `json:"plan"`
	}
	if err = json.Unmarshal([]byte(resultText(t, result)), &got); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if got.BMI != 22.0 || got.Category != "Normal" {
		t.Errorf("bmi = %v %s, want 22 Normal", got.BMI, got.Category)
	}
	if got.ActiveDays != 5 || got.TotalExercises != 20 {
		t.Errorf("active days = %d, total exercises = %d, want 5 and 20", got.ActiveDays, got.TotalExercises)
	}
	if len(got.Plan) != 7 {
		t.Fatalf("got %d days, want 7", len(got.Plan))
	}
	wantMonday := []string{"Bench Press", "Incline Dumbbell Press", "Pec Fly", "Push-ups"}
	if diff := cmp.Diff(wantMonday, got.Plan[0].Exercises); diff != "" {
		t.Errorf("Monday mismatch (-want +got):\n%s", diff)
	}
	if got.Plan[2].MuscleGroup != "Rest" || len(got.Plan[2].Exercises) != 0 {
		t.Errorf("Wednesday = %+v, want an empty rest day", got.Plan[2])
	}
	if h.plans.Len() != 1 {
		t.Errorf("cache holds %d plans, want 1", h.plans.Len())
	}
}

func TestGeneratePlan_invalidArguments(t *testing.T) {
	tests := []struct {
		name    string
		args    map[string]any
		wantMsg string
	}{
		{
			name:    "unknown level",
			args:    map[string]any{"fitness_level": "Elite", "goal": "Fat Loss", "height_cm": 170.0, "weight_kg": 70.0},
			wantMsg: "fitness_level",
		},
		{
			name:    "unknown goal",
			args:    map[string]any{"fitness_level": "Beginner", "goal": "Zen", "height_cm": 170.0, "weight_kg": 70.0},
			wantMsg: "goal",
		},
		{
			name:    "missing weight",
			args:    map[string]any{"fitness_level": "Beginner", "goal": "Fat Loss", "height_cm": 170.0},
			wantMsg: "weight_kg",
		},
		{
			name:    "height out of range",
			args:    map[string]any{"fitness_level": "Beginner", "goal": "Fat Loss", "height_cm": 90.0, "weight_kg": 70.0},
			wantMsg: "Height must be between 120 and 250 cm",
		},
	}
	h := newHandlers(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := h.generatePlan(t.Context(), toolRequest("generate_plan", tt.args))
			if err != nil {
				t.Fatalf("generatePlan() error = %v", err)
			}
			if !result.IsError {
				t.Fatal("expected a tool error")
			}
			if msg := resultText(t, result); !strings.Contains(msg, tt.wantMsg) {
				t.Errorf("message %q does not mention %q", msg, tt.wantMsg)
			}
		})
	}
	if h.plans.Len() != 0 {
		t.Errorf("cache holds %d plans after failures, want 0", h.plans.Len())
	}
}

func TestCalculateBMI(t *testing.T) {
	h := newHandlers(t)
	result, err := h.calculateBMI(t.Context(), toolRequest("calculate_bmi", map[string]any{
		"height_cm": 170.0,
		"weight_kg": 95.0,
	}))
	if err != nil {
		t.Fatalf("calculateBMI() error = %v", err)
	}
	var got bmiResult
	if err = json.Unmarshal([]byte(resultText(t, result)), &got); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	want := bmiResult{BMI: 32.9, Category: "Obese", Color: "#ff6b6b"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("bmi mismatch (-want +got):\n%s", diff)
	}
}

func TestListExercises(t *testing.T) {
	h := newHandlers(t)

	result, err := h.listExercises(t.Context(), toolRequest("list_exercises", map[string]any{"muscle_group": "Core"}))
	if err != nil {
		t.Fatalf("listExercises() error = %v", err)
	}
	var got []catalogEntry
	if err = json.Unmarshal([]byte(resultText(t, result)), &got); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	want := []catalogEntry{{MuscleGroup: plan.Core, Exercises: plan.Exercises(plan.Core)}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("catalog mismatch (-want +got):\n%s", diff)
	}

	result, err = h.listExercises(t.Context(), toolRequest("list_exercises", nil))
	if err != nil {
		t.Fatalf("listExercises() error = %v", err)
	}
	got = nil
	if err = json.Unmarshal([]byte(resultText(t, result)), &got); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if len(got) != len(plan.MuscleGroups()) {
		t.Errorf("got %d groups, want %d", len(got), len(plan.MuscleGroups()))
	}

	result, err = h.listExercises(t.Context(), toolRequest("list_exercises", map[string]any{"muscle_group": "Rest"}))
	if err != nil {
		t.Fatalf("listExercises() error = %v", err)
	}
	if !result.IsError {
		t.Error("Rest should not be a catalog group")
	}
}

func TestExerciseTip(t *testing.T) {
	h := newHandlers(t)
	result, err := h.exerciseTip(t.Context(), toolRequest("exercise_tip", map[string]any{"exercise": "Squats"}))
	if err != nil {
		t.Fatalf("exerciseTip() error = %v", err)
	}
	if text := resultText(t, result); !strings.HasPrefix(text, "## Squats") {
		t.Errorf("tip = %q, want a Squats heading", text)
	}
}

func TestCatalogResource(t *testing.T) {
	h := newHandlers(t)
	var req mcp.ReadResourceRequest
	req.Params.URI = "fitcoach://catalog"
	contents, err := h.catalog(t.Context(), req)
	if err != nil {
		t.Fatalf("catalog() error = %v", err)
	}
	text, ok := contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("contents is %T", contents[0])
	}
	if text.URI != "fitcoach://catalog" || text.MIMEType != mimeJSON {
		t.Errorf("resource = %s %s", text.URI, text.MIMEType)
	}
	var got []catalogEntry
	if err = json.Unmarshal([]byte(text.Text), &got); err != nil {
		t.Fatalf("unmarshal catalog: %v", err)
	}
	if diff := cmp.Diff(catalogEntries(), got); diff != "" {
		t.Errorf("catalog mismatch (-want +got):\n%s", diff)
	}
}

func TestRulesResource(t *testing.T) {
	r := rulesDocument()
	if len(r.Levels) != 3 || len(r.Goals) != 3 {
		t.Fatalf("rules cover %d levels and %d goals", len(r.Levels), len(r.Goals))
	}
	want := []plan.MuscleGroup{plan.Chest, plan.Back, plan.Legs, plan.Shoulders, plan.Arms, plan.Core, plan.Rest}
	if diff := cmp.Diff(want, r.Levels[1].Split); diff != "" {
		t.Errorf("intermediate split mismatch (-want +got):\n%s", diff)
	}
	if r.Goals[1].Style != plan.Circuit {
		t.Errorf("fat loss style = %s, want circuit", r.Goals[1].Style)
	}
}
