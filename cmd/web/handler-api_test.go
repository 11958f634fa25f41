package main

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/myrjola/fitcoach/internal/e2etest"
	"github.com/myrjola/fitcoach/internal/testhelpers"
)

func postJSON(t *testing.T, client *e2etest.Client, path, body string, out any) int {
	t.Helper()
	resp, err := client.Do(t.Context(), http.MethodPost, path, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("Failed to post %s: %v", path, err)
	}
	defer resp.Body.Close()
	if got := resp.Header.Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", got)
	}
	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return resp.StatusCode
}

func Test_application_apiPlans(t *testing.T) {
	server, err := e2etest.StartServer(t, testhelpers.NewWriter(t), testLookupEnv, run)
	if err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}
	client := server.Client()

	t.Run("Generates a plan", func(t *testing.T) {
		var got struct {
			BMI            float64 `json:"bmi"`
			Category       string  `json:"category"`
			FitnessLevel   string  `json:"fitness_level"`
			ActiveDays     int     `json:"active_days"`
			TotalExercises int     `json:"total_exercises"`
			Plan           []struct {
				Day         string   `json:"day"`
				MuscleGroup string   `json:"muscle_group"`
				Exercises   []string `json:"exercises"`
			} `json:"plan"`
		}
		status := postJSON(t, client, "/api/v1/plans",
			`{"fitness_level":"Beginner","goal":"Muscle Building","height_cm":170,"weight_kg":95}`, &got)
		if status != http.StatusOK {
			t.Fatalf("status = %d, want 200", status)
		}
		if got.BMI != 32.9 || got.Category != "Obese" {
			t.Errorf("BMI = %v %s, want 32.9 Obese", got.BMI, got.Category)
		}
		if len(got.Plan) != 7 {
			t.Fatalf("got %d days, want 7", len(got.Plan))
		}
		split := make([]string, 0, len(got.Plan))
		for _, d := range got.Plan {
			split = append(split, d.MuscleGroup)
		}
		want := []string{"Chest", "Back", "Cardio", "Legs", "Arms", "Rest", "Core"}
		if diff := cmp.Diff(want, split); diff != "" {
			t.Errorf("split mismatch (-want +got):\n%s", diff)
		}
		if got.ActiveDays != 6 || got.TotalExercises != 24 {
			t.Errorf("active days %d, exercises %d, want 6 and 24", got.ActiveDays, got.TotalExercises)
		}
	})

	tests := []struct {
		name   string
		body   string
		status int
		error  string
	}{
		{
			name:   "unknown goal",
			body:   `{"fitness_level":"Beginner","goal":"Bulking","height_cm":170,"weight_kg":70}`,
			status: http.StatusBadRequest,
			error:  "unknown goal: Bulking",
		},
		{
			name:   "unknown level",
			body:   `{"fitness_level":"Elite","goal":"Fat Loss","height_cm":170,"weight_kg":70}`,
			status: http.StatusBadRequest,
			error:  "unknown fitness_level: Elite",
		},
		{
			name:   "out of range",
			body:   `{"fitness_level":"Beginner","goal":"Fat Loss","height_cm":300,"weight_kg":70}`,
			status: http.StatusUnprocessableEntity,
			error:  "invalid measurements",
		},
		{
			name:   "unknown field",
			body:   `{"level":"Beginner"}`,
			status: http.StatusBadRequest,
			error:  `invalid JSON: json: unknown field "level"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got errorResponse
			if status := postJSON(t, client, "/api/v1/plans", tt.body, &got); status != tt.status {
				t.Errorf("status = %d, want %d", status, tt.status)
			}
			if got.Error != tt.error {
				t.Errorf("error = %q, want %q", got.Error, tt.error)
			}
		})
	}
}

func Test_application_apiCatalog(t *testing.T) {
	ctx := t.Context()
	server, err := e2etest.StartServer(t, testhelpers.NewWriter(t), testLookupEnv, run)
	if err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}
	client := server.Client()

	t.Run("BMI", func(t *testing.T) {
		var got bmiResponse
		if status := postJSON(t, client, "/api/v1/bmi", `{"height_cm":175,"weight_kg":67.4}`, &got); status != 200 {
			t.Errorf("status = %d, want 200", status)
		}
		want := bmiResponse{BMI: 22, Category: "Normal", Color: "#51cf66"}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("bmi mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("Catalog", func(t *testing.T) {
		body, _, err := client.GetBody(ctx, "/api/v1/catalog")
		if err != nil {
			t.Fatalf("Failed to get catalog: %v", err)
		}
		var got []catalogResponse
		if err = json.Unmarshal(body, &got); err != nil {
			t.Fatalf("Failed to decode: %v", err)
		}
		if len(got) != 7 {
			t.Errorf("got %d muscle groups, want 7", len(got))
		}
	})

	t.Run("Muscle group", func(t *testing.T) {
		body, _, err := client.GetBody(ctx, "/api/v1/catalog/Core")
		if err != nil {
			t.Fatalf("Failed to get group: %v", err)
		}
		var got catalogResponse
		if err = json.Unmarshal(body, &got); err != nil {
			t.Fatalf("Failed to decode: %v", err)
		}
		if got.MuscleGroup != "Core" || len(got.Exercises) != 12 || got.Exercises[0] != "Plank" {
			t.Errorf("unexpected core catalog: %+v", got)
		}
	})

	t.Run("Unknown muscle group", func(t *testing.T) {
		resp, err := client.Get(ctx, "/api/v1/catalog/Rest")
		if err != nil {
			t.Fatalf("Failed to get: %v", err)
		}
		_ = resp.Body.Close()
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("status = %d, want 404", resp.StatusCode)
		}
	})

	t.Run("Exercise tip", func(t *testing.T) {
		body, _, err := client.GetBody(ctx, "/api/v1/exercises/Deadlifts/tip")
		if err != nil {
			t.Fatalf("Failed to get tip: %v", err)
		}
		var got struct {
			Exercise string `json:"exercise"`
			Setup    string `json:"setup"`
		}
		if err = json.Unmarshal(body, &got); err != nil {
			t.Fatalf("Failed to decode: %v", err)
		}
		if got.Exercise != "Deadlifts" || got.Setup == "" {
			t.Errorf("unexpected tip: %+v", got)
		}
	})

	t.Run("CORS preflight", func(t *testing.T) {
		req, err := http.NewRequestWithContext(ctx, http.MethodOptions, server.URL()+"/api/v1/plans", nil)
		if err != nil {
			t.Fatalf("Failed to create request: %v", err)
		}
		req.Header.Set("Origin", "https://app.example")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		// Browsers send the requested header names lowercased.
		req.Header.Set("Access-Control-Request-Headers", "content-type")
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("Failed to send preflight: %v", err)
		}
		_ = resp.Body.Close()
		if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
			t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
		}
		if got := resp.Header.Get("Access-Control-Allow-Headers"); !strings.EqualFold(got, "content-type") {
			t.Errorf("Access-Control-Allow-Headers = %q, want content-type", got)
		}
	})
}
