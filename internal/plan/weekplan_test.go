package plan_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/myrjola/fitcoach/internal/fitness"
	"github.com/myrjola/fitcoach/internal/plan"
)

func TestWeekPlan_JSON(t *testing.T) {
	p := mustGenerate(t, plan.Beginner, plan.FatLoss, 22, fitness.Normal)

	b, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.HasPrefix(string(b), `[{"day":"Monday","muscle_group":"Chest","exercises":["Push-ups",`) {
		t.Errorf("unexpected encoding: %s", b)
	}
	if !strings.Contains(string(b), `{"day":"Wednesday","muscle_group":"Rest","exercises":[],`) {
		t.Errorf("rest day should encode an empty exercise list: %s", b)
	}

	var decoded plan.WeekPlan
	if err = json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if diff := cmp.Diff(p.Days(), decoded.Days()); diff != "" {
		t.Errorf("decoded plan mismatch (-want +got):\n%s", diff)
	}
}

func TestWeekPlan_UnmarshalJSONRejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "not an array", data: `{"day":"Monday"}`},
		{name: "too few days", data: `[{"day":"Monday","muscle_group":"Rest","exercises":[]}]`},
		{
			name: "out of order",
			data: `[` + strings.Repeat(`{"day":"Tuesday","muscle_group":"Rest","exercises":[]},`, 6) +
				`{"day":"Sunday","muscle_group":"Rest","exercises":[]}]`,
		},
		{
			name: "rest day with exercises",
			data: `[{"day":"Monday","muscle_group":"Rest","exercises":["Plank"]},` +
				`{"day":"Tuesday","muscle_group":"Rest","exercises":[]},` +
				`{"day":"Wednesday","muscle_group":"Rest","exercises":[]},` +
				`{"day":"Thursday","muscle_group":"Rest","exercises":[]},` +
				`{"day":"Friday","muscle_group":"Rest","exercises":[]},` +
				`{"day":"Saturday","muscle_group":"Rest","exercises":[]},` +
				`{"day":"Sunday","muscle_group":"Rest","exercises":[]}]`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p plan.WeekPlan
			if err := json.Unmarshal([]byte(tt.data), &p); err == nil {
				t.Error("expected error")
			}
			if !p.IsZero() {
				t.Error("rejected input must leave the plan empty")
			}
		})
	}
}

func TestParse(t *testing.T) {
	if _, err := plan.ParseLevel("Advanced"); err != nil {
		t.Errorf("ParseLevel() error = %v", err)
	}
	if _, err := plan.ParseLevel("advanced"); err == nil {
		t.Error("ParseLevel() accepted lowercase input")
	}
	if _, err := plan.ParseGoal("Strength Training"); err != nil {
		t.Errorf("ParseGoal() error = %v", err)
	}
	if _, err := plan.ParseGoal("Yoga"); err == nil {
		t.Error("ParseGoal() accepted unknown goal")
	}
	if got := plan.FatLoss.Style(); got != plan.Circuit {
		t.Errorf("FatLoss.Style() = %q, want circuit", got)
	}
	profile, ok := plan.MuscleBuilding.Profile()
	if !ok {
		t.Fatal("missing muscle building profile")
	}
	want := []plan.MuscleGroup{plan.Chest, plan.Back, plan.Legs, plan.Shoulders, plan.Arms}
	if diff := cmp.Diff(want, profile.PrimaryFocus); diff != "" {
		t.Errorf("PrimaryFocus mismatch (-want +got):\n%s", diff)
	}
}
