package mcp

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/myrjola/fitcoach/internal/errors"
	"github.com/myrjola/fitcoach/internal/fitness"
	"github.com/myrjola/fitcoach/internal/plan"
)

func enum[T ~string](values []T) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, string(v))
	}
	return out
}

//nolint:gochecknoglobals // tool definitions.
var (
	toolGeneratePlan = mcp.NewTool("generate_plan",
		mcp.WithDescription("Generate a seven day workout plan, Monday first. Overweight and obese users who are not "+
			"training for fat loss get a cardio day instead of their first rest day."),
		mcp.WithString("fitness_level", mcp.Required(), mcp.Description("Training experience"),
			mcp.Enum(enum(plan.Levels())...)),
		mcp.WithString("goal", mcp.Required(), mcp.Description("Primary training goal"),
			mcp.Enum(enum(plan.Goals())...)),
		mcp.WithNumber("height_cm", mcp.Required(), mcp.Description("Height in centimetres (120-250)")),
		mcp.WithNumber("weight_kg", mcp.Required(), mcp.Description("Weight in kilograms (30-300)")),
	)

	toolCalculateBMI = mcp.NewTool("calculate_bmi",
		mcp.WithDescription("Calculate the body mass index rounded to one decimal and its category"),
		mcp.WithNumber("height_cm", mcp.Required(), mcp.Description("Height in centimetres (120-250)")),
		mcp.WithNumber("weight_kg", mcp.Required(), mcp.Description("Weight in kilograms (30-300)")),
	)

	toolListExercises = mcp.NewTool("list_exercises",
		mcp.WithDescription("List catalog exercises. Without a muscle group every group is returned."),
		mcp.WithString("muscle_group", mcp.Description("Muscle group to list"),
			mcp.Enum(enum(plan.MuscleGroups())...)),
	)

	toolExerciseTip = mcp.NewTool("exercise_tip",
		mcp.WithDescription("Coaching cues for an exercise as markdown. Unknown exercises get generic advice."),
		mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise name, e.g. Squats")),
	)
)

type bmiResult struct {
	BMI      float64             `json:"bmi"`
	Category fitness.BMICategory `json:"category"`
	Color    string              `json:"color"`
}

type planResult struct {
	bmiResult

	FitnessLevel   plan.Level    `json:"fitness_level"`
	Goal           plan.Goal     `json:"goal"`
	ActiveDays     int           `json:"active_days"`
	TotalExercises int           `json:"total_exercises"`
	Plan           plan.WeekPlan `json:"plan"`
}

// body reads and validates the measurement arguments shared by several tools.
func body(req mcp.CallToolRequest) (bmiResult, *mcp.CallToolResult) {
	height, err := req.RequireFloat("height_cm")
	if err != nil {
		return bmiResult{}, mcp.NewToolResultError("height_cm parameter is required")
	}
	weight, err := req.RequireFloat("weight_kg")
	if err != nil {
		return bmiResult{}, mcp.NewToolResultError("weight_kg parameter is required")
	}
	if verrs := fitness.ValidateBody(height, weight); verrs != nil {
		return bmiResult{}, mcp.NewToolResultError(verrs.Error())
	}
	bmi := fitness.BMI(weight, height)
	category := fitness.CategoryFor(bmi)
	return bmiResult{BMI: bmi, Category: category, Color: category.Color()}, nil
}

func (h *handlers) generatePlan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	level, err := plan.ParseLevel(req.GetString("fitness_level", ""))
	if err != nil {
		return mcp.NewToolResultError("fitness_level must be one of Beginner, Intermediate or Advanced"), nil
	}
	goal, err := plan.ParseGoal(req.GetString("goal", ""))
	if err != nil {
		return mcp.NewToolResultError("goal must be one of Muscle Building, Fat Loss or Strength Training"), nil
	}
	measured, failure := body(req)
	if failure != nil {
		return failure, nil
	}

	week, err := h.plans.Generate(level, goal, measured.BMI, measured.Category)
	if errors.Is(err, plan.ErrInvalidInput) {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err != nil {
		h.logger.LogAttrs(ctx, slog.LevelError, "generate_plan failed", errors.SlogError(err))
		return mcp.NewToolResultError("plan generation failed"), nil
	}

	result, err := mcp.NewToolResultJSON(planResult{
		bmiResult:      measured,
		FitnessLevel:   level,
		Goal:           goal,
		ActiveDays:     week.ActiveDays(),
		TotalExercises: week.TotalExercises(),
		Plan:           week,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) calculateBMI(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	measured, failure := body(req)
	if failure != nil {
		return failure, nil
	}
	result, err := mcp.NewToolResultJSON(measured)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) listExercises(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	entries := catalogEntries()
	if name := req.GetString("muscle_group", ""); name != "" {
		group, ok := plan.ParseMuscleGroup(name)
		if !ok {
			return mcp.NewToolResultError("unknown muscle group: " + name), nil
		}
		entries = []catalogEntry{{MuscleGroup: group, Exercises: plan.Exercises(group)}}
	}
	result, err := mcp.NewToolResultJSON(entries)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) exerciseTip(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exercise, err := req.RequireString("exercise")
	if err != nil || exercise == "" {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}
	tip, err := fitness.TipFor(exercise)
	if err != nil {
		h.logger.LogAttrs(ctx, slog.LevelError, "exercise_tip failed", errors.SlogError(err))
		return mcp.NewToolResultError("tips unavailable"), nil
	}
	return mcp.NewToolResultText(tip.Markdown()), nil
}
