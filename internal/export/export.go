// Package export renders a week plan as downloadable files.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/myrjola/fitcoach/internal/errors"
	"github.com/myrjola/fitcoach/internal/fitness"
	"github.com/myrjola/fitcoach/internal/plan"
)

// RestDay is the exercise cell written for recovery days.
const RestDay = "Rest Day"

// Content types of the supported formats.
const (
	ContentTypeCSV  = "text/csv"
	ContentTypeText = "text/plain; charset=utf-8"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

const defaultName = "User"

// Document is a plan together with the profile details printed next to it.
type Document struct {
	Plan        plan.WeekPlan
	Name        string
	BMI         float64
	Category    fitness.BMICategory
	Level       plan.Level
	Goal        plan.Goal
	GeneratedAt time.Time
}

func (d Document) name() string {
	if strings.TrimSpace(d.Name) == "" {
		return defaultName
	}
	return d.Name
}

// Filename returns the download name for a file with extension ext generated at.
func Filename(ext string, at time.Time) string {
	return "workout_plan_" + at.Format("20060102") + "." + ext
}

// Rows flattens the plan into Day, Muscle Group and Exercise rows. Rest days get a single RestDay row.
func Rows(p plan.WeekPlan) [][]string {
	var rows [][]string
	for _, d := range p.Days() {
		day, group := d.Weekday.String(), string(d.MuscleGroup)
		if len(d.Exercises) == 0 {
			rows = append(rows, []string{day, group, RestDay})
			continue
		}
		for _, e := range d.Exercises {
			rows = append(rows, []string{day, group, e})
		}
	}
	return rows
}

// WriteCSV writes the plan rows with a header line.
func WriteCSV(w io.Writer, p plan.WeekPlan) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Day", "Muscle Group", "Exercise"}); err != nil {
		return errors.Wrap(err, "write csv header")
	}
	if err := cw.WriteAll(Rows(p)); err != nil {
		return errors.Wrap(err, "write csv rows")
	}
	return nil
}

// WriteText writes the compact plain text plan.
func WriteText(w io.Writer, d Document) error {
	var b bytes.Buffer
	b.WriteString("🤖 AI Fitness Trainer - Workout Plan\n")
	fmt.Fprintf(&b, "Generated for: %s\n", d.name())
	fmt.Fprintf(&b, "Date: %s\n\n", d.GeneratedAt.Format(time.DateOnly))

	for _, day := range d.Plan.Days() {
		fmt.Fprintf(&b, "%s: %s\n", day.Weekday, day.MuscleGroup)
		if len(day.Exercises) == 0 {
			b.WriteString("  • " + RestDay + "\n")
		}
		for _, e := range day.Exercises {
			fmt.Fprintf(&b, "  • %s\n", e)
		}
		b.WriteString("\n")
	}
	if _, err := w.Write(b.Bytes()); err != nil {
		return errors.Wrap(err, "write text plan")
	}
	return nil
}

const guidelines = `GENERAL GUIDELINES
==================

- Warm up for 5-10 minutes before each workout
- Cool down and stretch after each session
- Stay hydrated throughout your workout
- Listen to your body and rest when needed
- Progress gradually by increasing weight or reps
- Maintain proper form over heavy weight
- Get adequate sleep for recovery

For questions or modifications, consult with a fitness professional.

Generated by AI Fitness Trainer
`

// WriteReport writes the detailed text report with profile summary, numbered exercises, notes and guidelines.
func WriteReport(w io.Writer, d Document) error {
	var b bytes.Buffer
	b.WriteString("AI FITNESS TRAINER - WORKOUT PLAN\n")
	b.WriteString("=================================\n\n")
	fmt.Fprintf(&b, "Generated for: %s\n", d.name())
	fmt.Fprintf(&b, "Date: %s\n", d.GeneratedAt.Format("January 02, 2006"))
	fmt.Fprintf(&b, "BMI: %s (%s)\n", strconv.FormatFloat(d.BMI, 'f', 1, 64), d.Category)
	fmt.Fprintf(&b, "Fitness Level: %s\n", d.Level)
	fmt.Fprintf(&b, "Primary Goal: %s\n\n", d.Goal)
	b.WriteString("WEEKLY SCHEDULE\n")
	b.WriteString("===============\n\n")

	for _, day := range d.Plan.Days() {
		heading := strings.ToUpper(day.Weekday.String()) + ": " + string(day.MuscleGroup)
		b.WriteString(heading + "\n")
		b.WriteString(strings.Repeat("-", len(heading)) + "\n")
		if len(day.Exercises) == 0 {
			b.WriteString("Rest Day - Focus on recovery\n")
		}
		for i, e := range day.Exercises {
			fmt.Fprintf(&b, "%d. %s\n", i+1, e)
		}
		if day.Notes != "" {
			fmt.Fprintf(&b, "\nNotes: %s\n", day.Notes)
		}
		b.WriteString("\n")
	}
	b.WriteString(guidelines)

	if _, err := w.Write(b.Bytes()); err != nil {
		return errors.Wrap(err, "write report")
	}
	return nil
}
