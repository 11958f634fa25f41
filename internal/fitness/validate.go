package fitness

import (
	"maps"
	"sort"
	"strings"
)

const maxNameLength = 50

// ValidationErrors maps form field names to a human readable problem.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	msgs := make([]string, 0, len(fields))
	for _, field := range fields {
		msgs = append(msgs, field+": "+v[field])
	}
	return "invalid profile: " + strings.Join(msgs, "; ")
}

// ValidateProfile checks the body metrics entered by a user. It returns nil when everything is in range.
func ValidateProfile(name string, age int, heightCm, weightKg float64) ValidationErrors {
	errs := ValidationErrors{}

	switch {
	case strings.TrimSpace(name) == "":
		errs["name"] = "Name is required"
	case len([]rune(name)) > maxNameLength:
		errs["name"] = "Name must be less than 50 characters"
	}
	if age < 16 || age > 100 {
		errs["age"] = "Age must be between 16 and 100"
	}
	maps.Copy(errs, ValidateBody(heightCm, weightKg))

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidateBody checks height and weight on their own. It returns nil when both are in range.
func ValidateBody(heightCm, weightKg float64) ValidationErrors {
	errs := ValidationErrors{}
	if !inRange(heightCm, 120, 250) { //nolint:mnd // cm.
		errs["height"] = "Height must be between 120 and 250 cm"
	}
	if !inRange(weightKg, 30, 300) { //nolint:mnd // kg.
		errs["weight"] = "Weight must be between 30 and 300 kg"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// inRange reports whether lo <= v <= hi. NaN is never in range, and neither is an infinity with finite bounds.
func inRange(v, lo, hi float64) bool {
	return v >= lo && v <= hi
}
