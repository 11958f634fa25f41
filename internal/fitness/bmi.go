// Package fitness contains body metrics and coaching helpers shared by the plan generator and the web layer.
package fitness

import (
	"math"
)

// BMICategory classifies a body mass index.
type BMICategory string

const (
	Underweight BMICategory = "Underweight"
	Normal      BMICategory = "Normal"
	Overweight  BMICategory = "Overweight"
	Obese       BMICategory = "Obese"
)

const (
	underweightLimit = 18.5
	normalLimit      = 25
	overweightLimit  = 30
)

// BMI returns weight / height² rounded to one decimal. Height is given in centimetres.
func BMI(weightKg, heightCm float64) float64 {
	heightM := heightCm / 100 //nolint:mnd // cm to m
	if heightM <= 0 {
		return 0
	}
	bmi := weightKg / (heightM * heightM)
	return math.Round(bmi*10) / 10 //nolint:mnd // one decimal
}

// CategoryFor maps bmi to its category.
func CategoryFor(bmi float64) BMICategory {
	switch {
	case bmi < underweightLimit:
		return Underweight
	case bmi < normalLimit:
		return Normal
	case bmi < overweightLimit:
		return Overweight
	default:
		return Obese
	}
}

// ElevatedBMI reports whether the category calls for extra cardiovascular work.
func (c BMICategory) ElevatedBMI() bool {
	return c == Overweight || c == Obese
}

// Color is the hex colour used to display the category.
func (c BMICategory) Color() string {
	switch c {
	case Underweight:
		return "#74c0fc"
	case Normal:
		return "#51cf66"
	case Overweight:
		return "#ffd43b"
	case Obese:
		return "#ff6b6b"
	default:
		return "#ffffff"
	}
}
