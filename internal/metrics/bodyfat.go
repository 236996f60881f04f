package metrics

import (
	"errors"
	"fmt"
	"math"
)

// Gender selects the formula and category bands.
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

// Valid reports whether g is one of the supported values.
func (g Gender) Valid() bool {
	return g == Male || g == Female
}

var (
	// ErrInvalidMeasurement is returned when the circumference difference fed
	// to log10 is not strictly positive.
	ErrInvalidMeasurement = errors.New("invalid measurement")
	// ErrMissingHip is returned for a female calculation without a hip value.
	ErrMissingHip    = errors.New("hip circumference is required for female body fat")
	ErrUnknownGender = errors.New("unknown gender")
)

// Body-fat category labels.
const (
	CategoryEssential    = "Essential Fat"
	CategoryAthletes     = "Athletes"
	CategoryFitness      = "Fitness"
	CategoryAverage      = "Average"
	CategoryAboveAverage = "Above Average"
)

// BodyMeasurements are tape measurements in centimetres. Hip is only read
// for the female formula.
type BodyMeasurements struct {
	NeckCircumference  float64  `json:"neckCircumference"`
	WaistCircumference float64  `json:"waistCircumference"`
	HipCircumference   *float64 `json:"hipCircumference,omitempty"`
}

// CalculateBodyFat estimates body-fat percent with the U.S. Navy
// circumference method. The result is not rounded.
func CalculateBodyFat(m BodyMeasurements, gender Gender, heightCm float64) (float64, error) {
	if !(heightCm > 0) {
		return 0, ErrInvalidHeight
	}

	switch gender {
	case Male:
		arg := m.WaistCircumference - m.NeckCircumference
		if !(arg > 0) {
			return 0, fmt.Errorf("%w: waist (%.1f) must exceed neck (%.1f)",
				ErrInvalidMeasurement, m.WaistCircumference, m.NeckCircumference)
		}
		return 86.010*math.Log10(arg) - 70.041*math.Log10(heightCm) + 36.76, nil
	case Female:
		if m.HipCircumference == nil {
			return 0, ErrMissingHip
		}
		arg := m.WaistCircumference + *m.HipCircumference - m.NeckCircumference
		if !(arg > 0) {
			return 0, fmt.Errorf("%w: waist + hip (%.1f) must exceed neck (%.1f)",
				ErrInvalidMeasurement, m.WaistCircumference+*m.HipCircumference, m.NeckCircumference)
		}
		return 163.205*math.Log10(arg) - 97.684*math.Log10(heightCm) - 78.387, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownGender, gender)
	}
}

// bodyFatCutoffs are the exclusive upper bounds of the first four bins, per
// gender. Anything at or above the last cutoff is Above Average.
var bodyFatCutoffs = map[Gender][4]float64{
	Male:   {6, 14, 18, 25},
	Female: {14, 21, 25, 32},
}

var bodyFatLabels = [5]string{
	CategoryEssential, CategoryAthletes, CategoryFitness, CategoryAverage, CategoryAboveAverage,
}

// BodyFatCategory classifies a body-fat percentage. Each cutoff belongs to
// the higher bin. Any gender other than Male falls through to the female
// bands.
func BodyFatCategory(bodyFat float64, gender Gender) string {
	cutoffs, ok := bodyFatCutoffs[gender]
	if !ok {
		cutoffs = bodyFatCutoffs[Female]
	}
	for i, limit := range cutoffs {
		if bodyFat < limit {
			return bodyFatLabels[i]
		}
	}
	return bodyFatLabels[len(bodyFatLabels)-1]
}
