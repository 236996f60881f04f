// Package metrics holds the pure body-composition formulas: BMI, U.S. Navy
// body fat and their category bands. Nothing here does I/O or keeps state.
package metrics

import (
	"errors"
	"math"
)

var (
	ErrInvalidHeight = errors.New("height must be positive")
	ErrInvalidWeight = errors.New("weight must be positive")
	ErrBMIOutOfRange = errors.New("bmi is not a finite number")
)

// BMI category labels.
const (
	BMIUnderweight = "Underweight"
	BMINormal      = "Normal weight"
	BMIOverweight  = "Overweight"
	BMIObeseI      = "Obesity class I"
	BMIObeseII     = "Obesity class II"
	BMIObeseIII    = "Obesity class III"
)

// CalculateBMI returns weightKg / (heightCm/100)². It does not validate:
// heightCm == 0 yields +Inf (or NaN when weightKg is also 0). Callers that
// take user input should go through BMI instead.
func CalculateBMI(weightKg, heightCm float64) float64 {
	heightM := heightCm / 100
	return weightKg / (heightM * heightM)
}

// BMI is CalculateBMI with the domain checked up front. Finite positive
// inputs can still overflow (1e308 kg over 1 cm); that returns
// ErrBMIOutOfRange.
func BMI(weightKg, heightCm float64) (float64, error) {
	if !(heightCm > 0) || math.IsInf(heightCm, 0) {
		return 0, ErrInvalidHeight
	}
	if !(weightKg > 0) || math.IsInf(weightKg, 0) {
		return 0, ErrInvalidWeight
	}
	bmi := CalculateBMI(weightKg, heightCm)
	if math.IsInf(bmi, 0) || math.IsNaN(bmi) {
		return 0, ErrBMIOutOfRange
	}
	return bmi, nil
}

// BMICategory maps a BMI value onto the WHO adult bands.
func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return BMIUnderweight
	case bmi < 25.0:
		return BMINormal
	case bmi < 30.0:
		return BMIOverweight
	case bmi < 35.0:
		return BMIObeseI
	case bmi < 40.0:
		return BMIObeseII
	default:
		return BMIObeseIII
	}
}

// RoundTenth rounds to one decimal place, half away from zero. Only used at
// the point of persistence or display.
func RoundTenth(x float64) float64 {
	return math.Round(x*10) / 10
}
