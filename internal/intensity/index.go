// Package intensity derives a workout intensity index from vitals and maps it
// onto a fixed set of intensity tiers.
package intensity

import (
	"errors"
	"math"
)

// Calibration bounds of the raw index observed in the training data.
const (
	MinIndex = 0.494975
	MaxIndex = 196.420577
)

// ErrNegativeWeight is returned when the square root of the body weight is
// undefined.
var ErrNegativeWeight = errors.New("weight must not be negative")

// Result is the intensity derived for a single workout.
type Result struct {
	RawIndex    float64
	ScaledIndex float64
	Tier        Tier
}

// RawIndex combines heart rate (bpm), duration (minutes) and weight (kg)
// into the unscaled intensity index.
func RawIndex(heartRate, duration, weight float64) (float64, error) {
	if weight < 0 {
		return 0, ErrNegativeWeight
	}
	return heartRate * duration * math.Sqrt(weight) / 1000, nil
}

// Scale rescales a raw index into the approximate [1,10] range. The result is
// not clamped.
func Scale(raw float64) float64 {
	return 1 + 9*((raw-MinIndex)/(MaxIndex-MinIndex))
}

// Calculate returns the raw and scaled intensity index.
func Calculate(heartRate, duration, weight float64) (raw, scaled float64, err error) {
	raw, err = RawIndex(heartRate, duration, weight)
	if err != nil {
		return 0, 0, err
	}
	return raw, Scale(raw), nil
}

// Evaluate calculates the index and classifies it in one step.
func Evaluate(heartRate, duration, weight float64) (Result, error) {
	raw, scaled, err := Calculate(heartRate, duration, weight)
	if err != nil {
		return Result{}, err
	}
	return Result{RawIndex: raw, ScaledIndex: scaled, Tier: Classify(scaled)}, nil
}
