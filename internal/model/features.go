package model

import (
	"fmt"
	"slices"
)

// Feature positions inside a FeatureVector. The model was trained on
// features in exactly this order.
const (
	FeatureAge = iota
	FeatureGender
	FeatureHeight
	FeatureWeight
	FeatureBMI
	FeatureDuration
	FeatureIntensityIndex
	FeatureHeartRate

	NumFeatures
)

// FeatureNames lists the training column names in vector order.
var FeatureNames = [NumFeatures]string{
	"Age",
	"Gender",
	"Height",
	"Weight",
	"BMI",
	"Duration",
	"Intensity_Index",
	"Heart_Rate",
}

// FeatureVector is the fixed-order input to a Predictor.
type FeatureVector [NumFeatures]float64

// checkFeatureNames rejects artifacts trained on a different column order.
func checkFeatureNames(names []string) error {
	if len(names) == 0 {
		return ErrMissingFeatureNames
	}
	if !slices.Equal(names, FeatureNames[:]) {
		return fmt.Errorf("%w: got %v, want %v", ErrFeatureOrder, names, FeatureNames)
	}
	return nil
}
