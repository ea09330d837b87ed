package model

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
)

// TypeLinear is the registry name of linear regression artifacts.
const TypeLinear = "linear"

// Linear is an ordinary linear regression over the feature vector.
type Linear struct {
	FeatureNames []string  `json:"feature_names"`
	Intercept    float64   `json:"intercept"`
	Coefficients []float64 `json:"coefficients"`
}

// LoadLinear decodes and validates a linear artifact.
func LoadLinear(r io.Reader) (Predictor, error) {
	var m Linear
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("decode linear model: %w", err)
	}
	if err := checkFeatureNames(m.FeatureNames); err != nil {
		return nil, err
	}
	if len(m.Coefficients) != NumFeatures {
		return nil, fmt.Errorf("%w: %d coefficients, want %d", ErrMalformed, len(m.Coefficients), NumFeatures)
	}
	return &m, nil
}

// Predict implements Predictor.
func (m *Linear) Predict(ctx context.Context, features FeatureVector) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	y := m.Intercept
	for i, c := range m.Coefficients {
		y += c * features[i]
	}
	return y, nil
}
