// Package prediction composes the intensity classification with the trained
// calorie model.
package prediction

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/Pratyasha-Tapaja/cbpmodel/internal/intensity"
	"github.com/Pratyasha-Tapaja/cbpmodel/internal/metrics"
	"github.com/Pratyasha-Tapaja/cbpmodel/internal/model"
)

// ErrModel wraps any failure returned by the underlying model.
var ErrModel = errors.New("model prediction failed")

// Result is a completed prediction.
type Result struct {
	Calories  float64
	Intensity intensity.Result
}

// Service is shared read-only by all requests.
type Service struct {
	model model.Predictor
}

// NewService constructs a Service around a loaded model.
func NewService(m model.Predictor) *Service {
	return &Service{model: m}
}

// Features builds the model input. The order is the one the model was
// trained on and must not change.
func Features(req Request, scaledIndex float64) model.FeatureVector {
	var fv model.FeatureVector
	fv[model.FeatureAge] = float64(req.Age)
	fv[model.FeatureGender] = float64(req.Gender)
	fv[model.FeatureHeight] = req.Height
	fv[model.FeatureWeight] = req.Weight
	fv[model.FeatureBMI] = req.BMI
	fv[model.FeatureDuration] = req.Duration
	fv[model.FeatureIntensityIndex] = scaledIndex
	fv[model.FeatureHeartRate] = req.HeartRate
	return fv
}

// Predict classifies the workout intensity and asks the model for a calorie
// estimate.
func (s *Service) Predict(ctx context.Context, req Request) (*Result, error) {
	in, err := intensity.Evaluate(req.HeartRate, req.Duration, req.Weight)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	kcal, err := s.model.Predict(ctx, Features(req, in.ScaledIndex))
	metrics.ObserveModelLatency(time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrModel, err)
	}
	if math.IsNaN(kcal) || math.IsInf(kcal, 0) {
		return nil, fmt.Errorf("%w: non-finite output %v", ErrModel, kcal)
	}

	return &Result{Calories: kcal, Intensity: in}, nil
}
