package model

import (
	"context"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTreeEnsemblePredict(t *testing.T) {
	p, err := Load(TypeTreeEnsemble, "testdata/ensemble.json")
	require.NoError(t, err)

	tests := []struct {
		name     string
		duration float64
		hr       float64
		index    float64
		want     float64
	}{
		{"short workout", 10, 150, 2, 10.5},
		{"long easy", 30, 90, 5, 12.5},
		{"long hard", 30, 150, 5, 13.5},
		{"missing heart rate goes default left", 30, math.NaN(), 5, 12.5},
		{"threshold is inclusive", 20, 150, 4, 10.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fv FeatureVector
			fv[FeatureDuration] = tt.duration
			fv[FeatureHeartRate] = tt.hr
			fv[FeatureIntensityIndex] = tt.index

			got, err := p.Predict(context.Background(), fv)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestLinearPredictUsesVectorOrder(t *testing.T) {
	p, err := Load(TypeLinear, "testdata/linear.json")
	require.NoError(t, err)

	got, err := p.Predict(context.Background(), FeatureVector{1, 2, 3, 4, 5, 6, 7, 8})
	require.NoError(t, err)
	assert.Equal(t, 87654322.0, got)
}

func TestLightGBMPredict(t *testing.T) {
	p, err := Load(TypeLightGBM, "testdata/lightgbm.txt")
	require.NoError(t, err)

	tests := []struct {
		name     string
		duration float64
		index    float64
		hr       float64
		want     float64
	}{
		{"moderate session", 30, 2.13, 100, 85},
		{"hard session", 45, 4.5, 180, 172},
		{"short session", 10, 6, 150, 52},
		{"thresholds are inclusive", 20, 3, 120, 35},
		{"missing heart rate treated as zero", 30, 4, math.NaN(), 155},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fv FeatureVector
			fv[FeatureDuration] = tt.duration
			fv[FeatureIntensityIndex] = tt.index
			fv[FeatureHeartRate] = tt.hr

			got, err := p.Predict(context.Background(), fv)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestLoadLightGBMRejects(t *testing.T) {
	_, err := Load(TypeLightGBM, "testdata/lightgbm_reordered.txt")
	require.ErrorIs(t, err, ErrFeatureOrder)

	_, err = LoadLightGBM(strings.NewReader("tree\nversion=v3\nnum_class=1\n\n"))
	require.ErrorIs(t, err, ErrMissingFeatureNames)

	names := "feature_names=" + strings.Join(FeatureNames[:], " ")
	_, err = LoadLightGBM(strings.NewReader("tree\nversion=v3\n" + names + "\n\n"))
	require.ErrorIs(t, err, ErrMalformed)
}

func TestLoadRejectsReorderedFeatures(t *testing.T) {
	_, err := Load(TypeLinear, "testdata/reordered.json")
	require.ErrorIs(t, err, ErrFeatureOrder)
}

func TestLoadRejectsCyclicTree(t *testing.T) {
	_, err := Load(TypeTreeEnsemble, "testdata/cycle.json")
	require.ErrorIs(t, err, ErrMalformed)
}

func TestLoadUnknownType(t *testing.T) {
	_, err := Load("neural_net", "testdata/linear.json")
	require.ErrorIs(t, err, ErrUnknownType)
	assert.Contains(t, err.Error(), TypeTreeEnsemble)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(TypeLinear, "testdata/nope.json")
	require.Error(t, err)
}

func TestLoaderValidation(t *testing.T) {
	tests := []struct {
		name    string
		loader  Loader
		payload string
		wantErr error
	}{
		{
			name:    "linear without feature names",
			loader:  LoadLinear,
			payload: `{"intercept": 1, "coefficients": [1,2,3,4,5,6,7,8]}`,
			wantErr: ErrMissingFeatureNames,
		},
		{
			name:    "linear with short coefficients",
			loader:  LoadLinear,
			payload: `{"feature_names": ["Age","Gender","Height","Weight","BMI","Duration","Intensity_Index","Heart_Rate"], "coefficients": [1]}`,
			wantErr: ErrMalformed,
		},
		{
			name:    "ensemble without trees",
			loader:  LoadTreeEnsemble,
			payload: `{"feature_names": ["Age","Gender","Height","Weight","BMI","Duration","Intensity_Index","Heart_Rate"], "trees": []}`,
			wantErr: ErrMalformed,
		},
		{
			name:    "ensemble with bad feature index",
			loader:  LoadTreeEnsemble,
			payload: `{"feature_names": ["Age","Gender","Height","Weight","BMI","Duration","Intensity_Index","Heart_Rate"], "trees": [{"nodes": [{"feature": 8, "left": 1, "right": 2}, {"leaf": true}, {"leaf": true}]}]}`,
			wantErr: ErrMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.loader(strings.NewReader(tt.payload))
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPredictHonoursCancelledContext(t *testing.T) {
	p, err := Load(TypeTreeEnsemble, "testdata/ensemble.json")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.Predict(ctx, FeatureVector{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	assert.Empty(t, r.List())

	r.Register("constant", func(io.Reader) (Predictor, error) { return nil, nil })
	_, ok := r.Loader("constant")
	assert.True(t, ok)
	_, ok = r.Loader(TypeLinear)
	assert.False(t, ok)

	assert.Equal(t, []string{TypeLightGBM, TypeLinear, TypeTreeEnsemble}, DefaultRegistry().List())
}

func TestFeatureNamesOrder(t *testing.T) {
	assert.Equal(t, [NumFeatures]string{
		"Age", "Gender", "Height", "Weight", "BMI", "Duration", "Intensity_Index", "Heart_Rate",
	}, FeatureNames)
	assert.Equal(t, 6, FeatureIntensityIndex)
	assert.Equal(t, 7, FeatureHeartRate)
}
