package model

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dmitryikh/leaves"
)

// TypeLightGBM is the registry name of LightGBM text models, as written by
// Booster.save_model.
const TypeLightGBM = "lightgbm"

// LightGBM evaluates a LightGBM regression booster.
type LightGBM struct {
	ensemble *leaves.Ensemble
}

// LoadLightGBM reads a LightGBM model.txt. The header's feature_names line
// must match FeatureNames exactly.
func LoadLightGBM(r io.Reader) (Predictor, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read lightgbm model: %w", err)
	}
	if err := checkFeatureNames(lightGBMFeatureNames(data)); err != nil {
		return nil, err
	}

	e, err := leaves.LGEnsembleFromReader(bufio.NewReader(bytes.NewReader(data)), true)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if e.NFeatures() != NumFeatures {
		return nil, fmt.Errorf("%w: model expects %d features, want %d", ErrMalformed, e.NFeatures(), NumFeatures)
	}
	if e.NOutputGroups() != 1 {
		return nil, fmt.Errorf("%w: %d output groups, want a single regression output", ErrMalformed, e.NOutputGroups())
	}
	return &LightGBM{ensemble: e}, nil
}

// lightGBMFeatureNames scans the header block, which ends at the first blank
// line.
func lightGBMFeatureNames(data []byte) []string {
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			break
		}
		if v, ok := strings.CutPrefix(line, "feature_names="); ok {
			return strings.Fields(v)
		}
	}
	return nil
}

// Predict runs every tree of the booster.
func (m *LightGBM) Predict(ctx context.Context, fv FeatureVector) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return m.ensemble.PredictSingle(fv[:], 0), nil
}
