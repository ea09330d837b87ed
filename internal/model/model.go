// Package model loads the trained calorie regression model and exposes it
// behind a small prediction interface.
package model

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
)

var (
	// ErrUnknownType is returned when no loader is registered for a model type.
	ErrUnknownType = errors.New("unsupported model type")
	// ErrMissingFeatureNames is returned for artifacts without a feature list.
	ErrMissingFeatureNames = errors.New("model artifact has no feature_names")
	// ErrFeatureOrder is returned when an artifact's features differ from FeatureNames.
	ErrFeatureOrder = errors.New("model feature order mismatch")
	// ErrMalformed is returned for structurally invalid artifacts.
	ErrMalformed = errors.New("malformed model artifact")
)

// Predictor turns a feature vector into a calorie estimate. Implementations
// are immutable once loaded and safe for concurrent use.
type Predictor interface {
	Predict(ctx context.Context, features FeatureVector) (float64, error)
}

// Loader decodes a model artifact of one type.
type Loader func(r io.Reader) (Predictor, error)

// Registry maps model type names to loaders.
type Registry struct {
	loaders map[string]Loader
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{loaders: make(map[string]Loader)}
}

// DefaultRegistry returns a registry with every built-in artifact type.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(TypeTreeEnsemble, LoadTreeEnsemble)
	r.Register(TypeLinear, LoadLinear)
	r.Register(TypeLightGBM, LoadLightGBM)
	return r
}

// Register adds a loader, replacing any previous one of the same name.
func (r *Registry) Register(name string, loader Loader) {
	r.loaders[name] = loader
}

// Loader returns the loader registered under name.
func (r *Registry) Loader(name string) (Loader, bool) {
	l, ok := r.loaders[name]
	return l, ok
}

// List returns the registered type names, sorted.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.loaders))
	for name := range r.loaders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Open loads the artifact at path using the loader registered for modelType.
func (r *Registry) Open(modelType, path string) (Predictor, error) {
	loader, ok := r.Loader(modelType)
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownType, modelType, r.List())
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open model %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	p, err := loader(f)
	if err != nil {
		return nil, fmt.Errorf("load %s model %s: %w", modelType, path, err)
	}
	return p, nil
}

// Load opens a model artifact with the default registry.
func Load(modelType, path string) (Predictor, error) {
	return DefaultRegistry().Open(modelType, path)
}
