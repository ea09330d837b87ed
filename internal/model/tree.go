package model

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
)

// TypeTreeEnsemble is the registry name of gradient-boosted tree artifacts.
const TypeTreeEnsemble = "tree_ensemble"

// TreeNode is one node of a regression tree. Leaves carry Value; split nodes
// send x <= Threshold to Left and everything else to Right. NaN inputs follow
// DefaultLeft.
type TreeNode struct {
	Feature     int     `json:"feature"`
	Threshold   float64 `json:"threshold"`
	Left        int     `json:"left"`
	Right       int     `json:"right"`
	DefaultLeft bool    `json:"default_left,omitempty"`
	Value       float64 `json:"value"`
	Leaf        bool    `json:"leaf"`
}

// Tree is a flattened regression tree rooted at node 0.
type Tree struct {
	Nodes []TreeNode `json:"nodes"`
}

// TreeEnsemble sums the leaf values of every tree on top of BaseScore.
type TreeEnsemble struct {
	FeatureNames []string `json:"feature_names"`
	BaseScore    float64  `json:"base_score"`
	Trees        []Tree   `json:"trees"`
}

// LoadTreeEnsemble decodes and validates a tree ensemble artifact.
func LoadTreeEnsemble(r io.Reader) (Predictor, error) {
	var m TreeEnsemble
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("decode tree ensemble: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks feature order and tree structure. Child indexes must point
// forward so traversal always terminates.
func (m *TreeEnsemble) Validate() error {
	if err := checkFeatureNames(m.FeatureNames); err != nil {
		return err
	}
	if len(m.Trees) == 0 {
		return fmt.Errorf("%w: no trees", ErrMalformed)
	}
	for ti, tree := range m.Trees {
		if len(tree.Nodes) == 0 {
			return fmt.Errorf("%w: tree %d has no nodes", ErrMalformed, ti)
		}
		for ni, n := range tree.Nodes {
			if n.Leaf {
				continue
			}
			if n.Feature < 0 || n.Feature >= NumFeatures {
				return fmt.Errorf("%w: tree %d node %d feature %d out of range", ErrMalformed, ti, ni, n.Feature)
			}
			for _, child := range []int{n.Left, n.Right} {
				if child <= ni || child >= len(tree.Nodes) {
					return fmt.Errorf("%w: tree %d node %d child %d invalid", ErrMalformed, ti, ni, child)
				}
			}
		}
	}
	return nil
}

// Predict implements Predictor.
func (m *TreeEnsemble) Predict(ctx context.Context, features FeatureVector) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	sum := m.BaseScore
	for _, tree := range m.Trees {
		sum += tree.eval(features)
	}
	return sum, nil
}

func (t Tree) eval(features FeatureVector) float64 {
	idx := 0
	for {
		n := t.Nodes[idx]
		if n.Leaf {
			return n.Value
		}
		x := features[n.Feature]
		switch {
		case math.IsNaN(x):
			if n.DefaultLeft {
				idx = n.Left
			} else {
				idx = n.Right
			}
		case x <= n.Threshold:
			idx = n.Left
		default:
			idx = n.Right
		}
	}
}
