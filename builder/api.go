// SPDX-License-Identifier: MIT
// Package: factorgraph/builder
//
// api.go - public entry point, Dataset and shared constructor helpers.

package builder

import (
	"fmt"

	"github.com/katalvlaran/factorgraph/core"
	"github.com/katalvlaran/factorgraph/factors"
	"github.com/katalvlaran/factorgraph/geometry"
	"github.com/katalvlaran/factorgraph/graph"
)

// Dataset is a generated pose graph with its ground truth.
type Dataset struct {
	Variables []*core.Variable
	Factors   []core.Factor
	Truth     map[*core.Variable]geometry.SE2
}

// Constructor appends poses and factors to d using cfg.
type Constructor func(d *Dataset, cfg builderConfig) error

// Build resolves bopts and applies cons in order to an empty Dataset.
// Each constructor contributes one anchored component.
func Build(bopts []BuilderOption, cons ...Constructor) (*Dataset, error) {
	cfg := newBuilderConfig(bopts...)
	d := &Dataset{Truth: make(map[*core.Variable]geometry.SE2)}
	for i, fn := range cons {
		if fn == nil {
			return nil, fmt.Errorf("Build: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(d, cfg); err != nil {
			return nil, fmt.Errorf("Build: %w", err)
		}
	}

	return d, nil
}

// Graph returns a graph over d.Factors.
func (d *Dataset) Graph() (*graph.Graph, error) {
	return graph.New(d.Factors...)
}

// TruthAssignments returns the ground truth over d.Variables.
func (d *Dataset) TruthAssignments() (*core.Assignments, error) {
	values := make(map[*core.Variable]any, len(d.Truth))
	for v, p := range d.Truth {
		values[v] = p
	}

	return core.NewAssignmentsFromValues(d.Variables, values, geometry.NewRegistry())
}

// addPose appends a labelled SE2 variable with ground truth p.
func (d *Dataset) addPose(cfg builderConfig, p geometry.SE2) *core.Variable {
	v := core.NewNamedVariable(cfg.labelFn(len(d.Variables)), geometry.SE2Type{})
	d.Variables = append(d.Variables, v)
	d.Truth[v] = p

	return v
}

// anchor adds an exact prior at v's ground truth.
func (d *Dataset) anchor(method string, v *core.Variable) error {
	p, err := factors.NewPrior(v, d.Truth[v].Parameters(), nil)
	if err != nil {
		return fmt.Errorf("%s: NewPrior(%s): %v: %w", method, v, err, ErrConstructFailed)
	}
	d.Factors = append(d.Factors, p)

	return nil
}

// measure adds Between(a, b) with the true relative motion plus noise.
func (d *Dataset) measure(method string, cfg builderConfig, a, b *core.Variable) error {
	delta := d.Truth[a].Inverse().Compose(d.Truth[b]).Log()
	if cfg.noisy() {
		if cfg.rng == nil {
			return fmt.Errorf("%s: %w", method, ErrNeedRandSource)
		}
		delta[0] += cfg.rng.NormFloat64() * cfg.transSigma
		delta[1] += cfg.rng.NormFloat64() * cfg.transSigma
		delta[2] += cfg.rng.NormFloat64() * cfg.rotSigma
	}
	f, err := factors.NewBetween(a, b, delta[:], nil)
	if err != nil {
		return fmt.Errorf("%s: NewBetween(%s→%s): %v: %w", method, a, b, err, ErrConstructFailed)
	}
	d.Factors = append(d.Factors, f)

	return nil
}
