// SPDX-License-Identifier: MIT

package geometry

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/factorgraph/core"
)

// ErrValueType is returned when a codec is handed a value of the wrong Go type.
var ErrValueType = errors.New("geometry: unexpected value type")

// Register installs codecs for SO2, SE2, SO3 and SE3 into reg.
// Each codec accepts a value or a pointer of the matching group type and
// unflattens to a value.
func Register(reg *core.Registry) error {
	codecs := []struct {
		name  string
		codec core.ValueCodec
	}{
		{NameSO2, codec[SO2]{dim: 2, params: SO2.Parameters, from: SO2FromParameters}},
		{NameSE2, codec[SE2]{dim: 4, params: SE2.Parameters, from: SE2FromParameters}},
		{NameSO3, codec[SO3]{dim: 4, params: SO3.Parameters, from: SO3FromParameters}},
		{NameSE3, codec[SE3]{dim: 7, params: SE3.Parameters, from: SE3FromParameters}},
	}
	for _, c := range codecs {
		if err := reg.Register(c.name, c.codec); err != nil {
			return fmt.Errorf("geometry: Register: %w", err)
		}
	}

	return nil
}

// NewRegistry returns a registry with the geometry codecs installed.
func NewRegistry() *core.Registry {
	reg := core.NewRegistry()
	if err := Register(reg); err != nil {
		panic(err) // fresh registry cannot hold duplicates
	}

	return reg
}

type codec[T any] struct {
	dim    int
	params func(T) []float64
	from   func([]float64) T
}

func (c codec[T]) StorageDim() int { return c.dim }

func (c codec[T]) Flatten(value any, dst []float64) error {
	switch v := value.(type) {
	case T:
		copy(dst, c.params(v))
	case *T:
		if v == nil {
			return ErrValueType
		}
		copy(dst, c.params(*v))
	default:
		return fmt.Errorf("%w: %T", ErrValueType, value)
	}

	return nil
}

func (c codec[T]) Unflatten(src []float64) (any, error) {
	return c.from(src), nil
}
