// SPDX-License-Identifier: MIT

package core

import (
	"sort"
	"sync"
)

// ValueCodec converts between a typed value and its flat storage.
type ValueCodec interface {
	// StorageDim returns the number of scalars Flatten writes.
	StorageDim() int

	// Flatten writes value into dst (len StorageDim).
	Flatten(value any, dst []float64) error

	// Unflatten builds a typed value from src (len StorageDim).
	Unflatten(src []float64) (any, error)
}

// Registry maps variable-type names to value codecs.
//
// It is populated once (typically at startup) and read-only afterwards; it is
// passed explicitly to the calls that need it rather than living in a global.
// Concurrent reads are safe; Register takes a write lock.
type Registry struct {
	mu     sync.RWMutex
	codecs map[string]ValueCodec
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{codecs: make(map[string]ValueCodec)}
}

// Register installs codec under name.
//
// Errors:
//   - ErrDuplicateType if name is already registered.
func (r *Registry) Register(name string, codec ValueCodec) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.codecs[name]; exists {
		return coreErrorf("Register "+name, ErrDuplicateType)
	}
	r.codecs[name] = codec

	return nil
}

// Lookup returns the codec registered under name.
func (r *Registry) Lookup(name string) (ValueCodec, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.codecs[name]

	return c, ok
}

// Names returns the registered type names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.codecs))
	for name := range r.codecs {
		out = append(out, name)
	}
	sort.Strings(out)

	return out
}

// Flatten encodes value into dst with the codec registered under name.
func (r *Registry) Flatten(name string, value any, dst []float64) error {
	c, ok := r.Lookup(name)
	if !ok {
		return ErrUnregisteredType
	}
	if c.StorageDim() != len(dst) {
		return ErrDimensionMismatch
	}

	return c.Flatten(value, dst)
}

// Unflatten decodes src with the codec registered under name.
func (r *Registry) Unflatten(name string, src []float64) (any, error) {
	c, ok := r.Lookup(name)
	if !ok {
		return nil, ErrUnregisteredType
	}
	if c.StorageDim() != len(src) {
		return nil, ErrDimensionMismatch
	}

	return c.Unflatten(src)
}
