package chain

import (
	"fmt"

	"marketmind/internal/domain"
)

// Registry maps chain tags to their adapter. Exactly one adapter is
// bound per tag; selection is total and deterministic.
type Registry struct {
	adapters map[string]domain.ChainAdapter
}

// NewRegistry creates a registry from the given adapters
func NewRegistry(adapters ...domain.ChainAdapter) *Registry {
	m := make(map[string]domain.ChainAdapter, len(adapters))
	for _, a := range adapters {
		m[a.Chain()] = a
	}
	return &Registry{adapters: m}
}

// ForChain returns the adapter bound to the chain tag
func (r *Registry) ForChain(tag string) (domain.ChainAdapter, error) {
	adapter, ok := r.adapters[tag]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownChain, tag)
	}
	return adapter, nil
}

// Chains returns the registered chain tags
func (r *Registry) Chains() []string {
	tags := make([]string, 0, len(r.adapters))
	for tag := range r.adapters {
		tags = append(tags, tag)
	}
	return tags
}
