package sources

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/de-tools/sales-atlas/pkg/models/store"
)

// Source is an opened bulk loader. Close releases connections it holds.
type Source interface {
	Load(ctx context.Context) ([]store.SaleRecord, error)
	Close() error
}

// Factory opens a Source for a profile.
type Factory func(ctx context.Context, profile domain.SourceProfile) (Source, error)

// Registry manages source factories keyed by source type
type Registry interface {
	// Register adds a new factory for a source type
	Register(sourceType domain.SourceType, factory Factory) error
	// Open instantiates a source for the profile's type
	Open(ctx context.Context, profile domain.SourceProfile) (Source, error)
	// ListTypes returns the registered source types, sorted
	ListTypes() []domain.SourceType
}

type registry struct {
	mu        sync.RWMutex
	factories map[domain.SourceType]Factory
}

func NewRegistry() Registry {
	return &registry{
		factories: make(map[domain.SourceType]Factory),
	}
}

func (r *registry) Register(sourceType domain.SourceType, factory Factory) error {
	if sourceType == "" {
		return fmt.Errorf("source type cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[sourceType]; exists {
		return fmt.Errorf("source type %q is already registered", sourceType)
	}

	r.factories[sourceType] = factory
	return nil
}

func (r *registry) Open(ctx context.Context, profile domain.SourceProfile) (Source, error) {
	r.mu.RLock()
	factory, exists := r.factories[profile.Type]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("source type %q is not registered", profile.Type)
	}

	src, err := factory(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("open source %s: %w", profile, err)
	}
	return src, nil
}

func (r *registry) ListTypes() []domain.SourceType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]domain.SourceType, 0, len(r.factories))
	for t := range r.factories {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}
