package integrator

import (
	"sort"
	"sync"

	"github.com/vfg2006/hexa-dashboard-api/internal/domain"
)

// Registry associa cada plataforma ao adaptador que a atende
type Registry struct {
	mu        sync.RWMutex
	providers map[domain.Platform]domain.Provider
}

func NewRegistry(providers ...domain.Provider) *Registry {
	r := &Registry{
		providers: make(map[domain.Platform]domain.Provider, len(providers)),
	}
	for _, p := range providers {
		r.Register(p)
	}
	return r
}

// Register substitui um adaptador já registrado para a mesma plataforma
func (r *Registry) Register(provider domain.Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.providers[provider.Platform()] = provider
}

func (r *Registry) Get(platform domain.Platform) (domain.Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.providers[platform]
	return p, ok
}

func (r *Registry) Platforms() []domain.Platform {
	r.mu.RLock()
	defer r.mu.RUnlock()

	platforms := make([]domain.Platform, 0, len(r.providers))
	for p := range r.providers {
		platforms = append(platforms, p)
	}
	sort.Slice(platforms, func(i, j int) bool { return platforms[i] < platforms[j] })
	return platforms
}
