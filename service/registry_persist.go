package service

import (
	"context"
	"encoding/json"

	"examgateway/domain"
	"examgateway/helpers"
	"examgateway/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// persistentRegistry decorates a Registry with write-through persistence, so the backend catalog
// survives a gateway restart. Register and Remove hit the cache after the in-memory registry has
// accepted them; load-accounting calls never touch the cache, active counts are runtime state.
// Persistence failures are logged, not surfaced — the in-memory registry stays the source of truth
// within one process lifetime.
type persistentRegistry struct {
	inner  interfaces.Registry
	cache  interfaces.Cache[domain.Backend]
	logger log.Logger
}

// NewPersistentRegistry decorates inner with write-through persistence via cache. Panics on any
// nil argument.
//
// Returns: *persistentRegistry (implements interfaces.Registry).
//
// Called from cmd/main when REDIS_ADDR is configured.
func NewPersistentRegistry(inner interfaces.Registry, cache interfaces.Cache[domain.Backend], logger log.Logger) *persistentRegistry {
	return &persistentRegistry{
		inner:  helpers.NilPanic(inner, "service.registry_persist.go: inner is required"),
		cache:  helpers.NilPanic(cache, "service.registry_persist.go: cache is required"),
		logger: log.With(helpers.NilPanic(logger, "service.registry_persist.go: logger is required"), "component", "registry"),
	}
}

// LoadAll seeds the in-memory registry from the cache. Entries that fail validation (e.g. written
// by an older build) are skipped with a log line rather than failing startup.
//
// Called from cmd/main once, before the health monitor starts.
func (p *persistentRegistry) LoadAll(ctx context.Context) error {
	backends, err := p.cache.ListAllValues(ctx)
	if err != nil {
		return err
	}
	for _, b := range backends {
		if err := p.inner.Register(b); err != nil {
			level.Error(p.logger).Log("msg", "skipping persisted backend", "backend", b.ID, "err", err)
		}
	}
	level.Info(p.logger).Log("msg", "registry restored", "backends", len(backends))
	return nil
}

func (p *persistentRegistry) Register(b domain.Backend) error {
	if err := p.inner.Register(b); err != nil {
		return err
	}
	if err := p.cache.WriteValue(context.Background(), string(b.ID), b, 0); err != nil {
		level.Error(p.logger).Log("msg", "can't persist backend", "backend", b.ID, "err", err)
	}
	return nil
}

func (p *persistentRegistry) Remove(id domain.BackendID) {
	p.inner.Remove(id)
	if err := p.cache.DeleteValue(context.Background(), string(id)); err != nil {
		level.Error(p.logger).Log("msg", "can't delete persisted backend", "backend", id, "err", err)
	}
}

func (p *persistentRegistry) List() []domain.Backend { return p.inner.List() }

func (p *persistentRegistry) Get(id domain.BackendID) (domain.Backend, bool) { return p.inner.Get(id) }

func (p *persistentRegistry) IncActive(id domain.BackendID) { p.inner.IncActive(id) }

func (p *persistentRegistry) DecActive(id domain.BackendID) { p.inner.DecActive(id) }

func (p *persistentRegistry) ActiveCount(id domain.BackendID) int { return p.inner.ActiveCount(id) }

func (p *persistentRegistry) SetObservedActive(id domain.BackendID, active int) {
	p.inner.SetObservedActive(id, active)
}

// MarshalBackend and UnmarshalBackend are the codec pair handed to the redis cache.
func MarshalBackend(b domain.Backend) ([]byte, error) { return json.Marshal(b) }

func UnmarshalBackend(data []byte) (domain.Backend, error) {
	var b domain.Backend
	err := json.Unmarshal(data, &b)
	return b, err
}
