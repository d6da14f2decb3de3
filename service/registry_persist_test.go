package service

import (
	"context"
	"testing"

	"examgateway/domain"
	"examgateway/interfaces/mock"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersistentRegistry_WriteThrough(t *testing.T) {
	t.Run("register_persists_the_backend", func(t *testing.T) {
		cache := &mock.CacheMock[domain.Backend]{}
		p := NewPersistentRegistry(NewRegistry(), cache, log.NewNopLogger())

		require.NoError(t, p.Register(testBackend("b1", 2)))

		writes := cache.WriteValueCalls()
		require.Len(t, writes, 1)
		assert.Equal(t, "b1", writes[0].Key)
		assert.Equal(t, testBackend("b1", 2), writes[0].Item)
		assert.Equal(t, 0, writes[0].TtlMs)
	})
	t.Run("rejected_register_is_not_persisted", func(t *testing.T) {
		cache := &mock.CacheMock[domain.Backend]{}
		p := NewPersistentRegistry(NewRegistry(), cache, log.NewNopLogger())
		require.NoError(t, p.Register(testBackend("b1", 2)))

		err := p.Register(testBackend("b1", 3))
		require.Error(t, err)
		assert.Len(t, cache.WriteValueCalls(), 1)
	})
	t.Run("persistence_failure_does_not_fail_register", func(t *testing.T) {
		cache := &mock.CacheMock[domain.Backend]{
			WriteValueFunc: func(ctx context.Context, key string, item domain.Backend, ttlMs int) error {
				return NewInternalServerError("Redis write key error", nil)
			},
		}
		p := NewPersistentRegistry(NewRegistry(), cache, log.NewNopLogger())

		require.NoError(t, p.Register(testBackend("b1", 2)))
		_, ok := p.Get("b1")
		assert.True(t, ok)
	})
	t.Run("remove_deletes_the_persisted_entry", func(t *testing.T) {
		cache := &mock.CacheMock[domain.Backend]{}
		p := NewPersistentRegistry(NewRegistry(), cache, log.NewNopLogger())
		require.NoError(t, p.Register(testBackend("b1", 2)))

		p.Remove("b1")

		deletes := cache.DeleteValueCalls()
		require.Len(t, deletes, 1)
		assert.Equal(t, "b1", deletes[0].Key)
	})
}

func TestPersistentRegistry_LoadAll(t *testing.T) {
	t.Run("restores_persisted_backends", func(t *testing.T) {
		cache := &mock.CacheMock[domain.Backend]{
			ListAllValuesFunc: func(ctx context.Context) ([]domain.Backend, error) {
				return []domain.Backend{testBackend("b1", 2), testBackend("b2", 4)}, nil
			},
		}
		p := NewPersistentRegistry(NewRegistry(), cache, log.NewNopLogger())

		require.NoError(t, p.LoadAll(context.Background()))
		assert.Len(t, p.List(), 2)
	})
	t.Run("invalid_persisted_entry_is_skipped", func(t *testing.T) {
		cache := &mock.CacheMock[domain.Backend]{
			ListAllValuesFunc: func(ctx context.Context) ([]domain.Backend, error) {
				return []domain.Backend{
					{ID: "broken", Address: "not-a-url", Capacity: 2},
					testBackend("b1", 2),
				}, nil
			},
		}
		p := NewPersistentRegistry(NewRegistry(), cache, log.NewNopLogger())

		require.NoError(t, p.LoadAll(context.Background()))
		assert.Len(t, p.List(), 1)
	})
	t.Run("cache_error_fails_the_load", func(t *testing.T) {
		cache := &mock.CacheMock[domain.Backend]{
			ListAllValuesFunc: func(ctx context.Context) ([]domain.Backend, error) {
				return nil, NewInternalServerError("Redis get keys error", nil)
			},
		}
		p := NewPersistentRegistry(NewRegistry(), cache, log.NewNopLogger())

		require.Error(t, p.LoadAll(context.Background()))
	})
}

func TestBackendCodec(t *testing.T) {
	data, err := MarshalBackend(testBackend("b1", 2))
	require.NoError(t, err)

	got, err := UnmarshalBackend(data)
	require.NoError(t, err)
	assert.Equal(t, testBackend("b1", 2), got)
}
