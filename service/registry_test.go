package service

import (
	"testing"

	"examgateway/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBackend(id string, capacity int) domain.Backend {
	return domain.Backend{ID: domain.BackendID(id), Address: "http://" + id + ":9000", Capacity: capacity}
}

func TestRegistry_Register(t *testing.T) {
	t.Run("registers_valid_backend", func(t *testing.T) {
		r := NewRegistry()
		require.NoError(t, r.Register(testBackend("b1", 2)))

		got, ok := r.Get("b1")
		require.True(t, ok)
		assert.Equal(t, testBackend("b1", 2), got)
	})
	t.Run("same_entry_again_is_noop", func(t *testing.T) {
		r := NewRegistry()
		require.NoError(t, r.Register(testBackend("b1", 2)))
		require.NoError(t, r.Register(testBackend("b1", 2)))
		assert.Len(t, r.List(), 1)
	})
	t.Run("conflicting_entry_is_duplicate_backend", func(t *testing.T) {
		r := NewRegistry()
		require.NoError(t, r.Register(testBackend("b1", 2)))

		err := r.Register(testBackend("b1", 3))
		require.Error(t, err)
		assert.Equal(t, ErrDuplicateBackend, ToGatewayErrorCode(err))
	})
	t.Run("invalid_entry_is_bad_parameter", func(t *testing.T) {
		r := NewRegistry()

		err := r.Register(domain.Backend{ID: "b1", Address: "ftp://nope", Capacity: 2})
		require.Error(t, err)
		assert.Equal(t, ErrBadParameter, ToGatewayErrorCode(err))
	})
}

func TestRegistry_ListOrder(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(testBackend("b1", 2)))
	require.NoError(t, r.Register(testBackend("b2", 2)))
	require.NoError(t, r.Register(testBackend("b3", 2)))

	t.Run("list_preserves_registration_order", func(t *testing.T) {
		ids := make([]domain.BackendID, 0, 3)
		for _, b := range r.List() {
			ids = append(ids, b.ID)
		}
		assert.Equal(t, []domain.BackendID{"b1", "b2", "b3"}, ids)
	})
	t.Run("remove_keeps_order_of_the_rest", func(t *testing.T) {
		r.Remove("b2")
		ids := make([]domain.BackendID, 0, 2)
		for _, b := range r.List() {
			ids = append(ids, b.ID)
		}
		assert.Equal(t, []domain.BackendID{"b1", "b3"}, ids)
	})
	t.Run("remove_unknown_is_noop", func(t *testing.T) {
		r.Remove("nope")
		assert.Len(t, r.List(), 2)
	})
}

func TestRegistry_ActiveCounters(t *testing.T) {
	t.Run("inc_clamps_at_capacity", func(t *testing.T) {
		r := NewRegistry()
		require.NoError(t, r.Register(testBackend("b1", 2)))

		r.IncActive("b1")
		r.IncActive("b1")
		r.IncActive("b1")
		assert.Equal(t, 2, r.ActiveCount("b1"))
	})
	t.Run("dec_never_goes_below_zero", func(t *testing.T) {
		r := NewRegistry()
		require.NoError(t, r.Register(testBackend("b1", 2)))

		r.DecActive("b1")
		assert.Equal(t, 0, r.ActiveCount("b1"))
	})
	t.Run("set_observed_overwrites_and_clamps", func(t *testing.T) {
		r := NewRegistry()
		require.NoError(t, r.Register(testBackend("b1", 2)))

		r.IncActive("b1")
		r.SetObservedActive("b1", 0)
		assert.Equal(t, 0, r.ActiveCount("b1"))

		r.SetObservedActive("b1", 99)
		assert.Equal(t, 2, r.ActiveCount("b1"))

		r.SetObservedActive("b1", -1)
		assert.Equal(t, 0, r.ActiveCount("b1"))
	})
	t.Run("unknown_id_is_noop", func(t *testing.T) {
		r := NewRegistry()
		r.IncActive("nope")
		r.DecActive("nope")
		r.SetObservedActive("nope", 5)
		assert.Equal(t, 0, r.ActiveCount("nope"))
	})
}
