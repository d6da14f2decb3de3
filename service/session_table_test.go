package service

import (
	"sync"
	"testing"
	"time"

	"examgateway/domain"
	"examgateway/helpers"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTable(t *testing.T, now *time.Time) (*sessionTable, *registry) {
	t.Helper()
	r := NewRegistry().(*registry)
	require.NoError(t, r.Register(testBackend("b1", 2)))
	require.NoError(t, r.Register(testBackend("b2", 2)))
	tp := NewTimeProvider(func() time.Time { return *now })
	// Hour-long sweep interval keeps the background sweeper out of the way; tests drive sweepIdle directly.
	table := NewSessionTable(r, tp, 30*time.Minute, time.Hour, log.NewNopLogger())
	t.Cleanup(func() { _ = table.Close() })
	return table, r
}

func TestNewSessionTable_Panics(t *testing.T) {
	tp := NewTimeProvider(helpers.TestNow)
	t.Run("idle_window_not_positive", func(t *testing.T) {
		assert.PanicsWithValue(t, "service.session_table.go: idleWindow must be positive", func() {
			NewSessionTable(NewRegistry(), tp, 0, time.Minute, log.NewNopLogger())
		})
	})
	t.Run("sweep_interval_not_positive", func(t *testing.T) {
		assert.PanicsWithValue(t, "service.session_table.go: sweepInterval must be positive", func() {
			NewSessionTable(NewRegistry(), tp, time.Minute, 0, log.NewNopLogger())
		})
	})
	t.Run("registry_nil", func(t *testing.T) {
		assert.PanicsWithValue(t, "service.session_table.go: registry is required", func() {
			NewSessionTable(nil, tp, time.Minute, time.Minute, log.NewNopLogger())
		})
	})
}

func TestSessionTable_BindOrLookup(t *testing.T) {
	t.Run("fresh_key_binds_and_increments", func(t *testing.T) {
		now := helpers.TestNow()
		table, r := newTestTable(t, &now)

		id, existed, err := table.BindOrLookup("s1", func() (domain.BackendID, error) { return "b1", nil })
		require.NoError(t, err)
		assert.False(t, existed)
		assert.Equal(t, domain.BackendID("b1"), id)
		assert.Equal(t, 1, r.ActiveCount("b1"))
	})
	t.Run("bound_key_reuses_without_choosing", func(t *testing.T) {
		now := helpers.TestNow()
		table, r := newTestTable(t, &now)
		table.Bind("s1", "b1")

		id, existed, err := table.BindOrLookup("s1", func() (domain.BackendID, error) {
			t.Fatal("chooser must not run for a bound key")
			return "", nil
		})
		require.NoError(t, err)
		assert.True(t, existed)
		assert.Equal(t, domain.BackendID("b1"), id)
		assert.Equal(t, 1, r.ActiveCount("b1"))
	})
	t.Run("chooser_error_leaves_no_binding", func(t *testing.T) {
		now := helpers.TestNow()
		table, r := newTestTable(t, &now)

		_, _, err := table.BindOrLookup("s1", func() (domain.BackendID, error) {
			return "", NewNoHealthyBackendError("nothing eligible", nil)
		})
		require.Error(t, err)
		assert.True(t, IsNoHealthyBackendError(err))
		_, ok := table.Lookup("s1")
		assert.False(t, ok)
		assert.Equal(t, 0, r.ActiveCount("b1"))
	})
	t.Run("concurrent_first_requests_observe_one_binding", func(t *testing.T) {
		now := helpers.TestNow()
		table, r := newTestTable(t, &now)

		const racers = 32
		ids := make([]domain.BackendID, racers)
		var wg sync.WaitGroup
		wg.Add(racers)
		for i := 0; i < racers; i++ {
			go func(i int) {
				defer wg.Done()
				id, _, err := table.BindOrLookup("s1", func() (domain.BackendID, error) { return "b2", nil })
				assert.NoError(t, err)
				ids[i] = id
			}(i)
		}
		wg.Wait()

		for _, id := range ids {
			assert.Equal(t, domain.BackendID("b2"), id)
		}
		assert.Equal(t, 1, r.ActiveCount("b2"))
		assert.Len(t, table.Bindings(), 1)
	})
}

func TestSessionTable_Bind(t *testing.T) {
	t.Run("rebinding_same_backend_keeps_count", func(t *testing.T) {
		now := helpers.TestNow()
		table, r := newTestTable(t, &now)

		table.Bind("s1", "b1")
		table.Bind("s1", "b1")
		assert.Equal(t, 1, r.ActiveCount("b1"))
	})
	t.Run("rebinding_other_backend_moves_count", func(t *testing.T) {
		now := helpers.TestNow()
		table, r := newTestTable(t, &now)

		table.Bind("s1", "b1")
		table.Bind("s1", "b2")
		assert.Equal(t, 0, r.ActiveCount("b1"))
		assert.Equal(t, 1, r.ActiveCount("b2"))

		id, ok := table.Lookup("s1")
		require.True(t, ok)
		assert.Equal(t, domain.BackendID("b2"), id)
	})
}

func TestSessionTable_Release(t *testing.T) {
	t.Run("release_decrements_exactly_once", func(t *testing.T) {
		now := helpers.TestNow()
		table, r := newTestTable(t, &now)
		table.Bind("s1", "b1")

		assert.True(t, table.Release("s1"))
		assert.Equal(t, 0, r.ActiveCount("b1"))

		assert.False(t, table.Release("s1"))
		assert.Equal(t, 0, r.ActiveCount("b1"))
	})
	t.Run("release_unknown_key_is_noop", func(t *testing.T) {
		now := helpers.TestNow()
		table, _ := newTestTable(t, &now)
		assert.False(t, table.Release("nope"))
	})
}

func TestSessionTable_SweepIdle(t *testing.T) {
	t.Run("idle_binding_is_reclaimed", func(t *testing.T) {
		now := helpers.TestNow()
		table, r := newTestTable(t, &now)
		table.Bind("s1", "b1")

		now = now.Add(30 * time.Minute)
		table.sweepIdle()

		_, ok := table.Lookup("s1")
		assert.False(t, ok)
		assert.Equal(t, 0, r.ActiveCount("b1"))
	})
	t.Run("recent_request_resets_the_window", func(t *testing.T) {
		now := helpers.TestNow()
		table, _ := newTestTable(t, &now)
		table.Bind("s1", "b1")

		now = now.Add(20 * time.Minute)
		_, ok := table.Lookup("s1")
		require.True(t, ok)

		now = now.Add(20 * time.Minute)
		table.sweepIdle()

		_, ok = table.Lookup("s1")
		assert.True(t, ok)
	})
	t.Run("active_binding_survives_the_sweep", func(t *testing.T) {
		now := helpers.TestNow()
		table, _ := newTestTable(t, &now)
		table.Bind("s1", "b1")

		now = now.Add(10 * time.Minute)
		table.sweepIdle()

		_, ok := table.Lookup("s1")
		assert.True(t, ok)
	})
}

func TestSessionTable_Close(t *testing.T) {
	now := helpers.TestNow()
	table, _ := newTestTable(t, &now)

	require.NoError(t, table.Close())
	require.NoError(t, table.Close())
}
