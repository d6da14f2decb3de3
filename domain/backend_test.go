package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateBackend(t *testing.T) {
	valid := Backend{ID: "S1", Address: "http://localhost:6001", Capacity: 2}

	t.Run("valid_backend", func(t *testing.T) {
		require.NoError(t, ValidateBackend(valid))
	})
	t.Run("https_address_valid", func(t *testing.T) {
		b := valid
		b.Address = "https://exam-1.internal:6001"
		require.NoError(t, ValidateBackend(b))
	})
	t.Run("empty_id", func(t *testing.T) {
		b := valid
		b.ID = "  "
		err := ValidateBackend(b)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "id must be non-empty")
	})
	t.Run("address_without_scheme", func(t *testing.T) {
		b := valid
		b.Address = "localhost:6001"
		err := ValidateBackend(b)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "address must start with")
	})
	t.Run("address_with_trailing_slash", func(t *testing.T) {
		b := valid
		b.Address = "http://localhost:6001/"
		err := ValidateBackend(b)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must not end with /")
	})
	t.Run("zero_capacity", func(t *testing.T) {
		b := valid
		b.Capacity = 0
		err := ValidateBackend(b)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "capacity must be a positive integer")
	})
	t.Run("negative_capacity", func(t *testing.T) {
		b := valid
		b.Capacity = -1
		require.Error(t, ValidateBackend(b))
	})
}

func TestHealthSnapshot_LoadRatio(t *testing.T) {
	t.Run("half_full", func(t *testing.T) {
		s := HealthSnapshot{Active: 1, Capacity: 2}
		assert.InDelta(t, 0.5, s.LoadRatio(), 1e-9)
	})
	t.Run("empty", func(t *testing.T) {
		s := HealthSnapshot{Active: 0, Capacity: 4}
		assert.Zero(t, s.LoadRatio())
	})
	t.Run("zero_capacity_treated_as_full", func(t *testing.T) {
		s := HealthSnapshot{Active: 0, Capacity: 0}
		assert.InDelta(t, 1.0, s.LoadRatio(), 1e-9)
	})
}
