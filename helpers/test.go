package helpers

import (
	"time"
)

// TestNow returns a fixed time (2026-08-20 12:00:00 UTC) for deterministic tests (binding timestamps, idle expiry, logs).
//
// Parameters: none.
//
// Returns: time.Time in UTC.
//
// Called from tests (e.g. service/session_table_test, service/gateway_test) when a fixed "current" time is needed.
func TestNow() time.Time {
	return time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
}
