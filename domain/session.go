package domain

import "time"

// SessionKeyField is the JSON/form field carrying the session key on requests
// and in backend responses (e.g. /start_exam responses and /submit_answer
// requests). All requests with the same value are routed to the same backend.
const SessionKeyField = "session_id"

// SessionBinding pins a session key to the backend that served its first
// request. Created on the first routing decision for a new key; read on every
// subsequent request carrying the key; removed on explicit session end or by
// the idle sweeper. At most one binding exists per key at any time.
type SessionBinding struct {
	Key       string
	BackendID BackendID
	CreatedAt time.Time
	LastSeen  time.Time
}
