package handlers

import (
	"testing"

	"examgateway/domain"
	"examgateway/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromBackendRequest(t *testing.T) {
	got := fromBackendRequest(BackendRequest{ID: "b1", Address: "http://b1:9000", Capacity: 2})
	assert.Equal(t, domain.Backend{ID: "b1", Address: "http://b1:9000", Capacity: 2}, got)
}

func TestExtractList(t *testing.T) {
	t.Run("named_field_in_object", func(t *testing.T) {
		items, ok := extractList([]byte(`{"results":[{"session_id":"s1"},{"session_id":"s2"}]}`), "results")
		require.True(t, ok)
		assert.Len(t, items, 2)
	})
	t.Run("bare_array", func(t *testing.T) {
		items, ok := extractList([]byte(`[{"session_id":"s1"}]`), "results")
		require.True(t, ok)
		assert.Len(t, items, 1)
	})
	t.Run("object_without_the_field", func(t *testing.T) {
		_, ok := extractList([]byte(`{"other":[]}`), "results")
		assert.False(t, ok)
	})
	t.Run("not_json", func(t *testing.T) {
		_, ok := extractList([]byte(`whoops`), "results")
		assert.False(t, ok)
	})
}

func TestToExamsResponse(t *testing.T) {
	t.Run("one_annotated_item_per_backend", func(t *testing.T) {
		results := []service.FanOutResult{
			{BackendID: "b1", Response: &domain.ForwardResponse{StatusCode: 200, Body: []byte(`{"title":"Java Basics Exam","capacity":2}`)}},
			{BackendID: "b2", Response: &domain.ForwardResponse{StatusCode: 200, Body: []byte(`{"title":"Go Basics Exam","capacity":4}`)}},
		}

		resp := toExamsResponse(results)
		require.Len(t, resp.Items, 2)
		assert.Empty(t, resp.Failed)

		first, ok := resp.Items[0].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "Java Basics Exam", first["title"])
		assert.Equal(t, "b1", first["backend_id"])
	})
	t.Run("failures_and_bad_bodies_are_reported", func(t *testing.T) {
		results := []service.FanOutResult{
			{BackendID: "b1", Response: &domain.ForwardResponse{StatusCode: 200, Body: []byte(`{"title":"Java Basics Exam"}`)}},
			{BackendID: "b2", Err: assert.AnError},
			{BackendID: "b3", Response: &domain.ForwardResponse{StatusCode: 500, Body: []byte(`{}`)}},
			{BackendID: "b4", Response: &domain.ForwardResponse{StatusCode: 200, Body: []byte(`not json`)}},
		}

		resp := toExamsResponse(results)
		assert.Len(t, resp.Items, 1)
		assert.Equal(t, []string{"b2", "b3", "b4"}, resp.Failed)
	})
}

func TestToResultsResponse(t *testing.T) {
	t.Run("merged_newest_first_with_backend_id", func(t *testing.T) {
		results := []service.FanOutResult{
			{BackendID: "b1", Response: &domain.ForwardResponse{StatusCode: 200, Body: []byte(`{"results":[{"session_id":"s1","ended_at":100},{"session_id":"s3","ended_at":300}]}`)}},
			{BackendID: "b2", Response: &domain.ForwardResponse{StatusCode: 200, Body: []byte(`{"results":[{"session_id":"s2","ended_at":200}]}`)}},
		}

		resp := toResultsResponse(results)
		require.Len(t, resp.Items, 3)
		assert.Empty(t, resp.Failed)

		sessions := make([]string, 0, len(resp.Items))
		backends := make([]string, 0, len(resp.Items))
		for _, item := range resp.Items {
			entry, ok := item.(map[string]any)
			require.True(t, ok)
			sessions = append(sessions, entry["session_id"].(string))
			backends = append(backends, entry["backend_id"].(string))
		}
		assert.Equal(t, []string{"s3", "s2", "s1"}, sessions)
		assert.Equal(t, []string{"b1", "b2", "b1"}, backends)
	})
	t.Run("entry_without_ended_at_sorts_last", func(t *testing.T) {
		results := []service.FanOutResult{
			{BackendID: "b1", Response: &domain.ForwardResponse{StatusCode: 200, Body: []byte(`{"results":[{"session_id":"s1"},{"session_id":"s2","ended_at":50}]}`)}},
		}

		resp := toResultsResponse(results)
		require.Len(t, resp.Items, 2)
		assert.Equal(t, "s2", resp.Items[0].(map[string]any)["session_id"])
		assert.Equal(t, "s1", resp.Items[1].(map[string]any)["session_id"])
	})
	t.Run("failed_backend_is_reported_not_fatal", func(t *testing.T) {
		results := []service.FanOutResult{
			{BackendID: "b1", Err: assert.AnError},
			{BackendID: "b2", Response: &domain.ForwardResponse{StatusCode: 200, Body: []byte(`{"results":[{"session_id":"s1","ended_at":100}]}`)}},
		}

		resp := toResultsResponse(results)
		assert.Len(t, resp.Items, 1)
		assert.Equal(t, []string{"b1"}, resp.Failed)
	})
}

func TestToConfigureResponse(t *testing.T) {
	results := []service.FanOutResult{
		{BackendID: "b1", Response: &domain.ForwardResponse{StatusCode: 200}},
		{BackendID: "b2", Response: &domain.ForwardResponse{StatusCode: 422}},
		{BackendID: "b3", Err: assert.AnError},
	}

	resp := toConfigureResponse(results)
	require.Len(t, resp, 3)
	assert.Equal(t, "ok", resp[0].Status)
	assert.Equal(t, "rejected", resp[1].Status)
	assert.Equal(t, "unreachable", resp[2].Status)
}
