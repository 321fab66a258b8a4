package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"backoffice/internal/common/config"
	"backoffice/internal/common/errors"
	"backoffice/internal/common/logger"

	"github.com/stretchr/testify/assert"
)

func testOpenAIConfig(baseURL string) config.OpenAIConfig {
	return config.OpenAIConfig{
		BaseURL:     baseURL,
		APIKey:      "test-key",
		Model:       "gpt-3.5-turbo",
		Temperature: 0.1,
		Timeout:     5000,
		MaxRetries:  2,
	}
}

func completionResponse(content string) map[string]interface{} {
	return map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]interface{}{"content": content}},
		},
	}
}

func TestExtract_Success(t *testing.T) {
	var gotRequest chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotRequest))

		json.NewEncoder(w).Encode(completionResponse(`{"taakOmschrijving": "bellen"}`))
	}))
	defer server.Close()

	client := NewClient(testOpenAIConfig(server.URL), logger.NewTestLogger(t))
	raw, err := client.Extract(context.Background(), "Jansen BV bellen")

	assert.NoError(t, err)
	assert.Equal(t, `{"taakOmschrijving": "bellen"}`, raw)

	assert.Equal(t, "gpt-3.5-turbo", gotRequest.Model)
	assert.Equal(t, "json_object", gotRequest.ResponseFormat.Type)
	assert.InDelta(t, 0.1, gotRequest.Temperature, 0.001)
	assert.Len(t, gotRequest.Messages, 2)
	assert.Equal(t, "system", gotRequest.Messages[0].Role)
	assert.Equal(t, "user", gotRequest.Messages[1].Role)
	assert.Equal(t, "Jansen BV bellen", gotRequest.Messages[1].Content)
}

func TestExtract_RetriesServerErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			http.Error(w, "overloaded", http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(completionResponse(`{"ok": true}`))
	}))
	defer server.Close()

	client := NewClient(testOpenAIConfig(server.URL), logger.NewTestLogger(t))
	raw, err := client.Extract(context.Background(), "bericht")

	assert.NoError(t, err)
	assert.Equal(t, `{"ok": true}`, raw)
	assert.EqualValues(t, 3, atomic.LoadInt32(&calls))
}

func TestExtract_DoesNotRetryAuthErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "invalid api key", http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(testOpenAIConfig(server.URL), logger.NewTestLogger(t))
	_, err := client.Extract(context.Background(), "bericht")

	assert.Error(t, err)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))

	stdErr, ok := err.(*errors.StandardError)
	assert.True(t, ok)
	assert.Equal(t, errors.ErrCodeUpstreamUnavailable, stdErr.Code)
	assert.Contains(t, stdErr.Details, "status 401")
}

func TestExtract_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
	}))
	defer server.Close()

	client := NewClient(testOpenAIConfig(server.URL), logger.NewTestLogger(t))
	_, err := client.Extract(context.Background(), "bericht")

	assert.Error(t, err)
	stdErr, ok := err.(*errors.StandardError)
	assert.True(t, ok)
	assert.Equal(t, errors.ErrCodeUpstreamUnavailable, stdErr.Code)
}

func TestExtract_BackendUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	cfg := testOpenAIConfig(server.URL)
	cfg.MaxRetries = 0
	client := NewClient(cfg, logger.NewTestLogger(t))

	_, err := client.Extract(context.Background(), "bericht")

	assert.Error(t, err)
	stdErr, ok := err.(*errors.StandardError)
	assert.True(t, ok)
	assert.Equal(t, errors.ErrCodeUpstreamUnavailable, stdErr.Code)
	assert.True(t, stdErr.Retryable)
}
