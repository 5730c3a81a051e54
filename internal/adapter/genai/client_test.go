package genai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"zerah-finance/internal/core/ports"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockHTTPClient implements HTTPClient for testing.
type mockHTTPClient struct {
	doFunc func(req *http.Request) (*http.Response, error)
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return m.doFunc(req)
}

func TestClient_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1beta/models/gemini-3-flash-preview:generateContent", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("x-goog-api-key"))

		var body generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Contents, 1)
		assert.Equal(t, "hello", body.Contents[0].Parts[0].Text)

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":"Hi, "},{"text":"there."}]},"finishReason":"STOP"}]}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", "secret", srv.Client(), zerolog.Nop())
	text, err := c.Generate(context.Background(), ports.GenerateRequest{Model: "gemini-3-flash-preview", Prompt: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "Hi, there.", text)
}

func TestClient_Generate_NoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"candidates":[]}`)
	}))
	defer srv.Close()

	text, err := NewClient(srv.URL, "k", nil, zerolog.Nop()).Generate(context.Background(), ports.GenerateRequest{Model: "m", Prompt: "p"})
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestClient_Generate_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = io.WriteString(w, `{"error":{"code":403,"message":"API key not valid","status":"PERMISSION_DENIED"}}`)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "bad", nil, zerolog.Nop()).Generate(context.Background(), ports.GenerateRequest{Model: "m", Prompt: "p"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
	assert.Contains(t, err.Error(), "API key not valid")
}

func TestClient_Generate_NonJSONError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "k", nil, zerolog.Nop()).Generate(context.Background(), ports.GenerateRequest{Model: "m", Prompt: "p"})
	assert.ErrorContains(t, err, "upstream unavailable")
}

func TestClient_Generate_TransportError(t *testing.T) {
	c := NewClient("http://gemini.invalid", "k", &mockHTTPClient{
		doFunc: func(*http.Request) (*http.Response, error) { return nil, errors.New("dial tcp: no such host") },
	}, zerolog.Nop())

	_, err := c.Generate(context.Background(), ports.GenerateRequest{Model: "m", Prompt: "p"})
	assert.ErrorContains(t, err, "HTTP request failed")
}

func TestClient_Generate_HonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := NewClient(srv.URL, "k", nil, zerolog.Nop()).Generate(ctx, ports.GenerateRequest{Model: "m", Prompt: "p"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "deadline"))
}
