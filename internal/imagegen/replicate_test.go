package imagegen

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golden-vcr/icongen/internal/apperr"
)

func Test_NewReplicateClient(t *testing.T) {
	t.Run("explicit token is used", func(t *testing.T) {
		t.Setenv("REPLICATE_API_TOKEN", "")
		c, err := NewReplicateClient("custom-token", "", zerolog.Nop())
		require.NoError(t, err)
		assert.Equal(t, "custom-token", c.token)
		assert.Equal(t, DefaultReplicateURL, c.url)
	})
	t.Run("token falls back to environment", func(t *testing.T) {
		t.Setenv("REPLICATE_API_TOKEN", "env-token")
		c, err := NewReplicateClient("", "http://localhost:1234", zerolog.Nop())
		require.NoError(t, err)
		assert.Equal(t, "env-token", c.token)
		assert.Equal(t, "http://localhost:1234", c.url)
	})
	t.Run("missing token is a configuration error", func(t *testing.T) {
		t.Setenv("REPLICATE_API_TOKEN", "")
		c, err := NewReplicateClient("", "", zerolog.Nop())
		assert.Nil(t, c)
		e := apperr.As(err)
		assert.Equal(t, apperr.KindRemoteService, e.Kind)
		assert.Equal(t, http.StatusInternalServerError, e.Status)
		assert.Equal(t, "Missing REPLICATE_API_TOKEN", e.Message)
	})
}

func Test_ReplicateClient_GenerateOne(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantUrl     string
		wantStatus  int
		wantMessage string
		wantContext map[string]any
	}{
		{
			"single string output",
			http.StatusCreated,
			`{"status":"succeeded","output":"https://replicate.delivery/pbxt/icon.png"}`,
			"https://replicate.delivery/pbxt/icon.png",
			0,
			"",
			nil,
		},
		{
			"array output uses first element",
			http.StatusOK,
			`{"output":["https://replicate.delivery/pbxt/a.png","https://replicate.delivery/pbxt/b.png"]}`,
			"https://replicate.delivery/pbxt/a.png",
			0,
			"",
			nil,
		},
		{
			"non-success status carries upstream status and body",
			http.StatusInternalServerError,
			`API Error`,
			"",
			http.StatusInternalServerError,
			"Replicate API request failed",
			map[string]any{"status": 500, "originalError": "API Error"},
		},
		{
			"error field in successful response",
			http.StatusOK,
			`{"status":"failed","error":"Invalid prompt"}`,
			"",
			http.StatusBadGateway,
			"Replicate API error: Invalid prompt",
			map[string]any{"status": "failed", "originalError": "Invalid prompt"},
		},
		{
			"missing output",
			http.StatusOK,
			`{}`,
			"",
			http.StatusBadGateway,
			"Replicate returned no output",
			nil,
		},
		{
			"null output",
			http.StatusOK,
			`{"output":null}`,
			"",
			http.StatusBadGateway,
			"Replicate returned no output",
			nil,
		},
		{
			"empty output array",
			http.StatusOK,
			`{"output":[]}`,
			"",
			http.StatusBadGateway,
			"Replicate returned invalid image URL",
			map[string]any{"output": []any{}},
		},
		{
			"non-string output",
			http.StatusOK,
			`{"output":[42]}`,
			"",
			http.StatusBadGateway,
			"Replicate returned invalid image URL",
			map[string]any{"output": []any{float64(42)}},
		},
		{
			"malformed JSON",
			http.StatusOK,
			`not json`,
			"",
			http.StatusBadGateway,
			"Failed to generate icon",
			map[string]any{"originalError": "malformed JSON in Replicate response"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			upstream := &mockReplicate{status: tt.status, body: tt.body}
			srv := httptest.NewServer(upstream)
			defer srv.Close()

			c, err := NewReplicateClient("test-api-token", srv.URL, zerolog.Nop())
			require.NoError(t, err)

			url, err := c.GenerateOne(context.Background(), "test prompt")
			if tt.wantMessage == "" {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantUrl, url)
			} else {
				assert.Equal(t, "", url)
				e := apperr.As(err)
				assert.Equal(t, apperr.KindRemoteService, e.Kind)
				assert.Equal(t, tt.wantStatus, e.Status)
				assert.Equal(t, tt.wantMessage, e.Message)
				assert.Equal(t, tt.wantContext, e.Context)
			}

			// Every call must be an authorized, synchronous POST with our fixed
			// generation parameters
			require.Len(t, upstream.requests, 1)
			req := upstream.requests[0]
			assert.Equal(t, http.MethodPost, req.method)
			assert.Equal(t, "Bearer test-api-token", req.authorization)
			assert.Equal(t, "application/json", req.contentType)
			assert.Equal(t, "wait", req.prefer)
			assert.JSONEq(t, `{"input":{"prompt":"test prompt","num_outputs":1,"aspect_ratio":"1:1","megapixels":"0.25","output_format":"png","output_quality":90}}`, req.body)
		})
	}
}

func Test_ReplicateClient_GenerateOne_transportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	c, err := NewReplicateClient("test-api-token", srv.URL, zerolog.Nop())
	require.NoError(t, err)

	_, err = c.GenerateOne(context.Background(), "test prompt")
	e := apperr.As(err)
	assert.Equal(t, apperr.KindRemoteService, e.Kind)
	assert.Equal(t, http.StatusBadGateway, e.Status)
	assert.Equal(t, "Failed to generate icon", e.Message)
	assert.NotEmpty(t, e.Context["originalError"])
}

func Test_ReplicateClient_GenerateBatch(t *testing.T) {
	// Respond with a URL derived from the prompt so we can verify ordering
	srv := httptest.NewServer(http.HandlerFunc(func(res http.ResponseWriter, req *http.Request) {
		var payload predictionRequest
		if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
			http.Error(res, err.Error(), http.StatusBadRequest)
			return
		}
		if payload.Input.Prompt == "bad" {
			http.Error(res, "upstream exploded", http.StatusInternalServerError)
			return
		}
		json.NewEncoder(res).Encode(map[string]any{
			"output": []string{"https://replicate.delivery/" + payload.Input.Prompt + ".png"},
		})
	}))
	defer srv.Close()

	c, err := NewReplicateClient("test-api-token", srv.URL, zerolog.Nop())
	require.NoError(t, err)

	urls, err := c.GenerateBatch(context.Background(), []string{"one", "two", "three", "four"})
	assert.NoError(t, err)
	assert.Equal(t, []string{
		"https://replicate.delivery/one.png",
		"https://replicate.delivery/two.png",
		"https://replicate.delivery/three.png",
		"https://replicate.delivery/four.png",
	}, urls)

	urls, err = c.GenerateBatch(context.Background(), []string{"one", "bad", "three", "four"})
	assert.Nil(t, urls)
	e := apperr.As(err)
	assert.Equal(t, apperr.KindRemoteService, e.Kind)
	assert.Equal(t, http.StatusInternalServerError, e.Status)
}

type recordedRequest struct {
	method        string
	authorization string
	contentType   string
	prefer        string
	body          string
}

// mockReplicate stands in for the Replicate predictions endpoint
type mockReplicate struct {
	status int
	body   string

	mu       sync.Mutex
	requests []recordedRequest
}

func (m *mockReplicate) ServeHTTP(res http.ResponseWriter, req *http.Request) {
	b, _ := io.ReadAll(req.Body)
	m.mu.Lock()
	m.requests = append(m.requests, recordedRequest{
		method:        req.Method,
		authorization: req.Header.Get("authorization"),
		contentType:   req.Header.Get("content-type"),
		prefer:        req.Header.Get("prefer"),
		body:          string(b),
	})
	m.mu.Unlock()

	if !strings.HasPrefix(m.body, "{") {
		res.Header().Set("content-type", "text/plain")
	} else {
		res.Header().Set("content-type", "application/json")
	}
	res.WriteHeader(m.status)
	res.Write([]byte(m.body))
}
