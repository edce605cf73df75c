package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientCreation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		baseURL     string
		timeout     time.Duration
		wantTimeout time.Duration
	}{
		{
			name:        "default configuration",
			baseURL:     "https://api.example.com",
			wantTimeout: 30 * time.Second,
		},
		{
			name:        "custom configuration",
			baseURL:     "https://api.test.com",
			timeout:     5 * time.Second,
			wantTimeout: 5 * time.Second,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client := New(Options{
				BaseURL: tt.baseURL,
				Timeout: tt.timeout,
			})

			assert.Equal(t, tt.baseURL, client.baseURL)
			assert.Equal(t, tt.wantTimeout, client.httpClient.Timeout)
		})
	}
}

func TestRequestFormatting(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		useBase  bool
		path     string
		wantURL  string
		wantCode int
	}{
		{
			name:     "absolute URL without base",
			path:     "/test",
			wantURL:  "/test",
			wantCode: http.StatusOK,
		},
		{
			name:     "relative path with base URL",
			useBase:  true,
			path:     "/points/34.0,-118.5",
			wantURL:  "/points/34.0,-118.5",
			wantCode: http.StatusOK,
		},
		{
			name:     "error status is returned not raised",
			useBase:  true,
			path:     "/missing",
			wantURL:  "/missing",
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, tt.wantURL, r.URL.String())
				w.WriteHeader(tt.wantCode)
			}))
			defer server.Close()

			opts := Options{Timeout: 5 * time.Second}
			path := tt.path
			if tt.useBase {
				opts.BaseURL = server.URL
			} else {
				path = server.URL + tt.path
			}

			resp, err := New(opts).Get(context.Background(), path)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCode, resp.StatusCode)
			assert.Equal(t, tt.wantCode == http.StatusOK, resp.OK())
		})
	}
}

func TestAbsoluteURLBypassesBase(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/gridpoints/LOX/150,40/forecast", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := New(Options{BaseURL: "https://api.weather.gov"})
	resp, err := client.Get(context.Background(), server.URL+"/gridpoints/LOX/150,40/forecast")
	require.NoError(t, err)
	assert.True(t, resp.OK())
}

func TestDefaultHeadersAndPost(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "secret", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"prompt":"hi"}`, string(body))
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	client := New(Options{
		BaseURL: server.URL,
		Headers: map[string]string{"Authorization": "secret"},
	})

	resp, err := client.Post(context.Background(), "/generate", []byte(`{"prompt":"hi"}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"ok":true}`, string(resp.Body))
}

func TestFuncOverrides(t *testing.T) {
	t.Parallel()

	client := New(Options{})
	client.GetFunc = func(ctx context.Context, path string) (*Response, error) {
		return &Response{StatusCode: http.StatusTeapot, Body: []byte(path)}, nil
	}
	client.PostFunc = func(ctx context.Context, path string, body []byte) (*Response, error) {
		return &Response{StatusCode: http.StatusAccepted, Body: body}, nil
	}

	resp, err := client.Get(context.Background(), "/x")
	require.NoError(t, err)
	assert.Equal(t, http.StatusTeapot, resp.StatusCode)
	assert.Equal(t, "/x", string(resp.Body))

	resp, err = client.Post(context.Background(), "/y", []byte("z"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.Equal(t, "z", string(resp.Body))
}

func TestTimeout(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := New(Options{
		BaseURL: server.URL,
		Timeout: 100 * time.Millisecond,
	})

	_, err := client.Get(context.Background(), "/test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "context deadline exceeded")
}
