package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostJSONSendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/bulkImportDemobProfiles", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var in map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"imported": 2}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", "tok", 5*time.Second)
	var out struct {
		Imported int `json:"imported"`
	}
	require.NoError(t, c.PostJSON(context.Background(), "/api/bulkImportDemobProfiles", map[string]any{"profiles": []any{}}, &out))
	assert.Equal(t, 2, out.Imported)
}

func TestErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/plain" {
			http.Error(w, "upstream down", http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"missing bearer token","code":"unauthorized"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", time.Second)

	_, err := c.Get(context.Background(), "/api/exportDemobData")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "unauthorized", apiErr.Code)
	assert.Equal(t, "missing bearer token", apiErr.Message)

	_, err = c.Get(context.Background(), "/plain")
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "upstream down", apiErr.Message)
}

func TestGetReturnsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Write([]byte("a,b\n"))
	}))
	defer srv.Close()

	resp, err := NewClient(srv.URL, "", time.Second).Get(context.Background(), "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n", string(body))
}
