package adapter_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-timeline/internal/adapter"
	"github.com/feral-file/ff-timeline/internal/domain"
)

var fastRetry = adapter.RetryPolicy{
	InitialInterval: time.Millisecond,
	MaxInterval:     5 * time.Millisecond,
	MaxElapsedTime:  time.Second,
}

func TestHTTPClient_Get(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		_, _ = w.Write([]byte(`{"residents":{"r1":{"name":"Alice","town":null}},"towns":{}}`))
	}))
	defer server.Close()

	client := adapter.NewHTTPClientWithRetry(time.Second, fastRetry)

	var data domain.SnapshotData
	require.NoError(t, client.Get(context.Background(), server.URL, &data))
	assert.Equal(t, "Alice", data.Residents["r1"].Name)
	assert.True(t, data.Residents["r1"].Town.IsNone())
}

func TestHTTPClient_Get_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"towns":{"Ravenholm":{"officers":[]}}}`))
	}))
	defer server.Close()

	client := adapter.NewHTTPClientWithRetry(time.Second, fastRetry)

	var data domain.SnapshotData
	require.NoError(t, client.Get(context.Background(), server.URL, &data))
	assert.Equal(t, int32(3), calls.Load())
	assert.Contains(t, data.Towns, "Ravenholm")
}

func TestHTTPClient_Get_ClientErrorIsPermanent(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer server.Close()

	client := adapter.NewHTTPClientWithRetry(time.Second, fastRetry)

	var data domain.SnapshotData
	err := client.Get(context.Background(), server.URL, &data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status code 404")
	assert.Equal(t, int32(1), calls.Load())
}

func TestHTTPClient_Get_InvalidBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	}))
	defer server.Close()

	client := adapter.NewHTTPClientWithRetry(time.Second, fastRetry)

	var data domain.SnapshotData
	err := client.Get(context.Background(), server.URL, &data)
	assert.ErrorContains(t, err, "failed to decode response")
}
