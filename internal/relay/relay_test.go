package relay

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lewieville/g1-creative-sub000/internal/domain"
)

func validLead() domain.LeadSubmission {
	return domain.LeadSubmission{
		Name:    "Ada Lovelace",
		Email:   "ada@example.com",
		Message: "We need a new site.",
	}
}

func TestSendSuccess(t *testing.T) {
	var calls atomic.Int32
	var received map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", DefaultTimeout)
	err := c.Send(context.Background(), validLead())
	require.NoError(t, err)

	assert.Equal(t, int32(1), calls.Load(), "exactly one upstream call")
	assert.Equal(t, "test-key", received["access_key"])
	assert.Equal(t, "Ada Lovelace", received["name"])

	// Optional fields are normalized to empty strings, not omitted.
	for _, field := range []string{"company", "phone", "service", "budget"} {
		v, ok := received[field]
		assert.True(t, ok, "field %s missing from payload", field)
		assert.Equal(t, "", v)
	}
}

func TestSendUpstreamFailure(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
	}{
		{
			name:        "message shape",
			status:      http.StatusUnprocessableEntity,
			body:        `{"success":false,"message":"Invalid access key"}`,
			wantMessage: "Invalid access key",
		},
		{
			name:        "error shape",
			status:      http.StatusBadRequest,
			body:        `{"error":"Bad payload"}`,
			wantMessage: "Bad payload",
		},
		{
			name:        "errors array of strings",
			status:      http.StatusBadRequest,
			body:        `{"errors":["email is required","name is required"]}`,
			wantMessage: "email is required; name is required",
		},
		{
			name:        "errors array of objects",
			status:      http.StatusBadRequest,
			body:        `{"errors":[{"message":"quota exceeded"}]}`,
			wantMessage: "quota exceeded",
		},
		{
			name:        "unrecognized body falls back",
			status:      http.StatusInternalServerError,
			body:        `<html>oops</html>`,
			wantMessage: "Form submission failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewClient(srv.URL, "k", DefaultTimeout)
			err := c.Send(context.Background(), validLead())

			var upstream *UpstreamError
			require.ErrorAs(t, err, &upstream)
			assert.Equal(t, tt.status, upstream.Status)
			assert.Equal(t, tt.wantMessage, upstream.Message)
		})
	}
}

func TestSendTimeout(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		<-release
	}))
	defer srv.Close()
	defer close(release)

	c := NewClient(srv.URL, "k", 50*time.Millisecond)
	err := c.Send(context.Background(), validLead())

	var transport *TransportError
	require.ErrorAs(t, err, &transport)
	assert.Equal(t, TransportTimeout, transport.Kind)
	assert.Equal(t, int32(1), calls.Load(), "no retry after timeout")
}

func TestSendNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	c := NewClient(srv.URL, "k", DefaultTimeout)
	err := c.Send(context.Background(), validLead())

	var transport *TransportError
	require.ErrorAs(t, err, &transport)
	assert.Equal(t, TransportNetwork, transport.Kind)
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient("", "k", 0)
	assert.Equal(t, DefaultEndpoint, c.endpoint)
	assert.Equal(t, DefaultTimeout, c.timeout)
}
