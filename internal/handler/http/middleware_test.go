// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-social-graph/internal/logger"
	"github.com/MKhiriev/go-social-graph/internal/utils"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithTraceID(t *testing.T) {
	tests := []struct {
		name           string
		requestTraceID string
	}{
		{name: "trace id from request header is reused", requestTraceID: "my-custom-trace-id"},
		{name: "trace id is generated when absent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestHandler(t, testConfig())

			var ctxTraceID string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				ctxTraceID = utils.GetTraceIDFromContext(r.Context())
				w.WriteHeader(http.StatusTeapot)
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.requestTraceID != "" {
				req.Header.Set(traceIDHeader, tt.requestTraceID)
			}
			rec := httptest.NewRecorder()
			h.withTraceID(next).ServeHTTP(rec, req)

			got := rec.Header().Get(traceIDHeader)
			require.NotEmpty(t, got)
			assert.Equal(t, got, ctxTraceID)
			assert.Equal(t, http.StatusTeapot, rec.Code)

			if tt.requestTraceID != "" {
				assert.Equal(t, tt.requestTraceID, got)
				return
			}
			parsed, err := uuid.Parse(got)
			require.NoError(t, err)
			assert.Equal(t, uuid.Version(7), parsed.Version())
		})
	}
}

func TestWithTraceID_LoggerCarriesTraceID(t *testing.T) {
	var buf bytes.Buffer
	h := &Handler{logger: &logger.Logger{Logger: zerolog.New(&buf)}}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.FromRequest(r).Info().Msg("inside")
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(traceIDHeader, "trace-123")
	h.withTraceID(next).ServeHTTP(httptest.NewRecorder(), req)

	assert.Contains(t, buf.String(), `"trace_id":"trace-123"`)
}

func TestWithLogging_RecordsStatusAndSize(t *testing.T) {
	var buf bytes.Buffer
	h := &Handler{logger: logger.Nop()}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte("hello"))
	})

	req := httptest.NewRequest(http.MethodPost, "/api/users", nil)
	req = req.WithContext(zerolog.New(&buf).WithContext(req.Context()))
	rec := httptest.NewRecorder()
	h.withLogging(next).ServeHTTP(rec, req)

	out := buf.String()
	assert.Contains(t, out, `"method":"POST"`)
	assert.Contains(t, out, `"uri":"/api/users"`)
	assert.Contains(t, out, `"status":201`)
	assert.Contains(t, out, `"size":5`)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestResponseWriter(t *testing.T) {
	t.Run("implicit 200 on write", func(t *testing.T) {
		rec := httptest.NewRecorder()
		w := &responseWriter{ResponseWriter: rec}

		n, err := w.Write([]byte("abc"))
		require.NoError(t, err)

		assert.Equal(t, 3, n)
		assert.Equal(t, http.StatusOK, w.status)
		assert.Equal(t, 3, w.size)
	})

	t.Run("second WriteHeader is ignored", func(t *testing.T) {
		rec := httptest.NewRecorder()
		w := &responseWriter{ResponseWriter: rec}

		w.WriteHeader(http.StatusNotFound)
		w.WriteHeader(http.StatusOK)

		assert.Equal(t, http.StatusNotFound, w.status)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("sizes accumulate", func(t *testing.T) {
		w := &responseWriter{ResponseWriter: httptest.NewRecorder()}
		w.Write([]byte("ab"))
		w.Write([]byte("cde"))

		assert.Equal(t, 5, w.size)
	})
}

func TestAuth_StoresCallerInContext(t *testing.T) {
	h, deps := newTestHandler(t, testConfig())
	expectCaller(deps, 42)

	var callerID int64
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		callerID, _ = utils.GetUserIDFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+testBearer)
	h.auth(next).ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, int64(42), callerID)
}

func TestIPRateLimiter(t *testing.T) {
	t.Run("disabled when limit is zero", func(t *testing.T) {
		l := newIPRateLimiter(0, 0)
		for range 100 {
			require.True(t, l.allow("10.0.0.1"))
		}
	})

	t.Run("buckets are per ip", func(t *testing.T) {
		l := newIPRateLimiter(1, 1)
		now := time.Now()
		l.now = func() time.Time { return now }

		assert.True(t, l.allow("10.0.0.1"))
		assert.False(t, l.allow("10.0.0.1"))
		assert.True(t, l.allow("10.0.0.2"))
	})

	t.Run("bucket refills over time", func(t *testing.T) {
		l := newIPRateLimiter(1, 1)
		now := time.Now()
		l.now = func() time.Time { return now }

		require.True(t, l.allow("10.0.0.1"))
		require.False(t, l.allow("10.0.0.1"))

		now = now.Add(time.Second)
		assert.True(t, l.allow("10.0.0.1"))
	})

	t.Run("idle clients are evicted", func(t *testing.T) {
		l := newIPRateLimiter(1, 1)
		now := time.Now()
		l.now = func() time.Time { return now }

		l.allow("10.0.0.1")
		now = now.Add(limiterIdleTTL + time.Second)
		l.allow("10.0.0.2")

		assert.NotContains(t, l.clients, "10.0.0.1")
		assert.Contains(t, l.clients, "10.0.0.2")
	})

	t.Run("sweeps at most once per interval", func(t *testing.T) {
		l := newIPRateLimiter(1, 1)
		l.sweepEvery = time.Hour
		start := time.Now()
		now := start
		l.now = func() time.Time { return now }

		l.allow("10.0.0.1")
		assert.Equal(t, start, l.lastSweep)

		now = start.Add(limiterIdleTTL + time.Second)
		l.allow("10.0.0.2")
		assert.Contains(t, l.clients, "10.0.0.1", "idle bucket must survive until the next sweep")
		assert.Equal(t, start, l.lastSweep)

		now = start.Add(time.Hour)
		l.allow("10.0.0.2")
		assert.NotContains(t, l.clients, "10.0.0.1")
		assert.Contains(t, l.clients, "10.0.0.2")
		assert.Equal(t, now, l.lastSweep)
	})
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.9:5555"
	assert.Equal(t, "203.0.113.9", clientIP(req))

	req.RemoteAddr = "no-port"
	assert.Equal(t, "no-port", clientIP(req))
}
