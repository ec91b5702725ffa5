// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-social-graph/internal/config"
	"github.com/MKhiriev/go-social-graph/internal/logger"
	"github.com/MKhiriev/go-social-graph/internal/mock"
	"github.com/MKhiriev/go-social-graph/internal/service"
	"github.com/MKhiriev/go-social-graph/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	testBearer       = "valid.jwt.token"
	testSignedToken  = "issued.jwt.token"
	testCallerID     = int64(1)
	testRememberTime = 24 * time.Hour
)

type testDeps struct {
	auth    *mock.MockAuthService
	users   *mock.MockUserService
	follows *mock.MockFollowService
	appInfo *mock.MockAppInfoService
}

func testConfig() config.StructuredConfig {
	return config.StructuredConfig{
		App: config.App{RememberDuration: testRememberTime},
	}
}

// newTestHandler builds a Handler backed by gomock services.
func newTestHandler(t *testing.T, cfg config.StructuredConfig) (*Handler, *testDeps) {
	t.Helper()
	ctrl := gomock.NewController(t)

	deps := &testDeps{
		auth:    mock.NewMockAuthService(ctrl),
		users:   mock.NewMockUserService(ctrl),
		follows: mock.NewMockFollowService(ctrl),
		appInfo: mock.NewMockAppInfoService(ctrl),
	}
	services := &service.Services{
		AuthService:    deps.auth,
		UserService:    deps.users,
		FollowService:  deps.follows,
		AppInfoService: deps.appInfo,
	}

	return NewHandler(services, cfg, logger.Nop()), deps
}

// serve sends a request through the full router.
func serve(h *Handler, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)
	return rec
}

func bearer() map[string]string {
	return map[string]string{"Authorization": "Bearer " + testBearer}
}

func expectCaller(deps *testDeps, userID int64) {
	deps.auth.EXPECT().ParseToken(gomock.Any(), testBearer).Return(models.Token{UserID: userID}, nil)
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestNewHandler_CopiesSettings(t *testing.T) {
	cfg := testConfig()
	cfg.Server.SecureCookies = true
	cfg.Server.RequestTimeout = 3 * time.Second

	h, _ := newTestHandler(t, cfg)

	require.NotNil(t, h)
	assert.Equal(t, testRememberTime, h.rememberDuration)
	assert.True(t, h.secureCookies)
	assert.Equal(t, 3*time.Second, h.requestTimeout)
	assert.NotNil(t, h.sessionLimiter)
}

func TestGetServerVersion(t *testing.T) {
	h, deps := newTestHandler(t, testConfig())
	deps.appInfo.EXPECT().GetBuildInfo(gomock.Any()).Return(models.BuildInfo{
		Version: "1.2.3",
		Date:    "2026-10-01T12:00:00Z",
		Commit:  "4f2c9e1",
	})

	rec := serve(h, http.MethodGet, "/api/version", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"version":"1.2.3","date":"2026-10-01T12:00:00Z","commit":"4f2c9e1"}`, rec.Body.String())
}

func TestUnknownRoute(t *testing.T) {
	h, _ := newTestHandler(t, testConfig())

	rec := serve(h, http.MethodGet, "/api/nope", "", nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, http.StatusText(http.StatusNotFound), decodeError(t, rec).Error)
}
