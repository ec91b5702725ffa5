// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/MKhiriev/go-social-graph/internal/config"
	"github.com/MKhiriev/go-social-graph/internal/logger"
	"github.com/MKhiriev/go-social-graph/internal/utils"
	"github.com/MKhiriev/go-social-graph/models"
	"github.com/go-resty/resty/v2"
)

const (
	cookieUserID        = "user_id"
	cookieRememberToken = "remember_token"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	creds Credentials

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs the REST implementation of [ServerAdapter].
// The base URL is normalised ("localhost:8080" becomes
// "http://localhost:8080").
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	return &httpServerAdapter{
		client: utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) SetCredentials(creds Credentials) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.creds = creds
}

func (h *httpServerAdapter) Credentials() Credentials {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.creds
}

func (h *httpServerAdapter) Signup(ctx context.Context, req models.SignupRequest) (models.User, error) {
	var user models.User

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&user).
		Post("/api/users")
	if err != nil {
		return models.User{}, fmt.Errorf("signup request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	if err = h.storeAccessToken(resp); err != nil {
		return models.User{}, fmt.Errorf("signup: %w", err)
	}
	return user, nil
}

func (h *httpServerAdapter) Login(ctx context.Context, req models.LoginRequest) (models.User, error) {
	var user models.User

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&user).
		Post("/api/sessions")
	if err != nil {
		return models.User{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	if err = h.storeAccessToken(resp); err != nil {
		return models.User{}, fmt.Errorf("login: %w", err)
	}

	h.mu.Lock()
	h.creds.UserID = user.UserID
	h.creds.RememberToken = ""
	for _, c := range resp.Cookies() {
		if c.Name == cookieRememberToken && c.MaxAge >= 0 {
			h.creds.RememberToken = c.Value
		}
	}
	h.mu.Unlock()

	return user, nil
}

func (h *httpServerAdapter) Restore(ctx context.Context) (models.User, error) {
	creds := h.Credentials()
	if creds.UserID == 0 || creds.RememberToken == "" {
		return models.User{}, ErrNothingToRestore
	}

	var user models.User
	resp, err := h.client.R().
		SetContext(ctx).
		SetCookies([]*http.Cookie{
			{Name: cookieUserID, Value: strconv.FormatInt(creds.UserID, 10)},
			{Name: cookieRememberToken, Value: creds.RememberToken},
		}).
		SetResult(&user).
		Post("/api/sessions/restore")
	if err != nil {
		return models.User{}, fmt.Errorf("restore request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	if err = h.storeAccessToken(resp); err != nil {
		return models.User{}, fmt.Errorf("restore: %w", err)
	}
	return user, nil
}

func (h *httpServerAdapter) Logout(ctx context.Context) error {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return err
	}

	resp, err := req.Delete("/api/sessions")
	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	h.SetCredentials(Credentials{})
	return nil
}

func (h *httpServerAdapter) GetUser(ctx context.Context, userID int64) (models.User, error) {
	var user models.User

	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&user).
		SetPathParam("id", strconv.FormatInt(userID, 10)).
		Get("/api/users/{id}")
	if err != nil {
		return models.User{}, fmt.Errorf("get user request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return user, nil
}

func (h *httpServerAdapter) Follow(ctx context.Context, userID int64) (models.FollowStatus, error) {
	return h.changeEdge(ctx, http.MethodPost, userID)
}

func (h *httpServerAdapter) Unfollow(ctx context.Context, userID int64) (models.FollowStatus, error) {
	return h.changeEdge(ctx, http.MethodDelete, userID)
}

func (h *httpServerAdapter) changeEdge(ctx context.Context, method string, userID int64) (models.FollowStatus, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.FollowStatus{}, err
	}

	var status models.FollowStatus
	resp, err := req.
		SetResult(&status).
		SetPathParam("id", strconv.FormatInt(userID, 10)).
		Execute(method, "/api/users/{id}/follow")
	if err != nil {
		return models.FollowStatus{}, fmt.Errorf("%s follow request: %w", strings.ToLower(method), err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.FollowStatus{}, err
	}

	return status, nil
}

func (h *httpServerAdapter) IsFollowing(ctx context.Context, followerID, followedUserID int64) (bool, error) {
	var status models.FollowStatus

	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&status).
		SetPathParams(map[string]string{
			"id":     strconv.FormatInt(followerID, 10),
			"target": strconv.FormatInt(followedUserID, 10),
		}).
		Get("/api/users/{id}/following/{target}")
	if err != nil {
		return false, fmt.Errorf("is following request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return false, err
	}

	return status.Following, nil
}

func (h *httpServerAdapter) Followers(ctx context.Context, userID int64, page models.PageRequest) (models.UserPage, error) {
	return h.listEdges(ctx, "/api/users/{id}/followers", userID, page)
}

func (h *httpServerAdapter) Followings(ctx context.Context, userID int64, page models.PageRequest) (models.UserPage, error) {
	return h.listEdges(ctx, "/api/users/{id}/followings", userID, page)
}

func (h *httpServerAdapter) listEdges(ctx context.Context, path string, userID int64, page models.PageRequest) (models.UserPage, error) {
	var result models.UserPage

	req := h.client.R().
		SetContext(ctx).
		SetResult(&result).
		SetPathParam("id", strconv.FormatInt(userID, 10))
	if page.First > 0 {
		req.SetQueryParam("first", strconv.Itoa(page.First))
	}
	if page.After != "" {
		req.SetQueryParam("after", page.After)
	}

	resp, err := req.Get(path)
	if err != nil {
		return models.UserPage{}, fmt.Errorf("list request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UserPage{}, err
	}

	return result, nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) (*resty.Request, error) {
	token := h.Credentials().AccessToken
	if token == "" {
		return nil, ErrNotLoggedIn
	}

	return h.client.R().
		SetContext(ctx).
		SetAuthToken(token), nil
}

func (h *httpServerAdapter) storeAccessToken(resp *resty.Response) error {
	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return fmt.Errorf("parse bearer token: %w", err)
	}

	userID, err := utils.ParseUserIDFromJWT(token)
	if err != nil {
		return fmt.Errorf("parse user id: %w", err)
	}

	h.mu.Lock()
	h.creds.AccessToken = token
	h.creds.UserID = userID
	h.mu.Unlock()

	h.logger.Debug().Int64("user_id", userID).Msg("access token stored")
	return nil
}
