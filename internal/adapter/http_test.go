// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-social-graph/internal/config"
	"github.com/MKhiriev/go-social-graph/internal/logger"
	"github.com/MKhiriev/go-social-graph/internal/utils"
	"github.com/MKhiriev/go-social-graph/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter(t *testing.T, serverURL string) *httpServerAdapter {
	t.Helper()

	a, err := NewHTTPServerAdapter(config.ClientAdapter{HTTPAddress: serverURL}, logger.Nop())
	require.NoError(t, err)
	return a.(*httpServerAdapter)
}

func testToken(t *testing.T, userID int64) string {
	t.Helper()

	token, err := utils.GenerateJWTToken("test", userID, time.Hour, "secret")
	require.NoError(t, err)
	return token.SignedString
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()

	_, err := utils.WriteJSON(w, body, status)
	require.NoError(t, err)
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "host and port", raw: "localhost:8080", want: "http://localhost:8080"},
		{name: "with scheme", raw: "https://graph.example.com/", want: "https://graph.example.com"},
		{name: "surrounding spaces", raw: "  127.0.0.1:9000 ", want: "http://127.0.0.1:9000"},
		{name: "empty", raw: "", wantErr: true},
		{name: "scheme only", raw: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSignup_StoresToken(t *testing.T) {
	token := testToken(t, 7)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/users", r.URL.Path)

		var req models.SignupRequest
		require.NoError(t, utils.ReadJSON(r, &req))
		assert.Equal(t, "alice@example.com", req.Email)

		w.Header().Set("Authorization", "Bearer "+token)
		writeJSON(t, w, http.StatusCreated, models.User{UserID: 7, Email: req.Email, Name: req.Name})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	user, err := a.Signup(context.Background(), models.SignupRequest{
		Email: "alice@example.com", Name: "alice", Password: "secret",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(7), user.UserID)
	assert.Equal(t, Credentials{AccessToken: token, UserID: 7}, a.Credentials())
}

func TestSignup_ValidationErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnprocessableEntity, map[string]any{
			"error": "validation failed",
			"errors": []FieldError{
				{Field: "email", Message: "has already been taken"},
				{Field: "password", Message: "is too short (minimum is 3 characters)"},
			},
		})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Signup(context.Background(), models.SignupRequest{Email: "a@b.c", Name: "a", Password: "x"})

	require.ErrorIs(t, err, ErrUnprocessable)
	var respErr *ResponseError
	require.True(t, errors.As(err, &respErr))
	assert.Len(t, respErr.Fields, 2)
	assert.Contains(t, err.Error(), "email has already been taken")
	assert.Empty(t, a.Credentials().AccessToken)
}

func TestLogin_RememberedStoresCookie(t *testing.T) {
	token := testToken(t, 3)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/sessions", r.URL.Path)

		var req models.LoginRequest
		require.NoError(t, utils.ReadJSON(r, &req))
		assert.True(t, req.RememberMe)

		http.SetCookie(w, &http.Cookie{Name: cookieUserID, Value: "3"})
		http.SetCookie(w, &http.Cookie{Name: cookieRememberToken, Value: "remember-me"})
		w.Header().Set("Authorization", "Bearer "+token)
		writeJSON(t, w, http.StatusOK, models.User{UserID: 3, Name: "bob"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	user, err := a.Login(context.Background(), models.LoginRequest{
		Email: "bob@example.com", Password: "secret", RememberMe: true,
	})

	require.NoError(t, err)
	assert.Equal(t, "bob", user.Name)
	assert.Equal(t, Credentials{AccessToken: token, UserID: 3, RememberToken: "remember-me"}, a.Credentials())
}

func TestLogin_NotRememberedDropsOldCookie(t *testing.T) {
	token := testToken(t, 3)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: cookieRememberToken, MaxAge: -1})
		w.Header().Set("Authorization", "Bearer "+token)
		writeJSON(t, w, http.StatusOK, models.User{UserID: 3})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetCredentials(Credentials{UserID: 3, RememberToken: "stale"})

	_, err := a.Login(context.Background(), models.LoginRequest{Email: "bob@example.com", Password: "secret"})

	require.NoError(t, err)
	assert.Empty(t, a.Credentials().RememberToken)
}

func TestLogin_WrongCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, map[string]string{"error": "invalid email/password combination"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Login(context.Background(), models.LoginRequest{Email: "bob@example.com", Password: "nope"})

	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Contains(t, err.Error(), "invalid email/password combination")
}

func TestLogin_MissingAuthorizationHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, models.User{UserID: 3})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Login(context.Background(), models.LoginRequest{Email: "bob@example.com", Password: "secret"})

	require.ErrorIs(t, err, utils.ErrInvalidAuthorizationHeader)
}

func TestRestore_SendsCookies(t *testing.T) {
	token := testToken(t, 5)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/sessions/restore", r.URL.Path)

		id, err := r.Cookie(cookieUserID)
		require.NoError(t, err)
		assert.Equal(t, "5", id.Value)

		remember, err := r.Cookie(cookieRememberToken)
		require.NoError(t, err)
		assert.Equal(t, "tok", remember.Value)

		w.Header().Set("Authorization", "Bearer "+token)
		writeJSON(t, w, http.StatusOK, models.User{UserID: 5})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetCredentials(Credentials{UserID: 5, RememberToken: "tok"})

	user, err := a.Restore(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(5), user.UserID)
	assert.Equal(t, token, a.Credentials().AccessToken)
	assert.Equal(t, "tok", a.Credentials().RememberToken)
}

func TestRestore_NothingToRestore(t *testing.T) {
	a := newTestAdapter(t, "localhost:1")

	_, err := a.Restore(context.Background())

	assert.ErrorIs(t, err, ErrNothingToRestore)
}

func TestRestore_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetCredentials(Credentials{UserID: 5, RememberToken: "forgotten"})

	_, err := a.Restore(context.Background())

	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestLogout_ClearsCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/sessions", r.URL.Path)
		assert.Equal(t, "Bearer token", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetCredentials(Credentials{AccessToken: "token", UserID: 1, RememberToken: "tok"})

	require.NoError(t, a.Logout(context.Background()))
	assert.Equal(t, Credentials{}, a.Credentials())
}

func TestLogout_NotLoggedIn(t *testing.T) {
	a := newTestAdapter(t, "localhost:1")

	assert.ErrorIs(t, a.Logout(context.Background()), ErrNotLoggedIn)
}

func TestGetUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/users/9":
			writeJSON(t, w, http.StatusOK, models.User{UserID: 9, Name: "carol", FollowersCount: 2})
		default:
			writeJSON(t, w, http.StatusNotFound, map[string]string{"error": "user not found"})
		}
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)

	user, err := a.GetUser(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, int64(2), user.FollowersCount)

	_, err = a.GetUser(context.Background(), 10)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFollowAndUnfollow(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/users/4/follow", r.URL.Path)
		assert.Equal(t, "Bearer token", r.Header.Get("Authorization"))

		status := models.FollowStatus{FollowerID: 1, FollowedUserID: 4}
		switch r.Method {
		case http.MethodPost:
			status.Following = true
			writeJSON(t, w, http.StatusCreated, status)
		case http.MethodDelete:
			writeJSON(t, w, http.StatusOK, status)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetCredentials(Credentials{AccessToken: "token", UserID: 1})

	status, err := a.Follow(context.Background(), 4)
	require.NoError(t, err)
	assert.True(t, status.Following)

	status, err = a.Unfollow(context.Background(), 4)
	require.NoError(t, err)
	assert.False(t, status.Following)
}

func TestFollow_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{name: "self follow", status: http.StatusConflict, want: ErrConflict},
		{name: "missing user", status: http.StatusNotFound, want: ErrNotFound},
		{name: "expired token", status: http.StatusUnauthorized, want: ErrUnauthorized},
		{name: "server failure", status: http.StatusInternalServerError, want: ErrInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeJSON(t, w, tt.status, map[string]string{"error": http.StatusText(tt.status)})
			}))
			defer srv.Close()

			a := newTestAdapter(t, srv.URL)
			a.SetCredentials(Credentials{AccessToken: "token", UserID: 1})

			_, err := a.Follow(context.Background(), 1)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestFollow_NotLoggedIn(t *testing.T) {
	a := newTestAdapter(t, "localhost:1")

	_, err := a.Follow(context.Background(), 2)

	assert.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestIsFollowing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/users/1/following/2", r.URL.Path)
		writeJSON(t, w, http.StatusOK, models.FollowStatus{FollowerID: 1, FollowedUserID: 2, Following: true})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)

	following, err := a.IsFollowing(context.Background(), 1, 2)

	require.NoError(t, err)
	assert.True(t, following)
}

func TestFollowers_PassesPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/users/1/followers", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("first"))
		assert.Equal(t, "abc", r.URL.Query().Get("after"))

		writeJSON(t, w, http.StatusOK, models.UserPage{
			Edges: []models.UserEdge{
				{Cursor: "c1", User: models.User{UserID: 3}},
				{Cursor: "c2", User: models.User{UserID: 2}},
			},
			PageInfo:   models.PageInfo{EndCursor: "c2", HasNextPage: true},
			TotalCount: 5,
		})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)

	page, err := a.Followers(context.Background(), 1, models.PageRequest{First: 2, After: "abc"})

	require.NoError(t, err)
	require.Len(t, page.Edges, 2)
	assert.Equal(t, "c2", page.PageInfo.EndCursor)
	assert.True(t, page.PageInfo.HasNextPage)
	assert.Equal(t, int64(5), page.TotalCount)
}

func TestFollowings_OmitsEmptyPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/users/1/followings", r.URL.Path)
		assert.Empty(t, r.URL.RawQuery)
		writeJSON(t, w, http.StatusOK, models.UserPage{Edges: []models.UserEdge{}})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)

	page, err := a.Followings(context.Background(), 1, models.PageRequest{})

	require.NoError(t, err)
	assert.Empty(t, page.Edges)
}

func TestMapHTTPError_PlainBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte("slow down\n"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.GetUser(context.Background(), 1)

	require.ErrorIs(t, err, ErrTooManyRequests)
	var respErr *ResponseError
	require.True(t, errors.As(err, &respErr))
	assert.Equal(t, "slow down", respErr.Message)
	assert.Equal(t, http.StatusTooManyRequests, respErr.StatusCode)
}
