package api

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

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(Options{
		BaseURL:           srv.URL + "/",
		SessionCookieName: "session",
		SessionCookie:     "abc.def",
		Timeout:           2 * time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(c.CloseIdleConnections)
	return c
}

func TestNewClient_Validation(t *testing.T) {
	_, err := NewClient(Options{})
	assert.Error(t, err)

	_, err = NewClient(Options{BaseURL: "ftp://example.com"})
	assert.Error(t, err)

	c, err := NewClient(Options{BaseURL: "http://localhost:5000/"})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000", c.BaseURL())
	assert.Equal(t, "http://localhost:5000/auth/login", c.LoginURL())
	assert.False(t, c.HasSession())
}

func TestClient_SendsCookieAndRequestID(t *testing.T) {
	var gotCookie, gotID string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ck, err := r.Cookie("session"); err == nil {
			gotCookie = ck.Value
		}
		gotID = r.Header.Get(RequestIDHeader)
		_, _ = io.WriteString(w, `{"authenticated":true}`)
	}))
	c.newID = func() string { return "req-1" }

	status, err := c.CheckAuth(context.Background())
	require.NoError(t, err)
	assert.True(t, status.Authenticated)
	assert.Equal(t, "abc.def", gotCookie)
	assert.Equal(t, "req-1", gotID)
}

func TestClient_Endpoints(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/user", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"id":"42","username":"ayu","avatar":"","discriminator":"0"}`)
	})
	mux.HandleFunc("/api/bot/status", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"guilds":3,"users":120,"status":"Online","uptime":"2h"}`)
	})
	mux.HandleFunc("/api/user/guilds", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"guilds":[{"id":"1","name":"Home","icon_url":null,"member_count":7}]}`)
	})
	mux.HandleFunc("/api/commands", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"commands":[{"name":"hi","description":"greet","type":"custom"},{"name":"play","description":"music","type":"slash"}]}`)
	})
	mux.HandleFunc("/api/music/1", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"currentTrack":{"title":"Song","artist":"Band","thumbnail":"http://img"}}`)
	})

	c := newTestClient(t, mux)
	ctx := context.Background()

	user, err := c.User(ctx)
	require.NoError(t, err)
	assert.Equal(t, User{ID: "42", Username: "ayu", Discriminator: "0"}, user)

	status, err := c.BotStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, status.Guilds)
	assert.Equal(t, 120, status.Users)
	require.NotNil(t, status.Uptime)
	assert.Equal(t, "2h", *status.Uptime)

	guilds, err := c.UserGuilds(ctx)
	require.NoError(t, err)
	require.Len(t, guilds, 1)
	assert.Equal(t, "Home", guilds[0].Name)
	assert.Empty(t, guilds[0].IconURL)
	assert.Equal(t, 7, guilds[0].MemberCount)

	cmds, err := c.Commands(ctx)
	require.NoError(t, err)
	assert.Len(t, cmds, 2)
	assert.Equal(t, CommandTypeCustom, cmds[0].Type)

	music, err := c.MusicState(ctx, "1")
	require.NoError(t, err)
	require.NotNil(t, music.CurrentTrack)
	assert.Equal(t, "Song", music.CurrentTrack.Title)
}

func TestClient_EmptyListsAreNonNil(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{}`)
	}))

	guilds, err := c.UserGuilds(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, guilds)
	assert.Empty(t, guilds)

	cmds, err := c.Commands(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, cmds)
}

func TestClient_CreateCustomCommandPostsJSON(t *testing.T) {
	var got CustomCommandRequest
	var method, contentType string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		contentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusCreated)
	}))

	err := c.CreateCustomCommand(context.Background(), CustomCommandRequest{Name: "hi", Response: "hello"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, method)
	assert.Equal(t, "application/json", contentType)
	assert.Equal(t, CustomCommandRequest{Name: "hi", Response: "hello"}, got)
}

func TestClient_MusicAction(t *testing.T) {
	var path, method string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		method = r.Method
		w.WriteHeader(http.StatusNoContent)
	}))

	require.NoError(t, c.MusicAction(context.Background(), "99", MusicSkip))
	assert.Equal(t, "/api/music/99/skip", path)
	assert.Equal(t, http.MethodPost, method)

	err := c.MusicAction(context.Background(), "99", MusicAction("rewind"))
	assert.Error(t, err)
}

func TestClient_StatusErrors(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/user":
			http.Error(w, "login required", http.StatusUnauthorized)
		default:
			http.Error(w, "boom", http.StatusInternalServerError)
		}
	}))

	_, err := c.User(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnauthenticated))
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusUnauthorized, se.StatusCode)
	assert.Equal(t, "/auth/user", se.Path)
	assert.Equal(t, "login required", se.Body)

	_, err = c.BotStatus(context.Background())
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrUnauthenticated))
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusInternalServerError, se.StatusCode)
	assert.Contains(t, err.Error(), "GET /api/bot/status")
}

func TestClient_DecodeError(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `<html>not json</html>`)
	}))

	_, err := c.CheckAuth(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode GET /auth/check")
}

func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c, err := NewClient(Options{BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	require.NoError(t, err)
	defer c.CloseIdleConnections()

	_, err = c.BotStatus(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}
