package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"BlogGolang/internal/api/auth"
	"BlogGolang/internal/api/post"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJSON(t *testing.T, w http.ResponseWriter, status int, payload interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	body, err := jsoniter.Marshal(payload)
	require.NoError(t, err)
	_, err = w.Write(body)
	require.NoError(t, err)
}

func TestClient_GetCachesFreshReads(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		assert.Equal(t, "/api/v1/posts/post-1", r.URL.Path)
		writeJSON(t, w, http.StatusOK, post.PostResponse{ID: "post-1", Title: "Hello"})
	}))
	defer server.Close()

	c := New(server.URL)

	first, err := c.GetPost(context.Background(), "post-1")
	require.NoError(t, err)
	assert.Equal(t, "Hello", first.Title)

	second, err := c.GetPost(context.Background(), "post-1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestClient_MutationInvalidatesListCache(t *testing.T) {
	var listHits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			atomic.AddInt32(&listHits, 1)
			writeJSON(t, w, http.StatusOK, post.PostListResponse{Posts: []post.PostResponse{}})
		case r.Method == http.MethodPost:
			writeJSON(t, w, http.StatusCreated, post.PostResponse{ID: "post-1"})
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
	defer server.Close()

	c := New(server.URL)

	_, err := c.ListPosts(context.Background(), 1, 10)
	require.NoError(t, err)
	_, err = c.ListPosts(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&listHits))

	_, err = c.CreatePost(context.Background(), post.CreatePostRequest{
		Title: "Hello", Slug: "hello", Content: "Body", AuthorID: "u", CategoryID: "c",
	})
	require.NoError(t, err)

	_, err = c.ListPosts(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&listHits))
}

func TestClient_MutationSeedsItemCache(t *testing.T) {
	var getHits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPatch:
			writeJSON(t, w, http.StatusOK, post.PostResponse{ID: "post-1", Title: "Renamed"})
		case http.MethodGet:
			atomic.AddInt32(&getHits, 1)
			writeJSON(t, w, http.StatusOK, post.PostResponse{ID: "post-1", Title: "Renamed"})
		}
	}))
	defer server.Close()

	c := New(server.URL)

	_, err := c.UpdatePost(context.Background(), "post-1", post.UpdatePostRequest{Title: "Renamed"})
	require.NoError(t, err)

	// The PATCH response already is the item's current state.
	got, err := c.GetPost(context.Background(), "post-1")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)
	assert.Zero(t, atomic.LoadInt32(&getHits))
}

func TestClient_RetriesUntilSuccess(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) < 3 {
			writeJSON(t, w, http.StatusInternalServerError, map[string]string{"error": "transient"})
			return
		}
		writeJSON(t, w, http.StatusOK, post.PostResponse{ID: "post-1"})
	}))
	defer server.Close()

	c := New(server.URL, WithRetries(2))

	got, err := c.GetPost(context.Background(), "post-1")
	require.NoError(t, err)
	assert.Equal(t, "post-1", got.ID)
	assert.Equal(t, int32(3), atomic.LoadInt32(&attempts))
}

func TestClient_RetriesExhausted(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		writeJSON(t, w, http.StatusNotFound, map[string]string{"error": "post not found"})
	}))
	defer server.Close()

	c := New(server.URL, WithRetries(2))

	_, err := c.GetPost(context.Background(), "missing")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "post not found", apiErr.Message)
	assert.Equal(t, int32(3), atomic.LoadInt32(&attempts))
}

func TestClient_ErrorMessageFallsBackToStatusText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	c := New(server.URL, WithRetries(0))

	_, err := c.GetPost(context.Background(), "post-1")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusText(http.StatusBadGateway), apiErr.Message)
}

func TestClient_LoginInstallsSession(t *testing.T) {
	var lastAuthHeader atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/auth/login":
			writeJSON(t, w, http.StatusOK, auth.LoginResponse{
				AccessToken: "token-123",
				TokenType:   "Bearer",
				ExpiresIn:   "24h",
				User:        auth.AuthUser{ID: "user-1"},
			})
		case "/api/v1/auth/profile":
			lastAuthHeader.Store(r.Header.Get("Authorization"))
			writeJSON(t, w, http.StatusOK, auth.ProfileResponse{ID: "user-1", Name: "Ana"})
		}
	}))
	defer server.Close()

	c := New(server.URL)

	_, err := c.Login(context.Background(), auth.LoginRequest{
		Email:    "ana@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	profile, err := c.GetProfile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Ana", profile.Name)
	assert.Equal(t, "Bearer token-123", lastAuthHeader.Load())
}

func TestClient_PostResponsesNeverSeedCache(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/auth/login":
			writeJSON(t, w, http.StatusOK, auth.LoginResponse{AccessToken: "token-123"})
		default:
			writeJSON(t, w, http.StatusCreated, post.PostResponse{ID: "post-1"})
		}
	}))
	defer server.Close()

	c := New(server.URL)

	_, err := c.Login(context.Background(), auth.LoginRequest{
		Email:    "ana@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	_, err = c.CreatePost(context.Background(), post.CreatePostRequest{
		Title: "Hello", Slug: "hello", Content: "Body", AuthorID: "u", CategoryID: "c",
	})
	require.NoError(t, err)

	c.cache.mu.Lock()
	defer c.cache.mu.Unlock()
	assert.Empty(t, c.cache.entries)
}

func TestClient_LogoutClearsSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]string{"message": "logged out"})
	}))
	defer server.Close()

	c := New(server.URL)
	c.SetSession(&Session{AccessToken: "token-123"})

	require.NoError(t, c.Logout(context.Background()))
	assert.Nil(t, c.currentSession())
}

func TestClient_StaleWindowRefetches(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		writeJSON(t, w, http.StatusOK, post.PostResponse{ID: "post-1"})
	}))
	defer server.Close()

	c := New(server.URL, WithFreshWindow(time.Millisecond))

	_, err := c.GetPost(context.Background(), "post-1")
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	// Stale entry is served immediately while one refetch runs behind it.
	_, err = c.GetPost(context.Background(), "post-1")
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&hits) == 2
	}, time.Second, 5*time.Millisecond)
}
