package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vocal-project/storyctl/internal/story"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second, testLogger())
}

func TestListStories_UnwrapsEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/blogs", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":[{"id":"1","heading":"Hi","description":"long enough text"}]}`))
	})

	stories, err := client.ListStories(context.Background())
	require.NoError(t, err)
	require.Len(t, stories, 1)
	assert.Equal(t, "1", stories[0].ID)
	assert.Equal(t, "Hi", stories[0].Heading)
}

func TestListStories_EmptyListIsNotAnError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":[]}`))
	})

	stories, err := client.ListStories(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stories)
}

func TestListStories_PrefersServiceErrorMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"success":false,"error":"database exploded"}`))
	})

	_, err := client.ListStories(context.Background())
	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, http.StatusInternalServerError, svcErr.Status)
	assert.Equal(t, "database exploded", svcErr.Message)
}

func TestListStories_FallsBackToStatusLine(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>gateway error</html>"))
	})

	_, err := client.ListStories(context.Background())
	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "HTTP error, status 502", svcErr.Message)
}

func TestListStories_MalformedSuccessBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json at all"))
	})

	_, err := client.ListStories(context.Background())
	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Contains(t, svcErr.Message, "malformed response")
}

func TestListStories_MissingDataField(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true}`))
	})

	_, err := client.ListStories(context.Background())
	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Contains(t, svcErr.Message, "missing data")
}

func TestListStories_TransportError(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", time.Second, testLogger())

	_, err := client.ListStories(context.Background())
	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.NotNil(t, errors.Unwrap(transportErr))
}

func TestGetStory_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"error":"Blog not found"}`))
	})

	_, err := client.GetStory(context.Background(), "missing")
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "missing", notFound.ID)
}

func TestGetStory_OtherStatusStaysServiceError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"success":false,"error":"boom"}`))
	})

	_, err := client.GetStory(context.Background(), "1")
	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)

	var notFound *NotFoundError
	assert.False(t, errors.As(err, &notFound))
}

func TestCreateStory_SendsDraftJSON(t *testing.T) {
	var received story.Draft
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":"7","heading":"New","description":"long enough text","createdAt":"2026-01-02T15:04:05Z"}}`))
	})

	draft := story.Draft{Heading: "New", Description: "long enough text", Author: "Ada"}
	created, err := client.CreateStory(context.Background(), draft)
	require.NoError(t, err)
	assert.Equal(t, "7", created.ID)
	assert.NotEmpty(t, created.CreatedAt)
	assert.Equal(t, "New", received.Heading)
	assert.Equal(t, "Ada", received.Author)
}

func TestUpdateStory_UsesPutWithID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/blogs/42", r.URL.Path)
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":"42","heading":"Edited","description":"long enough text"}}`))
	})

	updated, err := client.UpdateStory(context.Background(), "42", story.Draft{Heading: "Edited", Description: "long enough text"})
	require.NoError(t, err)
	assert.Equal(t, "Edited", updated.Heading)
}

func TestDeleteStory_AckOnly(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/blogs/42", r.URL.Path)
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":"42"}}`))
	})

	require.NoError(t, client.DeleteStory(context.Background(), "42"))
}

func TestDeleteStory_MissingIDIsAnError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"error":"Blog not found"}`))
	})

	err := client.DeleteStory(context.Background(), "gone")
	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "Blog not found", svcErr.Message)
}

func TestToggleFavorite_PatchesAndReturnsStory(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/blogs/3/favorite", r.URL.Path)
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":"3","heading":"Hi","description":"long enough text","isFavorite":true}}`))
	})

	s, err := client.ToggleFavorite(context.Background(), "3")
	require.NoError(t, err)
	assert.True(t, s.IsFavorite)
}

func TestListFavorites_Path(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/blogs/favorites", r.URL.Path)
		_, _ = w.Write([]byte(`{"success":true,"data":[{"id":"3","isFavorite":true}],"count":1}`))
	})

	stories, err := client.ListFavorites(context.Background())
	require.NoError(t, err)
	require.Len(t, stories, 1)
	assert.True(t, stories[0].IsFavorite)
}

func TestHealth(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/health", r.URL.Path)
		_, _ = w.Write([]byte(`{"success":true,"message":"API is healthy","status":"success"}`))
	})

	require.NoError(t, client.Health(context.Background()))
}
