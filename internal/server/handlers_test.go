package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vocal-project/storyctl/internal/story"
)

func newTestRouter(store *Store) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHandler(store, logger).Router()
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

type wireEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Errors  []string        `json:"errors"`
	Count   *int            `json:"count"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) wireEnvelope {
	t.Helper()
	var env wireEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestHealth(t *testing.T) {
	rec := doJSON(t, newTestRouter(NewStore()), http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "API is healthy")
}

func TestListStories_Empty(t *testing.T) {
	rec := doJSON(t, newTestRouter(NewStore()), http.MethodGet, "/api/blogs", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	assert.Equal(t, "[]", strings.TrimSpace(string(env.Data)), "empty listing must be [], not null")
}

func TestListStories_Seeded(t *testing.T) {
	rec := doJSON(t, newTestRouter(NewSeededStore()), http.MethodGet, "/api/blogs", nil)

	env := decodeEnvelope(t, rec)
	var stories []story.Story
	require.NoError(t, json.Unmarshal(env.Data, &stories))
	assert.Len(t, stories, 4)
}

func TestListFavorites_CountsAndFilters(t *testing.T) {
	rec := doJSON(t, newTestRouter(NewSeededStore()), http.MethodGet, "/api/blogs/favorites", nil)

	env := decodeEnvelope(t, rec)
	var stories []story.Story
	require.NoError(t, json.Unmarshal(env.Data, &stories))
	require.Len(t, stories, 1)
	assert.True(t, stories[0].IsFavorite)
	require.NotNil(t, env.Count)
	assert.Equal(t, 1, *env.Count)
}

func TestGetStory_FoundAndNotFound(t *testing.T) {
	router := newTestRouter(NewSeededStore())

	rec := doJSON(t, router, http.MethodGet, "/api/blogs/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	var st story.Story
	require.NoError(t, json.Unmarshal(env.Data, &st))
	assert.Equal(t, "1", st.ID)

	rec = doJSON(t, router, http.MethodGet, "/api/blogs/does-not-exist", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Blog not found", decodeEnvelope(t, rec).Error)
}

func TestCreateStory(t *testing.T) {
	store := NewStore()
	router := newTestRouter(store)

	rec := doJSON(t, router, http.MethodPost, "/api/blogs", story.Draft{
		Heading:     "Created via API",
		Description: "A description that is long enough.",
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	env := decodeEnvelope(t, rec)
	var st story.Story
	require.NoError(t, json.Unmarshal(env.Data, &st))
	assert.NotEmpty(t, st.ID)
	assert.NotEmpty(t, st.CreatedAt)
	assert.Len(t, store.All(), 1)
}

func TestCreateStory_NoBody(t *testing.T) {
	rec := doJSON(t, newTestRouter(NewStore()), http.MethodPost, "/api/blogs", nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No data provided", decodeEnvelope(t, rec).Error)
}

func TestCreateStory_MissingRequiredFields(t *testing.T) {
	rec := doJSON(t, newTestRouter(NewStore()), http.MethodPost, "/api/blogs", story.Draft{
		Heading: "Only a heading",
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Heading and description are required", decodeEnvelope(t, rec).Error)
}

func TestCreateStory_ShortDescription(t *testing.T) {
	rec := doJSON(t, newTestRouter(NewStore()), http.MethodPost, "/api/blogs", story.Draft{
		Heading:     "Hi",
		Description: "short",
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Contains(t, env.Errors, "Description must be at least 10 characters")
}

func TestUpdateStory(t *testing.T) {
	store := NewSeededStore()
	router := newTestRouter(store)

	rec := doJSON(t, router, http.MethodPut, "/api/blogs/1", story.Draft{
		Heading:     "Renamed heading",
		Description: "Still a long enough description.",
		Author:      "Andrea Corwin",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	updated, err := store.Get("1")
	require.NoError(t, err)
	assert.Equal(t, "Renamed heading", updated.Heading)
}

func TestUpdateStory_NotFound(t *testing.T) {
	rec := doJSON(t, newTestRouter(NewStore()), http.MethodPut, "/api/blogs/99", story.Draft{
		Heading:     "Hi",
		Description: "A description that is long enough.",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteStory(t *testing.T) {
	store := NewSeededStore()
	router := newTestRouter(store)

	rec := doJSON(t, router, http.MethodDelete, "/api/blogs/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	_, err := store.Get("1")
	assert.ErrorIs(t, err, ErrStoryNotFound)

	// Deleting again is a service error, not a silent success.
	rec = doJSON(t, router, http.MethodDelete, "/api/blogs/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestToggleFavorite(t *testing.T) {
	store := NewSeededStore()
	router := newTestRouter(store)

	rec := doJSON(t, router, http.MethodPatch, "/api/blogs/1/favorite", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	var st story.Story
	require.NoError(t, json.Unmarshal(env.Data, &st))
	assert.True(t, st.IsFavorite)

	rec = doJSON(t, router, http.MethodPatch, "/api/blogs/1/favorite", nil)
	env = decodeEnvelope(t, rec)
	require.NoError(t, json.Unmarshal(env.Data, &st))
	assert.False(t, st.IsFavorite, "a second toggle restores the original value")
}

func TestToggleFavorite_NotFound(t *testing.T) {
	rec := doJSON(t, newTestRouter(NewStore()), http.MethodPatch, "/api/blogs/99/favorite", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
