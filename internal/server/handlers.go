package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/vocal-project/storyctl/internal/story"
)

type ctxKey int

const ctxKeyStory ctxKey = iota

// Handler serves the story content API.
type Handler struct {
	store  *Store
	logger *slog.Logger
	now    func() time.Time
}

// NewHandler creates a handler over the given store.
func NewHandler(store *Store, logger *slog.Logger) *Handler {
	return &Handler{store: store, logger: logger, now: time.Now}
}

// Router builds the /api route tree.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(h.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.health)

		r.Route("/blogs", func(r chi.Router) {
			r.Get("/", h.listStories)
			r.Post("/", h.createStory)
			r.Get("/favorites", h.listFavorites)

			r.Route("/{storyID}", func(r chi.Router) {
				r.Use(h.storyCtx)
				r.Get("/", h.getStory)
				r.Put("/", h.updateStory)
				r.Delete("/", h.deleteStory)
				r.Patch("/favorite", h.toggleFavorite)
			})
		})
	})

	return r
}

// logRequests logs each request with its outcome status.
func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		h.logger.Info("request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Duration("elapsed", time.Since(start)))
	})
}

// storyCtx loads the story named in the URL into the request context,
// stopping with a 404 when the store does not know it.
func (h *Handler) storyCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "storyID")
		st, err := h.store.Get(id)
		if err != nil {
			h.renderErr(w, r, errNotFound())
			return
		}
		ctx := context.WithValue(r.Context(), ctxKeyStory, st)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]any{
		"success": true,
		"message": "API is healthy",
		"status":  "success",
	})
}

func (h *Handler) listStories(w http.ResponseWriter, r *http.Request) {
	stories := h.store.All()
	h.renderData(w, r, &dataResponse{Data: storiesPayload(stories)})
}

func (h *Handler) listFavorites(w http.ResponseWriter, r *http.Request) {
	favorites := h.store.Favorites()
	count := len(favorites)
	h.renderData(w, r, &dataResponse{Data: storiesPayload(favorites), Count: &count})
}

func (h *Handler) getStory(w http.ResponseWriter, r *http.Request) {
	st := r.Context().Value(ctxKeyStory).(story.Story)
	h.renderData(w, r, &dataResponse{Data: st})
}

func (h *Handler) createStory(w http.ResponseWriter, r *http.Request) {
	data := &draftRequest{}
	if err := render.Bind(r, data); err != nil {
		h.renderErr(w, r, errInvalidRequest(bindMessage(err)))
		return
	}

	st, problems := h.store.Create(data.Draft, h.now().UTC().Format(time.RFC3339))
	if len(problems) > 0 {
		h.renderErr(w, r, errValidation(problems))
		return
	}

	h.logger.Info("story created", slog.String("id", st.ID))
	h.renderData(w, r, &dataResponse{Data: st, HTTPStatusCode: http.StatusCreated})
}

func (h *Handler) updateStory(w http.ResponseWriter, r *http.Request) {
	existing := r.Context().Value(ctxKeyStory).(story.Story)

	data := &draftRequest{}
	if err := render.Bind(r, data); err != nil {
		h.renderErr(w, r, errInvalidRequest(bindMessage(err)))
		return
	}

	st, problems, err := h.store.Update(existing.ID, data.Draft)
	if len(problems) > 0 {
		h.renderErr(w, r, errValidation(problems))
		return
	}
	if err != nil {
		h.renderErr(w, r, errNotFound())
		return
	}

	h.logger.Info("story updated", slog.String("id", st.ID))
	h.renderData(w, r, &dataResponse{Data: st})
}

func (h *Handler) deleteStory(w http.ResponseWriter, r *http.Request) {
	existing := r.Context().Value(ctxKeyStory).(story.Story)

	removed, err := h.store.Delete(existing.ID)
	if err != nil {
		h.renderErr(w, r, errNotFound())
		return
	}

	h.logger.Info("story deleted", slog.String("id", removed.ID))
	h.renderData(w, r, &dataResponse{Data: removed})
}

func (h *Handler) toggleFavorite(w http.ResponseWriter, r *http.Request) {
	existing := r.Context().Value(ctxKeyStory).(story.Story)

	st, err := h.store.ToggleFavorite(existing.ID)
	if err != nil {
		h.renderErr(w, r, errNotFound())
		return
	}

	h.logger.Info("favorite toggled", slog.String("id", st.ID), slog.Bool("isFavorite", st.IsFavorite))
	h.renderData(w, r, &dataResponse{Data: st})
}

func (h *Handler) renderData(w http.ResponseWriter, r *http.Request, resp *dataResponse) {
	if err := render.Render(w, r, resp); err != nil {
		h.logger.Error("rendering response", slog.String("error", err.Error()))
	}
}

func (h *Handler) renderErr(w http.ResponseWriter, r *http.Request, resp *errResponse) {
	if err := render.Render(w, r, resp); err != nil {
		h.logger.Error("rendering error response", slog.String("error", err.Error()))
	}
}

// storiesPayload keeps an empty listing as [] on the wire, never null.
func storiesPayload(stories []story.Story) []story.Story {
	if stories == nil {
		return []story.Story{}
	}
	return stories
}

// draftRequest is the request payload for create and update.
type draftRequest struct {
	story.Draft
}

func (d *draftRequest) Bind(r *http.Request) error {
	if strings.TrimSpace(d.Heading) == "" || strings.TrimSpace(d.Description) == "" {
		return errors.New("Heading and description are required")
	}
	return nil
}

func bindMessage(err error) string {
	if errors.Is(err, io.EOF) {
		return "No data provided"
	}
	return err.Error()
}

// dataResponse is the success envelope every endpoint uses.
type dataResponse struct {
	Success        bool `json:"success"`
	Data           any  `json:"data"`
	Count          *int `json:"count,omitempty"`
	HTTPStatusCode int  `json:"-"`
}

func (rd *dataResponse) Render(w http.ResponseWriter, r *http.Request) error {
	rd.Success = true
	if rd.HTTPStatusCode != 0 {
		render.Status(r, rd.HTTPStatusCode)
	}
	return nil
}

// errResponse is the failure envelope: a single error message, or a list
// of validation problems.
type errResponse struct {
	Success        bool     `json:"success"`
	Error          string   `json:"error,omitempty"`
	Errors         []string `json:"errors,omitempty"`
	HTTPStatusCode int      `json:"-"`
}

func (e *errResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func errNotFound() *errResponse {
	return &errResponse{Error: "Blog not found", HTTPStatusCode: http.StatusNotFound}
}

func errInvalidRequest(message string) *errResponse {
	return &errResponse{Error: message, HTTPStatusCode: http.StatusBadRequest}
}

func errValidation(problems []string) *errResponse {
	return &errResponse{Errors: problems, HTTPStatusCode: http.StatusBadRequest}
}
