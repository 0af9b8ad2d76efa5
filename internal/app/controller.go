// Package app owns the client-side application state: which view is active,
// the loaded stories, the draft being edited, and the busy/error status.
// Every read and write against the content service is mediated here; the
// rendering layer only dispatches intents and observes state snapshots.
package app

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/vocal-project/storyctl/internal/story"
)

// View identifies the active screen.
type View int

const (
	ViewLogin View = iota
	ViewList
	ViewEdit
)

func (v View) String() string {
	switch v {
	case ViewLogin:
		return "login"
	case ViewList:
		return "list"
	case ViewEdit:
		return "edit"
	default:
		return "unknown"
	}
}

// Fixed user-facing failure messages. Raw adapter detail goes to the
// diagnostic log only.
const (
	MsgLoadFailed     = "Failed to load stories. Please try again."
	MsgSaveFailed     = "Failed to save story. Please try again."
	MsgDeleteFailed   = "Failed to delete story. Please try again."
	MsgFavoriteFailed = "Failed to update favorite status. Please try again."
)

// State is the snapshot published to observers. Stories is replaced
// wholesale on every successful reload, never patched in place.
type State struct {
	View     View
	Stories  []story.Story
	Selected *story.Story
	Draft    story.Draft
	Busy     bool
	Err      string
}

// API is the adapter surface the controller drives.
type API interface {
	ListStories(ctx context.Context) ([]story.Story, error)
	ListFavorites(ctx context.Context) ([]story.Story, error)
	GetStory(ctx context.Context, id string) (story.Story, error)
	CreateStory(ctx context.Context, draft story.Draft) (story.Story, error)
	UpdateStory(ctx context.Context, id string, draft story.Draft) (story.Story, error)
	DeleteStory(ctx context.Context, id string) error
	ToggleFavorite(ctx context.Context, id string) (story.Story, error)
}

// Confirmer asks the user to approve a destructive action. The prompt
// mechanism itself lives with the rendering layer.
type Confirmer func(s story.Story) bool

// ValidationErrors is a save rejected locally before any network call.
type ValidationErrors []story.ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// Controller is the application state machine: Login → List ⇄ Edit.
type Controller struct {
	api    API
	logger *slog.Logger

	mu    sync.Mutex
	state State
	// gen counts applied list replacements. A reload captures gen when
	// issued and applies only if still current, so a slow reload racing a
	// favorite-toggle can never overwrite a fresher list with an older one.
	gen  uint64
	subs []func(State)
}

// New creates a controller in the Login view.
func New(apiClient API, logger *slog.Logger) *Controller {
	return &Controller{
		api:    apiClient,
		logger: logger,
		state:  State{View: ViewLogin},
	}
}

// Subscribe registers an observer called with a snapshot after every state
// change. Observers must not block.
func (c *Controller) Subscribe(fn func(State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs = append(c.subs, fn)
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() State {
	s := c.state
	s.Stories = slices.Clone(s.Stories)
	if c.state.Selected != nil {
		sel := *c.state.Selected
		s.Selected = &sel
	}
	return s
}

// publish snapshots the state and notifies observers outside the lock.
func (c *Controller) publish() {
	c.mu.Lock()
	snap := c.snapshotLocked()
	subs := slices.Clone(c.subs)
	c.mu.Unlock()
	for _, fn := range subs {
		fn(snap)
	}
}

// Login is the trivial gate out of the Login view: no credential check,
// one transition into List followed by the initial load.
func (c *Controller) Login(ctx context.Context) error {
	c.mu.Lock()
	c.state.View = ViewList
	c.mu.Unlock()
	return c.Refresh(ctx)
}

// Refresh reloads the story list from the service. On failure the previous
// stories stay visible; only the error banner changes.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	c.state.Busy = true
	c.state.Err = ""
	c.mu.Unlock()
	c.publish()

	err := c.reload(ctx)

	c.mu.Lock()
	c.state.Busy = false
	if err != nil {
		c.state.Err = MsgLoadFailed
	}
	c.mu.Unlock()
	c.publish()
	return err
}

// reload fetches the list and applies it wholesale, unless a newer list was
// applied while the request was in flight.
func (c *Controller) reload(ctx context.Context) error {
	c.mu.Lock()
	issued := c.gen
	c.mu.Unlock()

	stories, err := c.api.ListStories(ctx)
	if err != nil {
		c.logger.Warn("list reload failed", slog.String("error", err.Error()))
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != issued {
		c.logger.Debug("dropping stale list reload", slog.Uint64("issued", issued), slog.Uint64("current", c.gen))
		return nil
	}
	c.state.Stories = stories
	c.gen++
	return nil
}

// NewStory enters the Edit view with an empty draft. defaultAuthor fills
// the author field when the user has one configured.
func (c *Controller) NewStory(defaultAuthor string) {
	draft := story.Draft{}
	draft.ApplyDefaults(defaultAuthor)

	c.mu.Lock()
	c.state.View = ViewEdit
	c.state.Selected = nil
	c.state.Draft = draft
	c.state.Err = ""
	c.mu.Unlock()
	c.publish()
}

// EditStory enters the Edit view with a draft copied from an existing story.
func (c *Controller) EditStory(s story.Story) {
	c.mu.Lock()
	sel := s
	c.state.View = ViewEdit
	c.state.Selected = &sel
	c.state.Draft = story.DraftFromStory(s)
	c.state.Err = ""
	c.mu.Unlock()
	c.publish()
}

// Save validates the draft and persists it, creating when no story is
// selected and updating otherwise. Validation failures never reach the
// network and leave the busy flag untouched. After a successful write the
// list is reloaded from the service before the transition back to List; if
// the write or that reload fails the view stays in Edit with the draft
// intact so the user can resubmit.
func (c *Controller) Save(ctx context.Context, draft story.Draft) error {
	c.mu.Lock()
	if c.state.View != ViewEdit {
		c.mu.Unlock()
		return &IntentError{Intent: "save", View: c.state.View}
	}
	c.state.Draft = draft
	selected := c.state.Selected
	c.mu.Unlock()

	if errs := draft.Validate(); len(errs) > 0 {
		c.logger.Debug("draft rejected locally", slog.Int("problems", len(errs)))
		return ValidationErrors(errs)
	}

	c.mu.Lock()
	c.state.Busy = true
	c.state.Err = ""
	c.mu.Unlock()
	c.publish()

	var err error
	if selected != nil {
		_, err = c.api.UpdateStory(ctx, selected.ID, draft)
	} else {
		_, err = c.api.CreateStory(ctx, draft)
	}
	if err == nil {
		// Reload is skipped entirely on write failure; on write success
		// exactly one reload runs before the view changes.
		err = c.reload(ctx)
	}

	c.mu.Lock()
	c.state.Busy = false
	if err != nil {
		c.state.Err = MsgSaveFailed
		c.mu.Unlock()
		c.publish()
		c.logger.Warn("save failed", slog.String("error", err.Error()))
		return err
	}
	c.state.View = ViewList
	c.state.Selected = nil
	c.state.Draft = story.Draft{}
	c.mu.Unlock()
	c.publish()
	return nil
}

// Cancel leaves the Edit view, discarding the draft, and refreshes the list.
func (c *Controller) Cancel(ctx context.Context) error {
	c.mu.Lock()
	c.state.View = ViewList
	c.state.Selected = nil
	c.state.Draft = story.Draft{}
	c.state.Err = ""
	c.mu.Unlock()
	c.publish()
	return c.Refresh(ctx)
}

// Delete removes a story after the confirmer approves. A declined
// confirmation is a no-op. The list is left as-is on any failure.
func (c *Controller) Delete(ctx context.Context, id string, confirm Confirmer) error {
	c.mu.Lock()
	var target *story.Story
	for i := range c.state.Stories {
		if c.state.Stories[i].ID == id {
			s := c.state.Stories[i]
			target = &s
			break
		}
	}
	c.mu.Unlock()

	if target == nil {
		return &IntentError{Intent: "delete", View: ViewList, Detail: "story " + id + " is not in the current list"}
	}
	if confirm != nil && !confirm(*target) {
		c.logger.Debug("delete declined", slog.String("id", id))
		return nil
	}

	c.mu.Lock()
	c.state.Busy = true
	c.state.Err = ""
	c.mu.Unlock()
	c.publish()

	err := c.api.DeleteStory(ctx, id)
	if err == nil {
		err = c.reload(ctx)
	}

	c.mu.Lock()
	c.state.Busy = false
	if err != nil {
		c.state.Err = MsgDeleteFailed
	}
	c.mu.Unlock()
	c.publish()
	if err != nil {
		c.logger.Warn("delete failed", slog.String("id", id), slog.String("error", err.Error()))
	}
	return err
}

// ToggleFavorite flips a story's favorite flag. Favoriting bypasses the
// busy gate so it stays lightweight in the UI; the generation counter in
// reload keeps its refresh from clobbering a newer list.
func (c *Controller) ToggleFavorite(ctx context.Context, id string) error {
	c.mu.Lock()
	c.state.Err = ""
	c.mu.Unlock()
	c.publish()

	_, err := c.api.ToggleFavorite(ctx, id)
	if err == nil {
		err = c.reload(ctx)
	}
	if err != nil {
		c.mu.Lock()
		c.state.Err = MsgFavoriteFailed
		c.mu.Unlock()
		c.publish()
		c.logger.Warn("favorite toggle failed", slog.String("id", id), slog.String("error", err.Error()))
	}
	return err
}

// Story is a mediated read of a single story; it does not touch the view
// state.
func (c *Controller) Story(ctx context.Context, id string) (story.Story, error) {
	s, err := c.api.GetStory(ctx, id)
	if err != nil {
		c.logger.Warn("story fetch failed", slog.String("id", id), slog.String("error", err.Error()))
		return story.Story{}, err
	}
	return s, nil
}

// FavoriteStories is a mediated read of the favorites listing; it does not
// touch the view state.
func (c *Controller) FavoriteStories(ctx context.Context) ([]story.Story, error) {
	stories, err := c.api.ListFavorites(ctx)
	if err != nil {
		c.logger.Warn("favorites listing failed", slog.String("error", err.Error()))
		return nil, err
	}
	return stories, nil
}
