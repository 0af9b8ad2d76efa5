// Package server is the bundled dev rendition of the story content
// service: a seeded in-memory store behind the same HTTP contract the
// production service exposes, for local work and integration tests.
package server

import (
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/vocal-project/storyctl/internal/story"
)

// ErrStoryNotFound is returned for ids the store does not know.
var ErrStoryNotFound = errors.New("story not found")

// Server-side validation bounds. The client enforces the minimum before
// submitting; the bounds here are authoritative.
const (
	maxHeadingLen     = 200
	maxDescriptionLen = 5000
)

// Store holds stories in memory. All methods are safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	stories []story.Story
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// NewSeededStore creates a store preloaded with sample stories.
func NewSeededStore() *Store {
	s := NewStore()
	s.stories = append(s.stories, seedStories()...)
	return s
}

// All returns every story in insertion order.
func (s *Store) All() []story.Story {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]story.Story(nil), s.stories...)
}

// Favorites returns the stories flagged as favorites.
func (s *Store) Favorites() []story.Story {
	s.mu.Lock()
	defer s.mu.Unlock()
	var favorites []story.Story
	for _, st := range s.stories {
		if st.IsFavorite {
			favorites = append(favorites, st)
		}
	}
	return favorites
}

// Get returns the story with the given id.
func (s *Store) Get(id string) (story.Story, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, st := range s.stories {
		if st.ID == id {
			return st, nil
		}
	}
	return story.Story{}, ErrStoryNotFound
}

// Create validates the draft and persists a new story with an assigned id
// and creation timestamp. Validation problems come back as messages.
func (s *Store) Create(draft story.Draft, now string) (story.Story, []string) {
	if problems := validateDraft(draft); len(problems) > 0 {
		return story.Story{}, problems
	}

	draft.ApplyDefaults(story.DefaultAuthor)
	st := story.Story{
		ID:          uuid.NewString(),
		Image:       draft.Image,
		Heading:     draft.Heading,
		SubHeading:  draft.SubHeading,
		Description: draft.Description,
		Author:      draft.Author,
		AuthorImage: draft.AuthorImage,
		CreatedAt:   now,
		IsFavorite:  draft.IsFavorite,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.stories = append(s.stories, st)
	return st, nil
}

// Update replaces the editable fields of an existing story wholesale.
func (s *Store) Update(id string, draft story.Draft) (story.Story, []string, error) {
	if problems := validateDraft(draft); len(problems) > 0 {
		return story.Story{}, problems, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.stories {
		if s.stories[i].ID == id {
			st := &s.stories[i]
			st.Image = draft.Image
			st.Heading = draft.Heading
			st.SubHeading = draft.SubHeading
			st.Description = draft.Description
			st.Author = draft.Author
			st.AuthorImage = draft.AuthorImage
			st.IsFavorite = draft.IsFavorite
			return *st, nil, nil
		}
	}
	return story.Story{}, nil, ErrStoryNotFound
}

// Delete removes a story, returning the removed copy.
func (s *Store) Delete(id string) (story.Story, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.stories {
		if s.stories[i].ID == id {
			removed := s.stories[i]
			s.stories = append(s.stories[:i], s.stories[i+1:]...)
			return removed, nil
		}
	}
	return story.Story{}, ErrStoryNotFound
}

// ToggleFavorite flips the favorite flag; the flip is computed here so
// concurrent clients cannot diverge.
func (s *Store) ToggleFavorite(id string) (story.Story, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.stories {
		if s.stories[i].ID == id {
			s.stories[i].IsFavorite = !s.stories[i].IsFavorite
			return s.stories[i], nil
		}
	}
	return story.Story{}, ErrStoryNotFound
}

// Search returns stories whose heading, subheading, description or author
// contains the query, case-insensitively.
func (s *Store) Search(query string) []story.Story {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return s.All()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	var matches []story.Story
	for _, st := range s.stories {
		haystack := strings.ToLower(st.Heading + " " + st.SubHeading + " " + st.Description + " " + st.Author)
		if strings.Contains(haystack, q) {
			matches = append(matches, st)
		}
	}
	return matches
}

// ByAuthor returns the stories written by the given author, exact match.
func (s *Store) ByAuthor(author string) []story.Story {
	s.mu.Lock()
	defer s.mu.Unlock()
	var matches []story.Story
	for _, st := range s.stories {
		if st.Author == author {
			matches = append(matches, st)
		}
	}
	return matches
}

func validateDraft(draft story.Draft) []string {
	var problems []string

	heading := strings.TrimSpace(draft.Heading)
	desc := strings.TrimSpace(draft.Description)

	if heading == "" {
		problems = append(problems, "Heading is required")
	}
	if desc == "" {
		problems = append(problems, "Description is required")
	} else if len(desc) < story.MinDescriptionLen {
		problems = append(problems, "Description must be at least 10 characters")
	}

	if len(heading) > maxHeadingLen {
		problems = append(problems, "Heading must be less than 200 characters")
	}
	if len(desc) > maxDescriptionLen {
		problems = append(problems, "Description must be less than 5000 characters")
	}

	return problems
}
