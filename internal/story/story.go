// Package story defines the story entity and the draft shape used while
// composing a create or edit.
package story

// Default values applied when a field is left unset, matching what the
// content service itself falls back to.
const (
	DefaultAuthor        = "Anonymous"
	DefaultDraftAuthor   = "Current User"
	PlaceholderAvatarURL = "/placeholder.svg?height=40&width=40"
)

// Story is the blog-post entity managed by the content service. The id and
// createdAt are server-assigned; the client never fabricates them for a
// persisted story.
type Story struct {
	ID          string `json:"id"`
	Image       string `json:"image,omitempty"`
	Heading     string `json:"heading"`
	SubHeading  string `json:"subHeading,omitempty"`
	Description string `json:"description"`
	Author      string `json:"author"`
	AuthorImage string `json:"authorImage,omitempty"`
	CreatedAt   string `json:"createdAt"`
	IsFavorite  bool   `json:"isFavorite"`
}

// Draft is the transient, client-only editable shape of a story. It carries
// no id or createdAt; those belong to the service.
type Draft struct {
	Image       string `json:"image,omitempty"`
	Heading     string `json:"heading"`
	SubHeading  string `json:"subHeading,omitempty"`
	Description string `json:"description"`
	Author      string `json:"author"`
	AuthorImage string `json:"authorImage,omitempty"`
	IsFavorite  bool   `json:"isFavorite"`
}

// DraftFromStory copies the editable fields of an existing story into a
// draft, the starting point for an edit.
func DraftFromStory(s Story) Draft {
	return Draft{
		Image:       s.Image,
		Heading:     s.Heading,
		SubHeading:  s.SubHeading,
		Description: s.Description,
		Author:      s.Author,
		AuthorImage: s.AuthorImage,
		IsFavorite:  s.IsFavorite,
	}
}

// ApplyDefaults fills unset draft fields with their client-side defaults.
func (d *Draft) ApplyDefaults(author string) {
	if d.Author == "" {
		if author != "" {
			d.Author = author
		} else {
			d.Author = DefaultDraftAuthor
		}
	}
	if d.AuthorImage == "" {
		d.AuthorImage = PlaceholderAvatarURL
	}
}
