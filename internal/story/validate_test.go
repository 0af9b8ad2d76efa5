package story

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Valid(t *testing.T) {
	d := Draft{Heading: "First light", Description: "A long enough description."}
	assert.Empty(t, d.Validate())
}

func TestValidate_HeadingRequired(t *testing.T) {
	for _, heading := range []string{"", "   ", "\t\n"} {
		d := Draft{Heading: heading, Description: "A long enough description."}
		errs := d.Validate()
		require.Len(t, errs, 1, "heading=%q", heading)
		assert.Equal(t, "heading", errs[0].Field)
		assert.Equal(t, "heading is required", errs[0].Message)
	}
}

func TestValidate_DescriptionRequired(t *testing.T) {
	d := Draft{Heading: "Hi", Description: "   "}
	errs := d.Validate()
	require.Len(t, errs, 1)
	assert.Equal(t, "description", errs[0].Field)
	assert.Equal(t, "description is required", errs[0].Message)
}

func TestValidate_DescriptionTooShort(t *testing.T) {
	for length := 1; length <= 9; length++ {
		d := Draft{Heading: "Hi", Description: strings.Repeat("x", length)}
		errs := d.Validate()
		require.Len(t, errs, 1, "length=%d", length)
		assert.Equal(t, "description must be at least 10 characters", errs[0].Message)
	}

	d := Draft{Heading: "Hi", Description: strings.Repeat("x", 10)}
	assert.Empty(t, d.Validate())
}

func TestValidate_BothFieldsReported(t *testing.T) {
	d := Draft{Heading: " ", Description: "short"}
	errs := d.Validate()
	require.Len(t, errs, 2)
	assert.Equal(t, "heading", errs[0].Field)
	assert.Equal(t, "description", errs[1].Field)
}

func TestDraftFromStory_CopiesEditableFields(t *testing.T) {
	s := Story{
		ID:          "42",
		Heading:     "Heading",
		SubHeading:  "Sub",
		Description: "Plenty of description here.",
		Author:      "Ada",
		CreatedAt:   "2026-01-02T15:04:05Z",
		IsFavorite:  true,
	}
	d := DraftFromStory(s)
	assert.Equal(t, s.Heading, d.Heading)
	assert.Equal(t, s.Description, d.Description)
	assert.Equal(t, s.Author, d.Author)
	assert.True(t, d.IsFavorite)
}

func TestApplyDefaults(t *testing.T) {
	var d Draft
	d.ApplyDefaults("")
	assert.Equal(t, DefaultDraftAuthor, d.Author)
	assert.Equal(t, PlaceholderAvatarURL, d.AuthorImage)

	d = Draft{Author: "Ada"}
	d.ApplyDefaults("Grace")
	assert.Equal(t, "Ada", d.Author)

	d = Draft{}
	d.ApplyDefaults("Grace")
	assert.Equal(t, "Grace", d.Author)
}
