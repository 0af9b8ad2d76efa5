package server

import "github.com/vocal-project/storyctl/internal/story"

// seedStories are the sample stories the dev server starts with, so a
// fresh `storyctl serve` has something to show.
func seedStories() []story.Story {
	return []story.Story{
		{
			ID:          "1",
			Image:       "https://images.unsplash.com/photo-1464983953574-0892a716854b?auto=format&fit=crop&w=400&q=80",
			Heading:     "Angelique's Repose",
			SubHeading:  "A peaceful moment in nature",
			Description: "Angelique hides quietly in a shrub as bees and birds flit around her. A ladybug climbs up her arm to rest on her shoulder, while butterflies dance around her head.",
			Author:      "Andrea Corwin",
			AuthorImage: "https://randomuser.me/api/portraits/women/44.jpg",
			CreatedAt:   "3 days ago in Poets",
			IsFavorite:  false,
		},
		{
			ID:          "2",
			Image:       "https://images.unsplash.com/photo-1506905925346-21bda4d32df4?auto=format&fit=crop&w=400&q=80",
			Heading:     "A Hack You Can Try To Become a Creative Hero",
			SubHeading:  "Unlock your creative potential",
			Description: "Creativity isn't about waiting for inspiration. It's about showing up consistently and doing the work. Here's a simple hack that changed everything for me.",
			Author:      "Jamie Jackson",
			AuthorImage: "https://randomuser.me/api/portraits/men/32.jpg",
			CreatedAt:   "about 12 hours ago in Art",
			IsFavorite:  true,
		},
		{
			ID:          "3",
			Image:       "https://images.unsplash.com/photo-1519389950473-47ba0277781c?auto=format&fit=crop&w=400&q=80",
			Heading:     "My Experience on Vocal",
			SubHeading:  "One month milestone",
			Description: "Today marks a special little milestone: one whole month of writing here. It's been an incredible journey of discovery, creativity, and community building.",
			Author:      "Dalma Ubitz",
			AuthorImage: "https://randomuser.me/api/portraits/women/22.jpg",
			CreatedAt:   "about 24 hours ago in Journal",
			IsFavorite:  false,
		},
		{
			ID:          "4",
			Image:       "https://images.unsplash.com/photo-1544027993-37dbfe43562a?auto=format&fit=crop&w=400&q=80",
			Heading:     "In Case I Never Fall",
			SubHeading:  "A heartfelt message",
			Description: "To my parents: my voice is sometimes clearer when written. Not tangled in sobs, not silenced by the weight of unshed tears.",
			Author:      "Nicole Fenn",
			AuthorImage: "https://randomuser.me/api/portraits/women/12.jpg",
			CreatedAt:   "4 days ago in Poets",
			IsFavorite:  false,
		},
	}
}
