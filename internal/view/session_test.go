package view

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vocal-project/storyctl/internal/api"
	"github.com/vocal-project/storyctl/internal/app"
	"github.com/vocal-project/storyctl/internal/output"
	"github.com/vocal-project/storyctl/internal/server"
)

// runSession drives a full-stack session (dev server, real client, real
// controller) with scripted terminal input.
func runSession(t *testing.T, store *server.Store, input string) (string, *server.Store) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	srv := httptest.NewServer(server.NewHandler(store, logger).Router())
	t.Cleanup(srv.Close)

	client := api.NewClient(srv.URL, 5*time.Second, logger)
	ctrl := app.New(client, logger)

	var out bytes.Buffer
	printer := output.NewPrinterWithOptions(output.PrinterOptions{
		ColorMode: output.ColorNever,
		Out:       &out,
		Err:       &out,
	})

	session := NewSession(ctrl, printer, strings.NewReader(input), &out, "Current User")
	require.NoError(t, session.Run(context.Background()))
	return out.String(), store
}

func TestSession_CreateStory(t *testing.T) {
	input := strings.Join([]string{
		"", // sign in
		"n",
		"Brand new story",               // heading
		"",                              // subheading
		"A perfectly long description.", // description
		"",                              // author, keep default
		"",                              // image
		"",                              // save, default yes
		"q",
	}, "\n") + "\n"

	out, store := runSession(t, server.NewStore(), input)

	assert.Contains(t, out, "Story saved")
	assert.Contains(t, out, "Brand new story")

	stories := store.All()
	require.Len(t, stories, 1)
	assert.Equal(t, "Brand new story", stories[0].Heading)
	assert.Equal(t, "Current User", stories[0].Author)
}

func TestSession_ValidationKeepsEditorOpen(t *testing.T) {
	input := strings.Join([]string{
		"", // sign in
		"n",
		"Hi",    // heading
		"",      // subheading
		"short", // description, too short
		"",      // author
		"",      // image
		"",      // save attempt, rejected locally
		"",      // heading kept from draft
		"",      // subheading
		"A long enough description now.", // description fixed
		"", // author
		"", // image
		"", // save
		"q",
	}, "\n") + "\n"

	out, store := runSession(t, server.NewStore(), input)

	assert.Contains(t, out, "description must be at least 10 characters")
	assert.Contains(t, out, "Story saved")
	require.Len(t, store.All(), 1)
	assert.Equal(t, "Hi", store.All()[0].Heading)
}

func TestSession_CancelDiscardsDraft(t *testing.T) {
	input := strings.Join([]string{
		"", // sign in
		"n",
		"Throwaway",  // heading
		"",           // subheading
		"Never mind", // description
		"",           // author
		"",           // image
		"c",          // cancel instead of save
		"q",
	}, "\n") + "\n"

	_, store := runSession(t, server.NewStore(), input)
	assert.Empty(t, store.All())
}

func TestSession_DeleteConfirmAndDecline(t *testing.T) {
	input := strings.Join([]string{
		"",    // sign in
		"d 1", // delete first story
		"n",   // ... declined
		"d 1",
		"y", // ... confirmed
		"q",
	}, "\n") + "\n"

	seeded := server.NewSeededStore()
	before := len(seeded.All())
	out, store := runSession(t, seeded, input)

	assert.Contains(t, out, "Are you sure you want to delete")
	assert.Len(t, store.All(), before-1)
}

func TestSession_ToggleFavorite(t *testing.T) {
	input := strings.Join([]string{
		"", // sign in
		"f 1",
		"q",
	}, "\n") + "\n"

	_, store := runSession(t, server.NewSeededStore(), input)

	st, err := store.Get("1")
	require.NoError(t, err)
	assert.True(t, st.IsFavorite)
}

func TestSession_EmptyStateAffordance(t *testing.T) {
	input := "\nq\n"

	out, _ := runSession(t, server.NewStore(), input)
	assert.Contains(t, out, "No stories found")
	assert.NotContains(t, out, app.MsgLoadFailed)
}

func TestSession_UnknownCommand(t *testing.T) {
	input := "\nx\nq\n"

	out, _ := runSession(t, server.NewStore(), input)
	assert.Contains(t, out, "unknown command")
}
