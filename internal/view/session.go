// Package view renders application state to the terminal and forwards user
// intents to the controller. It owns no state of its own: every screen is
// drawn from a controller snapshot.
package view

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vocal-project/storyctl/internal/app"
	"github.com/vocal-project/storyctl/internal/output"
	"github.com/vocal-project/storyctl/internal/story"
)

// Session is an interactive terminal session over the controller's
// Login → List ⇄ Edit flow.
type Session struct {
	ctrl          *app.Controller
	printer       *output.Printer
	scanner       *bufio.Scanner
	out           io.Writer
	defaultAuthor string
}

// NewSession wires a session over the given streams.
func NewSession(ctrl *app.Controller, printer *output.Printer, in io.Reader, out io.Writer, defaultAuthor string) *Session {
	return &Session{
		ctrl:          ctrl,
		printer:       printer,
		scanner:       bufio.NewScanner(in),
		out:           out,
		defaultAuthor: defaultAuthor,
	}
}

// Run drives the session until the user quits or input ends.
func (s *Session) Run(ctx context.Context) error {
	s.printer.Header("Top Stories")
	s.printer.Print("Press enter to sign in.")
	if !s.scanner.Scan() {
		return s.scanner.Err()
	}

	if err := s.ctrl.Login(ctx); err != nil {
		// The list view shows the error banner; the session carries on so
		// the user can retry with r.
		s.printer.Info("Signed in, but the first load failed.")
	}

	for {
		s.renderList(s.ctrl.Snapshot())
		fmt.Fprint(s.out, "storyctl> ")
		if !s.scanner.Scan() {
			return s.scanner.Err()
		}
		line := strings.TrimSpace(s.scanner.Text())
		if line == "" {
			continue
		}

		cmd, arg, _ := strings.Cut(line, " ")
		switch cmd {
		case "q", "quit", "exit":
			return nil
		case "r", "refresh":
			_ = s.ctrl.Refresh(ctx)
		case "n", "new":
			s.ctrl.NewStory(s.defaultAuthor)
			s.runEditor(ctx)
		case "e", "edit":
			st, ok := s.storyAt(arg)
			if !ok {
				continue
			}
			s.ctrl.EditStory(st)
			s.runEditor(ctx)
		case "d", "delete":
			st, ok := s.storyAt(arg)
			if !ok {
				continue
			}
			_ = s.ctrl.Delete(ctx, st.ID, s.confirmDelete)
		case "f", "fav", "favorite":
			st, ok := s.storyAt(arg)
			if !ok {
				continue
			}
			_ = s.ctrl.ToggleFavorite(ctx, st.ID)
		case "h", "help":
			s.printHelp()
		default:
			s.printer.Warning("unknown command %q, try h for help", cmd)
		}
	}
}

func (s *Session) printHelp() {
	s.printer.Print("  r          refresh the story list")
	s.printer.Print("  n          write a new story")
	s.printer.Print("  e <n>      edit story number n")
	s.printer.Print("  d <n>      delete story number n")
	s.printer.Print("  f <n>      toggle favorite on story number n")
	s.printer.Print("  q          quit")
}

// storyAt resolves a 1-based list position from the current snapshot.
func (s *Session) storyAt(arg string) (story.Story, bool) {
	state := s.ctrl.Snapshot()
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || n < 1 || n > len(state.Stories) {
		s.printer.Warning("no story number %q, pick 1-%d", arg, len(state.Stories))
		return story.Story{}, false
	}
	return state.Stories[n-1], true
}

func (s *Session) renderList(state app.State) {
	if state.Err != "" {
		s.printer.Error("%s", state.Err)
	}
	if len(state.Stories) == 0 {
		if state.Err == "" {
			s.printer.Print("No stories found. Create your first story with n!")
		}
		return
	}

	table := output.NewTableWithWriter(s.out, []string{"#", "", "HEADING", "AUTHOR", "CREATED"})
	for i, st := range state.Stories {
		table.AddRow([]string{
			strconv.Itoa(i + 1),
			s.printer.FavoriteBadge(st.IsFavorite),
			st.Heading,
			st.Author,
			st.CreatedAt,
		})
	}
	table.Render()
}

// runEditor loops the edit screen until save succeeds or the user cancels.
// A failed save keeps the draft so the user can adjust and resubmit.
func (s *Session) runEditor(ctx context.Context) {
	for {
		state := s.ctrl.Snapshot()
		if state.Selected != nil {
			s.printer.Header("Edit story")
		} else {
			s.printer.Header("New story")
		}
		if state.Err != "" {
			s.printer.Error("%s", state.Err)
		}

		draft := state.Draft
		draft.Heading = s.prompt("Heading", draft.Heading)
		draft.SubHeading = s.prompt("Subheading", draft.SubHeading)
		draft.Description = s.prompt("Description", draft.Description)
		draft.Author = s.prompt("Author", draft.Author)
		draft.Image = s.prompt("Image URL", draft.Image)

		fmt.Fprint(s.out, "Save? [Y/n/c] ")
		if !s.scanner.Scan() {
			return
		}
		switch strings.ToLower(strings.TrimSpace(s.scanner.Text())) {
		case "c", "cancel":
			_ = s.ctrl.Cancel(ctx)
			return
		case "n", "no":
			continue
		}

		err := s.ctrl.Save(ctx, draft)
		if err == nil {
			s.printer.Success("Story saved")
			return
		}

		var verrs app.ValidationErrors
		if errors.As(err, &verrs) {
			for _, ve := range verrs {
				s.printer.Error("%s: %s", ve.Field, ve.Message)
			}
			continue
		}
		// Save or reload failure: banner already set on the state, loop so
		// the user keeps the draft and can retry or cancel.
	}
}

func (s *Session) prompt(label, current string) string {
	if current != "" {
		fmt.Fprintf(s.out, "%s [%s]: ", label, current)
	} else {
		fmt.Fprintf(s.out, "%s: ", label)
	}
	if !s.scanner.Scan() {
		return current
	}
	text := strings.TrimSpace(s.scanner.Text())
	if text == "" {
		return current
	}
	return text
}

func (s *Session) confirmDelete(st story.Story) bool {
	fmt.Fprintf(s.out, "Are you sure you want to delete %q? [y/N] ", st.Heading)
	if !s.scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(s.scanner.Text()))
	return answer == "y" || answer == "yes"
}
