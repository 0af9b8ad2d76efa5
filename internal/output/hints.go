package output

import (
	"fmt"
	"strings"
)

// CommandHints maps command names to related commands users might want to run next
var CommandHints = map[string][]string{
	"login":    {"list", "browse"},
	"list":     {"get <id>", "create", "browse"},
	"get":      {"edit <id>", "favorite <id>"},
	"create":   {"list"},
	"edit":     {"list", "get <id>"},
	"delete":   {"list"},
	"favorite": {"list --favorites"},
	"serve":    {"login", "list"},
}

// PrintHints prints "See also" hints for a command. No-op in quiet mode or if command has no hints.
func (p *Printer) PrintHints(command string) {
	if p.quiet {
		return
	}
	hints, ok := CommandHints[command]
	if !ok || len(hints) == 0 {
		return
	}

	cmds := make([]string, len(hints))
	for i, h := range hints {
		cmds[i] = "storyctl " + h
	}
	fmt.Fprintf(p.out, "\nSee also: %s\n", strings.Join(cmds, ", "))
}
