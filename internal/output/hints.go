package output

import (
	"fmt"
	"strings"
)

// CommandHints maps command names to related commands users might want to run next
var CommandHints = map[string][]string{
	"login":      {"stories", "whoami"},
	"signup":     {"submit --title ... --url ...", "stories"},
	"logout":     {"login"},
	"stories":    {"favorite <storyID>", "submit --title ... --url ..."},
	"submit":     {"mine", "stories"},
	"edit":       {"mine"},
	"remove":     {"mine"},
	"favorite":   {"favorites"},
	"unfavorite": {"favorites"},
	"favorites":  {"unfavorite <storyID>", "stories"},
	"mine":       {"edit <storyID>", "remove <storyID>"},
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
		cmds[i] = "snoozectl " + h
	}
	fmt.Fprintf(p.out, "\nSee also: %s\n", strings.Join(cmds, ", "))
}
