package repl

import (
	"sort"
	"strings"

	"github.com/yndnr/respkv-go/internal/command"
)

// localCommands are handled by the REPL itself or by the connection.
var localCommands = []string{"exit", "help", "ping", "quit"}

// Completer completes command names.
type Completer struct {
	commands []string
}

// NewCompleter creates a Completer over every server and REPL command.
func NewCompleter() *Completer {
	cmds := append(command.Names(), localCommands...)
	sort.Strings(cmds)
	return &Completer{commands: cmds}
}

// Commands returns all known command names.
func (c *Completer) Commands() []string {
	return c.commands
}

// Complete returns the commands starting with prefix (case-insensitive).
func (c *Completer) Complete(prefix string) []string {
	prefix = strings.ToLower(prefix)
	var suggestions []string
	for _, cmd := range c.commands {
		if strings.HasPrefix(cmd, prefix) {
			suggestions = append(suggestions, cmd)
		}
	}
	return suggestions
}
