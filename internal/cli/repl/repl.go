package repl

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Executor runs one command line split into arguments.
type Executor func(args []string) error

// REPL is the read-eval-print loop.
type REPL struct {
	exec      Executor
	input     io.Reader
	output    io.Writer
	prompt    string
	completer *Completer
	history   *History
}

// Option configures a REPL.
type Option func(*REPL)

// WithIO sets the input and output streams.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(r *REPL) {
		r.input = in
		r.output = out
	}
}

// WithPrompt sets the prompt.
func WithPrompt(prompt string) Option {
	return func(r *REPL) {
		r.prompt = prompt
	}
}

// WithHistory sets the history store.
func WithHistory(h *History) Option {
	return func(r *REPL) {
		r.history = h
	}
}

// New creates a REPL that sends each line to exec.
func New(exec Executor, opts ...Option) *REPL {
	r := &REPL{
		exec:      exec,
		input:     os.Stdin,
		output:    os.Stdout,
		prompt:    "respkv> ",
		completer: NewCompleter(),
		history:   NewHistory(""),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run reads lines until EOF, "exit" or "quit". Execution errors are
// printed and the loop continues.
func (r *REPL) Run() error {
	if err := r.history.Load(); err != nil {
		fmt.Fprintf(r.output, "warning: load history: %v\n", err)
	}
	defer r.history.Save()

	reader := bufio.NewReader(r.input)
	for {
		fmt.Fprint(r.output, r.prompt)

		line, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return err
		}
		eof := err == io.EOF

		line = strings.TrimSpace(line)
		if line != "" {
			if done := r.handle(line); done {
				return nil
			}
		}
		if eof {
			fmt.Fprintln(r.output)
			return nil
		}
	}
}

// handle processes one line and reports whether the loop should stop.
func (r *REPL) handle(line string) bool {
	r.history.Add(line)

	args, err := SplitArgs(line)
	if err != nil {
		fmt.Fprintf(r.output, "(error) %v\n", err)
		return false
	}
	if len(args) == 0 {
		return false
	}

	switch strings.ToLower(args[0]) {
	case "exit":
		return true
	case "help":
		r.help(args[1:])
		return false
	}

	if err := r.exec(args); err != nil {
		fmt.Fprintf(r.output, "(error) %v\n", err)
	}
	return strings.EqualFold(args[0], "quit") && len(args) == 1
}

func (r *REPL) help(args []string) {
	prefix := ""
	if len(args) > 0 {
		prefix = args[0]
	}
	matches := r.completer.Complete(prefix)
	if len(matches) == 0 {
		fmt.Fprintf(r.output, "no command matches %q\n", prefix)
		return
	}
	fmt.Fprintln(r.output, strings.Join(matches, " "))
}
