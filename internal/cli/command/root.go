package command

import (
	"context"
	"fmt"
	"io"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/respkv-go/internal/cli/config"
	"github.com/yndnr/respkv-go/internal/cli/connection"
	"github.com/yndnr/respkv-go/internal/cli/output"
	"github.com/yndnr/respkv-go/internal/cli/repl"
	"github.com/yndnr/respkv-go/internal/infra/buildinfo"
	"github.com/yndnr/respkv-go/pkg/resp"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:                   "respkv-cli",
		Usage:                  "command-line client for respkv",
		UsageText:              "respkv-cli [global options] [command [args...]]",
		Version:                buildinfo.String(),
		Flags:                  globalFlags(),
		Action:                 rootAction,
		HideHelpCommand:        true,
		UseShortOptionHandling: true,
	}
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "server",
			Aliases: []string{"s"},
			Usage:   "server address (host:port)",
			EnvVars: []string{"RESPKV_SERVER"},
		},
		&cli.StringFlag{
			Name:    "profile",
			Aliases: []string{"p"},
			Usage:   "named server profile from the config file",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format: raw, json, yaml",
			EnvVars: []string{"RESPKV_OUTPUT"},
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "dial and per-request timeout",
		},
		&cli.StringFlag{
			Name:    "config",
			Usage:   "CLI config file",
			EnvVars: []string{"RESPKV_CLI_CONFIG"},
			Value:   config.DefaultConfigPath(),
		},
		&cli.BoolFlag{
			Name:  "no-history",
			Usage: "do not read or write the REPL history file",
		},
	}
}

// Options are the resolved global settings.
type Options struct {
	Server string
	Format output.Format
	Config *config.CLIConfig
}

// ParseOptions merges flags over the config file.
func ParseOptions(c *cli.Context) (*Options, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}
	if c.IsSet("timeout") {
		cfg.Timeout = c.Duration("timeout")
	}

	server, err := cfg.Resolve(c.String("server"), c.String("profile"))
	if err != nil {
		return nil, err
	}

	name := cfg.Output
	if c.IsSet("output") {
		name = c.String("output")
	}
	format, err := output.ParseFormat(name)
	if err != nil {
		return nil, err
	}

	return &Options{Server: server, Format: format, Config: cfg}, nil
}

func rootAction(c *cli.Context) error {
	opts, err := ParseOptions(c)
	if err != nil {
		return err
	}

	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}
	client, err := connection.Dial(ctx, opts.Server, opts.Config.Timeout)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	defer client.Close()

	formatter := output.NewFormatter(opts.Format)

	if c.NArg() > 0 {
		reply, err := client.Do(c.Args().Slice()...)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		if err := formatter.Format(c.App.Writer, reply); err != nil {
			return err
		}
		if _, ok := reply.(resp.SimpleError); ok {
			return cli.Exit("", 1)
		}
		return nil
	}

	historyFile := repl.DefaultHistoryFile()
	if c.Bool("no-history") {
		historyFile = ""
	}
	r := repl.New(executor(client, formatter, c.App.Writer),
		repl.WithIO(c.App.Reader, c.App.Writer),
		repl.WithPrompt(opts.Server+"> "),
		repl.WithHistory(repl.NewHistory(historyFile)),
	)
	return r.Run()
}

// executor sends REPL lines over client and prints each reply.
func executor(client *connection.Client, f output.Formatter, w io.Writer) repl.Executor {
	return func(args []string) error {
		reply, err := client.Do(args...)
		if err != nil {
			return fmt.Errorf("%s: %w", client.Addr(), err)
		}
		return f.Format(w, reply)
	}
}
