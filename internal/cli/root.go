// Package cli implements the dumpy command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/toheart/dumpy"
	"github.com/toheart/dumpy/decode"
	"github.com/toheart/dumpy/domain"
	"github.com/toheart/dumpy/persistence/factory"
)

var version = "dev" // set with -ldflags "-X github.com/toheart/dumpy/internal/cli.version=..."

// rootOpts holds the command-line flags.
type rootOpts struct {
	configPath string   // TOML config file
	sets       []string // name=value option overrides
	format     string   // auto, json or yaml
	journal    string   // sqlite journal path
	logFile    string   // rotated log file
	verbose    bool     // debug logging
	jobs       int      // concurrent renders, 0 means unbounded
}

// CLI wires the command to its streams. Tests replace the streams and the
// journal repository.
type CLI struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	repo       domain.DumpRepository // used instead of --journal when set
	newSession func() string
}

// New creates a CLI bound to the given streams.
func New(stdin io.Reader, stdout, stderr io.Writer) *CLI {
	return &CLI{
		stdin:      stdin,
		stdout:     stdout,
		stderr:     stderr,
		newSession: uuid.NewString,
	}
}

// Execute runs the command with the process streams and arguments.
func Execute(ctx context.Context) error {
	return New(os.Stdin, os.Stdout, os.Stderr).RootCommand().ExecuteContext(ctx)
}

// RootCommand builds the dumpy command.
func (c *CLI) RootCommand() *cobra.Command {
	var opts rootOpts

	cmd := &cobra.Command{
		Use:   "dumpy [flags] [file...]",
		Short: "Render JSON and YAML documents as readable value dumps",
		Long: `dumpy decodes each input document and prints it the way the dumpy
library renders values: bracketed sequences, quoted truncated strings and
upper-case TRUE/FALSE/NULL. Without files, or with "-", it reads stdin.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, opts, args)
		},
	}
	cmd.SetIn(c.stdin)
	cmd.SetOut(c.stdout)
	cmd.SetErr(c.stderr)

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "TOML config file")
	flags.StringArrayVar(&opts.sets, "set", nil, "set a formatter option, name=value (repeatable)")
	flags.StringVar(&opts.format, "format", string(decode.FormatAuto), "input format: auto, json or yaml")
	flags.StringVar(&opts.journal, "journal", "", "save every rendering to this sqlite database")
	flags.StringVar(&opts.logFile, "log-file", "", "write logs to a rotated file instead of stderr")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	flags.IntVarP(&opts.jobs, "jobs", "j", 0, "maximum documents rendered at once (0 = no limit)")

	return cmd
}

func (c *CLI) run(cmd *cobra.Command, opts rootOpts, args []string) error {
	var cfg fileConfig
	if opts.configPath != "" {
		var err error
		if cfg, err = loadConfig(opts.configPath); err != nil {
			return err
		}
	}
	flags := cmd.Flags()
	if !flags.Changed("journal") {
		opts.journal = cfg.Journal
	}
	if !flags.Changed("log-file") {
		opts.logFile = cfg.LogFile
	}
	if !flags.Changed("format") && cfg.Format != "" {
		opts.format = cfg.Format
	}

	log := newLogger(c.stderr, opts.logFile, opts.verbose)

	format, err := decode.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	sets := make([]setting, 0, len(opts.sets))
	for _, arg := range opts.sets {
		s, err := parseSet(arg)
		if err != nil {
			return err
		}
		sets = append(sets, s)
	}
	dumperOpts := append([]dumpy.Option{dumpy.WithEnv()}, dumperOptions(cfg.Options, sets)...)

	// reject bad option names before reading any input
	if _, err := dumpy.New(dumperOpts...); err != nil {
		return err
	}

	docs, err := readDocuments(c.stdin, args)
	if err != nil {
		return err
	}
	if err := renderDocuments(cmd.Context(), docs, format, dumperOpts, log, opts.jobs); err != nil {
		return err
	}
	if err := writeDocuments(c.stdout, docs); err != nil {
		return err
	}

	repo := c.repo
	if repo == nil && opts.journal != "" {
		f, err := factory.CreateRepositoryFactory(string(factory.DBTypeSQLite), opts.journal, log)
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		defer factory.CloseFactory(f)
		repo = f.GetDumpRepository()
	}
	if repo == nil {
		return nil
	}
	return journalDocuments(repo, c.newSession(), docs, log)
}
