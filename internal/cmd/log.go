package cmd

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"

	"github.com/glamus/glamus-utils/logbook"
	"github.com/glamus/glamus-utils/util"
	"github.com/spf13/cobra"
)

type logOptions struct {
	election string
	echo     bool
}

func (o *logOptions) register(cmd *cobra.Command, required bool) {
	usage := "Election path under the data root"
	if !required {
		usage += " (omit to log under <root>/logs)"
	}
	cmd.Flags().StringVarP(&o.election, "election", "e", "", usage)
	cmd.Flags().BoolVar(&o.echo, "echo", false, "Also print every entry to stdout")
	if required {
		_ = cmd.MarkFlagRequired("election")
	}
}

func (o *logOptions) open(cmd *cobra.Command, a *app) (*logbook.Logger, error) {
	var opts []logbook.Option
	if o.echo {
		opts = append(opts, logbook.WithDebug(cmd.OutOrStdout()))
	}
	var (
		l   *logbook.Logger
		err error
	)
	if o.election == "" {
		l, err = logbook.NewSimple(a.fs, a.settings.Root, opts...)
	} else {
		l, err = logbook.New(a.fs, a.settings.DataRoot, o.election, opts...)
	}
	// a run that cannot create its log files must not continue
	if errors.Is(err, util.ErrCreateFile) {
		log.Fatalf("Failed to create log files: %v", err)
	}
	return l, err
}

// NewLogCmd creates and returns the log subcommand group for the glutils CLI.
// Its subcommands append to the log files of one election.
func NewLogCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Append entries to the election log files",
		Long: `Append entries to the log files of one election:

  log.txt         every entry
  errorLog.txt    WARNING, ERROR and FATAL_ERROR entries
  resultLog.txt   party test results
  browserlog.txt  browser console dumps

The files live in <data-root>/<election>/ and are never rotated.`,
	}
	cmd.AddCommand(NewLogEntryCmd(a))
	cmd.AddCommand(NewLogPartyHeadingCmd(a))
	cmd.AddCommand(NewLogPartyResultCmd(a))
	cmd.AddCommand(NewLogBrowserCmd(a))
	cmd.AddCommand(NewLogArchiveCmd(a))
	return cmd
}

// NewLogEntryCmd creates the log entry subcommand.
func NewLogEntryCmd(a *app) *cobra.Command {
	o := &logOptions{}
	cmd := &cobra.Command{
		Use:   "entry LEVEL MESSAGE...",
		Short: "Append a leveled entry",
		Long: `Append "[timestamp] - [LEVEL] - [MESSAGE]" to log.txt, and to errorLog.txt
when LEVEL is WARNING, ERROR or FATAL_ERROR. LEVEL is free text; the usual
ones are FATAL_ERROR, VERBOSE, IGNORED, INFO, OK, WARNING and ERROR.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := o.open(cmd, a)
			if err != nil {
				return err
			}
			return l.Log(logbook.Level(args[0]), strings.Join(args[1:], " "))
		},
	}
	o.register(cmd, false)
	return cmd
}

// NewLogPartyHeadingCmd creates the log party-heading subcommand.
func NewLogPartyHeadingCmd(a *app) *cobra.Command {
	o := &logOptions{}
	var weighted, tuned, manipulated bool

	cmd := &cobra.Command{
		Use:   "party-heading PARTY",
		Short: "Start a party test section in resultLog.txt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := o.open(cmd, a)
			if err != nil {
				return err
			}
			return l.LogPartyResultHeading(args[0], weighted, tuned, manipulated)
		},
	}
	o.register(cmd, true)
	cmd.Flags().BoolVar(&weighted, "weighted", false, "The run weights statements")
	cmd.Flags().BoolVar(&tuned, "tuned", false, "The run is tuned (takes precedence over --weighted)")
	cmd.Flags().BoolVar(&manipulated, "manipulated", false, "The run manipulates answers")
	return cmd
}

// NewLogPartyResultCmd creates the log party-result subcommand.
func NewLogPartyResultCmd(a *app) *cobra.Command {
	o := &logOptions{}
	cmd := &cobra.Command{
		Use:   "party-result PARTY RESULT EXPECTED",
		Short: "Append a party result line to resultLog.txt",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := o.open(cmd, a)
			if err != nil {
				return err
			}
			return l.LogPartyResult(args[0], args[1], args[2])
		},
	}
	o.register(cmd, true)
	return cmd
}

// NewLogBrowserCmd creates the log browser subcommand.
func NewLogBrowserCmd(a *app) *cobra.Command {
	o := &logOptions{}
	cmd := &cobra.Command{
		Use:   "browser FILE",
		Short: "Append a browser console dump to browserlog.txt",
		Long: `Append the entries of a JSON file to browserlog.txt. An array is logged
element by element keyed by index, an object member by member in key order.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := util.Decode(a.fs, args[0])
			if err != nil {
				return err
			}
			entries, err := browserEntries(v)
			if err != nil {
				return err
			}
			l, err := o.open(cmd, a)
			if err != nil {
				return err
			}
			return l.LogBrowserResult(entries)
		},
	}
	o.register(cmd, true)
	return cmd
}

// NewLogArchiveCmd creates the log archive subcommand.
func NewLogArchiveCmd(a *app) *cobra.Command {
	o := &logOptions{}
	var out string

	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Zip the log files of an election",
		Long: `Zip the log files of an election into <election>_<YYYY_MM_DD>.zip. The
archive is written next to the election directory unless --out is given.
The log files themselves are kept.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := o.open(cmd, a)
			if err != nil {
				return err
			}
			path, n, err := l.Archive(out)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Archived %d files to %s\n", n, path)
			return nil
		},
	}
	o.register(cmd, false)
	cmd.Flags().StringVarP(&out, "out", "o", "", "Directory to write the archive to")
	return cmd
}

var errNotCollection = errors.New("JSON document must be an array or object")

func browserEntries(v any) ([]logbook.Entry, error) {
	switch t := v.(type) {
	case []any:
		entries := make([]logbook.Entry, len(t))
		for i, e := range t {
			entries[i] = logbook.Entry{Key: strconv.Itoa(i), Value: e}
		}
		return entries, nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		entries := make([]logbook.Entry, len(keys))
		for i, k := range keys {
			entries[i] = logbook.Entry{Key: k, Value: t[k]}
		}
		return entries, nil
	}
	return nil, fmt.Errorf("%w, got %T", errNotCollection, v)
}
