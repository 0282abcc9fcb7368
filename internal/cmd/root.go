package cmd

import (
	"log"

	"github.com/glamus/glamus-utils/autoconfig"
	"github.com/glamus/glamus-utils/internal/diag"
	"github.com/glamus/glamus-utils/internal/settings"
	"github.com/glamus/glamus-utils/version"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// app carries what every subcommand needs once the root flags are parsed.
type app struct {
	fs       afero.Fs
	cfgFile  string
	root     string
	dataRoot string
	debug    bool

	settings *settings.Settings
	log      *diag.Logger
}

// load resolves the settings and opens the diagnostics log. Flags given on
// the command line win over the file and the environment.
func (a *app) load(cmd *cobra.Command) error {
	s, err := settings.Load(a.cfgFile)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("root") {
		s.Root = a.root
	}
	if flags.Changed("data-root") {
		s.DataRoot = a.dataRoot
	}
	if flags.Changed("debug") {
		s.Log.Debug = a.debug
	}
	if err := s.Validate(); err != nil {
		return err
	}

	l, err := diag.New(s.Log, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.settings = s
	a.log = l
	return nil
}

func (a *app) close() {
	if a.log != nil {
		a.log.Close()
		a.log = nil
	}
}

// closeAfterRun wraps the run functions of c and its subcommands so the
// diagnostics log is closed however the command ends. Cobra skips the
// post-run hooks when a command fails.
func (a *app) closeAfterRun(c *cobra.Command) {
	for _, sub := range c.Commands() {
		a.closeAfterRun(sub)
	}
	if run := c.RunE; run != nil {
		c.RunE = func(cmd *cobra.Command, args []string) error {
			defer a.close()
			return run(cmd, args)
		}
	}
	if run := c.Run; run != nil {
		c.Run = func(cmd *cobra.Command, args []string) {
			defer a.close()
			run(cmd, args)
		}
	}
}

func (a *app) writer() *autoconfig.Writer {
	return autoconfig.NewWriter(a.fs, a.settings.Root,
		autoconfig.WithLockOptions(a.settings.LockOptions()),
		autoconfig.WithLogger(a.log.Logger))
}

// NewRootCmd creates and returns the root cobra command for the glutils CLI.
// It sets up all subcommands, command groups, and basic configuration.
func NewRootCmd() *cobra.Command {
	rootCmd, _ := newRootCmd(afero.NewOsFs())
	return rootCmd
}

func newRootCmd(fsys afero.Fs) (*cobra.Command, *app) {
	a := &app{fs: fsys}

	rootCmd := &cobra.Command{
		Use:   "glutils",
		Short: "glutils - helpers for automated election-test runs",
		Long: `glutils drives the shared files of an automated election-test run.

It writes the generated test configuration behind an advisory lock flag,
appends to the per-election log files and cleans up run artifacts.

Use subcommands to perform different operations:
  - config: Write or show the generated test configuration
  - lock: Show and reset the configuration lock flag
  - log: Append entries to the election log files
  - files: Work with files and file names`,
		Version:       version.GetFullVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if err := a.load(cmd); err != nil {
				log.Fatalf("Failed to load settings: %v", err)
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "Settings file (default ./"+settings.DefaultFile+" if present)")
	rootCmd.PersistentFlags().StringVar(&a.root, "root", "", "Project root holding the generated config")
	rootCmd.PersistentFlags().StringVar(&a.dataRoot, "data-root", "", "Directory holding one log directory per election")
	rootCmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "Log diagnostics at debug level")

	groupElection := "election"
	groupUtilities := "utilities"

	rootCmd.AddGroup(&cobra.Group{
		ID:    groupElection,
		Title: "Election Test Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupUtilities,
		Title: "Utility Commands",
	})

	configCmd := NewConfigCmd(a)
	lockCmd := NewLockCmd(a)
	logCmd := NewLogCmd(a)
	filesCmd := NewFilesCmd(a)
	versionCmd := NewVersionCmd()

	configCmd.GroupID = groupElection
	lockCmd.GroupID = groupElection
	logCmd.GroupID = groupElection
	filesCmd.GroupID = groupUtilities
	versionCmd.GroupID = groupUtilities

	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(lockCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(filesCmd)
	rootCmd.AddCommand(versionCmd)

	a.closeAfterRun(rootCmd)
	return rootCmd, a
}
