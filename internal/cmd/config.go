package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/glamus/glamus-utils/autoconfig"
	"github.com/glamus/glamus-utils/util"
	"github.com/spf13/cobra"
)

// NewConfigCmd creates and returns the config subcommand group for the glutils CLI.
func NewConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Write or show the generated test configuration",
	}
	cmd.AddCommand(NewConfigWriteCmd(a))
	cmd.AddCommand(NewConfigShowCmd(a))
	return cmd
}

type configWriteOptions struct {
	fields autoconfig.Fields

	cookieQuestion string
	iframe         string
	banner         string
	banner2        string

	resultDir    string
	resultPrefix string
	dryRun       bool
}

// NewConfigWriteCmd creates the config write subcommand.
func NewConfigWriteCmd(a *app) *cobra.Command {
	o := &configWriteOptions{}

	cmd := &cobra.Command{
		Use:   "write",
		Short: "Write the generated test configuration",
		Long: `Render the configuration of one test run and write it to the shared
config file once the lock flag is free.

If another run holds the flag, write waits and retries. After the configured
number of failed attempts the flag is reset and the document is written.
The flag stays locked after a successful write.

Nested structures (--cookie-question, --iframe, --banner, --banner2) are read
from JSON files and embedded unchanged when they are non-empty objects or
arrays.

With --result-dir and no --server-result-file, earlier result files carrying
--result-prefix are removed and a fresh unique result file name is used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigWrite(cmd, a, o)
		},
	}

	f := &o.fields
	flags := cmd.Flags()
	flags.StringVarP(&f.ElectionPath, "election", "e", "", "Election path")
	flags.StringVar(&f.ServerResultFile, "server-result-file", "", "File the server writes its results to")
	flags.StringVar(&f.ModuleDefinitionPath, "module-definition", "", "Module definition path")
	flags.StringVar(&f.ServerID, "server-id", "", "Server identifier")
	flags.StringVar(&f.BaseURL, "base-url", "", "Base URL under test")
	flags.StringVar(&f.ServerTitle, "server-title", "", "Server title")
	flags.StringVar(&f.Platform, "platform", "", "Browser platform")
	flags.StringVar(&f.PlatformVersion, "platform-version", "", "Browser platform version")
	flags.StringVar(&f.BrowserName, "browser", "", "Browser name")
	flags.StringVar(&f.BrowserVersion, "browser-version", "", "Browser version")
	flags.IntVar(&f.PartyID, "party-id", 0, "Party identifier")
	flags.StringVar(&f.PartyName, "party-name", "", "Party name")
	flags.BoolVar(&f.TestStatements, "test-statements", false, "Test the statements")
	flags.BoolVar(&f.DevelopmentMode, "development-mode", false, "Run in development mode")

	flags.StringVar(&o.cookieQuestion, "cookie-question", "", "JSON file with the cookie question structure")
	flags.StringVar(&o.iframe, "iframe", "", "JSON file with the iframe structure")
	flags.StringVar(&o.banner, "banner", "", "JSON file with the banner structure")
	flags.StringVar(&o.banner2, "banner2", "", "JSON file with the second banner structure")

	flags.StringVar(&o.resultDir, "result-dir", "", "Directory for server result files")
	flags.StringVar(&o.resultPrefix, "result-prefix", "serverResult_", "Name prefix of server result files")
	flags.BoolVar(&o.dryRun, "dry-run", false, "Print the document instead of writing it")

	return cmd
}

func runConfigWrite(cmd *cobra.Command, a *app, o *configWriteOptions) error {
	nested := []struct {
		file   string
		target *any
	}{
		{o.cookieQuestion, &o.fields.CookieQuestion},
		{o.iframe, &o.fields.Iframe},
		{o.banner, &o.fields.Banner},
		{o.banner2, &o.fields.Banner2},
	}
	for _, n := range nested {
		if n.file == "" {
			continue
		}
		v, err := util.Decode(a.fs, n.file)
		if err != nil {
			return err
		}
		switch v.(type) {
		case map[string]any, []any:
		default:
			return fmt.Errorf("%w: %s", errNotCollection, n.file)
		}
		*n.target = v
	}

	if o.dryRun {
		doc, err := autoconfig.Render(o.fields)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), doc)
		return nil
	}

	w := a.writer()
	if o.resultDir != "" && o.fields.ServerResultFile == "" {
		removed := w.CleanServerResults(o.resultDir, o.resultPrefix)
		a.log.Debug("removed old server results", "dir", o.resultDir, "count", removed)
		o.fields.ServerResultFile = autoconfig.ServerResultFile(o.resultDir, o.resultPrefix)
	}

	if err := w.Write(o.fields); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Config written to %s\n", w.ConfigPath())
	if o.fields.ServerResultFile != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Server results: %s\n", o.fields.ServerResultFile)
	}
	return nil
}

// NewConfigShowCmd creates the config show subcommand.
func NewConfigShowCmd(a *app) *cobra.Command {
	var (
		compact bool
		save    string
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the current generated configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := autoconfig.Read(a.fs, a.settings.Root)
			if err != nil {
				return err
			}
			if save != "" {
				if err := util.WriteJSONFile(a.fs, save, m); err != nil {
					return err
				}
			}
			if compact {
				s, err := util.Encode(m)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), s)
				return nil
			}
			data, err := json.MarshalIndent(m, "", "  ")
			if err != nil {
				return err
			}
			doc := string(data)
			if isTerminal(cmd.OutOrStdout()) {
				doc = highlightJSON(doc)
			}
			fmt.Fprintln(cmd.OutOrStdout(), doc)
			return nil
		},
	}
	cmd.Flags().BoolVar(&compact, "compact", false, "Print on a single line")
	cmd.Flags().StringVar(&save, "save", "", "Also save a copy of the document to this file")
	return cmd
}
