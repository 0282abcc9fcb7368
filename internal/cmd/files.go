package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/glamus/glamus-utils/util"
	"github.com/spf13/cobra"
)

// NewFilesCmd creates and returns the files subcommand group for the glutils CLI.
func NewFilesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "files",
		Short: "Work with files and file names",
	}
	cmd.AddCommand(NewFilesCleanCmd(a))
	cmd.AddCommand(NewFilesEnsureCmd(a))
	cmd.AddCommand(NewFilesSplitCmd())
	cmd.AddCommand(NewFilesStampCmd())
	return cmd
}

// NewFilesCleanCmd creates the files clean subcommand.
func NewFilesCleanCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clean PREFIX",
		Short: "Delete the files whose path starts with PREFIX",
		Long: `Delete every file matching PREFIX* and print how many were removed.
Directories are left alone and files that cannot be removed are skipped.`,
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			n := util.DeleteFilesWithPrefix(a.fs, args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d files\n", n)
		},
	}
}

// NewFilesEnsureCmd creates the files ensure subcommand.
func NewFilesEnsureCmd(a *app) *cobra.Command {
	var (
		dir  bool
		mode string
	)

	cmd := &cobra.Command{
		Use:   "ensure PATH",
		Short: "Create a file or directory if it does not exist",
		Long: `Create PATH with its parent directories if it does not exist yet. An
existing file keeps its content and mode.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			perm, err := strconv.ParseUint(mode, 8, 32)
			if err != nil {
				return fmt.Errorf("invalid mode %q: %w", mode, err)
			}
			if dir {
				return util.EnsureDirectory(a.fs, args[0], os.FileMode(perm))
			}
			return util.EnsureFile(a.fs, args[0], os.FileMode(perm))
		},
	}

	cmd.Flags().BoolVarP(&dir, "dir", "d", false, "Create a directory instead of a file")
	cmd.Flags().StringVarP(&mode, "mode", "m", strconv.FormatUint(uint64(util.DefaultMode), 8), "Permission bits in octal")

	return cmd
}

// NewFilesSplitCmd creates the files split subcommand.
func NewFilesSplitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "split NAME",
		Short: "Print the base, extension and parent directory of NAME",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			name := args[0]
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "base:      %s\n", util.FilenameWithoutExtension(name))
			fmt.Fprintf(out, "extension: %s\n", util.FileExtension(name))
			fmt.Fprintf(out, "parent:    %s\n", util.ParentDir(name))
		},
	}
}

// NewFilesStampCmd creates the files stamp subcommand.
func NewFilesStampCmd() *cobra.Command {
	var ymd bool

	cmd := &cobra.Command{
		Use:   "stamp",
		Short: "Print the current log timestamp",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if ymd {
				fmt.Fprintln(cmd.OutOrStdout(), util.DateStampYMD())
				return
			}
			fmt.Fprintln(cmd.OutOrStdout(), util.TimestampForLog())
		},
	}
	cmd.Flags().BoolVar(&ymd, "ymd", false, "Print the date as YYYY_MM_DD for file names")
	return cmd
}
