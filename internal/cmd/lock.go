package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/glamus/glamus-utils/lock"
	"github.com/spf13/cobra"
)

// NewLockCmd creates and returns the lock subcommand group for the glutils CLI.
func NewLockCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lock",
		Short: "Show and reset the configuration lock flag",
		Long: `The lock flag guards the generated configuration. It is advisory: a run
that does not check it can still overwrite the config.`,
	}
	cmd.AddCommand(NewLockStatusCmd(a))
	cmd.AddCommand(NewLockUnlockCmd(a))
	cmd.AddCommand(NewLockSetCmd(a))
	cmd.AddCommand(NewLockWatchCmd(a))
	return cmd
}

func (a *app) flag() *lock.FileFlag {
	return lock.NewFileFlag(a.fs, a.writer().LockPath())
}

// NewLockStatusCmd creates the lock status subcommand.
func NewLockStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print the state of the lock flag",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := a.flag()
			s, err := f.State()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", f.Path(), s)
			return nil
		},
	}
}

// NewLockUnlockCmd creates the lock unlock subcommand.
func NewLockUnlockCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "unlock",
		Short: "Reset the lock flag",
		Long: `Reset the lock flag to unlocked, whoever holds it. Writers never release
the flag themselves, so this is how an operator frees it without waiting for
the next writer to take it over.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := a.writer()
			if err := w.Unlock(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", w.LockPath(), lock.Unlocked)
			return nil
		},
	}
}

// NewLockSetCmd creates the lock set subcommand.
func NewLockSetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set STATE",
		Short: "Write a state (locked or unlocked) to the lock flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := lock.ParseState(args[0])
			if err != nil {
				return err
			}
			f := a.flag()
			if err := f.Set(s); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", f.Path(), s)
			return nil
		},
	}
}

// NewLockWatchCmd creates the lock watch subcommand.
func NewLockWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print the lock flag state whenever it changes",
		Long:  `Print the lock flag state now and on every change until interrupted.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
			defer stop()

			path := a.writer().LockPath()
			return lock.Watch(ctx, path, func(s lock.State) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", path, s)
			})
		},
	}
}
