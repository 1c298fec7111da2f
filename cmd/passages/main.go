package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/walteh/passages/cmd/passages/commands"
	"github.com/walteh/passages/cmd/passages/opts"
	"github.com/walteh/passages/pkg/status"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Setup logging
	logger := setupLogging()
	ctx := logger.WithContext(context.Background())

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	root := &opts.RootOpts{
		UserLogger: status.NewUserLogger(ctx, nil),
	}

	rootCmd := newRootCmd(root)
	rootCmd.AddCommand(
		commands.NewSearchCmd(root),
		commands.NewReplaceCmd(root),
		newVersionCmd(),
	)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		return reportError(root.UserLogger, err)
	}
	return 0
}

func newRootCmd(root *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "passages",
		Short: "Search and replace across story passages",
		Long: `passages searches twee stories and text files for literal text or regular
expressions, previews the matches and replaces them in place.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			root.Console = newConsole(cmd.OutOrStdout(), root.Debug)
		},
	}

	addRootFlags(cmd, root)

	return cmd
}
