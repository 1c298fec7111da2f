package main

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/passages/cmd/passages/opts"
	"github.com/walteh/passages/pkg/log"
	"github.com/walteh/passages/pkg/search"
	"github.com/walteh/passages/pkg/status"
	"gitlab.com/tozd/go/errors"
)

const (
	exitFailure        = 1
	exitInvalidPattern = 2
)

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, root *opts.RootOpts) {
	cmd.PersistentFlags().StringVarP(&root.ConfigFile, "config", "c", "", "job file (yaml, json or hcl)")
	cmd.PersistentFlags().BoolVarP(&root.Debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().BoolVar(&root.Async, "async", false, "run operations asynchronously (an interrupt still waits for the running operation)")
}

// setupLogging installs a stderr console logger as the context default.
// Only warnings show until --debug lowers the level.
func setupLogging() zerolog.Logger {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger
	return logger
}

// newConsole applies the debug flag and returns the result printer.
func newConsole(w io.Writer, debug bool) *log.Logger {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	return log.New(w, level)
}

// reportError prints err and picks the exit code. Invalid regex text gets its
// own message and code so it is never mistaken for a search without results.
func reportError(u *status.UserLogger, err error) int {
	if errors.Is(err, search.ErrInvalidPattern) {
		u.LogError("Invalid search pattern", err)
		return exitInvalidPattern
	}
	u.LogError("Command failed", err)
	return exitFailure
}
