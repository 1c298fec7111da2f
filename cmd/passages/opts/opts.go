package opts

import (
	"github.com/walteh/passages/pkg/log"
	"github.com/walteh/passages/pkg/status"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	// ConfigFile is a job file; positional args and flags override it
	ConfigFile string
	Debug      bool
	// Async runs operations on the runner's async path so Ctrl-C returns at once
	Async bool

	Console    *log.Logger
	UserLogger *status.UserLogger
}
