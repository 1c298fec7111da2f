package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/passages/cmd/passages/opts"
	"github.com/walteh/passages/pkg/log"
	"github.com/walteh/passages/pkg/operation"
	"github.com/walteh/passages/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// NewReplaceCmd creates a new replace command
func NewReplaceCmd(root *opts.RootOpts) *cobra.Command {
	var (
		flags     jobFlags
		write     bool
		passageID string
	)

	cmd := &cobra.Command{
		Use:   "replace [PATTERN REPLACEMENT] [SOURCES...]",
		Short: "Replace a pattern across passages",
		Long: `Replace substitutes every match in every passage, or in one passage with --id.

Without --write nothing is saved: each changed passage is shown with a diff.
With --write every changed source file is rewritten in place. A text file
whose passage is renamed moves to a file with the new name.

In regex mode the replacement may refer to groups: $1 is the whole match and
$2 onward are the pattern's own groups.`,
		Example: `  passages replace cat dog 'story/**/*.twee'
  passages replace --names --write 'Cellar' 'Basement' story.twee
  passages replace --regex '(\w+)@home' '$2@work' --id Intro story.twee`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			pattern, replacement, sources, err := replaceArgs(root, args)
			if err != nil {
				return err
			}

			cfg, err := buildConfig(cmd, root, &flags, pattern, replacement, sources)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("write") {
				cfg.Write = write
			}
			if cfg.Replacement == nil {
				return errors.Errorf("replace needs a replacement")
			}

			compiled, err := cfg.Compile()
			if err != nil {
				return errors.Errorf("compiling query: %w", err)
			}

			coll, err := loadPassages(ctx, cfg)
			if err != nil {
				return err
			}

			var files *status.Manager
			if cfg.Write {
				files = status.New(cfg.BaseDir, zerolog.Ctx(ctx))
			}

			op := operation.NewReplaceOperation(operation.Options{
				Pattern:  compiled,
				Passages: coll,
				Files:    files,
			}, *cfg.Replacement, passageID)

			runErr := operation.NewRunner(zerolog.Ctx(ctx), root.Async).Run(ctx, op)
			if runErr != nil && ctx.Err() != nil {
				return runErr
			}
			if op.Result == nil {
				return errors.Errorf("replacing: %w", runErr)
			}
			result := op.Result

			root.Console.StartQuery(ctx, log.QueryOperation{
				Pattern:     compiled.String(),
				Replacement: cfg.Replacement,
				Sources:     cfg.Sources,
				DryRun:      !cfg.Write,
			})
			for i, change := range result.Changes {
				root.Console.LogPassageResult(ctx, log.PassageResult{
					Number:       i + 1,
					Name:         change.NewName,
					Source:       change.Source,
					Matches:      change.Replacements,
					Replacements: change.Replacements,
				})
				if change.Renamed() {
					root.Console.Infof("Renamed %q to %q", change.OldName, change.NewName)
				}
				if !cfg.Write && change.OldText != change.NewText {
					root.Console.Raw(indent(change.Pretty(), "        ") + "\n")
				}
			}
			root.Console.EndQuery(ctx)

			for _, info := range result.Files {
				root.UserLogger.LogFileChange(info)
			}

			if runErr != nil {
				return errors.Errorf("replacing: %w", runErr)
			}

			root.UserLogger.LogReplaceSummary(result.TotalReplacements, result.PassagesMatched)
			if !cfg.Write && result.PassagesMatched > 0 {
				root.Console.Warning("Dry run, nothing was written. Pass --write to save the changes")
			}

			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVarP(&write, "write", "w", false, "write changed sources back to disk")
	cmd.Flags().StringVar(&passageID, "id", "", "only replace in the passage with this id or name")

	return cmd
}

func replaceArgs(root *opts.RootOpts, args []string) (pattern, replacement *string, sources []string, err error) {
	switch {
	case len(args) == 0 && root.ConfigFile != "":
		return nil, nil, nil, nil
	case len(args) < 2:
		return nil, nil, nil, errors.Errorf("replace needs a pattern and a replacement")
	case len(args) == 2 && root.ConfigFile == "":
		return nil, nil, nil, errors.Errorf("replace needs at least one source after the replacement")
	}
	return &args[0], &args[1], args[2:], nil
}
