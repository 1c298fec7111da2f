package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/passages/cmd/passages/opts"
	"github.com/walteh/passages/pkg/log"
	"github.com/walteh/passages/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// NewSearchCmd creates a new search command
func NewSearchCmd(root *opts.RootOpts) *cobra.Command {
	var (
		flags jobFlags
		html  bool
	)

	cmd := &cobra.Command{
		Use:   "search [PATTERN] [SOURCES...]",
		Short: "List passages that match a pattern",
		Long: `Search loads every passage from the source globs and lists the ones that
match, with the number of matches and a highlighted preview.

The pattern is literal text unless --regex is set. With --config the job file
supplies the pattern and sources, and any given here replace them.`,
		Example: `  passages search cat 'story/**/*.twee'
  passages search --regex --names 'c[aeiou]t' 'story/*.twee' 'notes/*.txt'
  passages search --html cat story.twee > results.html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			pattern, sources, err := searchArgs(root, args)
			if err != nil {
				return err
			}

			cfg, err := buildConfig(cmd, root, &flags, pattern, nil, sources)
			if err != nil {
				return err
			}

			compiled, err := cfg.Compile()
			if err != nil {
				return errors.Errorf("compiling query: %w", err)
			}

			coll, err := loadPassages(ctx, cfg)
			if err != nil {
				return err
			}

			op := operation.NewSearchOperation(operation.Options{
				Pattern:  compiled,
				Passages: coll,
			})
			if err := operation.NewRunner(zerolog.Ctx(ctx), root.Async).Run(ctx, op); err != nil {
				return errors.Errorf("searching: %w", err)
			}
			result := op.Result

			if result.Empty {
				root.Console.Warning("Empty pattern, nothing to search")
				return nil
			}

			if html {
				root.Console.Raw(htmlResults(result.Rows))
				root.UserLogger.LogSearchSummary(result.PassagesMatched)
				return nil
			}

			root.Console.StartQuery(ctx, log.QueryOperation{
				Pattern: compiled.String(),
				Sources: cfg.Sources,
			})
			for _, row := range result.Rows {
				preview, err := terminalPreview(compiled, row.Passage.Text)
				if err != nil {
					return errors.Errorf("rendering passage %q: %w", row.PassageName, err)
				}

				name := row.PassageName
				if cfg.Query.IncludeNames {
					if name, err = terminalPreview(compiled, name); err != nil {
						return errors.Errorf("rendering passage %q: %w", row.PassageName, err)
					}
				}

				root.Console.LogPassageResult(ctx, log.PassageResult{
					Number:  row.Number,
					Name:    name,
					Source:  row.Source,
					Matches: row.NumMatches,
					Preview: preview,
				})
			}
			root.Console.EndQuery(ctx)

			root.UserLogger.LogSearchSummary(result.PassagesMatched)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&html, "html", false, "print the results as highlighted html")

	return cmd
}

func searchArgs(root *opts.RootOpts, args []string) (*string, []string, error) {
	if len(args) == 0 {
		if root.ConfigFile == "" {
			return nil, nil, errors.Errorf("search needs a pattern and at least one source, or --config")
		}
		return nil, nil, nil
	}
	if len(args) == 1 && root.ConfigFile == "" {
		return nil, nil, errors.Errorf("search needs at least one source after the pattern")
	}
	return &args[0], args[1:], nil
}
