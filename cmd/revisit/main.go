package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"revisit/internal/bootstrap"
	reviewdto "revisit/internal/modules/review/dto"
	"revisit/internal/platform/config"
	"revisit/internal/platform/logging"
)

type rootOptions struct {
	dataDir  string
	logLevel string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "revisit",
		Short:         "Spaced-repetition review tracker for LeetCode problems",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.dataDir, "data-dir", defaultDataDir(), "directory holding revisit.db and revisit.yaml")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override log level: debug|info|warn|error")

	root.AddCommand(newTUICmd(opts))
	root.AddCommand(newSyncCmd(opts))
	root.AddCommand(newProblemsCmd(opts))
	root.AddCommand(newProblemCmd(opts))
	root.AddCommand(newTrackCmd(opts))
	root.AddCommand(newSeedCmd(opts))
	root.AddCommand(newScheduleCmd(opts))
	return root
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".revisit"
	}
	return filepath.Join(home, ".revisit")
}

func loadApp(opts *rootOptions) (*bootstrap.App, error) {
	cfg, err := config.New(opts.dataDir)
	if err != nil {
		return nil, err
	}
	level := cfg.LogLevel
	if opts.logLevel != "" {
		level = opts.logLevel
	}
	return bootstrap.New(cfg, logging.New(os.Stderr, level, cfg.LogFormat))
}

func newTUICmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the review board terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(opts)
			if err != nil {
				return err
			}
			defer app.Close()
			return bootstrap.RunTUI(app)
		},
	}
}

func newSyncCmd(opts *rootOptions) *cobra.Command {
	var slug string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Reconcile accepted submissions into review records",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(opts)
			if err != nil {
				return err
			}
			defer app.Close()

			out := app.ReviewCLI.Sync(context.Background(), strings.TrimSpace(slug))
			if asJSON {
				if err := writeJSON(cmd.OutOrStdout(), out); err != nil {
					return err
				}
			} else {
				printSync(cmd.OutOrStdout(), out)
			}
			if !out.Success {
				return fmt.Errorf("%s", out.Error)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&slug, "slug", "", "only reconcile this problem's submissions")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	return cmd
}

func printSync(w io.Writer, out reviewdto.SyncOutput) {
	if !out.Success {
		_, _ = fmt.Fprintf(w, "sync failed: %s\n", out.Error)
		return
	}
	for _, c := range out.Changes {
		if c.Kind == "create" {
			_, _ = fmt.Fprintf(w, "tracked\t%s\tlevel %d\n", c.Slug, c.ToLevel)
			continue
		}
		_, _ = fmt.Fprintf(w, "advanced\t%s\tlevel %d -> %d\n", c.Slug, c.FromLevel, c.ToLevel)
	}
	for _, slug := range out.Unresolved {
		_, _ = fmt.Fprintf(w, "unresolved\t%s\n", slug)
	}
	_, _ = fmt.Fprintf(w, "%d new, %d advanced\n", out.Created, out.Advanced)
}

func newProblemsCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "problems",
		Short: "Show tracked problems grouped by review status",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(opts)
			if err != nil {
				return err
			}
			defer app.Close()

			board, err := app.ReviewCLI.Board(context.Background())
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), board)
			}
			w := cmd.OutOrStdout()
			printBucket(w, "Review due", board.ReviewDue)
			printBucket(w, "Scheduled", board.ReviewScheduled)
			printBucket(w, "Mastered", board.Mastered)
			printBucket(w, "Not tracking", board.NotTracking)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the board as JSON")
	return cmd
}

func printBucket(w io.Writer, label string, entries []reviewdto.EntryOutput) {
	_, _ = fmt.Fprintf(w, "%s (%d)\n", label, len(entries))
	for _, e := range entries {
		_, _ = fmt.Fprintf(w, "  %s\t%s\tlevel %d/%d\tsolved %s\t%s\n",
			e.Slug, e.Difficulty, e.Level, e.MaxLevel, e.LastSubmitted, e.NextReviewIn)
	}
}

func newProblemCmd(opts *rootOptions) *cobra.Command {
	problem := &cobra.Command{Use: "problem", Short: "Problem catalog queries"}

	problem.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List known problems",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(opts)
			if err != nil {
				return err
			}
			defer app.Close()

			problems, err := app.ProblemCLI.List(context.Background())
			if err != nil {
				return err
			}
			if len(problems) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no problems")
				return nil
			}
			for _, p := range problems {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n", p.QuestionID, p.Slug, p.Difficulty, p.Title)
			}
			return nil
		},
	})

	problem.AddCommand(&cobra.Command{
		Use:   "show <slug>",
		Short: "Show problem details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(opts)
			if err != nil {
				return err
			}
			defer app.Close()

			p, err := app.ProblemCLI.Show(context.Background(), args[0])
			if err != nil {
				return err
			}
			tags := make([]string, 0, len(p.Tags))
			for _, t := range p.Tags {
				tags = append(tags, t.Name)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "id: %s\ntitle: %s\nslug: %s\ndifficulty: %s\ntags: %s\nurl: %s\n",
				p.QuestionID, p.Title, p.Slug, p.Difficulty, strings.Join(tags, ", "), p.URL)
			return nil
		},
	})
	return problem
}

func newTrackCmd(opts *rootOptions) *cobra.Command {
	track := &cobra.Command{Use: "track", Short: "Change how a problem is tracked"}

	type action func(app *bootstrap.App, slug string) (reviewdto.EntryOutput, error)
	add := func(use, short string, run action) {
		track.AddCommand(&cobra.Command{
			Use:   use + " <slug>",
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				app, err := loadApp(opts)
				if err != nil {
					return err
				}
				defer app.Close()

				e, err := run(app, args[0])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\tlevel %d\ttracking=%t\tnext %s\n",
					e.Slug, e.Status, e.Level, e.Tracking, e.NextReviewIn)
				return nil
			},
		})
	}
	add("cancel", "Stop tracking a problem", func(app *bootstrap.App, slug string) (reviewdto.EntryOutput, error) {
		return app.ReviewCLI.Cancel(context.Background(), slug)
	})
	add("resume", "Resume tracking a problem", func(app *bootstrap.App, slug string) (reviewdto.EntryOutput, error) {
		return app.ReviewCLI.Resume(context.Background(), slug)
	})
	add("reset", "Reset a problem's proficiency to zero", func(app *bootstrap.App, slug string) (reviewdto.EntryOutput, error) {
		return app.ReviewCLI.Reset(context.Background(), slug)
	})
	return track
}

func newSeedCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed <file>",
		Short: "Replace all problems and records with a seed file (YAML or JSON)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(opts)
			if err != nil {
				return err
			}
			defer app.Close()

			out, err := app.ReviewCLI.Seed(context.Background(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "seeded %d problems\n", out.Problems)
			return nil
		},
	}
}

func newScheduleCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Print the review schedule",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(opts)
			if err != nil {
				return err
			}
			defer app.Close()

			for _, step := range app.ReviewCLI.Schedule(context.Background()) {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "level %d\t+%s\n", step.Level, step.Delay)
			}
			return nil
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
