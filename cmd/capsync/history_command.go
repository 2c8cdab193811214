package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"capsync/internal/store"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect and manage recorded runs",
	}

	historyCmd.AddCommand(newHistoryListCommand(ctx))
	historyCmd.AddCommand(newHistoryShowCommand(ctx))
	historyCmd.AddCommand(newHistoryPruneCommand(ctx))
	historyCmd.AddCommand(newHistoryClearCommand(ctx))

	return historyCmd
}

func (c *commandContext) withStore(fn func(*store.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	db, err := store.Open(cfg)
	if err != nil {
		return fmt.Errorf("open run history: %w", err)
	}
	defer db.Close()
	return fn(db)
}

func newHistoryListCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(db *store.Store) error {
				runs, err := db.ListRuns(cmd.Context(), limit)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(runs) == 0 {
					fmt.Fprintln(out, "No runs recorded")
					return nil
				}
				rows := make([][]string, 0, len(runs))
				for _, run := range runs {
					rows = append(rows, []string{
						shortID(run.ID),
						run.CreatedAt.Local().Format("2006-01-02 15:04:05"),
						run.InputPath,
						run.Mode,
						formatCount(run.WordCount),
						formatCount(run.ChunkCount),
						yesNo(run.Repaired),
						driftSummary(run),
					})
				}
				table := renderTable(
					[]string{"ID", "Created", "Input", "Mode", "Words", "Segments", "Repaired", "Drift"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft, alignLeft},
				)
				fmt.Fprint(out, table)
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to list")
	return cmd
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	var (
		jsonOut    bool
		outputPath string
	)

	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show one recorded run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(db *store.Store) error {
				run, err := findRun(cmd, db, args[0])
				if err != nil {
					return err
				}
				if run == nil {
					return fmt.Errorf("run %s not found", args[0])
				}

				if outputPath != "" {
					if err := writeOutputFile(outputPath, []byte(run.OutputJSON)); err != nil {
						return err
					}
				}
				if jsonOut {
					fmt.Fprint(cmd.OutOrStdout(), run.OutputJSON)
					return nil
				}

				rows := [][]string{
					{"ID", run.ID},
					{"Created", run.CreatedAt.Local().Format(time.RFC1123)},
					{"Input", run.InputPath},
					{"Language", run.Language},
					{"Mode", run.Mode},
					{"Words", formatCount(run.WordCount)},
					{"Segments", formatCount(run.ChunkCount)},
					{"Repaired", yesNo(run.Repaired)},
					{"Drift", driftSummary(run)},
				}
				table := renderTable([]string{"Field", "Value"}, rows, []columnAlignment{alignLeft, alignLeft})
				fmt.Fprintln(cmd.OutOrStdout(), table)
				if outputPath != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "Wrote run output to %s\n", outputPath)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the stored run output as JSON")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the stored run output to this path")
	return cmd
}

func newHistoryPruneCommand(ctx *commandContext) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete runs older than the retention window",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			retention := days
			if retention <= 0 {
				retention = cfg.Store.RetentionDays
			}
			if retention <= 0 {
				return fmt.Errorf("retention window is not set; pass --days")
			}
			return ctx.withStore(func(db *store.Store) error {
				cutoff := time.Now().UTC().AddDate(0, 0, -retention)
				removed, err := db.Prune(cmd.Context(), cutoff)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d runs older than %d days\n", removed, retention)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "Retention window in days (default: configured retention)")
	return cmd
}

func newHistoryClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(db *store.Store) error {
				removed, err := db.Clear(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d runs\n", removed)
				return nil
			})
		},
	}
}

// findRun resolves an exact run id or a unique id prefix, matching the
// shortened ids shown by list.
func findRun(cmd *cobra.Command, db *store.Store, id string) (*store.Run, error) {
	run, err := db.GetRun(cmd.Context(), id)
	if err != nil || run != nil {
		return run, err
	}
	runs, err := db.ListRuns(cmd.Context(), 0)
	if err != nil {
		return nil, err
	}
	var match *store.Run
	for _, candidate := range runs {
		if strings.HasPrefix(candidate.ID, id) {
			if match != nil {
				return nil, fmt.Errorf("run id %s is ambiguous", id)
			}
			match = candidate
		}
	}
	return match, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func driftSummary(run *store.Run) string {
	if run.DriftPattern == "" {
		return "-"
	}
	summary := fmt.Sprintf("%s/%s", run.DriftPattern, run.DriftSeverity)
	if run.DriftCorrected {
		summary += " (corrected)"
	}
	return summary
}
