package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/viant/wordrank/archive"
	"github.com/viant/wordrank/schedule"
)

func newGenerateCmd(a *app) *cobra.Command {
	var from, to string
	var workers int
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Rank and archive scheduled days",
		Long: `Rank the vocabulary against the secret word of every day in a date
range and store the result. Days already in the store are skipped, so the
command can be re-run safely. Without --from/--to the range covers one pass
over the daily word list starting at the base date.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			sched, err := a.loadSchedule()
			if err != nil {
				return err
			}
			start, end := sched.Cycle()
			if from != "" {
				if start, err = schedule.ParseDate(from); err != nil {
					return err
				}
			}
			if to != "" {
				if end, err = schedule.ParseDate(to); err != nil {
					return err
				}
			}
			if start.IsZero() || end.IsZero() {
				return schedule.ErrNoDailyWords
			}
			if !cmd.Flags().Changed("workers") {
				workers = a.cfg.Workers
			}

			vocabulary, err := a.vocabularyWords()
			if err != nil {
				return err
			}
			res, err := a.resources(ctx, vocabulary, sched.Words)
			if err != nil {
				return err
			}
			store, err := a.openStore(ctx, sched)
			if err != nil {
				return err
			}
			defer store.Close()

			gen := &archive.Generator{
				Store:     store,
				Schedule:  sched,
				Resources: res,
				Workers:   workers,
				Logger:    a.logger,
			}
			summary, err := gen.Generate(ctx, start, end)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "run %s: generated %d, skipped %d, failed %d\n",
				summary.RunID, summary.Generated, summary.Skipped, summary.Failed)
			for _, d := range summary.FailedDates {
				fmt.Fprintf(cmd.OutOrStdout(), "failed: %s\n", schedule.FormatDate(d))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "first date, YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "last date, YYYY-MM-DD")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "days ranked concurrently")
	return cmd
}
