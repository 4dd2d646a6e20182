package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/viant/wordrank/archive"
)

func newImportCmd(a *app) *cobra.Command {
	opts := archive.ImportOptions{}
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Migrate precomputed JSON rankings into the archive store",
		Long: `Import *.json ranking files into the archive store. A file holds either
a bare ranking array or an object with "ranking" and optional "game_date" and
"secret_word" fields. The date falls back to a YYYY-MM-DD in the file name and
the secret word to the schedule.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			sched, err := a.loadSchedule()
			if err != nil {
				return err
			}
			store, err := a.openStore(ctx, sched)
			if err != nil {
				return err
			}
			defer store.Close()
			opts.Schedule = sched
			opts.Logger = a.logger
			summary, err := archive.Import(ctx, store, opts)
			if err != nil {
				return err
			}
			verb := "imported"
			if opts.DryRun {
				verb = "would import"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "files %d: %s %d (added %d, replaced %d), skipped %d, errors %d\n",
				summary.Files, verb, summary.Planned, summary.Added, summary.Replaced, summary.Skipped, summary.Errors)
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.Dir, "dir", "precomputed", "directory with *.json rankings")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "report without writing")
	cmd.Flags().BoolVar(&opts.Replace, "replace", false, "overwrite dates already stored")
	return cmd
}
