package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/viant/wordrank/embedding"
	"github.com/viant/wordrank/engine"
	"github.com/viant/wordrank/vector"
)

func newExtractCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Cache the vectors a vocabulary needs in SQLite",
		Long: `Scan the text vector file once and store the vectors of the vocabulary
and daily words in a SQLite database. Point --vectors at the database
afterwards to skip the full scan.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if isVectorCache(a.cfg.Vectors) {
				return fmt.Errorf("--vectors %s is already a vector cache", a.cfg.Vectors)
			}
			sched, err := a.loadSchedule()
			if err != nil {
				return err
			}
			vocabulary, err := a.vocabularyWords()
			if err != nil {
				return err
			}
			words := append(append([]string{}, vocabulary...), sched.Words...)
			vectors, err := embedding.NewTextSource(a.cfg.Vectors, a.logger).Lookup(ctx, words)
			if err != nil {
				return err
			}

			db, err := engine.Open(out)
			if err != nil {
				return err
			}
			defer db.Close()
			store, err := vector.NewSQLiteStore(ctx, db)
			if err != nil {
				return err
			}
			n, err := store.Put(ctx, vectors)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "stored %d vectors in %s\n", n, out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "models/vectors.db", "SQLite vector cache to write")
	return cmd
}
