package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/viant/wordrank/wordlist"
)

var errCheckFailed = errors.New("word list check failed")

func newCheckCmd(a *app) *cobra.Command {
	var withVectors bool
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Cross-check the daily words against the vocabulary",
		Long: `Report daily words listed more than once and daily words absent from
the vocabulary, ignoring case. With --with-vectors the vector source is
scanned as well and words without a vector are listed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sched, err := a.loadSchedule()
			if err != nil {
				return err
			}
			vocabulary, err := a.vocabularyWords()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			report := wordlist.Check(sched.Words, vocabulary)
			fmt.Fprintf(out, "daily words: %d, vocabulary: %d\n", len(sched.Words), len(vocabulary))
			if len(report.Duplicates) > 0 {
				fmt.Fprintf(out, "duplicates (%d): %s\n", len(report.Duplicates), strings.Join(report.Duplicates, ", "))
			}
			if len(report.Missing) > 0 {
				fmt.Fprintf(out, "not in vocabulary (%d): %s\n", len(report.Missing), strings.Join(report.Missing, ", "))
			}
			ok := report.OK()
			if withVectors {
				res, err := a.resources(cmd.Context(), vocabulary, sched.Words)
				if err != nil {
					return err
				}
				if len(res.Missing) > 0 {
					ok = false
					fmt.Fprintf(out, "without vectors (%d): %s\n", len(res.Missing), strings.Join(res.Missing, ", "))
				}
			}
			if !ok {
				return errCheckFailed
			}
			fmt.Fprintln(out, "ok")
			return nil
		},
	}
	cmd.Flags().BoolVar(&withVectors, "with-vectors", false, "also report words without a vector")
	return cmd
}
