package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/viant/wordrank/schedule"
)

func newWordCmd(a *app) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "word",
		Short: "Show the secret word and game number of a date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			day, err := parseDay(date)
			if err != nil {
				return err
			}
			sched, err := a.loadSchedule()
			if err != nil {
				return err
			}
			word, err := sched.WordFor(day)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t#%d\t%s\n", schedule.FormatDate(day), sched.GameNumber(day), word)
			return nil
		},
	}
	cmd.Flags().StringVarP(&date, "date", "d", "", "game date, YYYY-MM-DD (default today)")
	return cmd
}
