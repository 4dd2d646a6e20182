package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/viant/wordrank/archive"
	"github.com/viant/wordrank/rank"
	"github.com/viant/wordrank/schedule"
)

var (
	errSaveNeedsDate = errors.New("--save requires --date")
	errSaveTop       = errors.New("--save stores full rankings and cannot be combined with --top")
	errSaveWord      = errors.New("--save only stores the scheduled word of --date")
)

func newRankCmd(a *app) *cobra.Command {
	var date string
	var top int
	var save bool
	cmd := &cobra.Command{
		Use:   "rank [word]",
		Short: "Rank the vocabulary against one word",
		Long: `Rank the vocabulary against a word and print the ranking as JSON.
Without a word the secret word of --date is used. With --save the full
ranking of the scheduled word of --date is stored in the archive instead of
printed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var word string
			if len(args) == 1 {
				word = args[0]
			}
			if save && date == "" {
				return errSaveNeedsDate
			}
			if save && top > 0 {
				return errSaveTop
			}
			var day time.Time
			var sched *schedule.Schedule
			if date != "" || word == "" {
				var err error
				if day, err = parseDay(date); err != nil {
					return err
				}
				if sched, err = a.loadSchedule(); err != nil {
					return err
				}
				scheduled, err := sched.WordFor(day)
				if err != nil && (word == "" || save) {
					return err
				}
				switch {
				case word == "":
					word = scheduled
				case save && word != scheduled:
					return fmt.Errorf("%w: %s plays %q, not %q", errSaveWord, schedule.FormatDate(day), scheduled, word)
				}
			}

			vocabulary, err := a.vocabularyWords()
			if err != nil {
				return err
			}
			res, err := a.resources(ctx, vocabulary, []string{word})
			if err != nil {
				return err
			}
			var entries []rank.Entry
			if top > 0 {
				entries, err = rank.Nearest(word, res, top)
			} else {
				entries, err = rank.Rank(word, res)
			}
			if err != nil {
				return err
			}

			if save {
				store, err := a.openStore(ctx, sched)
				if err != nil {
					return err
				}
				defer store.Close()
				rec := &archive.Record{GameDate: day, SecretWord: word, Ranking: entries, CreatedAt: time.Now()}
				if err := store.Upsert(ctx, rec); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "stored %s: %s (%d words)\n", schedule.FormatDate(day), word, len(entries))
				return nil
			}
			data, err := archive.EncodeRanking(entries)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&date, "date", "d", "", "game date, YYYY-MM-DD (default today)")
	cmd.Flags().IntVarP(&top, "top", "n", 0, "only the n most similar words")
	cmd.Flags().BoolVar(&save, "save", false, "store the ranking in the archive")
	return cmd
}
