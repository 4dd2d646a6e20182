package commands

import (
	"github.com/spf13/cobra"

	"github.com/viant/wordrank/server"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve archived rankings over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			sched, err := a.loadSchedule()
			if err != nil {
				return err
			}
			vocabulary, err := a.vocabularyWords()
			if err != nil {
				return err
			}
			store, err := a.openStore(ctx, sched)
			if err != nil {
				return err
			}
			defer store.Close()
			if !cmd.Flags().Changed("addr") {
				addr = a.cfg.Server.Addr
			}
			srv, err := server.New(server.Options{
				Addr:       addr,
				Store:      store,
				Schedule:   sched,
				Vocabulary: vocabulary,
				CacheSize:  a.cfg.Server.CacheSize,
				CacheTTL:   a.cfg.Server.CacheTTL,
				Logger:     a.logger,
			})
			if err != nil {
				return err
			}
			return srv.ListenAndServe(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}
