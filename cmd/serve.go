package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"news-crawler/pkg/api"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			d, err := newDeps(ctx, cfg)
			if err != nil {
				return err
			}
			defer d.close()

			var delivery api.Deliverer
			if d.delivery != nil {
				delivery = d.delivery
			}
			server := api.NewServer(d.crawler, delivery, api.Options{
				DedupBackend:    cfg.Dedup.Backend,
				DefaultClientID: cfg.Sink.ClientID,
			}, d.log)

			return server.Run(ctx, fmt.Sprintf(":%d", cfg.Server.Port))
		},
	}
}
