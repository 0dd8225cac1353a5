package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"news-crawler/pkg/domain"
	"news-crawler/pkg/parser"
	"news-crawler/pkg/scheduler"
)

func newScheduleCommand() *cobra.Command {
	var runNow bool

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Crawl the configured sources on cron schedules",
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

			var sources []domain.Source
			if cfg.Scheduler.SourcesFile != "" {
				if sources, err = parser.ParseSourcesFile(cfg.Scheduler.SourcesFile); err != nil {
					return err
				}
			}

			var opts []scheduler.Option
			if d.delivery != nil {
				opts = append(opts, scheduler.WithDelivery(d.delivery, cfg.Sink.ClientID))
			}
			s, err := scheduler.New(cfg.Scheduler.Specs, sources, d.crawler, d.log, opts...)
			if err != nil {
				return err
			}

			if runNow {
				s.RunOnce(ctx)
			}
			s.Start()
			d.log.Info("Waiting for schedule", "next", s.Next())

			<-ctx.Done()
			<-s.Stop().Done()
			last, at := s.Last()
			d.log.Info("Scheduler stopped", "last_run", at, "last_articles", len(last.Articles), "last_errors", len(last.Errors))
			return nil
		},
	}

	cmd.Flags().BoolVar(&runNow, "run-now", false, "run one crawl immediately before waiting")
	return cmd
}
