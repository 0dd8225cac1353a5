package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"news-crawler/pkg/domain"
	"news-crawler/pkg/parser"
	"news-crawler/pkg/scheduler"
)

type crawlOptions struct {
	industry    string
	save        bool
	clientID    string
	sourcesFile string
	json        bool
}

func newCrawlCommand() *cobra.Command {
	var opts crawlOptions

	cmd := &cobra.Command{
		Use:   "crawl [url...]",
		Short: "Crawl one or more sites and print the articles found",
		Long: `Crawl runs the feed, sitemap and page strategies against each URL.
Without arguments the sources file is used, or the built-in source list when
no file is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			d, err := newDeps(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer d.close()

			sources, err := crawlSources(args, opts)
			if err != nil {
				return err
			}

			result := d.crawler.CrawlMany(cmd.Context(), sources)
			for _, e := range result.Errors {
				d.log.Warn("Source failed", "url", e.URL, "error", e.Error)
			}

			if opts.save {
				if d.delivery == nil {
					return fmt.Errorf("--save needs a sink; sink.type is %q", cfg.Sink.Type)
				}
				clientID := opts.clientID
				if clientID == "" {
					clientID = cfg.Sink.ClientID
				}
				stats := d.delivery.Deliver(cmd.Context(), result.Articles, clientID)
				d.log.Info("Saved articles", "saved", stats.Saved, "failed", stats.Failed)
			}

			if opts.json {
				return writeJSONLines(cmd.OutOrStdout(), result.Articles)
			}
			writeTable(cmd.OutOrStdout(), result.Articles)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.industry, "industry", "", "industry for URL arguments (default general)")
	flags.BoolVar(&opts.save, "save", false, "deliver articles to the configured sink")
	flags.StringVar(&opts.clientID, "client-id", "", "client id sent with saved articles (default sink.client_id)")
	flags.StringVar(&opts.sourcesFile, "sources-file", "", "text or YAML file listing sources")
	flags.BoolVar(&opts.json, "json", false, "print one JSON article per line")
	return cmd
}

func crawlSources(args []string, opts crawlOptions) ([]domain.Source, error) {
	var sources []domain.Source
	for _, arg := range args {
		sources = append(sources, domain.NewSource(arg, "", opts.industry))
	}
	if opts.sourcesFile != "" {
		fromFile, err := parser.ParseSourcesFile(opts.sourcesFile)
		if err != nil {
			return nil, err
		}
		sources = append(sources, fromFile...)
	}
	if len(sources) == 0 {
		sources = scheduler.DefaultSources()
	}
	return sources, nil
}

func writeJSONLines(w io.Writer, articles []domain.Article) error {
	enc := json.NewEncoder(w)
	for _, a := range articles {
		if err := enc.Encode(a); err != nil {
			return fmt.Errorf("failed to write article: %w", err)
		}
	}
	return nil
}

func writeTable(w io.Writer, articles []domain.Article) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Title", "URL", "Industry"})
	for i, a := range articles {
		t.AppendRow(table.Row{i + 1, domain.Truncate(a.Title, 80), a.URL, a.Industry})
	}
	t.AppendFooter(table.Row{"", fmt.Sprintf("%d articles", len(articles))})
	t.Render()
}
