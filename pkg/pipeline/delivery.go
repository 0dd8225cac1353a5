package pipeline

import (
	"context"

	"news-crawler/pkg/domain"
	"news-crawler/pkg/logger"
	"news-crawler/pkg/worker"
)

// ContentProcessor enriches an article in place before it is saved
type ContentProcessor interface {
	Enrich(ctx context.Context, article *domain.Article) error
}

// ContentSaver saves an Article to a storage backend
type ContentSaver interface {
	SaveArticle(ctx context.Context, article domain.Article, clientID string) error
}

// DeliveryStats counts articles per outcome
type DeliveryStats struct {
	Saved  int `json:"saved"`
	Failed int `json:"failed"`
}

// Delivery hands crawled articles to a saver over a worker pool
type Delivery struct {
	workers   *worker.Manager
	processor ContentProcessor
	saver     ContentSaver
	log       logger.Interface
}

// NewDelivery creates a delivery. processor may be nil.
func NewDelivery(workers *worker.Manager, processor ContentProcessor, saver ContentSaver, log logger.Interface) *Delivery {
	if log == nil {
		log = logger.NewNop()
	}
	return &Delivery{
		workers:   workers,
		processor: processor,
		saver:     saver,
		log:       log,
	}
}

// Deliver enriches and saves every article. An enrichment failure is logged
// and the article is saved as is; a save failure counts as failed.
func (d *Delivery) Deliver(ctx context.Context, articles []domain.Article, clientID string) DeliveryStats {
	summary := d.workers.Process(ctx, len(articles), func(ctx context.Context, i int) error {
		article := articles[i]
		if d.processor != nil {
			if err := d.processor.Enrich(ctx, &article); err != nil {
				d.log.Warn("enrichment failed", "url", article.URL, "error", err)
			}
		}
		if err := d.saver.SaveArticle(ctx, article, clientID); err != nil {
			d.log.Error("save failed", "url", article.URL, "error", err)
			return err
		}
		return nil
	})

	stats := DeliveryStats{Saved: summary.Succeeded, Failed: summary.Failed}
	d.log.Info("delivery complete", "saved", stats.Saved, "failed", stats.Failed, "client_id", clientID)
	return stats
}
