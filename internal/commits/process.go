package commits

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Processor runs the classify and enrich passes over a commit set.
type Processor struct {
	classifier *Classifier
	enricher   *Enricher
	// maxParallel bounds concurrent per-commit work; 1 runs sequentially.
	maxParallel int
}

// ProcessorOption configures a Processor.
type ProcessorOption func(*Processor)

// WithMaxParallel sets the maximum number of commits processed concurrently.
func WithMaxParallel(n int) ProcessorOption {
	return func(p *Processor) {
		if n > 0 {
			p.maxParallel = n
		}
	}
}

// NewProcessor creates a processor. By default work is spread over GOMAXPROCS workers.
func NewProcessor(classifier *Classifier, enricher *Enricher, opts ...ProcessorOption) *Processor {
	p := &Processor{
		classifier:  classifier,
		enricher:    enricher,
		maxParallel: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process classifies and enriches every commit. Both passes are pure per
// commit and run concurrently; results are written by index so the output
// keeps the input order, which grouping relies on as its tie-break baseline.
// The only error is context cancellation.
func (p *Processor) Process(ctx context.Context, raws []RawCommit) ([]EnrichedCommit, error) {
	out := make([]EnrichedCommit, len(raws))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.maxParallel)

	for i := range raws {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = EnrichedCommit{
				ClassifiedCommit: p.classifier.Classify(raws[i]),
				Presentation:     p.enricher.Enrich(raws[i]),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	logDebug("[process] %d commits classified and enriched", len(out))
	return out, nil
}
