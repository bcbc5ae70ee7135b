package documents

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/schema"

	"github.com/wayfarer-core-poc/server/internal/planner/collectors"
	logx "github.com/wayfarer-core-poc/server/pkg/logger"
)

// MetaSource is the document metadata key naming the collector that produced it.
const MetaSource = "source"

// Aggregator gathers reference documents from every collector in order.
type Aggregator struct {
	collectors []collectors.Collector
}

func NewAggregator(cs ...collectors.Collector) *Aggregator {
	return &Aggregator{collectors: cs}
}

// Collect concatenates the documents of each collector in collector order. limit bounds each
// collector separately. A failing collector is logged and contributes nothing; the others still
// run.
func (a *Aggregator) Collect(ctx context.Context, destination, interests string, limit int) []*schema.Document {
	var docs []*schema.Document
	for _, c := range a.collectors {
		texts, err := collectOne(ctx, c, destination, interests, limit)
		if err != nil {
			logx.Warn().
				Err(err).
				Str("collector", c.Name()).
				Str("destination", destination).
				Msg("Collector failed, continuing without it")
			continue
		}
		for _, text := range texts {
			docs = append(docs, &schema.Document{
				Content:  text,
				MetaData: map[string]any{MetaSource: c.Name()},
			})
		}
		logx.Debug().Str("collector", c.Name()).Int("documents", len(texts)).Msg("Collected documents")
	}
	return docs
}

func collectOne(ctx context.Context, c collectors.Collector, destination, interests string, limit int) (texts []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("collector %s panicked: %v", c.Name(), r)
		}
	}()
	return c.Collect(ctx, destination, interests, limit)
}
