package seed

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/dualseed/domain"
	"github.com/fastygo/dualseed/internal/config"
	"github.com/fastygo/dualseed/repository"
	"github.com/fastygo/dualseed/usecase/dualwrite"
	"github.com/fastygo/dualseed/usecase/generate"
)

// Report summarizes a finished run.
type Report struct {
	dualwrite.Result
	Duration time.Duration
}

// Pipeline runs one seeding pass over stores that are already connected.
type Pipeline struct {
	schema  repository.SchemaBootstrapper
	writer  *dualwrite.Writer
	factory *generate.Factory
	counts  config.SeedConfig
	logger  *zap.Logger
}

func NewPipeline(
	schema repository.SchemaBootstrapper,
	writer *dualwrite.Writer,
	factory *generate.Factory,
	counts config.SeedConfig,
	logger *zap.Logger,
) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		schema:  schema,
		writer:  writer,
		factory: factory,
		counts:  counts,
		logger:  logger,
	}
}

// Run ensures the relational schema, clears relational data, generates every
// entity in memory and then writes them to both stores. The first failure
// stops the run.
func (p *Pipeline) Run(ctx context.Context) (Report, error) {
	started := time.Now()
	var report Report

	if err := p.schema.EnsureSchema(ctx); err != nil {
		return report, domain.WrapError(domain.ErrCodeSchema, "ensure schema", err)
	}
	if err := p.writer.Clean(ctx); err != nil {
		return report, err
	}

	customers, err := generate.Bulk(ctx, domain.KindCustomer, p.counts.Customers, p.counts.Concurrency, p.factory.Customer, p.logger)
	if err != nil {
		return report, err
	}
	products, err := generate.Bulk(ctx, domain.KindProduct, p.counts.Products, p.counts.Concurrency, p.factory.Product, p.logger)
	if err != nil {
		return report, err
	}
	sales, err := generate.Bulk(ctx, domain.KindSale, p.counts.Sales, p.counts.Concurrency,
		func(ctx context.Context) (domain.Sale, error) {
			return p.factory.Sale(ctx, customers, products)
		}, p.logger)
	if err != nil {
		return report, err
	}

	report.Result, err = p.writer.WriteAll(ctx, customers, products, sales)
	report.Duration = time.Since(started)
	return report, err
}
