package generate

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/fastygo/dualseed/domain"
)

// MakeFunc produces one entity.
type MakeFunc[T any] func(ctx context.Context) (T, error)

// Bulk invokes fn count times concurrently, running at most limit
// invocations at once (limit <= 0 means unbounded). The first failure cancels
// the remaining invocations and is returned with no partial result.
func Bulk[T any](ctx context.Context, kind string, count, limit int, fn MakeFunc[T], logger *zap.Logger) ([]T, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if count <= 0 {
		return []T{}, nil
	}

	logger.Info("bulk generation started", zap.String("kind", kind), zap.Int("count", count))

	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	items := make([]T, count)
	for i := range count {
		g.Go(func() error {
			item, err := fn(gctx)
			if err != nil {
				return err
			}
			items[i] = item
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, domain.WrapError(domain.ErrCodeGeneration, fmt.Sprintf("generate %s", kind), err)
	}

	logger.Info("bulk generation finished", zap.String("kind", kind), zap.Int("count", count))
	return items, nil
}
