package generate

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/fastygo/dualseed/domain"
)

const (
	// legal entities use the long grouping, individuals the short one
	legalDocPattern      = "##.###.###.####-##"
	individualDocPattern = "###.###.###-##"

	minPriceCents = 1
	maxPriceCents = 999_999

	maxItemsPerSale    = 10
	maxQuantityPerItem = 50
	cancelOneIn        = 10
)

// EpochFloor is the earliest business date a sale can be created at.
var EpochFloor = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

// Factory produces single random entities. It is safe for concurrent use.
type Factory struct {
	mu     sync.Mutex
	faker  *gofakeit.Faker
	now    func() time.Time
	logger *zap.Logger
}

type Option func(*Factory)

// WithSeed makes every draw reproducible. Ids stay random.
func WithSeed(seed uint64) Option {
	return func(f *Factory) { f.faker = gofakeit.New(seed) }
}

// WithClock replaces time.Now as the source of creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(f *Factory) {
		if now != nil {
			f.now = now
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(f *Factory) {
		if logger != nil {
			f.logger = logger
		}
	}
}

func NewFactory(opts ...Option) *Factory {
	f := &Factory{
		faker:  gofakeit.New(0),
		now:    time.Now,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Customer returns a customer whose document number matches its
// legal-entity flag.
func (f *Factory) Customer(ctx context.Context) (domain.Customer, error) {
	if err := ctx.Err(); err != nil {
		return domain.Customer{}, err
	}

	f.mu.Lock()
	legal := f.faker.Bool()
	pattern := individualDocPattern
	if legal {
		pattern = legalDocPattern
	}
	customer := domain.Customer{
		ID:          uuid.NewString(),
		Timestamp:   f.now(),
		Name:        f.faker.Company(),
		DocNumber:   f.faker.Numerify(pattern),
		LegalEntity: legal,
	}
	f.mu.Unlock()

	f.logger.Debug("entity created", zap.String("kind", domain.KindCustomer), zap.String("id", customer.ID))
	return customer, nil
}

// Product returns a product priced between 0.01 and 9999.99.
func (f *Factory) Product(ctx context.Context) (domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return domain.Product{}, err
	}

	f.mu.Lock()
	product := domain.Product{
		ID:          uuid.NewString(),
		Timestamp:   f.now(),
		Name:        f.faker.ProductName(),
		Description: f.faker.ProductDescription(),
		UnitPrice:   decimal.New(int64(f.faker.IntRange(minPriceCents, maxPriceCents)), -2),
	}
	f.mu.Unlock()

	f.logger.Debug("entity created", zap.String("kind", domain.KindProduct), zap.String("id", product.ID))
	return product, nil
}

// Sale returns a sale for a random customer with between one and ten
// distinct products drawn from products. Items follow the order of products.
func (f *Factory) Sale(ctx context.Context, customers []domain.Customer, products []domain.Product) (domain.Sale, error) {
	if err := ctx.Err(); err != nil {
		return domain.Sale{}, err
	}
	if len(customers) == 0 {
		return domain.Sale{}, domain.ErrNoCustomers
	}
	if len(products) == 0 {
		return domain.Sale{}, domain.ErrNoProducts
	}

	now := f.now()

	f.mu.Lock()
	customer := customers[f.faker.IntRange(0, len(customers)-1)]
	indexes := f.drawIndexes(len(products))
	createdAt := f.faker.DateRange(EpochFloor, now.Add(-24*time.Hour))
	var canceledAt *time.Time
	if f.faker.IntRange(1, cancelOneIn) == 1 {
		at := f.faker.DateRange(createdAt, now)
		canceledAt = &at
	}
	status := domain.SaleStatuses[f.faker.IntRange(0, len(domain.SaleStatuses)-1)]
	items := make([]domain.LineItem, len(indexes))
	for i, idx := range indexes {
		items[i] = domain.LineItem{
			ProductID: products[idx].ID,
			Quantity:  f.faker.IntRange(1, maxQuantityPerItem),
		}
	}
	f.mu.Unlock()

	sale := domain.Sale{
		ID:         uuid.NewString(),
		Timestamp:  now,
		CustomerID: customer.ID,
		CreatedAt:  createdAt,
		CanceledAt: canceledAt,
		Status:     status,
		Items:      items,
	}

	f.logger.Debug("entity created",
		zap.String("kind", domain.KindSale),
		zap.String("id", sale.ID),
		zap.Int("items", len(sale.Items)))
	return sale, nil
}

// drawIndexes picks a set of distinct indexes below n. The set size is
// uniform in [1, 10], capped at n. Callers must hold f.mu.
func (f *Factory) drawIndexes(n int) []int {
	size := min(f.faker.IntRange(1, maxItemsPerSale), n)
	picked := make(map[int]struct{}, size)
	for len(picked) < size {
		picked[f.faker.IntRange(0, n-1)] = struct{}{}
	}
	indexes := make([]int, 0, size)
	for idx := range picked {
		indexes = append(indexes, idx)
	}
	slices.Sort(indexes)
	return indexes
}
