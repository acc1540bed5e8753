package generate

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/fastygo/dualseed/domain"
)

var (
	legalDoc      = regexp.MustCompile(`^\d{2}\.\d{3}\.\d{3}\.\d{4}-\d{2}$`)
	individualDoc = regexp.MustCompile(`^\d{3}\.\d{3}\.\d{3}-\d{2}$`)
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func mustCustomers(t *testing.T, f *Factory, n int) []domain.Customer {
	t.Helper()
	out := make([]domain.Customer, n)
	for i := range out {
		c, err := f.Customer(context.Background())
		require.NoError(t, err)
		out[i] = c
	}
	return out
}

func mustProducts(t *testing.T, f *Factory, n int) []domain.Product {
	t.Helper()
	out := make([]domain.Product, n)
	for i := range out {
		p, err := f.Product(context.Background())
		require.NoError(t, err)
		out[i] = p
	}
	return out
}

func TestCustomerDocNumberMatchesLegalFlag(t *testing.T) {
	f := NewFactory(WithSeed(7))
	seen := map[bool]bool{}

	for _, c := range mustCustomers(t, f, 500) {
		seen[c.LegalEntity] = true
		require.NotEmpty(t, c.ID)
		require.NotEmpty(t, c.Name)

		legal := legalDoc.MatchString(c.DocNumber)
		individual := individualDoc.MatchString(c.DocNumber)
		require.NotEqual(t, legal, individual, "doc number %q must match exactly one pattern", c.DocNumber)
		require.Equal(t, c.LegalEntity, legal, "doc number %q inconsistent with legal flag", c.DocNumber)
	}
	assert.True(t, seen[true] && seen[false], "both variants should be drawn over 500 customers")
}

func TestProductPriceBounds(t *testing.T) {
	f := NewFactory(WithSeed(11))
	lower := decimal.RequireFromString("0.01")
	upper := decimal.RequireFromString("9999.99")

	for _, p := range mustProducts(t, f, 500) {
		require.NotEmpty(t, p.Name)
		require.NotEmpty(t, p.Description)
		require.True(t, p.UnitPrice.GreaterThanOrEqual(lower), "price %s", p.UnitPrice)
		require.True(t, p.UnitPrice.LessThanOrEqual(upper), "price %s", p.UnitPrice)
		require.True(t, p.UnitPrice.Equal(p.UnitPrice.Round(2)), "price %s has more than two decimals", p.UnitPrice)
	}
}

func TestSaleInvariants(t *testing.T) {
	now := time.Now().UTC()
	f := NewFactory(WithSeed(3), WithClock(fixedClock(now)))
	customers := mustCustomers(t, f, 20)
	products := mustProducts(t, f, 30)

	customerIDs := map[string]bool{}
	for _, c := range customers {
		customerIDs[c.ID] = true
	}
	productPos := map[string]int{}
	for i, p := range products {
		productPos[p.ID] = i
	}

	canceled := 0
	statuses := map[domain.SaleStatus]bool{}
	for range 1000 {
		sale, err := f.Sale(context.Background(), customers, products)
		require.NoError(t, err)

		assert.Equal(t, now, sale.Timestamp)
		require.True(t, customerIDs[sale.CustomerID])
		require.False(t, sale.CreatedAt.Before(EpochFloor))
		require.True(t, sale.CreatedAt.Before(now))
		if sale.CanceledAt != nil {
			canceled++
			require.False(t, sale.CanceledAt.Before(sale.CreatedAt))
			require.False(t, sale.CanceledAt.After(now))
		}
		statuses[sale.Status] = true

		require.GreaterOrEqual(t, len(sale.Items), 1)
		require.LessOrEqual(t, len(sale.Items), 10)
		last := -1
		for _, item := range sale.Items {
			pos, ok := productPos[item.ProductID]
			require.True(t, ok, "product %s not in the provided collection", item.ProductID)
			require.Greater(t, pos, last, "items must reference distinct products in collection order")
			last = pos
			require.GreaterOrEqual(t, item.Quantity, 1)
			require.LessOrEqual(t, item.Quantity, 50)
		}
	}

	assert.Len(t, statuses, len(domain.SaleStatuses))
	assert.Greater(t, canceled, 30)
	assert.Less(t, canceled, 200)
}

func TestSaleCapsItemsAtProductCount(t *testing.T) {
	f := NewFactory(WithSeed(5))
	customers := mustCustomers(t, f, 1)
	products := mustProducts(t, f, 2)

	for range 200 {
		sale, err := f.Sale(context.Background(), customers, products)
		require.NoError(t, err)
		require.LessOrEqual(t, len(sale.Items), 2)
		require.Equal(t, customers[0].ID, sale.CustomerID)
	}
}

func TestSaleRequiresCollections(t *testing.T) {
	f := NewFactory()
	products := mustProducts(t, f, 1)
	customers := mustCustomers(t, f, 1)

	_, err := f.Sale(context.Background(), nil, products)
	assert.ErrorIs(t, err, domain.ErrNoCustomers)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeGeneration))

	_, err = f.Sale(context.Background(), customers, nil)
	assert.ErrorIs(t, err, domain.ErrNoProducts)
}

func TestFactoryHonoursCancelledContext(t *testing.T) {
	f := NewFactory()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.Customer(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = f.Product(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFactoryLogsCreatedIDs(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	f := NewFactory(WithLogger(zap.New(core)))

	customers := mustCustomers(t, f, 1)
	products := mustProducts(t, f, 3)
	sale, err := f.Sale(context.Background(), customers, products)
	require.NoError(t, err)

	entries := logs.FilterField(zap.String("kind", domain.KindSale)).All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, sale.ID, fields["id"])
	assert.EqualValues(t, len(sale.Items), fields["items"])
	assert.Equal(t, 1, logs.FilterField(zap.String("id", customers[0].ID)).Len())
}
