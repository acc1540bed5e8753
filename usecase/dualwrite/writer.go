package dualwrite

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/fastygo/dualseed/domain"
	"github.com/fastygo/dualseed/pkg/batch"
	"github.com/fastygo/dualseed/repository"
)

// Writer persists generated entities into the relational and the document
// store, chunk by chunk. There is no shared transaction: a failure leaves
// every earlier chunk written in both stores and the failing chunk possibly
// written in only one of them.
type Writer struct {
	relational repository.RelationalStore
	documents  repository.DocumentStore
	batchSize  int
	logger     *zap.Logger
}

// Result counts what a Writer persisted per kind.
type Result struct {
	Customers    int
	Products     int
	Sales        int
	SaleProducts int
}

func NewWriter(relational repository.RelationalStore, documents repository.DocumentStore, batchSize int, logger *zap.Logger) *Writer {
	if batchSize <= 0 {
		batchSize = batch.DefaultSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Writer{
		relational: relational,
		documents:  documents,
		batchSize:  batchSize,
		logger:     logger,
	}
}

// Clean deletes every seeded row from the relational store. The document
// store is left as is, so documents accumulate across runs.
func (w *Writer) Clean(ctx context.Context) error {
	for _, table := range cleanOrder {
		if err := w.relational.DeleteAll(ctx, table); err != nil {
			return domain.WrapError(domain.ErrCodeInsertion, fmt.Sprintf("clean %s", table), err)
		}
	}
	w.logger.Info("relational store cleaned")
	return nil
}

func (w *Writer) InsertCustomers(ctx context.Context, customers []domain.Customer) (int, error) {
	return writeChunks(ctx, w, domain.KindCustomer, CustomerColumns, customers, customerRow)
}

func (w *Writer) InsertProducts(ctx context.Context, products []domain.Product) (int, error) {
	return writeChunks(ctx, w, domain.KindProduct, ProductColumns, products, productRow)
}

// InsertSales writes each chunk of sales as flat rows to the relational store
// and as full documents, line items embedded, to the document store. The
// derived sale_product rows of the chunk follow in nested chunks.
func (w *Writer) InsertSales(ctx context.Context, sales []domain.Sale) (sold int, saleProducts int, err error) {
	for _, chunk := range batch.Chunk(sales, w.batchSize) {
		rows, derived := flattenSales(chunk)

		if err := w.relational.InsertRows(ctx, domain.KindSale, SaleColumns, rows); err != nil {
			return sold, saleProducts, insertErr(domain.KindSale, "relational", err)
		}
		if err := w.documents.InsertMany(ctx, domain.KindSale, docsOf(chunk)); err != nil {
			return sold, saleProducts, insertErr(domain.KindSale, "document", err)
		}
		sold += len(chunk)

		n, err := writeChunks(ctx, w, domain.KindSaleProduct, SaleProductColumns, derived, saleProductRow)
		saleProducts += n
		if err != nil {
			return sold, saleProducts, err
		}
	}

	w.logger.Info("bulk insert finished", zap.String("kind", domain.KindSale), zap.Int("count", sold))
	return sold, saleProducts, nil
}

// WriteAll inserts customers, products and sales in foreign-key order.
func (w *Writer) WriteAll(ctx context.Context, customers []domain.Customer, products []domain.Product, sales []domain.Sale) (Result, error) {
	var (
		res Result
		err error
	)
	if res.Customers, err = w.InsertCustomers(ctx, customers); err != nil {
		return res, err
	}
	if res.Products, err = w.InsertProducts(ctx, products); err != nil {
		return res, err
	}
	res.Sales, res.SaleProducts, err = w.InsertSales(ctx, sales)
	return res, err
}

// writeChunks writes items chunk by chunk, relational first. Both writes of
// a chunk complete before the next chunk starts.
func writeChunks[T any](ctx context.Context, w *Writer, kind string, columns []string, items []T, project func(T) []any) (int, error) {
	written := 0
	for _, chunk := range batch.Chunk(items, w.batchSize) {
		if err := w.relational.InsertRows(ctx, kind, columns, rowsOf(chunk, project)); err != nil {
			return written, insertErr(kind, "relational", err)
		}
		if err := w.documents.InsertMany(ctx, kind, docsOf(chunk)); err != nil {
			return written, insertErr(kind, "document", err)
		}
		written += len(chunk)
		w.logger.Debug("chunk written", zap.String("kind", kind), zap.Int("count", len(chunk)))
	}

	if kind != domain.KindSaleProduct {
		w.logger.Info("bulk insert finished", zap.String("kind", kind), zap.Int("count", written))
	}
	return written, nil
}

func insertErr(kind, store string, err error) error {
	return domain.WrapError(domain.ErrCodeInsertion, fmt.Sprintf("insert %s into %s store", kind, store), err)
}
