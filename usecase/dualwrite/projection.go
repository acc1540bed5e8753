package dualwrite

import (
	"github.com/google/uuid"

	"github.com/fastygo/dualseed/domain"
	"github.com/fastygo/dualseed/repository/postgres"
)

// Relational column sets, in insert order.
var (
	CustomerColumns    = []string{"_id", "_tz", "name", "doc_number"}
	ProductColumns     = []string{"_id", "_tz", "name", "description", "unit_price"}
	SaleColumns        = []string{"_id", "_tz", "customer_id", "created_at", "canceled_at", "status"}
	SaleProductColumns = []string{"_id", "sale_id", "product_id", "index", "quantity"}
)

// cleanOrder deletes children before parents.
var cleanOrder = []string{
	domain.KindSaleProduct,
	domain.KindSale,
	domain.KindCustomer,
	domain.KindProduct,
}

func customerRow(c domain.Customer) []any {
	return []any{c.ID, c.Timestamp, c.Name, c.DocNumber}
}

func productRow(p domain.Product) []any {
	return []any{p.ID, p.Timestamp, p.Name, p.Description, p.UnitPrice.InexactFloat64()}
}

func saleRow(s domain.Sale) []any {
	return []any{s.ID, s.Timestamp, s.CustomerID, s.CreatedAt, postgres.NullTime(s.CanceledAt), string(s.Status)}
}

func saleProductRow(sp domain.SaleProduct) []any {
	return []any{sp.ID, sp.SaleID, sp.ProductID, sp.Index, sp.Quantity}
}

// flattenSales splits sales into the flat sale rows and one SaleProduct per
// line item, each with a fresh id and its position within the sale.
func flattenSales(sales []domain.Sale) ([][]any, []domain.SaleProduct) {
	rows := make([][]any, 0, len(sales))
	var saleProducts []domain.SaleProduct
	for _, sale := range sales {
		rows = append(rows, saleRow(sale))
		for index, item := range sale.Items {
			saleProducts = append(saleProducts, domain.SaleProduct{
				ID:        uuid.NewString(),
				SaleID:    sale.ID,
				ProductID: item.ProductID,
				Index:     index,
				Quantity:  item.Quantity,
			})
		}
	}
	return rows, saleProducts
}

func rowsOf[T any](items []T, project func(T) []any) [][]any {
	rows := make([][]any, len(items))
	for i, item := range items {
		rows[i] = project(item)
	}
	return rows
}

func docsOf[T any](items []T) []any {
	docs := make([]any, len(items))
	for i, item := range items {
		docs[i] = item
	}
	return docs
}
