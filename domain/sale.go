package domain

import "time"

type SaleStatus string

const (
	SaleStatusBudget    SaleStatus = "budget"
	SaleStatusSold      SaleStatus = "sold"
	SaleStatusDelivered SaleStatus = "delivered"
)

// SaleStatuses lists every valid status in draw order.
var SaleStatuses = []SaleStatus{SaleStatusBudget, SaleStatusSold, SaleStatusDelivered}

// LineItem is a quantity of one product embedded in a Sale.
type LineItem struct {
	ProductID string `json:"product_id" bson:"product_id"`
	Quantity  int    `json:"quantity" bson:"quantity"`
}

// Sale references one customer and carries its line items embedded.
// CanceledAt is nil for sales that were never canceled and is stored as null.
type Sale struct {
	ID         string     `json:"_id" bson:"_id"`
	Timestamp  time.Time  `json:"_tz" bson:"_tz"`
	CustomerID string     `json:"customer_id" bson:"customer_id"`
	CreatedAt  time.Time  `json:"created_at" bson:"created_at"`
	CanceledAt *time.Time `json:"canceled_at" bson:"canceled_at"`
	Status     SaleStatus `json:"status" bson:"status"`
	Items      []LineItem `json:"_items" bson:"_items"`
}

func (s *Sale) IsCanceled() bool {
	return s != nil && s.CanceledAt != nil
}

// SaleProduct is the normalized form of a line item. Index is the item's
// zero-based position within its sale.
type SaleProduct struct {
	ID        string `json:"_id" bson:"_id"`
	SaleID    string `json:"sale_id" bson:"sale_id"`
	ProductID string `json:"product_id" bson:"product_id"`
	Index     int    `json:"index" bson:"index"`
	Quantity  int    `json:"quantity" bson:"quantity"`
}
