package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a sellable item with a two-digit unit price.
type Product struct {
	ID          string          `json:"_id" bson:"_id"`
	Timestamp   time.Time       `json:"_tz" bson:"_tz"`
	Name        string          `json:"name" bson:"name"`
	Description string          `json:"description" bson:"description"`
	UnitPrice   decimal.Decimal `json:"unit_price" bson:"unit_price"`
}
