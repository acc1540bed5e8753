package domain

import "time"

// Customer is a buyer. DocNumber follows the legal-entity or individual
// grouping depending on LegalEntity.
type Customer struct {
	ID          string    `json:"_id" bson:"_id"`
	Timestamp   time.Time `json:"_tz" bson:"_tz"`
	Name        string    `json:"name" bson:"name"`
	DocNumber   string    `json:"doc_number" bson:"doc_number"`
	LegalEntity bool      `json:"legal_entity" bson:"legal_entity"`
}
