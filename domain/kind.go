package domain

// Kind names an entity kind. The same name is used for the relational table,
// the document collection and the "kind" log field.
type Kind = string

const (
	KindCustomer    Kind = "customer"
	KindProduct     Kind = "product"
	KindSale        Kind = "sale"
	KindSaleProduct Kind = "sale_product"
)
