package model

// Product is the catalog view returned by the product service. The ledger does not own it.
type Product struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	SKU  string `json:"sku"`
}
