package sales

import (
	"github.com/shopspring/decimal"
)

// Product is a catalog entry from the upstream store
type Product struct {
	ID          int             `json:"id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description,omitempty"`
	Category    Category        `json:"category"`
	Image       string          `json:"image,omitempty"`
}

// Catalog indexes products by identifier
type Catalog map[int]Product

// NewCatalog builds a lookup from product identifier to product.
// Duplicate identifiers resolve to the last product in the slice.
func NewCatalog(products []Product) Catalog {
	catalog := make(Catalog, len(products))
	for _, p := range products {
		catalog[p.ID] = p
	}
	return catalog
}

// Lookup returns the product with the given identifier
func (c Catalog) Lookup(id int) (Product, bool) {
	p, ok := c[id]
	return p, ok
}
