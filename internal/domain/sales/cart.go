package sales

import (
	"time"
)

// LineItem references a product and the quantity bought
type LineItem struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

// Cart is an order record from the upstream store
type Cart struct {
	ID       int        `json:"id"`
	UserID   int        `json:"userId"`
	Date     time.Time  `json:"date"`
	Products []LineItem `json:"products"`
}

// Day returns the UTC calendar day of the cart
func (c Cart) Day() time.Time {
	return TruncateDay(c.Date)
}
