package sales

import (
	"slices"

	"github.com/shopspring/decimal"
)

// Aggregate joins carts with the product catalog and returns the daily
// sales and items-sold series for the given range and category.
// Days without a qualifying line item are omitted, not zero-filled.
func Aggregate(products []Product, carts []Cart, r DateRange, category Category) Result {
	return ResultFromBuckets(Buckets(products, carts, r, category))
}

// Buckets returns the per-day totals sorted by ascending date
func Buckets(products []Product, carts []Cart, r DateRange, category Category) []DailyBucket {
	if r.IsEmpty() {
		return nil
	}

	catalog := NewCatalog(products)
	byDay := make(map[int64]*DailyBucket)

	for _, cart := range carts {
		if !r.Contains(cart.Date) {
			continue
		}
		day := cart.Day()
		for _, item := range cart.Products {
			if item.Quantity <= 0 {
				continue
			}
			product, ok := catalog.Lookup(item.ProductID)
			if !ok {
				continue
			}
			if !category.Matches(product.Category) {
				continue
			}

			key := day.Unix()
			bucket, ok := byDay[key]
			if !ok {
				bucket = &DailyBucket{Date: day, Sales: decimal.Zero}
				byDay[key] = bucket
			}
			qty := int64(item.Quantity)
			bucket.Sales = bucket.Sales.Add(product.Price.Mul(decimal.NewFromInt(qty)))
			bucket.Items += qty
		}
	}

	keys := make([]int64, 0, len(byDay))
	for k := range byDay {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	buckets := make([]DailyBucket, 0, len(keys))
	for _, k := range keys {
		buckets = append(buckets, *byDay[k])
	}
	return buckets
}

// Totals sums sales and items over a set of buckets
func Totals(buckets []DailyBucket) (decimal.Decimal, int64) {
	sales := decimal.Zero
	var items int64
	for _, b := range buckets {
		sales = sales.Add(b.Sales)
		items += b.Items
	}
	return sales, items
}
