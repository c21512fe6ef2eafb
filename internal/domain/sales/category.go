package sales

import (
	"strings"

	"github.com/salesdash/backend/internal/domain/shared"
)

// Category is a product category as reported by the upstream store
type Category string

// Known categories. CategoryAll is the sentinel that disables filtering.
const (
	CategoryAll            Category = "all"
	CategoryElectronics    Category = "electronics"
	CategoryJewelery       Category = "jewelery"
	CategoryMensClothing   Category = "men's clothing"
	CategoryWomensClothing Category = "women's clothing"
)

// ErrUnknownCategory is returned when a category filter is not in the known set
var ErrUnknownCategory = shared.NewDomainError("INVALID_CATEGORY", "category must be one of: all, electronics, jewelery, men's clothing, women's clothing")

var categoryLabels = map[Category]string{
	CategoryAll:            "All Categories",
	CategoryMensClothing:   "Men's Clothing",
	CategoryWomensClothing: "Women's Clothing",
	CategoryJewelery:       "Jewelery",
	CategoryElectronics:    "Electronics",
}

// KnownCategories returns the selectable categories in display order
func KnownCategories() []Category {
	return []Category{
		CategoryAll,
		CategoryMensClothing,
		CategoryWomensClothing,
		CategoryJewelery,
		CategoryElectronics,
	}
}

// ParseCategory converts a raw filter value into a Category.
// An empty value means no filter and maps to CategoryAll.
func ParseCategory(raw string) (Category, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return CategoryAll, nil
	}
	c := Category(raw)
	if _, ok := categoryLabels[c]; !ok {
		return "", ErrUnknownCategory
	}
	return c, nil
}

// IsAll reports whether the category disables filtering
func (c Category) IsAll() bool {
	return c == "" || c == CategoryAll
}

// Matches reports whether a product of category p passes this filter
func (c Category) Matches(p Category) bool {
	return c.IsAll() || c == p
}

// Label returns the human readable name of the category
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// String implements fmt.Stringer; the empty category renders as "all"
func (c Category) String() string {
	if c == "" {
		return string(CategoryAll)
	}
	return string(c)
}
