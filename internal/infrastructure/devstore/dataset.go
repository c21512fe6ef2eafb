// Package devstore serves a local stand-in for the upstream store API so
// the dashboard can run without network access.
package devstore

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"gopkg.in/yaml.v3"

	"github.com/salesdash/backend/internal/domain/sales"
)

// DateLayout is the cart date format of the upstream API
const DateLayout = "2006-01-02T15:04:05.000Z07:00"

// ErrInvalidDataset is returned when a fixture or generator config is unusable
var ErrInvalidDataset = errors.New("devstore: invalid dataset")

// Product is a catalog entry in the upstream wire format
type Product struct {
	ID          int     `json:"id" yaml:"id"`
	Title       string  `json:"title" yaml:"title"`
	Price       float64 `json:"price" yaml:"price"`
	Description string  `json:"description" yaml:"description"`
	Category    string  `json:"category" yaml:"category"`
	Image       string  `json:"image" yaml:"image"`
}

// LineItem is one product entry of a cart
type LineItem struct {
	ProductID int `json:"productId" yaml:"productId"`
	Quantity  int `json:"quantity" yaml:"quantity"`
}

// Cart is an order record in the upstream wire format
type Cart struct {
	ID       int        `json:"id" yaml:"id"`
	UserID   int        `json:"userId" yaml:"userId"`
	Date     string     `json:"date" yaml:"date"`
	Products []LineItem `json:"products" yaml:"products"`
}

// Dataset is everything the stand-in serves
type Dataset struct {
	Products []Product `json:"products" yaml:"products"`
	Carts    []Cart    `json:"carts" yaml:"carts"`
}

// Validate checks ids are unique and cart dates parse
func (d Dataset) Validate() error {
	seen := make(map[int]struct{}, len(d.Products))
	for _, p := range d.Products {
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("%w: duplicate product id %d", ErrInvalidDataset, p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	for _, c := range d.Carts {
		if _, err := time.Parse(time.RFC3339Nano, c.Date); err != nil {
			return fmt.Errorf("%w: cart %d: bad date %q", ErrInvalidDataset, c.ID, c.Date)
		}
	}
	return nil
}

// LoadFixture reads a YAML fixture with top-level products and carts keys
func LoadFixture(path string) (Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return Dataset{}, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	if err := ds.Validate(); err != nil {
		return Dataset{}, err
	}
	return ds, nil
}

// GenerateConfig controls the synthetic dataset
type GenerateConfig struct {
	Seed     uint64
	Products int
	Carts    int
	Start    time.Time
	End      time.Time
	MaxItems int // line items per cart
	MaxQty   int // quantity per line item
}

// DefaultGenerateConfig mirrors the size of the public store around the
// dashboard's default window
func DefaultGenerateConfig() GenerateConfig {
	return GenerateConfig{
		Seed:     42,
		Products: 20,
		Carts:    40,
		Start:    time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:      time.Date(2020, time.April, 1, 0, 0, 0, 0, time.UTC),
		MaxItems: 4,
		MaxQty:   5,
	}
}

// Generate builds a dataset from the seed. The same config always yields
// the same dataset.
func Generate(cfg GenerateConfig) (Dataset, error) {
	if cfg.Products <= 0 || cfg.Carts < 0 || cfg.MaxItems <= 0 || cfg.MaxQty <= 0 {
		return Dataset{}, fmt.Errorf("%w: counts must be positive", ErrInvalidDataset)
	}
	if !cfg.End.After(cfg.Start) {
		return Dataset{}, fmt.Errorf("%w: end must be after start", ErrInvalidDataset)
	}

	f := gofakeit.New(cfg.Seed)
	categories := storeCategories()

	ds := Dataset{
		Products: make([]Product, 0, cfg.Products),
		Carts:    make([]Cart, 0, cfg.Carts),
	}
	for i := 1; i <= cfg.Products; i++ {
		ds.Products = append(ds.Products, Product{
			ID:          i,
			Title:       f.ProductName(),
			Price:       f.Price(1, 1000),
			Description: f.ProductDescription(),
			Category:    categories[f.Number(0, len(categories)-1)],
			Image:       fmt.Sprintf("https://fakestoreapi.com/img/%d.jpg", i),
		})
	}
	for i := 1; i <= cfg.Carts; i++ {
		items := make([]LineItem, f.Number(1, cfg.MaxItems))
		for j := range items {
			items[j] = LineItem{
				ProductID: f.Number(1, cfg.Products),
				Quantity:  f.Number(1, cfg.MaxQty),
			}
		}
		ds.Carts = append(ds.Carts, Cart{
			ID:       i,
			UserID:   f.Number(1, 10),
			Date:     f.DateRange(cfg.Start, cfg.End).UTC().Format(DateLayout),
			Products: items,
		})
	}
	return ds, nil
}

// storeCategories lists the real categories, without the "all" sentinel
func storeCategories() []string {
	known := sales.KnownCategories()
	out := make([]string, 0, len(known))
	for _, c := range known {
		if !c.IsAll() {
			out = append(out, c.String())
		}
	}
	return out
}
