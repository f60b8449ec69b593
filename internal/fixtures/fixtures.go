// In file: internal/fixtures/fixtures.go

// Package fixtures holds the mock domain records served by the tool registries
// when a domain runs in mock mode. The catalog is read once at startup, either
// from the embedded default or from a YAML file, and is never mutated afterwards.
package fixtures

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultCatalog []byte

// FoodItem is one orderable dish.
type FoodItem struct {
	ID         string  `yaml:"id" json:"id"`
	Name       string  `yaml:"name" json:"name"`
	Restaurant string  `yaml:"restaurant" json:"restaurant"`
	Price      float64 `yaml:"price" json:"price"`
	Rating     float64 `yaml:"rating" json:"rating"`
}

// Restaurant is the metadata returned by get_restaurant_info.
type Restaurant struct {
	Name         string  `yaml:"name" json:"name"`
	Cuisine      string  `yaml:"cuisine" json:"cuisine"`
	Rating       float64 `yaml:"rating" json:"rating"`
	DeliveryTime string  `yaml:"delivery_time" json:"delivery_time"`
	MinOrder     float64 `yaml:"min_order" json:"min_order"`
}

// Product is one item of the product catalog.
type Product struct {
	ID       string  `yaml:"id" json:"id"`
	Name     string  `yaml:"name" json:"name"`
	Category string  `yaml:"category" json:"category"`
	Price    float64 `yaml:"price" json:"price"`
	Rating   float64 `yaml:"rating" json:"rating"`
	InStock  bool    `yaml:"in_stock" json:"in_stock"`
}

// Account is a bank account. Balance is the opening balance; the live value
// is owned by the ledger.
type Account struct {
	AccountID   string  `yaml:"account_id" json:"account_id" redis:"account_id"`
	AccountType string  `yaml:"account_type" json:"account_type" redis:"account_type"`
	Balance     float64 `yaml:"balance" json:"balance" redis:"balance"`
	Currency    string  `yaml:"currency" json:"currency" redis:"currency"`
	Status      string  `yaml:"status" json:"status" redis:"status"`
}

// Transaction is one line of the fixed transaction log.
type Transaction struct {
	ID          string  `yaml:"id" json:"id"`
	Date        string  `yaml:"date" json:"date"`
	Description string  `yaml:"description" json:"description"`
	Amount      float64 `yaml:"amount" json:"amount"`
	Balance     float64 `yaml:"balance" json:"balance"`
}

// Catalog is the full set of mock records.
type Catalog struct {
	FoodItems    []FoodItem    `yaml:"food_items"`
	Restaurants  []Restaurant  `yaml:"restaurants"`
	Products     []Product     `yaml:"products"`
	Accounts     []Account     `yaml:"accounts"`
	Transactions []Transaction `yaml:"transactions"`
}

// Default returns the embedded catalog.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads a catalog from path. An empty path selects the embedded default.
func Load(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixtures file %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse decodes and validates a YAML catalog.
func Parse(raw []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("failed to parse fixtures: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	seen := make(map[string]struct{})
	for _, item := range c.FoodItems {
		if err := uniqueID(seen, "food item", item.ID); err != nil {
			return err
		}
	}
	clear(seen)
	for _, p := range c.Products {
		if err := uniqueID(seen, "product", p.ID); err != nil {
			return err
		}
	}
	clear(seen)
	for _, a := range c.Accounts {
		if err := uniqueID(seen, "account", a.AccountID); err != nil {
			return err
		}
	}
	clear(seen)
	for _, r := range c.Restaurants {
		if err := uniqueID(seen, "restaurant", strings.ToLower(r.Name)); err != nil {
			return err
		}
	}
	return nil
}

func uniqueID(seen map[string]struct{}, kind, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("fixtures: %s with empty id", kind)
	}
	if _, dup := seen[id]; dup {
		return fmt.Errorf("fixtures: duplicate %s id %q", kind, id)
	}
	seen[id] = struct{}{}
	return nil
}

// FoodItem looks up a dish by id.
func (c *Catalog) FoodItem(id string) (FoodItem, bool) {
	for _, item := range c.FoodItems {
		if item.ID == id {
			return item, true
		}
	}
	return FoodItem{}, false
}

// Product looks up a product by id.
func (c *Catalog) Product(id string) (Product, bool) {
	for _, p := range c.Products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// Restaurant looks up a restaurant by case-insensitive exact name.
func (c *Catalog) Restaurant(name string) (Restaurant, bool) {
	for _, r := range c.Restaurants {
		if strings.EqualFold(r.Name, name) {
			return r, true
		}
	}
	return Restaurant{}, false
}
