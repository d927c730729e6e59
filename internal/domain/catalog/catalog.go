// Package catalog holds the store and product inventory the assistant
// searches over. Data is seeded in memory; admin endpoints mutate the
// product set at runtime.
package catalog

import (
	"sort"
	"strconv"
	"strings"
	"sync"

	"shopwise-server/internal/platform/errors"
)

// StoreType classifies a physical store.
type StoreType string

const (
	StoreSupermarket StoreType = "supermarket"
	StorePharmacy    StoreType = "pharmacy"
	StoreGrocery     StoreType = "grocery"
)

// Store is a physical shop carrying products.
type Store struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Type      StoreType `json:"type"`
	Image     string    `json:"image"`
}

// Product is an item stocked at a store, with its in-store location.
type Product struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	StoreID  string  `json:"storeId"`
	Location string  `json:"location"`
	Aisle    string  `json:"aisle"`
	Shelf    string  `json:"shelf"`
}

// Query narrows a product search. An empty Term matches everything;
// Category "all" (or empty) disables the category filter.
type Query struct {
	Term     string
	Category string
}

// Catalog is the in-memory store/product inventory.
type Catalog struct {
	mu       sync.RWMutex
	stores   []Store
	products []Product
	nextID   int
}

// NewSeeded builds a catalog pre-populated with the demo inventory.
func NewSeeded() *Catalog {
	c := &Catalog{
		stores: []Store{
			{
				ID:        "1",
				Name:      "SuperFresh Market",
				Address:   "123 Main St, New York, NY 10001",
				Latitude:  40.7128,
				Longitude: -74.006,
				Type:      StoreSupermarket,
				Image:     "/placeholder.svg",
			},
			{
				ID:        "2",
				Name:      "MediCare Pharmacy",
				Address:   "456 Park Ave, New York, NY 10002",
				Latitude:  40.7141,
				Longitude: -74.0059,
				Type:      StorePharmacy,
				Image:     "/placeholder.svg",
			},
			{
				ID:        "3",
				Name:      "GreenGrocer",
				Address:   "789 Broadway, New York, NY 10003",
				Latitude:  40.7135,
				Longitude: -74.0046,
				Type:      StoreGrocery,
				Image:     "/placeholder.svg",
			},
		},
		products: []Product{
			{ID: "1", Name: "Organic Bananas", Category: "Produce", Price: 1.99, StoreID: "1", Location: "Produce Section", Aisle: "A1", Shelf: "S2"},
			{ID: "2", Name: "Whole Grain Bread", Category: "Bakery", Price: 3.49, StoreID: "1", Location: "Bakery Section", Aisle: "B3", Shelf: "S1"},
			{ID: "3", Name: "Ibuprofen", Category: "Medicine", Price: 8.99, StoreID: "2", Location: "Pain Relief Section", Aisle: "C2", Shelf: "S4"},
			{ID: "4", Name: "Vitamin C Tablets", Category: "Vitamins", Price: 12.99, StoreID: "2", Location: "Vitamin Section", Aisle: "D1", Shelf: "S3"},
			{ID: "5", Name: "Organic Apples", Category: "Produce", Price: 4.99, StoreID: "3", Location: "Produce Section", Aisle: "A2", Shelf: "S1"},
		},
	}
	c.nextID = len(c.products) + 1
	return c
}

// Stores returns all known stores.
func (c *Catalog) Stores() []Store {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Store, len(c.stores))
	copy(out, c.stores)
	return out
}

// Store returns a single store by id.
func (c *Catalog) Store(id string) (Store, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, s := range c.stores {
		if s.ID == id {
			return s, true
		}
	}
	return Store{}, false
}

// Products returns all products.
func (c *Catalog) Products() []Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Product returns a single product by id.
func (c *Catalog) Product(id string) (Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, p := range c.products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// Search filters products by case-insensitive name substring and exact
// category. Both filters are optional and combine.
func (c *Catalog) Search(q Query) []Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	term := strings.ToLower(strings.TrimSpace(q.Term))
	category := strings.TrimSpace(q.Category)

	out := make([]Product, 0, len(c.products))
	for _, p := range c.products {
		if category != "" && category != "all" && p.Category != category {
			continue
		}
		if term != "" && !strings.Contains(strings.ToLower(p.Name), term) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Categories returns the distinct product categories, sorted.
func (c *Catalog) Categories() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	seen := make(map[string]struct{}, len(c.products))
	out := make([]string, 0, len(c.products))
	for _, p := range c.products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	sort.Strings(out)
	return out
}

// AddProduct inserts a new product, assigning an id when absent.
func (c *Catalog) AddProduct(p Product) (Product, error) {
	if strings.TrimSpace(p.Name) == "" {
		return Product{}, errors.New(errors.KindCatalog, "catalog.AddProduct", "product name is required")
	}
	if _, ok := c.Store(p.StoreID); !ok {
		return Product{}, errors.New(errors.KindCatalog, "catalog.AddProduct", "unknown store: "+p.StoreID)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if p.ID == "" {
		p.ID = strconv.Itoa(c.nextID)
	}
	c.nextID++
	c.products = append(c.products, p)
	return p, nil
}

// UpdateProduct replaces an existing product by id.
func (c *Catalog) UpdateProduct(p Product) (Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, existing := range c.products {
		if existing.ID == p.ID {
			c.products[i] = p
			return p, nil
		}
	}
	return Product{}, errors.New(errors.KindCatalog, "catalog.UpdateProduct", "product not found: "+p.ID)
}

// RemoveProduct deletes a product by id.
func (c *Catalog) RemoveProduct(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, existing := range c.products {
		if existing.ID == id {
			c.products = append(c.products[:i], c.products[i+1:]...)
			return nil
		}
	}
	return errors.New(errors.KindCatalog, "catalog.RemoveProduct", "product not found: "+id)
}
