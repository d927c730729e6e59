package catalog

import "testing"

func TestSeededInventory(t *testing.T) {
	c := NewSeeded()

	if got := len(c.Stores()); got != 3 {
		t.Fatalf("expected 3 stores, got %d", got)
	}
	if got := len(c.Products()); got != 5 {
		t.Fatalf("expected 5 products, got %d", got)
	}

	store, ok := c.Store("2")
	if !ok {
		t.Fatalf("expected store 2 to exist")
	}
	if store.Name != "MediCare Pharmacy" || store.Type != StorePharmacy {
		t.Fatalf("unexpected store: %+v", store)
	}

	p, ok := c.Product("3")
	if !ok {
		t.Fatalf("expected product 3 to exist")
	}
	if p.Name != "Ibuprofen" || p.Price != 8.99 || p.Aisle != "C2" {
		t.Fatalf("unexpected product: %+v", p)
	}
}

func TestSearch(t *testing.T) {
	c := NewSeeded()

	tests := []struct {
		name    string
		query   Query
		wantIDs []string
	}{
		{name: "no filters", query: Query{}, wantIDs: []string{"1", "2", "3", "4", "5"}},
		{name: "category all", query: Query{Category: "all"}, wantIDs: []string{"1", "2", "3", "4", "5"}},
		{name: "term case insensitive", query: Query{Term: "ORGANIC"}, wantIDs: []string{"1", "5"}},
		{name: "term substring", query: Query{Term: "bread"}, wantIDs: []string{"2"}},
		{name: "category exact", query: Query{Category: "Produce"}, wantIDs: []string{"1", "5"}},
		{name: "category is not substring matched", query: Query{Category: "produce"}, wantIDs: []string{}},
		{name: "term and category combine", query: Query{Term: "apple", Category: "Produce"}, wantIDs: []string{"5"}},
		{name: "no matches", query: Query{Term: "chocolate"}, wantIDs: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Search(tt.query)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("got %d products, want %d: %+v", len(got), len(tt.wantIDs), got)
			}
			for i, p := range got {
				if p.ID != tt.wantIDs[i] {
					t.Fatalf("result %d = %s, want %s", i, p.ID, tt.wantIDs[i])
				}
			}
		})
	}
}

func TestCategories(t *testing.T) {
	c := NewSeeded()
	got := c.Categories()
	want := []string{"Bakery", "Medicine", "Produce", "Vitamins"}
	if len(got) != len(want) {
		t.Fatalf("categories = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("categories = %v, want %v", got, want)
		}
	}
}

func TestProductCRUD(t *testing.T) {
	c := NewSeeded()

	added, err := c.AddProduct(Product{
		Name:     "Almond Milk",
		Category: "Dairy",
		Price:    3.99,
		StoreID:  "1",
		Location: "Dairy Section",
		Aisle:    "E1",
		Shelf:    "S2",
	})
	if err != nil {
		t.Fatalf("AddProduct error: %v", err)
	}
	if added.ID != "6" {
		t.Fatalf("expected assigned id 6, got %s", added.ID)
	}

	added.Price = 4.29
	if _, err := c.UpdateProduct(added); err != nil {
		t.Fatalf("UpdateProduct error: %v", err)
	}
	p, ok := c.Product("6")
	if !ok || p.Price != 4.29 {
		t.Fatalf("update not applied: %+v", p)
	}

	if err := c.RemoveProduct("6"); err != nil {
		t.Fatalf("RemoveProduct error: %v", err)
	}
	if _, ok := c.Product("6"); ok {
		t.Fatalf("expected product 6 to be removed")
	}
}

func TestProductCRUDErrors(t *testing.T) {
	c := NewSeeded()

	if _, err := c.AddProduct(Product{StoreID: "1"}); err == nil {
		t.Fatalf("expected error for unnamed product")
	}
	if _, err := c.AddProduct(Product{Name: "Orphan", StoreID: "99"}); err == nil {
		t.Fatalf("expected error for unknown store")
	}
	if _, err := c.UpdateProduct(Product{ID: "99", Name: "Ghost"}); err == nil {
		t.Fatalf("expected error updating missing product")
	}
	if err := c.RemoveProduct("99"); err == nil {
		t.Fatalf("expected error removing missing product")
	}
}
