// Package lists manages per-user shopping lists: named collections of
// products with quantities and a purchased flag per item.
package lists

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"shopwise-server/internal/domain/catalog"
	"shopwise-server/internal/platform/errors"
)

// Item is a single product entry on a shopping list. Name and Category
// are denormalized from the catalog at add time so a list stays readable
// even when the product is later removed.
type Item struct {
	ID        string `json:"id"`
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	Purchased bool   `json:"purchased"`
	Name      string `json:"name"`
	Category  string `json:"category"`
}

// List is a named collection of items owned by one user.
type List struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Items     []Item    `json:"items"`
	CreatedAt time.Time `json:"createdAt"`
}

// Service holds shopping lists in memory, keyed by owner.
type Service struct {
	mu         sync.RWMutex
	lists      []List
	catalog    *catalog.Catalog
	nextListID int
	nextItemID int
	now        func() time.Time
}

// NewSeeded builds a service pre-populated with the demo lists for the
// seeded user.
func NewSeeded(cat *catalog.Catalog) *Service {
	s := &Service{
		catalog: cat,
		now:     time.Now,
		lists: []List{
			{
				ID:     "1",
				UserID: "1",
				Name:   "Weekly Groceries",
				Items: []Item{
					{ID: "1", ProductID: "1", Quantity: 2, Purchased: false, Name: "Organic Bananas", Category: "Produce"},
					{ID: "2", ProductID: "2", Quantity: 1, Purchased: false, Name: "Whole Grain Bread", Category: "Bakery"},
				},
				CreatedAt: time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC),
			},
			{
				ID:     "2",
				UserID: "1",
				Name:   "Medication",
				Items: []Item{
					{ID: "3", ProductID: "3", Quantity: 1, Purchased: false, Name: "Ibuprofen", Category: "Medicine"},
					{ID: "4", ProductID: "4", Quantity: 1, Purchased: false, Name: "Vitamin C Tablets", Category: "Vitamins"},
				},
				CreatedAt: time.Date(2023, 6, 2, 12, 0, 0, 0, time.UTC),
			},
		},
	}
	s.nextListID = 3
	s.nextItemID = 5
	return s
}

// ForUser returns the lists owned by the given user.
func (s *Service) ForUser(userID string) []List {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]List, 0, len(s.lists))
	for _, l := range s.lists {
		if l.UserID == userID {
			out = append(out, cloneList(l))
		}
	}
	return out
}

// Get returns one list, checking the caller owns it.
func (s *Service) Get(userID, listID string) (List, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx, err := s.indexOf(userID, listID)
	if err != nil {
		return List{}, err
	}
	return cloneList(s.lists[idx]), nil
}

// Create adds an empty list for the user.
func (s *Service) Create(userID, name string) (List, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return List{}, errors.New(errors.KindCatalog, "lists.Create", "list name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	l := List{
		ID:        strconv.Itoa(s.nextListID),
		UserID:    userID,
		Name:      name,
		Items:     []Item{},
		CreatedAt: s.now(),
	}
	s.nextListID++
	s.lists = append(s.lists, l)
	return cloneList(l), nil
}

// Rename changes a list's name.
func (s *Service) Rename(userID, listID, name string) (List, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return List{}, errors.New(errors.KindCatalog, "lists.Rename", "list name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	idx, err := s.indexOf(userID, listID)
	if err != nil {
		return List{}, err
	}
	s.lists[idx].Name = name
	return cloneList(s.lists[idx]), nil
}

// Delete removes a list.
func (s *Service) Delete(userID, listID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx, err := s.indexOf(userID, listID)
	if err != nil {
		return err
	}
	s.lists = append(s.lists[:idx], s.lists[idx+1:]...)
	return nil
}

// AddItem appends a catalog product to a list, denormalizing its name
// and category.
func (s *Service) AddItem(userID, listID, productID string, quantity int) (List, error) {
	if quantity <= 0 {
		quantity = 1
	}
	product, ok := s.catalog.Product(productID)
	if !ok {
		return List{}, errors.New(errors.KindCatalog, "lists.AddItem", "unknown product: "+productID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	idx, err := s.indexOf(userID, listID)
	if err != nil {
		return List{}, err
	}
	item := Item{
		ID:        strconv.Itoa(s.nextItemID),
		ProductID: product.ID,
		Quantity:  quantity,
		Name:      product.Name,
		Category:  product.Category,
	}
	s.nextItemID++
	s.lists[idx].Items = append(s.lists[idx].Items, item)
	return cloneList(s.lists[idx]), nil
}

// TogglePurchased flips an item's purchased flag.
func (s *Service) TogglePurchased(userID, listID, itemID string) (List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx, err := s.indexOf(userID, listID)
	if err != nil {
		return List{}, err
	}
	for i, item := range s.lists[idx].Items {
		if item.ID == itemID {
			s.lists[idx].Items[i].Purchased = !item.Purchased
			return cloneList(s.lists[idx]), nil
		}
	}
	return List{}, errors.New(errors.KindCatalog, "lists.TogglePurchased", "item not found: "+itemID)
}

// RemoveItem deletes an item from a list.
func (s *Service) RemoveItem(userID, listID, itemID string) (List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx, err := s.indexOf(userID, listID)
	if err != nil {
		return List{}, err
	}
	items := s.lists[idx].Items
	for i, item := range items {
		if item.ID == itemID {
			s.lists[idx].Items = append(items[:i], items[i+1:]...)
			return cloneList(s.lists[idx]), nil
		}
	}
	return List{}, errors.New(errors.KindCatalog, "lists.RemoveItem", "item not found: "+itemID)
}

// indexOf requires s.mu held. Ownership failures and missing lists are
// reported identically so one user cannot probe another's list ids.
func (s *Service) indexOf(userID, listID string) (int, error) {
	for i, l := range s.lists {
		if l.ID == listID && l.UserID == userID {
			return i, nil
		}
	}
	return 0, errors.New(errors.KindCatalog, "lists.indexOf", "list not found: "+listID)
}

func cloneList(l List) List {
	out := l
	out.Items = make([]Item, len(l.Items))
	copy(out.Items, l.Items)
	return out
}
