// Package stats serves the dashboard and admin reporting figures. The
// numbers are demo fixtures; a production deployment would aggregate
// them from purchase history.
package stats

// MonthValue is a single month's data point.
type MonthValue struct {
	Month string  `json:"month"`
	Value float64 `json:"value"`
}

// NameValue pairs a label with a value, used for category breakdowns.
type NameValue struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// StoreVisits counts visits to one store.
type StoreVisits struct {
	Name   string `json:"name"`
	Visits int    `json:"visits"`
}

// StoreSearches counts product searches against one store.
type StoreSearches struct {
	Name     string `json:"name"`
	Searches int    `json:"searches"`
}

// UserStatistics backs the signed-in dashboard.
type UserStatistics struct {
	SavingsOverTime        []MonthValue  `json:"savingsOverTime"`
	TopPurchasedCategories []NameValue   `json:"topPurchasedCategories"`
	VisitsPerStore         []StoreVisits `json:"visitsPerStore"`
}

// AdminStatistics backs the admin activity view.
type AdminStatistics struct {
	UserRegistrations []MonthValue    `json:"userRegistrations"`
	StorePerformance  []StoreSearches `json:"storePerformance"`
	CategorySales     []NameValue     `json:"categorySales"`
}

// PricingTier describes one subscription plan.
type PricingTier struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       string   `json:"price"`
	Period      string   `json:"period"`
	Features    []string `json:"features"`
	IsFeatured  bool     `json:"isFeatured"`
	ButtonText  string   `json:"buttonText"`
	Discount    string   `json:"discount,omitempty"`
}

// ForUser returns the dashboard figures for a signed-in user.
func ForUser(userID string) UserStatistics {
	_ = userID // fixtures are shared across users for now
	return UserStatistics{
		SavingsOverTime: []MonthValue{
			{Month: "Jan", Value: 20},
			{Month: "Feb", Value: 35},
			{Month: "Mar", Value: 25},
			{Month: "Apr", Value: 45},
			{Month: "May", Value: 55},
			{Month: "Jun", Value: 40},
		},
		TopPurchasedCategories: []NameValue{
			{Name: "Produce", Value: 35},
			{Name: "Dairy", Value: 25},
			{Name: "Bakery", Value: 20},
			{Name: "Medicine", Value: 15},
			{Name: "Meat", Value: 5},
		},
		VisitsPerStore: []StoreVisits{
			{Name: "SuperFresh Market", Visits: 12},
			{Name: "MediCare Pharmacy", Visits: 5},
			{Name: "GreenGrocer", Visits: 8},
		},
	}
}

// ForAdmin returns the platform-wide reporting figures.
func ForAdmin() AdminStatistics {
	return AdminStatistics{
		UserRegistrations: []MonthValue{
			{Month: "Jan", Value: 45},
			{Month: "Feb", Value: 58},
			{Month: "Mar", Value: 65},
			{Month: "Apr", Value: 89},
			{Month: "May", Value: 102},
			{Month: "Jun", Value: 115},
		},
		StorePerformance: []StoreSearches{
			{Name: "SuperFresh Market", Searches: 532},
			{Name: "MediCare Pharmacy", Searches: 321},
			{Name: "GreenGrocer", Searches: 287},
		},
		CategorySales: []NameValue{
			{Name: "Produce", Value: 35},
			{Name: "Dairy", Value: 25},
			{Name: "Bakery", Value: 20},
			{Name: "Medicine", Value: 15},
			{Name: "Meat", Value: 5},
		},
	}
}

// PricingTiers returns the subscription plans shown on the public
// pricing page.
func PricingTiers() []PricingTier {
	features := []string{
		"Store product locations",
		"Price comparisons",
		"Route optimization",
		"Shopping lists",
		"Save favorite products",
	}
	return []PricingTier{
		{
			Name:        "Free",
			Description: "Basic features for individual shoppers",
			Price:       "$0",
			Period:      "forever",
			Features:    features[:3],
			ButtonText:  "Get Started",
		},
		{
			Name:        "Premium",
			Description: "Enhanced features for frequent shoppers",
			Price:       "$4.99",
			Period:      "per month",
			Features:    append(append([]string{}, features...), "Priority support", "No advertisements"),
			IsFeatured:  true,
			ButtonText:  "Try Free for 14 Days",
			Discount:    "Save 20% with annual billing",
		},
		{
			Name:        "Family",
			Description: "Share the benefits with up to 5 family members",
			Price:       "$9.99",
			Period:      "per month",
			Features:    append(append([]string{}, features...), "Up to 5 users", "Shared shopping lists", "Premium support"),
			ButtonText:  "Start Family Plan",
		},
	}
}
