package models

// Dimensions holds package measurements in inches.
type Dimensions struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// InventoryItem is one product row loaded from a catalog file. Fields are
// populated once by the loader and read-only afterwards.
type InventoryItem struct {
	SKU         string     `json:"sku"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Condition   string     `json:"condition"` // seller label, e.g. "used excellent"
	CategoryID  string     `json:"category_id"`
	Price       float64    `json:"price"`
	Quantity    int        `json:"quantity"`
	Brand       string     `json:"brand,omitempty"`
	MPN         string     `json:"mpn,omitempty"`
	Weight      float64    `json:"weight"` // pounds
	Dimensions  Dimensions `json:"dimensions"`
	Images      []string   `json:"images,omitempty"`
}
