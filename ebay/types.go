package ebay

// Wire types for the Sell Inventory API. Field names and nesting follow
// the vendor's published JSON schema.

// InventoryItemRecord is one inventory item payload. SKU is set only in
// bulk requests; single-item upserts carry the SKU in the URL path.
type InventoryItemRecord struct {
	SKU                  string                `json:"sku,omitempty"`
	Availability         *Availability         `json:"availability,omitempty"`
	Condition            string                `json:"condition,omitempty"`
	ConditionDescription string                `json:"conditionDescription,omitempty"`
	Product              *Product              `json:"product,omitempty"`
	PackageWeightAndSize *PackageWeightAndSize `json:"packageWeightAndSize,omitempty"`
}

// Product holds product details for an inventory item.
type Product struct {
	Title       string              `json:"title,omitempty"`
	Description string              `json:"description,omitempty"`
	Aspects     map[string][]string `json:"aspects,omitempty"`
	Brand       string              `json:"brand,omitempty"`
	MPN         string              `json:"mpn,omitempty"`
	ImageURLs   []string            `json:"imageUrls,omitempty"`
}

// Availability holds inventory availability.
type Availability struct {
	ShipToLocationAvailability *ShipToLocation `json:"shipToLocationAvailability,omitempty"`
}

// ShipToLocation holds quantity info.
type ShipToLocation struct {
	Quantity int `json:"quantity"`
}

// PackageWeightAndSize describes the shipping package.
type PackageWeightAndSize struct {
	Dimensions *PackageDimensions `json:"dimensions,omitempty"`
	Weight     *PackageWeight     `json:"weight,omitempty"`
}

// PackageDimensions are package measurements; Unit is "INCH".
type PackageDimensions struct {
	Height float64 `json:"height"`
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Unit   string  `json:"unit"`
}

// PackageWeight is the package weight; Unit is "POUND".
type PackageWeight struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// BulkInventoryRequest wraps up to 25 item records for the bulk upsert
// endpoint.
type BulkInventoryRequest struct {
	Requests []InventoryItemRecord `json:"requests"`
}

// BulkInventoryResponse carries one entry per submitted record, in
// request order.
type BulkInventoryResponse struct {
	Responses []BulkItemResponse `json:"responses"`
}

// BulkItemResponse is the per-item outcome of a bulk upsert. StatusCode
// 200 means the record was created or replaced.
type BulkItemResponse struct {
	StatusCode int           `json:"statusCode"`
	SKU        string        `json:"sku,omitempty"`
	Errors     []ErrorDetail `json:"errors,omitempty"`
}

// ErrorDetail is the vendor's error object shape.
type ErrorDetail struct {
	ErrorID  int    `json:"errorId,omitempty"`
	Domain   string `json:"domain,omitempty"`
	Category string `json:"category,omitempty"`
	Message  string `json:"message,omitempty"`
}

// Offer is the payload for creating a sales offer against a SKU.
type Offer struct {
	SKU               string           `json:"sku"`
	MarketplaceID     string           `json:"marketplaceId"`
	Format            string           `json:"format"`
	AvailableQuantity int              `json:"availableQuantity"`
	CategoryID        string           `json:"categoryId"`
	PricingSummary    *PricingSummary  `json:"pricingSummary,omitempty"`
	ListingPolicies   *ListingPolicies `json:"listingPolicies,omitempty"`
}

// PricingSummary holds pricing info.
type PricingSummary struct {
	Price *Amount `json:"price,omitempty"`
}

// Amount holds monetary values; Value is the vendor's decimal string.
type Amount struct {
	Value    string `json:"value,omitempty"`
	Currency string `json:"currency,omitempty"`
}

// ListingPolicies holds business policy references.
type ListingPolicies struct {
	FulfillmentPolicyID string `json:"fulfillmentPolicyId,omitempty"`
	PaymentPolicyID     string `json:"paymentPolicyId,omitempty"`
	ReturnPolicyID      string `json:"returnPolicyId,omitempty"`
}

// OfferResponse is returned from offer creation.
type OfferResponse struct {
	OfferID string `json:"offerId"`
}

// PublishResponse is returned from offer publication.
type PublishResponse struct {
	ListingID string `json:"listingId"`
}
