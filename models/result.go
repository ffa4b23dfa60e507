package models

// ItemResult records the outcome for a single SKU in a batch. Error is
// empty when OK is true.
type ItemResult struct {
	SKU   string `json:"sku"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// BatchResult collects one ItemResult per submitted item. Keeping a single
// tagged entry per SKU means an item can never be counted as both created
// and failed.
type BatchResult struct {
	Items []ItemResult `json:"items"`
}

// AddSuccess records a created SKU.
func (b *BatchResult) AddSuccess(sku string) {
	b.Items = append(b.Items, ItemResult{SKU: sku, OK: true})
}

// AddFailure records a failed SKU with the reason.
func (b *BatchResult) AddFailure(sku, reason string) {
	b.Items = append(b.Items, ItemResult{SKU: sku, OK: false, Error: reason})
}

// Succeeded returns the SKUs that were created, in submission order.
func (b *BatchResult) Succeeded() []string {
	var skus []string
	for _, it := range b.Items {
		if it.OK {
			skus = append(skus, it.SKU)
		}
	}
	return skus
}

// Failed returns the entries that failed, in submission order.
func (b *BatchResult) Failed() []ItemResult {
	var failed []ItemResult
	for _, it := range b.Items {
		if !it.OK {
			failed = append(failed, it)
		}
	}
	return failed
}

// SuccessCount reports how many items were created.
func (b *BatchResult) SuccessCount() int {
	n := 0
	for _, it := range b.Items {
		if it.OK {
			n++
		}
	}
	return n
}

// FailureCount reports how many items failed.
func (b *BatchResult) FailureCount() int {
	return len(b.Items) - b.SuccessCount()
}

// ListingSummary counts offer publications for one run.
type ListingSummary struct {
	Created int `json:"created"`
	Failed  int `json:"failed"`
}

// RunSummary is the final report for one upload run.
type RunSummary struct {
	Success          bool            `json:"success"`
	Message          string          `json:"message,omitempty"`
	TotalItems       int             `json:"total_items"`
	InventoryCreated int             `json:"inventory_created"`
	InventoryFailed  int             `json:"inventory_failed"`
	FailedItems      []ItemResult    `json:"failed_items,omitempty"`
	Listings         *ListingSummary `json:"listings,omitempty"`
}
