package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopswift/ebay-autolister/ebay"
	"github.com/shopswift/ebay-autolister/models"
)

// Autolister wires the catalog loader, inventory service and listing
// service into one upload pipeline.
type Autolister struct {
	catalog       *CatalogService
	inventory     *InventoryService
	listings      *ListingService
	marketplaceID string
	logger        *zap.Logger
}

// NewAutolister creates the full pipeline on top of one API client.
func NewAutolister(api ebay.API, batchSize int, marketplaceID, currency string, policies ebay.ListingPolicies, logger *zap.Logger) *Autolister {
	return &Autolister{
		catalog:       NewCatalogService(logger),
		inventory:     NewInventoryService(api, batchSize, logger),
		listings:      NewListingService(api, currency, policies, logger),
		marketplaceID: marketplaceID,
		logger:        logger,
	}
}

// Run loads the catalog at path, bulk-creates inventory records and, when
// createListings is set, creates and publishes one offer per created SKU.
// An empty or unloadable catalog short-circuits before any API call.
// Per-item failures never abort the run; the summary carries full counts.
func (a *Autolister) Run(ctx context.Context, path string, createListings bool) *models.RunSummary {
	runID := uuid.New().String()
	log := a.logger.With(zap.String("run_id", runID))

	items, err := a.catalog.LoadItems(path)
	if err != nil {
		log.Error("catalog load failed", zap.Error(err))
		return &models.RunSummary{Message: fmt.Sprintf("failed to load catalog: %v", err)}
	}
	if len(items) == 0 {
		log.Error("no items found in catalog", zap.String("path", path))
		return &models.RunSummary{Message: "no items found"}
	}

	log.Info("creating inventory items", zap.Int("count", len(items)))
	result := a.inventory.CreateBulk(ctx, items)

	summary := &models.RunSummary{
		Success:          true,
		TotalItems:       len(items),
		InventoryCreated: result.SuccessCount(),
		InventoryFailed:  result.FailureCount(),
		FailedItems:      result.Failed(),
	}

	if createListings {
		summary.Listings = a.createListings(ctx, items, result, log)
	}

	log.Info("run complete",
		zap.Int("inventory_created", summary.InventoryCreated),
		zap.Int("inventory_failed", summary.InventoryFailed))
	return summary
}

// createListings runs the offer create+publish pair for every item whose
// inventory record was created. Either call failing counts the item as a
// failed listing; a created offer is not deleted when its publish fails.
func (a *Autolister) createListings(ctx context.Context, items []models.InventoryItem, result *models.BatchResult, log *zap.Logger) *models.ListingSummary {
	succeeded := make(map[string]bool)
	for _, sku := range result.Succeeded() {
		succeeded[sku] = true
	}

	listings := &models.ListingSummary{}
	for _, item := range items {
		if !succeeded[item.SKU] {
			continue
		}

		offerID, err := a.listings.CreateOffer(ctx, item.SKU, item.CategoryID, item.Price, a.marketplaceID)
		if err != nil {
			listings.Failed++
			continue
		}
		if err := a.listings.PublishOffer(ctx, offerID); err != nil {
			listings.Failed++
			continue
		}
		listings.Created++
	}

	log.Info("listings processed",
		zap.Int("created", listings.Created), zap.Int("failed", listings.Failed))
	return listings
}
