package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/shopswift/ebay-autolister/ebay"
	"github.com/shopswift/ebay-autolister/models"
)

// maxImages is the marketplace's per-item image limit.
const maxImages = 12

// DefaultBatchSize is the marketplace's bulk upsert limit.
const DefaultBatchSize = 25

// InventoryService creates and inspects marketplace inventory records.
type InventoryService struct {
	api       ebay.API
	batchSize int
	logger    *zap.Logger
}

// NewInventoryService creates an InventoryService. A batchSize outside
// 1..25 falls back to DefaultBatchSize.
func NewInventoryService(api ebay.API, batchSize int, logger *zap.Logger) *InventoryService {
	if batchSize <= 0 || batchSize > DefaultBatchSize {
		batchSize = DefaultBatchSize
	}
	return &InventoryService{api: api, batchSize: batchSize, logger: logger}
}

// CreateOne upserts a single inventory record.
func (s *InventoryService) CreateOne(ctx context.Context, item models.InventoryItem) error {
	record := buildInventoryRecord(item, false)
	path := "/inventory_item/" + url.PathEscape(item.SKU)

	if err := s.api.Do(ctx, http.MethodPut, path, record, nil); err != nil {
		s.logger.Error("failed to create inventory item",
			zap.String("sku", item.SKU), zap.Error(err))
		return fmt.Errorf("create inventory item %s: %w", item.SKU, err)
	}

	s.logger.Info("created inventory item", zap.String("sku", item.SKU))
	return nil
}

// CreateBulk upserts items in chunks of the configured batch size and
// returns exactly one outcome per input item. Response entries map back
// to batch items by position, which is the vendor's ordering contract.
// A chunk whose POST fails outright marks every item in that chunk
// failed with the transport error; nothing is retried.
func (s *InventoryService) CreateBulk(ctx context.Context, items []models.InventoryItem) *models.BatchResult {
	result := &models.BatchResult{}

	for i := 0; i < len(items); i += s.batchSize {
		end := i + s.batchSize
		if end > len(items) {
			end = len(items)
		}
		batch := items[i:end]
		chunk := i/s.batchSize + 1

		req := ebay.BulkInventoryRequest{Requests: make([]ebay.InventoryItemRecord, 0, len(batch))}
		for _, item := range batch {
			req.Requests = append(req.Requests, buildInventoryRecord(item, true))
		}

		var resp ebay.BulkInventoryResponse
		if err := s.api.Do(ctx, http.MethodPost, "/bulk_create_or_replace_inventory_item", req, &resp); err != nil {
			s.logger.Error("bulk chunk failed",
				zap.Int("chunk", chunk), zap.Int("items", len(batch)), zap.Error(err))
			for _, item := range batch {
				result.AddFailure(item.SKU, err.Error())
			}
			continue
		}

		for idx, item := range batch {
			if idx >= len(resp.Responses) {
				result.AddFailure(item.SKU, "no response entry for item")
				continue
			}
			entry := resp.Responses[idx]
			if entry.SKU != "" && entry.SKU != item.SKU {
				// The vendor orders responses by request index; a
				// mismatched echo is logged but the position wins.
				s.logger.Warn("bulk response sku does not match request position",
					zap.Int("index", idx),
					zap.String("want", item.SKU),
					zap.String("got", entry.SKU))
			}
			if entry.StatusCode == http.StatusOK {
				result.AddSuccess(item.SKU)
			} else {
				result.AddFailure(item.SKU, bulkErrorText(entry))
			}
		}

		s.logger.Info("processed bulk chunk",
			zap.Int("chunk", chunk), zap.Int("items", len(batch)))
	}

	return result
}

// Get retrieves one inventory record by SKU.
func (s *InventoryService) Get(ctx context.Context, sku string) (*ebay.InventoryItemRecord, error) {
	var record ebay.InventoryItemRecord
	path := "/inventory_item/" + url.PathEscape(sku)

	if err := s.api.Do(ctx, http.MethodGet, path, nil, &record); err != nil {
		return nil, fmt.Errorf("get inventory item %s: %w", sku, err)
	}
	return &record, nil
}

func bulkErrorText(entry ebay.BulkItemResponse) string {
	msgs := make([]string, 0, len(entry.Errors))
	for _, e := range entry.Errors {
		if e.Message != "" {
			msgs = append(msgs, e.Message)
		}
	}
	if len(msgs) == 0 {
		return fmt.Sprintf("unknown error (status %d)", entry.StatusCode)
	}
	return strings.Join(msgs, "; ")
}

// buildInventoryRecord converts a catalog item to the vendor's inventory
// record shape. The SKU is embedded only in bulk payloads; single-item
// upserts carry it in the URL. The free-text condition label is mapped to
// the vendor's condition enum, image lists are capped at the 12-image
// limit, and MPN falls back to the SKU.
func buildInventoryRecord(item models.InventoryItem, includeSKU bool) ebay.InventoryItemRecord {
	images := item.Images
	if len(images) > maxImages {
		images = images[:maxImages]
	}

	mpn := item.MPN
	if mpn == "" {
		mpn = item.SKU
	}

	product := &ebay.Product{
		Title:       item.Title,
		Description: item.Description,
		Brand:       item.Brand,
		MPN:         mpn,
		ImageURLs:   images,
	}
	if item.Brand != "" {
		product.Aspects = map[string][]string{"Brand": {item.Brand}}
	}

	condition := ebay.MapCondition(item.Condition, "")
	record := ebay.InventoryItemRecord{
		Availability: &ebay.Availability{
			ShipToLocationAvailability: &ebay.ShipToLocation{Quantity: item.Quantity},
		},
		Condition: string(condition),
		Product:   product,
		PackageWeightAndSize: &ebay.PackageWeightAndSize{
			Dimensions: &ebay.PackageDimensions{
				Height: item.Dimensions.Height,
				Length: item.Dimensions.Length,
				Width:  item.Dimensions.Width,
				Unit:   "INCH",
			},
			Weight: &ebay.PackageWeight{Value: item.Weight, Unit: "POUND"},
		},
	}
	if condition != ebay.ConditionNew {
		record.ConditionDescription = ebay.ConditionDescription(item.Condition, "")
	}
	if includeSKU {
		record.SKU = item.SKU
	}
	return record
}
