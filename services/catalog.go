package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/shopswift/ebay-autolister/models"
)

// Defaults applied when optional catalog columns are absent.
const (
	defaultCondition = "NEW"
	defaultQuantity  = 1
	defaultWeight    = 1.0
	defaultDimension = 10.0
)

var requiredColumns = []string{"sku", "title", "description", "category_id", "price"}

// CatalogService loads inventory items from CSV catalog files. Rows that
// fail to parse are logged and skipped; the load returns every valid row.
type CatalogService struct {
	logger *zap.Logger
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(logger *zap.Logger) *CatalogService {
	return &CatalogService{logger: logger}
}

// LoadItems reads one catalog file from disk.
func (s *CatalogService) LoadItems(path string) ([]models.InventoryItem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog %s: %w", path, err)
	}
	defer f.Close()

	return s.ParseItems(f)
}

// ParseItems parses catalog rows from r. The header row is required and
// may order columns freely; required columns are sku, title, description,
// category_id and price.
func (s *CatalogService) ParseItems(r io.Reader) ([]models.InventoryItem, error) {
	reader := csv.NewReader(r)
	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("catalog must include a header row")
	}

	// Map of header indexes for flexible column order.
	index := make(map[string]int)
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("catalog is missing required column %q", col)
		}
	}

	var items []models.InventoryItem
	rowNum := 2 // Start after header
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			s.logger.Warn("skipping unreadable catalog row",
				zap.Int("row", rowNum), zap.Error(err))
			rowNum++
			continue
		}

		item, err := parseRow(row, index)
		if err != nil {
			s.logger.Warn("skipping invalid catalog row",
				zap.Int("row", rowNum), zap.Error(err))
			rowNum++
			continue
		}
		items = append(items, item)
		rowNum++
	}

	return items, nil
}

func field(row []string, index map[string]int, name string) string {
	i, ok := index[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func parseRow(row []string, index map[string]int) (models.InventoryItem, error) {
	item := models.InventoryItem{
		SKU:         field(row, index, "sku"),
		Title:       field(row, index, "title"),
		Description: field(row, index, "description"),
		CategoryID:  field(row, index, "category_id"),
		Brand:       field(row, index, "brand"),
		MPN:         field(row, index, "mpn"),
		Condition:   defaultCondition,
		Quantity:    defaultQuantity,
		Weight:      defaultWeight,
		Dimensions: models.Dimensions{
			Length: defaultDimension,
			Width:  defaultDimension,
			Height: defaultDimension,
		},
	}

	if item.SKU == "" || item.Title == "" || item.Description == "" || item.CategoryID == "" {
		return models.InventoryItem{}, fmt.Errorf("missing required field (sku, title, description, or category_id)")
	}

	price, err := strconv.ParseFloat(field(row, index, "price"), 64)
	if err != nil {
		return models.InventoryItem{}, fmt.Errorf("invalid price %q", field(row, index, "price"))
	}
	item.Price = price

	if v := field(row, index, "condition"); v != "" {
		item.Condition = v
	}
	if v := field(row, index, "quantity"); v != "" {
		q, err := strconv.Atoi(v)
		if err != nil || q < 0 {
			return models.InventoryItem{}, fmt.Errorf("invalid quantity %q", v)
		}
		item.Quantity = q
	}
	if v := field(row, index, "weight"); v != "" {
		w, err := strconv.ParseFloat(v, 64)
		if err != nil || w <= 0 {
			return models.InventoryItem{}, fmt.Errorf("invalid weight %q", v)
		}
		item.Weight = w
	}
	if v := field(row, index, "dimensions"); v != "" {
		if dims, ok := parseDimensions(v); ok {
			item.Dimensions = dims
		}
	}
	if v := field(row, index, "images"); v != "" {
		for _, url := range strings.Split(v, ",") {
			if url = strings.TrimSpace(url); url != "" {
				item.Images = append(item.Images, url)
			}
		}
	}

	return item, nil
}

// parseDimensions parses the compact "LxWxH" format, e.g. "6x4x2".
func parseDimensions(s string) (models.Dimensions, bool) {
	parts := strings.Split(strings.ToLower(s), "x")
	if len(parts) != 3 {
		return models.Dimensions{}, false
	}

	var vals [3]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || v <= 0 {
			return models.Dimensions{}, false
		}
		vals[i] = v
	}
	return models.Dimensions{Length: vals[0], Width: vals[1], Height: vals[2]}, true
}

var sampleRows = [][]string{
	{"sku", "title", "description", "condition", "category_id", "price", "quantity", "brand", "mpn", "weight", "dimensions", "images"},
	{"TEST-001", "Sample Product - Test Listing", "This is a test product for eBay API integration", "NEW", "58058", "29.99", "5", "Generic", "TEST-001", "1.0", "6x4x2", "https://example.com/image1.jpg,https://example.com/image2.jpg"},
	{"TEST-002", "Another Test Product", "Second test product for bulk operations", "NEW", "58058", "49.99", "10", "TestBrand", "TB-002", "2.0", "8x6x3", "https://example.com/image3.jpg"},
}

// WriteSample writes a two-product example catalog.
func (s *CatalogService) WriteSample(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(sampleRows); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	s.logger.Info("sample catalog created", zap.String("path", path))
	return nil
}
