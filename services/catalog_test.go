package services_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopswift/ebay-autolister/models"
	"github.com/shopswift/ebay-autolister/services"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestCatalog() *services.CatalogService {
	return services.NewCatalogService(zap.NewNop())
}

func TestParseItems_AppliesDefaults(t *testing.T) {
	input := "sku,title,description,category_id,price\n" +
		"SKU-1,Widget,A widget,58058,19.99\n"

	items, err := newTestCatalog().ParseItems(strings.NewReader(input))

	assert.NoError(t, err)
	assert.Len(t, items, 1)
	item := items[0]
	assert.Equal(t, "SKU-1", item.SKU)
	assert.Equal(t, 19.99, item.Price)
	assert.Equal(t, "NEW", item.Condition)
	assert.Equal(t, 1, item.Quantity)
	assert.Equal(t, 1.0, item.Weight)
	assert.Equal(t, models.Dimensions{Length: 10, Width: 10, Height: 10}, item.Dimensions)
	assert.Empty(t, item.Images)
	assert.Equal(t, "", item.Brand)
	assert.Equal(t, "", item.MPN)
}

func TestParseItems_ParsesAllColumns(t *testing.T) {
	input := `sku,title,description,condition,category_id,price,quantity,brand,mpn,weight,dimensions,images
CAM-100,Camera,DSLR body,used excellent,625,450.00,3,Canon,EOS-100,2.5,8x6x4,"https://img.example.com/1.jpg, https://img.example.com/2.jpg"
`

	items, err := newTestCatalog().ParseItems(strings.NewReader(input))

	assert.NoError(t, err)
	assert.Len(t, items, 1)
	item := items[0]
	assert.Equal(t, "used excellent", item.Condition)
	assert.Equal(t, 3, item.Quantity)
	assert.Equal(t, "Canon", item.Brand)
	assert.Equal(t, "EOS-100", item.MPN)
	assert.Equal(t, 2.5, item.Weight)
	assert.Equal(t, models.Dimensions{Length: 8, Width: 6, Height: 4}, item.Dimensions)
	assert.Equal(t, []string{"https://img.example.com/1.jpg", "https://img.example.com/2.jpg"}, item.Images)
}

func TestParseItems_FlexibleColumnOrder(t *testing.T) {
	input := "price,sku,description,title,category_id\n" +
		"15.50,SKU-9,Desc,Title,100\n"

	items, err := newTestCatalog().ParseItems(strings.NewReader(input))

	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, "SKU-9", items[0].SKU)
	assert.Equal(t, 15.50, items[0].Price)
	assert.Equal(t, "Title", items[0].Title)
}

func TestParseItems_SkipsRowWithInvalidPrice(t *testing.T) {
	input := "sku,title,description,category_id,price\n" +
		"SKU-1,First,Desc,58058,10.00\n" +
		"SKU-2,Second,Desc,58058,not-a-price\n" +
		"SKU-3,Third,Desc,58058,30.00\n"

	items, err := newTestCatalog().ParseItems(strings.NewReader(input))

	assert.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, "SKU-1", items[0].SKU)
	assert.Equal(t, "SKU-3", items[1].SKU)
}

func TestParseItems_SkipsRowMissingRequiredValue(t *testing.T) {
	input := "sku,title,description,category_id,price\n" +
		",No Sku,Desc,100,5.00\n" +
		"SKU-2,Ok,Desc,100,6.00\n"

	items, err := newTestCatalog().ParseItems(strings.NewReader(input))

	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, "SKU-2", items[0].SKU)
}

func TestParseItems_SkipsRowWithNegativeQuantity(t *testing.T) {
	input := "sku,title,description,category_id,price,quantity\n" +
		"SKU-1,First,Desc,100,5.00,-2\n" +
		"SKU-2,Second,Desc,100,6.00,4\n"

	items, err := newTestCatalog().ParseItems(strings.NewReader(input))

	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 4, items[0].Quantity)
}

func TestParseItems_MalformedDimensionsKeepDefault(t *testing.T) {
	input := "sku,title,description,category_id,price,dimensions\n" +
		"SKU-1,First,Desc,100,5.00,10x20\n"

	items, err := newTestCatalog().ParseItems(strings.NewReader(input))

	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, models.Dimensions{Length: 10, Width: 10, Height: 10}, items[0].Dimensions)
}

func TestParseItems_MissingRequiredColumn(t *testing.T) {
	input := "sku,title,description,category_id\n" +
		"SKU-1,T,D,100\n"

	items, err := newTestCatalog().ParseItems(strings.NewReader(input))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "price")
	assert.Nil(t, items)
}

func TestParseItems_EmptyInput(t *testing.T) {
	_, err := newTestCatalog().ParseItems(strings.NewReader(""))
	assert.Error(t, err)
}

func TestParseItems_HeaderOnly(t *testing.T) {
	items, err := newTestCatalog().ParseItems(strings.NewReader("sku,title,description,category_id,price\n"))

	assert.NoError(t, err)
	assert.Empty(t, items)
}

func TestLoadItems_MissingFile(t *testing.T) {
	_, err := newTestCatalog().LoadItems(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestWriteSample_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.csv")
	svc := newTestCatalog()

	assert.NoError(t, svc.WriteSample(path))

	items, err := svc.LoadItems(path)
	assert.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, "TEST-001", items[0].SKU)
	assert.Equal(t, 29.99, items[0].Price)
	assert.Equal(t, models.Dimensions{Length: 6, Width: 4, Height: 2}, items[0].Dimensions)
	assert.Len(t, items[0].Images, 2)
	assert.Equal(t, "TEST-002", items[1].SKU)
	assert.Equal(t, 10, items[1].Quantity)
}
