package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"warehouse-service/internal/models"
)

func TestDetect_AmazonHeaders(t *testing.T) {
	detector := NewDetector()

	// Four of the five Amazon keywords present.
	content := []byte("ASIN,FNSKU,MSKU,Fulfillment Center,Quantity\n" +
		"B0TEST001,X001,WIDGET-1,BLR7,5\n")

	result := detector.Detect(content, "report.csv")

	assert.Equal(t, models.MarketplaceAmazon, result.Marketplace)
	assert.GreaterOrEqual(t, result.Confidence, 0.8)
	assert.Equal(t, []string{"ASIN", "FNSKU", "MSKU", "Fulfillment Center", "Quantity"}, result.Headers)
	assert.Len(t, result.SampleData, 1)
	assert.NotContains(t, result.SampleData[0], "_row")
}

func TestDetect_FlipkartHeaders(t *testing.T) {
	detector := NewDetector()

	content := []byte("Order Id,FSN,SKU,Ordered On,Order State,Quantity\n" +
		"OD1001,FSN123,FK-SKU-1,25-Jan-25,SHIPPED,1\n")

	result := detector.Detect(content, "export.csv")

	assert.Equal(t, models.MarketplaceFlipkart, result.Marketplace)
	assert.GreaterOrEqual(t, result.Confidence, 0.8)
}

func TestDetect_MeeshoHeaders(t *testing.T) {
	detector := NewDetector()

	content := []byte("Sub Order No,Order Date,Customer State,Product Name,Reason for Credit Entry\n" +
		"SO1001,2025-01-25,Karnataka,Widget,DELIVERED\n")

	result := detector.Detect(content, "orders.csv")

	assert.Equal(t, models.MarketplaceMeesho, result.Marketplace)
	assert.GreaterOrEqual(t, result.Confidence, 0.8)
}

func TestDetect_FilenameFallbackOnParseError(t *testing.T) {
	detector := NewDetector()

	// Garbage bytes with an .xlsx extension cannot be parsed at all.
	result := detector.Detect([]byte{0x00, 0x01, 0x02}, "amazon_orders.xlsx")

	assert.Equal(t, models.MarketplaceAmazon, result.Marketplace)
	assert.Equal(t, 0.7, result.Confidence)
	assert.Equal(t, "Determined from filename due to parsing error", result.Note)
	assert.Empty(t, result.Headers)
}

func TestDetect_FilenameHintRescuesWeakHeaders(t *testing.T) {
	detector := NewDetector()

	// Headers match nothing decisively, but the filename names the source.
	content := []byte("colA,colB,colC\n1,2,3\n")

	result := detector.Detect(content, "meesho_payments.csv")

	assert.Equal(t, models.MarketplaceMeesho, result.Marketplace)
	assert.GreaterOrEqual(t, result.Confidence, 0.7)
}

func TestDetect_UnknownWhenNothingMatches(t *testing.T) {
	detector := NewDetector()

	content := []byte("colA,colB,colC\n1,2,3\n")

	result := detector.Detect(content, "data.csv")

	assert.Equal(t, models.MarketplaceUnknown, result.Marketplace)
	assert.Equal(t, 0.0, result.Confidence)
}

func TestDetect_SampleRowsCapped(t *testing.T) {
	detector := NewDetector()

	content := []byte("ASIN,FNSKU,MSKU,Fulfillment Center,Event Type\n" +
		"a,1,m1,BLR7,Shipments\n" +
		"b,2,m2,BLR7,Shipments\n" +
		"c,3,m3,BLR7,Shipments\n" +
		"d,4,m4,BLR7,Shipments\n" +
		"e,5,m5,BLR7,Shipments\n")

	result := detector.Detect(content, "report.csv")

	assert.Len(t, result.SampleData, 3)
}

func TestHeaderConfidence_CaseInsensitive(t *testing.T) {
	headers := []string{"asin", "fnsku", "msku", "FULFILLMENT CENTER", "event type"}
	score := headerConfidence(headers, detectionKeywords[models.MarketplaceAmazon])
	assert.Equal(t, 1.0, score)
}
