package services

import (
	"strings"

	"warehouse-service/internal/models"
)

// detectionKeywords maps each marketplace to the header keywords its
// exports are expected to carry. Confidence is the fraction of keywords
// found as a substring of any header.
var detectionKeywords = map[models.Marketplace][]string{
	models.MarketplaceAmazon:   {"ASIN", "FNSKU", "MSKU", "Fulfillment Center", "Event Type"},
	models.MarketplaceFlipkart: {"Order Id", "FSN", "SKU", "Ordered On", "Order State", "Shipment ID"},
	models.MarketplaceMeesho:   {"Sub Order No", "Order Date", "Customer State", "Product Name", "Reason for Credit Entry"},
}

// filenameHints maps filename substrings to marketplaces, checked when
// header-based confidence is inconclusive.
var filenameHints = []struct {
	substrings  []string
	marketplace models.Marketplace
}{
	{[]string{"amazon"}, models.MarketplaceAmazon},
	{[]string{"flipkart", "fk"}, models.MarketplaceFlipkart},
	{[]string{"meesho"}, models.MarketplaceMeesho},
}

// Detector guesses which marketplace an uploaded file came from by scoring
// its headers against known export schemas. Detection never fails: an
// unparseable file degrades to filename-only detection.
type Detector struct{}

// NewDetector creates a new Detector
func NewDetector() *Detector {
	return &Detector{}
}

// maxSampleRows limits how many data rows a detection result echoes back.
const maxSampleRows = 3

// Detect inspects raw file content plus the original filename and returns
// the best marketplace guess with a confidence score.
func (d *Detector) Detect(content []byte, filename string) *models.DetectionResult {
	parsed, err := ParseUpload(content, filename)
	if err != nil || len(parsed.Headers) == 0 {
		result := &models.DetectionResult{
			Marketplace: detectFromFilename(filename),
			Confidence:  0.7,
			Headers:     []string{},
			SampleData:  []map[string]string{},
			Note:        "Determined from filename due to parsing error",
		}
		return result
	}

	marketplace := models.MarketplaceUnknown
	confidence := 0.0

	// First-registered marketplace wins ties.
	for _, candidate := range models.SupportedMarketplaces {
		score := headerConfidence(parsed.Headers, detectionKeywords[candidate])
		if score > confidence {
			marketplace = candidate
			confidence = score
		}
	}

	// Below-threshold header scores can be rescued by a filename hint.
	if confidence < 0.8 {
		if hinted := detectFromFilename(filename); hinted != models.MarketplaceUnknown {
			marketplace = hinted
			if confidence < 0.7 {
				confidence = 0.7
			}
		}
	}

	samples := parsed.Rows
	if len(samples) > maxSampleRows {
		samples = samples[:maxSampleRows]
	}
	sampleData := make([]map[string]string, 0, len(samples))
	for _, row := range samples {
		sample := make(map[string]string, len(row))
		for k, v := range row {
			if k != "_row" {
				sample[k] = v
			}
		}
		sampleData = append(sampleData, sample)
	}

	return &models.DetectionResult{
		Marketplace: marketplace,
		Confidence:  confidence,
		Headers:     parsed.Headers,
		SampleData:  sampleData,
	}
}

// headerConfidence returns the fraction of expected keywords present as a
// substring of any header, compared case-insensitively.
func headerConfidence(headers, keywords []string) float64 {
	if len(keywords) == 0 {
		return 0
	}
	lowered := make([]string, len(headers))
	for i, h := range headers {
		lowered[i] = strings.ToLower(h)
	}

	matches := 0
	for _, keyword := range keywords {
		kw := strings.ToLower(keyword)
		for _, h := range lowered {
			if strings.Contains(h, kw) {
				matches++
				break
			}
		}
	}
	return float64(matches) / float64(len(keywords))
}

func detectFromFilename(filename string) models.Marketplace {
	name := strings.ToLower(filename)
	for _, hint := range filenameHints {
		for _, sub := range hint.substrings {
			if strings.Contains(name, sub) {
				return hint.marketplace
			}
		}
	}
	return models.MarketplaceUnknown
}
