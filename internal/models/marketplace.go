package models

import "strings"

// Marketplace identifies the sales channel a SKU, inventory row or order
// originated from.
type Marketplace string

const (
	MarketplaceAmazon   Marketplace = "Amazon"
	MarketplaceFlipkart Marketplace = "Flipkart"
	MarketplaceMeesho   Marketplace = "Meesho"
	MarketplaceOther    Marketplace = "Other"

	// MarketplaceUnknown is only ever produced by detection; it is not a
	// valid value for stored records.
	MarketplaceUnknown Marketplace = "Unknown"
)

// SupportedMarketplaces lists the marketplaces with dedicated import
// mappers, in detection priority order.
var SupportedMarketplaces = []Marketplace{
	MarketplaceAmazon,
	MarketplaceFlipkart,
	MarketplaceMeesho,
}

// ParseMarketplace normalizes a marketplace name from a request. Anything
// unrecognized maps to Other.
func ParseMarketplace(s string) Marketplace {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "amazon":
		return MarketplaceAmazon
	case "flipkart":
		return MarketplaceFlipkart
	case "meesho":
		return MarketplaceMeesho
	default:
		return MarketplaceOther
	}
}

// IsSupported reports whether the marketplace has an import mapper.
func (m Marketplace) IsSupported() bool {
	for _, s := range SupportedMarketplaces {
		if m == s {
			return true
		}
	}
	return false
}
