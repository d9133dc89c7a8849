package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// InventoryAdjustment is one entry in an inventory record's history list.
type InventoryAdjustment struct {
	Date        time.Time `json:"date"`
	Adjustment  int       `json:"adjustment"`
	Reason      string    `json:"reason"`
	NewQuantity int       `json:"newQuantity"`
}

// Inventory tracks stock for one (msku, sku, marketplace) combination.
type Inventory struct {
	ID          uuid.UUID   `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ProductID   uuid.UUID   `json:"productId" gorm:"type:uuid;not null;index"`
	MSKU        string      `json:"msku" gorm:"column:msku;type:varchar(100);not null;uniqueIndex:idx_inventory_msku_sku_marketplace;index"`
	SKU         string      `json:"sku" gorm:"column:sku;type:varchar(100);not null;uniqueIndex:idx_inventory_msku_sku_marketplace"`
	Marketplace Marketplace `json:"marketplace" gorm:"type:varchar(20);not null;uniqueIndex:idx_inventory_msku_sku_marketplace"`

	Quantity          int    `json:"quantity" gorm:"not null;default:0"`
	Location          string `json:"location,omitempty" gorm:"type:varchar(100)"`
	FulfillmentCenter string `json:"fulfillmentCenter,omitempty" gorm:"type:varchar(100)"`

	// History is an ordered list of InventoryAdjustment entries.
	History datatypes.JSON `json:"history,omitempty" gorm:"type:jsonb"`

	LastUpdated time.Time `json:"lastUpdated"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

// TableName specifies the table name
func (Inventory) TableName() string {
	return "inventory"
}

// AppendHistory adds an adjustment entry to the record's history list.
func (i *Inventory) AppendHistory(entry InventoryAdjustment) error {
	var history []InventoryAdjustment
	if len(i.History) > 0 {
		if err := json.Unmarshal(i.History, &history); err != nil {
			return err
		}
	}
	history = append(history, entry)
	raw, err := json.Marshal(history)
	if err != nil {
		return err
	}
	i.History = datatypes.JSON(raw)
	return nil
}

// HistoryEntries decodes the adjustment history list.
func (i *Inventory) HistoryEntries() ([]InventoryAdjustment, error) {
	if len(i.History) == 0 {
		return nil, nil
	}
	var history []InventoryAdjustment
	if err := json.Unmarshal(i.History, &history); err != nil {
		return nil, err
	}
	return history, nil
}
