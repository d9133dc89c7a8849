package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultLowStockThreshold applies when a product does not configure its own.
const DefaultLowStockThreshold = 10

// Dimensions holds the physical measurements of a product.
type Dimensions struct {
	Length  float64 `json:"length" gorm:"type:decimal(10,2);default:0"`
	Breadth float64 `json:"breadth" gorm:"type:decimal(10,2);default:0"`
	Height  float64 `json:"height" gorm:"type:decimal(10,2);default:0"`
	Weight  float64 `json:"weight" gorm:"type:decimal(10,3);default:0"`
}

// IsZero reports whether no dimension was supplied.
func (d Dimensions) IsZero() bool {
	return d.Length == 0 && d.Breadth == 0 && d.Height == 0 && d.Weight == 0
}

// Product is the master catalog entry. The MSKU (master SKU) is the identity
// every marketplace SKU resolves to.
type Product struct {
	ID                uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MSKU              string     `json:"msku" gorm:"column:msku;type:varchar(100);not null;uniqueIndex"`
	Name              string     `json:"name" gorm:"type:varchar(255);not null"`
	Description       string     `json:"description" gorm:"type:text"`
	Category          string     `json:"category" gorm:"type:varchar(100);not null;default:'Uncategorized'"`
	HSNCode           string     `json:"hsnCode" gorm:"column:hsn_code;type:varchar(20)"`
	Dimensions        Dimensions `json:"dimensions" gorm:"embedded;embeddedPrefix:dim_"`
	LowStockThreshold int        `json:"lowStockThreshold" gorm:"default:10"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// Threshold returns the effective low-stock threshold.
func (p *Product) Threshold() int {
	if p.LowStockThreshold <= 0 {
		return DefaultLowStockThreshold
	}
	return p.LowStockThreshold
}
