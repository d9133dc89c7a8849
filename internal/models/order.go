package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// OrderStatus is the canonical lifecycle status an imported marketplace
// status maps into. Unrecognized marketplace statuses are stored verbatim
// rather than coerced, so new upstream states surface instead of being
// silently misclassified.
type OrderStatus string

const (
	OrderStatusPending         OrderStatus = "Pending"
	OrderStatusProcessing      OrderStatus = "Processing"
	OrderStatusShipped         OrderStatus = "Shipped"
	OrderStatusDelivered       OrderStatus = "Delivered"
	OrderStatusCancelled       OrderStatus = "Cancelled"
	OrderStatusReturned        OrderStatus = "Returned"
	OrderStatusReturnRequested OrderStatus = "Return Requested"
	OrderStatusRTOInitiated    OrderStatus = "RTO Initiated"
	OrderStatusRTODelivered    OrderStatus = "RTO Delivered"
)

// PaymentStatus represents the payment state of an order.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "Pending"
	PaymentStatusCompleted PaymentStatus = "Completed"
	PaymentStatusFailed    PaymentStatus = "Failed"
	PaymentStatusRefunded  PaymentStatus = "Refunded"
)

// UnmappedMSKU is the sentinel stored on order items whose marketplace SKU
// could not be resolved to a master SKU at import time.
const UnmappedMSKU = "UNMAPPED"

// OrderCustomer is the customer subset captured from marketplace exports.
type OrderCustomer struct {
	Name    string `json:"name" gorm:"column:customer_name;type:varchar(255)"`
	Address string `json:"address,omitempty" gorm:"column:customer_address;type:varchar(255)"`
	City    string `json:"city,omitempty" gorm:"column:customer_city;type:varchar(100)"`
	State   string `json:"state,omitempty" gorm:"column:customer_state;type:varchar(100)"`
	Pincode string `json:"pincode,omitempty" gorm:"column:customer_pincode;type:varchar(20)"`
	Country string `json:"country,omitempty" gorm:"column:customer_country;type:varchar(100);default:'India'"`
}

// OrderShipping holds dispatch and tracking details.
type OrderShipping struct {
	ShipmentID        string     `json:"shipmentId,omitempty" gorm:"column:shipment_id;type:varchar(100)"`
	TrackingID        string     `json:"trackingId,omitempty" gorm:"column:tracking_id;type:varchar(100)"`
	Carrier           string     `json:"carrier,omitempty" gorm:"type:varchar(100)"`
	DispatchAfter     *time.Time `json:"dispatchAfter,omitempty"`
	DispatchBy        *time.Time `json:"dispatchBy,omitempty"`
	FulfillmentCenter string     `json:"fulfillmentCenter,omitempty" gorm:"type:varchar(100)"`
}

// OrderPayment holds the money side of an order.
type OrderPayment struct {
	Method   string        `json:"method,omitempty" gorm:"column:payment_method;type:varchar(50)"`
	Amount   float64       `json:"amount" gorm:"column:payment_amount;type:decimal(12,2);not null;default:0"`
	Currency string        `json:"currency" gorm:"column:payment_currency;type:varchar(3);default:'INR'"`
	Status   PaymentStatus `json:"status" gorm:"column:payment_status;type:varchar(20);default:'Completed'"`
}

// OrderItem is one line of an order. MSKU is either a resolved master SKU
// or the UnmappedMSKU sentinel.
type OrderItem struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OrderID   uuid.UUID  `json:"orderId" gorm:"type:uuid;not null;index"`
	SKU       string     `json:"sku" gorm:"column:sku;type:varchar(100);not null;index"`
	MSKU      string     `json:"msku" gorm:"column:msku;type:varchar(100);not null;index"`
	ProductID *uuid.UUID `json:"productId,omitempty" gorm:"type:uuid"`
	Name      string     `json:"name" gorm:"type:varchar(500)"`
	Quantity  int        `json:"quantity" gorm:"not null;default:1"`
	Price     float64    `json:"price" gorm:"type:decimal(12,2);not null;default:0"`
	Tax       float64    `json:"tax" gorm:"type:decimal(12,2);default:0"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name
func (OrderItem) TableName() string {
	return "order_items"
}

// StatusChange is one entry in an order's status history.
type StatusChange struct {
	Status    OrderStatus `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
	Note      string      `json:"note,omitempty"`
}

// Order is a marketplace order. OrderID is the external marketplace id;
// uniqueness is enforced per marketplace (see config.OrderIDScope).
type Order struct {
	ID          uuid.UUID   `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OrderID     string      `json:"orderId" gorm:"column:order_id;type:varchar(100);not null;uniqueIndex:idx_orders_order_id_marketplace"`
	OrderItemID string      `json:"orderItemId,omitempty" gorm:"column:order_item_id;type:varchar(100)"`
	Marketplace Marketplace `json:"marketplace" gorm:"type:varchar(20);not null;uniqueIndex:idx_orders_order_id_marketplace;index:idx_orders_marketplace_date"`
	OrderDate   time.Time   `json:"orderDate" gorm:"not null;index:idx_orders_marketplace_date,sort:desc"`
	Status      OrderStatus `json:"status" gorm:"type:varchar(30);not null;default:'Pending';index"`

	Customer OrderCustomer `json:"customer" gorm:"embedded"`
	Shipping OrderShipping `json:"shipping" gorm:"embedded"`
	Payment  OrderPayment  `json:"payment" gorm:"embedded"`

	Notes string `json:"notes,omitempty" gorm:"type:text"`

	// StatusHistory is an ordered list of StatusChange entries appended by
	// the update-status operation.
	StatusHistory datatypes.JSON `json:"statusHistory,omitempty" gorm:"type:jsonb"`

	// RawData retains the original import row for audit and debugging.
	RawData datatypes.JSON `json:"rawData,omitempty" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Items []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID"`
}

// TableName specifies the table name
func (Order) TableName() string {
	return "orders"
}

// AppendStatusChange records a status transition in the history list.
func (o *Order) AppendStatusChange(change StatusChange) error {
	var history []StatusChange
	if len(o.StatusHistory) > 0 {
		if err := json.Unmarshal(o.StatusHistory, &history); err != nil {
			return err
		}
	}
	history = append(history, change)
	raw, err := json.Marshal(history)
	if err != nil {
		return err
	}
	o.StatusHistory = datatypes.JSON(raw)
	return nil
}

// StatusChanges decodes the recorded status history.
func (o *Order) StatusChanges() ([]StatusChange, error) {
	if len(o.StatusHistory) == 0 {
		return nil, nil
	}
	var history []StatusChange
	if err := json.Unmarshal(o.StatusHistory, &history); err != nil {
		return nil, err
	}
	return history, nil
}

// Total computes the order amount as the sum of price x quantity per item.
func (o *Order) Total() float64 {
	var total float64
	for _, item := range o.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}
