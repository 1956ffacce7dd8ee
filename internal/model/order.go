package model

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
)

var allowedOrderStatuses = [...]OrderStatus{
	OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered,
}

func (s OrderStatus) Valid() bool {
	for _, v := range allowedOrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Order is the single authoritative record for a placed order. The ID is
// fabricated server-side ("ORD-" prefix); RequestID is the client-supplied
// idempotency key, unique per buyer when present.
type Order struct {
	ID          string      `gorm:"primaryKey;size:64"`
	RequestID   *string     `gorm:"column:request_id;size:64;uniqueIndex:uk_orders_buyer_request"`
	ProductID   uint64      `gorm:"column:product_id;index;not null"`
	ProductName string      `gorm:"column:product_name;size:120;not null"`
	BuyerID     uint64      `gorm:"column:buyer_id;not null;uniqueIndex:uk_orders_buyer_request;index"`
	BuyerName   string      `gorm:"column:buyer_name;size:120"`
	Location    string      `gorm:"size:255"`
	Quantity    uint        `gorm:"not null"`
	UnitPrice   float64     `gorm:"column:unit_price;not null"`
	TotalAmount float64     `gorm:"column:total_amount;not null"`
	Status      OrderStatus `gorm:"size:32;not null;index"`
	Confirmed   bool        `gorm:"not null;default:false"`

	// logistics sub-record
	Carrier           string `gorm:"size:120"`
	TrackingNumber    string `gorm:"column:tracking_number;size:120"`
	EstimatedDelivery string `gorm:"column:estimated_delivery;size:120"`
	CurrentLocation   string `gorm:"column:current_location;size:255"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Order) TableName() string {
	return "orders"
}
