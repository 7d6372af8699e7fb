package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// ValidOrderStatus reports whether s names a known order status. No
// transition graph is enforced; admins may move an order to any status.
func ValidOrderStatus(s string) bool {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// Order is created once at checkout with the denormalized total of its
// items; only its status is mutated afterwards, by admin action.
type Order struct {
	ID              int64       `gorm:"primaryKey" json:"id,string" form:"id"`
	UserID          int64       `gorm:"index;not null" json:"user_id,string" form:"user_id"`
	User            *User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	TotalAmount     float64     `gorm:"type:decimal(10,2)" json:"total_amount" form:"total_amount"`
	PaymentMethod   string      `gorm:"size:50" json:"payment_method" form:"payment_method"`
	ShippingAddress string      `json:"shipping_address" form:"shipping_address"`
	Status          OrderStatus `gorm:"size:20;default:pending" json:"status" form:"status"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// TableName Specify table name
func (Order) TableName() string {
	return "orders"
}

// OrderItem is an immutable snapshot of one purchased line: product
// identity, name and image as displayed, quantity and unit price at
// purchase time. There is deliberately no foreign key to products so
// deleting a product never erases order history.
type OrderItem struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id,string" form:"id"`
	OrderID     int64     `gorm:"index;not null" json:"order_id,string" form:"order_id"`
	Order       *Order    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"-"`
	ProductID   int64     `json:"product_id,string" form:"product_id"`
	ProductName string    `gorm:"size:200" json:"product_name" form:"product_name"`
	Image       string    `gorm:"size:255" json:"image" form:"image"`
	Quantity    int       `gorm:"not null" json:"quantity" form:"quantity"`
	Price       float64   `gorm:"type:decimal(10,2);not null" json:"price" form:"price"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName Specify table name
func (OrderItem) TableName() string {
	return "order_items"
}
