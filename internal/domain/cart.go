package domain

import "time"

// CartEntry holds one (user, product) pair in a shopping cart. The
// composite unique index guarantees at most one entry per pair; adding
// the same product again bumps the quantity instead.
//
// Quantities are not validated against stock at write time. They are
// reconciled lazily whenever the cart is read (see internal/shop).
type CartEntry struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id,string" form:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex:uk_cart_user_product" json:"user_id,string" form:"user_id"`
	ProductID int64     `gorm:"not null;uniqueIndex:uk_cart_user_product" json:"product_id,string" form:"product_id"`
	Product   *Product  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"`
	Quantity  int       `gorm:"default:1" json:"quantity" form:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName Specify table name
func (CartEntry) TableName() string {
	return "cart"
}
