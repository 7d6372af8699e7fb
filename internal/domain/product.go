package domain

import "time"

// Product is a catalog item listed by a seller. Stock is the number of
// units available for sale and never goes negative.
type Product struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id,string" form:"id"`
	Name        string    `gorm:"size:200;index" json:"name" form:"name"`
	Description string    `json:"description" form:"description"`
	Price       float64   `gorm:"type:decimal(10,2)" json:"price" form:"price"`
	Category    string    `gorm:"size:50;index" json:"category" form:"category"`
	Stock       int       `gorm:"default:0;check:stock >= 0" json:"stock" form:"stock"`
	Image       string    `gorm:"size:255;default:default-product.jpg" json:"image" form:"image"`
	SellerID    int64     `gorm:"index;not null" json:"seller_id,string" form:"seller_id"`
	Seller      *User     `gorm:"foreignKey:SellerID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Product) TableName() string {
	return "products"
}
