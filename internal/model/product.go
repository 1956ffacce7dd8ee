package model

import "time"

type Product struct {
	ID             uint64    `gorm:"primaryKey;autoIncrement"`
	ProductName    string    `gorm:"column:product_name;size:120;not null;uniqueIndex:uk_products_owner_name"`
	Location       string    `gorm:"size:255"`
	SupplierName   string    `gorm:"column:supplier_name;size:120"`
	ProductDetails string    `gorm:"column:product_details;type:text"`
	ImageURL       string    `gorm:"column:image_url;size:512"`
	UserID         uint64    `gorm:"column:user_id;not null;uniqueIndex:uk_products_owner_name;index"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

func (Product) TableName() string {
	return "products"
}
