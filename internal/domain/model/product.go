package model

import "time"

type Product struct {
	ID          int64     `gorm:"column:product_id;primaryKey;autoIncrement" json:"product_id"`
	Code        string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	Name        string    `gorm:"type:varchar(100);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Price       float64   `gorm:"type:numeric(10,2);not null" json:"price"`
	BrandID     int64     `gorm:"not null;index" json:"brand_id"`
	IsActive    bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`

	//一覧・詳細で使う。監査のスナップショットには含まれない。
	Brand *Brand `gorm:"foreignKey:BrandID;references:ID" json:"brand,omitempty"`
}

func (Product) TableName() string {
	return "products"
}
