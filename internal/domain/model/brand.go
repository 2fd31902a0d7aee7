package model

import "time"

type Brand struct {
	ID          int64     `gorm:"column:brand_id;primaryKey;autoIncrement" json:"brand_id"`
	Name        string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	IsActive    bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

func (Brand) TableName() string {
	return "brands"
}
