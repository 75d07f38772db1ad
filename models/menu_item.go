package models

import (
	"time"

	"gorm.io/gorm"
)

// MenuItem represents a dish on a restaurant's menu
type MenuItem struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	RestaurantID uint           `gorm:"not null;index" json:"restaurant_id"`
	Name         string         `gorm:"not null" json:"name"`
	Description  string         `gorm:"type:text" json:"description"`
	Category     string         `gorm:"index" json:"category"`
	Price        float64        `gorm:"not null;check:price >= 0" json:"price"`
	Available    bool           `gorm:"not null;default:true" json:"available"`
	ImageS3Key   *string        `json:"image_s3_key,omitempty"`       // nullable, S3 key for uploaded photo
	ImageURL     *string        `gorm:"-" json:"image_url,omitempty"` // computed field, presigned URL for photo
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the MenuItem model
func (MenuItem) TableName() string {
	return "menu_items"
}
