package models

import (
	"time"

	"gorm.io/gorm"
)

// Banner is a homepage hero slot managed from the admin console.
type Banner struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Title     string         `json:"title"`
	ImageURL  string         `gorm:"not null" json:"image_url"`
	LinkURL   string         `json:"link_url"`
	Position  int            `json:"position"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
