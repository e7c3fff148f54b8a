package models

import (
	"time"

	"github.com/google/uuid"
)

// MenuItem is a purchasable catalog entry. Stock is the only field mutated
// by concurrent requests; the reservation path and the admin overwrite are
// the only writers.
type MenuItem struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	Price     int       `gorm:"column:price;not null" json:"price"`
	Image     string    `gorm:"column:image;not null;default:''" json:"image"`
	Stock     int       `gorm:"column:stock;not null;default:0" json:"stock"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
