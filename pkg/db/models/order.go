package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/peacein/brewpoint-backend/pkg/enums"
	"github.com/peacein/brewpoint-backend/pkg/types"
)

// Order is the durable record of a successful placement. Items is a jsonb
// snapshot of the resolved lines taken at reservation time; later catalog
// edits never alter it.
type Order struct {
	ID          uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Items       types.OrderLines  `gorm:"column:items;type:jsonb;not null" json:"items"`
	TotalAmount int               `gorm:"column:total_amount;not null" json:"totalAmount"`
	Status      enums.OrderStatus `gorm:"column:status;not null;default:'pending'" json:"status"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
