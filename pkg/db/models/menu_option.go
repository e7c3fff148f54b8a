package models

import "time"

// MenuOption is a configurable add-on (extra shot, syrup) with a per-unit
// surcharge. Options live in their own table so new add-ons never touch the
// placement engine.
type MenuOption struct {
	Key       string    `gorm:"column:key;primaryKey" json:"key"`
	Label     string    `gorm:"column:label;not null" json:"label"`
	Surcharge int       `gorm:"column:surcharge;not null" json:"surcharge"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}
