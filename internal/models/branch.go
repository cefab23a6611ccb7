package models

import "time"

type Branch struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"size:100;not null" json:"name"`
	Address string `gorm:"size:255" json:"address"`
	Phone   string `gorm:"size:20" json:"phone"`

	// Optional per-branch override of the default business window,
	// stored as "15:04". Empty means the configured default applies.
	OpenTime  string `gorm:"size:5" json:"open_time"`
	CloseTime string `gorm:"size:5" json:"close_time"`

	Timezone string `gorm:"size:50" json:"timezone"`
	Active   bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
