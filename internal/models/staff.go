package models

import "time"

type Staff struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BranchID uint   `json:"branch_id"`
	Branch   Branch `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"branch"`

	Name   string `gorm:"size:100;not null" json:"name"`
	Email  string `gorm:"size:100;uniqueIndex" json:"email"`
	Phone  string `gorm:"size:20" json:"phone"`
	Active bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StaffService links a staff member to a service they can perform.
// Whether the association constrains availability is a policy toggle.
type StaffService struct {
	ID uint `gorm:"primaryKey" json:"id"`

	StaffID   uint `gorm:"index:idx_staff_service,unique" json:"staff_id"`
	ServiceID uint `gorm:"index:idx_staff_service,unique" json:"service_id"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
