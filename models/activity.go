package models

import "time"

type Activity struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	TripID      uint      `gorm:"not null;index" json:"trip_id"`
	Trip        Trip      `gorm:"foreignKey:TripID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Username    string    `gorm:"not null;size:255" json:"username"`
	Type        string    `gorm:"not null;size:30" json:"type"` // person_added, expense_added, expense_updated, expense_deleted, editor_added, editor_removed
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
