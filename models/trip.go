package models

import "time"

type Trip struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Destination string     `gorm:"size:255" json:"destination"`
	Date        *time.Time `gorm:"type:date" json:"date"`
	Active      bool       `gorm:"not null" json:"active"`
	UserID      uint       `gorm:"not null;index" json:"-"`
	User        User       `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	// Denormalized creator username, filled in when the trip is loaded.
	CreatedBy string `gorm:"-" json:"created_by"`
}

type TripEditor struct {
	UserID uint `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	TripID uint `gorm:"primaryKey;autoIncrement:false" json:"trip_id"`
	User   User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Trip   Trip `gorm:"foreignKey:TripID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

// Request structs
type CreateTripRequest struct {
	Destination string `json:"destination"`
	Date        string `json:"date"` // YYYY-MM-DD
	Active      *bool  `json:"active"`
}

type UpdateTripRequest struct {
	Destination string `json:"destination"`
	Date        string `json:"date"`
	Active      *bool  `json:"active"`
}

type AddEditorRequest struct {
	Username string `json:"username" binding:"required"`
}

// TripView is the fully aggregated trip returned by GET /api/trips/:id
type TripView struct {
	ID          uint          `json:"id"`
	Destination string        `json:"destination"`
	Date        *time.Time    `json:"date"`
	Active      bool          `json:"active"`
	CreatedBy   string        `json:"created_by"`
	People      []Person      `json:"people"`
	Expenses    []ExpenseView `json:"expenses"`
	Editors     []EditorView  `json:"editors"`
}

type EditorView struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}
