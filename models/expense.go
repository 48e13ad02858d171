package models

type Expense struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	Name     string  `gorm:"not null;size:255" json:"name"`
	Amount   float64 `gorm:"type:decimal(12,2);not null" json:"amount"`
	TripID   uint    `gorm:"not null;index" json:"trip_id"`
	PersonID uint    `gorm:"not null" json:"person_id"`
	Trip     Trip    `gorm:"foreignKey:TripID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Person   Person  `gorm:"foreignKey:PersonID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

// Request structs
type CreateExpenseRequest struct {
	Name     string  `json:"name" binding:"required"`
	Amount   float64 `json:"amount" binding:"required,gt=0"`
	PersonID uint    `json:"person_id" binding:"required"`
}

type UpdateExpenseRequest struct {
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	PersonID uint    `json:"person_id"`
}

// ExpenseView is an expense as embedded in the trip aggregate, denormalized
// with the payer's name and the expense's debts.
type ExpenseView struct {
	ID         uint       `json:"id"`
	Name       string     `json:"name"`
	PersonID   uint       `json:"person_id"`
	Amount     float64    `json:"amount"`
	PersonName string     `json:"person_name"`
	Debts      []DebtView `json:"debts"`
}
