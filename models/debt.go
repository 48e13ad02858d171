package models

// Debt is one person's owed share of one expense. The composite primary key
// guarantees at most one row per (expense, person) pair.
type Debt struct {
	ExpenseID uint    `gorm:"primaryKey;autoIncrement:false" json:"expense_id"`
	PersonID  uint    `gorm:"primaryKey;autoIncrement:false" json:"person_id"`
	Amount    float64 `gorm:"type:decimal(12,2);not null" json:"amount"`
	Expense   Expense `gorm:"foreignKey:ExpenseID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Person    Person  `gorm:"foreignKey:PersonID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (Debt) TableName() string {
	return "debt"
}

// Request structs
type AddDebtRequest struct {
	PersonID uint    `json:"person_id" binding:"required"`
	Amount   float64 `json:"amount" binding:"required,gt=0"`
}

type UpdateDebtRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// DebtView is a debt denormalized with the ower's name.
type DebtView struct {
	ExpenseID  uint    `json:"expense_id"`
	PersonID   uint    `json:"person_id"`
	Amount     float64 `json:"amount"`
	PersonName string  `json:"person_name"`
}
