package models

type Person struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	FirstName string `gorm:"not null;size:255" json:"first_name"`
	LastName  string `gorm:"size:255" json:"last_name,omitempty"`
	TripID    uint   `gorm:"not null;index" json:"trip_id"`
	UserID    *uint  `json:"user_id,omitempty"`
	Trip      Trip   `gorm:"foreignKey:TripID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	User      *User  `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

// FullName is "first last" when a last name exists, else just the first name.
// Used for expense payers and debt owers alike.
func (p *Person) FullName() string {
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// Request structs
type CreatePersonRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name"`
	UserID    *uint  `json:"user_id"`
}

type UpdatePersonRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	UserID    *uint  `json:"user_id"`
}
