package models

type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"uniqueIndex;not null;size:255" json:"username"`
	Password string `gorm:"not null;size:255" json:"-"`
	Photo    string `gorm:"size:255" json:"photo,omitempty"`
	Email    string `gorm:"size:255" json:"email,omitempty"`
	FCMToken string `json:"-"`
}

// Response struct (what we return to clients)
type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Photo    string `json:"photo,omitempty"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:       u.ID,
		Username: u.Username,
		Photo:    u.Photo,
	}
}

// UserView is the full profile returned by GET /api/users/:username
type UserView struct {
	ID       uint           `json:"id"`
	Username string         `json:"username"`
	Photo    string         `json:"photo,omitempty"`
	Trips    []UserTripView `json:"trips"`
	Friends  []FriendView   `json:"friends"`
}

// UserTripView is a trip as listed on a user profile, with a participant count
type UserTripView struct {
	Trip
	NumPeople int64 `json:"num_people"`
}

type FriendView struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}
