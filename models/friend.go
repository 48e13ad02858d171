package models

// Friend is a directed edge between two users.
type Friend struct {
	UserID   uint `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	FriendID uint `gorm:"primaryKey;autoIncrement:false" json:"friend_id"`
	User     User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Target   User `gorm:"foreignKey:FriendID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

type AddFriendRequest struct {
	FriendID uint `json:"friend_id" binding:"required"`
}
