package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"tripsplit-backend/database"
	"tripsplit-backend/middleware"
	"tripsplit-backend/models"
	"tripsplit-backend/utils"
)

type UpdateFCMTokenRequest struct {
	Token string `json:"token" binding:"required"`
}

// GET /api/users/:username
func GetUser(c *gin.Context) {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		utils.NotFound(c)
		return
	}

	view, err := buildUserView(user)
	if err != nil {
		utils.ServerError(c)
		return
	}

	c.JSON(http.StatusOK, view)
}

// POST /api/users/:username/trips
func CreateTrip(c *gin.Context) {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		utils.NotFound(c)
		return
	}

	var req models.CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c)
		return
	}

	trip := models.Trip{
		Destination: req.Destination,
		Active:      true,
		UserID:      user.ID,
	}
	if req.Active != nil {
		trip.Active = *req.Active
	}
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			utils.BadRequest(c)
			return
		}
		trip.Date = &parsed
	}

	if err := database.DB.Create(&trip).Error; err != nil {
		utils.ServerError(c)
		return
	}
	trip.CreatedBy = user.Username

	c.JSON(http.StatusCreated, trip)
}

// PUT /api/users/:username/fcm-token
func UpdateFCMToken(c *gin.Context) {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		utils.NotFound(c)
		return
	}

	var req UpdateFCMTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c)
		return
	}

	database.DB.Model(&models.User{}).Where("id = ?", user.ID).Update("fcm_token", req.Token)

	c.JSON(http.StatusOK, gin.H{"updated": 1})
}

// POST /api/users/:username/friends
func AddFriend(c *gin.Context) {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		utils.NotFound(c)
		return
	}

	var req models.AddFriendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c)
		return
	}

	// A user cannot friend themselves
	if req.FriendID == user.ID {
		utils.BadRequest(c)
		return
	}

	var target models.User
	if err := database.DB.First(&target, req.FriendID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c)
			return
		}
		utils.ServerError(c)
		return
	}

	friend := models.Friend{UserID: user.ID, FriendID: target.ID}
	var existing models.Friend
	err := database.DB.
		Where("user_id = ? AND friend_id = ?", user.ID, target.ID).
		First(&existing).Error
	if err == nil {
		// Already friends, nothing to write
		c.JSON(http.StatusOK, friend)
		return
	}

	if err := database.DB.Create(&friend).Error; err != nil {
		utils.ServerError(c)
		return
	}

	c.JSON(http.StatusCreated, friend)
}

// DELETE /api/users/:username/friends/:friendId
func DeleteFriend(c *gin.Context) {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		utils.NotFound(c)
		return
	}

	friendID, err := utils.ParseID(c.Param("friendId"))
	if err != nil {
		utils.BadRequest(c)
		return
	}

	res := database.DB.
		Where("user_id = ? AND friend_id = ?", user.ID, friendID).
		Delete(&models.Friend{})
	if res.Error != nil {
		utils.ServerError(c)
		return
	}
	if res.RowsAffected == 0 {
		utils.NotFound(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": res.RowsAffected})
}

// Helper: profile view with trips (incl. participant counts) and friends
func buildUserView(user models.User) (models.UserView, error) {
	view := models.UserView{
		ID:       user.ID,
		Username: user.Username,
		Photo:    user.Photo,
		Trips:    []models.UserTripView{},
		Friends:  []models.FriendView{},
	}

	var trips []models.Trip
	if err := database.DB.Where("user_id = ?", user.ID).Order("id").Find(&trips).Error; err != nil {
		return view, err
	}

	for _, trip := range trips {
		trip.CreatedBy = user.Username

		var numPeople int64
		if err := database.DB.Model(&models.Person{}).
			Where("trip_id = ?", trip.ID).
			Count(&numPeople).Error; err != nil {
			return view, err
		}

		view.Trips = append(view.Trips, models.UserTripView{Trip: trip, NumPeople: numPeople})
	}

	var friends []models.FriendView
	err := database.DB.
		Table("friends").
		Select("users.id, users.username").
		Joins("JOIN users ON users.id = friends.friend_id").
		Where("friends.user_id = ?", user.ID).
		Order("users.id").
		Scan(&friends).Error
	if err != nil {
		return view, err
	}
	if friends != nil {
		view.Friends = friends
	}

	return view, nil
}
