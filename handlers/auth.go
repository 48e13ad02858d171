package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"tripsplit-backend/database"
	"tripsplit-backend/models"
	"tripsplit-backend/utils"
)

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Photo    string `json:"photo"`
	Email    string `json:"email"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /api/auth/register
func Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c)
		return
	}

	// An existing username is a conflict, reported with 200 rather than 409
	var existing models.User
	err := database.DB.Where("username = ?", req.Username).First(&existing).Error
	if err == nil {
		utils.IDConflict(c)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.ServerError(c)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.ServerError(c)
		return
	}

	user := models.User{
		Username: req.Username,
		Password: string(hashed),
		Photo:    req.Photo,
		Email:    req.Email,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		utils.ServerError(c)
		return
	}

	c.JSON(http.StatusCreated, user.ToResponse())
}

// POST /api/auth/login
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c)
		return
	}

	var user models.User
	if err := database.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		utils.InvalidCredentials(c)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		utils.InvalidCredentials(c)
		return
	}

	// The token embeds a snapshot of the trips this user created. Trips made
	// after login stay outside the snapshot until the next login.
	var tripIDs []uint
	if err := database.DB.Model(&models.Trip{}).
		Where("user_id = ?", user.ID).
		Pluck("id", &tripIDs).Error; err != nil {
		utils.ServerError(c)
		return
	}

	token, err := utils.GenerateToken(user.Username, tripIDs)
	if err != nil {
		utils.ServerError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
