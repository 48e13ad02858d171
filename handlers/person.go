package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"tripsplit-backend/database"
	"tripsplit-backend/middleware"
	"tripsplit-backend/models"
	"tripsplit-backend/services"
	"tripsplit-backend/utils"
)

// GET /api/people/:id
func GetPerson(c *gin.Context) {
	person, ok := middleware.PersonFromContext(c)
	if !ok {
		utils.NotFound(c)
		return
	}

	c.JSON(http.StatusOK, person)
}

// PUT /api/people/:id
func UpdatePerson(c *gin.Context) {
	person, ok := middleware.PersonFromContext(c)
	if !ok {
		utils.NotFound(c)
		return
	}

	var req models.UpdatePersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c)
		return
	}

	updates := map[string]interface{}{}
	if req.FirstName != "" {
		updates["first_name"] = req.FirstName
	}
	if req.LastName != "" {
		updates["last_name"] = req.LastName
	}
	if req.UserID != nil {
		updates["user_id"] = *req.UserID
	}

	var count int64
	if len(updates) > 0 {
		res := database.DB.Model(&models.Person{}).Where("id = ?", person.ID).Updates(updates)
		if res.Error != nil {
			utils.ServerError(c)
			return
		}
		count = res.RowsAffected
	}

	services.InvalidateTrip(c.Request.Context(), person.TripID)
	c.JSON(http.StatusOK, gin.H{"updated": count})
}

// DELETE /api/people/:id
//
// Removing a person also removes the expenses they paid and every debt row
// that references them, inside one transaction.
func DeletePerson(c *gin.Context) {
	person, ok := middleware.PersonFromContext(c)
	if !ok {
		utils.NotFound(c)
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var expenseIDs []uint
		if err := tx.Model(&models.Expense{}).
			Where("person_id = ?", person.ID).
			Pluck("id", &expenseIDs).Error; err != nil {
			return err
		}
		if len(expenseIDs) > 0 {
			if err := tx.Where("expense_id IN ?", expenseIDs).Delete(&models.Debt{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("person_id = ?", person.ID).Delete(&models.Debt{}).Error; err != nil {
			return err
		}
		if err := tx.Where("person_id = ?", person.ID).Delete(&models.Expense{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Person{}, person.ID).Error
	})
	if err != nil {
		utils.ServerError(c)
		return
	}

	services.InvalidateTrip(c.Request.Context(), person.TripID)
	c.JSON(http.StatusOK, gin.H{"deleted": 1})
}
