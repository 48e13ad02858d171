package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"tripsplit-backend/database"
	"tripsplit-backend/middleware"
	"tripsplit-backend/models"
	"tripsplit-backend/services"
	"tripsplit-backend/utils"
)

// GET /api/trips/:id
func GetTrip(c *gin.Context) {
	trip, ok := middleware.TripFromContext(c)
	if !ok {
		utils.NotFound(c)
		return
	}

	view, err := services.FullTrip(c.Request.Context(), trip.ID)
	if err != nil {
		utils.ServerError(c)
		return
	}
	if view == nil {
		utils.NotFound(c)
		return
	}

	c.JSON(http.StatusOK, view)
}

// PUT /api/trips/:id
func UpdateTrip(c *gin.Context) {
	trip, ok := middleware.TripFromContext(c)
	if !ok {
		utils.NotFound(c)
		return
	}

	var req models.UpdateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c)
		return
	}

	updates := map[string]interface{}{}
	if req.Destination != "" {
		updates["destination"] = req.Destination
	}
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			utils.BadRequest(c)
			return
		}
		updates["date"] = parsed
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}

	var count int64
	if len(updates) > 0 {
		res := database.DB.Model(&models.Trip{}).Where("id = ?", trip.ID).Updates(updates)
		if res.Error != nil {
			utils.ServerError(c)
			return
		}
		count = res.RowsAffected
	}

	services.InvalidateTrip(c.Request.Context(), trip.ID)
	c.JSON(http.StatusOK, gin.H{"updated": count})
}

// DELETE /api/trips/:id
//
// Removes the trip and everything under it in one transaction, rather than
// leaning on the store's FK cascade alone.
func DeleteTrip(c *gin.Context) {
	trip, ok := middleware.TripFromContext(c)
	if !ok {
		utils.NotFound(c)
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var expenseIDs []uint
		if err := tx.Model(&models.Expense{}).
			Where("trip_id = ?", trip.ID).
			Pluck("id", &expenseIDs).Error; err != nil {
			return err
		}
		if len(expenseIDs) > 0 {
			if err := tx.Where("expense_id IN ?", expenseIDs).Delete(&models.Debt{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("trip_id = ?", trip.ID).Delete(&models.Expense{}).Error; err != nil {
			return err
		}
		if err := tx.Where("trip_id = ?", trip.ID).Delete(&models.Person{}).Error; err != nil {
			return err
		}
		if err := tx.Where("trip_id = ?", trip.ID).Delete(&models.TripEditor{}).Error; err != nil {
			return err
		}
		if err := tx.Where("trip_id = ?", trip.ID).Delete(&models.Activity{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Trip{}, trip.ID).Error
	})
	if err != nil {
		utils.ServerError(c)
		return
	}

	services.InvalidateTrip(c.Request.Context(), trip.ID)
	c.JSON(http.StatusOK, gin.H{"deleted": 1})
}

// POST /api/trips/:id/people
func AddPerson(c *gin.Context) {
	trip, ok := middleware.TripFromContext(c)
	if !ok {
		utils.NotFound(c)
		return
	}

	var req models.CreatePersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c)
		return
	}

	person := models.Person{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		TripID:    trip.ID,
		UserID:    req.UserID,
	}
	if err := database.DB.Create(&person).Error; err != nil {
		utils.ServerError(c)
		return
	}

	logActivity(c, trip.ID, "person_added",
		fmt.Sprintf("%s joined %s", person.FullName(), tripName(trip)))
	services.InvalidateTrip(c.Request.Context(), trip.ID)

	c.JSON(http.StatusCreated, gin.H{"id": person.ID})
}

// POST /api/trips/:id/expenses
func AddExpense(c *gin.Context) {
	trip, ok := middleware.TripFromContext(c)
	if !ok {
		utils.NotFound(c)
		return
	}

	var req models.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c)
		return
	}

	// The payer must be a person on this trip
	if !personOnTrip(req.PersonID, trip.ID) {
		utils.BadRequest(c)
		return
	}

	expense := models.Expense{
		Name:     req.Name,
		Amount:   utils.RoundToTwo(req.Amount),
		TripID:   trip.ID,
		PersonID: req.PersonID,
	}
	if err := database.DB.Create(&expense).Error; err != nil {
		utils.ServerError(c)
		return
	}

	actor := currentUsername(c)
	logActivity(c, trip.ID, "expense_added",
		fmt.Sprintf("%s added \"%s\" (%.2f)", actor, expense.Name, expense.Amount))
	services.InvalidateTrip(c.Request.Context(), trip.ID)
	go services.NotifyExpenseAdded(trip, expense, actor)

	c.JSON(http.StatusCreated, gin.H{"id": expense.ID})
}

// POST /api/trips/:id/editors
func AddEditor(c *gin.Context) {
	trip, ok := middleware.TripFromContext(c)
	if !ok {
		utils.NotFound(c)
		return
	}

	var req models.AddEditorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c)
		return
	}

	// The creator is never also an editor
	if req.Username == trip.CreatedBy {
		utils.BadRequest(c)
		return
	}

	var editor models.User
	if err := database.DB.Where("username = ?", req.Username).First(&editor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c)
			return
		}
		utils.ServerError(c)
		return
	}

	row := models.TripEditor{UserID: editor.ID, TripID: trip.ID}
	var existing models.TripEditor
	err := database.DB.
		Where("user_id = ? AND trip_id = ?", editor.ID, trip.ID).
		First(&existing).Error
	if err == nil {
		// Already an editor, nothing to write
		c.JSON(http.StatusOK, row)
		return
	}

	if err := database.DB.Create(&row).Error; err != nil {
		utils.ServerError(c)
		return
	}

	inviter := currentUsername(c)
	logActivity(c, trip.ID, "editor_added",
		fmt.Sprintf("%s made %s an editor", inviter, editor.Username))
	services.InvalidateTrip(c.Request.Context(), trip.ID)
	go services.SendEditorInvite(editor, inviter, trip)
	go services.NotifyEditorAdded(editor, inviter, trip)

	c.JSON(http.StatusCreated, row)
}

// DELETE /api/trips/:id/editors/:editorId
func RemoveEditor(c *gin.Context) {
	trip, ok := middleware.TripFromContext(c)
	if !ok {
		utils.NotFound(c)
		return
	}

	editorID, err := utils.ParseID(c.Param("editorId"))
	if err != nil {
		utils.BadRequest(c)
		return
	}

	res := database.DB.
		Where("user_id = ? AND trip_id = ?", editorID, trip.ID).
		Delete(&models.TripEditor{})
	if res.Error != nil {
		utils.ServerError(c)
		return
	}
	if res.RowsAffected == 0 {
		utils.NotFound(c)
		return
	}

	logActivity(c, trip.ID, "editor_removed",
		fmt.Sprintf("%s removed an editor", currentUsername(c)))
	services.InvalidateTrip(c.Request.Context(), trip.ID)

	c.JSON(http.StatusOK, gin.H{"deleted": res.RowsAffected})
}

// GET /api/trips/:id/activity
func GetTripActivity(c *gin.Context) {
	trip, ok := middleware.TripFromContext(c)
	if !ok {
		utils.NotFound(c)
		return
	}

	var pagination utils.PaginationQuery
	c.ShouldBindQuery(&pagination)

	var activities []models.Activity
	database.DB.Where("trip_id = ?", trip.ID).
		Order("created_at DESC, id DESC").
		Offset(pagination.Offset()).
		Limit(pagination.Limit).
		Find(&activities)

	if activities == nil {
		activities = []models.Activity{}
	}
	c.JSON(http.StatusOK, activities)
}

// Helpers

func currentUsername(c *gin.Context) string {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		return ""
	}
	return claims.Username
}

func personOnTrip(personID, tripID uint) bool {
	var count int64
	database.DB.Model(&models.Person{}).
		Where("id = ? AND trip_id = ?", personID, tripID).
		Count(&count)
	return count > 0
}

func tripName(trip models.Trip) string {
	if trip.Destination == "" {
		return "the trip"
	}
	return trip.Destination
}

func logActivity(c *gin.Context, tripID uint, kind, description string) {
	database.DB.Create(&models.Activity{
		TripID:      tripID,
		Username:    currentUsername(c),
		Type:        kind,
		Description: description,
	})
}
