package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tripsplit-backend/database"
	"tripsplit-backend/middleware"
	"tripsplit-backend/models"
	"tripsplit-backend/services"
	"tripsplit-backend/utils"
)

// PUT /api/expenses/:id
func UpdateExpense(c *gin.Context) {
	expense, ok := middleware.ExpenseFromContext(c)
	if !ok {
		utils.NotFound(c)
		return
	}

	var req models.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c)
		return
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Amount > 0 {
		updates["amount"] = utils.RoundToTwo(req.Amount)
	}
	if req.PersonID > 0 {
		// The payer must stay on the expense's trip
		if !personOnTrip(req.PersonID, expense.TripID) {
			utils.BadRequest(c)
			return
		}
		updates["person_id"] = req.PersonID
	}

	var count int64
	if len(updates) > 0 {
		res := database.DB.Model(&models.Expense{}).Where("id = ?", expense.ID).Updates(updates)
		if res.Error != nil {
			utils.ServerError(c)
			return
		}
		count = res.RowsAffected
	}

	logActivity(c, expense.TripID, "expense_updated",
		fmt.Sprintf("%s updated \"%s\"", currentUsername(c), expense.Name))
	services.InvalidateTrip(c.Request.Context(), expense.TripID)

	c.JSON(http.StatusOK, gin.H{"updated": count})
}

// DELETE /api/expenses/:id
func DeleteExpense(c *gin.Context) {
	expense, ok := middleware.ExpenseFromContext(c)
	if !ok {
		utils.NotFound(c)
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("expense_id = ?", expense.ID).Delete(&models.Debt{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Expense{}, expense.ID).Error
	})
	if err != nil {
		utils.ServerError(c)
		return
	}

	logActivity(c, expense.TripID, "expense_deleted",
		fmt.Sprintf("%s deleted \"%s\" (%.2f)", currentUsername(c), expense.Name, expense.Amount))
	services.InvalidateTrip(c.Request.Context(), expense.TripID)

	c.JSON(http.StatusOK, gin.H{"deleted": 1})
}

// POST /api/expenses/:id/debts
//
// Posting a second debt for the same (expense, person) pair updates the
// amount in place; the composite key keeps the row unique.
func AddDebt(c *gin.Context) {
	expense, ok := middleware.ExpenseFromContext(c)
	if !ok {
		utils.NotFound(c)
		return
	}

	var req models.AddDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c)
		return
	}

	// The ower must be a person on the expense's trip
	if !personOnTrip(req.PersonID, expense.TripID) {
		utils.BadRequest(c)
		return
	}

	debt := models.Debt{
		ExpenseID: expense.ID,
		PersonID:  req.PersonID,
		Amount:    utils.RoundToTwo(req.Amount),
	}
	err := database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "expense_id"}, {Name: "person_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"amount"}),
	}).Create(&debt).Error
	if err != nil {
		utils.ServerError(c)
		return
	}

	services.InvalidateTrip(c.Request.Context(), expense.TripID)
	c.JSON(http.StatusCreated, debt)
}

// PUT /api/expenses/:id/debts/:personId
func UpdateDebt(c *gin.Context) {
	expense, ok := middleware.ExpenseFromContext(c)
	if !ok {
		utils.NotFound(c)
		return
	}
	debt, ok := middleware.DebtFromContext(c)
	if !ok {
		utils.NotFound(c)
		return
	}

	var req models.UpdateDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c)
		return
	}

	res := database.DB.Model(&models.Debt{}).
		Where("expense_id = ? AND person_id = ?", debt.ExpenseID, debt.PersonID).
		Update("amount", utils.RoundToTwo(req.Amount))
	if res.Error != nil {
		utils.ServerError(c)
		return
	}

	services.InvalidateTrip(c.Request.Context(), expense.TripID)
	c.JSON(http.StatusOK, gin.H{"updated": res.RowsAffected})
}

// DELETE /api/expenses/:id/debts/:personId
func DeleteDebt(c *gin.Context) {
	expense, ok := middleware.ExpenseFromContext(c)
	if !ok {
		utils.NotFound(c)
		return
	}
	debt, ok := middleware.DebtFromContext(c)
	if !ok {
		utils.NotFound(c)
		return
	}

	res := database.DB.
		Where("expense_id = ? AND person_id = ?", debt.ExpenseID, debt.PersonID).
		Delete(&models.Debt{})
	if res.Error != nil {
		utils.ServerError(c)
		return
	}

	services.InvalidateTrip(c.Request.Context(), expense.TripID)
	c.JSON(http.StatusOK, gin.H{"deleted": res.RowsAffected})
}
