package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"tripsplit-backend/database"
	"tripsplit-backend/models"
	"tripsplit-backend/utils"
)

// Resolvers load the entity named by a path parameter and attach it to the
// request context, so guards and handlers never re-fetch it. They run before
// any authorization check: a missing resource is a 404 regardless of who asks.

func loadTrip(id uint) (models.Trip, error) {
	var trip models.Trip
	if err := database.DB.First(&trip, id).Error; err != nil {
		return trip, err
	}

	var creator models.User
	if err := database.DB.First(&creator, trip.UserID).Error; err != nil {
		return trip, err
	}
	trip.CreatedBy = creator.Username
	return trip, nil
}

func respondLookupError(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.NotFound(c)
		return
	}
	utils.ServerError(c)
}

// ResolveUser loads the user named by the :username parameter.
func ResolveUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.Param("username")
		if username == "" {
			utils.BadRequest(c)
			return
		}

		var user models.User
		if err := database.DB.Where("username = ?", username).First(&user).Error; err != nil {
			respondLookupError(c, err)
			return
		}

		c.Set(ctxUser, user)
		c.Next()
	}
}

// ResolveTrip loads the trip named by the :id parameter, denormalized with
// its creator's username.
func ResolveTrip() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := utils.ParseID(c.Param("id"))
		if err != nil {
			utils.BadRequest(c)
			return
		}

		trip, err := loadTrip(id)
		if err != nil {
			respondLookupError(c, err)
			return
		}

		c.Set(ctxTrip, trip)
		c.Next()
	}
}

// ResolvePerson loads the person named by the :id parameter and also resolves
// the owning trip, so trip-level authorization applies uniformly.
func ResolvePerson() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := utils.ParseID(c.Param("id"))
		if err != nil {
			utils.BadRequest(c)
			return
		}

		var person models.Person
		if err := database.DB.First(&person, id).Error; err != nil {
			respondLookupError(c, err)
			return
		}

		trip, err := loadTrip(person.TripID)
		if err != nil {
			respondLookupError(c, err)
			return
		}

		c.Set(ctxPerson, person)
		c.Set(ctxTrip, trip)
		c.Next()
	}
}

// ResolveExpense loads the expense named by the :id parameter and also
// resolves the owning trip.
func ResolveExpense() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := utils.ParseID(c.Param("id"))
		if err != nil {
			utils.BadRequest(c)
			return
		}

		var expense models.Expense
		if err := database.DB.First(&expense, id).Error; err != nil {
			respondLookupError(c, err)
			return
		}

		trip, err := loadTrip(expense.TripID)
		if err != nil {
			respondLookupError(c, err)
			return
		}

		c.Set(ctxExpense, expense)
		c.Set(ctxTrip, trip)
		c.Next()
	}
}

// ResolveDebt loads the debt row for the resolved expense and the :personId
// parameter. Runs after ResolveExpense, which already attached the trip.
func ResolveDebt() gin.HandlerFunc {
	return func(c *gin.Context) {
		expense, ok := ExpenseFromContext(c)
		if !ok {
			utils.NotFound(c)
			return
		}

		personID, err := utils.ParseID(c.Param("personId"))
		if err != nil {
			utils.BadRequest(c)
			return
		}

		var debt models.Debt
		err = database.DB.
			Where("expense_id = ? AND person_id = ?", expense.ID, personID).
			First(&debt).Error
		if err != nil {
			respondLookupError(c, err)
			return
		}

		c.Set(ctxDebt, debt)
		c.Next()
	}
}
