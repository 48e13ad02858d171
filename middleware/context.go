package middleware

import (
	"github.com/gin-gonic/gin"

	"tripsplit-backend/models"
	"tripsplit-backend/utils"
)

// Keys under which resolvers and guards stash request-scoped values.
const (
	ctxClaims  = "claims"
	ctxUser    = "user"
	ctxTrip    = "trip"
	ctxPerson  = "person"
	ctxExpense = "expense"
	ctxDebt    = "debt"
)

func ClaimsFromContext(c *gin.Context) (*utils.Claims, bool) {
	v, ok := c.Get(ctxClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*utils.Claims)
	return claims, ok
}

func UserFromContext(c *gin.Context) (models.User, bool) {
	v, ok := c.Get(ctxUser)
	if !ok {
		return models.User{}, false
	}
	user, ok := v.(models.User)
	return user, ok
}

func TripFromContext(c *gin.Context) (models.Trip, bool) {
	v, ok := c.Get(ctxTrip)
	if !ok {
		return models.Trip{}, false
	}
	trip, ok := v.(models.Trip)
	return trip, ok
}

func PersonFromContext(c *gin.Context) (models.Person, bool) {
	v, ok := c.Get(ctxPerson)
	if !ok {
		return models.Person{}, false
	}
	person, ok := v.(models.Person)
	return person, ok
}

func ExpenseFromContext(c *gin.Context) (models.Expense, bool) {
	v, ok := c.Get(ctxExpense)
	if !ok {
		return models.Expense{}, false
	}
	expense, ok := v.(models.Expense)
	return expense, ok
}

func DebtFromContext(c *gin.Context) (models.Debt, bool) {
	v, ok := c.Get(ctxDebt)
	if !ok {
		return models.Debt{}, false
	}
	debt, ok := v.(models.Debt)
	return debt, ok
}
