package middleware

import (
	"github.com/gin-gonic/gin"

	"tripsplit-backend/database"
	"tripsplit-backend/models"
	"tripsplit-backend/utils"
)

// The Authorization header carries the raw signed token, no scheme prefix.
func authenticate(c *gin.Context) (*utils.Claims, bool) {
	token := c.GetHeader("Authorization")
	if token == "" {
		return nil, false
	}

	claims, err := utils.ParseToken(token)
	if err != nil {
		return nil, false
	}

	c.Set(ctxClaims, claims)
	return claims, true
}

func isEditor(tripID uint, username string) bool {
	var count int64
	database.DB.Model(&models.TripEditor{}).
		Joins("JOIN users ON users.id = trip_editors.user_id").
		Where("trip_editors.trip_id = ? AND users.username = ?", tripID, username).
		Count(&count)
	return count > 0
}

func isCreator(claims *utils.Claims, trip models.Trip) bool {
	return claims.Username == trip.CreatedBy || claims.OwnsTrip(trip.ID)
}

// RestrictedByUser passes only when the token's username matches the
// :username path parameter. Runs after ResolveUser.
func RestrictedByUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := authenticate(c)
		if !ok || claims.Username != c.Param("username") {
			utils.InvalidCredentials(c)
			return
		}
		c.Next()
	}
}

// RestrictedByTrip passes for the trip's creator — matched either against the
// live created_by value or the token's ownership snapshot — and for its
// registered editors. Runs after a resolver has attached the trip.
func RestrictedByTrip() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := authenticate(c)
		if !ok {
			utils.InvalidCredentials(c)
			return
		}

		trip, ok := TripFromContext(c)
		if !ok {
			utils.NotFound(c)
			return
		}

		if isCreator(claims, trip) || isEditor(trip.ID, claims.Username) {
			c.Next()
			return
		}
		utils.InvalidCredentials(c)
	}
}

// RestrictedByTripAdmin passes for the trip's creator only. Editors cannot
// manage the editor list.
func RestrictedByTripAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := authenticate(c)
		if !ok {
			utils.InvalidCredentials(c)
			return
		}

		trip, ok := TripFromContext(c)
		if !ok {
			utils.NotFound(c)
			return
		}

		if isCreator(claims, trip) {
			c.Next()
			return
		}
		utils.InvalidCredentials(c)
	}
}
