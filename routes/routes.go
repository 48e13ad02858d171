package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripsplit-backend/handlers"
	"tripsplit-backend/middleware"
	"tripsplit-backend/utils"
)

// Setup builds the router with the full middleware pipeline. Every
// parameterized route runs resolver(s) first, then the access guard, then
// the handler: a missing resource is a 404 before authorization is ever
// consulted.
func Setup() *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLogger())
	r.Use(gin.CustomRecovery(func(c *gin.Context, _ interface{}) {
		utils.ServerError(c)
	}))
	r.Use(middleware.CORSMiddleware())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Online."})
	})
	r.NoRoute(func(c *gin.Context) {
		utils.NotFound(c)
	})

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", handlers.Register)
		auth.POST("/login", handlers.Login)
	}

	users := api.Group("/users/:username")
	users.Use(middleware.ResolveUser())
	{
		users.GET("", handlers.GetUser)
		users.POST("/trips", middleware.RestrictedByUser(), handlers.CreateTrip)
		users.PUT("/fcm-token", middleware.RestrictedByUser(), handlers.UpdateFCMToken)
		users.POST("/friends", middleware.RestrictedByUser(), handlers.AddFriend)
		users.DELETE("/friends/:friendId", middleware.RestrictedByUser(), handlers.DeleteFriend)
	}

	trips := api.Group("/trips/:id")
	trips.Use(middleware.ResolveTrip())
	{
		trips.GET("", middleware.RestrictedByTrip(), handlers.GetTrip)
		trips.PUT("", middleware.RestrictedByTrip(), handlers.UpdateTrip)
		trips.DELETE("", middleware.RestrictedByTrip(), handlers.DeleteTrip)
		trips.POST("/people", middleware.RestrictedByTrip(), handlers.AddPerson)
		trips.POST("/expenses", middleware.RestrictedByTrip(), handlers.AddExpense)
		trips.GET("/activity", middleware.RestrictedByTrip(), handlers.GetTripActivity)

		// Only the creator manages the editor list
		trips.POST("/editors", middleware.RestrictedByTripAdmin(), handlers.AddEditor)
		trips.DELETE("/editors/:editorId", middleware.RestrictedByTripAdmin(), handlers.RemoveEditor)
	}

	people := api.Group("/people/:id")
	people.Use(middleware.ResolvePerson(), middleware.RestrictedByTrip())
	{
		people.GET("", handlers.GetPerson)
		people.PUT("", handlers.UpdatePerson)
		people.DELETE("", handlers.DeletePerson)
	}

	expenses := api.Group("/expenses/:id")
	expenses.Use(middleware.ResolveExpense(), middleware.RestrictedByTrip())
	{
		expenses.PUT("", handlers.UpdateExpense)
		expenses.DELETE("", handlers.DeleteExpense)
		expenses.POST("/debts", handlers.AddDebt)
		expenses.PUT("/debts/:personId", middleware.ResolveDebt(), handlers.UpdateDebt)
		expenses.DELETE("/debts/:personId", middleware.ResolveDebt(), handlers.DeleteDebt)
	}

	return r
}
