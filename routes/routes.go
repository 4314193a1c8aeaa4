package routes

import (
	"os"
	"strings"

	"billtrack-backend/config"
	"billtrack-backend/controllers"
	"billtrack-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	origins := []string{"http://localhost:3000"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		origins = strings.Split(env, ",")
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/api/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Customer routes
		users := api.Group("/users")
		{
			users.POST("", controllers.CreateCustomer)
			users.GET("", controllers.GetCustomers)
			users.GET("/stats", controllers.GetCustomerStats)
			users.GET("/:id", controllers.GetCustomer)
			users.PUT("/:id", controllers.UpdateCustomer)
			users.DELETE("/:id", controllers.DeleteCustomer)
		}

		// Bill routes
		bills := api.Group("/bills")
		{
			bills.POST("", controllers.CreateBill)
			bills.GET("", controllers.GetBills)
			bills.GET("/chart-data", controllers.GetChartData)
			bills.GET("/user/:userId", controllers.GetBillsByCustomer)
			bills.GET("/:id", controllers.GetBill)
			bills.PUT("/:id", controllers.UpdateBill)
			bills.PUT("/:id/pay", controllers.RecordPayment)
		}
	}

	return r
}
