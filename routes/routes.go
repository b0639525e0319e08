// File: /routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"notedefrais-api/config"
	"notedefrais-api/controllers"
	"notedefrais-api/middleware"
	"notedefrais-api/services"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, emailService *services.EmailService) {
	// Controllers
	authController := controllers.NewAuthController(db, cfg.JWTSecret, emailService)
	userController := controllers.NewUserController(db)
	tripController := controllers.NewTripController(db)
	expenseController := controllers.NewExpenseController(db, cfg.UploadDir)
	rateController := controllers.NewRateController(db)
	reportController := controllers.NewReportController(db, services.NewExportService())
	calculatorController := controllers.NewCalculatorController(db)
	worksiteController := controllers.NewWorksiteController(db)
	referenceController := controllers.NewReferenceController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// API version 1
	v1 := r.Group("/api/v1")

	// Auth routes (public)
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/register", authController.Register)
		auth.POST("/logout", authController.Logout)
		auth.POST("/send-verification", authController.SendVerification)
		auth.POST("/verify-code", authController.VerifyCode)
		auth.POST("/reset-password", authController.ResetPassword)

		// Verification codes must never leak outside local development
		if gin.Mode() == gin.DebugMode {
			auth.GET("/debug/verification-code", authController.GetVerificationCode)
		}
	}

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		// User routes
		users := protected.Group("/users")
		{
			users.GET("/profile", userController.GetProfile)
			users.PUT("/profile", userController.UpdateProfile)
			users.GET("/statistics", userController.GetStatistics)
		}

		// Trip routes
		trips := protected.Group("/trips")
		{
			trips.GET("/", tripController.GetTrips)
			trips.POST("/", tripController.CreateTrip)
			trips.GET("/:id", tripController.GetTrip)
			trips.PUT("/:id", tripController.UpdateTrip)
			trips.DELETE("/:id", tripController.DeleteTrip)
			trips.GET("/:id/total", tripController.GetTripTotal)
			trips.POST("/:id/expenses", expenseController.CreateExpense)
		}

		// Expense routes
		expenses := protected.Group("/expenses")
		{
			expenses.PUT("/:id", expenseController.UpdateExpense)
			expenses.DELETE("/:id", expenseController.DeleteExpense)
			expenses.POST("/:id/receipt", expenseController.UploadReceipt)
		}

		// Rate routes
		rates := protected.Group("/rates")
		{
			rates.GET("/vehicle-rules", rateController.GetVehicleRules)
			rates.POST("/vehicle-rules", rateController.CreateVehicleRule)
			rates.PUT("/vehicle-rules/:id", rateController.UpdateVehicleRule)
			rates.DELETE("/vehicle-rules/:id", rateController.DeleteVehicleRule)

			rates.GET("/mission", rateController.GetMissionRates)
			rates.POST("/mission", rateController.CreateMissionRate)

			rates.GET("/kilometric/user", rateController.GetUserKilometricRates)
			rates.POST("/kilometric/user", rateController.CreateUserKilometricRate)
			rates.GET("/kilometric/resolved", rateController.GetResolvedKilometricRate)

			// Approval decisions are manager territory
			manager := rates.Group("/")
			manager.Use(middleware.ManagerOnly())
			{
				manager.PUT("/mission/:id/approve", rateController.ApproveMissionRate)
				manager.PUT("/mission/:id/reject", rateController.RejectMissionRate)
				manager.GET("/kilometric/role", rateController.GetRoleKilometricRates)
				manager.POST("/kilometric/role", rateController.CreateRoleKilometricRate)
				manager.PUT("/kilometric/user/:id/approve", rateController.ApproveUserKilometricRate)
				manager.PUT("/kilometric/user/:id/reject", rateController.RejectUserKilometricRate)
				manager.PUT("/kilometric/role/:id/approve", rateController.ApproveRoleKilometricRate)
				manager.PUT("/kilometric/role/:id/reject", rateController.RejectRoleKilometricRate)
			}
		}

		// Monthly report routes
		reports := protected.Group("/reports")
		{
			reports.GET("/monthly", reportController.GetMonthlyReport)
			reports.GET("/monthly/csv", reportController.ExportMonthlyCSV)
			reports.GET("/monthly/pdf", reportController.ExportMonthlyPDF)
		}

		// Calculator routes
		calculator := protected.Group("/calculator")
		{
			calculator.POST("/preview", calculatorController.PreviewTrip)
			calculator.GET("/suggest-rule", calculatorController.SuggestRule)
		}

		// Worksite routes
		worksites := protected.Group("/worksites")
		{
			worksites.GET("/", worksiteController.GetWorksites)
			worksites.POST("/", middleware.ManagerOnly(), worksiteController.CreateWorksite)
			worksites.PUT("/:id", middleware.ManagerOnly(), worksiteController.UpdateWorksite)
			worksites.DELETE("/:id", middleware.ManagerOnly(), worksiteController.DeleteWorksite)
		}

		// Reference data routes
		travelTypes := protected.Group("/travel-types")
		{
			travelTypes.GET("/", referenceController.GetTravelTypes)
			travelTypes.POST("/", middleware.ManagerOnly(), referenceController.CreateTravelType)
			travelTypes.PUT("/:id", middleware.ManagerOnly(), referenceController.UpdateTravelType)
			travelTypes.DELETE("/:id", middleware.ManagerOnly(), referenceController.DeleteTravelType)
		}

		expenseTypes := protected.Group("/expense-types")
		{
			expenseTypes.GET("/", referenceController.GetExpenseTypes)
			expenseTypes.POST("/", middleware.ManagerOnly(), referenceController.CreateExpenseType)
			expenseTypes.PUT("/:id", middleware.ManagerOnly(), referenceController.UpdateExpenseType)
			expenseTypes.DELETE("/:id", middleware.ManagerOnly(), referenceController.DeleteExpenseType)
		}
	}
}
