package api

import (
	"net/http"

	"gymdesk/gym-app/internal/domain"
	"gymdesk/gym-app/internal/service"

	"github.com/gin-gonic/gin"
)

// SetupRoutes wires the role-prefixed route groups. Each protected group
// runs the auth gate first, then a role gate; trainer routes admit admin as
// a universal override.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	adminService service.AdminService,
	memberService service.MemberService,
	trainerService service.TrainerService,
) {
	authHandler := NewAuthHandler(authService)
	adminHandler := NewAdminHandler(adminService)
	memberHandler := NewMemberHandler(memberService)
	trainerHandler := NewTrainerHandler(trainerService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	api := router.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
	}

	// Plan listing is public.
	api.GET("/member/plans", memberHandler.GetPlans)

	protected := api.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userIDStr, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			role, _ := getUserRoleFromContext(c)
			c.JSON(http.StatusOK, gin.H{"userId": userIDStr, "role": role})
		})

		adminGroup := protected.Group("/admin")
		adminGroup.Use(RoleMiddleware(domain.RoleAdmin))
		{
			adminGroup.GET("/stats", adminHandler.GetStats)
			adminGroup.GET("/members", adminHandler.GetMembers)
			adminGroup.PUT("/member/:id", adminHandler.UpdateMemberStatus)
			adminGroup.GET("/equipment", adminHandler.GetEquipment)
			adminGroup.POST("/equipment", adminHandler.AddEquipment)
			adminGroup.PUT("/equipment/:id", adminHandler.UpdateEquipment)
			adminGroup.POST("/equipment/:id/photo-url", adminHandler.RequestEquipmentPhotoUpload)
			adminGroup.GET("/equipment/:id/photo-url", adminHandler.GetEquipmentPhotoURL)
			adminGroup.POST("/plans", adminHandler.CreatePlan)
		}

		memberGroup := protected.Group("/member")
		{
			memberGroup.POST("/purchase", memberHandler.PurchasePlan)
			memberGroup.POST("/check-in", memberHandler.MarkAttendance)
			memberGroup.POST("/workout", memberHandler.LogWorkout)
			memberGroup.GET("/workouts", memberHandler.GetWorkouts)
			memberGroup.GET("/diets", memberHandler.GetDiets)
		}

		trainerGroup := protected.Group("/trainer")
		trainerGroup.Use(RoleMiddleware(domain.RoleTrainer, domain.RoleAdmin))
		{
			trainerGroup.GET("/clients", trainerHandler.GetClients)
			trainerGroup.POST("/diet", trainerHandler.AssignDiet)
			trainerGroup.GET("/client/:id/progress", trainerHandler.GetClientProgress)
		}
	}
}
