package api

import (
	"net/http"

	"fitlog/workout-tracker/internal/repository"
	"fitlog/workout-tracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	tokenRepo repository.TokenRepository,
	loginLimiter *LoginRateLimiter,
	authService service.AuthService,
	workoutService service.WorkoutService,
	exerciseService service.ExerciseService,
	profileService service.ProfileService,
) {

	authHandler := NewAuthHandler(authService)
	workoutHandler := NewWorkoutHandler(workoutService)
	exerciseHandler := NewExerciseHandler(exerciseService)
	profileHandler := NewProfileHandler(profileService)

	authMiddleware := AuthMiddleware(jwtSecret, tokenRepo)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			// Credential endpoints are rate limited per client to slow
			// down brute-force attempts.
			authGroup.POST("/register", loginLimiter.Middleware(), authHandler.Register)
			authGroup.POST("/login", loginLimiter.Middleware(), authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.POST("/auth/logout", authHandler.Logout)

		protected.GET("/me", currentUser)

		// --- Workout Routes ---
		workoutGroup := protected.Group("/workouts")
		{
			workoutGroup.GET("", workoutHandler.ListWorkouts)
			workoutGroup.POST("", workoutHandler.CreateWorkout)
			workoutGroup.GET("/:id", workoutHandler.GetWorkout)
			workoutGroup.PUT("/:id", workoutHandler.UpdateWorkout)
			workoutGroup.DELETE("/:id", workoutHandler.DeleteWorkout)

			// Exercises nested under their workout
			workoutGroup.GET("/:id/exercises", exerciseHandler.ListExercises)
			workoutGroup.POST("/:id/exercises", exerciseHandler.CreateExercise)
		}

		// --- Exercise Routes (by exercise id) ---
		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.PUT("/:id", exerciseHandler.UpdateExercise)
			exerciseGroup.DELETE("/:id", exerciseHandler.DeleteExercise)
		}

		// --- Profile Routes ---
		profileGroup := protected.Group("/profile")
		{
			profileGroup.GET("", profileHandler.GetProfile)
			profileGroup.GET("/stats", profileHandler.GetStats)
			profileGroup.POST("/avatar", profileHandler.RequestAvatarUpload)
		}
	}
}

// currentUser echoes the identity the auth middleware resolved from the
// request's token. A missing identity maps to 401 like everywhere else.
func currentUser(c *gin.Context) {
	userIDStr, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}
	c.JSON(http.StatusOK, gin.H{"userId": userIDStr})
}
