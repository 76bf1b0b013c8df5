package api

import (
	"alcyxob/fitcoach/internal/domain"
	"alcyxob/fitcoach/internal/notify"
	"alcyxob/fitcoach/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Services bundles what the HTTP layer serves.
type Services struct {
	Auth     service.AuthService
	Trainer  service.TrainerService
	Exercise service.ExerciseService
	Training service.TrainingService
	Routine  service.RoutineService
}

func SetupRoutes(router *gin.Engine, jwtSecret string, svc Services, hub *notify.Hub) {
	authHandler := NewAuthHandler(svc.Auth)
	studentHandler := NewStudentHandler(svc.Trainer)
	exerciseHandler := NewExerciseHandler(svc.Exercise)
	trainingHandler := NewTrainingHandler(svc.Training)
	routineHandler := NewRoutineHandler(svc.Routine)

	authMiddleware := AuthMiddleware(jwtSecret)
	trainerOnly := RoleMiddleware(domain.RoleTrainer)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", authHandler.Me)

		if hub != nil {
			protected.GET("/ws", NewNotificationHandler(hub).Connect)
		}

		// --- Students ---
		trainerApiGroup := protected.Group("/trainer")
		trainerApiGroup.Use(trainerOnly)
		{
			trainerApiGroup.POST("/students", studentHandler.AddStudentByEmail)
			trainerApiGroup.GET("/students", studentHandler.GetStudents)
		}

		// --- Exercise catalog ---
		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.POST("", trainerOnly, exerciseHandler.CreateExercise)
			exerciseGroup.GET("", trainerOnly, exerciseHandler.GetTrainerExercises)
			exerciseGroup.DELETE("/:id", trainerOnly, exerciseHandler.DeleteExercise)
			exerciseGroup.POST("/:id/media", trainerOnly, exerciseHandler.RequestMediaUpload)
			exerciseGroup.GET("/:id/media", exerciseHandler.GetMediaURL)
		}

		// --- Trainings ---
		protected.GET("/trainers/:id/trainings", trainerOnly, trainingHandler.GetLibrary)
		trainingGroup := protected.Group("/trainings")
		{
			trainingGroup.POST("", trainerOnly, trainingHandler.CreateTraining)
			trainingGroup.GET("/:id", trainingHandler.GetTraining)
			trainingGroup.DELETE("/:id", trainerOnly, trainingHandler.DeleteTraining)
			trainingGroup.GET("/:id/exercises", trainingHandler.GetExerciseDefaults)
			trainingGroup.POST("/:id/exercises", trainerOnly, trainingHandler.AddExerciseDefault)
		}

		// --- Routines ---
		routineGroup := protected.Group("/routines")
		{
			routineGroup.GET("", routineHandler.ListRoutines)
			routineGroup.POST("", trainerOnly, routineHandler.CreateRoutine)
			routineGroup.GET("/:id", routineHandler.GetRoutine)
			routineGroup.DELETE("/:id", trainerOnly, routineHandler.DeleteRoutine)
			routineGroup.GET("/:id/trainings", routineHandler.ListRoutineTrainings)
		}
		linkGroup := protected.Group("/routine-trainings")
		{
			linkGroup.POST("", trainerOnly, routineHandler.CreateRoutineTraining)
			linkGroup.DELETE("/:id", trainerOnly, routineHandler.DeleteRoutineTraining)
			linkGroup.GET("/:id/exercises", routineHandler.ResolveExercises)
		}
	}
}
