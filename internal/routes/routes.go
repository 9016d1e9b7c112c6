package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"medflow-server/internal/config"
	"medflow-server/internal/handlers"
	"medflow-server/internal/middleware"
	"medflow-server/internal/models"
	"medflow-server/internal/repositories"
	"medflow-server/internal/services"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config, log *zap.Logger) {
	store := repositories.NewStore(db)

	identityService := services.NewIdentityService(store, log)
	appointmentService := services.NewAppointmentService(store, log)
	emrService := services.NewEMRService(store, log)

	authHandler := handlers.NewAuthHandler(identityService, store, cfg)
	patientHandler := handlers.NewPatientHandler(store)
	doctorHandler := handlers.NewDoctorHandler(store)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentService)
	emrHandler := handlers.NewEMRHandler(emrService)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/signup/patient", authHandler.RegisterPatient)
			authRoutes.POST("/signup/doctor", authHandler.RegisterDoctor)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/refresh-token", authHandler.RefreshToken)
		}
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg))
	{
		authRoutesPrivate := private.Group("/auth")
		{
			authRoutesPrivate.POST("/logout", authHandler.Logout)
			authRoutesPrivate.GET("/profile", authHandler.GetProfile)
		}

		patientRoutes := private.Group("/patients")
		{
			patientRoutes.GET("", patientHandler.GetPatients)
			patientRoutes.GET("/:id", patientHandler.GetPatientByID)
			patientRoutes.PUT("/:id", middleware.RoleAuthMiddleware(models.RolePatient), patientHandler.UpdatePatient)
			patientRoutes.DELETE("/:id", middleware.RoleAuthMiddleware(models.RolePatient), patientHandler.DeletePatient)
		}

		doctorRoutes := private.Group("/doctors")
		{
			doctorRoutes.GET("", doctorHandler.GetDoctors)
			doctorRoutes.GET("/specialization", doctorHandler.GetDoctorsBySpecialization)
			doctorRoutes.GET("/:id", doctorHandler.GetDoctorByID)
			doctorRoutes.PUT("/:id", middleware.RoleAuthMiddleware(models.RoleDoctor), doctorHandler.UpdateDoctor)
			doctorRoutes.POST("/:id/availability", middleware.RoleAuthMiddleware(models.RoleDoctor), doctorHandler.ChangeAvailability)
			doctorRoutes.DELETE("/:id", middleware.RoleAuthMiddleware(models.RoleDoctor), doctorHandler.DeleteDoctor)
		}

		appointmentRoutes := private.Group("/appointments")
		{
			// Patients book for themselves; ownership is enforced in the service
			appointmentRoutes.POST("", middleware.RoleAuthMiddleware(models.RolePatient), appointmentHandler.CreateAppointment)
			appointmentRoutes.GET("", appointmentHandler.GetAppointments)
			appointmentRoutes.GET("/patient/:patientId", appointmentHandler.GetAppointmentsForPatient)
			appointmentRoutes.GET("/patient/:patientId/pending", appointmentHandler.GetPendingAppointment)
			appointmentRoutes.GET("/patient/:patientId/uncompleted", appointmentHandler.GetUncompletedAppointments)
			appointmentRoutes.GET("/:id", appointmentHandler.GetAppointmentByID)
			appointmentRoutes.PUT("/:id", middleware.RoleAuthMiddleware(models.RolePatient), appointmentHandler.UpdateAppointment)
			appointmentRoutes.DELETE("/:id", middleware.RoleAuthMiddleware(models.RolePatient), appointmentHandler.CancelAppointment)
			// Doctors drive the state machine
			appointmentRoutes.PATCH("/patient/:patientId/:appointmentId/status",
				middleware.RoleAuthMiddleware(models.RoleDoctor), appointmentHandler.SwitchAppointmentStatus)
		}

		emrRoutes := private.Group("/emr")
		{
			emrRoutes.POST("/:patientId", middleware.RoleAuthMiddleware(models.RoleDoctor), emrHandler.CreateRecord)
			emrRoutes.GET("/patient/:patientId", emrHandler.GetPatientRecords)
			emrRoutes.GET("/:patientId/:emrId", emrHandler.GetRecord)
			emrRoutes.DELETE("/:patientId/:emrId", middleware.RoleAuthMiddleware(models.RoleDoctor), emrHandler.DeleteRecord)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
