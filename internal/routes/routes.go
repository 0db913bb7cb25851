package routes

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/auth"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	domainAppointment "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	domainBarbershop "github.com/BruksfildServices01/barber-booking/internal/domain/barbershop"
	domainUser "github.com/BruksfildServices01/barber-booking/internal/domain/user"
	"github.com/BruksfildServices01/barber-booking/internal/handlers"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/seed"
	"github.com/BruksfildServices01/barber-booking/internal/snapshot"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
	ucBarbershop "github.com/BruksfildServices01/barber-booking/internal/usecase/barbershop"
	ucUser "github.com/BruksfildServices01/barber-booking/internal/usecase/user"
	"github.com/BruksfildServices01/barber-booking/internal/validators"
)

// Deps is the infrastructure the routes are built on. DB and Uploader are
// optional.
type Deps struct {
	Barbershops  domainBarbershop.Repository
	Appointments domainAppointment.Repository
	Users        domainUser.Repository
	Snapshots    snapshot.Store
	Locker       domainAppointment.SlotLocker
	Audit        *audit.Dispatcher
	Tokens       *auth.Tokens
	Log          *slog.Logger

	// DB enables the audit log listing.
	DB       *gorm.DB
	Uploader *snapshot.Uploader
}

func RegisterRoutes(r *gin.Engine, cfg *config.Config, deps Deps) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestLogger(deps.Log))
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	authLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	// ======================================================
	// USE CASES - CATALOG
	// ======================================================
	listBarbershopsUC := ucBarbershop.NewListBarbershops(deps.Barbershops)
	getBarbershopUC := ucBarbershop.NewGetBarbershop(deps.Barbershops)
	createBarbershopUC := ucBarbershop.NewCreateBarbershop(deps.Barbershops, deps.Audit)
	updateBarbershopUC := ucBarbershop.NewUpdateBarbershop(deps.Barbershops, deps.Audit)

	// ======================================================
	// USE CASES - APPOINTMENTS
	// ======================================================
	availabilityUC := ucAppointment.NewGetAvailability(deps.Appointments)
	checkSlotUC := ucAppointment.NewCheckSlot(deps.Appointments)

	createAppointmentUC := ucAppointment.NewCreateAppointment(
		deps.Appointments,
		deps.Locker,
		deps.Audit,
	)
	cancelAppointmentUC := ucAppointment.NewCancelAppointment(deps.Appointments, deps.Audit)
	updateStatusUC := ucAppointment.NewUpdateStatus(deps.Appointments, deps.Audit)
	deleteAppointmentUC := ucAppointment.NewDeleteAppointment(deps.Appointments, deps.Audit)

	listUserAppointmentsUC := ucAppointment.NewListUserAppointments(deps.Appointments)
	userStatsUC := ucAppointment.NewGetUserStats(deps.Appointments)
	listAppointmentsUC := ucAppointment.NewListAppointments(deps.Appointments)

	// ======================================================
	// USE CASES - USERS
	// ======================================================
	registerUC := ucUser.NewRegister(deps.Users)
	if cfg.VerifyEmailDomain {
		registerUC.CheckDomain = validators.IsEmailDomainValid
	}
	loginUC := ucUser.NewLogin(deps.Users, deps.Tokens)

	// ======================================================
	// SNAPSHOTS
	// ======================================================
	snapshots := snapshot.NewService(deps.Snapshots, func(ctx context.Context) error {
		_, err := seed.EnsureCatalog(ctx, deps.Barbershops)
		return err
	})

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(registerUC, loginUC)
	meHandler := handlers.NewMeHandler(
		ucUser.NewGetProfile(deps.Users),
		ucUser.NewUpdateProfile(deps.Users),
		ucUser.NewChangePassword(deps.Users),
	)
	barbershopHandler := handlers.NewBarbershopHandler(
		listBarbershopsUC,
		getBarbershopUC,
		availabilityUC,
		checkSlotUC,
	)
	appointmentHandler := handlers.NewAppointmentHandler(
		getBarbershopUC,
		createAppointmentUC,
		cancelAppointmentUC,
		listUserAppointmentsUC,
		userStatsUC,
		cfg.Timezone,
	)
	adminHandler := handlers.NewAdminHandler(handlers.AdminDeps{
		CreateBarbershop:  createBarbershopUC,
		UpdateBarbershop:  updateBarbershopUC,
		ListAppointments:  listAppointmentsUC,
		UpdateStatus:      updateStatusUC,
		DeleteAppointment: deleteAppointmentUC,
		Snapshots:         snapshots,
		Uploader:          deps.Uploader,
	})

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		authAPI := api.Group("/auth")
		authAPI.Use(middleware.RateLimit(authLimiter))
		{
			authAPI.POST("/register", authHandler.Register)
			authAPI.POST("/login", authHandler.Login)
		}

		// ------------------------------
		// CATALOG (public)
		// ------------------------------
		api.GET("/barbershops", barbershopHandler.List)
		api.GET("/barbershops/:id", barbershopHandler.Get)
		api.GET("/barbershops/:id/slots", barbershopHandler.Slots)
		api.GET("/barbershops/:id/slots/check", barbershopHandler.CheckSlot)

		// ------------------------------
		// SECURED
		// ------------------------------
		secured := api.Group("/me")
		secured.Use(middleware.AuthMiddleware(deps.Tokens))
		{
			secured.GET("", meHandler.GetMe)
			secured.PATCH("", meHandler.UpdateMe)
			secured.PUT("/password", meHandler.ChangePassword)

			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.List)
			secured.GET("/appointments/upcoming", appointmentHandler.Upcoming)
			secured.GET("/appointments/history", appointmentHandler.History)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)

			secured.GET("/stats", appointmentHandler.Stats)
		}

		// ------------------------------
		// ADMIN
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(middleware.AdminToken(cfg.AdminToken))
		{
			admin.POST("/barbershops", adminHandler.CreateBarbershop)
			admin.PATCH("/barbershops/:id", adminHandler.UpdateBarbershop)

			admin.GET("/appointments", adminHandler.ListAppointments)
			admin.PATCH("/appointments/:id/status", adminHandler.UpdateStatus)
			admin.DELETE("/appointments/:id", adminHandler.DeleteAppointment)

			admin.GET("/export", adminHandler.Export)
			admin.POST("/import", adminHandler.Import)
			admin.POST("/reset", adminHandler.Reset)
			admin.POST("/export/s3", adminHandler.ExportToS3)

			if deps.DB != nil {
				admin.GET("/audit-logs", handlers.NewAuditLogsHandler(deps.DB).List)
			}
		}
	}
}
