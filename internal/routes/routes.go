package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/LunaStudioApps/salon-scheduler/internal/audit"
	"github.com/LunaStudioApps/salon-scheduler/internal/cache"
	"github.com/LunaStudioApps/salon-scheduler/internal/config"
	"github.com/LunaStudioApps/salon-scheduler/internal/handlers"
	infraRepo "github.com/LunaStudioApps/salon-scheduler/internal/infra/repository"
	"github.com/LunaStudioApps/salon-scheduler/internal/middleware"
	"github.com/LunaStudioApps/salon-scheduler/internal/payment"
	"github.com/LunaStudioApps/salon-scheduler/internal/storage"
	ucBooking "github.com/LunaStudioApps/salon-scheduler/internal/usecase/booking"
	ucFinance "github.com/LunaStudioApps/salon-scheduler/internal/usecase/finance"
	ucSignup "github.com/LunaStudioApps/salon-scheduler/internal/usecase/signup"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	cch *cache.Cache,
	log *zap.Logger,
) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)
	financeRepo := infraRepo.NewFinanceGormRepository(db)
	signupRepo := infraRepo.NewSignupGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	media := storage.NewMediaStore(
		cfg.AWSRegion,
		cfg.AWSAccessKey,
		cfg.AWSSecretKey,
		cfg.S3Bucket,
	)

	var gateway ucSignup.PaymentGateway
	if cfg.MercadoPagoToken != "" {
		mp, err := payment.NewMercadoPago(cfg.MercadoPagoToken)
		if err != nil {
			log.Warn("mercadopago disabled", zap.Error(err))
		} else {
			gateway = mp
		}
	}

	// ======================================================
	// USE CASES
	// ======================================================
	availabilityUC := ucBooking.NewGetAvailability(bookingRepo)
	createBookingUC := ucBooking.NewCreatePublicBooking(bookingRepo, auditDispatcher)
	cancelBookingUC := ucBooking.NewCancelAppointment(bookingRepo, auditDispatcher)
	cancelByClientUC := ucBooking.NewCancelByClient(bookingRepo, auditDispatcher)
	completeBookingUC := ucBooking.NewCompleteAppointment(bookingRepo, auditDispatcher)
	listByDateUC := ucBooking.NewListAppointmentsByDate(bookingRepo)

	addTransactionUC := ucFinance.NewAddTransaction(financeRepo, auditDispatcher)
	listCommissionsUC := ucFinance.NewListCommissions(financeRepo)
	payCommissionUC := ucFinance.NewPayCommission(financeRepo, listCommissionsUC, auditDispatcher)

	checkoutUC := ucSignup.NewCheckout(signupRepo, gateway, auditDispatcher)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	directoryHandler := handlers.NewDirectoryHandler(db)
	publicHandler := handlers.NewPublicHandler(db, cch, availabilityUC, createBookingUC)
	portalHandler := handlers.NewPortalHandler(db, cch, cancelByClientUC)
	checkoutHandler := handlers.NewCheckoutHandler(db, checkoutUC)

	salonHandler := handlers.NewSalonHandler(db, media, auditDispatcher, log)
	serviceHandler := handlers.NewServiceHandler(db, auditDispatcher)
	professionalHandler := handlers.NewProfessionalHandler(db, media, auditDispatcher, log)
	productHandler := handlers.NewProductHandler(db)
	blockedPeriodHandler := handlers.NewBlockedPeriodHandler(db, cch)
	appointmentHandler := handlers.NewAppointmentHandler(
		db,
		cch,
		createBookingUC,
		cancelBookingUC,
		completeBookingUC,
		listByDateUC,
	)
	transactionHandler := handlers.NewTransactionHandler(
		db,
		addTransactionUC,
		listCommissionsUC,
		payCommissionUC,
	)
	dashboardHandler := handlers.NewDashboardHandler(db)
	clientHandler := handlers.NewClientHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)
	adminHandler := handlers.NewAdminHandler(db)

	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		public := api.Group("/public")
		{
			public.GET("/salons", directoryHandler.List)
			public.GET("/salons/:slug", directoryHandler.GetBySlug)

			public.GET("/salons/:slug/availability", publicHandler.GetAvailability)
			public.POST("/salons/:slug/appointments", publicHandler.CreateBooking)
			public.GET("/clients/:phone", publicHandler.LookupClient)

			public.GET("/plans", checkoutHandler.ListPlans)
			public.GET("/coupons/validate", checkoutHandler.ValidateCoupon)
			public.POST("/checkout", checkoutHandler.Checkout)

			portal := public.Group("/portal")
			{
				portal.GET("/appointments", portalHandler.ListByPhone)
				portal.POST("/appointments/:id/cancel", portalHandler.Cancel)
			}
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/professional-login", authHandler.ProfessionalLogin)

		// ------------------------------
		// OWNER
		// ------------------------------
		owner := api.Group("/me")
		owner.Use(middleware.AuthMiddleware(cfg), middleware.RequireRole(middleware.RoleOwner))
		{
			owner.GET("/salon", salonHandler.GetMine)
			owner.PUT("/salon", salonHandler.UpdateMine)
			owner.POST("/salon/cover", salonHandler.UploadCover)

			owner.GET("/services", serviceHandler.List)
			owner.POST("/services", serviceHandler.Create)
			owner.PUT("/services/:id", serviceHandler.Update)
			owner.DELETE("/services/:id", serviceHandler.Delete)

			owner.GET("/professionals", professionalHandler.List)
			owner.POST("/professionals", professionalHandler.Create)
			owner.PUT("/professionals/:id", professionalHandler.Update)
			owner.DELETE("/professionals/:id", professionalHandler.Delete)
			owner.POST("/professionals/:id/avatar", professionalHandler.UploadAvatar)

			owner.GET("/products", productHandler.List)
			owner.POST("/products", productHandler.Create)
			owner.PUT("/products/:id", productHandler.Update)
			owner.DELETE("/products/:id", productHandler.Delete)

			owner.GET("/blocked-periods", blockedPeriodHandler.List)
			owner.POST("/blocked-periods", blockedPeriodHandler.Create)
			owner.DELETE("/blocked-periods/:id", blockedPeriodHandler.Delete)

			owner.GET("/appointments", appointmentHandler.ListByDate)
			owner.POST("/appointments", appointmentHandler.Create)
			owner.POST("/appointments/:id/cancel", appointmentHandler.Cancel)

			owner.GET("/transactions", transactionHandler.List)
			owner.POST("/transactions", transactionHandler.Create)
			owner.DELETE("/transactions/:id", transactionHandler.Delete)
			owner.GET("/transactions/summary", transactionHandler.Summary)

			owner.GET("/commissions", transactionHandler.ListCommissions)
			owner.POST("/commissions/:id/pay", transactionHandler.PayCommission)

			owner.GET("/clients", clientHandler.List)
			owner.GET("/dashboard", dashboardHandler.Overview)
			owner.GET("/audit-logs", auditLogsHandler.List)
		}

		// ------------------------------
		// PROFESSIONAL PANEL
		// ------------------------------
		pro := api.Group("/pro")
		pro.Use(middleware.AuthMiddleware(cfg), middleware.RequireRole(middleware.RoleProfessional))
		{
			pro.GET("/appointments", appointmentHandler.ListOwnByDate)
			pro.POST("/appointments/:id/complete", appointmentHandler.Complete)
			pro.GET("/commission", transactionHandler.MyCommission)
			pro.POST("/blocked-periods", blockedPeriodHandler.CreateOwn)
		}

		// ------------------------------
		// PLATFORM ADMIN
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(cfg), middleware.RequireRole(middleware.RoleAdmin))
		{
			admin.GET("/plans", adminHandler.ListPlans)
			admin.PUT("/plans/:id", adminHandler.UpdatePlan)

			admin.GET("/coupons", adminHandler.ListCoupons)
			admin.POST("/coupons", adminHandler.CreateCoupon)
			admin.POST("/coupons/:id/toggle", adminHandler.ToggleCoupon)

			admin.GET("/salons", adminHandler.ListSalons)
			admin.POST("/salons/:id/toggle-status", adminHandler.ToggleSalonStatus)
		}
	}
}
