package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/afritrim-api/internal/audit"
	"github.com/BruksfildServices01/afritrim-api/internal/authz"
	"github.com/BruksfildServices01/afritrim-api/internal/config"
	billingdomain "github.com/BruksfildServices01/afritrim-api/internal/domain/billing"
	mediadomain "github.com/BruksfildServices01/afritrim-api/internal/domain/media"
	"github.com/BruksfildServices01/afritrim-api/internal/handlers"
	"github.com/BruksfildServices01/afritrim-api/internal/identity"
	infraRepo "github.com/BruksfildServices01/afritrim-api/internal/infra/repository"
	"github.com/BruksfildServices01/afritrim-api/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/afritrim-api/internal/usecase/appointment"
	ucBilling "github.com/BruksfildServices01/afritrim-api/internal/usecase/billing"
	ucMedia "github.com/BruksfildServices01/afritrim-api/internal/usecase/media"
	ucReview "github.com/BruksfildServices01/afritrim-api/internal/usecase/review"
	ucUser "github.com/BruksfildServices01/afritrim-api/internal/usecase/user"
)

// Deps are the process-wide collaborators the routes are built from.
type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Log      zerolog.Logger
	Audit    *audit.Dispatcher
	Accounts interface {
		handlers.Accounts
		identity.ClaimsWriter
	}
	Enforcer *authz.Enforcer
	Blobs    mediadomain.BlobStore
	Images   ucMedia.Normalizer
	Checkout billingdomain.CheckoutGateway
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware(d.Config.CORSOrigins))

	// ======================================================
	// INFRA
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)
	billingRepo := infraRepo.NewBillingGormRepository(d.DB)
	userRepo := infraRepo.NewUserGormRepository(d.DB)
	reviewRepo := infraRepo.NewReviewGormRepository(d.DB)
	mediaRepo := infraRepo.NewMediaGormRepository(d.DB)

	// ======================================================
	// USE CASES
	// ======================================================
	createUser := ucUser.NewCreateUser(userRepo, d.Accounts, d.Audit)
	updateUser := ucUser.NewUpdateUser(userRepo, d.Audit)
	deleteUser := ucUser.NewDeleteUser(userRepo, d.Accounts, d.Audit, d.Log)

	appointmentUC := handlers.AppointmentUseCases{
		Create:       ucAppointment.NewCreateAppointment(appointmentRepo, d.Audit),
		Update:       ucAppointment.NewUpdateAppointment(appointmentRepo, d.Audit),
		UpdateStatus: ucAppointment.NewUpdateAppointmentStatus(appointmentRepo, d.Audit),
		Delete:       ucAppointment.NewDeleteAppointment(appointmentRepo, d.Audit),
		Get:          ucAppointment.NewGetAppointment(appointmentRepo),
		List:         ucAppointment.NewListAppointments(appointmentRepo, d.Config.Timezone),
		Upcoming:     ucAppointment.NewListUpcomingForBarber(appointmentRepo),
	}

	saleUC := handlers.SaleUseCases{
		Create:  ucBilling.NewCreateSale(billingRepo, d.Audit),
		Update:  ucBilling.NewUpdateSale(billingRepo, d.Audit),
		Delete:  ucBilling.NewDeleteSale(billingRepo, d.Audit),
		Get:     ucBilling.NewGetSale(billingRepo),
		List:    ucBilling.NewListSales(billingRepo),
		Totals:  ucBilling.NewGetTotalSales(billingRepo),
		Average: ucBilling.NewGetAverageSale(billingRepo),
	}

	invoiceUC := handlers.InvoiceUseCases{
		Create:       ucBilling.NewCreateInvoice(billingRepo, d.Audit),
		Update:       ucBilling.NewUpdateInvoice(billingRepo, d.Audit),
		UpdateStatus: ucBilling.NewUpdateInvoiceStatus(billingRepo, d.Audit),
		Delete:       ucBilling.NewDeleteInvoice(billingRepo, d.Audit),
		Get:          ucBilling.NewGetInvoice(billingRepo),
		List:         ucBilling.NewListInvoices(billingRepo),
		Checkout:     ucBilling.NewCreateCheckout(billingRepo, d.Checkout, d.Log),
	}

	paymentUC := handlers.PaymentUseCases{
		Create: ucBilling.NewCreatePayment(billingRepo, d.Audit),
		Update: ucBilling.NewUpdatePayment(billingRepo, d.Audit),
		Delete: ucBilling.NewDeletePayment(billingRepo, d.Audit),
		List:   ucBilling.NewListPayments(billingRepo),
		Latest: ucBilling.NewLatestPaymentStatusForAdmin(billingRepo),
	}

	reviewUC := handlers.ReviewUseCases{
		Create:   ucReview.NewCreateReview(reviewRepo, d.Audit),
		Update:   ucReview.NewUpdateReview(reviewRepo, d.Audit),
		Delete:   ucReview.NewDeleteReview(reviewRepo, d.Audit),
		Get:      ucReview.NewGetReview(reviewRepo),
		List:     ucReview.NewListReviews(reviewRepo),
		Average:  ucReview.NewGetAverageRatingForBarber(reviewRepo),
		CanLeave: ucReview.NewCanUserLeaveReview(reviewRepo),
	}

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.Accounts)
	userHandler := handlers.NewUserHandler(
		d.DB,
		createUser,
		ucUser.NewGetUserByUID(userRepo),
		updateUser,
		ucUser.NewUpdateUserRole(userRepo, d.Accounts, d.Audit),
		deleteUser,
	)
	adminHandler := handlers.NewAdminHandler(d.DB, d.Audit, deleteUser)
	barbershopHandler := handlers.NewBarbershopHandler(d.DB, d.Audit)
	barberHandler := handlers.NewBarberHandler(d.DB, d.Audit, createUser, deleteUser)
	serviceHandler := handlers.NewServiceHandler(d.DB, d.Audit)
	clientHandler := handlers.NewClientHandler(d.DB, createUser, updateUser, deleteUser)
	mediaHandler := handlers.NewMediaHandler(
		d.DB,
		ucMedia.NewUploadImage(mediaRepo, d.Blobs, d.Images, d.Audit, d.Log),
	)

	appointmentHandler := handlers.NewAppointmentHandler(d.DB, appointmentUC, userRepo)
	saleHandler := handlers.NewSaleHandler(d.DB, saleUC)
	invoiceHandler := handlers.NewInvoiceHandler(d.DB, invoiceUC, userRepo)
	paymentHandler := handlers.NewPaymentHandler(d.DB, paymentUC)
	reviewHandler := handlers.NewReviewHandler(d.DB, reviewUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB)

	// ======================================================
	// OPERATIONS
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/verify", authHandler.Verify)

		// ------------------------------
		// PUBLIC CATALOG
		// ------------------------------
		api.GET("/barbershops", barbershopHandler.List)
		api.GET("/barbershops/:id", barbershopHandler.Get)
		api.GET("/barbershops/:id/barbers", barbershopHandler.ListBarbers)
		api.GET("/barbershops/:id/services", barbershopHandler.ListServices)
		api.GET("/barbers", barberHandler.List)
		api.GET("/barbers/:id", barberHandler.Get)
		api.GET("/barbers/:id/reviews", reviewHandler.ListForBarber)
		api.GET("/barbers/:id/rating", reviewHandler.Average)
		api.GET("/services", serviceHandler.List)
		api.GET("/services/:id", serviceHandler.Get)
		api.GET("/reviews", reviewHandler.List)
		api.GET("/reviews/:id", reviewHandler.Get)

		// ------------------------------
		// SECURED
		// ------------------------------
		secured := api.Group("")
		secured.Use(
			middleware.AuthMiddleware(d.Accounts),
			middleware.PlatformOperators(d.Config.PlatformAdmins),
			middleware.RejectSuspended(userRepo),
			middleware.Authorize(d.Enforcer),
		)
		{
			secured.POST("/users", userHandler.Create)
			secured.GET("/users/me", userHandler.Me)
			secured.GET("/users/:uid", userHandler.Get)
			secured.PUT("/users/:uid", userHandler.Update)
			secured.DELETE("/users/:uid", userHandler.Delete)
			secured.PATCH("/users/:uid/role", userHandler.UpdateRole)

			secured.GET("/admins/:uid", adminHandler.Get)
			secured.DELETE("/admins/:uid", adminHandler.Delete)
			secured.PATCH("/admins/:uid/suspend", adminHandler.Suspend)

			secured.POST("/barbershops", barbershopHandler.Create)
			secured.PUT("/barbershops/:id", barbershopHandler.Update)
			secured.DELETE("/barbershops/:id", barbershopHandler.Delete)

			secured.POST("/barbers", barberHandler.Create)
			secured.PUT("/barbers/:id", barberHandler.Update)
			secured.DELETE("/barbers/:id", barberHandler.Delete)
			secured.PATCH("/barbers/:id/availability", barberHandler.SetAvailability)
			secured.GET("/barbers/:id/appointments/upcoming", appointmentHandler.Upcoming)

			secured.POST("/services", serviceHandler.Create)
			secured.PUT("/services/:id", serviceHandler.Update)
			secured.DELETE("/services/:id", serviceHandler.Delete)

			secured.GET("/clients", clientHandler.List)
			secured.POST("/clients", clientHandler.Create)
			secured.GET("/clients/:id", clientHandler.Get)
			secured.PUT("/clients/:id", clientHandler.Update)
			secured.DELETE("/clients/:id", clientHandler.Delete)

			secured.POST("/media/:model/:id", mediaHandler.Upload)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.List)
			secured.GET("/appointments/:id", appointmentHandler.Get)
			secured.PUT("/appointments/:id", appointmentHandler.Update)
			secured.PATCH("/appointments/:id/status", appointmentHandler.UpdateStatus)
			secured.DELETE("/appointments/:id", appointmentHandler.Delete)

			// ------------------------------
			// BILLING
			// ------------------------------
			secured.POST("/sales", saleHandler.Create)
			secured.GET("/sales", saleHandler.List)
			secured.GET("/sales/totals", saleHandler.Totals)
			secured.GET("/sales/average", saleHandler.Average)
			secured.GET("/sales/:id", saleHandler.Get)
			secured.PUT("/sales/:id", saleHandler.Update)
			secured.DELETE("/sales/:id", saleHandler.Delete)

			secured.POST("/invoices", invoiceHandler.Create)
			secured.GET("/invoices", invoiceHandler.List)
			secured.GET("/invoices/:id", invoiceHandler.Get)
			secured.PUT("/invoices/:id", invoiceHandler.Update)
			secured.PATCH("/invoices/:id/status", invoiceHandler.UpdateStatus)
			secured.DELETE("/invoices/:id", invoiceHandler.Delete)
			secured.POST("/invoices/:id/checkout", invoiceHandler.Checkout)

			secured.POST("/payments", paymentHandler.Create)
			secured.GET("/payments", paymentHandler.List)
			secured.GET("/payments/status", paymentHandler.LatestStatus)
			secured.PUT("/payments/:id", paymentHandler.Update)
			secured.DELETE("/payments/:id", paymentHandler.Delete)

			// ------------------------------
			// REVIEWS
			// ------------------------------
			secured.POST("/reviews", reviewHandler.Create)
			secured.GET("/reviews/eligibility", reviewHandler.Eligibility)
			secured.PUT("/reviews/:id", reviewHandler.Update)
			secured.DELETE("/reviews/:id", reviewHandler.Delete)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
