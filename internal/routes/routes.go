package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-booking/internal/audit"
	"github.com/BruksfildServices01/salon-booking/internal/auth"
	"github.com/BruksfildServices01/salon-booking/internal/config"
	"github.com/BruksfildServices01/salon-booking/internal/handlers"
	"github.com/BruksfildServices01/salon-booking/internal/infra/events"
	"github.com/BruksfildServices01/salon-booking/internal/infra/payment"
	"github.com/BruksfildServices01/salon-booking/internal/infra/ratelimit"
	infraRepo "github.com/BruksfildServices01/salon-booking/internal/infra/repository"
	"github.com/BruksfildServices01/salon-booking/internal/infra/storage"
	"github.com/BruksfildServices01/salon-booking/internal/middleware"
	ucBooking "github.com/BruksfildServices01/salon-booking/internal/usecase/booking"
	ucIdentity "github.com/BruksfildServices01/salon-booking/internal/usecase/identity"
	ucSalon "github.com/BruksfildServices01/salon-booking/internal/usecase/salon"
)

// Deps are the process-wide collaborators built in main. Redis is optional;
// without it OTP sends are not rate limited and idempotency keys are ignored.
type Deps struct {
	DB        *gorm.DB
	Config    *config.Config
	Log       *zap.Logger
	Redis     *redis.Client
	Audit     *audit.Dispatcher
	OTP       ucIdentity.OTPGateway
	Payments  payment.Gateway
	Events    events.Publisher
	Images    storage.ImageStore
	Transcode handlers.Transcoder
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(d.DB)
	identityRepo := infraRepo.NewIdentityGormRepository(d.DB)
	salonRepo := infraRepo.NewSalonGormRepository(d.DB)

	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)
	notifier := ucBooking.NewNotifier(d.Audit, d.Events, d.Log)

	var (
		otpLimiter  ucIdentity.RateLimiter
		idempotency middleware.IdempotencyStore
	)
	if d.Redis != nil {
		otpLimiter = ratelimit.NewFixedWindow(d.Redis, "otp:send:", cfg.OTPSendLimit, cfg.OTPSendWindow)
		idempotency = middleware.NewRedisIdempotencyStore(
			d.Redis,
			"idem:",
			time.Duration(cfg.Payment.IdempotencyTTLHours)*time.Hour,
		)
	}

	customerOnly := middleware.SessionGuard(tokens, identityRepo, auth.KindCustomer)
	partnerOnly := middleware.SessionGuard(tokens, identityRepo, auth.KindPartner)
	eitherParty := middleware.SessionGuard(tokens, identityRepo, auth.KindCustomer, auth.KindPartner)

	// ======================================================
	// USE CASES
	// ======================================================
	sendOTP := ucIdentity.NewSendOTP(identityRepo, d.OTP, otpLimiter, d.Log)

	bookingUC := handlers.BookingUseCases{
		Request:      ucBooking.NewRequestBooking(bookingRepo, notifier, cfg.Timezone),
		CreateOrder:  ucBooking.NewCreatePaymentOrder(bookingRepo, d.Payments, cfg.Payment.Currency, notifier),
		Verify:       ucBooking.NewVerifyPayment(bookingRepo, d.Payments, notifier),
		SettleCash:   ucBooking.NewSettleCashBooking(bookingRepo, notifier),
		SetStatus:    ucBooking.NewSetBookingStatus(bookingRepo, notifier),
		CancelOwn:    ucBooking.NewCancelOwnBooking(bookingRepo, notifier),
		ListSalon:    ucBooking.NewListSalonBookings(bookingRepo),
		ListCustomer: ucBooking.NewListCustomerBookings(bookingRepo),
	}

	salonUC := handlers.SalonUseCases{
		Register:      ucIdentity.NewRegisterSalon(identityRepo, tokens),
		Dashboard:     ucSalon.NewDashboard(salonRepo, cfg.Timezone),
		UpdateProfile: ucSalon.NewUpdateProfile(salonRepo, d.Audit),
		UpdateTimings: ucSalon.NewUpdateTimings(salonRepo, d.Audit),
		ListServices:  ucSalon.NewListServices(salonRepo),
		AddService:    ucSalon.NewAddService(salonRepo, d.Audit),
		UpdateService: ucSalon.NewUpdateService(salonRepo, d.Audit),
		ListCustomers: ucSalon.NewListCustomers(salonRepo),
		ListAuditLogs: ucSalon.NewListAuditLogs(salonRepo),
	}

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(
		sendOTP,
		ucIdentity.NewVerifyCustomerOTP(identityRepo, d.OTP, tokens, d.Log),
		identityRepo,
	)
	salonAuthHandler := handlers.NewSalonAuthHandler(
		sendOTP,
		ucIdentity.NewVerifyPartnerOTP(identityRepo, d.OTP, tokens, d.Log),
		identityRepo,
	)

	checkoutKey := ""
	if cfg.Payment.Provider == "razorpay" {
		checkoutKey = cfg.Payment.RazorpayKeyID
	}
	bookingHandler := handlers.NewBookingHandler(bookingUC, checkoutKey)
	salonHandler := handlers.NewSalonHandler(salonUC)
	publicHandler := handlers.NewPublicHandler(
		ucSalon.NewListSalons(salonRepo),
		ucSalon.NewGetSalon(salonRepo),
		ucSalon.NewServiceCatalog(salonRepo),
	)
	uploadHandler := handlers.NewUploadHandler(d.Images, d.Transcode, d.Log)

	if !cfg.Storage.S3Enabled() {
		r.Static("/uploads", cfg.Storage.UploadDir)
	}

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.GET("/services", publicHandler.Services)
		api.GET("/salons", publicHandler.ListSalons)
		api.GET("/salons/:id", publicHandler.GetSalon)
		api.POST("/uploads/salon-image", uploadHandler.SalonImage)

		if src, ok := d.Payments.(payment.WebhookSource); ok {
			webhooks := handlers.NewPaymentWebhookHandler(
				ucBooking.NewConfirmProviderPayment(bookingRepo, src, cfg.Payment.Provider, notifier),
			)
			api.POST("/payments/webhook", webhooks.Notify)
		}

		// ------------------------------
		// CUSTOMER AUTH
		// ------------------------------
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/send-otp", authHandler.SendOTP)
			authGroup.POST("/verify-otp", authHandler.VerifyOTP)
			authGroup.GET("/me", customerOnly, authHandler.Me)
		}

		// ------------------------------
		// BOOKINGS
		// ------------------------------
		bookings := api.Group("/bookings")
		{
			bookings.POST("/request-booking", customerOnly, bookingHandler.RequestBooking)
			bookings.POST("/create-payment-order/:id",
				customerOnly,
				middleware.Idempotency(idempotency, d.Log),
				bookingHandler.CreatePaymentOrder,
			)
			bookings.POST("/verify-payment/:id", customerOnly, bookingHandler.VerifyPayment)
			bookings.POST("/final-payment/:id", eitherParty, bookingHandler.FinalPayment)
			bookings.GET("/my-appointments", customerOnly, bookingHandler.MyAppointments)
			bookings.PATCH("/:id/cancel", customerOnly, bookingHandler.CancelOwn)

			bookings.PUT("/status/:id", partnerOnly, bookingHandler.UpdateStatus)
			bookings.GET("/salon/:id", partnerOnly, bookingHandler.SalonBookings)
		}

		// ------------------------------
		// SALON PARTNER
		// ------------------------------
		salonAuth := api.Group("/salon/auth")
		{
			salonAuth.POST("/send-otp", salonAuthHandler.SendOTP)
			salonAuth.POST("/verify-otp", salonAuthHandler.VerifyOTP)
			salonAuth.GET("/me", partnerOnly, salonAuthHandler.Me)
		}

		api.POST("/salon/register", salonHandler.Register)

		partner := api.Group("/salon")
		partner.Use(partnerOnly)
		{
			partner.GET("/dashboard/:id", salonHandler.Dashboard)

			partner.PATCH("/me", salonHandler.UpdateProfile)
			partner.PUT("/me/timings", salonHandler.UpdateTimings)

			partner.GET("/me/services", salonHandler.ListServices)
			partner.POST("/me/services", salonHandler.CreateService)
			partner.PATCH("/me/services/:id", salonHandler.UpdateService)

			partner.GET("/me/customers", salonHandler.ListCustomers)
			partner.GET("/me/audit-logs", salonHandler.ListAuditLogs)
		}
	}
}
