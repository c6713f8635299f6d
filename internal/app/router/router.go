package router

import (
	"github.com/samfisher58/LoanLink-server-side/configs"
	"github.com/samfisher58/LoanLink-server-side/internal/app/handlers"
	"github.com/samfisher58/LoanLink-server-side/internal/app/middleware"
	"github.com/samfisher58/LoanLink-server-side/internal/pkg/db"
	"github.com/samfisher58/LoanLink-server-side/internal/pkg/downstreams"
	"github.com/samfisher58/LoanLink-server-side/internal/pkg/kafka/producer"
	"github.com/samfisher58/LoanLink-server-side/internal/pkg/models"
	"github.com/samfisher58/LoanLink-server-side/internal/pkg/notification"
	"github.com/samfisher58/LoanLink-server-side/internal/pkg/pubsub"
	"github.com/samfisher58/LoanLink-server-side/internal/pkg/services"
	"github.com/samfisher58/LoanLink-server-side/internal/pkg/store"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
)

func SetupRouter(
	cfg *configs.AppConfig,
	mdb *db.MongoDB,
	verifier downstreams.TokenVerifier,
	checkout downstreams.CheckoutClient,
	events producer.EventPublisher,
	pubsubPublisher pubsub.PubSubPublisherInterface,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.CustomRecovery(middleware.RecoveryHandler))
	r.Use(otelgin.Middleware(cfg.Otel.ServiceName))
	r.Use(middleware.NewMetricMiddleware(otel.Meter(cfg.Otel.ServiceName)))
	r.Use(middleware.AttachRequestDetails())
	r.Use(middleware.ErrorBoundary())

	loansRepo := store.NewLoansRepository(mdb)
	applicationsRepo := store.NewLoanApplicationsRepository(mdb)
	usersRepo := store.NewUsersRepository(mdb)
	paymentsRepo := store.NewPaymentsRepository(mdb)

	notifier := notification.NewNotificationService(pubsubPublisher, cfg.PubSub.NotificationTopic)
	paymentService := services.NewPaymentService(
		checkout,
		applicationsRepo,
		paymentsRepo,
		events,
		notifier,
		cfg.Stripe,
		cfg.Server.SiteOrigin,
	)

	loanHandler := handlers.NewLoanHandler(loansRepo)
	applicationHandler := handlers.NewLoanApplicationHandler(applicationsRepo, notifier, cfg.Stripe.ApplicationFee)
	userHandler := handlers.NewUserHandler(usersRepo)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	healthCheckHandler := handlers.NewHealthCheckHandler()

	requireAdmin := []gin.HandlerFunc{
		middleware.VerifyToken(verifier),
		middleware.RequireRole(usersRepo, models.RoleAdmin),
	}

	r.GET("/", healthCheckHandler.HealthCheck)

	r.GET("/all-loans", loanHandler.AllLoans)
	r.GET("/all-loans-admin", loanHandler.AllLoansAdmin)
	r.POST("/all-loans", loanHandler.CreateLoan)
	r.GET("/all-loans/:id", loanHandler.GetLoan)
	r.PATCH("/all-loans/:id", loanHandler.UpdateLoan)
	r.DELETE("/all-loans/:id", loanHandler.DeleteLoan)
	r.GET("/six-loans", loanHandler.SixLoans)

	r.GET("/loan-application",
		middleware.VerifyToken(verifier),
		middleware.OwnerOrSelf("email"),
		applicationHandler.ListOwn)
	r.POST("/loan-application", applicationHandler.Create)
	r.DELETE("/loan-application/:id/delete", applicationHandler.Delete)
	r.GET("/loan-applications", applicationHandler.ListByStatus)
	r.PATCH("/loan-applications/:id", append(requireAdmin, applicationHandler.UpdateStatus)...)

	r.POST("/create-checkout-session", paymentHandler.CreateCheckoutSession)
	r.PATCH("/verified-payment-success", paymentHandler.VerifyPaymentSuccess)

	r.POST("/users", userHandler.Create)
	r.GET("/users", userHandler.List)
	r.GET("/users/:id", userHandler.GetByID)
	r.GET("/users/:id/role", userHandler.GetRole)
	r.PATCH("/users/:id", append(requireAdmin, userHandler.UpdateRole)...)

	return r
}
