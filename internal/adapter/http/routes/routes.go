package routes

import (
	"campusedge_payments/internal/adapter/http/handlers"
	"campusedge_payments/internal/adapter/http/middleware"
	"campusedge_payments/internal/adapter/persistence/repository"
	"campusedge_payments/internal/infrastructure/config"
	"campusedge_payments/internal/infrastructure/database"
	"campusedge_payments/internal/infrastructure/dispatch"
	"campusedge_payments/internal/infrastructure/ledger"
	"campusedge_payments/internal/infrastructure/sms"
	"campusedge_payments/internal/usecase"
	"campusedge_payments/internal/usecase/interfaces"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const shutdownTimeout = 15 * time.Second

// Dependencies are the collaborators the HTTP surface is built from.
type Dependencies struct {
	Config     config.Config
	Log        logrus.FieldLogger
	Repository interfaces.IPaymentRepository
	Ledger     interfaces.ILedgerNotifier
	SMS        interfaces.ISMSNotifier
	Dispatcher interfaces.IDispatcher
}

// Run builds the application from cfg, serves HTTP until SIGINT/SIGTERM and
// then drains in-flight requests and pending notifications.
func Run(cfg config.Config, log *logrus.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, err := BuildPaymentRepository(ctx, cfg, log)
	if err != nil {
		return err
	}

	dispatcher := dispatch.New(cfg.NotifyWorkers, cfg.NotifyQueueSize, cfg.NotifyTimeout, log)
	defer dispatcher.Close()

	deps := Dependencies{
		Config:     cfg,
		Log:        log,
		Repository: repo,
		Ledger:     buildLedger(ctx, cfg, log),
		SMS:        sms.NewTermiiGateway(cfg.TermiiAPIKey, cfg.TermiiSenderID, cfg.TermiiBaseURL, cfg.SMSGatewayMock, log),
		Dispatcher: dispatcher,
	}

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Port),
		Handler:           NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Infof("[payment][http] listening port=%d store=%s", cfg.Port, cfg.StoreBackend)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to startup the application: %w", err)
	case <-ctx.Done():
	}

	log.Info("[payment][http] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}

// NewRouter assembles the gin engine. It has no side effects beyond routing,
// so tests can drive it with httptest.
func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		deps.Log.Errorf("[payment][http] recovered from panic: %v", recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
	}))

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	paymentUseCase := usecase.NewPaymentUseCase(deps.Repository, deps.Ledger, deps.SMS, deps.Dispatcher, deps.Log)
	paymentHandler := handlers.NewPaymentHandler(paymentUseCase, deps.Log)
	limiter := middleware.NewClientRateLimiter(deps.Config.RateLimitRPS, deps.Config.RateLimitBurst)

	root := router.Group("")
	addPingRoutes(root)
	addPaymentRoutes(root, paymentHandler, limiter, middleware.RequireAdminSecret(deps.Config.AdminSecret, deps.Log))

	return router
}

// BuildPaymentRepository returns the store selected by cfg.StoreBackend.
func BuildPaymentRepository(ctx context.Context, cfg config.Config, log logrus.FieldLogger) (interfaces.IPaymentRepository, error) {
	switch cfg.StoreBackend {
	case config.StoreBackendPostgres:
		db, err := database.ConnectPostgres(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		log.Infof("[payment][store] using postgres table=%s", cfg.PaymentsTable)
		return repository.NewPaymentGormRepository(db, cfg.PaymentsTable), nil
	case config.StoreBackendDynamoDB:
		ddb, err := database.ConnectDynamoDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		log.Infof("[payment][store] using dynamodb table=%s region=%s", cfg.PaymentsTable, cfg.AWSRegion)
		return repository.NewPaymentDynamoRepository(ddb, cfg.PaymentsTable), nil
	default:
		log.Warnf("[payment][store] no primary store configured; using fallback file path=%s", cfg.FallbackFile)
		return repository.NewPaymentFileRepository(cfg.FallbackFile), nil
	}
}

func buildLedger(ctx context.Context, cfg config.Config, log logrus.FieldLogger) interfaces.ILedgerNotifier {
	if !cfg.LedgerConfigured() {
		log.Info("[payment][ledger] google sheets not configured; ledger disabled")
		return ledger.Disabled{Log: log}
	}
	l, err := ledger.NewGoogleSheetsLedger(ctx, cfg.GoogleServiceAccountJSON, cfg.GoogleSheetID, cfg.GoogleSheetRange, log)
	if err != nil {
		log.Warnf("[payment][ledger] google sheets unavailable; ledger disabled err=%v", err)
		return ledger.Disabled{Log: log}
	}
	return l
}
