package routes

import (
	"context"
	"fmt"
	"log"

	_ "fieldservice/docs" // generated by swag init
	"fieldservice/internal/adapter/http/handlers"
	"fieldservice/internal/adapter/persistence/repository"
	"fieldservice/internal/infrastructure/config"
	"fieldservice/internal/infrastructure/database"
	"fieldservice/internal/infrastructure/events"
	"fieldservice/internal/infrastructure/payments"
	"fieldservice/internal/usecase"
	"fieldservice/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Run will start the server
func Run() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	repo, err := newJobRepository(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to set up the job store: %v", err)
	}

	publisher, closePublisher := newEventPublisher(cfg)
	defer closePublisher()

	locker := usecase.NewJobLocker()
	jobUseCase := usecase.NewJobUseCase(repo, publisher, locker, cfg.TaxRate)
	paymentUseCase := usecase.NewPaymentUseCase(repo, publisher, locker, newPaymentGateway(cfg))

	router := NewRouter(handlers.NewJobHandler(jobUseCase), handlers.NewInvoiceHandler(paymentUseCase))
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Printf("Failed to startup the application: %v", err)
	}
}

// NewRouter wires middlewares, swagger and the /v1 routes.
func NewRouter(jobHandler *handlers.JobHandler, invoiceHandler *handlers.InvoiceHandler) *gin.Engine {
	router := gin.New()
	setMiddlewares(router)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addJobRoutes(v1, jobHandler)
	addInvoiceRoutes(v1, invoiceHandler)
	return router
}

func newJobRepository(ctx context.Context, cfg *config.Config) (interfaces.IJobRepository, error) {
	switch cfg.JobStore {
	case config.StoreMemory:
		log.Printf("[job][store] using in-memory store")
		return repository.NewJobMemoryRepository(), nil
	case config.StorePostgres:
		db, err := database.ConnectPostgres(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		repo := repository.NewJobPostgresRepository(db)
		if cfg.AutoMigrate {
			if err := repo.Migrate(ctx); err != nil {
				return nil, fmt.Errorf("migrate jobs table: %w", err)
			}
		}
		log.Printf("[job][store] using postgres store")
		return repo, nil
	default:
		ddb, err := database.ConnectDynamoDB(ctx)
		if err != nil {
			return nil, err
		}
		log.Printf("[job][store] using dynamodb store")
		return repository.NewJobDynamoRepository(ddb), nil
	}
}

func newEventPublisher(cfg *config.Config) (interfaces.IEventPublisher, func()) {
	if cfg.KafkaBroker == "" {
		log.Printf("[job][events] KAFKA_BROKER not set; events are only logged")
		return events.LogPublisher{}, func() {}
	}
	p := events.NewKafkaPublisher(cfg.KafkaBroker, cfg.KafkaTopic)
	return p, func() {
		if err := p.Close(); err != nil {
			log.Printf("[job][events] close failed err=%v", err)
		}
	}
}

// newPaymentGateway returns nil when card charging is not configured; card
// payments without card details are still recorded.
func newPaymentGateway(cfg *config.Config) interfaces.IPaymentGateway {
	gw, err := payments.NewMercadoPagoGateway(cfg.MercadoPagoAccessToken)
	if err != nil {
		log.Printf("Mercado Pago gateway not configured: %v", err)
		return nil
	}
	return gw
}

func setMiddlewares(router *gin.Engine) {
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
