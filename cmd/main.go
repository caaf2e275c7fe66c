package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/techmaintain/parts-service/internal/auth"
	"github.com/techmaintain/parts-service/internal/events"
	"github.com/techmaintain/parts-service/internal/handler"
	"github.com/techmaintain/parts-service/internal/notify"
	"github.com/techmaintain/parts-service/internal/repository"
	"github.com/techmaintain/parts-service/internal/service"
	"github.com/techmaintain/parts-service/pkg/config"
	"github.com/techmaintain/parts-service/pkg/middleware"
	servertls "github.com/techmaintain/parts-service/pkg/tls"
)

func main() {
	_ = godotenv.Load()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// Stores: in-memory for local mode, DynamoDB otherwise.
	var (
		partStore    service.PartStore
		requestStore service.RequestStore
	)
	if cfg.LocalMode {
		logger.Info("Running in local mode with in-memory stores")
		partStore = repository.NewMemoryPartRepository()
		requestStore = repository.NewMemoryRequestRepository()
	} else {
		dynamoClient, err := repository.NewDynamoDBClient(cfg)
		if err != nil {
			log.Fatal("Failed to create DynamoDB client:", err)
		}
		partStore = repository.NewPartRepository(dynamoClient, cfg.PartTableName)
		requestStore = repository.NewRequestRepository(dynamoClient, cfg.RequestTableName)
	}

	// Notification pipeline: SMTP gateway behind either a Kafka hop or a
	// direct in-process handoff.
	var gateway notify.Gateway
	if cfg.SMTPHost != "" {
		gateway = notify.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.MailFrom)
	} else {
		logger.Info("No SMTP host configured, notifications are logged only")
		gateway = notify.NewLogGateway(logger)
	}
	notifier := notify.NewRequestNotifier(gateway, logger)

	var publisher service.Publisher
	if cfg.KafkaBrokers != "" {
		producer := events.NewKafkaProducer(cfg.KafkaBrokers, cfg.NotificationTopic, logger)
		defer producer.Close()

		consumer := events.NewNotificationConsumer(cfg.KafkaBrokers, cfg.NotificationTopic, cfg.NotificationGroupID, notifier, logger)
		consumer.Start()
		defer consumer.Stop()

		publisher = producer
	} else {
		publisher = notify.NewGatewayPublisher(notifier, logger)
	}

	partService := service.NewPartService(partStore, logger)
	requestService := service.NewRequestService(partStore, requestStore, publisher, logger)

	identity, err := auth.NewStaticProvider(cfg.AdminUsername, cfg.AdminPassword, cfg.JWTSecret)
	if err != nil {
		log.Fatal("Failed to initialize identity provider:", err)
	}

	partHandler := handler.NewPartHandler(partService, logger)
	requestHandler := handler.NewRequestHandler(requestService, logger)
	authHandler := handler.NewAuthHandler(identity, gateway, cfg.ResetURL, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.RequestID())

	v1 := router.Group("/api/v1")
	{
		v1.POST("/parts", partHandler.CreatePart)
		v1.GET("/parts", partHandler.ListParts)
		v1.GET("/parts/:id", partHandler.GetPart)
		v1.PUT("/parts/:id", partHandler.UpdatePart)
		v1.DELETE("/parts/:id", partHandler.DeletePart)

		v1.POST("/requests", requestHandler.CreateRequest)
		v1.GET("/requests", requestHandler.ListRequests)
		v1.PATCH("/requests/:id/status", requestHandler.UpdateRequestStatus)

		v1.POST("/auth/login", authHandler.Login)
		v1.POST("/auth/forgot-password", authHandler.ForgotPassword)

		v1.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "healthy"})
		})
	}

	tlsConfig, closeTLS, err := servertls.LoadServerConfig(context.Background(), &cfg.TLS, logger)
	if err != nil {
		log.Fatal("Failed to load TLS config:", err)
	}
	defer closeTLS()

	srv := &http.Server{
		Addr:      ":" + cfg.Port,
		Handler:   router,
		TLSConfig: tlsConfig,
	}

	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Port))

		var err error
		if tlsConfig != nil {
			err = srv.ListenAndServeTLS("", "")
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	logger.Info("Server exited")
}
