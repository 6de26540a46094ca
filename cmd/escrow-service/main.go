package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/mandiflow/escrow-order-service/internal/app/background"
	"github.com/mandiflow/escrow-order-service/internal/config"
	httpdelivery "github.com/mandiflow/escrow-order-service/internal/delivery/http"
	"github.com/mandiflow/escrow-order-service/internal/delivery/http/handlers"
	publisher "github.com/mandiflow/escrow-order-service/internal/infrastructure/kafka"
	"github.com/mandiflow/escrow-order-service/internal/infrastructure/metrics"
	"github.com/mandiflow/escrow-order-service/internal/infrastructure/migrate"
	"github.com/mandiflow/escrow-order-service/internal/infrastructure/postgres"
	"github.com/mandiflow/escrow-order-service/internal/infrastructure/postgres/repository"
	"github.com/mandiflow/escrow-order-service/internal/infrastructure/razorpay"
	"github.com/mandiflow/escrow-order-service/internal/infrastructure/sms"
	disputeusecase "github.com/mandiflow/escrow-order-service/internal/usecase/dispute"
	orderusecase "github.com/mandiflow/escrow-order-service/internal/usecase/order"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()
	// Init database
	db := postgres.MustInitDB(cfg)

	if cfg.OrderDB.MigrationsPath != "" {
		if err := migrate.RunMigrations(db, cfg.OrderDB.MigrationsPath); err != nil {
			log.Fatalf("failed to apply migrations: %v", err)
		}
	}

	brokers := []string{fmt.Sprintf("%s:%s", cfg.KafkaService.Host, cfg.KafkaService.Port)}
	orderPublisher := publisher.NewKafkaPublisher(brokers, "order-events")
	disputePublisher := publisher.NewKafkaPublisher(brokers, "dispute-events")

	// Init repos
	orderRepo := repository.NewDefaultOrderRepository(db)
	disputeRepo := repository.NewDefaultDisputeRepository(db)

	// Init collaborators
	paymentProvider := razorpay.NewClient(cfg.Razorpay)
	smsSender := sms.NewGatewaySender(fmt.Sprintf("http://%s:%s", cfg.SMSGateway.Host, cfg.SMSGateway.Port))
	orderMetrics := metrics.NewOrderMetrics()

	// Init order usecase
	orderUc := orderusecase.NewDefaultOrderUsecase(
		orderRepo,
		paymentProvider,
		smsSender,
		orderPublisher,
		orderMetrics,
		cfg.Escrow.OTPTTL,
		cfg.Escrow.InspectionWindow,
	)
	// Init dispute usecase
	disputeUc := disputeusecase.NewDefaultDisputeUsecase(
		disputeRepo,
		orderRepo,
		paymentProvider,
		disputePublisher,
		orderMetrics,
	)

	// Auto-release sweep ticker
	tasks := background.NewBackgroundTasks(orderUc, cfg.Escrow.SweepInterval)
	tasks.StartAll(context.Background())

	orderHandler := handlers.NewOrderHandler(orderUc)
	disputeHandler := handlers.NewDisputeHandler(disputeUc)
	webhookHandler := handlers.NewWebhookHandler(orderUc)

	router := httpdelivery.NewRouter(orderHandler, disputeHandler, webhookHandler)

	addr := fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port)
	log.Printf("HTTP server started on %s\n", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("failed to serve: %v\n", err)
	}
}
