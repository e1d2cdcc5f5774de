package main

import (
	// Go Internal Packages
	"context"
	goerrors "errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	// Local Packages
	config "pay-stream/config"
	handlers "pay-stream/handlers"
	kafka "pay-stream/kafka"
	logging "pay-stream/logger"
	postgres "pay-stream/repositories/postgres"
	payments "pay-stream/services/payments"

	// External Packages
	"github.com/alecthomas/kingpin/v2"
	"github.com/twmb/franz-go/plugin/kprom"
	"go.uber.org/zap"
)

func main() {
	configPathMsg := "Path to the application config file"
	configPath := kingpin.Flag("config", configPathMsg).Short('c').Default("config.yml").String()
	kingpin.Parse()

	k := config.LoadConfig(*configPath)
	appKonf, err := config.Build(k)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if !appKonf.IsProdMode {
		k.Print()
	}

	logger, err := logging.New(appKonf.Logger.Level, payments.ServiceName)
	if err != nil {
		log.Fatalf("Error building logger: %v", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Postgres Connection
	pool, err := postgres.Connect(ctx, postgres.PoolConfig{
		URI:             appKonf.Postgres.URI,
		MaxConns:        appKonf.Postgres.MaxConns,
		MinConns:        appKonf.Postgres.MinConns,
		MaxConnIdleTime: appKonf.Postgres.MaxConnIdleTime,
		ConnectTimeout:  appKonf.Postgres.ConnectTimeout,
	})
	if err != nil {
		logger.Fatal("cannot connect to postgres", zap.Error(err))
	}
	if err = postgres.EnsureSchema(ctx, pool); err != nil {
		logger.Fatal("cannot apply schema", zap.Error(err))
	}

	// Kafka Topology
	topology := kafka.NewTopology(appKonf.Kafka.Topics.For, appKonf.Kafka.ConsumerGroup)
	admin, err := kafka.NewAdminClient(appKonf.Kafka.Brokers)
	if err != nil {
		logger.Fatal("cannot create kafka admin client", zap.Error(err))
	}
	err = topology.Apply(ctx, admin, appKonf.Kafka.Partitions, appKonf.Kafka.ReplicationFactor, logger)
	admin.Close()
	if err != nil {
		logger.Fatal("cannot apply kafka topology", zap.Error(err))
	}

	// Kafka Producer
	metrics := kprom.NewMetrics(appKonf.Kafka.MetricsNamespace)
	producer, err := kafka.NewProducerClient(appKonf.Kafka.Brokers, metrics)
	if err != nil {
		logger.Fatal("cannot create kafka producer", zap.Error(err))
	}
	publisher := kafka.NewPublisher(producer, logger, appKonf.Kafka.PublishTimeout)

	workers := payments.NewWorkerPool(context.Background(), appKonf.Payments.Workers, appKonf.Payments.QueueSize, logger)
	provider := payments.NewSimulator(
		appKonf.Payments.SettlementMinDelay,
		appKonf.Payments.SettlementMaxDelay,
		appKonf.Payments.SuccessRate,
	)
	pipeline := payments.NewPipeline(
		postgres.NewTxRepository(pool),
		publisher,
		provider,
		workers,
		payments.Settings{
			Ceiling:           appKonf.Payments.Ceiling(),
			SettlementTimeout: appKonf.Payments.SettlementTimeout,
			TopicFor:          topology.Topic,
		},
		logger,
	)

	srv := &http.Server{
		Addr:         appKonf.HTTP.PaymentsAddress,
		Handler:      handlers.NewRouter(logger, metrics.Handler(), handlers.NewPaymentsHandler(pipeline, logger)),
		ReadTimeout:  appKonf.HTTP.ReadTimeout,
		WriteTimeout: appKonf.HTTP.WriteTimeout,
	}

	go func() {
		logger.Info("http server listening", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !goerrors.Is(err, http.ErrServerClosed) {
			logger.Error("http server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), appKonf.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown incomplete", zap.Error(err))
	}
	workers.Stop()
	publisher.Close(shutdownCtx)
	pool.Close()
}
