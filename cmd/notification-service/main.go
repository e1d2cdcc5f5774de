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
	models "pay-stream/models"
	memory "pay-stream/repositories/memory"
	mongodb "pay-stream/repositories/mongodb"
	redis "pay-stream/repositories/redis"
	notifications "pay-stream/services/notifications"

	// External Packages
	"github.com/alecthomas/kingpin/v2"
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

	logger, err := logging.New(appKonf.Logger.Level, notifications.ServiceName)
	if err != nil {
		log.Fatalf("Error building logger: %v", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Notification History
	var history notifications.HistoryRepository
	var closers []func(context.Context)
	switch appKonf.Notifications.HistoryStore {
	case config.HistoryMongo:
		mongoClient, err := mongodb.Connect(ctx, appKonf.Mongo.URI)
		if err != nil {
			logger.Fatal("cannot create mongo client", zap.Error(err))
		}
		repo := mongodb.NewNotificationRepository(mongoClient, appKonf.Mongo.Database, appKonf.Mongo.Collection)
		if err := repo.EnsureIndexes(ctx); err != nil {
			logger.Fatal("cannot create mongo indexes", zap.Error(err))
		}
		history = repo
		closers = append(closers, func(ctx context.Context) { _ = mongoClient.Disconnect(ctx) })
	default:
		history = memory.NewNotificationRepository()
	}

	// Redis Connection, only needed when rejected records are parked
	policy, _ := models.ParseRejectPolicy(appKonf.Notifications.RejectPolicy)
	var dlq kafka.DeadLetterQueue
	if policy != models.RejectDiscard {
		redisClient, err := redis.Connect(ctx, appKonf.Redis.URI, appKonf.Redis.Password)
		if err != nil {
			logger.Fatal("cannot create redis client", zap.Error(err))
		}
		dlq = redis.NewDeadLetterQueue(redisClient, logger, appKonf.Redis.DeadLetterKey)
		closers = append(closers, func(context.Context) { _ = redisClient.Close() })
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

	deliverer := notifications.NewSimulatedDeliverer(logger,
		appKonf.Notifications.DeliveryMinDelay,
		appKonf.Notifications.DeliveryMaxDelay)
	notifier := notifications.NewNotifier(logger, history, deliverer)

	// Kafka Consumers, one per topic, each labelled by its group on a shared registry
	metrics := kafka.NewMetricsRegistry(appKonf.Kafka.MetricsNamespace)
	base := models.ConsumerConfig{
		Brokers:      appKonf.Kafka.Brokers,
		RejectPolicy: policy,
		MaxRetries:   appKonf.Notifications.MaxRetries,
		RetryBackoff: appKonf.Notifications.RetryBackoff,
	}
	consumers, err := kafka.Subscribe(topology, base, logger, notifier, dlq, metrics)
	if err != nil {
		logger.Fatal("cannot create event consumers", zap.Error(err))
	}

	srv := &http.Server{
		Addr:         appKonf.HTTP.NotificationsAddress,
		Handler:      handlers.NewRouter(logger, metrics.Handler(), handlers.NewNotificationsHandler(notifier, logger)),
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

	consumed := make(chan struct{})
	go func() {
		defer close(consumed)
		if err := kafka.Run(ctx, consumers...); err != nil && !goerrors.Is(err, context.Canceled) {
			logger.Error("event consumers stopped", zap.Error(err))
		}
		stop()
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), appKonf.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown incomplete", zap.Error(err))
	}
	<-consumed
	for _, closeFn := range closers {
		closeFn(shutdownCtx)
	}
}
