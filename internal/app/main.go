package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	kafkabroker "github.com/Egor213/Sawmill/internal/broker/kafka"
	"github.com/Egor213/Sawmill/internal/config"
	httpv1 "github.com/Egor213/Sawmill/internal/controller/http/v1"
	"github.com/Egor213/Sawmill/internal/metrics"
	"github.com/Egor213/Sawmill/internal/repo"
	"github.com/Egor213/Sawmill/internal/service"
	errorsUtils "github.com/Egor213/Sawmill/pkg/errors"
	"github.com/Egor213/Sawmill/pkg/httpserver"
	"github.com/Egor213/Sawmill/pkg/logger"
	"github.com/Egor213/Sawmill/pkg/postgres"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"

	log "github.com/sirupsen/logrus"
)

var errNoSecretKey = errors.New("no session secret key configured; generate one with --create-secret-key and pass it via SAWMILL_SECRET_KEY or --secret-key")

func Run() {
	// Config
	cfg, err := config.New(os.Args[1:])
	if err != nil {
		log.Fatal(errorsUtils.WrapPathErr(err))
	}

	// Logger
	logger.SetupLogger(cfg.Log.Level, bool(cfg.HTTP.Debug))
	log.Info("Logger has been set up")
	log.Debugf("Revision: %s", cfg.App.Revision)

	// One-shot actions
	done, err := runAction(cfg, os.Stdout)
	if err != nil {
		log.Fatal(errorsUtils.WrapPathErr(err))
	}
	if done {
		return
	}

	if cfg.Session.SecretKey == "" {
		log.Fatal(errNoSecretKey)
	}

	// DB connecting
	log.Info("Connecting to DB")
	pg, err := postgres.New(context.Background(), cfg.PG.URL,
		postgres.MaxPoolSize(cfg.PG.MaxPoolSize),
		postgres.ConnAttempts(cfg.PG.ConnAttempts),
		postgres.ConnTimeout(cfg.PG.ConnTimeout),
	)
	if err != nil {
		log.Fatal(errorsUtils.WrapPathErr(err))
	}
	defer pg.Close()
	log.Info("Connected to DB")

	// Repos
	repositories := repo.NewRepositories(pg)

	// Metrics
	counters := metrics.New()

	// Broker
	deps := service.ServicesDependencies{
		Repos:          repositories,
		Counters:       counters,
		PublishTimeout: cfg.Kafka.PublishTimeout,
		Revision:       cfg.App.Revision,
	}
	var producer *kafkabroker.Producer
	if len(cfg.Kafka.Brokers) > 0 {
		log.Infof("Publishing accepted entries to Kafka topic %s", cfg.Kafka.Topic)
		producer = kafkabroker.NewProducer(kafkabroker.ProducerConfig{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
		})
		deps.BrokerProducer = producer
	}

	// Services
	services := service.NewServices(deps)

	// Sessions
	store := sessions.NewCookieStore([]byte(cfg.Session.SecretKey))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   cfg.Session.MaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	// HTTP Server
	log.Info("Starting HTTP server...")
	log.Debugf("Server port: %s", cfg.HTTP.Port)
	handler := echo.New()
	handler.HideBanner = true
	handler.Debug = bool(cfg.HTTP.Debug)
	metrics.ConfigureMiddleware(handler)
	err = httpv1.ConfigureRouter(handler, httpv1.RouterDependencies{
		Services:       services,
		Counters:       counters,
		SessionStore:   store,
		SessionOptions: store.Options,
	})
	if err != nil {
		log.Fatal(errorsUtils.WrapPathErr(err))
	}
	httpServer := httpserver.New(handler,
		httpserver.Host(cfg.HTTP.Host),
		httpserver.Port(cfg.HTTP.Port),
		httpserver.ReadTimeout(cfg.HTTP.ReadTimeout),
		httpserver.WriteTimeout(cfg.HTTP.WriteTimeout),
		httpserver.ShutdownTimeout(cfg.HTTP.ShutdownTimeout),
	)

	// Prometheus server
	log.Info("Starting metrics server...")
	log.Debugf("Server port: %s", cfg.Prometheus.Port)
	metricsHandler := echo.New()
	metricsHandler.HideBanner = true
	metrics.ConfigureRouter(metricsHandler)
	metricsServer := httpserver.New(metricsHandler, httpserver.Port(cfg.Prometheus.Port))

	// Waiting signal
	log.Info("Configuring graceful shutdown")
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		log.Info("app - Run - signal: " + s.String())
	case err := <-httpServer.Notify():
		log.Error(errorsUtils.WrapPathErr(err))
	case err := <-metricsServer.Notify():
		log.Error(errorsUtils.WrapPathErr(err))
	}

	// Graceful shutdown
	log.Info("Shutting down...")
	if err := httpServer.Shutdown(); err != nil {
		log.Error(errorsUtils.WrapPathErr(err))
	}
	if err := metricsServer.Shutdown(); err != nil {
		log.Error(errorsUtils.WrapPathErr(err))
	}
	if producer != nil {
		if err := producer.Close(); err != nil {
			log.Error(errorsUtils.WrapPathErr(err))
		}
	}
}
