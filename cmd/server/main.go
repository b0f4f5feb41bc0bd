package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"weather-lookup/internal/bootstrap"
	"weather-lookup/internal/config"
	"weather-lookup/internal/kafka"
	"weather-lookup/internal/logger"
	"weather-lookup/internal/services"
	"weather-lookup/internal/workers"
)

func main() {
	cfg := config.Load()
	log := logger.GetLogger()
	defer logger.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := bootstrap.OpenStore(ctx, cfg)
	if err != nil {
		log.Fatalw("Failed to open store", "backend", cfg.StoreBackend, "error", err)
	}

	kafkaBundle, err := kafka.InitKafka(cfg)
	if err != nil {
		log.Fatalw("Failed to connect Kafka", "error", err)
	}

	var events services.EventPublisher
	var consumer workers.Source
	if kafkaBundle != nil {
		events = kafkaBundle.LookupProducer
		consumer = kafkaBundle.LookupConsumer
	}

	app := bootstrap.InitBootstrap(cfg, store, events)
	workers.StartAllWorkers(ctx, consumer, app.History, cfg.InstanceID)

	if ok, src := app.Settings.Status(ctx); ok {
		log.Infow("OpenWeather API key configured", "source", src)
	} else {
		log.Warnw("No OpenWeather API key yet; set OPENWEATHER_API_KEY or PUT /settings/api-key")
	}

	r := bootstrap.InitRoutes(app.Handlers, app.Settings, cfg.CORSOrigins)
	srv := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     r,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	done := bootstrap.GracefulShutdown(srv, cancel, kafkaBundle, store)

	log.Infow("Server started", "port", cfg.Port, "store", cfg.StoreBackend, "instance", cfg.InstanceID)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalw("Server error", "error", err)
	}
	<-done
}
