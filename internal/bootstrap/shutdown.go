package bootstrap

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"weather-lookup/internal/kafka"
	"weather-lookup/internal/logger"
	"weather-lookup/internal/storage"
)

// GracefulShutdown waits for SIGINT/SIGTERM, then stops the server, cancels
// background work and closes Kafka and the store. done is closed afterwards.
func GracefulShutdown(srv *http.Server, cancel context.CancelFunc, kafkaBundle *kafka.KafkaBundle, store storage.Store) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig

		log := logger.GetLogger()
		log.Infow("Shutting down gracefully...")

		ctx, stop := context.WithTimeout(context.Background(), 10*time.Second)
		defer stop()
		if err := srv.Shutdown(ctx); err != nil {
			log.Errorw("Server shutdown error", "error", err)
		}

		cancel()
		kafkaBundle.Close()

		if store != nil {
			if err := store.Close(); err != nil {
				log.Errorw("Store close error", "error", err)
			}
		}
	}()
	return done
}
