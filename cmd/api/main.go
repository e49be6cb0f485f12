package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"example.com/fittracker/internal/api"
	"example.com/fittracker/internal/auth"
	"example.com/fittracker/internal/config"
	"example.com/fittracker/internal/domain"
	"example.com/fittracker/internal/publisher"
	httptransport "example.com/fittracker/internal/transport/http"
)

func main() {
	if err := run(config.Load()); err != nil {
		log.Fatalf("fittracker api: %v", err)
	}
	log.Println("fittracker api stopped")
}

// run serves until a shutdown signal arrives. Deferred cleanup, including
// flushing the report producer, runs before main exits.
func run(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var reports domain.ReportPublisher
	if cfg.PublishReports {
		producer := publisher.NewKafkaProducer(cfg.KafkaBrokers, publisher.WithBatchTimeout(10*time.Millisecond))
		defer func() {
			if err := producer.Close(); err != nil {
				log.Printf("close producer: %v", err)
			}
		}()
		reports = publisher.NewReportPublisher(producer, cfg.ReportsTopic)
	}
	service := domain.NewService(reports)

	handler := api.NewHandler(service)
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	mux.Handle("/metrics", promhttp.Handler())

	// Basic request logger
	logger := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log.Printf("%s %s", r.Method, r.URL.Path)
			next.ServeHTTP(w, r)
		})
	}

	authMiddleware := auth.NewMiddleware(
		auth.Config{Secret: cfg.JWTSecret, Issuer: cfg.JWTIssuer},
		auth.SkipPaths("/healthz", "/metrics"),
	)

	serverCfg := httptransport.DefaultServerConfig(cfg.HTTPAddress)
	serverCfg.ShutdownTimeout = cfg.ShutdownTimeout
	server := httptransport.NewServer(serverCfg, logger(authMiddleware.Wrap(mux)))

	log.Printf("fittracker api listening on %s (publish_reports=%t)", cfg.HTTPAddress, cfg.PublishReports)
	if err := httptransport.Run(ctx, server, serverCfg.ShutdownTimeout); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}
