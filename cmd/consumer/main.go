package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/segmentio/kafka-go"

	"example.com/fittracker/internal/config"
	"example.com/fittracker/internal/consumer"
	"example.com/fittracker/internal/domain"
	"example.com/fittracker/internal/publisher"
	httptransport "example.com/fittracker/internal/transport/http"
)

func main() {
	if err := run(config.Load()); err != nil {
		log.Fatalf("consumer: %v", err)
	}
	log.Println("consumer stopped")
}

// run consumes until a shutdown signal arrives or a package cannot be handled.
// In the latter case the error is returned after cleanup so the process exits
// non-zero and a restart resumes from the last committed offset.
func run(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	producer := publisher.NewKafkaProducer(cfg.KafkaBrokers)
	defer func() {
		if err := producer.Close(); err != nil {
			log.Printf("close producer: %v", err)
		}
	}()

	service := domain.NewService(publisher.NewReportPublisher(producer, cfg.ReportsTopic))
	handler := consumer.NewPackageHandler(service, nil)

	var wg sync.WaitGroup

	metricsSrv := httptransport.NewServer(httptransport.DefaultServerConfig(cfg.MetricsAddress), promhttp.Handler())
	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Printf("consumer metrics listening on %s", cfg.MetricsAddress)
		if err := httptransport.Run(ctx, metricsSrv, cfg.ShutdownTimeout); err != nil {
			log.Printf("metrics server error: %v", err)
		}
	}()

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:         cfg.KafkaBrokers,
		GroupID:         cfg.ConsumerGroupID,
		Topic:           cfg.PackagesTopic,
		MinBytes:        1e3,
		MaxBytes:        10e6,
		CommitInterval:  time.Second,
		RetentionTime:   24 * time.Hour,
		ReadLagInterval: -1,
	})
	defer reader.Close()

	proc := consumer.NewProcessor(reader, handler, consumer.WithRetry(cfg.HandlerAttempts, cfg.RetryDelay))

	log.Printf("consumer started (topic=%s, group=%s)", cfg.PackagesTopic, cfg.ConsumerGroupID)
	runErr := consumeResult(cfg.PackagesTopic, proc.Run(ctx))

	stop()
	wg.Wait()
	return runErr
}

// consumeResult treats cancellation, however wrapped, as a clean shutdown.
func consumeResult(topic string, err error) error {
	if err == nil || errors.Is(err, context.Canceled) {
		return nil
	}
	return fmt.Errorf("topic %s: %w", topic, err)
}
