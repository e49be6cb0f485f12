// Package consumer reads tracker packages from Kafka and hands them to a Handler.
package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
)

// Reader exposes the minimal kafka.Reader interface needed by the processor.
type Reader interface {
	FetchMessage(context.Context) (kafka.Message, error)
	CommitMessages(context.Context, ...kafka.Message) error
	Close() error
}

// Handler receives decoded messages from Kafka.
type Handler interface {
	Handle(context.Context, Message) error
}

// Message is the decoded representation of a Kafka record.
type Message struct {
	Topic     string
	Partition int
	Offset    int64
	Key       string
	Timestamp time.Time
	EventType string
	Headers   map[string]string
	Payload   json.RawMessage
}

// Option configures optional behaviour for the Processor.
type Option func(*Processor)

// WithLogger overrides the logger used to report errors.
func WithLogger(logger *log.Logger) Option {
	return func(p *Processor) {
		p.logger = logger
	}
}

// WithRetry sets how many times a failing handler is invoked per message and
// the base delay between attempts. The delay grows linearly with the attempt.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(p *Processor) {
		if attempts < 1 {
			attempts = 1
		}
		p.attempts = attempts
		p.retryDelay = delay
	}
}

// Processor pulls messages from Kafka, decodes them, and dispatches to a Handler.
type Processor struct {
	reader     Reader
	handler    Handler
	logger     *log.Logger
	attempts   int
	retryDelay time.Duration
}

// NewProcessor constructs a Processor with the provided reader and handler.
func NewProcessor(reader Reader, handler Handler, opts ...Option) *Processor {
	p := &Processor{
		reader:     reader,
		handler:    handler,
		logger:     log.New(log.Writer(), "[consumer] ", log.LstdFlags|log.Lshortfile),
		attempts:   3,
		retryDelay: 500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run processes messages until the context is cancelled or a message cannot
// be handled within the configured attempts. In the latter case the failing
// message stays uncommitted and Run returns, so the next consumer of the
// partition resumes from it.
func (p *Processor) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		msg, err := p.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}
			p.logger.Printf("fetch error: %v", err)
			continue
		}

		event, err := p.process(ctx, msg)
		if err != nil {
			return err
		}
		if err := p.reader.CommitMessages(ctx, msg); err != nil {
			p.logger.Printf("commit error (topic=%s, offset=%d): %v", msg.Topic, msg.Offset, err)
			continue
		}
		if event != nil {
			recordProcessed(*event)
		}
	}
}

// process returns the handled event, or nil for a record that could not be
// decoded and is committed anyway so it cannot block the partition. An error
// means the handler kept failing and the record must not be committed.
func (p *Processor) process(ctx context.Context, msg kafka.Message) (*Message, error) {
	event, err := decodeMessage(msg)
	if err != nil {
		p.logger.Printf("decode error (topic=%s, partition=%d, offset=%d): %v", msg.Topic, msg.Partition, msg.Offset, err)
		recordDecodeError(msg.Topic)
		return nil, nil
	}

	for attempt := 1; ; attempt++ {
		err := p.handler.Handle(ctx, event)
		if err == nil {
			return &event, nil
		}
		recordHandlerError(event)
		if attempt >= p.attempts {
			return nil, fmt.Errorf("handle %s (partition=%d, offset=%d) after %d attempts: %w",
				event.EventType, event.Partition, event.Offset, attempt, err)
		}
		p.logger.Printf("handler error, retrying (attempt=%d, key=%s): %v", attempt, event.Key, err)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(attempt) * p.retryDelay):
		}
	}
}

func decodeMessage(msg kafka.Message) (Message, error) {
	headers := make(map[string]string, len(msg.Headers))
	for _, header := range msg.Headers {
		headers[header.Key] = string(header.Value)
	}

	eventType := headers["event_type"]
	if eventType == "" {
		return Message{}, errors.New("missing event_type header")
	}

	payload := msg.Value
	// Confluent Schema Registry framing: magic byte + 4-byte schema id.
	if len(payload) >= 5 && payload[0] == 0x00 {
		payload = payload[5:]
	}
	if !json.Valid(payload) {
		return Message{}, fmt.Errorf("payload is not valid JSON (%d bytes)", len(payload))
	}

	return Message{
		Topic:     msg.Topic,
		Partition: msg.Partition,
		Offset:    msg.Offset,
		Key:       string(msg.Key),
		Timestamp: msg.Time,
		EventType: eventType,
		Headers:   headers,
		Payload:   json.RawMessage(append([]byte(nil), payload...)),
	}, nil
}
