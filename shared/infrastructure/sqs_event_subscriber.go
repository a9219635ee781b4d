package infrastructure

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"

	"github.com/tradeflow/ordering-system/shared/events"
	"github.com/tradeflow/ordering-system/shared/models"
	"github.com/tradeflow/ordering-system/shared/telemetry"
)

const (
	SQSMessageIDKey     = "sqs_message_id"
	SQSReceiptHandleKey = "sqs_receipt_handle"
	ReplyQueueURLKey    = "reply_queue_url"
)

type sqsMessage struct {
	Message types.Message
	Event   *events.Event
	Err     error
}

// EventHandler wraps the Event Handler interface
type EventHandler interface {
	HandlerID() string
	Handle(ctx context.Context, event *events.Event) error
}

// SQSEventSubscriber implements event subscription using AWS SQS.
//
// Handler failures never drop a message. A retryable error leaves the
// message on the queue with an escalating visibility timeout; a fatal error
// (events.IsFatal) or exhausting the receive count moves the raw message to
// the dead-letter queue for manual inspection.
type SQSEventSubscriber struct {
	mux              sync.RWMutex
	inboundMessages  chan *sqsMessage
	outboundMessages chan *sqsMessage
	cancel           context.CancelFunc
	running          atomic.Bool
	options          *sqsSubscriberOptions

	client   *sqs.Client
	queueURL string
	handler  EventHandler
}

type sqsSubscriberOptions struct {
	name                       string
	workers                    int32
	readers                    int32
	cleaners                   int32
	maxNumberOfMessages        int32
	waitTimeSeconds            int32
	visibilityTimeout          int32
	sleepTimeAfterEmptyReceive time.Duration
	sleepTimeAfterError        time.Duration
	maxReceiveCount            int32
	deadLetterQueueURL         string
	receiveCountRange          int32
	visibilityTimeoutOffset    int32
	maxVisibilityTimeout       int32
}

type SQSSubscriberOption func(*sqsSubscriberOptions)

func WithWorkers(workers int32) SQSSubscriberOption {
	return func(o *sqsSubscriberOptions) {
		o.workers = workers
	}
}

func WithReaders(readers int32) SQSSubscriberOption {
	return func(o *sqsSubscriberOptions) {
		o.readers = readers
	}
}

func WithVisibilityTimeout(timeout int32) SQSSubscriberOption {
	return func(o *sqsSubscriberOptions) {
		o.visibilityTimeout = timeout
	}
}

// WithDeadLetterQueue routes exhausted and fatal messages to the given queue.
func WithDeadLetterQueue(queueURL string, maxReceiveCount int32) SQSSubscriberOption {
	return func(o *sqsSubscriberOptions) {
		o.deadLetterQueueURL = queueURL
		o.maxReceiveCount = maxReceiveCount
	}
}

// NewSQSEventSubscriber creates a new SQS event subscriber
func NewSQSEventSubscriber(
	client *sqs.Client,
	queueURL string,
	handler EventHandler,
	opts ...SQSSubscriberOption,
) *SQSEventSubscriber {
	options := &sqsSubscriberOptions{
		name:                       "sqs",
		workers:                    30,
		readers:                    1,
		cleaners:                   2,
		maxNumberOfMessages:        5,
		waitTimeSeconds:            15,
		visibilityTimeout:          30,
		sleepTimeAfterEmptyReceive: 10 * time.Second,
		sleepTimeAfterError:        20 * time.Second,
		maxReceiveCount:            5,
		receiveCountRange:          3,
		visibilityTimeoutOffset:    30,
		maxVisibilityTimeout:       900, // 15 minutes
	}

	for _, opt := range opts {
		opt(options)
	}

	return &SQSEventSubscriber{
		client:           client,
		queueURL:         queueURL,
		handler:          handler,
		inboundMessages:  make(chan *sqsMessage, 10),
		outboundMessages: make(chan *sqsMessage, 10),
		options:          options,
	}
}

// Start starts the SQS subscriber
func (s *SQSEventSubscriber) Start(ctx context.Context) error {
	if s.running.Load() {
		return nil
	}

	s.mux.Lock()
	defer s.mux.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	ctx, cancel := context.WithCancel(ctx)
	s.inboundMessages = make(chan *sqsMessage, 10)
	s.outboundMessages = make(chan *sqsMessage, 10)
	s.cancel = cancel

	for i := 0; i < int(s.options.workers); i++ {
		go s.startWorker(ctx)
	}

	for i := 0; i < int(s.options.readers); i++ {
		go s.startReader(ctx)
	}

	for i := 0; i < int(s.options.cleaners); i++ {
		go s.startCleaner(ctx)
	}

	s.running.Store(true)

	return nil
}

// Stop stops the SQS subscriber
func (s *SQSEventSubscriber) Stop(ctx context.Context) error {
	if !s.running.Load() {
		return nil
	}

	s.mux.Lock()
	defer s.mux.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	if s.inboundMessages != nil {
		close(s.inboundMessages)
	}

	if s.outboundMessages != nil {
		close(s.outboundMessages)
	}

	s.cancel = nil
	s.inboundMessages = nil
	s.outboundMessages = nil

	s.running.Store(false)

	return nil
}

func (s *SQSEventSubscriber) startWorker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case message := <-s.inboundMessages:
			if message == nil {
				continue
			}
			s.handle(ctx, message)
		}
	}
}

func (s *SQSEventSubscriber) startReader(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
			if err := s.read(ctx); err != nil {
				time.Sleep(s.options.sleepTimeAfterError)
			}
		}
	}
}

func (s *SQSEventSubscriber) startCleaner(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case message := <-s.outboundMessages:
			if message == nil {
				continue
			}
			if err := s.clean(ctx, message); err != nil {
				log.Printf("sqs cleaner: %v", err)
				continue
			}
		}
	}
}

func (s *SQSEventSubscriber) read(ctx context.Context) error {
	output, err := s.client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
		QueueUrl:            aws.String(s.queueURL),
		MaxNumberOfMessages: s.options.maxNumberOfMessages,
		WaitTimeSeconds:     s.options.waitTimeSeconds,
		VisibilityTimeout:   s.options.visibilityTimeout,
		AttributeNames: []types.QueueAttributeName{
			"ApproximateReceiveCount",
			"ApproximateFirstReceiveTimestamp",
		},
		MessageAttributeNames: []string{"All"},
	})
	if err != nil {
		return errors.Wrap(err, "failed to receive message from SQS")
	}

	if len(output.Messages) == 0 {
		time.Sleep(s.options.sleepTimeAfterEmptyReceive)
		return nil
	}

	for _, message := range output.Messages {
		event, err := decodeMessage(&message)
		if err != nil {
			// Undecodable body, straight to the dead-letter path.
			select {
			case s.outboundMessages <- &sqsMessage{Message: message, Err: events.Fatal(err)}:
			case <-ctx.Done():
				return ctx.Err()
			}
			continue
		}

		event.Metadata.Set(SQSMessageIDKey, *message.MessageId)
		if message.ReceiptHandle != nil {
			event.Metadata.Set(SQSReceiptHandleKey, *message.ReceiptHandle)
		}

		for k, v := range message.MessageAttributes {
			if v.StringValue != nil {
				event.Metadata.Set(k, *v.StringValue)
			}
		}

		select {
		case s.inboundMessages <- &sqsMessage{
			Message: message,
			Event:   event,
		}:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return nil
}

// decodeMessage parses the wire envelope written by SNSEventPublisher into a
// domain event.
func decodeMessage(message *types.Message) (*events.Event, error) {
	var wire snsMessage
	if err := json.Unmarshal([]byte(*message.Body), &wire); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal message body")
	}

	if wire.Topic == "" {
		return nil, errors.New("message has no topic")
	}

	metadata := wire.Metadata
	if metadata == nil {
		metadata = make(events.Metadata)
	}

	return &events.Event{
		ID:            models.ID(wire.ID),
		Topic:         events.Topic(wire.Topic),
		Version:       "1.0",
		Data:          wire.Payload,
		Metadata:      metadata,
		Timestamp:     wire.Timestamp,
		CorrelationID: models.ID(wire.CorrelationID),
	}, nil
}

func (s *SQSEventSubscriber) handle(ctx context.Context, message *sqsMessage) {
	s.mux.RLock()
	handler := s.handler
	s.mux.RUnlock()

	if handler == nil {
		message.Err = errors.New("no handler configured")
	} else {
		message.Err = handler.Handle(ctx, message.Event)
	}

	select {
	case s.outboundMessages <- message:
	case <-ctx.Done():
	}
}

func (s *SQSEventSubscriber) clean(ctx context.Context, message *sqsMessage) error {
	if message.Err == nil {
		return s.ack(ctx, &message.Message)
	}

	receiveCount, err := strconv.Atoi(message.Message.Attributes["ApproximateReceiveCount"])
	if err != nil {
		receiveCount = 1
	}

	if events.IsFatal(message.Err) || int32(receiveCount) >= s.options.maxReceiveCount {
		return s.deadLetter(ctx, message)
	}

	// Retryable failure: back off by extending the visibility timeout in
	// proportion to how many times the message has been received.
	visibilityTimeout := s.options.visibilityTimeout
	visibilityTimeout += (int32(receiveCount) / s.options.receiveCountRange) * s.options.visibilityTimeoutOffset

	if visibilityTimeout > s.options.maxVisibilityTimeout {
		visibilityTimeout = s.options.maxVisibilityTimeout
	}

	telemetry.RecordCounter(ctx, "events_retried_total", "Event deliveries left for redelivery", 1,
		attribute.String("subscriber", s.options.name),
	)

	_, err = s.client.ChangeMessageVisibility(ctx, &sqs.ChangeMessageVisibilityInput{
		QueueUrl:          &s.queueURL,
		ReceiptHandle:     message.Message.ReceiptHandle,
		VisibilityTimeout: visibilityTimeout,
	})
	if err != nil {
		return errors.Wrap(err, "failed to extend visibility timeout")
	}

	return nil
}

// deadLetter copies the raw message to the dead-letter queue and acks it on
// the source queue. Without a configured DLQ the message stays on the queue
// until SQS expires it, which at least keeps the failure visible.
func (s *SQSEventSubscriber) deadLetter(ctx context.Context, message *sqsMessage) error {
	if s.options.deadLetterQueueURL == "" {
		return errors.Errorf("message %s exhausted retries and no dead-letter queue is configured", *message.Message.MessageId)
	}

	attrs := map[string]types.MessageAttributeValue{
		"error": {
			DataType:    aws.String("String"),
			StringValue: aws.String(message.Err.Error()),
		},
		"source_queue": {
			DataType:    aws.String("String"),
			StringValue: aws.String(s.queueURL),
		},
	}

	_, err := s.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:          aws.String(s.options.deadLetterQueueURL),
		MessageBody:       message.Message.Body,
		MessageAttributes: attrs,
	})
	if err != nil {
		return errors.Wrap(err, "failed to send message to dead-letter queue")
	}

	topic := "unknown"
	if message.Event != nil {
		topic = message.Event.Topic.String()
	}
	log.Printf("dead-lettered message %s (topic %s): %v", *message.Message.MessageId, topic, message.Err)

	telemetry.RecordCounter(ctx, "events_dead_lettered_total", "Event deliveries moved to the dead-letter queue", 1,
		attribute.String("subscriber", s.options.name),
		attribute.String("topic", topic),
	)

	return s.ack(ctx, &message.Message)
}

func (s *SQSEventSubscriber) ack(ctx context.Context, message *types.Message) error {
	_, err := s.client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      &s.queueURL,
		ReceiptHandle: message.ReceiptHandle,
	})
	if err != nil {
		return errors.Wrap(err, "failed to delete message from SQS")
	}

	return nil
}
