package infrastructure

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/pkg/errors"

	"github.com/tradeflow/ordering-system/shared/events"
)

// Replier sends a response event back to the queue named by the request's
// reply_queue_url metadata. Replies are only sent on successful processing;
// a caller waiting on a failed request times out instead.
type Replier interface {
	Reply(ctx context.Context, request *events.Event, response *events.Event) error
}

// SQSReplier implements Replier over an SQS reply queue
type SQSReplier struct {
	client *sqs.Client
}

// NewSQSReplier creates a new SQSReplier
func NewSQSReplier() (*SQSReplier, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		return nil, errors.Wrap(err, "failed to load AWS config")
	}

	return &SQSReplier{client: sqs.NewFromConfig(cfg)}, nil
}

// Reply sends the response to the request's reply queue. Requests without a
// reply queue are fire-and-forget; that is a no-op, not an error.
func (r *SQSReplier) Reply(ctx context.Context, request *events.Event, response *events.Event) error {
	replyQueueURL, ok := request.Metadata.Get(ReplyQueueURLKey)
	if !ok || replyQueueURL == "" {
		return nil
	}

	payload, err := response.MarshalPayload()
	if err != nil {
		return errors.Wrap(err, "failed to marshal response payload")
	}

	wire := &snsMessage{
		ID:            response.ID.String(),
		Metadata:      response.Metadata,
		Topic:         string(response.Topic),
		CorrelationID: response.CorrelationID.String(),
		Payload:       payload,
		Timestamp:     response.Timestamp,
	}

	body, err := json.Marshal(wire)
	if err != nil {
		return errors.Wrap(err, "failed to marshal response")
	}

	_, err = r.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(replyQueueURL),
		MessageBody: aws.String(string(body)),
	})
	if err != nil {
		return errors.Wrap(err, "failed to send reply")
	}

	return nil
}
