package sqs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSQS struct {
	mu          sync.Mutex
	urlCalls    int
	sent        []string
	batches     [][]types.SendMessageBatchRequestEntry
	inbox       []types.Message
	deleted     []string
	receiveErr  error
	receiveHits int
}

func (f *fakeSQS) GetQueueUrl(_ context.Context, params *sqs.GetQueueUrlInput, _ ...func(*sqs.Options)) (*sqs.GetQueueUrlOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.urlCalls++
	return &sqs.GetQueueUrlOutput{QueueUrl: aws.String("https://sqs.local/000/" + *params.QueueName)}, nil
}

func (f *fakeSQS) SendMessage(_ context.Context, params *sqs.SendMessageInput, _ ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, *params.MessageBody)
	return &sqs.SendMessageOutput{}, nil
}

func (f *fakeSQS) SendMessageBatch(_ context.Context, params *sqs.SendMessageBatchInput, _ ...func(*sqs.Options)) (*sqs.SendMessageBatchOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.batches = append(f.batches, params.Entries)
	out := &sqs.SendMessageBatchOutput{}
	for _, entry := range params.Entries {
		out.Successful = append(out.Successful, types.SendMessageBatchResultEntry{Id: entry.Id})
	}
	return out, nil
}

func (f *fakeSQS) ReceiveMessage(ctx context.Context, _ *sqs.ReceiveMessageInput, _ ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error) {
	f.mu.Lock()
	f.receiveHits++
	if f.receiveErr != nil {
		err := f.receiveErr
		f.mu.Unlock()
		return nil, err
	}
	messages := f.inbox
	f.inbox = nil
	f.mu.Unlock()

	if len(messages) == 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(5 * time.Millisecond):
		}
	}
	return &sqs.ReceiveMessageOutput{Messages: messages}, nil
}

func (f *fakeSQS) DeleteMessage(_ context.Context, params *sqs.DeleteMessageInput, _ ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, *params.ReceiptHandle)
	return &sqs.DeleteMessageOutput{}, nil
}

func (f *fakeSQS) deletedHandles() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.deleted...)
}

func TestSenderSerializesAndCachesQueueURL(t *testing.T) {
	client := &fakeSQS{}
	sender := NewSender(client)
	ctx := context.Background()

	require.NoError(t, sender.SendMessage(ctx, "weather-refresh", map[string]float64{"lat": 51.5}))
	require.NoError(t, sender.SendMessage(ctx, "weather-refresh", map[string]float64{"lat": 48.8}))

	assert.Equal(t, []string{`{"lat":51.5}`, `{"lat":48.8}`}, client.sent)
	assert.Equal(t, 1, client.urlCalls)
}

func TestSenderSplitsBatches(t *testing.T) {
	client := &fakeSQS{}
	sender := NewSender(client)

	messages := make([]BatchMessage, 0, 12)
	for i := 0; i < 12; i++ {
		messages = append(messages, BatchMessage{MessageID: string(rune('a' + i)), Body: i})
	}

	result, err := sender.SendMessageBatch(context.Background(), "weather-refresh", messages)

	require.NoError(t, err)
	assert.Len(t, result.Successful, 12)
	assert.Empty(t, result.Failed)
	assert.Len(t, client.batches, 2)
}

func TestWorkerDeletesHandledMessages(t *testing.T) {
	client := &fakeSQS{inbox: []types.Message{
		{MessageId: aws.String("1"), ReceiptHandle: aws.String("r1"), Body: aws.String("ok")},
		{MessageId: aws.String("2"), ReceiptHandle: aws.String("r2"), Body: aws.String("fail")},
	}}
	handler := HandlerFunc(func(_ context.Context, msg *types.Message) error {
		if *msg.Body == "fail" {
			return errors.New("boom")
		}
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	worker, err := NewWorker(ctx, client, "weather-refresh", handler, &WorkerConfig{WaitTimeSeconds: 1})
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return len(client.deletedHandles()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, StatusUp, worker.HealthCheck().Status)
	cancel()
	<-done

	assert.Equal(t, []string{"r1"}, client.deletedHandles())
	health := worker.HealthCheck()
	assert.Equal(t, StatusDown, health.Status)
	assert.Equal(t, "1", health.Details["processed"])
	assert.Equal(t, "1", health.Details["failed"])
}

func TestWorkerReportsReceiveFailures(t *testing.T) {
	client := &fakeSQS{receiveErr: errors.New("unreachable")}
	handler := HandlerFunc(func(context.Context, *types.Message) error { return nil })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	worker, err := NewWorker(ctx, client, "weather-refresh", handler, &WorkerConfig{ErrorBackoff: time.Millisecond})
	require.NoError(t, err)

	go worker.Start(ctx)

	assert.Eventually(t, func() bool {
		return worker.HealthCheck().Status == StatusDown && worker.HealthCheck().Details["running"] == "true"
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, "unreachable", worker.HealthCheck().Details["last_error"])
}

func TestNewWorkerValidatesConfig(t *testing.T) {
	_, err := NewWorker(context.Background(), &fakeSQS{}, "q", nil, &WorkerConfig{MaxNumberOfMessages: 11})
	assert.Error(t, err)

	_, err = NewWorker(context.Background(), &fakeSQS{}, "q", nil, &WorkerConfig{WaitTimeSeconds: 21})
	assert.Error(t, err)
}
