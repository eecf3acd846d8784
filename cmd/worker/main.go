package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/OFFIS-RIT/wikigraph/internal/queue"
	"github.com/OFFIS-RIT/wikigraph/internal/setup"
	"github.com/OFFIS-RIT/wikigraph/internal/storage"
	"github.com/OFFIS-RIT/wikigraph/internal/timing"
	"github.com/OFFIS-RIT/wikigraph/internal/util"
	"github.com/OFFIS-RIT/wikigraph/pkg/logger"
	"github.com/OFFIS-RIT/wikigraph/pkg/logger/console"

	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	amqp "github.com/rabbitmq/amqp091-go"
)

func main() {
	util.LoadEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// logger
	debug := util.GetEnvBool("DEBUG", false)
	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug:  debug,
		Prefix: "worker",
		Format: console.Format(util.GetEnvString("LOG_FORMAT", string(console.FormatText))),
	})
	logger.Init(consoleLogger)

	cfg := setup.FromEnv()

	// Init s3 client
	var s3Client *awss3.Client
	if storage.Enabled() {
		client, err := storage.NewS3Client(ctx)
		if err != nil {
			logger.Fatal("Failed to create S3 client", "err", err)
		}
		s3Client = client
	}

	// Init rabbitmq
	conn := queue.Init()
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Fatal("Failed to open channel", "err", err)
	}
	defer ch.Close()

	if err := queue.SetupQueues(ch, []string{queue.CrawlQueue}); err != nil {
		logger.Fatal("Failed to set up queues", "err", err)
	}

	deps := queue.Deps{
		Fetcher: cfg.Client(),
		Config:  cfg,
		S3:      s3Client,
		Publish: func(queueName string, data []byte) error {
			return queue.PublishFIFO(ch, queueName, data)
		},
		Notify: func(topic string, data []byte) error {
			return queue.PublishTopic(ch, topic, data)
		},
	}

	// A single consumer channel with prefetch=1 delivers one message at a time.
	consumerCh, err := conn.Channel()
	if err != nil {
		logger.Fatal("Failed to open consumer channel", "err", err)
	}
	defer consumerCh.Close()

	if err := consumerCh.Qos(1, 0, true); err != nil {
		logger.Fatal("Failed to set QoS", "err", err)
	}

	msgs, err := consumerCh.Consume(
		queue.CrawlQueue,
		queue.CrawlQueue+"_consumer",
		false, // autoAck
		false, // exclusive
		false, // noLocal
		false, // noWait
		nil,   // args
	)
	if err != nil {
		logger.Fatal("Failed to start consuming", "queue", queue.CrawlQueue, "err", err)
	}

	logger.Info("[Worker] Listening for messages", "queue", queue.CrawlQueue)

	for {
		select {
		case <-ctx.Done():
			logger.Info("[Worker] Shutdown signal received, exiting...")
			return
		case msg, ok := <-msgs:
			if !ok {
				logger.Info("[Worker] Message channel closed", "queue", queue.CrawlQueue)
				return
			}
			handleMessage(ctx, consumerCh, deps, msg)
		}
	}
}

func handleMessage(ctx context.Context, ch *amqp.Channel, deps queue.Deps, msg amqp.Delivery) {
	sw := timing.NewStopwatch()
	logger.Info("[Worker] Received message", "queue", queue.CrawlQueue)

	processingErr := queue.ProcessCrawlMessage(ctx, deps, string(msg.Body))
	switch {
	case processingErr == nil:
		if err := msg.Ack(false); err != nil {
			logger.Error("[Worker] Failed to ack message", "err", err)
		}
		logger.Info("[Worker] Message processed successfully", "queue", queue.CrawlQueue)
	case errors.Is(processingErr, queue.ErrInvalidMessage):
		logger.Error("[Worker] Rejecting invalid message", "queue", queue.CrawlQueue, "err", processingErr)
		sendToDLQ(ch, msg, queue.CrawlQueue)
	default:
		logger.Error("[Worker] Error processing message", "queue", queue.CrawlQueue, "err", processingErr)
		handleProcessingError(ctx, ch, deps, msg, queue.CrawlQueue, processingErr)
	}

	logger.Info("[Worker] Processing time", "duration", timing.FormatDuration(sw.Total()))
}

func handleProcessingError(ctx context.Context, ch *amqp.Channel, deps queue.Deps, msg amqp.Delivery, queueName string, cause error) {
	retries := queue.RetryCount(msg.Headers)
	if retries >= queue.MaxRetries {
		if err := queue.PublishFailure(ctx, deps, string(msg.Body), cause); err != nil {
			logger.Error("[Worker] Failed to publish failure result", "err", err)
		}
		sendToDLQ(ch, msg, queueName)
		return
	}

	retryName := queueName + "_retry"
	headers := msg.Headers
	if headers == nil {
		headers = amqp.Table{}
	}
	headers["x-retries"] = int32(retries + 1)

	pubErr := ch.Publish(
		"",
		retryName,
		false,
		false,
		amqp.Publishing{
			ContentType: msg.ContentType,
			Body:        msg.Body,
			Headers:     headers,
		},
	)
	if pubErr != nil {
		logger.Error("[Worker] Failed to publish to retry queue", "retry_queue", retryName, "err", pubErr)
		msg.Nack(false, true)
		return
	}
	logger.Info("[Worker] Scheduled retry", "retry_queue", retryName, "attempt", fmt.Sprintf("%d/%d", retries+1, queue.MaxRetries))
	msg.Ack(false)
}

func sendToDLQ(ch *amqp.Channel, msg amqp.Delivery, queueName string) {
	dlqName := queueName + "_dlq"
	logger.Info("[Worker] Sending message to DLQ", "dlq", dlqName)
	pubErr := ch.Publish(
		"",
		dlqName,
		false,
		false,
		amqp.Publishing{
			ContentType: msg.ContentType,
			Body:        msg.Body,
			Headers:     msg.Headers,
		},
	)
	if pubErr != nil {
		logger.Error("[Worker] Failed to publish to DLQ", "dlq", dlqName, "err", pubErr)
		msg.Nack(false, true)
		return
	}
	msg.Ack(false)
}
