package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/golden-vcr/gap-auth/audit"
	"github.com/golden-vcr/gap-auth/entry"
	"github.com/golden-vcr/gap-auth/rmq"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newRejectionsCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rejections",
		Short:   "Logs rejected requests as they're published to RabbitMQ",
		Args:    cobra.NoArgs,
		PreRunE: bindFlags(v),
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := entry.ParseLevel(v.GetString("log-level"))
			if err != nil {
				return fmt.Errorf("invalid log level: %w", err)
			}
			cfg := loadAmqpConfig(v)
			if !cfg.enabled() {
				return errors.New("amqp-host is required: set --amqp-host or GAP_AMQP_HOST")
			}
			queue := rmq.RejectionsQueue.WithConsumerQueue(v.GetString("consumer-queue"))
			return runRejections(entry.NewApplication("gap-rejections", level), cfg, queue)
		},
	}
	addAmqpFlags(cmd.Flags())
	cmd.Flags().String("consumer-queue", "", "durable queue to read from, so rejections published while offline are kept; a temporary queue is used if empty")
	return cmd
}

func runRejections(app entry.Application, cfg amqpConfig, queue rmq.QueueDeclaration) error {
	defer app.Stop()

	conn, err := rmq.Connect(cfg.uri())
	if err != nil {
		return err
	}
	defer conn.Close()

	consumer, err := rmq.NewConsumer(conn, queue)
	if err != nil {
		return fmt.Errorf("error initializing rejections consumer: %w", err)
	}
	defer consumer.Close()

	deliveries, err := consumer.Recv(app.Context())
	if err != nil {
		return fmt.Errorf("error receiving from rejections queue: %w", err)
	}
	app.Log().Info("Waiting for rejections", "exchange", queue.Name, "consumerQueue", queue.ConsumerQueue)
	for {
		select {
		case <-app.Context().Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return errors.New("rejections channel closed")
			}
			handleRejectionDelivery(app, d)
		}
	}
}

func handleRejectionDelivery(app entry.Application, d amqp.Delivery) {
	var rejection audit.Rejection
	if err := json.Unmarshal(d.Body, &rejection); err != nil {
		app.Log().Error("Failed to decode rejection", "messageId", d.MessageId, "error", err)
		d.Nack(false, false)
		return
	}
	app.Log().Info("Request rejected",
		"rejectionId", rejection.Id.String(),
		"timestamp", rejection.Timestamp,
		"result", rejection.Result,
		"method", rejection.Method,
		"url", rejection.Url,
		"gapAuthClaimed", rejection.GapAuth,
		"remoteAddr", rejection.RemoteAddr,
		"requestId", rejection.RequestId,
	)
	d.Ack(false)
}
