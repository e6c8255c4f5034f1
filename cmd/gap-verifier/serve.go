package main

import (
	"fmt"

	"github.com/golden-vcr/gap-auth/audit"
	"github.com/golden-vcr/gap-auth/db"
	"github.com/golden-vcr/gap-auth/entry"
	"github.com/golden-vcr/gap-auth/hmac"
	"github.com/golden-vcr/gap-auth/rmq"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func newServeCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "serve",
		Short:   "Runs the example backend behind Gap-Signature validation",
		PreRunE: bindFlags(v),
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := entry.ParseLevel(v.GetString("log-level"))
			if err != nil {
				return fmt.Errorf("invalid log level: %w", err)
			}
			cfg, err := loadServeConfig(v)
			if err != nil {
				return err
			}
			return runServe(entry.NewApplication("gap-verifier", level), cfg)
		},
	}
	addServeFlags(cmd.Flags())
	return cmd
}

func runServe(app entry.Application, cfg *serveConfig) error {
	defer app.Stop()

	// Every rejected request is logged; it's also published to RabbitMQ and stored in
	// Postgres if those are configured. Those remote recorders run in the background so
	// that an unavailable store can't slow down responses to rejected requests.
	var remote []audit.Recorder
	if cfg.Amqp.enabled() {
		conn, err := rmq.Connect(cfg.Amqp.uri())
		if err != nil {
			return err
		}
		defer conn.Close()

		producer, err := rmq.NewProducer(conn, rmq.RejectionsQueue)
		if err != nil {
			return fmt.Errorf("error initializing rejections producer: %w", err)
		}
		remote = append(remote, audit.NewQueueRecorder(producer))
	}
	if cfg.Postgres.enabled() {
		database, err := db.Open(app.Context(), cfg.Postgres.uri())
		if err != nil {
			return err
		}
		defer database.Close()

		if err := audit.EnsureSchema(app.Context(), database); err != nil {
			return err
		}
		remote = append(remote, audit.NewPostgresRecorder(database))
	}
	recorders := []audit.Recorder{audit.NewLogRecorder(app.Log())}
	if len(remote) > 0 {
		async := audit.NewAsyncRecorder(audit.Multi(remote...), cfg.RecordQueueSize, cfg.RecordTimeout, app.Log())
		defer async.Close()
		recorders = append(recorders, async)
	}

	validate, err := hmac.Middleware(hmac.MiddlewareConfig{
		Secret:       cfg.Secret,
		MaxBodyBytes: cfg.MaxBodyBytes,
		OnReject:     audit.Hook(audit.Multi(recorders...), cfg.RecordTimeout),
	})
	if err != nil {
		return err
	}

	var g errgroup.Group
	if cfg.GRPCPort != 0 {
		validator, err := hmac.UnaryServerValidator(cfg.Secret)
		if err != nil {
			return err
		}
		s := grpc.NewServer(grpc.ChainUnaryInterceptor(entry.GRPCServerLogging(app.Log()), validator))
		healthpb.RegisterHealthServer(s, health.NewServer())
		g.Go(func() error {
			entry.RunGRPCServer(app, s, cfg.BindAddr, cfg.GRPCPort)
			return nil
		})
	}

	entry.RunServer(app, newHandler(validate), cfg.BindAddr, cfg.ListenPort)
	return g.Wait()
}
