package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/golden-vcr/gap-auth/db"
	"github.com/golden-vcr/gap-auth/rmq"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var errNoSecret = errors.New("secret is required: set --secret or GAP_SECRET")

type amqpConfig struct {
	Host     string
	Port     int
	Vhost    string
	User     string
	Password string
}

func (c amqpConfig) enabled() bool {
	return c.Host != ""
}

func (c amqpConfig) uri() string {
	return rmq.FormatConnectionString(c.Host, c.Port, c.Vhost, c.User, c.Password)
}

type postgresConfig struct {
	Host     string
	Port     int
	DBName   string
	User     string
	Password string
	SSLMode  string
}

func (c postgresConfig) enabled() bool {
	return c.Host != ""
}

func (c postgresConfig) uri() string {
	return db.FormatConnectionString(c.Host, c.Port, c.DBName, c.User, c.Password, c.SSLMode)
}

type serveConfig struct {
	Secret          string
	BindAddr        string
	ListenPort      int
	GRPCPort        int
	MaxBodyBytes    int64
	RecordTimeout   time.Duration
	RecordQueueSize int
	Amqp            amqpConfig
	Postgres        postgresConfig
}

func addAmqpFlags(flags *pflag.FlagSet) {
	flags.String("amqp-host", "", "RabbitMQ host; rejections are published only if set")
	flags.Int("amqp-port", 5672, "RabbitMQ port")
	flags.String("amqp-vhost", "", "RabbitMQ virtual host")
	flags.String("amqp-user", "guest", "RabbitMQ user")
	flags.String("amqp-password", "guest", "RabbitMQ password")
}

func loadAmqpConfig(v *viper.Viper) amqpConfig {
	return amqpConfig{
		Host:     v.GetString("amqp-host"),
		Port:     v.GetInt("amqp-port"),
		Vhost:    v.GetString("amqp-vhost"),
		User:     v.GetString("amqp-user"),
		Password: v.GetString("amqp-password"),
	}
}

func addServeFlags(flags *pflag.FlagSet) {
	flags.String("secret", "", "secret key shared with the signing proxy (required)")
	flags.String("bind-addr", "", "address to bind to")
	flags.Int("listen-port", 5000, "port on which to serve HTTP")
	flags.Int("grpc-port", 0, "port on which to serve gRPC health checks; disabled if 0")
	flags.Int64("max-body-bytes", 10<<20, "largest request body that will be buffered for validation")
	flags.Duration("record-timeout", 5*time.Second, "time allowed for recording each rejected request to RabbitMQ or Postgres")
	flags.Int("record-queue-size", 1024, "rejected requests buffered for recording; further rejections are only logged while the buffer is full")
	addAmqpFlags(flags)
	flags.String("pg-host", "", "Postgres host; rejections are stored only if set")
	flags.Int("pg-port", 5432, "Postgres port")
	flags.String("pg-database", "gapauth", "Postgres database name")
	flags.String("pg-user", "gapauth", "Postgres user")
	flags.String("pg-password", "", "Postgres password")
	flags.String("pg-sslmode", "", "Postgres sslmode")
}

func loadServeConfig(v *viper.Viper) (*serveConfig, error) {
	cfg := &serveConfig{
		Secret:          v.GetString("secret"),
		BindAddr:        v.GetString("bind-addr"),
		ListenPort:      v.GetInt("listen-port"),
		GRPCPort:        v.GetInt("grpc-port"),
		MaxBodyBytes:    v.GetInt64("max-body-bytes"),
		RecordTimeout:   v.GetDuration("record-timeout"),
		RecordQueueSize: v.GetInt("record-queue-size"),
		Amqp:            loadAmqpConfig(v),
		Postgres: postgresConfig{
			Host:     v.GetString("pg-host"),
			Port:     v.GetInt("pg-port"),
			DBName:   v.GetString("pg-database"),
			User:     v.GetString("pg-user"),
			Password: v.GetString("pg-password"),
			SSLMode:  v.GetString("pg-sslmode"),
		},
	}
	if cfg.Secret == "" {
		return nil, errNoSecret
	}
	if cfg.RecordQueueSize < 1 {
		return nil, fmt.Errorf("record-queue-size must be at least 1, got %d", cfg.RecordQueueSize)
	}
	return cfg, nil
}
