package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	ServiceName string   `mapstructure:"service_name"`
	Env         string   `mapstructure:"env"`
	Port        string   `mapstructure:"port"`
	Database    Database `mapstructure:"database"`
	AWS         AWS      `mapstructure:"aws"`
	WhatsApp    WhatsApp `mapstructure:"whatsapp"`
	Job         Job      `mapstructure:"job"`
}

type Database struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
	SSLMode  string `mapstructure:"ssl_mode"`
}

type AWS struct {
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	Region          string `mapstructure:"region"`
	EndpointSQS     string `mapstructure:"endpoint_sqs"`
	SQSQueueURL     string `mapstructure:"sqs_queue_url"`
	DeadLetterURL   string `mapstructure:"dead_letter_url"`
	MaxReceiveCount int32  `mapstructure:"max_receive_count"`
}

type WhatsApp struct {
	URL    string `mapstructure:"url"`
	APIKey string `mapstructure:"api_key"`
}

type Job struct {
	IntervalSeconds int `mapstructure:"interval_seconds"`
	MaxAttempts     int `mapstructure:"max_attempts"`
}

func ReadConfig() (*Config, error) {
	viper.AutomaticEnv()
	viper.SetEnvPrefix("NOTIFICATION")

	setDefaultsFromEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}

func setDefaultsFromEnv() {
	// Service defaults
	viper.SetDefault("service_name", "notification-worker")
	viper.SetDefault("env", getEnv("ENV", "local"))
	viper.SetDefault("port", getEnv("PORT", "8081"))

	// Database defaults
	viper.SetDefault("database.host", getEnv("DB_HOST", "localhost"))
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", getEnv("DB_USER", "postgres"))
	viper.SetDefault("database.password", getEnv("DB_PASSWORD", "password"))
	viper.SetDefault("database.database", getEnv("DB_NAME", "ordering_system"))
	viper.SetDefault("database.ssl_mode", "disable")

	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		viper.Set("database.url", dbURL)
	}

	// AWS defaults
	viper.SetDefault("aws.access_key_id", getEnv("AWS_ACCESS_KEY_ID", "test"))
	viper.SetDefault("aws.secret_access_key", getEnv("AWS_SECRET_ACCESS_KEY", "test"))
	viper.SetDefault("aws.region", getEnv("AWS_DEFAULT_REGION", "us-east-1"))
	viper.SetDefault("aws.endpoint_sqs", getEnv("AWS_ENDPOINT_URL_SQS", "http://localhost:4566"))
	viper.SetDefault("aws.sqs_queue_url", getEnv("SQS_QUEUE_URL", "http://localhost:4566/000000000000/notification-events"))
	viper.SetDefault("aws.dead_letter_url", getEnv("SQS_DEAD_LETTER_URL", "http://localhost:4566/000000000000/notification-events-dlq"))
	viper.SetDefault("aws.max_receive_count", 5)

	// WhatsApp defaults
	viper.SetDefault("whatsapp.url", getEnv("WHATSAPP_URL", "http://localhost:9090/messages"))
	viper.SetDefault("whatsapp.api_key", getEnv("WHATSAPP_API_KEY", ""))

	// Job defaults
	viper.SetDefault("job.interval_seconds", 60)
	viper.SetDefault("job.max_attempts", 5)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetDatabaseURL constructs database URL from config
func (c *Config) GetDatabaseURL() string {
	if url := viper.GetString("database.url"); url != "" {
		return url
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// JobInterval returns how often the delivery job runs
func (c *Config) JobInterval() time.Duration {
	return time.Duration(c.Job.IntervalSeconds) * time.Second
}
