package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "config.yaml"

type Config struct {
	App      AppConfig      `yaml:"app"`
	HTTP     HTTPConfig     `yaml:"http"`
	GRPC     GRPCConfig     `yaml:"grpc"`
	Logging  LoggingConfig  `yaml:"logging"`
	Storage  StorageConfig  `yaml:"storage"`
	Database DatabaseConfig `yaml:"database"`
	SQLite   SQLiteConfig   `yaml:"sqlite"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Booking  BookingConfig  `yaml:"booking"`
	Tracking TrackingConfig `yaml:"tracking"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

type AppConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`
}

type HTTPConfig struct {
	Address         string   `yaml:"address"`
	AllowedOrigins  []string `yaml:"allowed_origins"`
	ShutdownSeconds int      `yaml:"shutdown_seconds"`
	// chat requests per second allowed per client
	ChatRPS   float64 `yaml:"chat_rps"`
	ChatBurst int     `yaml:"chat_burst"`
}

func (h HTTPConfig) ShutdownTimeout() time.Duration {
	return time.Duration(h.ShutdownSeconds) * time.Second
}

type GRPCConfig struct {
	Address    string `yaml:"address"`
	Reflection bool   `yaml:"reflection"`
}

type LoggingConfig struct {
	Level    string `yaml:"level"`
	Format   string `yaml:"format"`
	Output   string `yaml:"output"`
	FilePath string `yaml:"file_path"`
}

const (
	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
)

type StorageConfig struct {
	Driver   string `yaml:"driver"`
	Failover bool   `yaml:"failover"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type SQLiteConfig struct {
	Path string `yaml:"path"`
}

type RedisConfig struct {
	Addr      string `yaml:"addr"`
	Password  string `yaml:"password"`
	DB        int    `yaml:"db"`
	KeyPrefix string `yaml:"key_prefix"`
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	BookingEventsTopic string   `yaml:"booking_events_topic"`
	NotificationsTopic string   `yaml:"notifications_topic"`
	GroupID            string   `yaml:"group_id"`
	PublishRetries     int      `yaml:"publish_retries"`
}

func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

type BookingConfig struct {
	MinFare        int64 `yaml:"min_fare"`
	MaxFare        int64 `yaml:"max_fare"`
	SeatLayoutBays int   `yaml:"seat_layout_bays"`
}

type TrackingConfig struct {
	ReminderDelaySeconds int `yaml:"reminder_delay_seconds"`
}

func (t TrackingConfig) ReminderDelay() time.Duration {
	return time.Duration(t.ReminderDelaySeconds) * time.Second
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
	// listener for the worker, which has no HTTP API of its own
	WorkerAddress string `yaml:"worker_address"`
}

// PathFromEnv returns CONFIG_PATH or the default file name.
func PathFromEnv() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return DefaultPath
}

func LoadConfig(path string) (*Config, error) {
	// .env is optional
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	expanded := []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if err := yaml.Unmarshal(expanded, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	switch c.Storage.Driver {
	case StorageMemory:
	case StorageRedis:
		if c.Redis.Addr == "" {
			errs = append(errs, errors.New("redis.addr is required for redis storage"))
		}
	case StoragePostgres:
		if c.Database.Host == "" || c.Database.Name == "" {
			errs = append(errs, errors.New("database host and name are required for postgres storage"))
		}
	case StorageSQLite:
		if c.SQLite.Path == "" {
			errs = append(errs, errors.New("sqlite.path is required for sqlite storage"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage driver %q", c.Storage.Driver))
	}

	if c.Booking.MinFare <= 0 || c.Booking.MaxFare < c.Booking.MinFare {
		errs = append(errs, fmt.Errorf("invalid fare range [%d, %d]", c.Booking.MinFare, c.Booking.MaxFare))
	}
	if c.Kafka.PublishRetries < 1 {
		errs = append(errs, fmt.Errorf("kafka.publish_retries must be positive, got %d", c.Kafka.PublishRetries))
	}
	if c.Logging.Output == "file" && c.Logging.FilePath == "" {
		errs = append(errs, errors.New("logging.file_path is required for file output"))
	}

	return errors.Join(errs...)
}

func (c *Config) applyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "railbooking"
	}
	if c.App.Environment == "" {
		c.App.Environment = "development"
	}
	if c.HTTP.Address == "" {
		c.HTTP.Address = ":8080"
	}
	if c.HTTP.ShutdownSeconds == 0 {
		c.HTTP.ShutdownSeconds = 10
	}
	if c.HTTP.ChatRPS == 0 {
		c.HTTP.ChatRPS = 2
	}
	if c.HTTP.ChatBurst == 0 {
		c.HTTP.ChatBurst = 5
	}
	if c.GRPC.Address == "" {
		c.GRPC.Address = ":9090"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stdout"
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = StorageMemory
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Redis.KeyPrefix == "" {
		c.Redis.KeyPrefix = "railbooking:"
	}
	if c.Kafka.GroupID == "" {
		c.Kafka.GroupID = "railbooking-worker"
	}
	if c.Kafka.PublishRetries == 0 {
		c.Kafka.PublishRetries = 3
	}
	if c.Booking.MinFare == 0 {
		c.Booking.MinFare = 1450
	}
	if c.Booking.MaxFare == 0 {
		c.Booking.MaxFare = 2850
	}
	if c.Booking.SeatLayoutBays == 0 {
		c.Booking.SeatLayoutBays = 4
	}
	if c.Tracking.ReminderDelaySeconds == 0 {
		c.Tracking.ReminderDelaySeconds = 5
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.WorkerAddress == "" {
		c.Metrics.WorkerAddress = ":9101"
	}
}
