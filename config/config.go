package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server         ServerConfig
	Logger         LoggerConfig
	Postgres       PostgresConfig
	Redis          RedisConfig
	Kafka          KafkaConfig
	ProductService ProductServiceConfig
	Ledger         LedgerConfig
	Tracing        TracingConfig
}

type ServerConfig struct {
	AppEnv   string
	HTTPPort string
	GRPCPort string
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	DisableCaller     bool
	DisableStacktrace bool
}

type PostgresConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int
	ConnMaxIdleTime int
	AutoMigrate     bool
}

type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
}

type KafkaConfig struct {
	Brokers []string
	// Order events consumed by the ledger listener.
	ListenerEnabled bool
	OrdersTopic     string
	GroupID         string
	// Alert notifications produced after commit.
	ProducerEnabled bool
	AlertsTopic     string
	Acks            string
	Retries         int
}

type ProductServiceConfig struct {
	BaseURL  string
	Timeout  time.Duration
	Retries  int
	CacheTTL time.Duration
}

type LedgerConfig struct {
	OpTimeout           time.Duration
	HookTimeout         time.Duration
	MovementPageSize    int
	HistoryDefaultLimit int
	BulkCheckParallel   int
}

type TracingConfig struct {
	Enabled     bool
	Endpoint    string
	ServiceName string
}

func LoadEnv() *Config {
	return &Config{
		Server: ServerConfig{
			AppEnv:   getEnv("APP_ENV", "dev"),
			HTTPPort: getEnv("HTTP_PORT", ":8084"),
			GRPCPort: getEnv("GRPC_PORT", ":9084"),
		},
		Logger: LoggerConfig{
			Level:             getEnv("LOGGER_LEVEL", "debug"),
			Encoding:          getEnv("LOGGER_ENCODING", "console"),
			DisableCaller:     getEnvBool("LOGGER_DISABLE_CALLER", false),
			DisableStacktrace: getEnvBool("LOGGER_DISABLE_STACKTRACE", true),
		},
		Postgres: PostgresConfig{
			Host:            getEnv("POSTGRES_HOST", "localhost"),
			Port:            getEnv("POSTGRES_PORT", "5433"),
			User:            getEnv("POSTGRES_USER", "omnipos"),
			Password:        getEnv("POSTGRES_PASSWORD", "omnipos"),
			DBName:          getEnv("POSTGRES_DB", "omnipos_inventory"),
			SSLMode:         getEnv("POSTGRES_SSLMODE", "disable"),
			MaxOpenConns:    getEnvInt("POSTGRES_MAX_OPEN_CONNS", 20),
			MaxIdleConns:    getEnvInt("POSTGRES_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvInt("POSTGRES_CONN_MAX_LIFETIME", 300),
			ConnMaxIdleTime: getEnvInt("POSTGRES_CONN_MAX_IDLE_TIME", 60),
			AutoMigrate:     getEnvBool("POSTGRES_AUTO_MIGRATE", true),
		},
		Redis: RedisConfig{
			Enabled:  getEnvBool("REDIS_ENABLED", true),
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Kafka: KafkaConfig{
			Brokers:         getEnvSlice("KAFKA_BROKERS", []string{"localhost:9092"}),
			ListenerEnabled: getEnvBool("KAFKA_LISTENER_ENABLED", false),
			OrdersTopic:     getEnv("KAFKA_TOPIC_ORDERS", "orders.events"),
			GroupID:         getEnv("KAFKA_GROUP_INVENTORY", "inventory-ledger"),
			ProducerEnabled: getEnvBool("KAFKA_PRODUCER_ENABLED", false),
			AlertsTopic:     getEnv("KAFKA_TOPIC_STOCK_ALERTS", "inventory.stock-alerts"),
			Acks:            getEnv("KAFKA_ACKS", "all"),
			Retries:         getEnvInt("KAFKA_RETRIES", 3),
		},
		ProductService: ProductServiceConfig{
			BaseURL:  getEnv("PRODUCT_SERVICE_URL", "http://localhost:3002"),
			Timeout:  getEnvDuration("PRODUCT_SERVICE_TIMEOUT", 3*time.Second),
			Retries:  getEnvInt("PRODUCT_SERVICE_RETRIES", 2),
			CacheTTL: getEnvDuration("PRODUCT_CACHE_TTL", 10*time.Minute),
		},
		Ledger: LedgerConfig{
			OpTimeout:           getEnvDuration("LEDGER_OP_TIMEOUT", 5*time.Second),
			HookTimeout:         getEnvDuration("LEDGER_HOOK_TIMEOUT", 3*time.Second),
			MovementPageSize:    getEnvInt("LEDGER_MOVEMENT_PAGE_SIZE", 100),
			HistoryDefaultLimit: getEnvInt("LEDGER_HISTORY_DEFAULT_LIMIT", 50),
			BulkCheckParallel:   getEnvInt("LEDGER_BULK_CHECK_PARALLEL", 8),
		},
		Tracing: TracingConfig{
			Enabled:     getEnvBool("OTEL_ENABLED", false),
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "omnipos-inventory-service"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	if value, ok := os.LookupEnv(key); ok {
		parts := strings.Split(value, ",")
		for i, p := range parts {
			parts[i] = strings.TrimSpace(p)
		}
		return parts
	}
	return fallback
}
