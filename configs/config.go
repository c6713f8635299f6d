package configs

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Port       int    `yaml:"port"`
	SiteOrigin string `yaml:"site_origin"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type MongoConfig struct {
	URI             string        `yaml:"uri"`
	DBName          string        `yaml:"db_name"`
	MaxPoolSize     uint64        `yaml:"max_pool_size"`
	MinPoolSize     uint64        `yaml:"min_pool_size"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_minutes"`
	ConnectTimeout  time.Duration `yaml:"connect_timeout_seconds"`
}

type StripeConfig struct {
	SecretKey      string        `yaml:"secret_key"`
	BaseURL        string        `yaml:"base_url"`
	Currency       string        `yaml:"currency"`
	ApplicationFee float64       `yaml:"application_fee"`
	Timeout        time.Duration `yaml:"timeout_seconds"`
}

type IdentityConfig struct {
	BaseURL string        `yaml:"base_url"`
	APIKey  string        `yaml:"api_key"`
	Timeout time.Duration `yaml:"timeout_seconds"`
}

type KafkaConfig struct {
	Server           string `yaml:"server"`
	PaymentTopic     string `yaml:"payment_topic"`
	SecurityProtocol string `yaml:"security_protocol"`
	SASLMechanism    string `yaml:"sasl_mechanism"`
	SASLUsername     string `yaml:"sasl_username"`
	SASLPassword     string `yaml:"sasl_password"`
	SessionTimeoutMs int    `yaml:"session_timeout_ms"`
	ClientID         string `yaml:"client_id"`
}

type PubSubConfig struct {
	ProjectID         string `yaml:"project_id"`
	NotificationTopic string `yaml:"notification_topic"`
}

type OtelConfig struct {
	ServiceName  string `yaml:"service_name"`
	CollectorURL string `yaml:"collector_url"`
}

type AppConfig struct {
	Server   ServerConfig   `yaml:"server"`
	Mongo    MongoConfig    `yaml:"mongo"`
	Stripe   StripeConfig   `yaml:"stripe"`
	Identity IdentityConfig `yaml:"identity"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	PubSub   PubSubConfig   `yaml:"pubsub"`
	Otel     OtelConfig     `yaml:"otel"`
	Logging  LogConfig      `yaml:"logging"`
}

// Load reads the optional yaml config file, then applies environment
// overrides. A missing file is not an error; env vars alone are enough.
func Load(path string) (*AppConfig, error) {
	_ = godotenv.Load()

	cfg := &AppConfig{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		}
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *AppConfig) {
	cfg.Server.Port = GetEnvOrDefaultAsInt("SERVER_PORT", defaultInt(cfg.Server.Port, 3000))
	cfg.Server.SiteOrigin = GetEnvOrDefaultAsString("SITE_ORIGIN", defaultString(cfg.Server.SiteOrigin, "http://localhost:5173"))

	cfg.Logging.Level = GetEnvOrDefaultAsString("LOG_LEVEL", defaultString(cfg.Logging.Level, "info"))

	cfg.Mongo.URI = GetEnvOrDefaultAsString("MONGO_URI", defaultString(cfg.Mongo.URI, "mongodb://localhost:27017"))
	cfg.Mongo.DBName = GetEnvOrDefaultAsString("MONGO_DB_NAME", defaultString(cfg.Mongo.DBName, "Loan_link_db"))
	cfg.Mongo.MaxPoolSize = GetEnvOrDefaultAsUint64("MONGO_MAX_POOL_SIZE", defaultUint64(cfg.Mongo.MaxPoolSize, 100))
	cfg.Mongo.MinPoolSize = GetEnvOrDefaultAsUint64("MONGO_MIN_POOL_SIZE", defaultUint64(cfg.Mongo.MinPoolSize, 10))
	cfg.Mongo.MaxConnIdleTime = time.Duration(GetEnvOrDefaultAsInt("MONGO_MAX_CONN_IDLE_MINUTES", 5)) * time.Minute
	cfg.Mongo.ConnectTimeout = time.Duration(GetEnvOrDefaultAsInt("MONGO_CONNECT_TIMEOUT_SECONDS", 10)) * time.Second

	cfg.Stripe.SecretKey = GetEnvOrDefaultAsString("STRIPE_SECRET_KEY", cfg.Stripe.SecretKey)
	cfg.Stripe.BaseURL = GetEnvOrDefaultAsString("STRIPE_BASE_URL", defaultString(cfg.Stripe.BaseURL, "https://api.stripe.com"))
	cfg.Stripe.Currency = GetEnvOrDefaultAsString("STRIPE_CURRENCY", defaultString(cfg.Stripe.Currency, "usd"))
	cfg.Stripe.ApplicationFee = GetEnvOrDefaultAsFloat64("APPLICATION_FEE", defaultFloat64(cfg.Stripe.ApplicationFee, 10))
	cfg.Stripe.Timeout = time.Duration(GetEnvOrDefaultAsInt("STRIPE_TIMEOUT_SECONDS", 20)) * time.Second

	cfg.Identity.BaseURL = GetEnvOrDefaultAsString("IDENTITY_BASE_URL", defaultString(cfg.Identity.BaseURL, "https://identitytoolkit.googleapis.com"))
	cfg.Identity.APIKey = GetEnvOrDefaultAsString("IDENTITY_API_KEY", cfg.Identity.APIKey)
	cfg.Identity.Timeout = time.Duration(GetEnvOrDefaultAsInt("IDENTITY_TIMEOUT_SECONDS", 10)) * time.Second

	cfg.Kafka.Server = GetEnvOrDefaultAsString("KAFKA_SERVER", cfg.Kafka.Server)
	cfg.Kafka.PaymentTopic = GetEnvOrDefaultAsString("KAFKA_PAYMENT_TOPIC", defaultString(cfg.Kafka.PaymentTopic, "loanlink-payment-events"))
	cfg.Kafka.SecurityProtocol = GetEnvOrDefaultAsString("KAFKA_SECURITY_PROTOCOL", cfg.Kafka.SecurityProtocol)
	cfg.Kafka.SASLMechanism = GetEnvOrDefaultAsString("KAFKA_SASL_MECHANISM", cfg.Kafka.SASLMechanism)
	cfg.Kafka.SASLUsername = GetEnvOrDefaultAsString("KAFKA_SASL_USERNAME", cfg.Kafka.SASLUsername)
	cfg.Kafka.SASLPassword = GetEnvOrDefaultAsString("KAFKA_SASL_PASSWORD", cfg.Kafka.SASLPassword)
	cfg.Kafka.SessionTimeoutMs = GetEnvOrDefaultAsInt("KAFKA_SESSION_TIMEOUT_MS", defaultInt(cfg.Kafka.SessionTimeoutMs, 15000))
	cfg.Kafka.ClientID = GetEnvOrDefaultAsString("KAFKA_CLIENT_ID", defaultString(cfg.Kafka.ClientID, "loanlink"))

	cfg.PubSub.ProjectID = GetEnvOrDefaultAsString("PUBSUB_PROJECT_ID", cfg.PubSub.ProjectID)
	cfg.PubSub.NotificationTopic = GetEnvOrDefaultAsString("PUBSUB_NOTIFICATION_TOPIC", defaultString(cfg.PubSub.NotificationTopic, "loanlink-notifications"))

	cfg.Otel.ServiceName = GetEnvOrDefaultAsString("SERVICE_NAME", defaultString(cfg.Otel.ServiceName, "loanlink"))
	cfg.Otel.CollectorURL = GetEnvOrDefaultAsString("OTEL_URL", cfg.Otel.CollectorURL)
}

func GetEnvOrDefaultAsString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func GetEnvOrDefaultAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func GetEnvOrDefaultAsUint64(key string, defaultValue uint64) uint64 {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := strconv.ParseUint(value, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func GetEnvOrDefaultAsFloat64(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func defaultString(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func defaultInt(v, fallback int) int {
	if v == 0 {
		return fallback
	}
	return v
}

func defaultUint64(v, fallback uint64) uint64 {
	if v == 0 {
		return fallback
	}
	return v
}

func defaultFloat64(v, fallback float64) float64 {
	if v == 0 {
		return fallback
	}
	return v
}
