package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/cicd-demo/board-service/internal/application"
)

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host             string
	Port             int
	User             string
	Password         string
	DBName           string
	SSL              bool
	ConnectTimeout   time.Duration
	QueryTimeout     time.Duration
	StatementTimeout time.Duration
	RetryAttempts    int
	RetryDelay       time.Duration
}

// KafkaConfig holds broker settings. No brokers means events are disabled.
type KafkaConfig struct {
	Brokers     []string
	GroupPrefix string
}

// Enabled reports whether any broker is configured.
func (k KafkaConfig) Enabled() bool { return len(k.Brokers) > 0 }

// MapsConfig holds the directions service settings.
type MapsConfig struct {
	APIKey         string
	BaseURL        string
	SegmentDelay   time.Duration
	FailurePolicy  string
	RequestTimeout time.Duration
}

// ServiceConfig holds all configuration for the board service.
type ServiceConfig struct {
	Port        string
	AppEnv      string
	FrontendURL string
	APIBaseURL  string
	DBConfig    DatabaseConfig
	KafkaConfig KafkaConfig
	MapsConfig  MapsConfig
}

// IsProduction reports whether AppEnv is production.
func (c *ServiceConfig) IsProduction() bool { return c.AppEnv == "production" }

// Load reads configuration from environment variables.
func Load() (*ServiceConfig, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	policy, err := application.ParseFailurePolicy(v.GetString("ROUTE_FAILURE_POLICY"))
	if err != nil {
		return nil, fmt.Errorf("invalid ROUTE_FAILURE_POLICY: %w", err)
	}

	port := v.GetInt("DB_PORT")
	if port <= 0 {
		return nil, fmt.Errorf("invalid DB_PORT %q", v.GetString("DB_PORT"))
	}

	return &ServiceConfig{
		Port:        ":" + strings.TrimPrefix(v.GetString("PORT"), ":"),
		AppEnv:      v.GetString("APP_ENV"),
		FrontendURL: v.GetString("FRONTEND_URL"),
		APIBaseURL:  strings.TrimRight(v.GetString("API_BASE_URL"), "/"),
		DBConfig: DatabaseConfig{
			Host:             v.GetString("DB_HOST"),
			Port:             port,
			User:             v.GetString("DB_USERNAME"),
			Password:         v.GetString("DB_PASSWORD"),
			DBName:           v.GetString("DB_NAME"),
			SSL:              v.GetBool("DB_SSL"),
			ConnectTimeout:   v.GetDuration("DB_CONNECT_TIMEOUT"),
			QueryTimeout:     v.GetDuration("DB_QUERY_TIMEOUT"),
			StatementTimeout: v.GetDuration("DB_STATEMENT_TIMEOUT"),
			RetryAttempts:    v.GetInt("DB_RETRY_ATTEMPTS"),
			RetryDelay:       v.GetDuration("DB_RETRY_DELAY"),
		},
		KafkaConfig: KafkaConfig{
			Brokers:     splitList(v.GetString("KAFKA_BROKERS")),
			GroupPrefix: v.GetString("KAFKA_GROUP_PREFIX"),
		},
		MapsConfig: MapsConfig{
			APIKey:         strings.TrimSpace(v.GetString("GOOGLE_MAPS_API_KEY")),
			BaseURL:        strings.TrimRight(v.GetString("GOOGLE_MAPS_BASE_URL"), "/"),
			SegmentDelay:   v.GetDuration("ROUTE_SEGMENT_DELAY"),
			FailurePolicy:  string(policy),
			RequestTimeout: v.GetDuration("GOOGLE_MAPS_TIMEOUT"),
		},
	}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", "3001")
	v.SetDefault("FRONTEND_URL", "http://localhost:3000")
	v.SetDefault("API_BASE_URL", "http://localhost:3001")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USERNAME", "postgres")
	v.SetDefault("DB_PASSWORD", "password")
	v.SetDefault("DB_NAME", "cicd_demo")
	v.SetDefault("DB_SSL", true)
	v.SetDefault("DB_CONNECT_TIMEOUT", 30*time.Second)
	v.SetDefault("DB_QUERY_TIMEOUT", 30*time.Second)
	v.SetDefault("DB_STATEMENT_TIMEOUT", 30*time.Second)
	v.SetDefault("DB_RETRY_ATTEMPTS", 10)
	v.SetDefault("DB_RETRY_DELAY", 3*time.Second)

	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("KAFKA_GROUP_PREFIX", "board-")

	v.SetDefault("GOOGLE_MAPS_API_KEY", "")
	v.SetDefault("GOOGLE_MAPS_BASE_URL", "https://maps.googleapis.com")
	v.SetDefault("GOOGLE_MAPS_TIMEOUT", 10*time.Second)
	v.SetDefault("ROUTE_SEGMENT_DELAY", time.Second)
	v.SetDefault("ROUTE_FAILURE_POLICY", "abort")
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
