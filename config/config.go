package config

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v4"
)

type Config struct {
	Database   DatabaseConfig   `yaml:"database"`
	Kafka      KafkaConfig      `yaml:"kafka"`
	Redis      RedisConfig      `yaml:"redis"`
	MinIO      MinIOConfig      `yaml:"minio"`
	Calendar   CalendarConfig   `yaml:"calendar"`
	Logging    LoggingConfig    `yaml:"logging"`
	SalesTrack SalesTrackConfig `yaml:"salestrack"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	DBName   string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

func (d DatabaseConfig) ConnString() string {
	sslMode := d.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.Username, d.Password, d.Host, d.Port, d.DBName, sslMode)
}

type KafkaConfig struct {
	Host                string `yaml:"host"`
	Port                int    `yaml:"port"`
	LeadEventsTopic     string `yaml:"lead_events_topic"`
	OrderEventsTopic    string `yaml:"order_events_topic"`
	LeadIntakeTopic     string `yaml:"lead_intake_topic"`
	CarrierUpdatesTopic string `yaml:"carrier_updates_topic"`
}

func (k KafkaConfig) Brokers() []string {
	return []string{fmt.Sprintf("%s:%d", k.Host, k.Port)}
}

type RedisConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type MinIOConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	UseSSL    bool   `yaml:"use_ssl"`
	PublicURL string `yaml:"public_url"`
}

type CalendarConfig struct {
	BaseURL    string `yaml:"base_url"`
	Token      string `yaml:"token"`
	CalendarID string `yaml:"calendar_id"`
	// "http" | "fake"; empty disables the calendar collaborator.
	Mode string `yaml:"mode"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type SalesTrackConfig struct {
	HTTPAddr           string `yaml:"http_addr"`
	KafkaConsumerGroup string `yaml:"kafka_consumer_group"`

	TrackingCacheTTLSeconds int `yaml:"tracking_cache_ttl_seconds"`
	MetricsCacheTTLSeconds  int `yaml:"metrics_cache_ttl_seconds"`

	// Restricts pipeline moves to the forward-only table when set.
	StrictStageTransitions bool   `yaml:"strict_stage_transitions"`
	DefaultPhoneRegion     string `yaml:"default_phone_region"`
	ConversionLockSeconds  int    `yaml:"conversion_lock_seconds"`
	CarriersPath           string `yaml:"carriers_path"`

	WorkerPollIntervalSeconds int    `yaml:"worker_poll_interval_seconds"`
	WorkerBatchSize           int    `yaml:"worker_batch_size"`
	WorkerConcurrency         int    `yaml:"worker_concurrency"`
	WorkerLeaseSeconds        int    `yaml:"worker_lease_seconds"`
	WorkerRateLimitPerMinute  int    `yaml:"worker_rate_limit_per_minute"`
	WorkerHTTPAddr            string `yaml:"worker_http_addr"`
	// Per-carrier overrides of worker_rate_limit_per_minute, keyed by carrier code.
	WorkerCarrierRateLimits map[string]int `yaml:"worker_carrier_rate_limits"`

	// Carrier sync scheduling (optional). If not set: in transit 30..120 minutes,
	// unknown 90 minutes, backoff 5/15/30/60 minutes.
	WorkerNextCheckInTransitMinSeconds int `yaml:"worker_next_check_in_transit_min_seconds"`
	WorkerNextCheckInTransitMaxSeconds int `yaml:"worker_next_check_in_transit_max_seconds"`
	WorkerNextCheckUnknownSeconds      int `yaml:"worker_next_check_unknown_seconds"`
	WorkerBackoff1Seconds              int `yaml:"worker_backoff_1_seconds"`
	WorkerBackoff2Seconds              int `yaml:"worker_backoff_2_seconds"`
	WorkerBackoff3Seconds              int `yaml:"worker_backoff_3_seconds"`
	WorkerBackoff4Seconds              int `yaml:"worker_backoff_4_seconds"`

	CarrierEmulatorBaseURL string `yaml:"carrier_emulator_base_url"`
	CarrierEmulatorMode    string `yaml:"carrier_emulator_mode"` // "v1" | "track24"
	CarrierEmulatorAPIKey  string `yaml:"carrier_emulator_api_key"`
	CarrierEmulatorDomain  string `yaml:"carrier_emulator_domain"`
}

func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal YAML: %w", err)
	}

	return &config, nil
}
