package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"streampulse/pkg/util"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"logging"`
	Upstream struct {
		Mode      string        `yaml:"mode"` // http or fixture
		BaseURL   string        `yaml:"base_url"`
		AuthToken string        `yaml:"auth_token"`
		Timeout   time.Duration `yaml:"timeout"`
	} `yaml:"upstream"`
	Overlay struct {
		Source    string `yaml:"source"` // websocket, kafka, or none
		WebSocket struct {
			URL            string        `yaml:"url"`
			Channels       []string      `yaml:"channels"`
			ReconnectDelay time.Duration `yaml:"reconnect_delay"`
			PingInterval   time.Duration `yaml:"ping_interval"`
		} `yaml:"websocket"`
		TickerSize int `yaml:"ticker_size"`
		Pipeline   struct {
			MaxEPS     int `yaml:"max_eps"`
			BufferSize int `yaml:"buffer_size"`
		} `yaml:"pipeline"`
		Fanout struct {
			Enabled bool   `yaml:"enabled"`
			Topic   string `yaml:"topic"`
		} `yaml:"fanout"`
	} `yaml:"overlay"`
	Kafka struct {
		Brokers      []string `yaml:"brokers"`
		Topic        string   `yaml:"topic"`
		RequiredAcks int      `yaml:"required_acks"`
		Compression  string   `yaml:"compression"`
		Producer     struct {
			MaxAttempts  int           `yaml:"max_attempts"`
			Linger       time.Duration `yaml:"linger"`
			BatchBytes   int           `yaml:"batch_bytes"`
			BatchSize    int           `yaml:"batch_size"`
			WriteTimeout time.Duration `yaml:"write_timeout"`
			ReadTimeout  time.Duration `yaml:"read_timeout"`
			Async        bool          `yaml:"async"`
		} `yaml:"producer"`
		Consumer struct {
			GroupID    string        `yaml:"group_id"`
			Workers    int           `yaml:"workers"`
			BufferSize int           `yaml:"buffer_size"`
			RetryMax   int           `yaml:"retry_max"`
			BackoffMin time.Duration `yaml:"backoff_min"`
			BackoffMax time.Duration `yaml:"backoff_max"`
			DLQTopic   string        `yaml:"dlq_topic"`
			MinBytes   int           `yaml:"min_bytes"`
			MaxBytes   int           `yaml:"max_bytes"`
		} `yaml:"consumer"`
	} `yaml:"kafka"`
	Dashboard struct {
		RadarDivisors map[string]float64 `yaml:"radar_divisors"`
		CacheTTL      struct {
			Overview  time.Duration `yaml:"overview"`
			Streamers time.Duration `yaml:"streamers"`
			Detail    time.Duration `yaml:"detail"`
			Campaigns time.Duration `yaml:"campaigns"`
			Platforms time.Duration `yaml:"platforms"`
		} `yaml:"cache_ttl"`
		Redis struct {
			Enabled  bool   `yaml:"enabled"`
			Host     string `yaml:"host"`
			Port     int    `yaml:"port"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"dashboard"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("SERVER_PORT"); v != "" {
		c.Server.Port = util.ParseIntDefault(v, c.Server.Port)
	}
	if v := os.Getenv("UPSTREAM_BASE_URL"); v != "" {
		c.Upstream.BaseURL = v
	}
	if v := os.Getenv("UPSTREAM_AUTH_TOKEN"); v != "" {
		c.Upstream.AuthToken = v
	}
	if v := os.Getenv("OVERLAY_SOURCE"); v != "" {
		c.Overlay.Source = v
	}
	if v := os.Getenv("OVERLAY_WS_URL"); v != "" {
		c.Overlay.WebSocket.URL = v
	}
	if v := os.Getenv("OVERLAY_CHANNELS"); v != "" {
		c.Overlay.WebSocket.Channels = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_TOPIC"); v != "" {
		c.Kafka.Topic = v
	}

	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	switch c.Upstream.Mode {
	case "http":
		if c.Upstream.BaseURL == "" {
			return fmt.Errorf("upstream.base_url is required when upstream.mode is 'http'")
		}
	case "fixture":
	default:
		return fmt.Errorf("upstream.mode must be 'http' or 'fixture', got '%s'", c.Upstream.Mode)
	}
	switch c.Overlay.Source {
	case "websocket":
		if c.Overlay.WebSocket.URL == "" {
			return fmt.Errorf("overlay.websocket.url is required when overlay.source is 'websocket'")
		}
		if len(c.Overlay.WebSocket.Channels) == 0 {
			return fmt.Errorf("overlay.websocket.channels cannot be empty")
		}
	case "kafka":
		if len(c.Kafka.Brokers) == 0 {
			return fmt.Errorf("kafka.brokers is required when overlay.source is 'kafka'")
		}
		if c.Kafka.Topic == "" {
			return fmt.Errorf("kafka.topic is required when overlay.source is 'kafka'")
		}
	case "", "none":
	default:
		return fmt.Errorf("overlay.source must be 'websocket', 'kafka', or 'none', got '%s'", c.Overlay.Source)
	}
	if c.Overlay.Fanout.Enabled {
		if len(c.Kafka.Brokers) == 0 || c.Overlay.Fanout.Topic == "" {
			return fmt.Errorf("overlay.fanout requires kafka.brokers and overlay.fanout.topic")
		}
	}
	return nil
}
