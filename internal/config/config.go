package config

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Defaults of the fields whose zero value is meaningful. They carry no
// env-default tag because cleanenv treats a zero from YAML as unset.
const (
	DefaultFeatureWindow = 10
	DefaultOpsAddr       = ":9102"
	DefaultWordsLimit    = 100
)

// Config is the root application configuration shared by all binaries.
type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	Log       LogConfig       `yaml:"log"`
	Ingest    IngestConfig    `yaml:"ingest"`
	Lexical   LexicalConfig   `yaml:"lexical"`
	WSD       WSDConfig       `yaml:"wsd"`
	WSDClient WSDClientConfig `yaml:"wsd_client"`
	Ops       OpsConfig       `yaml:"ops"`
	Train     TrainConfig     `yaml:"train"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"2"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	AutoMigrate     bool          `yaml:"auto_migrate"       env:"DATABASE_AUTO_MIGRATE"       env-default:"false"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// IngestConfig tunes the book ingestion pipeline.
type IngestConfig struct {
	QueueCapacity   int `yaml:"queue_capacity"   env:"INGEST_QUEUE_CAPACITY"   env-default:"2000"`
	ClassifyWorkers int `yaml:"classify_workers" env:"INGEST_CLASSIFY_WORKERS" env-default:"2"`
	// PushgatewayURL receives the run's metrics when the ingestion ends.
	// Empty disables the push.
	PushgatewayURL string `yaml:"pushgateway_url" env:"INGEST_PUSHGATEWAY_URL"`
}

// LexicalConfig points at the lexical resources.
type LexicalConfig struct {
	WordNetPath string `yaml:"wordnet_path" env:"LEXICAL_WORDNET_PATH" env-default:"./data/english-wordnet"`
}

// WSDConfig holds word-sense disambiguation server settings.
type WSDConfig struct {
	Host            string        `yaml:"host"              env:"WSD_HOST"              env-default:"127.0.0.1"`
	Port            int           `yaml:"port"              env:"WSD_PORT"              env-default:"2630"`
	ModelPath       string        `yaml:"model_path"        env:"WSD_MODEL_PATH"        env-default:"./data/vocabulary.json"`
	ReadTimeout     time.Duration `yaml:"read_timeout"      env:"WSD_READ_TIMEOUT"      env-default:"5s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"     env:"WSD_WRITE_TIMEOUT"     env-default:"5s"`
	MaxRequestBytes int64         `yaml:"max_request_bytes" env:"WSD_MAX_REQUEST_BYTES" env-default:"65536"`
	FeatureWindow   int           `yaml:"feature_window"    env:"WSD_FEATURE_WINDOW"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"  env:"WSD_SHUTDOWN_TIMEOUT"  env-default:"10s"`
}

// Addr returns the host:port the WSD server listens on.
func (c WSDConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// WSDClientConfig holds settings for talking to the WSD server.
type WSDClientConfig struct {
	Addr        string        `yaml:"addr"        env:"WSD_CLIENT_ADDR"        env-default:"127.0.0.1:2630"`
	Connections int           `yaml:"connections" env:"WSD_CLIENT_CONNECTIONS" env-default:"1"`
	Timeout     time.Duration `yaml:"timeout"     env:"WSD_CLIENT_TIMEOUT"     env-default:"1s"`
}

// OpsConfig configures the health/metrics HTTP listener. Empty Addr disables it.
type OpsConfig struct {
	Addr string `yaml:"addr" env:"OPS_ADDR"`
}

// TrainConfig holds model training settings.
type TrainConfig struct {
	WordsLimit int `yaml:"words_limit" env:"TRAIN_WORDS_LIMIT"`
}

// newConfig returns a Config holding the defaults of the fields listed above.
// Values read from YAML or ENV overwrite them, explicit zeros included.
func newConfig() Config {
	return Config{
		WSD:   WSDConfig{FeatureWindow: DefaultFeatureWindow},
		Ops:   OpsConfig{Addr: DefaultOpsAddr},
		Train: TrainConfig{WordsLimit: DefaultWordsLimit},
	}
}

// RequireDSN reports an error when no database DSN is configured.
// Only binaries that talk to PostgreSQL call it.
func (c DatabaseConfig) RequireDSN() error {
	if c.DSN == "" {
		return fmt.Errorf("database.dsn is required")
	}
	return nil
}
