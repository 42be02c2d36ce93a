package config

import (
	"fmt"
	"strings"
	_ "time/tzdata"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig     `mapstructure:"server" validate:"required"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Logger     LoggerConfig     `mapstructure:"logger" validate:"required"`
	Serializer SerializerConfig `mapstructure:"serializer" validate:"required"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string `mapstructure:"host" validate:"required"`
	Port            int    `mapstructure:"port" validate:"gt=0,lte=65535"`
	ReadTimeout     int    `mapstructure:"read_timeout" validate:"gte=0"`
	WriteTimeout    int    `mapstructure:"write_timeout" validate:"gte=0"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout" validate:"gte=0"`
	BodyLimit       string `mapstructure:"body_limit"`
}

// DatabaseConfig holds the connection used by the row export.
// It is only checked when a database connection is actually opened.
type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port" validate:"gte=0,lte=65535"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"dbname"`
	SSLMode         string `mapstructure:"sslmode" validate:"omitempty,oneof=disable require verify-ca verify-full"`
	MaxOpenConns    int    `mapstructure:"max_open_conns" validate:"gte=0"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime" validate:"gte=0"`
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level      string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format     string `mapstructure:"format" validate:"required,oneof=json console"`
	OutputPath string `mapstructure:"output_path"`
}

// SerializerConfig holds the defaults handed to normalizers, the mapper and encoders
type SerializerConfig struct {
	// TagName is the struct tag the mapper reads field names from
	TagName  string         `mapstructure:"tag_name" validate:"required"`
	DateTime DateTimeConfig `mapstructure:"datetime"`
	Context  ContextConfig  `mapstructure:"context"`
}

// DateTimeConfig holds the date-time normalizer defaults
type DateTimeConfig struct {
	Format   string `mapstructure:"format" validate:"required"`
	Timezone string `mapstructure:"timezone" validate:"omitempty,timezone"`
	Cast     string `mapstructure:"cast" validate:"omitempty,oneof=int float array"`
}

// ContextConfig holds raw context maps. Common applies to every role and
// each role map is layered over it.
type ContextConfig struct {
	Common       map[string]any `mapstructure:"common"`
	Normalizer   map[string]any `mapstructure:"normalizer"`
	Denormalizer map[string]any `mapstructure:"denormalizer"`
	Encoder      map[string]any `mapstructure:"encoder"`
}

// NewConfig creates and returns a new Config instance
// It loads configuration from file, environment variables, and defaults
func NewConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")
	v.AddConfigPath("../../config")

	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist, we'll use defaults and env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("APP")

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.shutdown_timeout", 10)
	v.SetDefault("server.body_limit", "1M")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "mapkit")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 2)
	v.SetDefault("database.conn_max_lifetime", 300)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.output_path", "stdout")

	v.SetDefault("serializer.tag_name", "json")
	v.SetDefault("serializer.datetime.format", "2006-01-02T15:04:05-07:00")
	v.SetDefault("serializer.datetime.timezone", "")
	v.SetDefault("serializer.datetime.cast", "")
}

// Validate checks the settings needed to open a database connection
func (c DatabaseConfig) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Port <= 0 {
		return fmt.Errorf("invalid database port: %d", c.Port)
	}
	if c.DBName == "" {
		return fmt.Errorf("database name is required")
	}
	return nil
}
