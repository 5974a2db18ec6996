package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"kanbanboard/pkg/common/logger"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. KANBAN_DATABASE_DSN.
const EnvPrefix = "KANBAN"

// DatabaseConfig selects the database the models live in.
type DatabaseConfig struct {
	Driver string `json:"driver" mapstructure:"driver" validate:"required,oneof=sqlite postgres"`
	// DSN is a file path or URI for sqlite and a connection string for postgres.
	// An empty sqlite DSN places Name inside the runtime directory.
	DSN  string `json:"dsn" mapstructure:"dsn" validate:"required_if=Driver postgres"`
	Name string `json:"name" mapstructure:"name" validate:"required_without=DSN"`
}

// Config represents the application configuration
type Config struct {
	Debug    bool           `json:"debug" mapstructure:"debug"`
	Database DatabaseConfig `json:"database" mapstructure:"database"`
	Log      logger.Config  `json:"log" mapstructure:"log"`
}

var (
	appConfig *Config
	validate  = validator.New()
)

// Default returns the configuration used when nothing else is provided.
func Default() *Config {
	return &Config{
		Debug: false,
		Database: DatabaseConfig{
			Driver: "sqlite",
			Name:   "kanban.db",
		},
		Log: *logger.DefaultConfig(),
	}
}

func setDefaults(v *viper.Viper) {
	def := Default()
	v.SetDefault("debug", def.Debug)
	v.SetDefault("database.driver", def.Database.Driver)
	v.SetDefault("database.dsn", def.Database.DSN)
	v.SetDefault("database.name", def.Database.Name)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.format", def.Log.Format)
	v.SetDefault("log.time_format", def.Log.TimeFormat)
	v.SetDefault("log.output", def.Log.Output)
}

// Load loads the configuration from config.json, a .env file in the working
// directory and KANBAN_* environment variables, in increasing precedence.
func Load(configPath string) (*Config, error) {
	// A missing .env is fine.
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("json")

	if configPath != "" {
		viper.AddConfigPath(configPath)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return createDefaultConfig(configPath)
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	return unmarshal()
}

func unmarshal() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := Validate(&config); err != nil {
		return nil, err
	}

	appConfig = &config
	return &config, nil
}

// createDefaultConfig writes config.json with the default values and then
// resolves the effective configuration, environment overrides included. The
// file is written from a separate viper instance so values taken from the
// environment or .env, such as a DSN with a password, never reach disk.
func createDefaultConfig(configPath string) (*Config, error) {
	dir := configPath
	if dir == "" {
		dir = "."
	}

	v := viper.New()
	v.SetConfigType("json")
	setDefaults(v)

	configFile := filepath.Join(dir, "config.json")
	if err := v.SafeWriteConfigAs(configFile); err != nil {
		return nil, fmt.Errorf("error creating default config file: %w", err)
	}

	return unmarshal()
}

// Validate checks the struct tags on the configuration.
func Validate(config *Config) error {
	if err := validate.Struct(config); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Get returns the current configuration
func Get() *Config {
	if appConfig == nil {
		return Default()
	}
	return appConfig
}

// IsDebug returns whether debug mode is enabled
func IsDebug() bool {
	return Get().Debug
}
