// Package config loads runtime settings from the environment and an
// optional config file.
package config

import (
	"fmt"

	"partshop/internal/database"

	"github.com/spf13/viper"
)

// Config holds every runtime setting of the service.
type Config struct {
	AppPort     string
	AppEnv      string
	LogLevel    string
	DBDriver    string
	DatabaseDSN string
	// RabbitMQURL is empty when catalog events are disabled.
	RabbitMQURL string
	EventsQueue string
}

// Load reads settings from configFile (when given) and the environment.
// Environment variables win over the file.
func Load(configFile string) (Config, error) {
	v := viper.New()
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("APP_ENV", "dev")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_DRIVER", database.DriverSQLite)
	v.SetDefault("DATABASE_DSN", "file:partshop.db?cache=shared")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("EVENTS_QUEUE", "catalog_events")
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	cfg := Config{
		AppPort:     v.GetString("APP_PORT"),
		AppEnv:      v.GetString("APP_ENV"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		DBDriver:    v.GetString("DB_DRIVER"),
		DatabaseDSN: v.GetString("DATABASE_DSN"),
		RabbitMQURL: v.GetString("RABBITMQ_URL"),
		EventsQueue: v.GetString("EVENTS_QUEUE"),
	}
	switch cfg.DBDriver {
	case database.DriverSQLite, database.DriverPostgres, database.DriverMemory:
	default:
		return Config{}, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	return cfg, nil
}

// Database returns the record store settings.
func (c Config) Database() database.Config {
	return database.Config{Driver: c.DBDriver, DSN: c.DatabaseDSN}
}
