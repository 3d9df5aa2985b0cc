package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"campusdelivery/internal/pkg/errs"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	JWTSecret string

	TemporalHost      string
	TemporalNamespace string
	DispatchTaskQueue string
	DispatchTimeout   time.Duration
	LookupTimeout     time.Duration

	RabbitMQURL      string
	RabbitMQExchange string

	TrackerBaseURL  string
	TrackerInterval time.Duration
}

// ConfigFromEnv reads every setting from the environment. Unset durations stay zero
// and fall back to the defaults of the components that use them.
func ConfigFromEnv() (Config, error) {
	dispatchTimeout, dispatchErr := durationEnv("DISPATCH_TIMEOUT")
	lookupTimeout, lookupErr := durationEnv("LOOKUP_TIMEOUT")
	trackerInterval, trackerErr := durationEnv("TRACKER_INTERVAL")
	if err := errors.Join(dispatchErr, lookupErr, trackerErr); err != nil {
		return Config{}, err
	}

	return Config{
		HTTPPort:          os.Getenv("HTTP_PORT"),
		DBHost:            os.Getenv("DB_HOST"),
		DBPort:            os.Getenv("DB_PORT"),
		DBUser:            os.Getenv("DB_USER"),
		DBPassword:        os.Getenv("DB_PASSWORD"),
		DBName:            os.Getenv("DB_NAME"),
		DBSslMode:         os.Getenv("DB_SSLMODE"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		TemporalHost:      os.Getenv("TEMPORAL_HOST"),
		TemporalNamespace: os.Getenv("TEMPORAL_NAMESPACE"),
		DispatchTaskQueue: os.Getenv("DISPATCH_TASK_QUEUE"),
		DispatchTimeout:   dispatchTimeout,
		LookupTimeout:     lookupTimeout,
		RabbitMQURL:       os.Getenv("RABBITMQ_URL"),
		RabbitMQExchange:  os.Getenv("RABBITMQ_EXCHANGE"),
		TrackerBaseURL:    os.Getenv("TRACKER_BASE_URL"),
		TrackerInterval:   trackerInterval,
	}, nil
}

func durationEnv(key string) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return 0, nil
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(key, err)
	}
	if d < 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause(key, fmt.Errorf("%s is negative", raw))
	}
	return d, nil
}

// DSN returns the postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// ValidateForAPI checks the settings the HTTP API needs.
func (c Config) ValidateForAPI() error {
	return errors.Join(
		required("HTTP_PORT", c.HTTPPort),
		c.validateDatabase(),
		required("TEMPORAL_HOST", c.TemporalHost),
	)
}

// ValidateForDispatcher checks the settings the dispatch worker needs.
func (c Config) ValidateForDispatcher() error {
	return errors.Join(
		c.validateDatabase(),
		required("TEMPORAL_HOST", c.TemporalHost),
		required("RABBITMQ_URL", c.RabbitMQURL),
	)
}

// ValidateForTracker checks the settings the tracking CLI needs.
func (c Config) ValidateForTracker() error {
	return required("TRACKER_BASE_URL", c.TrackerBaseURL)
}

func (c Config) validateDatabase() error {
	return errors.Join(
		required("DB_HOST", c.DBHost),
		required("DB_PORT", c.DBPort),
		required("DB_USER", c.DBUser),
		required("DB_NAME", c.DBName),
	)
}

func required(key, value string) error {
	if value == "" {
		return errs.NewValueIsRequiredError(key)
	}
	return nil
}
