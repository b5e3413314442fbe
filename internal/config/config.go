package config

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Addr     string `mapstructure:"addr" validate:"required"`
	DBPath   string `mapstructure:"db_path" validate:"required"`
	LogLevel string `mapstructure:"log_level" validate:"loglevel"`
	Timezone string `mapstructure:"timezone" validate:"required"`

	MasteryUpThreshold int     `mapstructure:"mastery_up_threshold" validate:"gte=1,lte=100"`
	WeightWrongRate    float64 `mapstructure:"weight_wrong_rate" validate:"gte=0,lte=1"`
	WeightRecency      float64 `mapstructure:"weight_recency" validate:"gte=0,lte=1"`
	WeightMasteryGap   float64 `mapstructure:"weight_mastery_gap" validate:"gte=0,lte=1"`
	WeightWrongVolume  float64 `mapstructure:"weight_wrong_volume" validate:"gte=0,lte=1"`
	MaxExamQuestions   int     `mapstructure:"max_exam_questions" validate:"gte=1"`

	WorkerCount         int    `mapstructure:"worker_count" validate:"gte=1"`
	QueueSize           int    `mapstructure:"queue_size" validate:"gte=1"`
	BackupEnabled       bool   `mapstructure:"backup_enabled"`
	BackupDir           string `mapstructure:"backup_dir" validate:"required_if=BackupEnabled true"`
	BackupIntervalHours int    `mapstructure:"backup_interval_hours" validate:"gte=1"`
}

var defaults = map[string]any{
	"addr":                  "127.0.0.1:8080",
	"db_path":               "file:vocabflash.db",
	"log_level":             "INFO",
	"timezone":              "Local",
	"mastery_up_threshold":  3,
	"weight_wrong_rate":     0.4,
	"weight_recency":        0.3,
	"weight_mastery_gap":    0.2,
	"weight_wrong_volume":   0.1,
	"max_exam_questions":    100,
	"worker_count":          1,
	"queue_size":            16,
	"backup_enabled":        true,
	"backup_dir":            "backups",
	"backup_interval_hours": 168,
}

// Load reads configuration from a .env file (if present), an optional
// config.yaml in . or ./config, and environment variables, in increasing
// order of precedence.
func Load() (Config, error) {
	// Ignore error so the app still starts when .env is absent.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.LogLevel = strings.ToUpper(strings.TrimSpace(cfg.LogLevel))
	return cfg, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their environment variable name.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return strings.ToUpper(name)
	})
	_ = v.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		switch strings.ToUpper(fl.Field().String()) {
		case "DEBUG", "INFO", "WARN", "ERROR":
			return true
		}
		return false
	})
	return v
}

// Validate checks every field and returns all problems joined together.
func (c Config) Validate() error {
	var errs []error

	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			errs = append(errs, describe(fe))
		}
	}

	if c.Timezone != "" {
		if _, err := time.LoadLocation(c.Timezone); err != nil {
			errs = append(errs, fmt.Errorf("TIMEZONE %q is not a known location: %w", c.Timezone, err))
		}
	}

	sum := c.WeightWrongRate + c.WeightRecency + c.WeightMasteryGap + c.WeightWrongVolume
	if math.Abs(sum-1.0) > 1e-9 {
		errs = append(errs, fmt.Errorf("WEIGHT_* values must sum to 1.0, got %.4f", sum))
	}

	return errors.Join(errs...)
}

func describe(fe validator.FieldError) error {
	switch fe.Tag() {
	case "required", "required_if":
		return fmt.Errorf("%s cannot be empty", fe.Field())
	case "loglevel":
		return fmt.Errorf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR, got %q", fe.Value())
	case "gte":
		return fmt.Errorf("%s must be at least %s, got %v", fe.Field(), fe.Param(), fe.Value())
	case "lte":
		return fmt.Errorf("%s must be at most %s, got %v", fe.Field(), fe.Param(), fe.Value())
	default:
		return fmt.Errorf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}

// Location resolves Timezone. Call after Validate.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// BackupInterval is the period between scheduled backups.
func (c Config) BackupInterval() time.Duration {
	return time.Duration(c.BackupIntervalHours) * time.Hour
}
