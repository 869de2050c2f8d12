package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

type LookupFunc func(string) (string, bool)

type Profile string

const (
	ProfileDev  Profile = "dev"
	ProfileTest Profile = "test"
	ProfileProd Profile = "prod"
)

type Config struct {
	Profile       Profile
	Service       ServiceConfig
	HTTP          HTTPConfig
	Database      DatabaseConfig
	AI            AIConfig
	Validator     ValidatorConfig
	UI            UIConfig
	Observability ObservabilityConfig
}

type ServiceConfig struct {
	Name string
}

type HTTPConfig struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	Path string
}

type AIConfig struct {
	Enabled            bool
	BaseURL            string
	APIKey             string
	Model              string
	Temperature        float64
	Timeout            time.Duration
	PromptTemplatePath string
}

type ValidatorConfig struct {
	Strict bool
}

type UIConfig struct {
	SchemaSampleRows int
}

type ObservabilityConfig struct {
	LogLevel slog.Level
	LogJSON  bool
}

func LoadFromEnv(serviceName string) (Config, error) {
	return Load(serviceName, os.LookupEnv)
}

func Load(serviceName string, lookup LookupFunc) (Config, error) {
	if lookup == nil {
		return Config{}, fmt.Errorf("lookup function is required")
	}

	profile := ProfileDev
	if raw, ok := lookup("SQLPILOT_PROFILE"); ok {
		profile = Profile(strings.ToLower(strings.TrimSpace(raw)))
	}
	if !isValidProfile(profile) {
		return Config{}, fmt.Errorf("invalid SQLPILOT_PROFILE: %q", profile)
	}

	cfg := defaultsForProfile(profile)
	if serviceName != "" {
		cfg.Service.Name = serviceName
	}

	if err := applyString(lookup, "SQLPILOT_SERVICE_NAME", &cfg.Service.Name); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "SQLPILOT_HTTP_ADDR", &cfg.HTTP.Address); err != nil {
		return Config{}, err
	}
	if err := applyDuration(lookup, "SQLPILOT_HTTP_READ_TIMEOUT", &cfg.HTTP.ReadTimeout); err != nil {
		return Config{}, err
	}
	if err := applyDuration(lookup, "SQLPILOT_HTTP_WRITE_TIMEOUT", &cfg.HTTP.WriteTimeout); err != nil {
		return Config{}, err
	}
	if err := applyDuration(lookup, "SQLPILOT_HTTP_IDLE_TIMEOUT", &cfg.HTTP.IdleTimeout); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "SQLPILOT_DB_PATH", &cfg.Database.Path); err != nil {
		return Config{}, err
	}
	if err := applyBool(lookup, "SQLPILOT_AI_ENABLED", &cfg.AI.Enabled); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "SQLPILOT_AI_BASE_URL", &cfg.AI.BaseURL); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "SQLPILOT_AI_API_KEY", &cfg.AI.APIKey); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "SQLPILOT_AI_MODEL", &cfg.AI.Model); err != nil {
		return Config{}, err
	}
	if err := applyFloat(lookup, "SQLPILOT_AI_TEMPERATURE", &cfg.AI.Temperature); err != nil {
		return Config{}, err
	}
	if err := applyDuration(lookup, "SQLPILOT_AI_TIMEOUT", &cfg.AI.Timeout); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "SQLPILOT_AI_PROMPT_TEMPLATE_PATH", &cfg.AI.PromptTemplatePath); err != nil {
		return Config{}, err
	}
	if err := applyBool(lookup, "SQLPILOT_VALIDATOR_STRICT", &cfg.Validator.Strict); err != nil {
		return Config{}, err
	}
	if err := applyInt(lookup, "SQLPILOT_UI_SCHEMA_SAMPLE_ROWS", &cfg.UI.SchemaSampleRows); err != nil {
		return Config{}, err
	}
	if err := applyBool(lookup, "SQLPILOT_LOG_JSON", &cfg.Observability.LogJSON); err != nil {
		return Config{}, err
	}
	if err := applyLogLevel(lookup, "SQLPILOT_LOG_LEVEL", &cfg.Observability.LogLevel); err != nil {
		return Config{}, err
	}

	if cfg.Service.Name == "" {
		return Config{}, fmt.Errorf("service name is required")
	}
	if cfg.HTTP.Address == "" {
		return Config{}, fmt.Errorf("http address is required")
	}
	if cfg.Database.Path == "" {
		return Config{}, fmt.Errorf("database path is required")
	}
	return cfg, nil
}

func defaultsForProfile(profile Profile) Config {
	cfg := Config{
		Profile: profile,
		Service: ServiceConfig{Name: "sqlpilot-api"},
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Database: DatabaseConfig{
			Path: "data/customers.db",
		},
		AI: AIConfig{
			Enabled:     false,
			BaseURL:     "https://generativelanguage.googleapis.com",
			Model:       "gemini-1.5-flash",
			Temperature: 0.1,
			Timeout:     15 * time.Second,
		},
		Validator: ValidatorConfig{
			Strict: false,
		},
		UI: UIConfig{
			SchemaSampleRows: 5,
		},
		Observability: ObservabilityConfig{
			LogLevel: slog.LevelDebug,
			LogJSON:  true,
		},
	}

	switch profile {
	case ProfileTest:
		cfg.HTTP.Address = ":18080"
		cfg.Observability.LogLevel = slog.LevelWarn
	case ProfileProd:
		cfg.Observability.LogLevel = slog.LevelInfo
	}

	return cfg
}

func isValidProfile(profile Profile) bool {
	switch profile {
	case ProfileDev, ProfileTest, ProfileProd:
		return true
	default:
		return false
	}
}

func applyString(lookup LookupFunc, key string, dst *string) error {
	raw, ok := lookup(key)
	if !ok {
		return nil
	}
	*dst = strings.TrimSpace(raw)
	return nil
}

func applyDuration(lookup LookupFunc, key string, dst *time.Duration) error {
	raw, ok := lookup(key)
	if !ok {
		return nil
	}
	value, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = value
	return nil
}

func applyBool(lookup LookupFunc, key string, dst *bool) error {
	raw, ok := lookup(key)
	if !ok {
		return nil
	}
	value, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = value
	return nil
}

func applyInt(lookup LookupFunc, key string, dst *int) error {
	raw, ok := lookup(key)
	if !ok {
		return nil
	}
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = value
	return nil
}

func applyFloat(lookup LookupFunc, key string, dst *float64) error {
	raw, ok := lookup(key)
	if !ok {
		return nil
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = value
	return nil
}

func applyLogLevel(lookup LookupFunc, key string, dst *slog.Level) error {
	raw, ok := lookup(key)
	if !ok {
		return nil
	}
	level := strings.ToLower(strings.TrimSpace(raw))
	switch level {
	case "debug":
		*dst = slog.LevelDebug
	case "info":
		*dst = slog.LevelInfo
	case "warn", "warning":
		*dst = slog.LevelWarn
	case "error":
		*dst = slog.LevelError
	default:
		return fmt.Errorf("invalid %s: %q", key, raw)
	}
	return nil
}
