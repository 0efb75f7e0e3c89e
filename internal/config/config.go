package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ghiras-nahda/hris-backend-go/internal/domain/geofence"
	"github.com/ghiras-nahda/hris-backend-go/internal/pkg/geo"
	"github.com/joho/godotenv"
)

type Config struct {
	JWT      JWTConfig
	App      AppConfig
	Geofence GeofenceConfig
	Session  SessionConfig
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration time.Duration
}

// AppConfig holds application configuration
type AppConfig struct {
	Port               int
	Env                string
	LogLevel           string
	Timezone           string
	CORSAllowedOrigins []string
	SeedFile           string
}

// GeofenceConfig holds the office reference point and the two radii.
type GeofenceConfig struct {
	OfficeLatitude             float64
	OfficeLongitude            float64
	AttendanceRadiusMeters     float64
	LeaveExclusionRadiusMeters float64
}

// Policy returns the geofence policy around the configured office. Unset
// radii keep the standard 150 m and 500 m.
func (g GeofenceConfig) Policy() geofence.Policy {
	policy := geofence.DefaultPolicy(geo.Coordinate{Latitude: g.OfficeLatitude, Longitude: g.OfficeLongitude})
	if g.AttendanceRadiusMeters > 0 {
		policy.AttendanceRadiusMeters = g.AttendanceRadiusMeters
	}
	if g.LeaveExclusionRadiusMeters > 0 {
		policy.LeaveExclusionRadiusMeters = g.LeaveExclusionRadiusMeters
	}
	return policy
}

type SessionConfig struct {
	SweepInterval time.Duration
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
		slog.Debug("no .env file found, using process environment")
	}
	return FromEnv()
}

// FromEnv builds the configuration from environment variables.
func FromEnv() (*Config, error) {
	config := &Config{}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:               appPort,
		Env:                getEnv("APP_ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		Timezone:           getEnv("APP_TIMEZONE", "Asia/Riyadh"),
		CORSAllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
		SeedFile:           getEnv("SEED_FILE", ""),
	}

	// JWT configuration
	accessExpiration, err := time.ParseDuration(getEnv("JWT_ACCESS_EXPIRATION_TIME", "12h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}

	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: accessExpiration,
	}

	// Geofence configuration
	if config.Geofence.OfficeLatitude, err = getEnvFloat("OFFICE_LATITUDE", 24.7136); err != nil {
		return nil, err
	}
	if config.Geofence.OfficeLongitude, err = getEnvFloat("OFFICE_LONGITUDE", 46.6753); err != nil {
		return nil, err
	}
	if config.Geofence.AttendanceRadiusMeters, err = getEnvFloat("ATTENDANCE_RADIUS_METERS", 150); err != nil {
		return nil, err
	}
	if config.Geofence.LeaveExclusionRadiusMeters, err = getEnvFloat("LEAVE_EXCLUSION_RADIUS_METERS", 500); err != nil {
		return nil, err
	}

	// Session configuration
	sweepInterval, err := time.ParseDuration(getEnv("SESSION_SWEEP_INTERVAL", "1m"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_SWEEP_INTERVAL: %w", err)
	}
	config.Session = SessionConfig{SweepInterval: sweepInterval}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.JWT.AccessExpiration <= 0 {
		return fmt.Errorf("JWT_ACCESS_EXPIRATION_TIME must be positive")
	}
	if c.Geofence.OfficeLatitude < -90 || c.Geofence.OfficeLatitude > 90 {
		return fmt.Errorf("OFFICE_LATITUDE must be between -90 and 90")
	}
	if c.Geofence.OfficeLongitude < -180 || c.Geofence.OfficeLongitude > 180 {
		return fmt.Errorf("OFFICE_LONGITUDE must be between -180 and 180")
	}
	if c.Geofence.AttendanceRadiusMeters <= 0 || c.Geofence.LeaveExclusionRadiusMeters <= 0 {
		return fmt.Errorf("geofence radii must be positive")
	}
	if c.Session.SweepInterval <= 0 {
		return fmt.Errorf("SESSION_SWEEP_INTERVAL must be positive")
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}
	return nil
}

// Location returns the time zone calendar days are counted in.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.App.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func getEnvSlice(env string, fallback []string) []string {
	value := getEnv(env, "")
	if value == "" {
		return fallback
	}
	var result []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result
}
