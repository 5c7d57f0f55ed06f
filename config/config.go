package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the service configuration read from the environment and an
// optional .env file.
type Config struct {
	Port        int           `mapstructure:"PORT"`
	Env         string        `mapstructure:"ENV"`
	LogLevel    string        `mapstructure:"LOG_LEVEL"`
	DBDriver    string        `mapstructure:"DB_DRIVER"`
	DatabaseURL string        `mapstructure:"DATABASE_URL"`
	DBHost      string        `mapstructure:"DB_HOST"`
	DBPort      string        `mapstructure:"DB_PORT"`
	DBName      string        `mapstructure:"DB_NAME"`
	DBUser      string        `mapstructure:"DB_UNME"`
	DBPassword  string        `mapstructure:"DB_PWRD"`
	DBSSLMode   string        `mapstructure:"DB_SSLM"`
	DBTimeZone  string        `mapstructure:"DB_TMEZ"`
	JWTSecret   string        `mapstructure:"SECRET_KEY"`
	TokenTTL    time.Duration `mapstructure:"TOKEN_TTL"`
	UploadDir   string        `mapstructure:"UPLOAD_DIR"`
	AssetDir    string        `mapstructure:"ASSET_DIR"`
	FontDir     string        `mapstructure:"FONT_DIR"`
	CORSOrigins string        `mapstructure:"CORS_ORIGINS"`
	InquiryURL  string        `mapstructure:"APP_URL_INQUIRY"`
}

var keys = []string{
	"PORT", "ENV", "LOG_LEVEL", "DB_DRIVER", "DATABASE_URL",
	"DB_HOST", "DB_PORT", "DB_NAME", "DB_UNME", "DB_PWRD", "DB_SSLM", "DB_TMEZ",
	"TOKEN_TTL", "UPLOAD_DIR", "ASSET_DIR", "FONT_DIR", "CORS_ORIGINS", "APP_URL_INQUIRY",
}

// Load reads .env files (if any) and the environment.
func Load(envFiles ...string) (*Config, error) {
	// A missing .env is normal outside development.
	_ = godotenv.Load(envFiles...)

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", 3000)
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "medleave")
	v.SetDefault("DB_SSLM", "disable")
	v.SetDefault("DB_TMEZ", "Asia/Riyadh")
	v.SetDefault("TOKEN_TTL", "12h")
	v.SetDefault("UPLOAD_DIR", "uploads")
	v.SetDefault("ASSET_DIR", "assets")
	v.SetDefault("FONT_DIR", "assets/fonts")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("APP_URL_INQUIRY", "https://www.seha.sa/#/inquiries/slenquiry")

	for _, k := range keys {
		_ = v.BindEnv(k)
	}
	_ = v.BindEnv("SECRET_KEY", "SECRET_KEY", "JWT_SECRET")

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.DBDriver = strings.ToLower(strings.TrimSpace(cfg.DBDriver))
	return cfg, nil
}

// IsDev reports whether the service runs in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// Validate checks the configuration is usable.
func (c *Config) Validate() error {
	if c.Port <= 0 {
		return fmt.Errorf("PORT must be positive, got %d", c.Port)
	}
	switch c.DBDriver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("DB_DRIVER must be postgres, mysql or sqlite, got %q", c.DBDriver)
	}
	if c.JWTSecret == "" && !c.IsDev() {
		return errors.New("SECRET_KEY is required outside development")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive, got %s", c.TokenTTL)
	}
	return nil
}

// DSN returns DATABASE_URL, or builds one for the configured driver from
// the discrete DB_* settings.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	switch c.DBDriver {
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4&loc=Local",
			c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
	case "sqlite":
		return c.DBName
	}
	return fmt.Sprintf("host=%s port=%s dbname=%s user=%s password=%s sslmode=%s TimeZone=%s",
		c.DBHost, c.DBPort, c.DBName, c.DBUser, c.DBPassword, c.DBSSLMode, c.DBTimeZone)
}

// Addr is the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
