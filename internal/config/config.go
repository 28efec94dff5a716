package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	ERP       ERPConfig
	Rates     RatesConfig
	Printer   PrinterConfig
	OAuth     OAuthConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
}

type JWTConfig struct {
	Secret             string
	ExpiryHours        time.Duration
	RefreshExpiryHours time.Duration
}

// ERPConfig holds the upstream billing backend connection settings.
type ERPConfig struct {
	BaseURL          string
	CostID           string
	CompanyID        string
	TaxCompanyID     string
	Timeout          time.Duration
	StonePostTimeout time.Duration
}

type RatesConfig struct {
	PollInterval time.Duration
}

type PrinterConfig struct {
	Type        string // usb, network, none
	USBPath     string
	Address     string
	Width       int
	DialTimeout time.Duration
}

type OAuthConfig struct {
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "estima-api")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "estima")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "Asia/Kolkata")
	viper.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	viper.SetDefault("JWT_EXPIRY_HOURS", 24)
	viper.SetDefault("JWT_REFRESH_EXPIRY_HOURS", 168)
	viper.SetDefault("ERP_BASE_URL", "http://localhost:9090")
	viper.SetDefault("ERP_COST_ID", "FL")
	viper.SetDefault("ERP_COMPANY_ID", "BMG")
	viper.SetDefault("ERP_TAX_COMPANY_ID", "BMH")
	viper.SetDefault("ERP_TIMEOUT_SECONDS", 30)
	viper.SetDefault("ERP_STONE_POST_TIMEOUT_SECONDS", 10)
	viper.SetDefault("RATES_POLL_INTERVAL_SECONDS", 60)
	viper.SetDefault("PRINTER_TYPE", "none")
	viper.SetDefault("PRINTER_USB_PATH", "/dev/usb/lp0")
	viper.SetDefault("PRINTER_ADDRESS", "")
	viper.SetDefault("PRINTER_WIDTH", 32)
	viper.SetDefault("PRINTER_DIAL_TIMEOUT_SECONDS", 5)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)

	return &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Port:  viper.GetString("APP_PORT"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
			Timezone: viper.GetString("DB_TIMEZONE"),
		},
		JWT: JWTConfig{
			Secret:             viper.GetString("JWT_SECRET"),
			ExpiryHours:        time.Duration(viper.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
			RefreshExpiryHours: time.Duration(viper.GetInt("JWT_REFRESH_EXPIRY_HOURS")) * time.Hour,
		},
		ERP: ERPConfig{
			BaseURL:          viper.GetString("ERP_BASE_URL"),
			CostID:           viper.GetString("ERP_COST_ID"),
			CompanyID:        viper.GetString("ERP_COMPANY_ID"),
			TaxCompanyID:     viper.GetString("ERP_TAX_COMPANY_ID"),
			Timeout:          time.Duration(viper.GetInt("ERP_TIMEOUT_SECONDS")) * time.Second,
			StonePostTimeout: time.Duration(viper.GetInt("ERP_STONE_POST_TIMEOUT_SECONDS")) * time.Second,
		},
		Rates: RatesConfig{
			PollInterval: time.Duration(viper.GetInt("RATES_POLL_INTERVAL_SECONDS")) * time.Second,
		},
		Printer: PrinterConfig{
			Type:        viper.GetString("PRINTER_TYPE"),
			USBPath:     viper.GetString("PRINTER_USB_PATH"),
			Address:     viper.GetString("PRINTER_ADDRESS"),
			Width:       viper.GetInt("PRINTER_WIDTH"),
			DialTimeout: time.Duration(viper.GetInt("PRINTER_DIAL_TIMEOUT_SECONDS")) * time.Second,
		},
		OAuth: OAuthConfig{
			GoogleClientID:     viper.GetString("GOOGLE_CLIENT_ID"),
			GoogleClientSecret: viper.GetString("GOOGLE_CLIENT_SECRET"),
			GoogleRedirectURL:  viper.GetString("GOOGLE_REDIRECT_URL"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
	}
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}
