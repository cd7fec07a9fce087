package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	DB       DBConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Admin    AdminConfig
	WhatsApp WhatsAppConfig
	Clinic   ClinicConfig
}

type AppConfig struct {
	Port string
	Env  string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// AdminConfig holds the static bearer credential for the administrative surface.
type AdminConfig struct {
	Token string
}

type WhatsAppConfig struct {
	VerifyToken   string
	APIToken      string
	PhoneNumberID string
	BaseURL       string
}

// ClinicConfig carries the calendar timezone and the idle-session expiry.
// SessionTTL of 0 disables expiry.
type ClinicConfig struct {
	Timezone   string
	SessionTTL time.Duration
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	accessExpiry, err := time.ParseDuration(viper.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 15 * time.Minute
	}

	refreshExpiry, err := time.ParseDuration(viper.GetString("JWT_REFRESH_EXPIRY"))
	if err != nil {
		refreshExpiry = 7 * 24 * time.Hour
	}

	sessionTTL, err := time.ParseDuration(viper.GetString("SESSION_TTL"))
	if err != nil {
		sessionTTL = 30 * time.Minute
	}

	timezone := viper.GetString("CLINIC_TIMEZONE")
	if timezone == "" {
		timezone = "America/Sao_Paulo"
	}

	baseURL := viper.GetString("WHATSAPP_API_BASE_URL")
	if baseURL == "" {
		baseURL = "https://graph.facebook.com/v19.0"
	}

	config := &Config{
		App: AppConfig{
			Port: viper.GetString("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:        viper.GetString("JWT_SECRET"),
			AccessExpiry:  accessExpiry,
			RefreshExpiry: refreshExpiry,
		},
		Admin: AdminConfig{
			Token: viper.GetString("ADMIN_TOKEN"),
		},
		WhatsApp: WhatsAppConfig{
			VerifyToken:   viper.GetString("WHATSAPP_VERIFY_TOKEN"),
			APIToken:      viper.GetString("WHATSAPP_API_TOKEN"),
			PhoneNumberID: viper.GetString("WHATSAPP_PHONE_NUMBER_ID"),
			BaseURL:       baseURL,
		},
		Clinic: ClinicConfig{
			Timezone:   timezone,
			SessionTTL: sessionTTL,
		},
	}

	return config, nil
}
