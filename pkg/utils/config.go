package utils

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	Email      EmailConfig
	OTP        OTPConfig
	Redis      RedisConfig
	VNPay      VNPayConfig
	ZaloPay    ZaloPayConfig
	Commission CommissionConfig
	Booking    BookingConfig
	RateLimit  RateLimitConfig
	CORS       CORSConfig
}

type AppConfig struct {
	Name      string
	Port      string
	Debug     bool
	LogPath   string
	BaseURL   string
	UploadDir string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

type EmailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type OTPConfig struct {
	ExpiryMinutes int
	Length        int
}

// RedisConfig with an empty Addr switches cache and locks to in-process fallbacks.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type VNPayConfig struct {
	TmnCode       string
	HashSecret    string
	PayURL        string
	ReturnURL     string
	HashType      string
	ExpireMinutes int
}

type ZaloPayConfig struct {
	AppID            int
	Key1             string
	Key2             string
	Endpoint         string
	CallbackURL      string
	RedirectURL      string
	ExpireMinutes    int
	Timeout          time.Duration
	BreakerThreshold int64
}

type CommissionConfig struct {
	Rate     float64
	CronSpec string
}

type BookingConfig struct {
	PendingExpiryMinutes int
	ExpiryCronSpec       string
	SessionCleanupSpec   string
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

type CORSConfig struct {
	AllowedOrigins []string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "court-booking")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("BASE_URL", "http://localhost:8080")
	viper.SetDefault("UPLOAD_DIR", "uploads/")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("JWT_EXPIRY_HOURS", 24)
	viper.SetDefault("OTP_EXPIRY_MINUTES", 10)
	viper.SetDefault("OTP_LENGTH", 6)
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("VNPAY_PAY_URL", "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html")
	viper.SetDefault("VNPAY_HASH_TYPE", "HMACSHA512")
	viper.SetDefault("VNPAY_EXPIRE_MINUTES", 15)
	viper.SetDefault("ZALOPAY_ENDPOINT", "https://sb-openapi.zalopay.vn/v2")
	viper.SetDefault("ZALOPAY_EXPIRE_MINUTES", 15)
	viper.SetDefault("ZALOPAY_TIMEOUT", "10s")
	viper.SetDefault("ZALOPAY_BREAKER_THRESHOLD", 5)
	viper.SetDefault("COMMISSION_RATE", 0.05)
	viper.SetDefault("COMMISSION_CRON", "0 0 1 * *")
	viper.SetDefault("BOOKING_PENDING_EXPIRY_MINUTES", 15)
	viper.SetDefault("BOOKING_EXPIRY_CRON", "@every 1m")
	viper.SetDefault("SESSION_CLEANUP_CRON", "@daily")
	viper.SetDefault("RATE_LIMIT_RPS", 5)
	viper.SetDefault("RATE_LIMIT_BURST", 10)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	if err := viper.ReadInConfig(); err != nil {
		// .env is optional, the process environment is enough in containers
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isMissingFile(err) {
			return nil, err
		}
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:      viper.GetString("APP_NAME"),
			Port:      viper.GetString("PORT"),
			Debug:     viper.GetBool("DEBUG"),
			LogPath:   viper.GetString("LOG_PATH"),
			BaseURL:   strings.TrimRight(viper.GetString("BASE_URL"), "/"),
			UploadDir: viper.GetString("UPLOAD_DIR"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		JWT: JWTConfig{
			Secret:      viper.GetString("JWT_SECRET"),
			ExpiryHours: viper.GetInt("JWT_EXPIRY_HOURS"),
		},
		Email: EmailConfig{
			Host:     viper.GetString("SMTP_HOST"),
			Port:     viper.GetInt("SMTP_PORT"),
			User:     viper.GetString("SMTP_USER"),
			Password: viper.GetString("SMTP_PASS"),
			From:     viper.GetString("EMAIL_FROM"),
		},
		OTP: OTPConfig{
			ExpiryMinutes: viper.GetInt("OTP_EXPIRY_MINUTES"),
			Length:        viper.GetInt("OTP_LENGTH"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		VNPay: VNPayConfig{
			TmnCode:       viper.GetString("VNPAY_TMN_CODE"),
			HashSecret:    viper.GetString("VNPAY_HASH_SECRET"),
			PayURL:        viper.GetString("VNPAY_PAY_URL"),
			ReturnURL:     viper.GetString("VNPAY_RETURN_URL"),
			HashType:      viper.GetString("VNPAY_HASH_TYPE"),
			ExpireMinutes: viper.GetInt("VNPAY_EXPIRE_MINUTES"),
		},
		ZaloPay: ZaloPayConfig{
			AppID:            viper.GetInt("ZALOPAY_APP_ID"),
			Key1:             viper.GetString("ZALOPAY_KEY1"),
			Key2:             viper.GetString("ZALOPAY_KEY2"),
			Endpoint:         strings.TrimRight(viper.GetString("ZALOPAY_ENDPOINT"), "/"),
			CallbackURL:      viper.GetString("ZALOPAY_CALLBACK_URL"),
			RedirectURL:      viper.GetString("ZALOPAY_REDIRECT_URL"),
			ExpireMinutes:    viper.GetInt("ZALOPAY_EXPIRE_MINUTES"),
			Timeout:          viper.GetDuration("ZALOPAY_TIMEOUT"),
			BreakerThreshold: viper.GetInt64("ZALOPAY_BREAKER_THRESHOLD"),
		},
		Commission: CommissionConfig{
			Rate:     viper.GetFloat64("COMMISSION_RATE"),
			CronSpec: viper.GetString("COMMISSION_CRON"),
		},
		Booking: BookingConfig{
			PendingExpiryMinutes: viper.GetInt("BOOKING_PENDING_EXPIRY_MINUTES"),
			ExpiryCronSpec:       viper.GetString("BOOKING_EXPIRY_CRON"),
			SessionCleanupSpec:   viper.GetString("SESSION_CLEANUP_CRON"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:             viper.GetInt("RATE_LIMIT_BURST"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
		},
	}

	if config.JWT.Secret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	return config, nil
}

// PaymentWindow is how long a gateway payment can stay open, the longer of the VNPay and ZaloPay expiries
func (c *Config) PaymentWindow() time.Duration {
	window := 15
	if c.VNPay.ExpireMinutes > window {
		window = c.VNPay.ExpireMinutes
	}
	if c.ZaloPay.ExpireMinutes > window {
		window = c.ZaloPay.ExpireMinutes
	}
	return time.Duration(window) * time.Minute
}

func isMissingFile(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "no such file") || strings.Contains(msg, "cannot find the file")
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
