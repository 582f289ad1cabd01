package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Verification VerificationConfig
	Notify       NotifyConfig
	Booking      BookingConfig
	RateLimit    RateLimitConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"OPENSKY_APP_ENV" required:"true"`
	Port         string `envconfig:"OPENSKY_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"OPENSKY_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"OPENSKY_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"OPENSKY_DB_DSN"`
	Driver string `envconfig:"OPENSKY_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"OPENSKY_DB_HOST"`
	LegacyPort     int    `envconfig:"OPENSKY_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"OPENSKY_DB_USER"`
	LegacyPassword string `envconfig:"OPENSKY_DB_PASSWORD"`
	LegacyName     string `envconfig:"OPENSKY_DB_NAME"`
	LegacySSLMode  string `envconfig:"OPENSKY_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"OPENSKY_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"OPENSKY_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"OPENSKY_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"OPENSKY_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"OPENSKY_REDIS_URL" required:"true"`
	Address      string        `envconfig:"OPENSKY_REDIS_ADDR"`
	Password     string        `envconfig:"OPENSKY_REDIS_PASSWORD"`
	DB           int           `envconfig:"OPENSKY_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"OPENSKY_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"OPENSKY_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"OPENSKY_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"OPENSKY_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"OPENSKY_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// VerificationConfig drives the bot-challenge gate. An empty Secret switches
// the gate into pass-open mode, which is logged loudly at startup and on
// every bypassed request.
type VerificationConfig struct {
	Secret    string        `envconfig:"OPENSKY_VERIFY_SECRET"`
	VerifyURL string        `envconfig:"OPENSKY_VERIFY_URL" default:"https://challenges.cloudflare.com/turnstile/v0/siteverify"`
	Timeout   time.Duration `envconfig:"OPENSKY_VERIFY_TIMEOUT" default:"5s"`
}

// PassOpen reports whether the gate is configured to let every request
// through (no verification secret present).
func (v VerificationConfig) PassOpen() bool {
	return strings.TrimSpace(v.Secret) == ""
}

type NotifyConfig struct {
	BotToken         string        `envconfig:"OPENSKY_NOTIFY_BOT_TOKEN"`
	ChatIDs          []string      `envconfig:"OPENSKY_NOTIFY_CHAT_IDS"`
	APIBaseURL       string        `envconfig:"OPENSKY_NOTIFY_API_BASE_URL" default:"https://api.telegram.org"`
	RecipientTimeout time.Duration `envconfig:"OPENSKY_NOTIFY_RECIPIENT_TIMEOUT" default:"8s"`
}

type BookingConfig struct {
	// AcceptedLocations narrows the bookable location keys. Empty means the
	// full static location table is accepted.
	AcceptedLocations []string `envconfig:"OPENSKY_BOOKING_LOCATIONS"`
	// VNDPerUSD is the fixed fallback conversion rate applied when a price is
	// configured in only one currency. It is an approximation, not a live FX
	// feed.
	VNDPerUSD int64 `envconfig:"OPENSKY_BOOKING_VND_PER_USD" default:"25000"`
}

type RateLimitConfig struct {
	SubmitWindow     time.Duration `envconfig:"OPENSKY_RATE_LIMIT_SUBMIT_WINDOW" default:"1m"`
	SubmitIPLimit    int           `envconfig:"OPENSKY_RATE_LIMIT_SUBMIT_IP_LIMIT" default:"10"`
	SubmitPhoneLimit int           `envconfig:"OPENSKY_RATE_LIMIT_SUBMIT_PHONE_LIMIT" default:"5"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"OPENSKY_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
