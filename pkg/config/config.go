package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App       AppConfig
	DB        DBConfig
	Redis     RedisConfig
	Session   SessionConfig
	Admin     AdminConfig
	Password  PasswordConfig
	Shipping  ShippingConfig
	CEP       CEPConfig
	Payments  PaymentsConfig
	Uploads   UploadsConfig
	RateLimit AuthRateLimitConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"JOALHERIA_APP_ENV" required:"true"`
	Port         string `envconfig:"JOALHERIA_APP_PORT" required:"true"`
	BaseURL      string `envconfig:"JOALHERIA_BASE_URL" default:"http://localhost:5000"`
	LogLevel     string `envconfig:"JOALHERIA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"JOALHERIA_LOG_WARN_STACK" default:"false"`
	AutoMigrate  bool   `envconfig:"JOALHERIA_AUTO_MIGRATE" default:"false"`
	SeedCatalog  bool   `envconfig:"JOALHERIA_SEED_CATALOG" default:"true"`

	CORSOrigins []string `envconfig:"JOALHERIA_CORS_ORIGINS"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, "dev")
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, "prod")
}

type DBConfig struct {
	DSN    string `envconfig:"JOALHERIA_DB_DSN"`
	Driver string `envconfig:"JOALHERIA_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"JOALHERIA_DB_HOST"`
	LegacyPort     int    `envconfig:"JOALHERIA_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"JOALHERIA_DB_USER"`
	LegacyPassword string `envconfig:"JOALHERIA_DB_PASSWORD"`
	LegacyName     string `envconfig:"JOALHERIA_DB_NAME"`
	LegacySSLMode  string `envconfig:"JOALHERIA_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"JOALHERIA_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"JOALHERIA_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"JOALHERIA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"JOALHERIA_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"JOALHERIA_REDIS_URL" required:"true"`
	Address      string        `envconfig:"JOALHERIA_REDIS_ADDR"`
	Password     string        `envconfig:"JOALHERIA_REDIS_PASSWORD"`
	DB           int           `envconfig:"JOALHERIA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"JOALHERIA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"JOALHERIA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"JOALHERIA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"JOALHERIA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"JOALHERIA_REDIS_WRITE_TIMEOUT" default:"5s"`

	CartTTL time.Duration `envconfig:"JOALHERIA_CART_TTL" default:"720h"`
}

type SessionConfig struct {
	CookieName   string        `envconfig:"JOALHERIA_SESSION_COOKIE" default:"joalheria_session"`
	TTL          time.Duration `envconfig:"JOALHERIA_SESSION_TTL" default:"168h"`
	CookieSecure bool          `envconfig:"JOALHERIA_SESSION_SECURE" default:"false"`
}

type AdminConfig struct {
	Secret             string `envconfig:"JOALHERIA_ADMIN_SECRET" required:"true"`
	TokenSigningSecret string `envconfig:"JOALHERIA_ADMIN_TOKEN_SECRET" required:"true"`
	TokenTTLMinutes    int    `envconfig:"JOALHERIA_ADMIN_TOKEN_TTL_MINUTES" default:"120"`
	TokenIssuer        string `envconfig:"JOALHERIA_ADMIN_TOKEN_ISSUER" default:"joalheria"`
}

// TokenTTL returns the admin capability lifetime.
func (a AdminConfig) TokenTTL() time.Duration {
	if a.TokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(a.TokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"JOALHERIA_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"JOALHERIA_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"JOALHERIA_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"JOALHERIA_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"JOALHERIA_ARGON_KEY_LEN" default:"32"`
}

type ShippingConfig struct {
	APIURL   string        `envconfig:"JOALHERIA_SHIPPING_API_URL"`
	APIToken string        `envconfig:"JOALHERIA_SHIPPING_API_TOKEN"`
	Origin   string        `envconfig:"JOALHERIA_SHIPPING_ORIGIN_CEP" default:"01310100"`
	CacheTTL time.Duration `envconfig:"JOALHERIA_SHIPPING_CACHE_TTL" default:"15m"`
}

type CEPConfig struct {
	BaseURL string `envconfig:"JOALHERIA_CEP_API_URL" default:"https://viacep.com.br/ws"`
}

type PaymentsConfig struct {
	APIURL      string `envconfig:"JOALHERIA_PAYMENT_API_URL" default:"https://api.mercadopago.com"`
	AccessToken string `envconfig:"JOALHERIA_PAYMENT_ACCESS_TOKEN"`
	WhatsApp    string `envconfig:"JOALHERIA_WHATSAPP_NUMBER"`
}

type UploadsConfig struct {
	Dir  string `envconfig:"JOALHERIA_UPLOADS_DIR" default:"uploads"`
	Path string `envconfig:"JOALHERIA_UPLOADS_PATH" default:"/uploads"`
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"JOALHERIA_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit int           `envconfig:"JOALHERIA_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit    int           `envconfig:"JOALHERIA_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		"JOALHERIA_DB_HOST": db.LegacyHost,
		"JOALHERIA_DB_USER": db.LegacyUser,
		"JOALHERIA_DB_NAME": db.LegacyName,
	}
	for _, key := range []string{"JOALHERIA_DB_HOST", "JOALHERIA_DB_USER", "JOALHERIA_DB_NAME"} {
		if legacyValues[key] == "" {
			missing = append(missing, key)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either JOALHERIA_DB_DSN or %s are required", strings.Join(missing, ", "))
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
