package config

import (
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string `env:"ENV" env-required:"true"`
	LogLevel   string `env:"LOG_LEVEL" env-default:"info" env-description:"logging level, debug, info, etc."`
	HttpServer HttpServer
	Database   Database
	Limiter    Limiter
	Auth       AuthConfig
	Google     GoogleConfig
	Payment    PaymentConfig
	Event      EventConfig
	SMTP       SMTPConfig
	Email      EmailConfig
	Receipt    ReceiptConfig
	Audit      AuditConfig
	Cache      Cache
}

type HttpServer struct {
	Port           string        `env:"HTTP_PORT" env-default:"8080"`
	Timeout        time.Duration `env:"HTTP_TIMEOUT" env-default:"4s"`
	IdleTimeout    time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
	SwaggerEnabled bool          `env:"HTTP_SWAGGER_ENABLED" env-default:"false"`
	PublicURL      string        `env:"HTTP_PUBLIC_URL" env-default:"http://localhost:3000" env-description:"frontend origin used for redirects"`
	DashboardPath  string        `env:"HTTP_DASHBOARD_PATH" env-default:"/kala-yatra/dashboard"`
	AuthErrorPath  string        `env:"HTTP_AUTH_ERROR_PATH" env-default:"/auth?error=auth_failed"`
	AllowedOrigins []string      `env:"HTTP_ALLOWED_ORIGINS" env-default:"http://localhost:3000"`
}

type Database struct {
	Net                string        `env:"DB_NET" env-default:"tcp"`
	Server             string        `env:"DB_SERVER" env-required:"true"`
	DBName             string        `env:"DB_NAME" env-required:"true"`
	User               string        `env:"DB_USER" env-required:"true"`
	Password           string        `env:"DB_PASSWORD" env-required:"true"`
	TimeZone           string        `env:"DB_TIMEZONE" env-default:"Asia/Kolkata"`
	Timeout            time.Duration `env:"DB_TIMEOUT" env-default:"2s"`
	MaxIdleConnections int           `env:"DB_MAX_IDLE_CONNECTIONS" env-default:"20"`
	MaxOpenConnections int           `env:"DB_MAX_OPEN_CONNECTIONS" env-default:"20"`
}

type Limiter struct {
	RPS   int           `env:"LIMITER_RPS" env-default:"10"`
	Burst int           `env:"LIMITER_BURST" env-default:"20"`
	TTL   time.Duration `env:"LIMITER_TTL" env-default:"10m"`
}

type AuthConfig struct {
	JWT            JWTConfig
	CookieName     string        `env:"AUTH_COOKIE_NAME" env-default:"ky_session"`
	RefreshCookie  string        `env:"AUTH_REFRESH_COOKIE_NAME" env-default:"ky_refresh"`
	CookieDomain   string        `env:"AUTH_COOKIE_DOMAIN" env-default:""`
	CookieSecure   bool          `env:"AUTH_COOKIE_SECURE" env-default:"true"`
	StateTTL       time.Duration `env:"AUTH_STATE_TTL" env-default:"10m"`
	ProfileIDSpace string        `env:"AUTH_PROFILE_ID_NAMESPACE" env-default:"6ba7b811-9dad-11d1-80b4-00c04fd430c8" env-description:"uuid namespace for profile ids derived from provider subjects"`
}

type JWTConfig struct {
	AccessTokenTTL  time.Duration `env:"JWT_ACCESS_TOKEN_TTL" env-default:"24h"`
	RefreshTokenTTL time.Duration `env:"JWT_REFRESH_TOKEN_TTL" env-default:"720h"`
	SigningKey      string        `env:"JWT_SIGNING_KEY" env-required:"true"`
}

type GoogleConfig struct {
	ClientID     string   `env:"GOOGLE_CLIENT_ID" env-required:"true"`
	ClientSecret string   `env:"GOOGLE_CLIENT_SECRET" env-required:"true"`
	RedirectURL  string   `env:"GOOGLE_REDIRECT_URL" env-required:"true" env-description:"public URL of /api/v1/auth/callback"`
	Scopes       []string `env:"GOOGLE_SCOPES" env-default:"profile,email"`

	// MockProviderAddr starts a local stand-in for Google on this address. Ignored in production.
	MockProviderAddr string `env:"GOOGLE_MOCK_PROVIDER_ADDR" env-default:""`
}

type PaymentConfig struct {
	PayeeID                 string        `env:"PAYMENT_UPI_ID" env-required:"true"`
	MerchantName            string        `env:"PAYMENT_MERCHANT_NAME" env-default:"Kala Yatra 2.0"`
	SelfServeAmount         int64         `env:"PAYMENT_SELF_SERVE_AMOUNT" env-default:"1" env-description:"amount a participant is asked to pay through the UPI link"`
	VerificationAmount      int64         `env:"PAYMENT_VERIFICATION_AMOUNT" env-default:"100" env-description:"amount an admin must confirm to verify a payment"`
	AdminSecret             string        `env:"PAYMENT_ADMIN_SECRET" env-required:"true"`
	AdminSecretSalt         string        `env:"PAYMENT_ADMIN_SECRET_SALT" env-default:"kala-yatra"`
	OrderPrefix             string        `env:"PAYMENT_ORDER_PREFIX" env-default:"ART"`
	CompletionDelay         time.Duration `env:"PAYMENT_COMPLETION_DELAY" env-default:"2s"`
	AllowUnverifiedAdvance  bool          `env:"PAYMENT_ALLOW_UNVERIFIED_ADVANCE" env-default:"true"`
	EventsHeartbeatInterval time.Duration `env:"PAYMENT_EVENTS_HEARTBEAT" env-default:"15s"`
}

type EventConfig struct {
	Name     string        `env:"EVENT_NAME" env-default:"Kala Yatra 2.0"`
	Date     string        `env:"EVENT_DATE" env-default:"31st March 2026"`
	Deadline time.Time     `env:"REGISTRATION_DEADLINE" env-default:"2026-03-25T23:59:59+05:30"`
	DraftTTL time.Duration `env:"WIZARD_DRAFT_TTL" env-default:"24h"`
}

type SMTPConfig struct {
	Host string `env:"SMTP_HOST" env-default:"localhost"`
	Port int    `env:"SMTP_PORT" env-default:"587"`
	From string `env:"SMTP_FROM" env-default:"noreply@kalayatra.in"`
	Pass string `env:"SMTP_PASS" env-default:""`
}

type EmailConfig struct {
	Enabled      bool   `env:"EMAIL_ENABLED" env-default:"false"`
	TemplatesDir string `env:"EMAIL_TEMPLATES_DIR" env-default:"./templates"`
	Templates    EmailTemplates
}

type EmailTemplates struct {
	RegistrationReceived string `env:"EMAIL_TEMPLATE_REGISTRATION_RECEIVED" env-default:"registration_received.html"`
	PaymentVerified      string `env:"EMAIL_TEMPLATE_PAYMENT_VERIFIED" env-default:"payment_verified.html"`
	PaymentRejected      string `env:"EMAIL_TEMPLATE_PAYMENT_REJECTED" env-default:"payment_rejected.html"`
}

type ReceiptConfig struct {
	FontPath string `env:"RECEIPT_FONT_PATH" env-default:"./fonts/DejaVuSans.ttf"`
}

type AuditConfig struct {
	OrphanSweepSchedule string        `env:"AUDIT_ORPHAN_SWEEP_SCHEDULE" env-default:"@every 15m"`
	OrphanGracePeriod   time.Duration `env:"AUDIT_ORPHAN_GRACE_PERIOD" env-default:"10m"`
}

type Cache struct {
	Type  string `env:"REDIS_TYPE" env-default:"redis" env-description:"specifies provider, one of redis/redisCluster"`
	Redis struct {
		Address  string `env:"REDIS_ADDR" env-default:"localhost:6379" env-description:"redis host:port single instance"`
		Password string `env:"REDIS_PASSWORD" env-default:"" env-description:"redis password if exists"`
		PoolSize int    `env:"REDIS_POOL_SIZE" env-default:"70" env-description:"max tcp connections pool size"`
	}
	RedisCluster struct {
		Addresses []string `env:"REDIS_CLUSTER_ADDRS" env-default:"" env-description:"redis cluster nodes: ['172.27.29.90:7000','172.27.29.91:7001'', '172.27.29.92:7002'']"`
		Password  string   `env:"REDIS_PASSWORD" env-default:"" env-description:"redis password if exists"`
		PoolSize  int      `env:"REDIS_POOL_SIZE" env-default:"70" env-description:"max tcp connections pool size"`
	}
}

func MustLoad() *Config {
	var cfg Config

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("cannot read config from environment: %s", err)
	}

	return &cfg
}
