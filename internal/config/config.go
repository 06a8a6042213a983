package config

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	BaseURL     string `env:"BASE_URL" envDefault:"http://localhost:8080"`
	CatalogDSN  string `env:"CATALOG_DSN" envDefault:"file:gamestore.db"`

	Store    Store       `envPrefix:"STORE_"`
	Download Download    `envPrefix:"DOWNLOAD_"`
	Payments Payments    `envPrefix:"PAYMENTS_"`
	Stripe   Stripe      `envPrefix:"STRIPE_"`
	Paypal   Paypal      `envPrefix:"PAYPAL_"`
	Files    FileStorage `envPrefix:"FILE_STORAGE_"`
	R2       R2          `envPrefix:"R2_"`
	Bunny    Bunny       `envPrefix:"BUNNY_"`
	Mail     Mail        `envPrefix:"MAIL_"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

// Production reports whether the process runs with production semantics.
// Several components fail closed only in production (storage fallback,
// tokenless downloads).
func (e Environment) Production() bool {
	return e.Name == "production"
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}

type Store struct {
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	// Purchase records expire out of the store after this many days.
	RecordTTLDays int `env:"RECORD_TTL_DAYS" envDefault:"365"`
}

type Download struct {
	TokenSecret  string `env:"TOKEN_SECRET,required"`
	ExpiresHours int    `env:"EXPIRES_HOURS" envDefault:"48"`
	MaxDownloads int    `env:"MAX_DOWNLOADS" envDefault:"5"`
	// Increment the per-purchase download counter on each served file.
	CountDownloads bool `env:"COUNT_DOWNLOADS" envDefault:"false"`
}

type Payments struct {
	// Default provider used when a checkout request names none.
	Provider string `env:"PROVIDER" envDefault:"stripe"`
	// Skip fulfillment when a record for the same session id already exists.
	DedupeSessions bool `env:"DEDUPE_SESSIONS" envDefault:"false"`
}

type Stripe struct {
	SecretKey     string `env:"SECRET_KEY"`
	WebhookSecret string `env:"WEBHOOK_SECRET"`
}

type Paypal struct {
	BaseApiURL   string `env:"BASE_API_URL" envDefault:"https://api-m.sandbox.paypal.com"`
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	WebhookID    string `env:"WEBHOOK_ID"`
}

type FileStorage struct {
	// cloudflare-r2, bunny-net or local; empty means auto-detect.
	Provider string `env:"PROVIDER"`
}

type R2 struct {
	AccessKeyID     string `env:"ACCESS_KEY_ID"`
	SecretAccessKey string `env:"SECRET_ACCESS_KEY"`
	BucketName      string `env:"BUCKET_NAME"`
	AccountID       string `env:"ACCOUNT_ID"`
	Region          string `env:"REGION" envDefault:"auto"`
}

type Bunny struct {
	TokenKey    string `env:"TOKEN_KEY"`
	StorageZone string `env:"STORAGE_ZONE"`
	CDNURL      string `env:"CDN_URL"`
}

type Mail struct {
	// resend, smtp or console.
	Provider string `env:"PROVIDER" envDefault:"console"`
	FromName string `env:"FROM_NAME" envDefault:"Game Store"`
	FromAddr string `env:"FROM_ADDR" envDefault:"downloads@localhost"`

	ResendAPIKey string `env:"RESEND_API_KEY"`

	SMTPHost string `env:"SMTP_HOST"`
	SMTPPort int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser string `env:"SMTP_USER"`
	SMTPPass string `env:"SMTP_PASS"`
}
