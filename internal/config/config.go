package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App              App              `mapstructure:",squash"`
	Server           Server           `mapstructure:",squash"`
	Database         Database         `mapstructure:",squash"`
	Redis            Redis            `mapstructure:",squash"`
	GoogleAds        GoogleAds        `mapstructure:",squash"`
	Security         Security         `mapstructure:",squash"`
	Auth             Auth             `mapstructure:",squash"`
	Email            Email            `mapstructure:",squash"`
	Cron             Cron             `mapstructure:",squash"`
	InsightsEmail    InsightsEmail    `mapstructure:",squash"`
	CacheCleanup     CacheCleanup     `mapstructure:",squash"`
	DailyMetricsSync DailyMetricsSync `mapstructure:",squash"`
}

type App struct {
	LogLevel    string `mapstructure:"log_level"`
	FrontendURL string `mapstructure:"frontend_url"`
}

type Server struct {
	Host           string        `mapstructure:"host"`
	Port           string        `mapstructure:"port"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`

	// Pool compartilhado pela API e pelos agendadores
	MaxOpenConns    int           `mapstructure:"database_max_open_conns"`
	MaxIdleConns    int           `mapstructure:"database_max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"database_conn_max_lifetime"`
}

// Redis habilita a camada quente do cache de métricas quando URL não é vazia
type Redis struct {
	URL string `mapstructure:"redis_url"`
}

type GoogleAds struct {
	ClientID            string        `mapstructure:"google_ads_client_id"`
	ClientSecret        string        `mapstructure:"google_ads_client_secret"`
	DeveloperToken      string        `mapstructure:"google_ads_developer_token"`
	LoginCustomerID     string        `mapstructure:"google_ads_login_customer_id"`
	RedirectURI         string        `mapstructure:"google_ads_redirect_uri"`
	APIBaseURL          string        `mapstructure:"google_ads_api_base_url"`
	APIVersion          string        `mapstructure:"google_ads_api_version"`
	AuthURL             string        `mapstructure:"google_ads_auth_url"`
	TokenURL            string        `mapstructure:"google_ads_token_url"`
	HTTPTimeout         time.Duration `mapstructure:"google_ads_http_timeout"`
	AccountDetailsLimit int           `mapstructure:"google_ads_account_details_limit"`
	CacheTTLHours       int           `mapstructure:"google_ads_cache_ttl_hours"`
	APIURL              string        `mapstructure:"-"`
}

type Security struct {
	EncryptionKey string `mapstructure:"encryption_key"`
	// KeyDerivation aceita "legacy" (padding com zeros) ou "hkdf"
	KeyDerivation string `mapstructure:"encryption_key_derivation"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

type Email struct {
	Region          string `mapstructure:"ses_region"`
	AccessKeyID     string `mapstructure:"ses_access_key_id"`
	SecretAccessKey string `mapstructure:"ses_secret_access_key"`
	FromAddress     string `mapstructure:"email_from_address"`
	FromName        string `mapstructure:"email_from_name"`
}

type Cron struct {
	Secret string `mapstructure:"cron_secret"`
}

type InsightsEmail struct {
	CronSchedule      string        `mapstructure:"insights_email_cron"`
	ToleranceMinutes  int           `mapstructure:"insights_email_tolerance_minutes"`
	MaxConcurrentJobs int           `mapstructure:"insights_email_max_concurrent_jobs"`
	BatchTimeout      time.Duration `mapstructure:"insights_email_batch_timeout"`
	Enabled           bool          `mapstructure:"insights_email_enabled"`
}

type CacheCleanup struct {
	CronSchedule string `mapstructure:"cache_cleanup_cron"`
	Enabled      bool   `mapstructure:"cache_cleanup_enabled"`
}

type DailyMetricsSync struct {
	CronSchedule        string `mapstructure:"daily_metrics_sync_cron"`
	LookbackDays        int    `mapstructure:"daily_metrics_sync_lookback_days"`
	RequestDelaySeconds int    `mapstructure:"daily_metrics_sync_request_delay_seconds"`
	MaxConcurrentJobs   int    `mapstructure:"daily_metrics_sync_max_concurrent_jobs"`
	Enabled             bool   `mapstructure:"daily_metrics_sync_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("REQUEST_TIMEOUT", "30s")
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")

	viper.SetDefault("FRONTEND_URL", "http://localhost:5173")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/google_ads")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("REDIS_URL", "")

	viper.SetDefault("GOOGLE_ADS_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_ADS_CLIENT_SECRET", "")
	viper.SetDefault("GOOGLE_ADS_DEVELOPER_TOKEN", "")
	viper.SetDefault("GOOGLE_ADS_LOGIN_CUSTOMER_ID", "")
	viper.SetDefault("GOOGLE_ADS_REDIRECT_URI", "http://localhost:8000/google-ads/callback")
	viper.SetDefault("GOOGLE_ADS_API_BASE_URL", "https://googleads.googleapis.com")
	viper.SetDefault("GOOGLE_ADS_API_VERSION", "v18")
	viper.SetDefault("GOOGLE_ADS_AUTH_URL", "https://accounts.google.com/o/oauth2/auth")
	viper.SetDefault("GOOGLE_ADS_TOKEN_URL", "https://oauth2.googleapis.com/token")
	viper.SetDefault("GOOGLE_ADS_HTTP_TIMEOUT", "10s")
	viper.SetDefault("GOOGLE_ADS_ACCOUNT_DETAILS_LIMIT", 5) // Apenas as 5 primeiras contas têm detalhes buscados no callback
	viper.SetDefault("GOOGLE_ADS_CACHE_TTL_HOURS", 1)

	viper.SetDefault("ENCRYPTION_KEY", "")
	viper.SetDefault("ENCRYPTION_KEY_DERIVATION", "legacy")

	viper.SetDefault("AUTH_SECRET", "")

	viper.SetDefault("SES_REGION", "us-east-1")
	viper.SetDefault("SES_ACCESS_KEY_ID", "")
	viper.SetDefault("SES_SECRET_ACCESS_KEY", "")
	viper.SetDefault("EMAIL_FROM_ADDRESS", "insights@localhost")
	viper.SetDefault("EMAIL_FROM_NAME", "Google Ads Insights")

	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 20)
	viper.SetDefault("DATABASE_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DATABASE_CONN_MAX_LIFETIME", "30m")

	viper.SetDefault("CRON_SECRET", "")

	viper.SetDefault("INSIGHTS_EMAIL_CRON", "* * * * *")     // A cada minuto
	viper.SetDefault("INSIGHTS_EMAIL_TOLERANCE_MINUTES", 2)   // Janela de 2 minutos em torno do horário de envio
	viper.SetDefault("INSIGHTS_EMAIL_MAX_CONCURRENT_JOBS", 5) // 5 envios concorrentes
	viper.SetDefault("INSIGHTS_EMAIL_BATCH_TIMEOUT", "50s")   // Deadline de uma execução completa
	viper.SetDefault("INSIGHTS_EMAIL_ENABLED", false)

	viper.SetDefault("CACHE_CLEANUP_CRON", "0 * * * *") // A cada hora
	viper.SetDefault("CACHE_CLEANUP_ENABLED", true)

	viper.SetDefault("DAILY_METRICS_SYNC_CRON", "0 3 * * *")        // Todos os dias às 3h da manhã
	viper.SetDefault("DAILY_METRICS_SYNC_LOOKBACK_DAYS", 7)         // 7 dias para buscar dados
	viper.SetDefault("DAILY_METRICS_SYNC_REQUEST_DELAY_SECONDS", 2) // 2 segundos entre requisições
	viper.SetDefault("DAILY_METRICS_SYNC_MAX_CONCURRENT_JOBS", 3)   // 3 jobs concorrentes
	viper.SetDefault("DAILY_METRICS_SYNC_ENABLED", false)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.finalize()

	return config, nil
}

// finalize calcula os campos derivados
func (c *Config) finalize() {
	c.GoogleAds.APIURL = fmt.Sprintf("%s/%s", c.GoogleAds.APIBaseURL, c.GoogleAds.APIVersion)

	if c.GoogleAds.AccountDetailsLimit <= 0 {
		c.GoogleAds.AccountDetailsLimit = 5
	}

	if c.GoogleAds.CacheTTLHours <= 0 {
		c.GoogleAds.CacheTTLHours = 1
	}

	c.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		c.Database.Driver,
		c.Database.User,
		c.Database.Password,
		c.Database.URL,
	)
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
