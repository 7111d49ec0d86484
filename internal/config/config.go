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
	"github.com/vfg2006/hexa-dashboard-api/internal/domain"
)

const (
	ProviderModeDemo = "demo"
	ProviderModeLive = "live"
)

type Config struct {
	App        App        `mapstructure:",squash"`
	Server     Server     `mapstructure:",squash"`
	Database   Database   `mapstructure:",squash"`
	Auth       Auth       `mapstructure:",squash"`
	Sync       Sync       `mapstructure:",squash"`
	Providers  Providers  `mapstructure:",squash"`
	Meta       Meta       `mapstructure:",squash"`
	AI         AI         `mapstructure:",squash"`
	Events     Events     `mapstructure:",squash"`
	ClickHouse ClickHouse `mapstructure:",squash"`
}

type App struct {
	LogLevel string         `mapstructure:"log_level"`
	Timezone string         `mapstructure:"app_timezone"`
	Location *time.Location `mapstructure:"-"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
	RateLimit      int      `mapstructure:"api_rate_limit"`
}

type Database struct {
	DSN         string `mapstructure:"-"`
	Driver      string `mapstructure:"database_driver"`
	Password    string `mapstructure:"database_password"`
	URL         string `mapstructure:"database_url"`
	User        string `mapstructure:"database_user"`
	SSLMode     string `mapstructure:"database_sslmode"`
	MaxOpen     int    `mapstructure:"database_max_open_conns"`
	MaxIdle     int    `mapstructure:"database_max_idle_conns"`
	AutoMigrate bool   `mapstructure:"database_auto_migrate"`
}

type Auth struct {
	Secret            string `mapstructure:"auth_secret"`
	CredentialsSecret string `mapstructure:"credentials_secret"`
}

type Sync struct {
	Enabled           bool          `mapstructure:"sync_enabled"`
	Interval          time.Duration `mapstructure:"sync_interval"`
	MaxConcurrentJobs int           `mapstructure:"sync_max_concurrent_jobs"`
	PassTimeout       time.Duration `mapstructure:"sync_pass_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"sync_shutdown_timeout"`
}

type Providers struct {
	FacebookMode string `mapstructure:"provider_facebook_mode"`
	DemoDrift    bool   `mapstructure:"provider_demo_drift"`
}

type Meta struct {
	BaseURL   string  `mapstructure:"meta_base_url"`
	URL       string  `mapstructure:"-"`
	Version   string  `mapstructure:"meta_version"`
	AppID     string  `mapstructure:"meta_app_id"`
	AppSecret string  `mapstructure:"meta_app_secret"`
	RateLimit float64 `mapstructure:"meta_rate_limit"`
}

type AI struct {
	APIKey  string        `mapstructure:"ai_api_key"`
	BaseURL string        `mapstructure:"ai_base_url"`
	Model   string        `mapstructure:"ai_model"`
	Timeout time.Duration `mapstructure:"ai_timeout"`
}

type Events struct {
	BufferSize        int  `mapstructure:"events_buffer_size"`
	ClickHouseEnabled bool `mapstructure:"events_clickhouse_enabled"`
}

type ClickHouse struct {
	Addr     string `mapstructure:"clickhouse_addr"`
	Database string `mapstructure:"clickhouse_database"`
	User     string `mapstructure:"clickhouse_user"`
	Password string `mapstructure:"clickhouse_password"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")
	viper.SetDefault("API_RATE_LIMIT", 100) // requisições por minuto por IP, 0 desliga

	viper.SetDefault("LOG_LEVEL", "debug")
	viper.SetDefault("APP_TIMEZONE", "America/Sao_Paulo")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/hexa")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_SSLMODE", "disable")
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 10)
	viper.SetDefault("DATABASE_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DATABASE_AUTO_MIGRATE", true)

	viper.SetDefault("AUTH_SECRET", "")
	viper.SetDefault("CREDENTIALS_SECRET", "")

	// Defaults para o ciclo de sincronização
	viper.SetDefault("SYNC_ENABLED", true)
	viper.SetDefault("SYNC_INTERVAL", "10s")
	viper.SetDefault("SYNC_MAX_CONCURRENT_JOBS", 4)
	viper.SetDefault("SYNC_PASS_TIMEOUT", "2m")
	viper.SetDefault("SYNC_SHUTDOWN_TIMEOUT", "30s")

	viper.SetDefault("PROVIDER_FACEBOOK_MODE", ProviderModeDemo)
	viper.SetDefault("PROVIDER_DEMO_DRIFT", false)

	viper.SetDefault("META_BASE_URL", "https://graph.facebook.com")
	viper.SetDefault("META_VERSION", "v22.0")
	viper.SetDefault("META_APP_ID", "")
	viper.SetDefault("META_APP_SECRET", "")
	viper.SetDefault("META_RATE_LIMIT", 5)

	viper.SetDefault("AI_API_KEY", "")
	viper.SetDefault("AI_BASE_URL", "https://generativelanguage.googleapis.com")
	viper.SetDefault("AI_MODEL", "gemini-2.0-flash")
	viper.SetDefault("AI_TIMEOUT", "15s")

	viper.SetDefault("EVENTS_BUFFER_SIZE", 256)
	viper.SetDefault("EVENTS_CLICKHOUSE_ENABLED", false)
	viper.SetDefault("CLICKHOUSE_ADDR", "localhost:9000")
	viper.SetDefault("CLICKHOUSE_DATABASE", "default")
	viper.SetDefault("CLICKHOUSE_USER", "default")
	viper.SetDefault("CLICKHOUSE_PASSWORD", "")
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Debug("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env): ", err)
	}

	err := viper.Unmarshal(config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	if err := config.finalize(); err != nil {
		return nil, err
	}

	return config, nil
}

// finalize deriva os campos calculados e valida o que é obrigatório
func (c *Config) finalize() error {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return &domain.ConfigurationError{Key: "APP_TIMEZONE", Reason: err.Error()}
	}
	c.App.Location = loc

	c.Meta.URL = fmt.Sprintf("%s/%s", c.Meta.BaseURL, c.Meta.Version)

	c.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s?sslmode=%s",
		c.Database.Driver,
		c.Database.User,
		c.Database.Password,
		c.Database.URL,
		c.Database.SSLMode,
	)

	return c.Validate()
}

// Validate retorna um ConfigurationError para o primeiro valor obrigatório ausente
func (c *Config) Validate() error {
	switch {
	case c.Database.URL == "":
		return &domain.ConfigurationError{Key: "DATABASE_URL", Reason: "obrigatório"}
	case c.Auth.Secret == "":
		return &domain.ConfigurationError{Key: "AUTH_SECRET", Reason: "obrigatório"}
	case c.Auth.CredentialsSecret == "":
		return &domain.ConfigurationError{Key: "CREDENTIALS_SECRET", Reason: "obrigatório"}
	case c.Sync.Interval <= 0:
		return &domain.ConfigurationError{Key: "SYNC_INTERVAL", Reason: "deve ser positivo"}
	case c.Sync.MaxConcurrentJobs <= 0:
		return &domain.ConfigurationError{Key: "SYNC_MAX_CONCURRENT_JOBS", Reason: "deve ser positivo"}
	case c.Sync.PassTimeout <= 0:
		return &domain.ConfigurationError{Key: "SYNC_PASS_TIMEOUT", Reason: "deve ser positivo"}
	case c.Server.RateLimit < 0:
		return &domain.ConfigurationError{Key: "API_RATE_LIMIT", Reason: "não pode ser negativo"}
	case c.Events.BufferSize <= 0:
		return &domain.ConfigurationError{Key: "EVENTS_BUFFER_SIZE", Reason: "deve ser positivo"}
	}

	switch c.Providers.FacebookMode {
	case ProviderModeDemo:
	case ProviderModeLive:
		if c.Meta.AppID == "" || c.Meta.AppSecret == "" {
			return &domain.ConfigurationError{Key: "META_APP_ID", Reason: "obrigatório no modo live"}
		}
	default:
		return &domain.ConfigurationError{
			Key:    "PROVIDER_FACEBOOK_MODE",
			Reason: fmt.Sprintf("valor %q inválido (use demo ou live)", c.Providers.FacebookMode),
		}
	}

	if c.Events.ClickHouseEnabled && c.ClickHouse.Addr == "" {
		return &domain.ConfigurationError{Key: "CLICKHOUSE_ADDR", Reason: "obrigatório com EVENTS_CLICKHOUSE_ENABLED"}
	}

	return nil
}

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
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado de:", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando apenas variáveis de ambiente")
}
