package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config concentra a configuração de runtime lida do ambiente.
type Config struct {
	AppEnv  string `envconfig:"APP_ENV" default:"development"`
	AppAddr string `envconfig:"APP_ADDR" default:":8080"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	DBHost           string `envconfig:"DB_HOST" default:"localhost"`
	DBPort           uint   `envconfig:"DB_PORT" default:"5432"`
	DBName           string `envconfig:"DB_NAME" default:"backoffice"`
	DBUser           string `envconfig:"DB_USERNAME" default:"postgres"`
	DBPassword       string `envconfig:"DB_PASSWORD" default:"postgres"`
	DBSSLModeDisable bool   `envconfig:"DB_SSL_MODE_DISABLE" default:"true"`

	JWTSecret string `envconfig:"JWT_SECRET" required:"true"`

	// Endpoints externos (Homio/GHL)
	HomioBaseURL         string `envconfig:"HOMIO_BASE_URL" default:"https://services.leadconnectorhq.com"`
	HomioToken           string `envconfig:"HOMIO_TOKEN"`
	WebhookUnidadeURL    string `envconfig:"WEBHOOK_UNIDADE_URL" required:"true"`
	WebhookFinanceiroURL string `envconfig:"WEBHOOK_FINANCEIRO_URL" required:"true"`

	// Chamada externa pendurada não pode pendurar a requisição.
	WebhookTimeout time.Duration `envconfig:"WEBHOOK_TIMEOUT" default:"10s"`

	CacheTTL time.Duration `envconfig:"CACHE_TTL" default:"5m"`
}

// Load lê a configuração das variáveis de ambiente.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsProduction indica se a aplicação roda em produção.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}
