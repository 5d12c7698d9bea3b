package seeder

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds seeder pipeline settings.
type Config struct {
	BaseURL        string `yaml:"base_url"        env:"SEEDER_BASE_URL"        env-default:"https://pokeapi.co/api/v2"`
	Transport      string `yaml:"transport"       env:"SEEDER_TRANSPORT"       env-default:"tunnel"`
	ProxyBaseURL   string `yaml:"proxy_base_url"  env:"SEEDER_PROXY_BASE_URL"`
	TunnelHost     string `yaml:"tunnel_host"     env:"SEEDER_TUNNEL_HOST"`
	TunnelPort     int    `yaml:"tunnel_port"     env:"SEEDER_TUNNEL_PORT"`
	TunnelUser     string `yaml:"tunnel_user"     env:"SEEDER_TUNNEL_USER"`
	TunnelPassword string `yaml:"tunnel_password" env:"SEEDER_TUNNEL_PASSWORD"`

	PageSize  int `yaml:"page_size"  env:"SEEDER_PAGE_SIZE"  env-default:"200"`
	MaxPages  int `yaml:"max_pages"  env:"SEEDER_MAX_PAGES"  env-default:"30"`
	BatchSize int `yaml:"batch_size" env:"SEEDER_BATCH_SIZE" env-default:"20"`

	RetryLimit  int           `yaml:"retry_limit"  env:"SEEDER_RETRY_LIMIT"  env-default:"3"`
	RetryDelay  time.Duration `yaml:"retry_delay"  env:"SEEDER_RETRY_DELAY"  env-default:"5s"`
	PacingDelay time.Duration `yaml:"pacing_delay" env:"SEEDER_PACING_DELAY"`
	PhaseDelay  time.Duration `yaml:"phase_delay"  env:"SEEDER_PHASE_DELAY"  env-default:"2s"`

	CategoryTimeout  time.Duration `yaml:"category_timeout"   env:"SEEDER_CATEGORY_TIMEOUT"   env-default:"20m"`
	CategoryRetries  int           `yaml:"category_retries"   env:"SEEDER_CATEGORY_RETRIES"   env-default:"3"`
	RetryBackoffBase time.Duration `yaml:"retry_backoff_base" env:"SEEDER_RETRY_BACKOFF_BASE" env-default:"30s"`

	MemoryWatermarkMB int  `yaml:"memory_watermark_mb" env:"SEEDER_MEMORY_WATERMARK_MB" env-default:"800"`
	DryRun            bool `yaml:"dry_run"             env:"SEEDER_DRY_RUN"`
}

// LoadConfig reads seeder configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults (via env-default tags).
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := cleanenv.ReadConfig(path, &cfg); err != nil {
				return nil, fmt.Errorf("seeder config: read %s: %w", path, err)
			}
			return &cfg, nil
		}
		return nil, fmt.Errorf("seeder config: file %s not found", path)
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("seeder config: read env: %w", err)
	}

	return &cfg, nil
}
