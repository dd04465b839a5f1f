package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"
)

var (
	envs    = []string{EnvDevelopment, EnvTest, EnvProduction}
	clients = []string{"postgres", "pgx", "sqlite3"}
)

type Config struct {
	Port           int
	Env            string
	DatabaseClient string
	DatabaseURL    string
	LogLevel       string
}

// Load читает .env-файлы и окружение. Без аргументов берутся .env и,
// при ENV=test, ещё .env.test. Уже заданные переменные окружения
// не перезаписываются, а из файлов побеждает первый.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = defaultFiles(os.Getenv("ENV"))
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	v := viper.New()
	v.SetDefault("port", 8080)
	v.SetDefault("env", EnvProduction)
	v.SetDefault("database_client", "postgres")
	v.SetDefault("log_level", "info")
	v.AutomaticEnv()

	cfg := &Config{
		Port:           v.GetInt("port"),
		Env:            v.GetString("env"),
		DatabaseClient: v.GetString("database_client"),
		DatabaseURL:    v.GetString("database_url"),
		LogLevel:       v.GetString("log_level"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func defaultFiles(env string) []string {
	if env == EnvTest {
		return []string{".env.test", ".env"}
	}
	return []string{".env"}
}

func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}
	if !slices.Contains(envs, c.Env) {
		return fmt.Errorf("ENV must be one of %v, got %q", envs, c.Env)
	}
	if !slices.Contains(clients, c.DatabaseClient) {
		return fmt.Errorf("DATABASE_CLIENT must be one of %v, got %q", clients, c.DatabaseClient)
	}
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
