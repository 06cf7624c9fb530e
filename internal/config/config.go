package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type (
	Container struct {
		App       *App
		Token     *Token
		DB        *DB
		HTTP      *HTTP
		Redis     *Redis
		Cache     *Cache
		RateLimit *RateLimit
	}

	App struct {
		Name string `env:"APP_NAME" env-default:"garage-maintenance"`
		Env  string `env:"APP_ENV" env-default:"development"`
	}

	Token struct {
		Secret string `env:"TOKEN_SECRET" env-required:"true"`
	}

	DB struct {
		Host          string `env:"DB_HOST" env-default:"localhost"`
		Port          string `env:"DB_PORT" env-default:"5432"`
		User          string `env:"DB_USER" env-default:"postgres"`
		Password      string `env:"DB_PASSWORD"`
		Name          string `env:"DB_NAME" env-default:"garage"`
		SSLMode       string `env:"DB_SSLMODE" env-default:"disable"`
		MigrationsDir string `env:"MIGRATIONS_DIR" env-default:"./internal/adapter/postgres/migrations"`
	}

	HTTP struct {
		Env            string `env:"APP_ENV" env-default:"development"`
		Port           string `env:"HTTP_PORT" env-default:"8082"`
		AllowedOrigins string `env:"ALLOWED_ORIGINS" env-default:"*"`
		URL            string `env:"HTTP_URL" env-default:"0.0.0.0"`
	}

	Redis struct {
		Address  string `env:"REDIS_ADDRESS" env-default:"localhost:6379"`
		Password string `env:"REDIS_PASSWORD"`
	}

	Cache struct {
		TTL time.Duration `env:"CACHE_TTL" env-default:"5m"`
	}

	RateLimit struct {
		RPS   float64       `env:"RATE_LIMIT_RPS" env-default:"10"`
		Burst int           `env:"RATE_LIMIT_BURST" env-default:"20"`
		Idle  time.Duration `env:"RATE_LIMIT_IDLE" env-default:"10m"`
	}
)

// New reads the configuration from the environment. Outside production a
// .env file is loaded first when present.
func New() (*Container, error) {
	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	c := &Container{
		App:       &App{},
		Token:     &Token{},
		DB:        &DB{},
		HTTP:      &HTTP{},
		Redis:     &Redis{},
		Cache:     &Cache{},
		RateLimit: &RateLimit{},
	}

	sections := []interface{}{c.App, c.Token, c.DB, c.HTTP, c.Redis, c.Cache, c.RateLimit}
	for _, section := range sections {
		if err := cleanenv.ReadEnv(section); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0 || c.RateLimit.Idle <= 0 {
		return nil, fmt.Errorf("rate limit must be positive, got rps=%v burst=%d idle=%s",
			c.RateLimit.RPS, c.RateLimit.Burst, c.RateLimit.Idle)
	}

	return c, nil
}

func (d *DB) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}
