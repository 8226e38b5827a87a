package config

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env         string          `yaml:"env" env:"ENV" env-default:"local"`
	DatabaseUrl string          `yaml:"database_url" env:"DATABASE_URL"`
	MaxConns    int32           `yaml:"max_conns" env:"DATABASE_MAX_CONNS" env-default:"10"`
	Redis       RedisConfig     `yaml:"redis"`
	Server      ServerConfig    `yaml:"rest"`
	JWT         JWTSecret       `yaml:"jwt"`
	Merchant    MerchantConfig  `yaml:"merchant"`
	Checkout    CheckoutConfig  `yaml:"checkout"`
	Scheduler   SchedulerConfig `yaml:"scheduler"`
	SeedDemo    bool            `yaml:"seed_demo" env:"SEED_DEMO" env-default:"false"`
}

// RedisConfig is optional; an empty Addr keeps idempotency keys in the main store.
type RedisConfig struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

type ServerConfig struct {
	Port           string   `yaml:"port" env:"PORT" env-default:":8080"`
	AllowedOrigins []string `yaml:"allowed_origins" env:"ALLOWED_ORIGINS" env-default:"http://localhost:3000"`
	PublicOrigin   string   `yaml:"public_origin" env:"PUBLIC_ORIGIN" env-default:"http://localhost:3000"`
}

type JWTSecret struct {
	Secret string `yaml:"secret" env:"JWT_SECRET" env-required:"true"`
}

type MerchantConfig struct {
	FullName     string `yaml:"full_name" env:"MERCHANT_NAME" env-default:"Merchant"`
	Email        string `yaml:"email" env:"MERCHANT_EMAIL" env-required:"true"`
	PasswordHash string `yaml:"password_hash" env:"MERCHANT_PASSWORD_HASH" env-required:"true"`
}

type CheckoutConfig struct {
	AddOnPrice     string        `yaml:"add_on_price" env:"CHECKOUT_ADD_ON_PRICE" env-default:"29.99"`
	PaymentDelay   time.Duration `yaml:"payment_delay" env:"CHECKOUT_PAYMENT_DELAY" env-default:"2s"`
	PaymentTimeout time.Duration `yaml:"payment_timeout" env:"CHECKOUT_PAYMENT_TIMEOUT" env-default:"10s"`
	IdempotencyTTL time.Duration `yaml:"idempotency_ttl" env:"CHECKOUT_IDEMPOTENCY_TTL" env-default:"24h"`
}

type SchedulerConfig struct {
	SweepInterval time.Duration `yaml:"sweep_interval" env:"SCHEDULER_SWEEP_INTERVAL" env-default:"1m"`
}

func MustLoad() *Config {
	path := fetchConfigPath()

	if path == "" {
		panic("Config file not found in path")
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		panic("Config file not found in path")
	}

	config, err := Load(path)
	if err != nil {
		panic(err)
	}
	return config
}

func Load(path string) (*Config, error) {
	var config Config
	log.Printf("Loading config from %s", path)
	if err := cleanenv.ReadConfig(path, &config); err != nil {
		return nil, err
	}
	return &config, nil
}

func fetchConfigPath() string {
	var res string

	flag.StringVar(&res, "config", "", "config path")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}
	if res == "" {
		res = "./config/local.yaml"
	}

	return res
}
