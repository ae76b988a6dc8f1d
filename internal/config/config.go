package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env             string `yaml:"env" env:"ENV" env-default:"local"`
	ReadOnly        bool   `yaml:"read_only" env:"READ_ONLY" env-default:"false"`
	SAMLGroupPrefix string `yaml:"saml_group_prefix" env:"SAML_GROUP_PREFIX" env-default:""`

	HTTPServer HTTPServer `yaml:"http_server"`
	DB         DB         `yaml:"db"`
	Cache      Cache      `yaml:"cache"`
	Queue      Queue      `yaml:"queue"`
	Auth       Auth       `yaml:"auth"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:8080"`
	Timeout     time.Duration `yaml:"timeout" env-default:"5s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

type DB struct {
	Addr     string `yaml:"addr" env:"DB_ADDR" env-default:"localhost"`
	Port     string `yaml:"port" env:"DB_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"DB_USER" env-required:"true"`
	Password string `yaml:"password" env:"DB_PASSWORD" env-required:"true"`
	DB       string `yaml:"database" env:"DB_NAME" env-default:"docstore"`
}

type Cache struct {
	Addr      string        `yaml:"addr" env:"CACHE_ADDR" env-default:"localhost:6379"`
	Password  string        `yaml:"password" env:"CACHE_PASSWORD" env-default:""`
	DB        int           `yaml:"db" env:"CACHE_DB" env-default:"0"`
	CursorTTL time.Duration `yaml:"cursor_ttl" env-default:"1h"`
	ConfigTTL time.Duration `yaml:"config_ttl" env-default:"5m"`
}

type Queue struct {
	Addr        string `yaml:"addr" env:"QUEUE_ADDR" env-default:"localhost:6379"`
	DB          int    `yaml:"db" env:"QUEUE_DB" env-default:"1"`
	Concurrency int    `yaml:"concurrency" env:"QUEUE_CONCURRENCY" env-default:"5"`
}

type Auth struct {
	// JWTSecret verifies the gateway-issued identity token. Empty means
	// the token signature is trusted upstream and claims are read as-is.
	JWTSecret string `yaml:"jwt_secret" env:"AUTH_JWT_SECRET" env-default:""`
}

func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}

	return &cfg
}
