package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StorageRedis  = "redis"
	StorageMemory = "memory"
)

type Config struct {
	LogLevel   string  `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort   string  `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort string  `yaml:"socket-port" env:"SOCKET_PORT" env-default:"8080"`
	HTTP       HTTP    `yaml:"http"`
	Storage    string  `yaml:"storage" env:"STORAGE" env-default:"memory"`
	Redis      Redis   `yaml:"redis"`
	Session    Session `yaml:"session"`
	Bingo      Bingo   `yaml:"bingo"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

type HTTP struct {
	AllowedOrigins []string `yaml:"allowed-origins" env:"HTTP_ALLOWED_ORIGINS" env-default:"http://localhost:3000"`
}

type Session struct {
	TTL      time.Duration `yaml:"ttl" env:"SESSION_TTL" env-default:"24h"`
	Capacity int           `yaml:"capacity" env:"SESSION_CAPACITY" env-default:"1024"`
}

// Bingo holds the defaults a new session starts with.
type Bingo struct {
	MinNumber        int           `yaml:"min-number" env:"BINGO_MIN_NUMBER" env-default:"1"`
	MaxNumber        int           `yaml:"max-number" env:"BINGO_MAX_NUMBER" env-default:"99"`
	AutoCallInterval time.Duration `yaml:"auto-call-interval" env:"BINGO_AUTO_CALL_INTERVAL" env-default:"2s"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

// Load - reads the config file at path, environment variables take precedence.
func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
