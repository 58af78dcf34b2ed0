package config

import (
	"flag"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const defaultConfigPath = "config/local.yaml"

type Config struct {
	Env    string       `yaml:"env" env:"ENV" env-default:"local"`
	Jaeger string       `yaml:"jaeger" env:"JAEGER"`
	Log    LogConfig    `yaml:"log"`
	HTTP   HTTPConfig   `yaml:"http"`
	Fotmob FotmobConfig `yaml:"fotmob"`
	Export ExportConfig `yaml:"export"`
	Redis  RedisConfig  `yaml:"redis"`
	DB     DBConfig     `yaml:"db"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
}

type HTTPConfig struct {
	Host            string        `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port            int           `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"5s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"30s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

func (c HTTPConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type FotmobConfig struct {
	BaseURL     string        `yaml:"base_url" env:"FOTMOB_BASE_URL" env-default:"https://www.fotmob.com"`
	CountryCode string        `yaml:"country_code" env:"FOTMOB_COUNTRY_CODE" env-default:"EGY"`
	Timeout     time.Duration `yaml:"timeout" env:"FOTMOB_TIMEOUT" env-default:"15s"`
}

type ExportConfig struct {
	TTL time.Duration `yaml:"ttl" env:"EXPORT_TTL" env-default:"30m"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

type DBConfig struct {
	DSN      string `yaml:"dsn" env:"DB_DSN"`
	Host     string `yaml:"host" env:"DB_HOST"`
	Port     int    `yaml:"port" env:"DB_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"DB_USER"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	Name     string `yaml:"name" env:"DB_NAME"`
	SSLMode  string `yaml:"sslmode" env:"DB_SSLMODE" env-default:"require"`
	Migrate  bool   `yaml:"migrate" env:"DB_MIGRATE" env-default:"true"`
}

func (c DBConfig) Enabled() bool {
	return c.DSN != "" || c.Host != ""
}

func (c DBConfig) DatabaseURL() string {
	if c.DSN != "" {
		return c.DSN
	}

	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "require"
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:   c.Name,
	}

	q := u.Query()
	q.Set("sslmode", sslMode)
	u.RawQuery = q.Encode()

	return u.String()
}

// MustLoad reads the config file named by -config or CONFIG_PATH. When
// neither is set and config/local.yaml is absent, only the environment is
// read.
func MustLoad() *Config {
	path, explicit := fetchConfigPath()
	if !explicit {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return MustLoadFromEnv()
		}
	}
	return MustLoadByPath(path)
}

func MustLoadByPath(configPath string) *Config {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exists: " + configPath)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic("cannot read the config: " + err.Error())
	}

	return &cfg
}

func MustLoadFromEnv() *Config {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		panic("cannot read the config from env: " + err.Error())
	}

	return &cfg
}

func fetchConfigPath() (string, bool) {
	var res string

	if flag.Lookup("config") == nil {
		flag.StringVar(&res, "config", "", "path to config file")
	}
	if !flag.Parsed() {
		flag.Parse()
	}
	if f := flag.Lookup("config"); f != nil {
		res = f.Value.String()
	}

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}
	if res == "" {
		return defaultConfigPath, false
	}

	return res, true
}
