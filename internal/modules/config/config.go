package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const (
	configFilePathENV = "CONFIG_FILE"
	configDirENV      = "CONFIG_DIR"
	tokenTelegramENV  = "TELEGRAM_TOKEN"
	chatTelegramENV   = "TELEGRAM_CHAT_ID"
	databaseDSN       = "DATABASE_DSN"
	apiKeyENV         = "BINANCE_API_KEY"
	apiSecretENV      = "BINANCE_API_SECRET"
)

// Config — статическая конфигурация сервиса. Торговые настройки живут отдельно (settings).
type Config struct {
	Service struct {
		Name      string `yaml:"name"`
		Host      string `yaml:"host"`
		AdminPort int    `yaml:"admin_port" validate:"gte=0,lte=65535"`
		LogLevel  string `yaml:"log_level"`
		Timezone  string `yaml:"timezone"`
	} `yaml:"service"`

	DB string `yaml:"db_dsn"`

	Telegram struct {
		Token  string `yaml:"token"`
		ChatID int64  `yaml:"chat_id"`
	} `yaml:"telegram"`

	Exchange struct {
		BaseURL    string        `yaml:"base_url" validate:"required,url"`
		WSURL      string        `yaml:"ws_url" validate:"required,url"`
		APIKey     string        `yaml:"api_key"`
		APISecret  string        `yaml:"api_secret"`
		RecvWindow int           `yaml:"recv_window" validate:"gte=0,lte=60000"`
		Timeout    time.Duration `yaml:"timeout" validate:"gt=0"`
	} `yaml:"exchange"`

	Scheduler struct {
		RefreshInterval time.Duration `yaml:"refresh_interval" validate:"gt=0"`
		ScanInterval    time.Duration `yaml:"scan_interval" validate:"gt=0,gtefield=RefreshInterval"`
	} `yaml:"scheduler"`

	// путь к yaml с торговыми настройками (viper)
	SettingsFile string `yaml:"settings_file" validate:"required"`

	Tracing struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"tracing"`
}

// NewConfig читает configs/<CONFIG_FILE>, накладывает env и валидирует.
func NewConfig() (*Config, error) {
	_ = godotenv.Load()

	configFileName := os.Getenv(configFilePathENV)
	if configFileName == "" {
		configFileName = "values_local.yaml"
	}
	dir := getenvDefault(configDirENV, "configs")

	file, err := os.Open(dir + "/" + configFileName)
	if err != nil {
		return nil, fmt.Errorf("open config file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	config := defaults()
	if err := yaml.NewDecoder(file).Decode(config); err != nil {
		return nil, fmt.Errorf("decode config file: %w", err)
	}

	applyEnv(config)

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	// скан должен совпадать с одним из обновлений
	if sc := config.Scheduler; sc.ScanInterval%sc.RefreshInterval != 0 {
		return nil, fmt.Errorf("invalid config: scan_interval %s is not a multiple of refresh_interval %s",
			sc.ScanInterval, sc.RefreshInterval)
	}
	return config, nil
}

func defaults() *Config {
	c := &Config{}
	c.Service.Name = "bittrader"
	c.Service.AdminPort = 8080
	c.Service.LogLevel = "info"
	c.Service.Timezone = "Europe/Istanbul"
	c.Exchange.BaseURL = "https://api.binance.com"
	c.Exchange.WSURL = "wss://ws-api.binance.com:443/ws-api/v3"
	c.Exchange.RecvWindow = 5000
	c.Exchange.Timeout = 30 * time.Second
	c.Scheduler.RefreshInterval = time.Minute
	c.Scheduler.ScanInterval = 3 * time.Minute
	c.SettingsFile = "configs/trading.yaml"
	return c
}

func applyEnv(c *Config) {
	if token := os.Getenv(tokenTelegramENV); token != "" {
		c.Telegram.Token = token
	}
	if v := os.Getenv(chatTelegramENV); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Telegram.ChatID = id
		}
	}
	if dsn := os.Getenv(databaseDSN); dsn != "" {
		c.DB = dsn
	}
	if key := os.Getenv(apiKeyENV); key != "" {
		c.Exchange.APIKey = key
	}
	if secret := os.Getenv(apiSecretENV); secret != "" {
		c.Exchange.APISecret = secret
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
