// config предоставляет структуру конфигурации демона и функции
// загрузки из файла/переменных окружения с предсказуемым приоритетом.
package config

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Транспорты chat-service.
const (
	TransportGRPC = "grpc"
	TransportREST = "rest"
)

// Config — корневая конфигурация демона.
// Источники значений (по убыванию приоритета):
//  1. явный путь через флаг --config;
//  2. путь в переменной окружения CONFIG_PATH;
//  3. файл local.yaml из рабочей директории;
//  4. переменные окружения (cleanenv).
type Config struct {
	Env         string            `yaml:"env" env:"ENV" env-default:"local"`
	HTTP        HTTPConfig        `yaml:"http"`
	ChatService ChatServiceConfig `yaml:"chat_service"`
	Messaging   MessagingConfig   `yaml:"messaging"`
	Device      DeviceConfig      `yaml:"device"`
	Store       StoreConfig       `yaml:"store"`
	Timeouts    TimeoutConfig     `yaml:"timeouts"`
}

// HTTPConfig — сетевые настройки служебного HTTP-сервера
// (метрики, health-чеки, push-колбэк).
type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"50090"`
}

// Addr возвращает адрес в формате host:port.
func (h HTTPConfig) Addr() string {
	return net.JoinHostPort(h.Host, h.Port)
}

// ChatServiceConfig — параметры подключения к chat-service.
type ChatServiceConfig struct {
	// Transport — "grpc" или "rest".
	Transport   string `yaml:"transport" env:"CHAT_TRANSPORT" env-default:"grpc"`
	GRPCAddr    string `yaml:"grpc_addr" env:"CHAT_GRPC_ADDR"`
	RESTBaseURL string `yaml:"rest_base_url" env:"CHAT_REST_BASE_URL"`

	// Клиентская пара для выпуска security-токена.
	ClientID     string `yaml:"client_id" env:"CHAT_CLIENT_ID" env-required:"true"`
	ClientSecret string `yaml:"client_secret" env:"CHAT_CLIENT_SECRET" env-required:"true"`

	// NotifClientID — фиксированный идентификатор chat-клиента,
	// отправляемый с привязкой device-токена.
	NotifClientID string `yaml:"notif_client_id" env:"CHAT_NOTIF_CLIENT_ID" env-required:"true"`
}

// Validate проверяет согласованность выбора транспорта и адресов.
func (c ChatServiceConfig) Validate() error {
	switch c.Transport {
	case TransportGRPC:
		if c.GRPCAddr == "" {
			return fmt.Errorf("chat_service: grpc transport requires grpc_addr")
		}
	case TransportREST:
		if c.RESTBaseURL == "" {
			return fmt.Errorf("chat_service: rest transport requires rest_base_url")
		}
	default:
		return fmt.Errorf("chat_service: unknown transport %q", c.Transport)
	}

	return nil
}

// MessagingConfig — параметры gRPC-моста мессенджера.
type MessagingConfig struct {
	Addr      string `yaml:"addr" env:"MESSAGING_ADDR" env-required:"true"`
	UserAgent string `yaml:"user_agent" env:"MESSAGING_USER_AGENT" env-default:"chatlinkd/1.0"`
}

// DeviceConfig — идентичность устройства.
type DeviceConfig struct {
	// Platform — ios, android или huawei; определяет push-канал.
	Platform string `yaml:"platform" env:"DEVICE_PLATFORM" env-default:"ios"`
	// PushToken — push-токен устройства; пустой — привязка не отправляется.
	PushToken string `yaml:"push_token" env:"DEVICE_PUSH_TOKEN"`
	// Phone и FullName — профиль пользователя для login-or-register.
	Phone    string `yaml:"phone" env:"DEVICE_PHONE"`
	FullName string `yaml:"full_name" env:"DEVICE_FULL_NAME"`
}

// StoreConfig — локальное хранилище auth-токена.
type StoreConfig struct {
	Path       string `yaml:"path" env:"STORE_PATH" env-default:"chatlink.db"`
	Passphrase string `yaml:"passphrase" env:"STORE_PASSPHRASE" env-required:"true"`
}

// TimeoutConfig — таймауты исходящих вызовов.
// Service = 0 — дедлайн по умолчанию не навешивается (контракт chat-service
// допускает неограниченное ожидание; ограничение — забота вызывающего).
type TimeoutConfig struct {
	Service time.Duration `yaml:"service" env:"SERVICE_TIMEOUT" env-default:"0s"`
}

// MustLoad — обёртка над Load с panic при ошибке.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}

	return cfg
}

// Load загружает конфигурацию по приоритету:
// 1) явный путь; 2) CONFIG_PATH; 3) ./local.yaml; 4) ENV.
// ВАЖНО: после чтения файла накладываем ENV-переменные поверх значений из YAML.
func Load(path string) (*Config, error) {
	var cfg Config

	// чтение файла + overlay ENV.
	tryRead := func(p string) (*Config, error) {
		if p == "" {
			return nil, fmt.Errorf("empty config path")
		}

		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file %q stat failed: %w", p, err)
		}

		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		return &cfg, nil
	}

	// 1) Явный путь.
	if path != "" {
		c, err := tryRead(path)
		if err != nil {
			return nil, err
		}

		return c, c.ChatService.Validate()
	}

	// 2) CONFIG_PATH.
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		c, err := tryRead(envPath)
		if err != nil {
			return nil, err
		}

		return c, c.ChatService.Validate()
	}

	// 3) ./local.yaml.
	if _, err := os.Stat("local.yaml"); err == nil {
		if err := cleanenv.ReadConfig("local.yaml", &cfg); err != nil {
			return nil, fmt.Errorf("failed to read local.yaml: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		return &cfg, cfg.ChatService.Validate()
	}

	// 4) Только ENV.
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
	}

	return &cfg, cfg.ChatService.Validate()
}
