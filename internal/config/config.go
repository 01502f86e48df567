// Package config предоставляет структуры и функцию для парсинга и загрузки конфига.
//
// Все параметры переопределяются переменными окружения и имеют значения
// по умолчанию, поэтому сервис стартует без какого-либо файла конфигурации.
// Если задан CONFIG_PATH, сначала читается YAML-файл.
package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек.
type Config struct {
	Env        string `yaml:"env" env:"APP_ENV" env-default:"local"`
	DataDir    string `yaml:"data_dir" env:"DATA_DIR" env-default:"data"`
	HTTPServer `yaml:"http_server"`
	JWTToken   `yaml:"jwttoken"`
}

// HTTPServer структура для настройки сервера.
type HTTPServer struct {
	Address     string        `yaml:"address" env:"HTTP_ADDRESS" env-default:":3000"`
	Timeout     time.Duration `yaml:"timeout" env:"HTTP_TIMEOUT" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

// JWTToken структура для работы с jwt-токеном.
type JWTToken struct {
	// JWTSecretKey подписывает токены сессии. Значение по умолчанию небезопасно
	// и годится только для локальной разработки.
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET" env-default:"change_this_key_for_production"`
	TokenTTL     time.Duration `yaml:"token_ttl" env:"TOKEN_TTL" env-default:"12h"`
}

// MustLoad загружает конфиг из окружения (и опционально из файла CONFIG_PATH).
// Завершает процесс только если заданный файл не читается.
func MustLoad() *Config {
	var cfg Config

	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			log.Fatalf("file: %s - does not exist", configPath)
		}
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			log.Fatalf("cannot read config: %s", err)
		}
		return &cfg
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("cannot read config from environment: %s", err)
	}
	return &cfg
}

// ProductsFile возвращает путь к файлу коллекции товаров.
func (c *Config) ProductsFile() string {
	return filepath.Join(c.DataDir, "products.json")
}

// UsersFile возвращает путь к файлу коллекции пользователей.
func (c *Config) UsersFile() string {
	return filepath.Join(c.DataDir, "users.json")
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"DataDir: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"JWTToken:\n"+
			"  TokenTTL: %s\n",
		c.Env,
		c.DataDir,
		c.Address,
		c.Timeout,
		c.IdleTimeout,
		c.TokenTTL,
	)
}
