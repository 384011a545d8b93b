package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xxxsen/common/logger"
)

type Config struct {
	Port          int              `json:"port"`
	JWTSecret     string           `json:"jwt_secret"`
	JWTTTLMinutes int              `json:"jwt_ttl_minutes"`
	Database      DatabaseConfig   `json:"database"`
	CodeStore     CodeStoreConfig  `json:"code_store"`
	Mail          MailConfig       `json:"mail"`
	CORSOrigins   []string         `json:"cors_origins"`
	LogConfig     logger.LogConfig `json:"log_config"`
}

type DatabaseConfig struct {
	DSN      string `json:"dsn"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	DBName   string `json:"db_name"`
	SSLMode  string `json:"ssl_mode"`
}

type CodeStoreConfig struct {
	Type  string      `json:"type"`
	Redis RedisConfig `json:"redis"`
	Size  int         `json:"size"`
}

type RedisConfig struct {
	Addr     string `json:"addr"`
	Password string `json:"password"`
	DB       int    `json:"db"`
}

type MailConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	From     string `json:"from"`
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Port == 0 {
		return nil, fmt.Errorf("port is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt_secret is required")
	}
	if cfg.JWTTTLMinutes == 0 {
		cfg.JWTTTLMinutes = 1440
	}
	if cfg.Database.DSN == "" && cfg.Database.Host == "" {
		return nil, fmt.Errorf("database.dsn or database.host is required")
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	if cfg.CodeStore.Type == "" {
		cfg.CodeStore.Type = "memory"
	}
	switch cfg.CodeStore.Type {
	case "memory":
		if cfg.CodeStore.Size == 0 {
			cfg.CodeStore.Size = 4096
		}
	case "redis":
		if cfg.CodeStore.Redis.Addr == "" {
			return nil, fmt.Errorf("code_store.redis.addr is required for redis store")
		}
	default:
		return nil, fmt.Errorf("code_store.type must be memory or redis")
	}
	if cfg.Mail.Host == "" || cfg.Mail.Port == 0 || cfg.Mail.From == "" {
		return nil, fmt.Errorf("mail.host, mail.port and mail.from are required")
	}
	return &cfg, nil
}
