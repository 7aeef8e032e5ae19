package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr                string
	RedisAddr           string
	RedisPassword       string
	RedisDB             int
	MySQLDSN            string // 为空时不归档对局结果
	JWTSecret           string
	LogLevel            string
	Development         bool
	AllowedOrigins      []string // 为空表示允许所有来源
	WSMessagesPerSecond float64
	WSBurst             int
}

// Load 先读取 .env（不存在时忽略），再读取环境变量
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return Config{}, fmt.Errorf("读取 %s 失败: %w", f, err)
		}
	}

	addr := os.Getenv("PORT")
	if addr != "" {
		if !strings.HasPrefix(addr, ":") {
			addr = ":" + addr
		}
	} else {
		addr = envDefault("ACQUIRE_ADDR", ":8000")
	}

	cfg := Config{
		Addr:                addr,
		RedisAddr:           envDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword:       strings.TrimSpace(os.Getenv("REDIS_PASSWORD")),
		RedisDB:             envIntDefault("REDIS_DB", 0),
		MySQLDSN:            strings.TrimSpace(os.Getenv("MYSQL_DSN")),
		JWTSecret:           envDefault("JWT_SECRET", "access-secret"),
		LogLevel:            envDefault("LOG_LEVEL", "info"),
		Development:         envBoolDefault("ACQUIRE_DEV", false),
		AllowedOrigins:      envListDefault("ALLOWED_ORIGINS"),
		WSMessagesPerSecond: envFloatDefault("WS_MESSAGES_PER_SECOND", 5),
		WSBurst:             envIntDefault("WS_BURST", 10),
	}
	if cfg.WSMessagesPerSecond <= 0 {
		return cfg, fmt.Errorf("WS_MESSAGES_PER_SECOND 必须大于 0")
	}
	if cfg.RedisDB < 0 {
		return cfg, fmt.Errorf("REDIS_DB 不能为负数")
	}
	return cfg, nil
}

func envDefault(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func envIntDefault(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envFloatDefault(key string, fallback float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func envBoolDefault(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func envListDefault(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
