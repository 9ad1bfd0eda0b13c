package log

import (
	"os"
	"strconv"
	"strings"
)

// Config 日志配置
type Config struct {
	// Level 日志级别：debug, info, warn, error
	Level string `yaml:"level" env:"LOG_LEVEL"`

	// Format 日志格式：console, json
	Format string `yaml:"format" env:"LOG_FORMAT"`

	// AddSource 是否添加源文件信息
	AddSource bool `yaml:"add_source" env:"LOG_ADD_SOURCE"`

	// Service 服务标识，写入每条日志
	Service string `yaml:"service" env:"LOG_SERVICE"`
}

// NewConfigFromEnv 从环境变量创建配置
func NewConfigFromEnv() *Config {
	cfg := &Config{
		Level:     getEnvWithDefault("LOG_LEVEL", "info"),
		Format:    getEnvWithDefault("LOG_FORMAT", "console"),
		AddSource: getEnvBool("LOG_ADD_SOURCE", false),
		Service:   getEnvWithDefault("LOG_SERVICE", "todo-service"),
	}

	if cfg.isDevelopment() {
		cfg.Level = "debug"
		cfg.Format = "console"
		cfg.AddSource = true
	}

	return cfg
}

// isDevelopment 检查是否为开发环境
func (c *Config) isDevelopment() bool {
	return strings.ToLower(getEnvWithDefault("ENV", "production")) == "development"
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}
