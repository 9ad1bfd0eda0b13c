package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// 环境变量名
const (
	EnvConfigFile = "TODO_CONFIG_FILE"

	EnvHTTPAddr              = "HTTP_ADDR"
	EnvServerShutdownTimeout = "SERVER_SHUTDOWN_TIMEOUT"

	EnvDBHost            = "DB_HOST"
	EnvDBPort            = "DB_PORT"
	EnvDBName            = "DB_NAME"
	EnvDBUser            = "DB_USER"
	EnvDBPassword        = "DB_PASSWORD"
	EnvDBMinConns        = "DB_MIN_CONNS"
	EnvDBMaxConns        = "DB_MAX_CONNS"
	EnvDBConnectAttempts = "DB_CONNECT_ATTEMPTS"
	EnvDBRetryDelay      = "DB_RETRY_DELAY"
	EnvDBAcquireTimeout  = "DB_ACQUIRE_TIMEOUT"
)

// Config 应用配置
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	HTTPAddr        string        `yaml:"http_addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`

	// 连接池大小
	MinConns int32 `yaml:"min_conns"`
	MaxConns int32 `yaml:"max_conns"`

	// 启动时的连接重试
	ConnectAttempts int           `yaml:"connect_attempts"`
	RetryDelay      time.Duration `yaml:"retry_delay"`

	// AcquireTimeout 获取连接的最长等待时间，0 表示一直等待
	AcquireTimeout time.Duration `yaml:"acquire_timeout"`
}

// Default 返回默认配置
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPAddr:        ":5000",
			ShutdownTimeout: 5 * time.Second,
		},
		Database: DatabaseConfig{
			Host:            "db",
			Port:            5432,
			Name:            "mydb",
			User:            "user",
			Password:        "pass",
			MinConns:        1,
			MaxConns:        20,
			ConnectAttempts: 5,
			RetryDelay:      3 * time.Second,
		},
	}
}

// NewConfig 加载配置：默认值 -> YAML 文件 -> .env -> 环境变量
func NewConfig() (*Config, error) {
	cfg := Default()

	if path := os.Getenv(EnvConfigFile); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	LoadDotEnv()

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDotEnv 加载工作目录下可选的 .env 文件，已存在的环境变量不会被覆盖
// 需在读取 LOG_* 等环境变量之前调用
func LoadDotEnv() {
	_ = godotenv.Load()
}

// loadFile 从 YAML 文件覆盖配置
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// applyEnv 使用环境变量覆盖配置
func (c *Config) applyEnv() error {
	c.Server.HTTPAddr = getEnvWithDefault(EnvHTTPAddr, c.Server.HTTPAddr)

	var err error
	if c.Server.ShutdownTimeout, err = getEnvDuration(EnvServerShutdownTimeout, c.Server.ShutdownTimeout); err != nil {
		return err
	}

	db := &c.Database
	db.Host = getEnvWithDefault(EnvDBHost, db.Host)
	db.Name = getEnvWithDefault(EnvDBName, db.Name)
	db.User = getEnvWithDefault(EnvDBUser, db.User)
	db.Password = getEnvWithDefault(EnvDBPassword, db.Password)

	if db.Port, err = getEnvInt(EnvDBPort, db.Port); err != nil {
		return err
	}
	if db.ConnectAttempts, err = getEnvInt(EnvDBConnectAttempts, db.ConnectAttempts); err != nil {
		return err
	}

	if db.MinConns, err = getEnvInt32(EnvDBMinConns, db.MinConns); err != nil {
		return err
	}
	if db.MaxConns, err = getEnvInt32(EnvDBMaxConns, db.MaxConns); err != nil {
		return err
	}

	if db.RetryDelay, err = getEnvDuration(EnvDBRetryDelay, db.RetryDelay); err != nil {
		return err
	}
	if db.AcquireTimeout, err = getEnvDuration(EnvDBAcquireTimeout, db.AcquireTimeout); err != nil {
		return err
	}
	return nil
}

// Validate 校验配置
func (c *Config) Validate() error {
	if c.Server.HTTPAddr == "" {
		return errors.New("http address cannot be empty")
	}
	db := c.Database
	if db.Host == "" {
		return errors.New("database host cannot be empty")
	}
	if db.MaxConns <= 0 {
		return fmt.Errorf("max connections must be positive, got %d", db.MaxConns)
	}
	if db.MinConns < 0 || db.MinConns > db.MaxConns {
		return fmt.Errorf("min connections must be between 0 and %d, got %d", db.MaxConns, db.MinConns)
	}
	if db.ConnectAttempts < 1 {
		return fmt.Errorf("connect attempts must be at least 1, got %d", db.ConnectAttempts)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive, got %s", c.Server.ShutdownTimeout)
	}
	if db.RetryDelay < 0 || db.AcquireTimeout < 0 {
		return errors.New("durations cannot be negative")
	}
	return nil
}

// DSN 返回 postgres 连接串
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:   "/" + d.Name,
	}
	return u.String()
}

// NewDatabaseConfig 创建数据库配置
func NewDatabaseConfig(cfg *Config) *DatabaseConfig {
	return &cfg.Database
}

// NewServerConfig 创建服务器配置
func NewServerConfig(cfg *Config) *ServerConfig {
	return &cfg.Server
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return n, nil
}

func getEnvInt32(key string, defaultValue int32) (int32, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.ParseInt(value, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return int32(n), nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return d, nil
}
