package config

import (
	"fmt"
	"strings"

	"github.com/coffee-bar/internal/catalog"
	"github.com/coffee-bar/internal/logger"

	"github.com/spf13/viper"
)

// Config 应用配置结构
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Queue    QueueConfig    `mapstructure:"queue"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Security SecurityConfig `mapstructure:"security"`
	Cart     CartConfig     `mapstructure:"cart"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Menu     []MenuItem     `mapstructure:"menu"`
	Shop     ShopConfig     `mapstructure:"shop"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug / release
}

// LogConfig 日志配置
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Dir        string `mapstructure:"dir"`
	Filename   string `mapstructure:"filename"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
	Stdout     bool   `mapstructure:"stdout"`
}

// ToLoggerOptions 转换为 logger 配置
func (c LogConfig) ToLoggerOptions() logger.Options {
	return logger.Options{
		Level:      c.Level,
		Dir:        c.Dir,
		Filename:   c.Filename,
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAgeDays: c.MaxAgeDays,
		Compress:   c.Compress,
		Stdout:     c.Stdout,
	}
}

// DatabasePoolConfig 数据库连接池配置
type DatabasePoolConfig struct {
	MaxOpenConns           int `mapstructure:"max_open_conns"`
	MaxIdleConns           int `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeSeconds int `mapstructure:"conn_max_lifetime_seconds"`
	ConnMaxIdleTimeSeconds int `mapstructure:"conn_max_idle_time_seconds"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver string             `mapstructure:"driver"` // sqlite / postgres
	DSN    string             `mapstructure:"dsn"`
	Pool   DatabasePoolConfig `mapstructure:"pool"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// QueueConfig 异步队列配置
type QueueConfig struct {
	Enabled     bool           `mapstructure:"enabled"`
	Host        string         `mapstructure:"host"`
	Port        int            `mapstructure:"port"`
	Password    string         `mapstructure:"password"`
	DB          int            `mapstructure:"db"`
	Concurrency int            `mapstructure:"concurrency"`
	Queues      map[string]int `mapstructure:"queues"`
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

// SecurityConfig 安全配置
type SecurityConfig struct {
	CheckoutRateLimit RateLimitConfig `mapstructure:"checkout_rate_limit"`
}

// RateLimitConfig 限流配置
type RateLimitConfig struct {
	WindowSeconds int `mapstructure:"window_seconds"`
	MaxRequests   int `mapstructure:"max_requests"`
	BlockSeconds  int `mapstructure:"block_seconds"`
}

// CartConfig 购物车存储配置
type CartConfig struct {
	Storage         string `mapstructure:"storage"` // memory / redis / database
	KeyPrefix       string `mapstructure:"key_prefix"`
	MalformedPolicy string `mapstructure:"malformed_policy"` // reset / fail
	CookieName      string `mapstructure:"cookie_name"`
	CookieMaxAge    int    `mapstructure:"cookie_max_age"`
}

// CatalogConfig 菜单来源
type CatalogConfig struct {
	Source string `mapstructure:"source"` // config / database
}

// MenuItem 配置文件中的菜单项
type MenuItem struct {
	Name  string `mapstructure:"name"`
	Price int    `mapstructure:"price"`
	Stock int    `mapstructure:"stock"`
}

// ShopConfig 页面展示配置
type ShopConfig struct {
	Title          string `mapstructure:"title"`
	CurrencySymbol string `mapstructure:"currency_symbol"`
}

// MenuEntries 将配置菜单转换为目录条目，未配置时返回内置菜单
func (c *Config) MenuEntries() []catalog.MenuEntry {
	if len(c.Menu) == 0 {
		return catalog.DefaultEntries()
	}
	entries := make([]catalog.MenuEntry, 0, len(c.Menu))
	for _, item := range c.Menu {
		entries = append(entries, catalog.MenuEntry{
			Name:       item.Name,
			UnitPrice:  item.Price,
			TotalStock: item.Stock,
		})
	}
	return entries
}

// Load 从 config.yml 加载配置
func Load() *Config {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("../") // 从 cmd/server 运行
	v.AddConfigPath("./etc")

	if err := v.ReadInConfig(); err != nil {
		logger.Warnw("config_file_read_failed",
			"error", err,
			"fallback", "env_or_defaults",
		)
	} else {
		logger.Infow("config_file_loaded", "file", v.ConfigFileUsed())
	}

	cfg, err := Decode(v)
	if err != nil {
		logger.Errorw("config_unmarshal_failed", "error", err)
		panic(err)
	}
	return cfg
}

// Decode 在给定 viper 实例上应用默认值、环境变量并解析
func Decode(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // cart.storage -> CART_STORAGE

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("配置解析失败: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("log.level", "")
	v.SetDefault("log.dir", "")
	v.SetDefault("log.filename", "coffee-bar.log")
	v.SetDefault("log.max_size_mb", 50)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 14)
	v.SetDefault("log.compress", true)
	v.SetDefault("log.stdout", false)
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "./db/coffee-bar.db")
	v.SetDefault("database.pool.max_open_conns", 1)
	v.SetDefault("database.pool.max_idle_conns", 1)
	v.SetDefault("database.pool.conn_max_lifetime_seconds", 0)
	v.SetDefault("database.pool.conn_max_idle_time_seconds", 0)
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "127.0.0.1")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "cb")
	v.SetDefault("queue.enabled", false)
	v.SetDefault("queue.host", "127.0.0.1")
	v.SetDefault("queue.port", 6379)
	v.SetDefault("queue.password", "")
	v.SetDefault("queue.db", 1)
	v.SetDefault("queue.concurrency", 5)
	v.SetDefault("queue.queues", map[string]int{
		"default":  5,
		"critical": 3,
	})
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{
		"Content-Type",
		"Content-Length",
		"Accept-Encoding",
		"Cache-Control",
		"X-Requested-With",
		"X-Request-ID",
	})
	v.SetDefault("cors.allow_credentials", true)
	v.SetDefault("cors.max_age", 600)
	v.SetDefault("security.checkout_rate_limit.window_seconds", 60)
	v.SetDefault("security.checkout_rate_limit.max_requests", 10)
	v.SetDefault("security.checkout_rate_limit.block_seconds", 120)
	v.SetDefault("cart.storage", "database")
	v.SetDefault("cart.key_prefix", "coffeeBarCart")
	v.SetDefault("cart.malformed_policy", "reset")
	v.SetDefault("cart.cookie_name", "coffee_bar_session")
	v.SetDefault("cart.cookie_max_age", 30*24*3600)
	v.SetDefault("catalog.source", "config")
	v.SetDefault("shop.title", "Coffee Bar")
	v.SetDefault("shop.currency_symbol", "₹")
}
