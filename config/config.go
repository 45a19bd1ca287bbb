package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Logger   LoggerConfig   `mapstructure:"logger"`
	Store    StoreConfig    `mapstructure:"store"`
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	Mail     MailConfig     `mapstructure:"mail"`
	Order    OrderConfig    `mapstructure:"order"`
	Upload   UploadConfig   `mapstructure:"upload"`
	Client   ClientConfig   `mapstructure:"client"`
	I18n     I18nConfig     `mapstructure:"i18n"`
}

type ServerConfig struct {
	AppEnv          string        `mapstructure:"app_env"`
	HTTPPort        string        `mapstructure:"http_port"`
	GRPCPort        string        `mapstructure:"grpc_port"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type LoggerConfig struct {
	Level             string `mapstructure:"level"`
	Encoding          string `mapstructure:"encoding"`
	DisableCaller     bool   `mapstructure:"disable_caller"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
}

// StoreConfig selects the sheet store backend: "postgres" or "memory".
type StoreConfig struct {
	Driver string `mapstructure:"driver"`
}

type PostgresConfig struct {
	Host            string `mapstructure:"host"`
	Port            string `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"db_name"`
	SSLMode         string `mapstructure:"ssl_mode"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime int    `mapstructure:"conn_max_idle_time"`
}

type RedisConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	Addr          string        `mapstructure:"addr"`
	Password      string        `mapstructure:"password"`
	DB            int           `mapstructure:"db"`
	SubmitLockTTL time.Duration `mapstructure:"submit_lock_ttl"`
}

type KafkaConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

type MailConfig struct {
	Enabled    bool     `mapstructure:"enabled"`
	Host       string   `mapstructure:"host"`
	Port       int      `mapstructure:"port"`
	Username   string   `mapstructure:"username"`
	Password   string   `mapstructure:"password"`
	From       string   `mapstructure:"from"`
	Recipients []string `mapstructure:"recipients"`
}

type OrderConfig struct {
	Timezone              string   `mapstructure:"timezone"`
	PriceSmall            int64    `mapstructure:"price_small"`
	PriceLarge            int64    `mapstructure:"price_large"`
	FreeShippingThreshold int64    `mapstructure:"free_shipping_threshold"`
	ShippingFee           int64    `mapstructure:"shipping_fee"`
	AISheet               string   `mapstructure:"ai_sheet"`
	PerfumerSheet         string   `mapstructure:"perfumer_sheet"`
	ShippingSheet         string   `mapstructure:"shipping_sheet"`
	ShippingSheetAliases  []string `mapstructure:"shipping_sheet_aliases"`
	ErrorSheet            string   `mapstructure:"error_sheet"`
}

type UploadConfig struct {
	Endpoint string `mapstructure:"endpoint"`
	Preset   string `mapstructure:"preset"`
	MaxBytes int64  `mapstructure:"max_bytes"`
}

type ClientConfig struct {
	OrderEndpoint string        `mapstructure:"order_endpoint"`
	Timeout       time.Duration `mapstructure:"timeout"`
	Language      string        `mapstructure:"language"`
}

type I18nConfig struct {
	DefaultLanguage string   `mapstructure:"default_language"`
	ExtraLocales    []string `mapstructure:"extra_locales"`
}

// binding maps a config key to its environment variable and default value.
type binding struct {
	key string
	env string
	def interface{}
}

var bindings = []binding{
	{"server.app_env", "APP_ENV", "dev"},
	{"server.http_port", "HTTP_PORT", ":8080"},
	{"server.grpc_port", "GRPC_PORT", ":8082"},
	{"server.allowed_origins", "ALLOWED_ORIGINS", []string{"*"}},
	{"server.shutdown_timeout", "SHUTDOWN_TIMEOUT", 10 * time.Second},

	{"logger.level", "LOGGER_LEVEL", ""},
	{"logger.encoding", "LOGGER_ENCODING", ""},
	{"logger.disable_caller", "LOGGER_DISABLE_CALLER", false},
	{"logger.disable_stacktrace", "LOGGER_DISABLE_STACKTRACE", true},

	{"store.driver", "STORE_DRIVER", "postgres"},

	{"postgres.host", "POSTGRES_HOST", "localhost"},
	{"postgres.port", "POSTGRES_PORT", "5432"},
	{"postgres.user", "POSTGRES_USER", "perfume"},
	{"postgres.password", "POSTGRES_PASSWORD", "perfume"},
	{"postgres.db_name", "POSTGRES_DB", "perfume_orders"},
	{"postgres.ssl_mode", "POSTGRES_SSLMODE", "disable"},
	{"postgres.max_open_conns", "POSTGRES_MAX_OPEN_CONNS", 10},
	{"postgres.max_idle_conns", "POSTGRES_MAX_IDLE_CONNS", 5},
	{"postgres.conn_max_lifetime", "POSTGRES_CONN_MAX_LIFETIME", 300},
	{"postgres.conn_max_idle_time", "POSTGRES_CONN_MAX_IDLE_TIME", 60},

	{"redis.enabled", "REDIS_ENABLED", false},
	{"redis.addr", "REDIS_ADDR", "localhost:6379"},
	{"redis.password", "REDIS_PASSWORD", ""},
	{"redis.db", "REDIS_DB", 0},
	{"redis.submit_lock_ttl", "REDIS_SUBMIT_LOCK_TTL", 30 * time.Second},

	{"kafka.enabled", "KAFKA_ENABLED", false},
	{"kafka.brokers", "KAFKA_BROKERS", []string{"localhost:9092"}},
	{"kafka.topic", "KAFKA_TOPIC_ORDERS", "perfume.orders.events"},

	{"mail.enabled", "MAIL_ENABLED", false},
	{"mail.host", "MAIL_HOST", "smtp.gmail.com"},
	{"mail.port", "MAIL_PORT", 587},
	{"mail.username", "MAIL_USERNAME", ""},
	{"mail.password", "MAIL_PASSWORD", ""},
	{"mail.from", "MAIL_FROM", "orders@example.com"},
	{"mail.recipients", "MAIL_RECIPIENTS", []string{}},

	{"order.timezone", "ORDER_TIMEZONE", "Asia/Seoul"},
	{"order.price_small", "ORDER_PRICE_SMALL", 24000},
	{"order.price_large", "ORDER_PRICE_LARGE", 48000},
	{"order.free_shipping_threshold", "ORDER_FREE_SHIPPING_THRESHOLD", 50000},
	{"order.shipping_fee", "ORDER_SHIPPING_FEE", 3500},
	{"order.ai_sheet", "ORDER_AI_SHEET", "ai base"},
	{"order.perfumer_sheet", "ORDER_PERFUMER_SHEET", "perfumer base"},
	{"order.shipping_sheet", "ORDER_SHIPPING_SHEET", "shipping"},
	{"order.shipping_sheet_aliases", "ORDER_SHIPPING_SHEET_ALIASES", []string{"Shipping Information", "배송양식"}},
	{"order.error_sheet", "ORDER_ERROR_SHEET", "errors"},

	{"upload.endpoint", "UPLOAD_ENDPOINT", "https://api.cloudinary.com/v1_1/demo/image/upload"},
	{"upload.preset", "UPLOAD_PRESET", "perfume_orders"},
	{"upload.max_bytes", "UPLOAD_MAX_BYTES", 10 * 1024 * 1024},

	{"client.order_endpoint", "CLIENT_ORDER_ENDPOINT", "http://localhost:8080/"},
	{"client.timeout", "CLIENT_TIMEOUT", 30 * time.Second},
	{"client.language", "CLIENT_LANGUAGE", "ko"},

	{"i18n.default_language", "I18N_DEFAULT_LANGUAGE", "ko"},
	{"i18n.extra_locales", "I18N_EXTRA_LOCALES", []string{}},
}

// LoadEnv reads configuration from the environment, falling back to defaults.
// Call godotenv.Load beforehand to pick up a .env file.
func LoadEnv() (*Config, error) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for _, b := range bindings {
		v.SetDefault(b.key, b.def)
		if err := v.BindEnv(b.key, b.env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", b.env, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if _, err := time.LoadLocation(cfg.Order.Timezone); err != nil {
		return nil, fmt.Errorf("invalid ORDER_TIMEZONE %q: %w", cfg.Order.Timezone, err)
	}
	return &cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Server.AppEnv == "development" || c.Server.AppEnv == "dev"
}

// LogLevel is LOGGER_LEVEL, or debug in development and info elsewhere.
func (c *Config) LogLevel() string {
	if c.Logger.Level != "" {
		return c.Logger.Level
	}
	if c.IsDevelopment() {
		return "debug"
	}
	return "info"
}

// LogEncoding is LOGGER_ENCODING, or console in development and json elsewhere.
func (c *Config) LogEncoding() string {
	if c.Logger.Encoding != "" {
		return c.Logger.Encoding
	}
	if c.IsDevelopment() {
		return "console"
	}
	return "json"
}
