package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	DB        DBConfig
	CORS      CORSConfig
	Log       LogConfig
	JWT       JWTConfig
	Clients   ClientsConfig
	Store     StoreConfig
	Lifecycle LifecycleConfig
	Redis     RedisConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type StorageConfig struct {
	Driver       string `envconfig:"STORAGE_DRIVER" default:"postgres"`
	TxMaxRetries int    `envconfig:"TX_MAX_RETRIES" default:"3"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER"`
	Password string `envconfig:"DB_PASSWORD"`
	DBName   string `envconfig:"DB_NAME"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

type JWTConfig struct {
	Secret         string `envconfig:"JWT_SECRET" required:"true"`
	Duration       string `envconfig:"JWT_DURATION" default:"24h"`
	ServiceSubject string `envconfig:"JWT_SERVICE_SUBJECT" default:"00000000-0000-0000-0000-000000000000"`
}

// ClientsConfig holds the base URLs of the collaborating services. Timeout bounds each call.
type ClientsConfig struct {
	BankBaseURL     string        `envconfig:"BANK_BASE_URL" default:"http://localhost:8081"`
	DeliveryBaseURL string        `envconfig:"DELIVERY_BASE_URL" default:"http://localhost:8082"`
	EmailBaseURL    string        `envconfig:"EMAIL_BASE_URL" default:"http://localhost:8083"`
	StoreBaseURL    string        `envconfig:"STORE_BASE_URL" default:"http://localhost:8080"`
	Timeout         time.Duration `envconfig:"CLIENT_TIMEOUT" default:"5s"`
}

type StoreConfig struct {
	AccountID  int64 `envconfig:"STORE_ACCOUNT_ID" default:"1"`
	CustomerID int64 `envconfig:"STORE_CUSTOMER_ID" default:"1"`
}

type LifecycleConfig struct {
	TimeUnit         time.Duration `envconfig:"DELIVERY_TIME_UNIT" default:"1s"`
	PickupAfter      int           `envconfig:"DELIVERY_PICKUP_AFTER" default:"20"`
	DeliveringAfter  int           `envconfig:"DELIVERY_DELIVERING_AFTER" default:"5"`
	CompleteAfter    int           `envconfig:"DELIVERY_COMPLETE_AFTER" default:"5"`
	AccidentRate     float64       `envconfig:"DELIVERY_ACCIDENT_RATE" default:"0.5"`
	SchedulerEvery   time.Duration `envconfig:"SCHEDULER_INTERVAL" default:"500ms"`
	SchedulerBatch   int           `envconfig:"SCHEDULER_BATCH" default:"50"`
	FiringTimeoutCap time.Duration `envconfig:"SCHEDULER_FIRING_TIMEOUT" default:"30s"`
}

type RedisConfig struct {
	Addr     string        `envconfig:"REDIS_ADDR"`
	Password string        `envconfig:"REDIS_PASSWORD"`
	DB       int           `envconfig:"REDIS_DB" default:"0"`
	LockTTL  time.Duration `envconfig:"REDIS_LOCK_TTL" default:"30s"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func (c LifecycleConfig) Delays() (pickup, delivering, complete time.Duration) {
	return time.Duration(c.PickupAfter) * c.TimeUnit,
		time.Duration(c.DeliveringAfter) * c.TimeUnit,
		time.Duration(c.CompleteAfter) * c.TimeUnit
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if cfg.Storage.Driver != StorageDriverPostgres && cfg.Storage.Driver != StorageDriverMemory {
		return Config{}, fmt.Errorf("unsupported STORAGE_DRIVER %q", cfg.Storage.Driver)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		Storage: StorageConfig{
			Driver:       StorageDriverMemory,
			TxMaxRetries: 3,
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
			MaxConns: 5,
		},
		CORS: CORSConfig{
			AllowOrigins:     []string{"http://localhost:3000", "http://localhost:8080"},
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeZone:   "UTC",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		JWT: JWTConfig{
			Secret:         "test-secret",
			Duration:       "1h",
			ServiceSubject: "00000000-0000-0000-0000-000000000000",
		},
		Clients: ClientsConfig{
			Timeout: 2 * time.Second,
		},
		Store: StoreConfig{
			AccountID:  1,
			CustomerID: 1,
		},
		Lifecycle: LifecycleConfig{
			TimeUnit:         time.Second,
			PickupAfter:      20,
			DeliveringAfter:  5,
			CompleteAfter:    5,
			AccidentRate:     0.5,
			SchedulerEvery:   10 * time.Millisecond,
			SchedulerBatch:   50,
			FiringTimeoutCap: 5 * time.Second,
		},
	}
}
