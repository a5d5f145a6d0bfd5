package config

import (
	"fmt"
	"net/url"
	"os"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/joho/godotenv"
)

const (
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

var cfg *Config
var once sync.Once

// Config is the configuration for the application. It is built once at startup
// and passed by value to the components that need it.
type Config struct {
	Server
	PostgreSQL
	Storage
	Broker
	Log
}

// Server is the configuration for the server
type Server struct {
	Port string `env:"PORT" envDefault:"8080"`
}

// Addr returns the address for the server
func (s Server) Addr() string {
	return fmt.Sprintf("%s:%s", "0.0.0.0", s.Port)
}

// PostgreSQL is the configuration for the database
type PostgreSQL struct {
	Driver          string `env:"DB_DRIVER" envDefault:"postgres"`
	Host            string `env:"DB_HOST" envDefault:"localhost"`
	Port            string `env:"DB_PORT" envDefault:"5432"`
	Database        string `env:"DB_DATABASE" envDefault:"finance_analytics"`
	Username        string `env:"DB_USERNAME" envDefault:"finance_analytics"`
	Password        string `env:"DB_PASSWORD" envDefault:"finance_analytics"`
	SSLMode         string `env:"DB_SSLMODE" envDefault:"disable"`
	MaxConnAttempts string `env:"DB_MAX_CONN_ATTEMPTS" envDefault:"5"`
	Migrate         string `env:"DB_MIGRATE" envDefault:"true"`
}

// DSN returns the DSN for the database
func (c PostgreSQL) DSN() string {
	return c.dsn(c.Driver)
}

// MigrationURL returns the DSN in the form expected by the migrate pgx/v5 driver.
func (c PostgreSQL) MigrationURL() string {
	return c.dsn("pgx5")
}

func (c PostgreSQL) dsn(scheme string) string {
	return fmt.Sprintf("%s://%s:%s@%s:%s/%s?sslmode=%s",
		scheme,
		url.QueryEscape(c.Username),
		url.QueryEscape(c.Password),
		c.Host,
		c.Port,
		c.Database,
		c.SSLMode,
	)
}

// MigrateOnStart reports whether migrations should run before serving.
func (c PostgreSQL) MigrateOnStart() bool {
	v, err := strconv.ParseBool(c.Migrate)
	return err == nil && v
}

// Storage selects the ledger store implementation.
type Storage struct {
	Backend string `env:"DATA_BACKEND" envDefault:"postgres"`
}

// Broker is the configuration for decision events. An empty URL disables publishing.
type Broker struct {
	URL      string `env:"AMQP_URL" envDefault:""`
	Exchange string `env:"AMQP_EXCHANGE" envDefault:"finance"`
	Queue    string `env:"AMQP_QUEUE" envDefault:"transaction-decisions"`
}

// Enabled reports whether decision events should be published.
func (b Broker) Enabled() bool {
	return b.URL != ""
}

type Log struct {
	Level string `env:"LOG_LEVEL" envDefault:"info"`
	File  string `env:"LOG_FILE" envDefault:""`
}

// Load loads the configuration from a .env file, if present, and environment variables
func Load() *Config {
	once.Do(func() {
		_ = godotenv.Load()
		cfg = load()
	})

	return cfg
}

func load() *Config {
	c := &Config{}
	cfgType := reflect.TypeOf(*c)
	cfgValue := reflect.ValueOf(c).Elem()

	for i := 0; i < cfgType.NumField(); i++ {
		field := cfgType.Field(i)
		fieldValue := cfgValue.Field(i)
		for j := 0; j < field.Type.NumField(); j++ {
			subField := field.Type.Field(j)
			envVar := subField.Tag.Get("env")
			envDefault := subField.Tag.Get("envDefault")
			value := getEnv(envVar, envDefault)

			fieldValue.Field(j).SetString(value)
		}
	}

	return c
}

// Validate reports every problem with the configuration at once.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Server.Port); err != nil || port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %q: must be a number between 1 and 65535", c.Server.Port))
	}

	switch c.Storage.Backend {
	case BackendPostgres:
		if attempts, err := strconv.Atoi(c.PostgreSQL.MaxConnAttempts); err != nil || attempts < 1 {
			problems = append(problems, fmt.Sprintf("invalid DB_MAX_CONN_ATTEMPTS %q: must be a positive number", c.PostgreSQL.MaxConnAttempts))
		}
		if c.PostgreSQL.Host == "" || c.PostgreSQL.Database == "" {
			problems = append(problems, "database host and name are required for the postgres backend")
		}
	case BackendMemory:
	default:
		problems = append(problems, fmt.Sprintf("invalid data backend %q: must be one of [%s %s]", c.Storage.Backend, BackendPostgres, BackendMemory))
	}

	if c.Broker.Enabled() {
		parsed, err := url.Parse(c.Broker.URL)
		if err != nil {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL: %v", err))
		} else if parsed.Scheme != "amqp" && parsed.Scheme != "amqps" {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL scheme %q: must be amqp or amqps", parsed.Scheme))
		}
		if c.Broker.Exchange == "" {
			problems = append(problems, "AMQP exchange name cannot be empty when AMQP_URL is set")
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}

// getEnv retrieves the value of the environment variable named by the key or returns the defaultValue if not set
func getEnv(key, defaultValue string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		value = defaultValue
	}
	return value
}
