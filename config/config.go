package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	ServerPort  string
	Environment string
	LogLevel    string

	DBHost            string
	DBPort            int
	DBUser            string
	DBPassword        string
	DBName            string
	DBSSLMode         string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration

	CORSAllowedOrigin string

	// ExposeErrors keeps the database error text in 400 responses.
	ExposeErrors bool
	AutoMigrate  bool

	SeedAdminLogin    string
	SeedAdminPassword string
}

// Load reads the key/value file at path (if it exists), then applies
// environment overrides. A .env file in the working directory is loaded
// into the environment first.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		}
	}

	cfg := &Config{
		ServerPort:        v.GetString("server_port"),
		Environment:       v.GetString("environment"),
		LogLevel:          v.GetString("log_level"),
		DBHost:            v.GetString("db_host"),
		DBPort:            v.GetInt("db_port"),
		DBUser:            v.GetString("db_user"),
		DBPassword:        v.GetString("db_password"),
		DBName:            v.GetString("db_name"),
		DBSSLMode:         v.GetString("db_sslmode"),
		DBMaxOpenConns:    v.GetInt("db_max_open_conns"),
		DBMaxIdleConns:    v.GetInt("db_max_idle_conns"),
		DBConnMaxLifetime: v.GetDuration("db_conn_max_lifetime"),
		CORSAllowedOrigin: v.GetString("cors_allowed_origin"),
		ExposeErrors:      v.GetBool("expose_errors"),
		AutoMigrate:       v.GetBool("auto_migrate"),
		SeedAdminLogin:    v.GetString("seed_admin_login"),
		SeedAdminPassword: v.GetString("seed_admin_password"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server_port", "8080")
	v.SetDefault("environment", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", 5432)
	v.SetDefault("db_user", "postgres")
	v.SetDefault("db_password", "")
	v.SetDefault("db_name", "escola")
	v.SetDefault("db_sslmode", "disable")
	v.SetDefault("db_max_open_conns", 10)
	v.SetDefault("db_max_idle_conns", 5)
	v.SetDefault("db_conn_max_lifetime", 30*time.Minute)
	v.SetDefault("cors_allowed_origin", "*")
	v.SetDefault("expose_errors", true)
	v.SetDefault("auto_migrate", false)
	v.SetDefault("seed_admin_login", "admin")
	v.SetDefault("seed_admin_password", "")
}

func (c *Config) Validate() error {
	switch {
	case c.DBHost == "":
		return errors.New("config: db_host is required")
	case c.DBName == "":
		return errors.New("config: db_name is required")
	case c.DBPort <= 0:
		return fmt.Errorf("config: invalid db_port %d", c.DBPort)
	case c.ServerPort == "":
		return errors.New("config: server_port is required")
	}
	return nil
}

// DSN renders the lib/pq connection URL. Credentials are escaped, so any
// character is allowed in the password.
func (c *Config) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     net.JoinHostPort(c.DBHost, strconv.Itoa(c.DBPort)),
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": {c.DBSSLMode}}.Encode(),
	}
	return u.String()
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
