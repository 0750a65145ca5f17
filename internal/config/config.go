package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Driver string

const (
	DriverMongo  Driver = "mongo"  // MongoDB document store (default)
	DriverSQLite Driver = "sqlite" // Embedded SQLite through GORM
)

type LoginField string

const (
	LoginFieldEmail    LoginField = "email"
	LoginFieldUsername LoginField = "username"
)

// DefaultDatabasePath is the SQLite file used when DATASTORE=sqlite.
const DefaultDatabasePath = "./bookshelf.db"

type (
	Config struct {
		HTTP
		Global
		Datastore
		Mongo
		Database
		Auth
		Logging
		Audit
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Datastore struct {
		Driver Driver
	}
	Mongo struct {
		URI    string
		DBName string
	}
	Database struct {
		Path string
	}
	Auth struct {
		JWTSecret      string
		TokenExpiry    time.Duration
		LoginField     LoginField
		ValidateFormat bool // email/username format checks on registration
		BcryptCost     int
	}
	Logging struct {
		Level  string // debug, info, warn, error
		Format string // json or text
	}
	Audit struct {
		Enabled         bool
		RetentionDays   int
		CleanupSchedule string // Cron format: "0 3 * * *" = daily at 03:00
	}
)

// DefaultJWTSecret is only meant for local development.
const DefaultJWTSecret = "secret"

func NewConfig() *Config {
	// A missing .env is normal outside of local development
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	return newConfig(viper.New())
}

func newConfig(v *viper.Viper) *Config {
	v.AutomaticEnv()
	v.SetDefault("port", 3000)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 5)

	v.SetDefault("datastore", string(DriverMongo))
	v.SetDefault("mongodb_uri", "mongodb://localhost:27017")
	v.SetDefault("mongodb_db_name", "example")
	v.SetDefault("database_path", DefaultDatabasePath)

	// Auth defaults
	v.SetDefault("jwt_secret", DefaultJWTSecret)
	v.SetDefault("jwt_expiry", "24h")
	v.SetDefault("auth_login_field", string(LoginFieldEmail))
	v.SetDefault("auth_validate_format", true)
	v.SetDefault("auth_bcrypt_cost", 10)

	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")

	v.SetDefault("audit_enabled", true)
	v.SetDefault("audit_retention_days", 30)
	v.SetDefault("audit_cleanup_schedule", "0 3 * * *")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Datastore: Datastore{
			Driver: Driver(strings.ToLower(v.GetString("DATASTORE"))),
		},
		Mongo: Mongo{
			URI:    v.GetString("MONGODB_URI"),
			DBName: v.GetString("MONGODB_DB_NAME"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Auth: Auth{
			JWTSecret:      v.GetString("JWT_SECRET"),
			TokenExpiry:    v.GetDuration("JWT_EXPIRY"),
			LoginField:     LoginField(strings.ToLower(v.GetString("AUTH_LOGIN_FIELD"))),
			ValidateFormat: v.GetBool("AUTH_VALIDATE_FORMAT"),
			BcryptCost:     v.GetInt("AUTH_BCRYPT_COST"),
		},
		Logging: Logging{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Audit: Audit{
			Enabled:         v.GetBool("AUDIT_ENABLED"),
			RetentionDays:   v.GetInt("AUDIT_RETENTION_DAYS"),
			CleanupSchedule: v.GetString("AUDIT_CLEANUP_SCHEDULE"),
		},
	}
}
