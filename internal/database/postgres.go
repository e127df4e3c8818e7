package database

import (
	"errors"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var postgresDefaults = map[string]string{
	"sslmode":          "disable",
	"application_name": "pitwall",
}

func openPostgres(cfg Config) (*gorm.DB, error) {
	dsn, err := buildPostgresDSN(cfg)
	if err != nil {
		return nil, err
	}
	return gorm.Open(postgres.Open(dsn), gormConfig())
}

func buildPostgresDSN(cfg Config) (string, error) {
	if cfg.DSN != "" {
		return cfg.DSN, nil
	}
	if cfg.User == "" {
		return "", errors.New("postgres configuration requires a user")
	}

	host := cfg.Host
	if host == "" {
		host = "localhost"
	}
	port := cfg.Port
	if port == 0 {
		port = 5432
	}

	dsn := fmt.Sprintf("host=%s port=%d user=%s dbname=%s", host, port, cfg.User, databaseName(cfg))
	if cfg.Password != "" {
		dsn += " password=" + cfg.Password
	}
	return dsn + " " + encodeOptions(postgresDefaults, cfg.Options, " "), nil
}
