package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/XSAM/otelsql"
	"github.com/archoffice/bff-admin/config"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

const pingTimeout = 5 * time.Second

// GetDBInstance opens a pool for one parameter group. The service talks to two
// databases, so pools are not shared through a package singleton.
func GetDBInstance(conf config.PostgreSQLConfig) (*sqlx.DB, error) {
	sqlDB, err := otelsql.Open("postgres", DataSourceName(conf),
		otelsql.WithAttributes(
			semconv.DBSystemPostgreSQL,
			semconv.DBNamespace(conf.DBName),
		),
		otelsql.WithSpanOptions(otelsql.SpanOptions{
			DisableQuery: true,
		}),
	)
	if err != nil {
		return nil, err
	}

	db := sqlx.NewDb(sqlDB, "postgres")

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging %s:%s/%s: %w", conf.DBHost, conf.DBPort, conf.DBName, err)
	}

	return db, nil
}

func DataSourceName(conf config.PostgreSQLConfig) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		conf.DBHost, conf.DBPort, conf.DBUsername, conf.DBPassword, conf.DBName, SSLMode(conf.DBSSL))
}

// SSLMode accepts either a boolean flag or a libpq sslmode name.
func SSLMode(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1":
		return "require"
	case "false", "0":
		return "disable"
	default:
		return value
	}
}
