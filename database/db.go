package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver
	"go.uber.org/zap"

	"school-backend/config"
)

const pingTimeout = 5 * time.Second

// InitDB is the connection factory: it opens the PostgreSQL pool described
// by cfg and verifies it is reachable.
func InitDB(ctx context.Context, cfg *config.Config, log *zap.Logger) (*sqlx.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	dbx := sqlx.NewDb(db, "postgres")

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := dbx.PingContext(pingCtx); err != nil {
		log.Error("database connection failed",
			zap.String("host", cfg.DBHost),
			zap.Int("port", cfg.DBPort),
			zap.String("database", cfg.DBName),
			zap.String("user", cfg.DBUser),
			zap.Error(err))
		db.Close()
		return nil, fmt.Errorf("error pinging database: %w", err)
	}

	log.Info("connected to PostgreSQL",
		zap.String("host", cfg.DBHost),
		zap.Int("port", cfg.DBPort),
		zap.String("database", cfg.DBName))
	return dbx, nil
}
