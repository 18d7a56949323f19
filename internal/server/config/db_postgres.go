package config

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v4/stdlib"
)

// OpenPostgres открывает пул соединений с PostgreSQL (драйвер pgx через database/sql),
// применяет настройки пула и проверяет доступность базы (Ping).
//
// Возвращённый *sql.DB принадлежит вызывающему: его передают в репозитории
// и закрывают при остановке сервера.
// Схема БД (db/schema.sql) накатывается отдельно, сервер её не меняет.
func OpenPostgres(ctx context.Context, cfg DBConfig) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	ApplyPool(db, cfg)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return db, nil
}

// ApplyPool переносит настройки пула из конфига в *sql.DB.
// Нулевые значения оставляют дефолты database/sql.
func ApplyPool(db *sql.DB, cfg DBConfig) {
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if cfg.ConnMaxIdleTime > 0 {
		db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}
}
