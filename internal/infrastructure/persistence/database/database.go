// Package database provides the snapshot store's database connection.
package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	_ "github.com/tursodatabase/libsql-client-go/libsql"

	"github.com/willowmedia/contentbridge/pkg/config"
)

// Database wraps the single store connection. Turso serves hosted
// deployments; local SQLite is the default.
type Database struct {
	Conn     *sql.DB
	UseTurso bool
}

// New opens the snapshot database per configuration and ensures the schema
// exists.
func New() (*Database, error) {
	var conn *sql.DB
	var err error
	var useTurso bool

	if config.TursoEnabled && config.TursoDatabase != "" && config.TursoToken != "" {
		connStr := config.TursoDatabase + "?authToken=" + config.TursoToken
		conn, err = sql.Open("libsql", connStr)
		if err != nil {
			return nil, fmt.Errorf("turso connection failed: %w", err)
		}
		if err := conn.Ping(); err != nil {
			conn.Close()
			return nil, fmt.Errorf("turso ping failed: %w", err)
		}
		useTurso = true
	} else {
		dbDir := filepath.Dir(config.DBPath)
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}

		conn, err = sql.Open("sqlite3", config.DBPath)
		if err != nil {
			return nil, fmt.Errorf("sqlite connection failed: %w", err)
		}
		if err := conn.Ping(); err != nil {
			conn.Close()
			return nil, fmt.Errorf("sqlite ping failed: %w", err)
		}
	}

	conn.SetMaxOpenConns(config.DBMaxOpenConns)
	conn.SetMaxIdleConns(config.DBMaxIdleConns)
	conn.SetConnMaxLifetime(time.Duration(config.DBConnMaxLifetimeMinutes) * time.Minute)
	conn.SetConnMaxIdleTime(time.Duration(config.DBConnMaxIdleMinutes) * time.Minute)

	db := &Database{Conn: conn, UseTurso: useTurso}
	if err := db.createSchema(); err != nil {
		conn.Close()
		return nil, err
	}

	return db, nil
}

// createSchema creates the snapshots table if missing. The contentful id is
// globally unique; (content_type, language) is unique so each language serves
// exactly one snapshot per type.
func (db *Database) createSchema() error {
	schema := `CREATE TABLE IF NOT EXISTS snapshots (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		contentful_id TEXT NOT NULL UNIQUE,
		content_type TEXT NOT NULL,
		language TEXT NOT NULL,
		data_hash TEXT NOT NULL,
		data TEXT NOT NULL,
		last_modified TIMESTAMP NOT NULL,
		UNIQUE(content_type, language)
	)`

	if _, err := db.Conn.Exec(schema); err != nil {
		return fmt.Errorf("failed to create snapshots schema: %w", err)
	}
	return nil
}

// ConnectionInfo describes the active backend for startup logging.
func (db *Database) ConnectionInfo() string {
	if db.UseTurso {
		return "Turso"
	}
	return fmt.Sprintf("SQLite (%s)", config.DBPath)
}

func (db *Database) Close() error {
	if db.Conn != nil {
		return db.Conn.Close()
	}
	return nil
}
