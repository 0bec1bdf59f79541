package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// buildDSN assembles the driver DSN. parseTime maps DATETIME to time.Time
// and loc=UTC keeps times consistent. clientFoundRows makes UPDATE report
// matched rows instead of changed rows; the repositories read zero affected
// rows as "no such row for this user", which must not trigger when a row
// matched but the new values equal the old ones.
func buildDSN(user, pass, host, port, name string) string {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	return fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC&clientFoundRows=true",
		auth, host, port, name)
}

// Open connects to MySQL and verifies the connection.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	db, err := sql.Open("mysql", buildDSN(user, pass, host, port, name))
	if err != nil {
		return nil, err
	}

	// Bounded pool; all request handling shares these connections.
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}
