package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite" // pure go sqlite driver, dev fallback and tests
	"go.uber.org/zap"
)

var (
	// ErrNotFound reports that a point lookup matched no row.
	ErrNotFound = errors.New("store: not found")
	// ErrAuthFailed covers both an unknown account and a wrong password;
	// the two cases are only distinguished in debug logs.
	ErrAuthFailed = errors.New("store: authentication failed")
	// ErrUnknownLookup reports a gender/age/size/breed name with no
	// matching lookup row. The submission is rejected.
	ErrUnknownLookup = errors.New("store: unknown lookup value")
)

// Store is the sole point of contact with the database. Handlers receive
// it explicitly; there is no package-level handle.
type Store struct {
	db     *sql.DB
	driver string
	log    *zap.Logger
}

// Open connects with the given driver ("postgres" or "sqlite") and
// verifies the connection with a bounded ping.
func Open(driver, dsn string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	var db *sql.DB
	var err error
	switch driver {
	case "postgres":
		db, err = sql.Open("postgres", dsn)
		if err != nil {
			return nil, fmt.Errorf("store: open postgres: %w", err)
		}
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(30 * time.Minute)
		db.SetConnMaxIdleTime(5 * time.Minute)
	case "sqlite":
		if dsn == "" {
			dsn = "petrescue.db"
		}
		db, err = sql.Open("sqlite", dsn)
		if err != nil {
			return nil, fmt.Errorf("store: open sqlite: %w", err)
		}
		// Each sqlite connection gets its own :memory: database, and file
		// databases hit SQLITE_BUSY under concurrent writers. One
		// connection avoids both.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	default:
		return nil, fmt.Errorf("store: unknown driver %q", driver)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: ping: %w", err)
	}
	log.Info("store: connected", zap.String("driver", driver))
	return &Store{db: db, driver: driver, log: log}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Init creates the schema if it does not exist yet.
func (s *Store) Init(ctx context.Context) error {
	for _, stmt := range s.schema() {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("store: init schema: %w", err)
		}
	}
	return nil
}

func nullableID(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	id := v.Int64
	return &id
}

func nullableString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	str := v.String
	return &str
}
