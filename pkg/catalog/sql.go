package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/1F47E/campus-nav/pkg/models"
)

// Driver names understood by OpenSQL
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const defaultTable = "locations"

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLStore keeps location records in a Postgres or SQLite table
type SQLStore struct {
	db     *sql.DB
	driver string
	table  string
}

// PostgresDSN builds a lib/pq connection string
func PostgresDSN(host, user, password, dbname string, port int) string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)
}

// OpenSQL opens and pings a store. table defaults to "locations".
func OpenSQL(ctx context.Context, driver, dsn, table string) (*SQLStore, error) {
	if driver != DriverPostgres && driver != DriverSQLite {
		return nil, fmt.Errorf("unsupported driver %q: %w", driver, ErrUnknownSource)
	}
	if table == "" {
		table = defaultTable
	}
	if !tableName.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if driver == DriverPostgres {
		db.SetMaxOpenConns(5)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	} else {
		// a private in-memory database exists per connection
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLStore{db: db, driver: driver, table: table}, nil
}

// NewSQLStore wraps an already open database
func NewSQLStore(db *sql.DB, driver, table string) *SQLStore {
	if table == "" {
		table = defaultTable
	}
	return &SQLStore{db: db, driver: driver, table: table}
}

func (s *SQLStore) placeholders(n int) string {
	ps := make([]string, n)
	for i := range ps {
		if s.driver == DriverPostgres {
			ps[i] = fmt.Sprintf("$%d", i+1)
		} else {
			ps[i] = "?"
		}
	}
	return strings.Join(ps, ", ")
}

// InitSchema creates the locations table if it does not exist
func (s *SQLStore) InitSchema(ctx context.Context) error {
	seqType := "INTEGER"
	if s.driver == DriverPostgres {
		seqType = "BIGINT"
	}
	query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			seq %s NOT NULL,
			name TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			"top" DOUBLE PRECISION NOT NULL DEFAULT 0,
			"left" DOUBLE PRECISION NOT NULL DEFAULT 0,
			width DOUBLE PRECISION NOT NULL DEFAULT 0,
			height DOUBLE PRECISION NOT NULL DEFAULT 0,
			center_x DOUBLE PRECISION,
			center_y DOUBLE PRECISION
		);`, s.table, seqType)

	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create table %s: %w", s.table, err)
	}
	return nil
}

// BulkInsert appends locs in one transaction, keeping their order
func (s *SQLStore) BulkInsert(ctx context.Context, locs []models.Location) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	var next int64
	row := tx.QueryRowContext(ctx, fmt.Sprintf("SELECT COALESCE(MAX(seq), 0) FROM %s", s.table))
	if err := row.Scan(&next); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to read sequence: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(`
		INSERT INTO %s (id, seq, name, description, "top", "left", width, height, center_x, center_y)
		VALUES (%s)
	`, s.table, s.placeholders(10)))
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, loc := range locs {
		next++
		var cx, cy sql.NullFloat64
		if loc.Center != nil && loc.Center.Valid() {
			cx = sql.NullFloat64{Float64: loc.Center.X, Valid: true}
			cy = sql.NullFloat64{Float64: loc.Center.Y, Valid: true}
		}
		_, err := stmt.ExecContext(ctx, loc.ID, next, loc.Name, loc.Description,
			loc.Hotspot.Top, loc.Hotspot.Left, loc.Hotspot.Width, loc.Hotspot.Height, cx, cy)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert location %s: %w", loc.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// Load returns all locations in insertion order
func (s *SQLStore) Load(ctx context.Context) ([]models.Location, error) {
	query := fmt.Sprintf(`
		SELECT id, name, description, "top", "left", width, height, center_x, center_y
		FROM %s
		ORDER BY seq
	`, s.table)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	var results []models.Location
	for rows.Next() {
		var (
			loc    models.Location
			cx, cy sql.NullFloat64
		)
		err := rows.Scan(&loc.ID, &loc.Name, &loc.Description,
			&loc.Hotspot.Top, &loc.Hotspot.Left, &loc.Hotspot.Width, &loc.Hotspot.Height,
			&cx, &cy)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		if cx.Valid && cy.Valid {
			loc.Center = &models.Point{X: cx.Float64, Y: cy.Float64}
		}
		results = append(results, loc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return results, nil
}

// Count returns the number of stored locations
func (s *SQLStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", s.table)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count locations: %w", err)
	}
	return count, nil
}

// Close closes the database connection
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// SetPoolSize caps open and idle connections; n <= 0 leaves the pool as is
func (s *SQLStore) SetPoolSize(n int) {
	if n <= 0 || s.driver != DriverPostgres {
		return
	}
	s.db.SetMaxOpenConns(n)
	s.db.SetMaxIdleConns(n)
}
