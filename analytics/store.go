// Package analytics records page visits in a local SQLite database and
// serves simple aggregates for the preview stats endpoint.
package analytics

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store provides database operations for analytics.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the analytics database at dbPath, ensures the
// data directory exists, and creates the schema.
func NewStore(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open analytics db: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	db.SetConnMaxLifetime(time.Hour)

	// WAL lets reads proceed while a visit is being written; the busy
	// timeout makes writers wait instead of failing with SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		return nil, fmt.Errorf("configure db: %w", err)
	}

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS visits (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			path TEXT NOT NULL,
			ip_hash TEXT NOT NULL,
			referrer TEXT,
			timestamp DATETIME NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_visits_timestamp ON visits(timestamp);
		CREATE INDEX IF NOT EXISTS idx_visits_path ON visits(path);
	`)
	return err
}

// Visit is a single recorded page view. The visitor IP is never stored
// directly, only a salted hash.
type Visit struct {
	Path      string
	IPHash    string
	Referrer  string
	Timestamp time.Time
}

// PathCount pairs a path with its visit count.
type PathCount struct {
	Path  string `json:"path"`
	Count int    `json:"count"`
}

// RecordVisit stores a page view.
func (s *Store) RecordVisit(v Visit) error {
	_, err := s.db.Exec(
		`INSERT INTO visits (path, ip_hash, referrer, timestamp) VALUES (?, ?, ?, ?)`,
		v.Path, v.IPHash, v.Referrer, v.Timestamp.UTC(),
	)
	if err != nil {
		return fmt.Errorf("record visit: %w", err)
	}
	return nil
}

// TopPaths returns the most visited paths in the last days days, ordered by
// visit count descending.
func (s *Store) TopPaths(limit, days int) ([]PathCount, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -days)
	rows, err := s.db.Query(
		`SELECT path, COUNT(*) AS views FROM visits
		 WHERE timestamp >= ?
		 GROUP BY path
		 ORDER BY views DESC, path ASC
		 LIMIT ?`,
		cutoff, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("top paths: %w", err)
	}
	defer rows.Close()

	var out []PathCount
	for rows.Next() {
		var pc PathCount
		if err := rows.Scan(&pc.Path, &pc.Count); err != nil {
			return nil, fmt.Errorf("scan path count: %w", err)
		}
		out = append(out, pc)
	}
	return out, rows.Err()
}

// TotalVisits returns the number of visits in the last days days.
func (s *Store) TotalVisits(days int) (int, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -days)
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM visits WHERE timestamp >= ?`, cutoff,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("total visits: %w", err)
	}
	return count, nil
}

// PruneBefore removes visits older than cutoff.
func (s *Store) PruneBefore(cutoff time.Time) error {
	if _, err := s.db.Exec(`DELETE FROM visits WHERE timestamp < ?`, cutoff.UTC()); err != nil {
		return fmt.Errorf("prune visits: %w", err)
	}
	return nil
}

// StartCleanupScheduler runs periodic pruning of visits older than the
// retention period. Returns a stop function.
func (s *Store) StartCleanupScheduler(retentionDays int, interval time.Duration) func() {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ticker.C:
				cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays)
				if err := s.PruneBefore(cutoff); err != nil {
					fmt.Printf("analytics cleanup error: %v\n", err)
				}
			case <-done:
				ticker.Stop()
				return
			}
		}
	}()

	return func() { close(done) }
}

// HashIP returns a salted SHA-256 hex digest of an IP address.
func HashIP(ip, salt string) string {
	sum := sha256.Sum256([]byte(salt + ip))
	return hex.EncodeToString(sum[:])
}
