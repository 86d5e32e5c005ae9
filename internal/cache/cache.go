// Package cache is a URL-keyed response cache with two expiry tiers:
// a durable tier for slow-moving data (rosters, full match detail) and a
// volatile tier for live data (lobby and match listings). The durable tier
// survives between runs because the store is backed by SQLite on disk;
// ":memory:" gives a throwaway store for tests.
package cache

import (
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// Tier selects which expiry policy a cached response falls under.
type Tier int

const (
	// TierDurable entries live for days; match detail and roster listings
	// rarely change once written.
	TierDurable Tier = iota
	// TierVolatile entries expire within about a minute; lobby and
	// match-list responses go stale almost immediately.
	TierVolatile
)

func (t Tier) String() string {
	if t == TierVolatile {
		return "volatile"
	}
	return "durable"
}

// Store caches raw response bodies keyed by exact request URL.
// It is safe for sequential reuse across requests; SQLite serializes
// concurrent access.
type Store struct {
	conn        *sql.DB
	durableTTL  time.Duration
	volatileTTL time.Duration
	now         func() time.Time
}

// Open opens (or creates) the cache database at path and applies the schema.
func Open(path string, durableTTL, volatileTTL time.Duration) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL", path)
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("apply cache schema: %w", err)
	}
	return &Store{
		conn:        conn,
		durableTTL:  durableTTL,
		volatileTTL: volatileTTL,
		now:         time.Now,
	}, nil
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// Get returns the cached body for url, or ok=false on a miss.
// An expired entry is a miss.
func (s *Store) Get(url string) ([]byte, bool, error) {
	var body []byte
	var expiresAt int64
	err := s.conn.QueryRow(
		"SELECT body, expires_at FROM responses WHERE url = ?", url,
	).Scan(&body, &expiresAt)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if s.now().Unix() >= expiresAt {
		return nil, false, nil
	}
	return body, true, nil
}

// Put stores body under url with the expiry of the given tier,
// replacing any previous entry for the same URL.
func (s *Store) Put(url string, tier Tier, body []byte) error {
	ttl := s.durableTTL
	if tier == TierVolatile {
		ttl = s.volatileTTL
	}
	now := s.now()
	_, err := s.conn.Exec(`
		INSERT OR REPLACE INTO responses(url, tier, body, fetched_at, expires_at)
		VALUES (?, ?, ?, ?, ?)`,
		url, tier.String(), body, now.Unix(), now.Add(ttl).Unix(),
	)
	if err != nil {
		return fmt.Errorf("cache put %s: %w", url, err)
	}
	return nil
}

// PurgeExpired deletes all entries past their expiry and reports how many.
func (s *Store) PurgeExpired() (int64, error) {
	res, err := s.conn.Exec("DELETE FROM responses WHERE expires_at <= ?", s.now().Unix())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Clear deletes every entry.
func (s *Store) Clear() error {
	_, err := s.conn.Exec("DELETE FROM responses")
	return err
}

// Len reports the number of stored entries, expired or not.
func (s *Store) Len() (int, error) {
	var n int
	err := s.conn.QueryRow("SELECT COUNT(1) FROM responses").Scan(&n)
	return n, err
}
