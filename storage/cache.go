package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"atc-cli/booking"

	_ "github.com/mattn/go-sqlite3"
)

// CacheFilter narrows ListCachedBookings by UTC calendar day.
type CacheFilter struct {
	From string
	To   string
	VID  string
}

// CacheInfo describes the state of the offline cache.
type CacheInfo struct {
	Bookings   int    `json:"bookings"`
	LastSynced string `json:"last_synced"`
}

func OpenCacheDB() (*sql.DB, error) {
	if _, err := ensureConfigDir(); err != nil {
		return nil, err
	}
	path, err := CachePath()
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if err := ensureCacheSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func ensureCacheSchema(db *sql.DB) error {
	createBookings := `
CREATE TABLE IF NOT EXISTS bookings (
  id TEXT PRIMARY KEY,
  position TEXT,
  vid TEXT,
  from_utc TEXT,
  to_utc TEXT,
  kind TEXT
);`

	if _, err := db.Exec(createBookings); err != nil {
		return fmt.Errorf("create bookings table: %w", err)
	}

	if _, err := db.Exec("CREATE INDEX IF NOT EXISTS idx_bookings_from ON bookings(from_utc);"); err != nil {
		return fmt.Errorf("create bookings index: %w", err)
	}

	createMeta := `
CREATE TABLE IF NOT EXISTS cache_meta (
  key TEXT PRIMARY KEY,
  value TEXT
);`
	if _, err := db.Exec(createMeta); err != nil {
		return fmt.Errorf("create cache_meta table: %w", err)
	}
	return nil
}

// ReplaceCachedBookings swaps the full cache contents for the given
// list in one transaction and stamps the sync time.
func ReplaceCachedBookings(db *sql.DB, bookings []booking.Booking, syncedAt time.Time) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}

	if _, err := tx.Exec("DELETE FROM bookings"); err != nil {
		_ = tx.Rollback()
		return err
	}

	insert := `
INSERT INTO bookings (id, position, vid, from_utc, to_utc, kind)
VALUES (?, ?, ?, ?, ?, ?);`
	for _, b := range bookings {
		_, err := tx.Exec(
			insert,
			b.ID,
			b.Position,
			b.VID,
			b.From.UTC().Format(time.RFC3339),
			b.To.UTC().Format(time.RFC3339),
			b.Kind,
		)
		if err != nil {
			_ = tx.Rollback()
			return err
		}
	}

	stamp := syncedAt.UTC().Format(time.RFC3339)
	if _, err := tx.Exec(
		"INSERT INTO cache_meta (key, value) VALUES ('last_synced', ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		stamp,
	); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

func ListCachedBookings(db *sql.DB, filter CacheFilter) ([]booking.Booking, error) {
	base := `
SELECT id, position, vid, from_utc, to_utc, kind
FROM bookings`

	conds := []string{}
	args := []any{}

	if filter.From != "" {
		conds = append(conds, "from_utc >= ?")
		args = append(args, filter.From+"T00:00:00Z")
	}
	if filter.To != "" {
		conds = append(conds, "from_utc <= ?")
		args = append(args, filter.To+"T23:59:59Z")
	}
	if filter.VID != "" {
		conds = append(conds, "vid = ?")
		args = append(args, filter.VID)
	}

	query := base
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY position, from_utc"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := []booking.Booking{}
	for rows.Next() {
		var id, position, vid, fromUTC, toUTC string
		var kind sql.NullString
		if err := rows.Scan(&id, &position, &vid, &fromUTC, &toUTC, &kind); err != nil {
			return nil, err
		}
		from, err := time.Parse(time.RFC3339, fromUTC)
		if err != nil {
			return nil, fmt.Errorf("corrupt cache entry %s: %w", id, err)
		}
		to, err := time.Parse(time.RFC3339, toUTC)
		if err != nil {
			return nil, fmt.Errorf("corrupt cache entry %s: %w", id, err)
		}
		b := booking.Booking{
			ID:       id,
			Position: position,
			VID:      vid,
			From:     from,
			To:       to,
		}
		if kind.Valid {
			b.Kind = kind.String
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return bookings, nil
}

func GetCacheInfo(db *sql.DB) (CacheInfo, error) {
	info := CacheInfo{}
	if err := db.QueryRow("SELECT COUNT(*) FROM bookings").Scan(&info.Bookings); err != nil {
		return info, err
	}
	var stamp sql.NullString
	err := db.QueryRow("SELECT value FROM cache_meta WHERE key = 'last_synced'").Scan(&stamp)
	if err != nil && err != sql.ErrNoRows {
		return info, err
	}
	if stamp.Valid {
		info.LastSynced = stamp.String
	}
	return info, nil
}
