// Package cache keeps a small local sqlite database of recently logged
// foods and recipes so quick-log flows can offer them without a network
// round trip.
package cache

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const dbFile = "recent.db"

const schema = `
CREATE TABLE IF NOT EXISTS recent_items (
	kind         TEXT NOT NULL CHECK (kind IN ('food', 'recipe')),
	item_id      INTEGER NOT NULL,
	name         TEXT NOT NULL,
	detail       TEXT NOT NULL DEFAULT '',
	uses         INTEGER NOT NULL DEFAULT 1,
	last_used_at TIMESTAMP NOT NULL,
	PRIMARY KEY (kind, item_id)
);
CREATE INDEX IF NOT EXISTS idx_recent_items_last_used
	ON recent_items (kind, last_used_at DESC);
`

// Kind distinguishes cached foods from cached recipes.
type Kind string

const (
	KindFood   Kind = "food"
	KindRecipe Kind = "recipe"
)

// RecentItem is one remembered food or recipe.
type RecentItem struct {
	Kind       Kind
	ItemID     int
	Name       string
	Detail     string
	Uses       int
	LastUsedAt time.Time
}

// Cache wraps the database connection
type Cache struct {
	conn *sql.DB
}

// Open opens (creating if needed) the recent-items database in dir.
func Open(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}

	conn, err := sql.Open("sqlite", filepath.Join(dir, dbFile))
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}

	// Enable WAL mode for concurrent reads while writes are serialized
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}
	if _, err := conn.Exec("PRAGMA busy_timeout=500"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Cache{conn: conn}, nil
}

// Close closes the database
func (c *Cache) Close() error {
	return c.conn.Close()
}

// Touch records a use of an item, inserting it on first use.
func (c *Cache) Touch(kind Kind, itemID int, name, detail string) error {
	_, err := c.conn.Exec(`
		INSERT INTO recent_items (kind, item_id, name, detail, uses, last_used_at)
		VALUES (?, ?, ?, ?, 1, ?)
		ON CONFLICT (kind, item_id) DO UPDATE SET
			name = excluded.name,
			detail = excluded.detail,
			uses = uses + 1,
			last_used_at = excluded.last_used_at`,
		string(kind), itemID, name, detail, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("touch recent item: %w", err)
	}
	return nil
}

// Recent returns up to limit items of a kind, most recently used first.
func (c *Cache) Recent(kind Kind, limit int) ([]RecentItem, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := c.conn.Query(`
		SELECT kind, item_id, name, detail, uses, last_used_at
		FROM recent_items
		WHERE kind = ?
		ORDER BY last_used_at DESC
		LIMIT ?`, string(kind), limit)
	if err != nil {
		return nil, fmt.Errorf("query recent items: %w", err)
	}
	defer rows.Close()

	var items []RecentItem
	for rows.Next() {
		var item RecentItem
		var kindStr string
		if err := rows.Scan(&kindStr, &item.ItemID, &item.Name, &item.Detail, &item.Uses, &item.LastUsedAt); err != nil {
			return nil, fmt.Errorf("scan recent item: %w", err)
		}
		item.Kind = Kind(kindStr)
		items = append(items, item)
	}
	return items, rows.Err()
}

// Remove drops an item, e.g. after the server reports it deleted.
func (c *Cache) Remove(kind Kind, itemID int) error {
	_, err := c.conn.Exec(`DELETE FROM recent_items WHERE kind = ? AND item_id = ?`,
		string(kind), itemID)
	if err != nil {
		return fmt.Errorf("remove recent item: %w", err)
	}
	return nil
}

// Prune keeps only the newest keep items per kind.
func (c *Cache) Prune(keep int) error {
	if keep <= 0 {
		keep = 50
	}
	_, err := c.conn.Exec(`
		DELETE FROM recent_items
		WHERE (kind, item_id) NOT IN (
			SELECT kind, item_id FROM recent_items r
			WHERE (
				SELECT COUNT(*) FROM recent_items r2
				WHERE r2.kind = r.kind AND r2.last_used_at >= r.last_used_at
			) <= ?
		)`, keep)
	if err != nil {
		return fmt.Errorf("prune recent items: %w", err)
	}
	return nil
}
