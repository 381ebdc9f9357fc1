package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/nikbrunner/bmjump/internal/model"
)

const currentSchemaVersion = 1

// SQLiteStorage implements Storage using a SQLite database.
type SQLiteStorage struct {
	db   *sql.DB
	path string
}

// NewSQLiteStorage creates a new SQLiteStorage with the given database path.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}

	s := &SQLiteStorage{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

// Path returns the database file path.
func (s *SQLiteStorage) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// migrate runs database migrations.
func (s *SQLiteStorage) migrate() error {
	var version int
	err := s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		// Table doesn't exist or is empty, start fresh
		version = 0
	}

	if version < currentSchemaVersion {
		return s.migrateV1()
	}
	return nil
}

// migrateV1 creates the initial schema. Position columns keep the
// store's slice order stable across load/save cycles.
func (s *SQLiteStorage) migrateV1() error {
	schema := `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS folders (
			id TEXT PRIMARY KEY NOT NULL,
			name TEXT NOT NULL,
			parent_id TEXT,
			position INTEGER NOT NULL DEFAULT 0,
			FOREIGN KEY (parent_id) REFERENCES folders(id) ON DELETE SET NULL
		);

		CREATE INDEX IF NOT EXISTS idx_folders_parent_id ON folders(parent_id);

		CREATE TABLE IF NOT EXISTS bookmarks (
			id TEXT PRIMARY KEY NOT NULL,
			title TEXT NOT NULL,
			url TEXT NOT NULL,
			folder_id TEXT,
			position INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL,
			visited_at TEXT,
			FOREIGN KEY (folder_id) REFERENCES folders(id) ON DELETE SET NULL
		);

		CREATE INDEX IF NOT EXISTS idx_bookmarks_folder_id ON bookmarks(folder_id);
		CREATE INDEX IF NOT EXISTS idx_bookmarks_url ON bookmarks(url);

		INSERT OR REPLACE INTO schema_version (version) VALUES (1);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Load reads the store from the SQLite database.
func (s *SQLiteStorage) Load() (*model.Store, error) {
	store := model.NewStore()

	rows, err := s.db.Query(`
		SELECT id, name, parent_id
		FROM folders
		ORDER BY position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var f model.Folder
		var parentID sql.NullString

		if err := rows.Scan(&f.ID, &f.Name, &parentID); err != nil {
			return nil, err
		}
		if parentID.Valid {
			f.ParentID = &parentID.String
		}

		store.Folders = append(store.Folders, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.db.Query(`
		SELECT id, title, url, folder_id, created_at, visited_at
		FROM bookmarks
		ORDER BY position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var b model.Bookmark
		var folderID sql.NullString
		var createdAtStr string
		var visitedAtStr sql.NullString

		if err := rows.Scan(&b.ID, &b.Title, &b.URL, &folderID, &createdAtStr, &visitedAtStr); err != nil {
			return nil, err
		}

		if folderID.Valid {
			b.FolderID = &folderID.String
		}

		b.CreatedAt, _ = time.Parse(time.RFC3339, createdAtStr)

		if visitedAtStr.Valid {
			if t, err := time.Parse(time.RFC3339, visitedAtStr.String); err == nil {
				b.VisitedAt = &t
			}
		}

		store.Bookmarks = append(store.Bookmarks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return store, nil
}

// Save writes the store to the SQLite database.
// Uses a transaction for atomicity - all or nothing.
func (s *SQLiteStorage) Save(store *model.Store) error {
	// Folders may reference parents that haven't been inserted yet.
	// PRAGMA foreign_keys cannot be changed inside a transaction.
	if _, err := s.db.Exec("PRAGMA foreign_keys = OFF"); err != nil {
		return err
	}
	defer func() { _, _ = s.db.Exec("PRAGMA foreign_keys = ON") }()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM bookmarks"); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM folders"); err != nil {
		return err
	}

	folderStmt, err := tx.Prepare(`
		INSERT INTO folders (id, name, parent_id, position)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer folderStmt.Close()

	for i, f := range store.Folders {
		if _, err := folderStmt.Exec(f.ID, f.Name, f.ParentID, i); err != nil {
			return fmt.Errorf("insert folder %s: %w", f.ID, err)
		}
	}

	bookmarkStmt, err := tx.Prepare(`
		INSERT INTO bookmarks (id, title, url, folder_id, position, created_at, visited_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer bookmarkStmt.Close()

	for i, b := range store.Bookmarks {
		var visitedAt *string
		if b.VisitedAt != nil {
			v := b.VisitedAt.Format(time.RFC3339)
			visitedAt = &v
		}

		if _, err := bookmarkStmt.Exec(
			b.ID, b.Title, b.URL, b.FolderID, i,
			b.CreatedAt.Format(time.RFC3339), visitedAt,
		); err != nil {
			return fmt.Errorf("insert bookmark %s: %w", b.ID, err)
		}
	}

	return tx.Commit()
}
