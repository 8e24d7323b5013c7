package iocache

import (
	"fmt"
	"os"
	"sync"

	"github.com/huangsam/lineup/internal/contract"
	"github.com/huangsam/lineup/schema"
)

// solutionTable is the name of the table for solved assignments.
const solutionTable = "solution_cache"

// Global Manager instance for main logic.
var (
	Manager   = &CacheStoreManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// InitStores initializes the global manager with the solution cache and the history store.
// An empty backend leaves the corresponding store unset.
func InitStores(cacheBackend schema.DatabaseBackend, cacheConnStr string, historyBackend schema.DatabaseBackend, historyConnStr string) error {
	var initErr error

	initOnce.Do(func() {
		var solutions contract.CacheStore
		if cacheBackend != "" {
			store, err := NewCacheStore(solutionTable, cacheBackend, cacheConnStr)
			if err != nil {
				initErr = err
				return
			}
			solutions = store
		}

		var history contract.HistoryStore
		if historyBackend != "" {
			store, err := NewHistoryStore(historyBackend, historyConnStr)
			if err != nil {
				if solutions != nil {
					_ = solutions.Close()
				}
				initErr = err
				return
			}
			history = store
		}

		Manager.Lock()
		Manager.solutions = solutions
		Manager.history = history
		Manager.Unlock()
	})

	return initErr
}

// CloseStores should be called on application shutdown.
func CloseStores() {
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.solutions != nil {
			_ = Manager.solutions.Close()
		}
		if Manager.history != nil {
			_ = Manager.history.Close()
		}
	})
}

// ClearCache clears the solution cache for the specified backend.
// For SQLite, it deletes the database file.
// For SQL backends (MySQL/PostgreSQL), it drops the table.
func ClearCache(backend schema.DatabaseBackend, connStr string) error {
	if backend == schema.SQLiteBackend {
		return removeSQLiteFile(connStr, contract.GetCacheDBFilePath())
	}
	return dropTables(backend, connStr, solutionTable)
}

// ClearHistory clears the run history for the specified backend.
func ClearHistory(backend schema.DatabaseBackend, connStr string) error {
	if backend == schema.SQLiteBackend {
		return removeSQLiteFile(connStr, contract.GetHistoryDBFilePath())
	}
	return dropTables(backend, connStr, assignmentsTable, runsTable, "schema_migrations")
}

func removeSQLiteFile(path, defaultPath string) error {
	if path == "" {
		path = defaultPath
	}
	if path == ":memory:" {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove SQLite database file %s: %w", path, err)
	}
	return nil
}

// dropTables connects to the SQL database and drops every table that exists.
func dropTables(backend schema.DatabaseBackend, connStr string, tables ...string) error {
	switch backend {
	case schema.NoneBackend:
		return nil
	case schema.MySQLBackend, schema.PostgreSQLBackend:
	default:
		return fmt.Errorf("unsupported backend for clearing: %s", backend)
	}

	db, err := openDB(backend, connStr, "")
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	for _, table := range tables {
		query := fmt.Sprintf("DROP TABLE IF EXISTS %s", quoteTableName(table, backend))
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}
	return nil
}
