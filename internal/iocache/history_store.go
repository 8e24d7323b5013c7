package iocache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/huangsam/lineup/internal/contract"
	"github.com/huangsam/lineup/schema"
)

// Table names for run history.
const (
	runsTable        = "lineup_runs"
	assignmentsTable = "lineup_assignments"
)

// HistoryStoreImpl implements the HistoryStore interface.
type HistoryStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.HistoryStore = &HistoryStoreImpl{} // Compile-time check

// NewHistoryStore creates a new HistoryStore with the specified backend.
func NewHistoryStore(backend schema.DatabaseBackend, connStr string) (contract.HistoryStore, error) {
	if backend == schema.NoneBackend {
		// Return a no-op store for disabled tracking
		return &HistoryStoreImpl{backend: backend}, nil
	}

	db, err := openDB(backend, connStr, contract.GetHistoryDBFilePath())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize history store: %w", err)
	}

	if err := createHistoryTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create history tables: %w", err)
	}

	return &HistoryStoreImpl{db: db, backend: backend}, nil
}

// createHistoryTables creates the run tracking tables.
func createHistoryTables(db *sql.DB, backend schema.DatabaseBackend) error {
	tables := []struct {
		name  string
		query string
	}{
		{runsTable, getCreateRunsQuery(backend)},
		{assignmentsTable, getCreateAssignmentsQuery(backend)},
	}
	for _, table := range tables {
		if _, err := db.Exec(table.query); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}
	return nil
}

// getCreateRunsQuery returns the CREATE TABLE query for lineup_runs.
func getCreateRunsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(runsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				run_uuid CHAR(36) NOT NULL,
				source VARCHAR(512) NOT NULL,
				start_time DATETIME(6) NOT NULL,
				end_time DATETIME(6),
				run_duration_ms INT,
				total_players INT NOT NULL DEFAULT 0,
				total_positions INT NOT NULL DEFAULT 0,
				total_score DOUBLE,
				unassigned_players INT NOT NULL DEFAULT 0,
				unassigned_positions INT NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGSERIAL PRIMARY KEY,
				run_uuid TEXT NOT NULL,
				source TEXT NOT NULL,
				start_time TIMESTAMPTZ NOT NULL,
				end_time TIMESTAMPTZ,
				run_duration_ms INT,
				total_players INT NOT NULL DEFAULT 0,
				total_positions INT NOT NULL DEFAULT 0,
				total_score DOUBLE PRECISION,
				unassigned_players INT NOT NULL DEFAULT 0,
				unassigned_positions INT NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER PRIMARY KEY AUTOINCREMENT,
				run_uuid TEXT NOT NULL,
				source TEXT NOT NULL,
				start_time TEXT NOT NULL,
				end_time TEXT,
				run_duration_ms INTEGER,
				total_players INTEGER NOT NULL DEFAULT 0,
				total_positions INTEGER NOT NULL DEFAULT 0,
				total_score REAL,
				unassigned_players INTEGER NOT NULL DEFAULT 0,
				unassigned_positions INTEGER NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quotedTableName)
	}
}

// getCreateAssignmentsQuery returns the CREATE TABLE query for lineup_assignments.
func getCreateAssignmentsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(assignmentsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				player VARCHAR(255) NOT NULL,
				position VARCHAR(64) NOT NULL,
				player_index INT NOT NULL,
				position_index INT NOT NULL,
				score DOUBLE NOT NULL,
				PRIMARY KEY (run_id, player_index)
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				player TEXT NOT NULL,
				position TEXT NOT NULL,
				player_index INT NOT NULL,
				position_index INT NOT NULL,
				score DOUBLE PRECISION NOT NULL,
				PRIMARY KEY (run_id, player_index)
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER NOT NULL,
				player TEXT NOT NULL,
				position TEXT NOT NULL,
				player_index INTEGER NOT NULL,
				position_index INTEGER NOT NULL,
				score REAL NOT NULL,
				PRIMARY KEY (run_id, player_index)
			);
		`, quotedTableName)
	}
}

// BeginRun creates a new run and returns its database ID.
func (hs *HistoryStoreImpl) BeginRun(startTime time.Time, runUUID, source string, configParams map[string]any) (int64, error) {
	if hs.db == nil {
		return 0, nil
	}

	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	quotedTableName := quoteTableName(runsTable, hs.backend)
	args := []any{runUUID, source, formatTime(startTime, hs.backend), string(configJSON)}

	var runID int64
	switch hs.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (run_uuid, source, start_time, config_params) VALUES ($1, $2, $3, $4) RETURNING run_id`, quotedTableName)
		err = hs.db.QueryRow(query, args...).Scan(&runID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (run_uuid, source, start_time, config_params) VALUES (?, ?, ?, ?)`, quotedTableName)
		var result sql.Result
		if result, err = hs.db.Exec(query, args...); err == nil {
			runID, err = result.LastInsertId()
		}
	}
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	return runID, nil
}

// EndRun updates the run with completion data.
func (hs *HistoryStoreImpl) EndRun(runID int64, endTime time.Time, summary contract.RunSummary) error {
	if hs.db == nil {
		return nil
	}

	quotedTableName := quoteTableName(runsTable, hs.backend)

	var start timeScanner
	query := rebind(hs.backend, fmt.Sprintf(`SELECT start_time FROM %s WHERE run_id = ?`, quotedTableName))
	if err := hs.db.QueryRow(query, runID).Scan(&start); err != nil {
		return fmt.Errorf("failed to get start_time for run %d: %w", runID, err)
	}
	durationMs := endTime.Sub(start.Time).Milliseconds()

	update := rebind(hs.backend, fmt.Sprintf(`UPDATE %s SET end_time = ?, run_duration_ms = ?, total_players = ?, total_positions = ?,
		total_score = ?, unassigned_players = ?, unassigned_positions = ? WHERE run_id = ?`, quotedTableName))
	_, err := hs.db.Exec(update,
		formatTime(endTime, hs.backend), durationMs, summary.TotalPlayers, summary.TotalPositions,
		summary.TotalScore, summary.UnassignedPlayers, summary.UnassignedPositions, runID)
	if err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}
	return nil
}

// RecordAssignment stores one player-to-position pair of a run.
func (hs *HistoryStoreImpl) RecordAssignment(runID int64, pair schema.Pair) error {
	if hs.db == nil {
		return nil
	}

	query := rebind(hs.backend, fmt.Sprintf(`INSERT INTO %s (run_id, player, position, player_index, position_index, score)
		VALUES (?, ?, ?, ?, ?, ?)`, quoteTableName(assignmentsTable, hs.backend)))
	_, err := hs.db.Exec(query, runID, pair.Player, pair.Position, pair.PlayerIndex, pair.PositionIndex, pair.Score)
	if err != nil {
		return fmt.Errorf("failed to insert assignment: %w", err)
	}
	return nil
}

// Close closes the underlying connection.
func (hs *HistoryStoreImpl) Close() error {
	if hs.db != nil {
		return hs.db.Close()
	}
	return nil
}

// GetStatus returns status information about the history store.
func (hs *HistoryStoreImpl) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:    string(hs.backend),
		Connected:  hs.db != nil,
		TableSizes: make(map[string]int64),
	}
	if hs.db == nil {
		return status, nil
	}

	quotedRuns := quoteTableName(runsTable, hs.backend)
	if err := hs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", quotedRuns)).Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		var last, oldest timeScanner
		row := hs.db.QueryRow(fmt.Sprintf("SELECT run_id, start_time FROM %s ORDER BY run_id DESC LIMIT 1", quotedRuns))
		if err := row.Scan(&status.LastRunID, &last); err != nil {
			return status, fmt.Errorf("failed to get last run info: %w", err)
		}
		status.LastRunTime = last.Time

		row = hs.db.QueryRow(fmt.Sprintf("SELECT start_time FROM %s ORDER BY run_id ASC LIMIT 1", quotedRuns))
		if err := row.Scan(&oldest); err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}
		status.OldestRunTime = oldest.Time
	}

	for _, table := range []string{runsTable, assignmentsTable} {
		var count int64
		row := hs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, hs.backend)))
		if err := row.Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}
	status.TotalAssignments = int(status.TableSizes[assignmentsTable])
	return status, nil
}

// GetAllRuns retrieves all runs from the store, oldest first.
func (hs *HistoryStoreImpl) GetAllRuns() ([]schema.RunRecord, error) {
	if hs.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, run_uuid, source, start_time, end_time, run_duration_ms, total_players,
		total_positions, total_score, unassigned_players, unassigned_positions, config_params
		FROM %s ORDER BY run_id`, quoteTableName(runsTable, hs.backend))
	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.RunRecord
	for rows.Next() {
		var record schema.RunRecord
		var start, end timeScanner
		var duration sql.NullInt32
		var total sql.NullFloat64
		var params sql.NullString
		if err := rows.Scan(&record.RunID, &record.RunUUID, &record.Source, &start, &end, &duration,
			&record.TotalPlayers, &record.TotalPositions, &total, &record.UnassignedPlayers,
			&record.UnassignedPositions, &params); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		record.StartTime = start.Time
		if end.Valid {
			record.EndTime = &end.Time
		}
		if duration.Valid {
			record.RunDurationMs = &duration.Int32
		}
		if total.Valid {
			record.TotalScore = &total.Float64
		}
		if params.Valid {
			record.ConfigParams = &params.String
		}
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}
	return results, nil
}

// GetAllAssignments retrieves all assignments ordered by run and player.
func (hs *HistoryStoreImpl) GetAllAssignments() ([]schema.AssignmentRecord, error) {
	if hs.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, player, position, player_index, position_index, score
		FROM %s ORDER BY run_id, player_index`, quoteTableName(assignmentsTable, hs.backend))
	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.AssignmentRecord
	for rows.Next() {
		var record schema.AssignmentRecord
		if err := rows.Scan(&record.RunID, &record.Player, &record.Position,
			&record.PlayerIndex, &record.PositionIndex, &record.Score); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignments: %w", err)
	}
	return results, nil
}
