package cmd

import (
	"fmt"
	"os"

	"github.com/huangsam/lineup/internal/contract"
	"github.com/huangsam/lineup/internal/iocache"
	"github.com/huangsam/lineup/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// historyConfig resolves the history backend and connection string from viper.
// An empty backend means history is off.
func historyConfig() (schema.DatabaseBackend, string, error) {
	if err := loadConfigFile(); err != nil {
		return "", "", err
	}
	backend := schema.DatabaseBackend(viper.GetString("history-backend"))
	if backend == "" {
		backend = schema.NoneBackend
	}
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return "", "", fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", backend)
	}
	connStr := viper.GetString("history-db-connect")
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return "", "", err
	}
	return backend, connStr, nil
}

// historySetup opens only the history store.
func historySetup(_ *cobra.Command, _ []string) error {
	backend, connStr, err := historyConfig()
	if err != nil {
		return err
	}
	if err := iocache.InitStores("", "", backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize history: %w", err)
	}
	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	return nil
}

// historyMigrateSetup resolves the history config without opening the store,
// since opening it would create the tables migrations manage.
func historyMigrateSetup(_ *cobra.Command, _ []string) error {
	backend, connStr, err := historyConfig()
	if err != nil {
		return err
	}
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetHistoryDBFilePath()
	}
	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	return nil
}

// historyCmd focused on run history management.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage the run history",
	Long: `Manage the record of past lineup runs.

When --history-backend is set, every solve stores its source, configuration,
timing, total score and the chosen pairs. Matrices that fail validation are not recorded.

Subcommands:
  status  - Show history statistics and connection info
  export  - Write runs and assignments to Parquet files
  clear   - Remove all history data
  migrate - Apply or roll back schema migrations`,
}

// historyStatusCmd shows history status.
var historyStatusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Display history statistics and connection details",
	PreRunE: historySetup,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iocache.Manager.GetHistoryStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
		iocache.PrintHistoryStatus(os.Stdout, status)
	},
}

// historyExportCmd exports history to Parquet.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export run history to Parquet files",
	Long: `Write every stored run and assignment to two Parquet files.
The --output-file value is a prefix; ".lineup_runs.parquet" and
".lineup_assignments.parquet" are appended.

Examples:
  lineup history export --history-backend sqlite --output-file history.parquet`,
	PreRunE: historySetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ExecuteHistoryExport(iocache.Manager.GetHistoryStore(), viper.GetString("output-file"), os.Stdout); err != nil {
			contract.LogFatal("Failed to export history", err)
		}
	},
}

// historyClearCmd clears the history.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all run history",
	Long: `Delete all stored runs and assignments.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the history tables`,
	PreRunE: historySetup,
	Run: func(_ *cobra.Command, _ []string) {
		iocache.CloseStores()
		if err := iocache.ClearHistory(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
			contract.LogFatal("Failed to clear history", err)
		}
		fmt.Println("History cleared successfully.")
	},
}

// historyMigrateCmd runs schema migrations.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply or roll back history schema migrations",
	Long: `Bring the history schema to a given version.

  --target-version -1  migrate to the latest version (default)
  --target-version 0   roll back every migration
  --target-version N   migrate up or down to version N

Examples:
  lineup history migrate --history-backend sqlite
  lineup history migrate --history-backend postgresql --history-db-connect "..." --target-version 0`,
	PreRunE: historyMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		result, err := iocache.MigrateHistory(cfg.HistoryBackend, cfg.HistoryDBConnect, viper.GetInt("target-version"))
		if err != nil {
			contract.LogFatal("Failed to migrate history", err)
		}
		if !result.Changed {
			fmt.Printf("History schema already at version %d.\n", result.ToVersion)
			return
		}
		fmt.Printf("History schema migrated from version %d to %d.\n", result.FromVersion, result.ToVersion)
	},
}
