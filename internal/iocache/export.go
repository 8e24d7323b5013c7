package iocache

import (
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/lineup/internal/contract"
	"github.com/huangsam/lineup/internal/parquet"
)

// ErrNoHistory is returned when an export finds no recorded runs.
var ErrNoHistory = errors.New("no run history found to export")

// ExportPaths returns the two files written for an export prefix.
func ExportPaths(outputFile string) (runsFile, assignmentsFile string) {
	return outputFile + "." + runsTable + ".parquet", outputFile + "." + assignmentsTable + ".parquet"
}

// ExecuteHistoryExport writes all runs and assignments of store to Parquet files
// prefixed by outputFile.
func ExecuteHistoryExport(store contract.HistoryStore, outputFile string, w io.Writer) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("history store is not configured")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalRuns == 0 {
		return ErrNoHistory
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Total runs: %d\n", status.TotalRuns)
	_, _ = fmt.Fprintf(w, "Total assignments: %d\n", status.TotalAssignments)

	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve runs: %w", err)
	}
	assignments, err := store.GetAllAssignments()
	if err != nil {
		return fmt.Errorf("failed to retrieve assignments: %w", err)
	}

	runsFile, assignmentsFile := ExportPaths(outputFile)

	parquetRuns := parquet.ConvertRunRecords(runs)
	if err := parquet.WriteLineupRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write runs: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d runs to: %s\n", len(parquetRuns), runsFile)

	parquetAssignments := parquet.ConvertAssignmentRecords(assignments)
	if err := parquet.WriteLineupAssignmentsParquet(parquetAssignments, assignmentsFile); err != nil {
		return fmt.Errorf("failed to write assignments: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d assignments to: %s\n", len(parquetAssignments), assignmentsFile)
	return nil
}
