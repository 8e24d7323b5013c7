// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/huangsam/lineup/internal/contract"
	"github.com/huangsam/lineup/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteLineup prints a solved lineup using the configured output format.
func (ow *OutWriter) WriteLineup(result *schema.LineupResult, cfg *contract.Config, duration time.Duration) error {
	return WriteLineupResult(result, cfg, duration)
}

// WriteMatrix prints a fitness matrix using the configured output format.
func (ow *OutWriter) WriteMatrix(m schema.FitnessMatrix, cfg *contract.Config, duration time.Duration) error {
	return WriteMatrixResult(m, cfg, duration)
}

// WriteRoles prints role analysis results using the configured output format.
func (ow *OutWriter) WriteRoles(fits []schema.RoleFit, cfg *contract.Config, duration time.Duration) error {
	return WriteRoleResults(fits, cfg, duration)
}

// WriteBatch prints batch results using the configured output format.
func (ow *OutWriter) WriteBatch(items []schema.BatchItem, cfg *contract.Config, duration time.Duration) error {
	return WriteBatchResults(items, cfg, duration)
}

// WriteSquad prints a squad table using the configured output format.
func (ow *OutWriter) WriteSquad(squad schema.Squad, cfg *contract.Config) error {
	return WriteSquadTable(squad, cfg)
}

// WritePositions prints the active stats, formation and roles.
func (ow *OutWriter) WritePositions(cfg *contract.Config) error {
	return WritePositionDefinitions(cfg)
}
