// Package parquet reads and writes the columnar files used for squads, lineups and run history.
package parquet

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/lineup/schema"
	"github.com/parquet-go/parquet-go"
)

// LineupRun represents the schema for the lineup_runs table
type LineupRun struct {
	RunID               int64      `parquet:"run_id"`
	RunUUID             string     `parquet:"run_uuid,snappy"`
	Source              string     `parquet:"source,snappy"`
	StartTime           time.Time  `parquet:"start_time"`
	EndTime             *time.Time `parquet:"end_time,optional"`
	RunDurationMs       *int32     `parquet:"run_duration_ms,optional"`
	TotalPlayers        int32      `parquet:"total_players"`
	TotalPositions      int32      `parquet:"total_positions"`
	TotalScore          *float64   `parquet:"total_score,optional"`
	UnassignedPlayers   int32      `parquet:"unassigned_players"`
	UnassignedPositions int32      `parquet:"unassigned_positions"`
	ConfigParams        *string    `parquet:"config_params,optional,snappy"`
}

// LineupAssignment represents the schema for the lineup_assignments table
type LineupAssignment struct {
	RunID         int64   `parquet:"run_id"`
	Player        string  `parquet:"player,snappy"`
	Position      string  `parquet:"position,snappy"`
	PlayerIndex   int32   `parquet:"player_index"`
	PositionIndex int32   `parquet:"position_index"`
	Score         float64 `parquet:"score"`
}

// SquadRow is one player of a squad file with the default per-90 stat columns.
type SquadRow struct {
	Player         string  `parquet:"player,snappy"`
	XGP90          float64 `parquet:"xg_p90"`
	XAP90          float64 `parquet:"xa_p90"`
	ProgCarriesP90 float64 `parquet:"prog_carries_p90"`
	ProgPassesP90  float64 `parquet:"prog_passes_p90"`
}

// AssignmentRow is one assigned pair of a solved lineup.
type AssignmentRow struct {
	Source        string  `parquet:"source,snappy"`
	Player        string  `parquet:"player,snappy"`
	Position      string  `parquet:"position,snappy"`
	PlayerIndex   int32   `parquet:"player_index"`
	PositionIndex int32   `parquet:"position_index"`
	Score         float64 `parquet:"score"`
	Label         string  `parquet:"label,snappy"`
}

// MatrixCell is one cell of a fitness matrix in long format.
type MatrixCell struct {
	Player   string  `parquet:"player,snappy"`
	Position string  `parquet:"position,snappy"`
	Score    float64 `parquet:"score"`
}

// RoleRow is one role rating of a player.
type RoleRow struct {
	Player string  `parquet:"player,snappy"`
	Role   string  `parquet:"role,snappy"`
	Score  float64 `parquet:"score"`
	Best   bool    `parquet:"best"`
}

// writeRows writes all rows to a new file at outputPath.
func writeRows[T any](rows []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if len(rows) > 0 {
		if _, err := writer.Write(rows); err != nil {
			_ = writer.Close()
			return fmt.Errorf("failed to write rows: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// readRows reads every row of the file at path.
func readRows[T any](path string) ([]T, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[T](file)
	defer func() { _ = reader.Close() }()

	rows := make([]T, reader.NumRows())
	if len(rows) == 0 {
		return rows, nil
	}
	total := 0
	for total < len(rows) {
		n, err := reader.Read(rows[total:])
		total += n
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read rows from %s: %w", path, err)
		}
		if n == 0 {
			break
		}
	}
	return rows[:total], nil
}

// WriteLineupRunsParquet writes run history to a Parquet file.
func WriteLineupRunsParquet(data []LineupRun, outputPath string) error {
	return writeRows(data, outputPath)
}

// WriteLineupAssignmentsParquet writes assignment history to a Parquet file.
func WriteLineupAssignmentsParquet(data []LineupAssignment, outputPath string) error {
	return writeRows(data, outputPath)
}

// WriteAssignmentsParquet writes the pairs of solved lineups.
func WriteAssignmentsParquet(data []AssignmentRow, outputPath string) error {
	return writeRows(data, outputPath)
}

// WriteMatrixParquet writes a fitness matrix in long format.
func WriteMatrixParquet(data []MatrixCell, outputPath string) error {
	return writeRows(data, outputPath)
}

// WriteRolesParquet writes role ratings.
func WriteRolesParquet(data []RoleRow, outputPath string) error {
	return writeRows(data, outputPath)
}

// WriteSquadParquet writes squad rows.
func WriteSquadParquet(data []SquadRow, outputPath string) error {
	return writeRows(data, outputPath)
}

// ReadSquadParquet reads squad rows from a Parquet file.
func ReadSquadParquet(path string) ([]SquadRow, error) {
	return readRows[SquadRow](path)
}

// ReadTable reads a flat Parquet file with whatever columns it has.
// The header holds the leaf column paths joined by dots, and each row holds one
// string per column. Null values are returned as empty strings.
func ReadTable(path string) ([]string, [][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to stat parquet file: %w", err)
	}
	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open parquet file %s: %w", path, err)
	}

	columns := pf.Schema().Columns()
	header := make([]string, len(columns))
	for i, col := range columns {
		header[i] = strings.Join(col, ".")
	}

	var table [][]string
	buf := make([]parquet.Row, 128)
	for _, group := range pf.RowGroups() {
		rows := group.Rows()
		for {
			n, err := rows.ReadRows(buf)
			for _, row := range buf[:n] {
				cells := make([]string, len(header))
				for _, v := range row {
					if c := v.Column(); c >= 0 && c < len(cells) {
						cells[c] = cellString(v)
					}
				}
				table = append(table, cells)
			}
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				_ = rows.Close()
				return nil, nil, fmt.Errorf("failed to read rows from %s: %w", path, err)
			}
			if n == 0 {
				break
			}
		}
		_ = rows.Close()
	}
	return header, table, nil
}

func cellString(v parquet.Value) string {
	if v.IsNull() {
		return ""
	}
	switch v.Kind() {
	case parquet.Boolean:
		return strconv.FormatBool(v.Boolean())
	case parquet.Int32:
		return strconv.FormatInt(int64(v.Int32()), 10)
	case parquet.Int64:
		return strconv.FormatInt(v.Int64(), 10)
	case parquet.Float:
		return strconv.FormatFloat(float64(v.Float()), 'g', -1, 32)
	case parquet.Double:
		return strconv.FormatFloat(v.Double(), 'g', -1, 64)
	default:
		return string(v.ByteArray())
	}
}

// ReadAssignmentsParquet reads solved lineup pairs.
func ReadAssignmentsParquet(path string) ([]AssignmentRow, error) {
	return readRows[AssignmentRow](path)
}

// ReadLineupRunsParquet reads exported run history.
func ReadLineupRunsParquet(path string) ([]LineupRun, error) {
	return readRows[LineupRun](path)
}

// ReadLineupAssignmentsParquet reads exported assignment history.
func ReadLineupAssignmentsParquet(path string) ([]LineupAssignment, error) {
	return readRows[LineupAssignment](path)
}

// SquadRows converts a squad to rows. Stats outside the default columns are dropped.
func SquadRows(squad schema.Squad) []SquadRow {
	rows := make([]SquadRow, 0, len(squad.Players))
	for _, p := range squad.Players {
		row := SquadRow{Player: p.Name}
		for i, stat := range squad.Stats {
			if i >= len(p.Rates) {
				break
			}
			switch stat {
			case schema.StatXG:
				row.XGP90 = p.Rates[i]
			case schema.StatXA:
				row.XAP90 = p.Rates[i]
			case schema.StatProgCarries:
				row.ProgCarriesP90 = p.Rates[i]
			case schema.StatProgPasses:
				row.ProgPassesP90 = p.Rates[i]
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// ConvertRunRecords converts history rows to the Parquet schema.
func ConvertRunRecords(records []schema.RunRecord) []LineupRun {
	result := make([]LineupRun, len(records))
	for i, r := range records {
		result[i] = LineupRun{
			RunID:               r.RunID,
			RunUUID:             r.RunUUID,
			Source:              r.Source,
			StartTime:           r.StartTime,
			EndTime:             r.EndTime,
			RunDurationMs:       r.RunDurationMs,
			TotalPlayers:        r.TotalPlayers,
			TotalPositions:      r.TotalPositions,
			TotalScore:          r.TotalScore,
			UnassignedPlayers:   r.UnassignedPlayers,
			UnassignedPositions: r.UnassignedPositions,
			ConfigParams:        r.ConfigParams,
		}
	}
	return result
}

// ConvertAssignmentRecords converts assignment rows to the Parquet schema.
func ConvertAssignmentRecords(records []schema.AssignmentRecord) []LineupAssignment {
	result := make([]LineupAssignment, len(records))
	for i, r := range records {
		result[i] = LineupAssignment(r)
	}
	return result
}
