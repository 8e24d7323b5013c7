package core

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/huangsam/lineup/core/algo"
	"github.com/huangsam/lineup/internal/contract"
	"github.com/huangsam/lineup/internal/parquet"
	"github.com/huangsam/lineup/schema"
)

// playerColumns are the accepted headers of the player name column.
var playerColumns = []string{"player", "name"}

// LoadSquad reads a squad table from a CSV or Parquet file, chosen by extension.
// Only the columns in stats are kept, in that order. Both formats are matched by
// column name, so a Parquet file may carry any subset of stats.
func LoadSquad(path string, stats []schema.StatKey, fillMissing bool) (schema.Squad, error) {
	if strings.EqualFold(filepath.Ext(path), ".parquet") {
		header, rows, err := parquet.ReadTable(path)
		if err != nil {
			return schema.Squad{}, err
		}
		if len(header) == 0 {
			return schema.Squad{}, fmt.Errorf("%w: squad file is empty", algo.ErrInvalidInput)
		}
		next := 0
		return readSquadTable(header, func() ([]string, error) {
			if next >= len(rows) {
				return nil, io.EOF
			}
			next++
			return rows[next-1], nil
		}, stats, fillMissing)
	}

	file, err := os.Open(path)
	if err != nil {
		return schema.Squad{}, fmt.Errorf("failed to open squad file: %w", err)
	}
	defer func() { _ = file.Close() }()
	return ReadSquadCSV(file, stats, fillMissing)
}

// ReadSquadCSV reads a squad table with a header row.
// Headers are matched case-insensitively, so "xG_p90" selects xg_p90.
func ReadSquadCSV(r io.Reader, stats []schema.StatKey, fillMissing bool) (schema.Squad, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return schema.Squad{}, fmt.Errorf("%w: squad file is empty", algo.ErrInvalidInput)
	}
	if err != nil {
		return schema.Squad{}, fmt.Errorf("failed to read squad header: %w", err)
	}

	return readSquadTable(header, reader.Read, stats, fillMissing)
}

// readSquadTable maps header columns to stats and collects one record per row.
// Only cells that are present and non-empty reach BuildSquad, which applies the
// fill-missing rule.
func readSquadTable(header []string, next func() ([]string, error), stats []schema.StatKey, fillMissing bool) (schema.Squad, error) {
	nameCol := -1
	columns := make(map[schema.StatKey]int, len(header))
	for i, h := range header {
		key := schema.NormalizeStatKey(h)
		if nameCol < 0 && isPlayerColumn(string(key)) {
			nameCol = i
			continue
		}
		if _, dup := columns[key]; !dup {
			columns[key] = i
		}
	}
	if nameCol < 0 {
		return schema.Squad{}, fmt.Errorf("%w: squad file needs a player or name column", algo.ErrInvalidInput)
	}

	var records []schema.PlayerRecord
	for line := 2; ; line++ {
		row, err := next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return schema.Squad{}, fmt.Errorf("failed to read squad row %d: %w", line, err)
		}
		if nameCol >= len(row) || strings.TrimSpace(row[nameCol]) == "" {
			return schema.Squad{}, fmt.Errorf("%w: row %d has no player name", algo.ErrInvalidInput, line)
		}

		rec := schema.PlayerRecord{Name: strings.TrimSpace(row[nameCol]), Stats: make(map[string]float64, len(stats))}
		for _, stat := range stats {
			col, ok := columns[stat]
			if !ok || col >= len(row) || strings.TrimSpace(row[col]) == "" {
				continue
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(row[col]), 64)
			if err != nil {
				return schema.Squad{}, fmt.Errorf("%w: row %d column %s: %q is not a number", algo.ErrInvalidInput, line, stat, row[col])
			}
			rec.Stats[string(stat)] = v
		}
		records = append(records, rec)
	}

	return BuildSquad(stats, records, fillMissing)
}

func isPlayerColumn(header string) bool {
	for _, c := range playerColumns {
		if header == c {
			return true
		}
	}
	return false
}

// BuildSquad arranges loosely keyed records into a Squad over the given stat set.
// Missing values are an error unless fillMissing is set, in which case they become 0
// and one warning is logged per stat.
func BuildSquad(stats []schema.StatKey, records []schema.PlayerRecord, fillMissing bool) (schema.Squad, error) {
	squad := schema.Squad{
		Stats:   append([]schema.StatKey(nil), stats...),
		Players: make([]schema.Player, 0, len(records)),
	}
	filled := make(map[schema.StatKey]int)

	for _, rec := range records {
		lookup := make(map[schema.StatKey]float64, len(rec.Stats))
		for k, v := range rec.Stats {
			lookup[schema.NormalizeStatKey(k)] = v
		}

		rates := make([]float64, len(stats))
		for j, stat := range stats {
			v, ok := lookup[stat]
			if !ok {
				if !fillMissing {
					return schema.Squad{}, fmt.Errorf("%w: player %q is missing %s (use --fill-missing to treat it as 0)", algo.ErrInvalidInput, rec.Name, stat)
				}
				filled[stat]++
				continue
			}
			rates[j] = v
		}
		squad.Players = append(squad.Players, schema.Player{Name: rec.Name, Rates: rates})
	}

	for _, stat := range stats {
		if n := filled[stat]; n > 0 {
			contract.LogWarn(fmt.Sprintf("Filled %d missing %s values with 0", n, stat), nil)
		}
	}
	return squad, nil
}

// LoadMatrix reads a fitness matrix from a JSON or CSV file, chosen by extension.
//
// The CSV layout is a header of "player" followed by position slots, then one row per
// player. Ragged rows are kept so the solver can report them.
func LoadMatrix(path string) (schema.FitnessMatrix, error) {
	file, err := os.Open(path)
	if err != nil {
		return schema.FitnessMatrix{}, fmt.Errorf("failed to open matrix file: %w", err)
	}
	defer func() { _ = file.Close() }()

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ReadMatrixJSON(file)
	}
	return ReadMatrixCSV(file)
}

// ReadMatrixJSON decodes {"players":[],"positions":[],"scores":[[]]}.
// A null cell is rejected rather than read as zero.
func ReadMatrixJSON(r io.Reader) (schema.FitnessMatrix, error) {
	var raw struct {
		Players   []string     `json:"players"`
		Positions []string     `json:"positions"`
		Scores    [][]*float64 `json:"scores"`
	}
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&raw); err != nil {
		return schema.FitnessMatrix{}, fmt.Errorf("%w: failed to decode matrix JSON: %v", algo.ErrInvalidMatrix, err)
	}

	m := schema.FitnessMatrix{Players: raw.Players, Positions: raw.Positions}
	if raw.Scores != nil {
		m.Scores = make([][]float64, len(raw.Scores))
	}
	for i, row := range raw.Scores {
		m.Scores[i] = make([]float64, len(row))
		for j, cell := range row {
			if cell == nil {
				return schema.FitnessMatrix{}, fmt.Errorf("%w: score at (%d, %d) is null", algo.ErrInvalidMatrix, i, j)
			}
			m.Scores[i][j] = *cell
		}
	}
	return m, nil
}

// ReadMatrixCSV reads a labelled matrix in the layout written by the CSV matrix output.
func ReadMatrixCSV(r io.Reader) (schema.FitnessMatrix, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return schema.FitnessMatrix{}, nil
	}
	if err != nil {
		return schema.FitnessMatrix{}, fmt.Errorf("failed to read matrix header: %w", err)
	}
	if len(header) < 1 {
		return schema.FitnessMatrix{}, fmt.Errorf("%w: matrix header is empty", algo.ErrInvalidMatrix)
	}

	m := schema.FitnessMatrix{
		Positions: make([]string, 0, len(header)-1),
	}
	for _, h := range header[1:] {
		m.Positions = append(m.Positions, strings.TrimSpace(h))
	}

	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return schema.FitnessMatrix{}, fmt.Errorf("failed to read matrix row %d: %w", line, err)
		}
		scores := make([]float64, 0, len(row)-1)
		for _, cell := range row[1:] {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return schema.FitnessMatrix{}, fmt.Errorf("%w: row %d: %q is not a number", algo.ErrInvalidMatrix, line, cell)
			}
			scores = append(scores, v)
		}
		m.Players = append(m.Players, strings.TrimSpace(row[0]))
		m.Scores = append(m.Scores, scores)
	}
	return m, nil
}
