package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/lineup/core/algo"
	"github.com/huangsam/lineup/internal/contract"
	"github.com/huangsam/lineup/internal/parquet"
	"github.com/huangsam/lineup/schema"
)

// WriteLineupResult outputs a solved lineup, dispatching based on the output format configured.
func WriteLineupResult(result *schema.LineupResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeLineupJSON(w, result, cfg)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeLineupCSV(w, result, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return writeParquetFile(cfg.OutputFile, func(path string) error {
			return parquet.WriteAssignmentsParquet(assignmentRows(result), path)
		})
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			if err := writeLineupTable(w, result, cfg, fmtFloat, duration); err != nil {
				return err
			}
			if cfg.Detail {
				return writeMatrixTable(w, result.Matrix, cfg, fmtFloat)
			}
			return nil
		}, "Wrote table")
	}
}

// writeLineupTable generates and writes the human-readable lineup in formation order.
func writeLineupTable(w io.Writer, result *schema.LineupResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	a := result.Assignment
	nameWidth := GetMaxTableNameWidth(cfg, 3)

	var data [][]string
	for _, p := range algo.PairsByPosition(a.Pairs) {
		data = append(data, []string{
			p.Position,
			contract.TruncateName(p.Player, nameWidth),
			fmtFloat(p.Score),
			fitLabel(cfg, p.Score),
		})
	}
	for _, pos := range a.UnassignedPositions {
		data = append(data, []string{pos, "-", "-", "-"})
	}
	if err := writeTable(w, []string{"Position", "Player", "Fit", "Label"}, data); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "Total fit: %s  Efficiency: %s%%\n", fmtFloat(a.Total), fmtFloat(a.Efficiency()*100)); err != nil {
		return err
	}
	if len(a.UnassignedPlayers) > 0 {
		if _, err := fmt.Fprintf(w, "Bench: %s\n", strings.Join(a.UnassignedPlayers, ", ")); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "Solved %s in %v (cached: %t). Cache backend: %s\n", result.Source, duration, result.Cached, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}

// writeLineupCSV writes one row per pair, then one row per unfilled position or benched player.
func writeLineupCSV(w io.Writer, result *schema.LineupResult, fmtFloat func(float64) string) error {
	header := []string{"position", "player", "score", "label", "position_index", "player_index"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		a := result.Assignment
		for _, p := range algo.PairsByPosition(a.Pairs) {
			rec := []string{
				p.Position,
				p.Player,
				fmtFloat(p.Score),
				contract.GetPlainLabel(p.Score),
				strconv.Itoa(p.PositionIndex),
				strconv.Itoa(p.PlayerIndex),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		for _, pos := range a.UnassignedPositions {
			if err := cw.Write([]string{pos, "", "", "", "", ""}); err != nil {
				return err
			}
		}
		for _, player := range a.UnassignedPlayers {
			if err := cw.Write([]string{"", player, "", "", "", ""}); err != nil {
				return err
			}
		}
		return nil
	})
}

// jsonPair is a Pair with its label.
type jsonPair struct {
	schema.Pair
	Label string `json:"label"`
}

// jsonLineup is the JSON shape of a solved lineup.
type jsonLineup struct {
	RunID               string                `json:"run_id"`
	Source              string                `json:"source"`
	Cached              bool                  `json:"cached"`
	Total               float64               `json:"total"`
	Efficiency          float64               `json:"efficiency"`
	Pairs               []jsonPair            `json:"pairs"`
	UnassignedPlayers   []string              `json:"unassigned_players"`
	UnassignedPositions []string              `json:"unassigned_positions"`
	Matrix              *schema.FitnessMatrix `json:"matrix,omitempty"`
}

// toJSONLineup converts a result to its JSON shape. The matrix is only included with detail.
func toJSONLineup(result *schema.LineupResult, detail bool) jsonLineup {
	a := result.Assignment
	out := jsonLineup{
		RunID:               result.RunID,
		Source:              result.Source,
		Cached:              result.Cached,
		Total:               a.Total,
		Efficiency:          a.Efficiency(),
		Pairs:               make([]jsonPair, len(a.Pairs)),
		UnassignedPlayers:   nonNil(a.UnassignedPlayers),
		UnassignedPositions: nonNil(a.UnassignedPositions),
	}
	for i, p := range a.Pairs {
		out.Pairs[i] = jsonPair{Pair: p, Label: contract.GetPlainLabel(p.Score)}
	}
	if detail {
		m := result.Matrix
		out.Matrix = &m
	}
	return out
}

// writeLineupJSON writes the lineup in JSON format.
func writeLineupJSON(w io.Writer, result *schema.LineupResult, cfg *contract.Config) error {
	return writeJSON(w, toJSONLineup(result, cfg.Detail))
}

// assignmentRows converts a lineup to parquet rows.
func assignmentRows(result *schema.LineupResult) []parquet.AssignmentRow {
	rows := make([]parquet.AssignmentRow, 0, len(result.Assignment.Pairs))
	for _, p := range result.Assignment.Pairs {
		rows = append(rows, parquet.AssignmentRow{
			Source:        result.Source,
			Player:        p.Player,
			Position:      p.Position,
			PlayerIndex:   int32(p.PlayerIndex),
			PositionIndex: int32(p.PositionIndex),
			Score:         p.Score,
			Label:         contract.GetPlainLabel(p.Score),
		})
	}
	return rows
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
