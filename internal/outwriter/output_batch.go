package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/lineup/internal/contract"
	"github.com/huangsam/lineup/internal/parquet"
	"github.com/huangsam/lineup/schema"
)

// WriteBatchResults outputs a batch summary, dispatching based on the output format configured.
func WriteBatchResults(items []schema.BatchItem, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeBatchJSON(w, items, cfg)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeBatchCSV(w, items, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return writeParquetFile(cfg.OutputFile, func(path string) error {
			var rows []parquet.AssignmentRow
			for _, item := range items {
				if item.Lineup != nil {
					rows = append(rows, assignmentRows(item.Lineup)...)
				}
			}
			return parquet.WriteAssignmentsParquet(rows, path)
		})
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeBatchTable(w, items, cfg, fmtFloat, duration)
		}, "Wrote table")
	}
}

// writeBatchTable writes one summary row per squad, in input order.
func writeBatchTable(w io.Writer, items []schema.BatchItem, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	nameWidth := GetMaxTableNameWidth(cfg, 5)
	data := make([][]string, 0, len(items))
	failed := 0
	for _, item := range items {
		source := contract.TruncateName(item.Source, nameWidth)
		if item.Lineup == nil {
			failed++
			data = append(data, []string{source, "-", "-", "-", "-", contract.TruncateName(item.Err, nameWidth)})
			continue
		}
		a := item.Lineup.Assignment
		data = append(data, []string{
			source,
			fmtFloat(a.Total),
			fmtFloat(a.Efficiency() * 100),
			strconv.Itoa(len(a.Pairs)),
			strconv.FormatBool(item.Lineup.Cached),
			"",
		})
	}
	if err := writeTable(w, []string{"Squad", "Total", "Eff %", "Filled", "Cached", "Error"}, data); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Optimized %d squads (%d failed) in %v with %d workers\n", len(items), failed, duration, cfg.Workers)
	return err
}

// writeBatchCSV writes the batch summary in CSV format.
func writeBatchCSV(w io.Writer, items []schema.BatchItem, fmtFloat func(float64) string) error {
	header := []string{"source", "total", "efficiency", "filled", "unassigned_positions", "cached", "error"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, item := range items {
			rec := []string{item.Source, "", "", "", "", "", item.Err}
			if item.Lineup != nil {
				a := item.Lineup.Assignment
				rec = []string{
					item.Source,
					fmtFloat(a.Total),
					fmtFloat(a.Efficiency()),
					strconv.Itoa(len(a.Pairs)),
					strconv.Itoa(len(a.UnassignedPositions)),
					strconv.FormatBool(item.Lineup.Cached),
					"",
				}
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeBatchJSON writes every item, with full lineups for the squads that solved.
func writeBatchJSON(w io.Writer, items []schema.BatchItem, cfg *contract.Config) error {
	type jsonBatchItem struct {
		Source string      `json:"source"`
		Lineup *jsonLineup `json:"lineup,omitempty"`
		Err    string      `json:"error,omitempty"`
	}
	output := make([]jsonBatchItem, len(items))
	for i, item := range items {
		output[i] = jsonBatchItem{Source: item.Source, Err: item.Err}
		if item.Lineup != nil {
			lineup := toJSONLineup(item.Lineup, cfg.Detail)
			output[i].Lineup = &lineup
		}
	}
	return writeJSON(w, output)
}
