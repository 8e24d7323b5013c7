package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/huangsam/lineup/internal/contract"
	"github.com/huangsam/lineup/internal/parquet"
	"github.com/huangsam/lineup/schema"
)

// WriteMatrixResult outputs a fitness matrix, dispatching based on the output format configured.
// The CSV form is the same layout the solve command reads back.
func WriteMatrixResult(m schema.FitnessMatrix, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, m)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMatrixCSV(w, m, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return writeParquetFile(cfg.OutputFile, func(path string) error {
			return parquet.WriteMatrixParquet(matrixCells(m), path)
		})
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			if err := writeMatrixTable(w, m, cfg, fmtFloat); err != nil {
				return err
			}
			_, err := fmt.Fprintf(w, "Scored %d players for %d positions in %v\n", m.Rows(), m.Cols(), duration)
			return err
		}, "Wrote table")
	}
}

// writeMatrixTable writes players as rows and positions as columns.
func writeMatrixTable(w io.Writer, m schema.FitnessMatrix, cfg *contract.Config, fmtFloat func(float64) string) error {
	headers := append([]string{"Player"}, m.Positions...)
	nameWidth := GetMaxTableNameWidth(cfg, len(m.Positions))

	data := make([][]string, 0, len(m.Scores))
	for i, row := range m.Scores {
		name := ""
		if i < len(m.Players) {
			name = m.Players[i]
		}
		rec := []string{contract.TruncateName(name, nameWidth)}
		for _, v := range row {
			rec = append(rec, fmtFloat(v))
		}
		data = append(data, rec)
	}
	return writeTable(w, headers, data)
}

// writeMatrixCSV writes a header of "player" plus slots, then one row per player.
func writeMatrixCSV(w io.Writer, m schema.FitnessMatrix, fmtFloat func(float64) string) error {
	header := append([]string{"player"}, m.Positions...)
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, row := range m.Scores {
			rec := []string{m.Players[i]}
			for _, v := range row {
				rec = append(rec, fmtFloat(v))
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// matrixCells flattens a matrix into long-format parquet rows.
func matrixCells(m schema.FitnessMatrix) []parquet.MatrixCell {
	cells := make([]parquet.MatrixCell, 0, m.Rows()*m.Cols())
	for i, row := range m.Scores {
		for j, v := range row {
			cells = append(cells, parquet.MatrixCell{Player: m.Players[i], Position: m.Positions[j], Score: v})
		}
	}
	return cells
}
