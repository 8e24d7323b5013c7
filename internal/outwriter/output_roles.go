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

// WriteRoleResults outputs role analysis results, dispatching based on the output format configured.
func WriteRoleResults(fits []schema.RoleFit, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	roles := schema.Slots(cfg.Roles)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRolesJSON(w, fits)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRolesCSV(w, fits, roles, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return writeParquetFile(cfg.OutputFile, func(path string) error {
			return parquet.WriteRolesParquet(roleRows(fits), path)
		})
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRolesTable(w, fits, roles, cfg, fmtFloat, duration)
		}, "Wrote table")
	}
}

// writeRolesTable writes one row per player with every role rating.
func writeRolesTable(w io.Writer, fits []schema.RoleFit, roles []string, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	headers := []string{"Rank", "Player"}
	headers = append(headers, roles...)
	headers = append(headers, "Best Role", "Label")
	nameWidth := GetMaxTableNameWidth(cfg, len(roles)+3)

	data := make([][]string, 0, len(fits))
	for i, f := range fits {
		row := []string{strconv.Itoa(i + 1), contract.TruncateName(f.Player, nameWidth)}
		for _, r := range f.Ratings {
			row = append(row, fmtFloat(r.Score))
		}
		row = append(row, f.BestRole, fitLabel(cfg, f.BestScore))
		data = append(data, row)
	}
	if err := writeTable(w, headers, data); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Showing top %d players across %d roles in %v\n", len(fits), len(roles), duration)
	return err
}

// writeRolesCSV writes the role ratings in CSV format.
func writeRolesCSV(w io.Writer, fits []schema.RoleFit, roles []string, fmtFloat func(float64) string) error {
	header := []string{"rank", "player"}
	header = append(header, roles...)
	header = append(header, "best_role", "best_score", "label")
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, f := range fits {
			rec := []string{strconv.Itoa(i + 1), f.Player}
			for _, r := range f.Ratings {
				rec = append(rec, fmtFloat(r.Score))
			}
			rec = append(rec, f.BestRole, fmtFloat(f.BestScore), contract.GetPlainLabel(f.BestScore))
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeRolesJSON writes the role ratings in JSON format with rank and label added.
func writeRolesJSON(w io.Writer, fits []schema.RoleFit) error {
	type jsonRoleFit struct {
		Rank  int    `json:"rank"`
		Label string `json:"label"`
		schema.RoleFit
	}
	output := make([]jsonRoleFit, len(fits))
	for i, f := range fits {
		output[i] = jsonRoleFit{Rank: i + 1, Label: contract.GetPlainLabel(f.BestScore), RoleFit: f}
	}
	return writeJSON(w, output)
}

// roleRows flattens role fits into parquet rows.
func roleRows(fits []schema.RoleFit) []parquet.RoleRow {
	var rows []parquet.RoleRow
	for _, f := range fits {
		for _, r := range f.Ratings {
			rows = append(rows, parquet.RoleRow{Player: f.Player, Role: r.Role, Score: r.Score, Best: r.Role == f.BestRole})
		}
	}
	return rows
}
