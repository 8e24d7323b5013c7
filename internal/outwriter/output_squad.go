package outwriter

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/huangsam/lineup/internal/contract"
	"github.com/huangsam/lineup/internal/parquet"
	"github.com/huangsam/lineup/schema"
)

// WriteSquadTable outputs a squad, dispatching based on the output format configured.
// Text output to a file is written as CSV so that it loads back as a squad input.
func WriteSquadTable(squad schema.Squad, cfg *contract.Config) error {
	switch {
	case cfg.Output == schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, squad)
		}, "Wrote JSON")
	case cfg.Output == schema.ParquetOut:
		return writeParquetFile(cfg.OutputFile, func(path string) error {
			return parquet.WriteSquadParquet(parquet.SquadRows(squad), path)
		})
	case cfg.Output == schema.CSVOut || cfg.OutputFile != "":
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSquadCSV(w, squad)
		}, "Wrote CSV")
	default:
		fmtFloat, _ := createFormatters(cfg.Precision)
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSquadTable(w, squad, fmtFloat)
		}, "Wrote table")
	}
}

// writeSquadTable writes one row per player with every declared stat.
func writeSquadTable(w io.Writer, squad schema.Squad, fmtFloat func(float64) string) error {
	headers := []string{"Player"}
	for _, s := range squad.Stats {
		headers = append(headers, string(s))
	}
	data := make([][]string, 0, len(squad.Players))
	for _, p := range squad.Players {
		row := []string{p.Name}
		for _, v := range p.Rates {
			row = append(row, fmtFloat(v))
		}
		data = append(data, row)
	}
	return writeTable(w, headers, data)
}

// writeSquadCSV writes a squad with full float precision.
func writeSquadCSV(w io.Writer, squad schema.Squad) error {
	header := []string{"player"}
	for _, s := range squad.Stats {
		header = append(header, string(s))
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, p := range squad.Players {
			rec := []string{p.Name}
			for _, v := range p.Rates {
				rec = append(rec, strconv.FormatFloat(v, 'f', -1, 64))
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
