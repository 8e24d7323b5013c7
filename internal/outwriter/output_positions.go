package outwriter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/huangsam/lineup/internal/contract"
	"github.com/huangsam/lineup/schema"
)

// WritePositionDefinitions outputs the active stat set, formation and roles.
func WritePositionDefinitions(cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, struct {
				Stats     []schema.StatKey     `json:"stats"`
				Formation []schema.PositionDef `json:"formation"`
				Roles     []schema.PositionDef `json:"roles"`
			}{cfg.Stats, cfg.Formation, cfg.Roles})
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writePositionsCSV(w, cfg)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return errors.New("parquet output is not supported for position definitions")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writePositionsText(w, cfg)
		}, "Wrote table")
	}
}

// writePositionsText prints the stat set, then one table each for formation and roles.
func writePositionsText(w io.Writer, cfg *contract.Config) error {
	stats := make([]string, len(cfg.Stats))
	for i, s := range cfg.Stats {
		stats[i] = string(s)
	}
	if _, err := fmt.Fprintf(w, "Stats: %s\n\n", strings.Join(stats, ", ")); err != nil {
		return err
	}

	sections := []struct {
		title string
		defs  []schema.PositionDef
	}{
		{"Formation", cfg.Formation},
		{"Roles", cfg.Roles},
	}
	for _, section := range sections {
		if _, err := fmt.Fprintf(w, "%s:\n", section.title); err != nil {
			return err
		}
		data := make([][]string, 0, len(section.defs))
		for _, d := range section.defs {
			data = append(data, []string{d.Slot, d.DisplayName(), formatWeights(d.Weights)})
		}
		if err := writeTable(w, []string{"Slot", "Name", "Formula"}, data); err != nil {
			return err
		}
	}
	return nil
}

// writePositionsCSV writes one row per weight term.
func writePositionsCSV(w io.Writer, cfg *contract.Config) error {
	header := []string{"kind", "slot", "label", "stat", "weight"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, group := range []struct {
			kind string
			defs []schema.PositionDef
		}{{"formation", cfg.Formation}, {"role", cfg.Roles}} {
			for _, d := range group.defs {
				for _, sw := range d.Weights {
					rec := []string{group.kind, d.Slot, d.Label, string(sw.Stat), fmt.Sprintf("%g", sw.Weight)}
					if err := cw.Write(rec); err != nil {
						return err
					}
				}
			}
		}
		return nil
	})
}

// formatWeights formats weights as a formula such as "0.60*xa_p90+0.40*prog_passes_p90".
func formatWeights(weights []schema.StatWeight) string {
	parts := make([]string, 0, len(weights))
	for _, sw := range weights {
		if sw.Weight > 0 {
			parts = append(parts, fmt.Sprintf("%.2f*%s", sw.Weight, sw.Stat))
		}
	}
	return strings.Join(parts, "+")
}
