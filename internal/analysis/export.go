package analysis

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
)

// Row is one spread index of a report, flattened for CSV.
type Row struct {
	Date        string  `csv:"date"`
	Normalized1 float64 `csv:"normalized1"`
	Normalized2 float64 `csv:"normalized2"`
	Spread      float64 `csv:"spread"`
	ZScore      float64 `csv:"zscore"`
	Buy         bool    `csv:"buy"`
	Sell        bool    `csv:"sell"`
	Exit        bool    `csv:"exit"`
	PnL         float64 `csv:"pnl"`
}

// Rows flattens the report over the spread's dates. Stages that did not run leave their columns zero.
func (r *Report) Rows() []*Row {
	rows := make([]*Row, len(r.Spread.Labels))
	for i, label := range r.Spread.Labels {
		rows[i] = &Row{
			Date:        label,
			Normalized1: at(r.Normalized1.Values, i),
			Normalized2: at(r.Normalized2.Values, i),
			Spread:      r.Spread.Values[i],
			ZScore:      at(r.ZScore.Values, i),
			Buy:         at(r.Buy.Values, i) == 1,
			Sell:        at(r.Sell.Values, i) == 1,
			Exit:        at(r.Exit.Values, i) == 1,
			PnL:         at(r.PnL.Values, i),
		}
	}
	return rows
}

// WriteCSV writes Rows with a header line.
func (r *Report) WriteCSV(w io.Writer) error {
	rows := r.Rows()
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "date,normalized1,normalized2,spread,zscore,buy,sell,exit,pnl")
		return err
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// WriteJSON writes the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

func at(values []float64, i int) float64 {
	if i < len(values) {
		return values[i]
	}
	return 0
}
