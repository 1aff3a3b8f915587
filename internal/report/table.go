package report

import (
	"fmt"
	"math"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/banshee-data/cellmeasure/internal/measurement"
)

// MeasurementTable renders every feature of entity in the current scene
// as one column, one row per object.
func MeasurementTable(store measurement.Store, entity string) (string, error) {
	features := store.Features(entity)
	if len(features) == 0 {
		return "", fmt.Errorf("%w: no features for %s", measurement.ErrNotFound, entity)
	}

	columns := make([][]float64, len(features))
	rows := 0
	for i, f := range features {
		v, err := store.Read(entity, f)
		if err != nil {
			return "", err
		}
		columns[i] = v
		rows = max(rows, len(v))
	}

	headers := append([]string{"#"}, features...)
	body := make([][]string, rows)
	for r := range rows {
		row := make([]string, 0, len(headers))
		row = append(row, strconv.Itoa(r+1))
		for _, col := range columns {
			if r < len(col) {
				row = append(row, formatValue(col[r]))
			} else {
				row = append(row, "")
			}
		}
		body[r] = row
	}
	return renderTable(entity, headers, body, 0), nil
}

// ColumnsTable renders a component column listing.
func ColumnsTable(cols []measurement.Column) string {
	rows := make([][]string, 0, len(cols))
	for _, c := range cols {
		rows = append(rows, []string{c.Entity, c.Feature, string(c.Type)})
	}
	return renderTable("", []string{"Entity", "Feature", "Type"}, rows, noNumeric)
}

// SummaryTable renders feature summaries.
func SummaryTable(summaries []Summary) string {
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			s.Entity, s.Feature, strconv.Itoa(s.N),
			formatValue(s.Mean), formatValue(s.StdDev), formatValue(s.Min), formatValue(s.Max),
		})
	}
	return renderTable("", []string{"Entity", "Feature", "N", "Mean", "StdDev", "Min", "Max"}, rows, 2)
}

func formatValue(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'g', 6, 64)
}

const noNumeric = -1

// renderTable draws a rounded table. Columns from index numericFrom on
// are right-aligned.
func renderTable(title string, headers []string, rows [][]string, numericFrom int) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	if title != "" {
		tw.SetTitle(title)
	}

	header := make(table.Row, columns)
	for i := range columns {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := range columns {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := range columns {
		align := text.AlignLeft
		if numericFrom >= 0 && i >= numericFrom {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)
	return tw.Render()
}
