package report

import (
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// missingCell stands in for an undefined value.
const missingCell = "-"

func formatCell(v any) string {
	switch val := v.(type) {
	case nil:
		return missingCell
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		return strconv.FormatBool(val)
	}
	return fmt.Sprint(v)
}

func (r *Renderer) newTable() *tablewriter.Table {
	return tablewriter.NewTable(r.w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{
					AutoWrap: tw.WrapNone,
				},
				Alignment: tw.CellAlignment{
					Global: tw.AlignLeft,
				},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{
					AutoFormat: tw.On,
				},
				Alignment: tw.CellAlignment{
					Global: tw.AlignLeft,
				},
			},
		}),
	)
}

// renderTable prints one table per operation, headed by the record field names.
func (r *Renderer) renderTable(sections []Section) error {
	for _, s := range sections {
		if err := r.printHeader(s.Operation); err != nil {
			return err
		}
		if len(s.Records) == 0 {
			if _, err := fmt.Fprintln(r.w, "(no results)"); err != nil {
				return err
			}
			continue
		}

		var header []string
		for _, f := range s.Records[0].Fields() {
			header = append(header, f.Name)
		}

		rows := make([][]string, 0, len(s.Records))
		for _, rec := range s.Records {
			fields := rec.Fields()
			row := make([]string, len(fields))
			for i, f := range fields {
				row[i] = formatCell(f.Value)
			}
			rows = append(rows, row)
		}

		table := r.newTable()
		table.Header(header)
		if err := table.Bulk(rows); err != nil {
			return fmt.Errorf("failed to build table for %s: %w", s.Operation, err)
		}
		if err := table.Render(); err != nil {
			return fmt.Errorf("failed to render table for %s: %w", s.Operation, err)
		}
	}
	return nil
}
