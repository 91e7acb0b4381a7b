package session

import (
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"chdbatch/internal/batch"
	"chdbatch/internal/fileset"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

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

	configs := make([]table.ColumnConfig, 0, columns)
	for i := range columns {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{Number: i + 1, Align: align, AlignHeader: text.AlignLeft})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

// fileTable lists how many files of each category the current import holds
// and their combined size.
func fileTable(set *fileset.Set) string {
	rows := make([][]string, 0, len(fileset.Categories))
	for _, cat := range fileset.Categories {
		if cat == fileset.ZIP {
			continue
		}
		var total uint64
		for _, path := range set.Files(cat) {
			if info, err := os.Stat(path); err == nil {
				total += uint64(info.Size())
			}
		}
		rows = append(rows, []string{cat.Label(), strconv.Itoa(set.Count(cat)), humanize.Bytes(total)})
	}
	return renderTable([]string{"Type", "Files", "Size"}, rows, []columnAlignment{alignLeft, alignRight, alignRight})
}

// failureTable lists the inputs a run could not process.
func failureTable(result batch.Result) string {
	rows := make([][]string, 0, len(result.Failures))
	for i, outcome := range result.Outcomes {
		if outcome.Success {
			continue
		}
		exit := strconv.Itoa(outcome.ExitCode)
		if outcome.ExitCode < 0 {
			exit = "-"
		}
		rows = append(rows, []string{strconv.Itoa(i + 1), outcome.Input, exit})
	}
	return renderTable([]string{"#", "File", "Exit code"}, rows, []columnAlignment{alignRight, alignLeft, alignRight})
}
