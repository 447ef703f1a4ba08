package report

import (
	"io"
	"math"
	"strconv"

	"github.com/encodeous/dsdv/core"
	"github.com/olekukonko/tablewriter"
)

var tableHeader = []string{"NODES", "PDR BEFORE", "PDR", "DELAY", "OVERHEAD", "CONVERGENCE", "ROUNDS", "FAILED"}

func formatFloat(f float64) string {
	if math.IsInf(f, 1) {
		return "inf"
	}
	return strconv.FormatFloat(f, 'f', 3, 64)
}

func resultRow(r core.Result) []string {
	return []string{
		strconv.Itoa(r.Nodes),
		formatFloat(r.PdrBefore),
		formatFloat(r.Pdr),
		formatFloat(r.Delay),
		strconv.Itoa(r.Overhead),
		r.Convergence.String(),
		strconv.Itoa(r.Rounds),
		strconv.FormatBool(r.LinkFailed),
	}
}

// WriteTable renders one row per result
func WriteTable(w io.Writer, results []core.Result) {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, resultRow(r))
	}
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetBorder(false)
	table.SetHeaderLine(false)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeader(tableHeader)
	table.AppendBulk(rows)
	table.Render()
}
