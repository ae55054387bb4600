package tournament

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintRanking renders ratings as a right-aligned rank table to w.
func PrintRanking(w io.Writer, ratings Table) {
	fmt.Fprintf(w, "\nRanking (%d contestants)\n", len(ratings))

	table := tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
	table.Header("RANK", "ID", "ELO", "W", "L", "D")

	for i, e := range ratings.Ranked() {
		table.Append(
			strconv.Itoa(i+1),
			e.ID,
			strconv.FormatFloat(e.Rating, 'f', 1, 64),
			strconv.Itoa(e.Wins),
			strconv.Itoa(e.Losses),
			strconv.Itoa(e.Draws),
		)
	}
	table.Render()
}
