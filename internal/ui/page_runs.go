package ui

import (
	. "maragu.dev/gomponents"
	data "maragu.dev/gomponents-datastar"
	. "maragu.dev/gomponents/html"
)

type runRowData struct {
	Filter      string
	Dataset     string
	DatasetURL  string
	Alpha       string
	TStatistic  string
	PValue      string
	Significant bool
	CreatedAt   string
}

func runsListPage(rows []runRowData) Node {
	tableRows := make([]Node, 0, len(rows))
	for i := range rows {
		row := rows[i]
		verdict := statusLabel("not significant", "")
		if row.Significant {
			verdict = statusLabel("significant", "success")
		}
		tableRows = append(tableRows, Tr(
			data.Show(containsExpr(row.Filter)),
			Td(A(Href(row.DatasetURL), Text(row.Dataset))),
			Td(Text(row.Alpha)),
			Td(Text(row.TStatistic)),
			Td(Text(row.PValue)),
			Td(verdict),
			Td(Text(row.CreatedAt)),
		))
	}

	tableNode := Node(emptyStateCard("No analysis runs recorded yet."))
	if len(tableRows) > 0 {
		tableNode = card(Table(Class("data-table"),
			THead(Tr(Th(Text("Dataset")), Th(Text("Alpha")), Th(Text("t")), Th(Text("p-value")), Th(Text("Verdict")), Th(Text("When")))),
			TBody(Group(tableRows)),
		))
	}

	return appPage("Runs", "runs",
		quickFilterCard("Filter by dataset name"),
		tableNode,
	)
}
