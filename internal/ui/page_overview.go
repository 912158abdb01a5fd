package ui

import (
	"strconv"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

func overviewPage(datasetCount, runCount int, lastRun Node) Node {
	return appPage("Overview", "home",
		card(
			P(Text("Does technology infrastructure in schools correlate with pass rates?")),
			P(Class("muted"), Text("Ingest a census extract, inspect the per-group statistics, and run a Welch t-test.")),
		),
		card(
			Table(Class("data-table"),
				TBody(
					Tr(Td(Text("Registered datasets")), Td(Text(strconv.Itoa(datasetCount)))),
					Tr(Td(Text("Analysis runs")), Td(Text(strconv.Itoa(runCount)))),
				),
			),
		),
		lastRun,
	)
}
