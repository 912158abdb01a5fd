package ui

import (
	"strconv"

	"github.com/rudidomingues/censotec/internal/domain"

	. "maragu.dev/gomponents"
	data "maragu.dev/gomponents-datastar"
	. "maragu.dev/gomponents/html"
)

type datasetRowData struct {
	Filter      string
	Name        string
	URL         string
	Rows        string
	WithTech    string
	WithoutTech string
	Ingested    string
}

func datasetsListPage(rows []datasetRowData) Node {
	tableRows := make([]Node, 0, len(rows))
	for i := range rows {
		row := rows[i]
		tableRows = append(tableRows, Tr(
			data.Show(containsExpr(row.Filter)),
			Td(A(Href(row.URL), Text(row.Name))),
			Td(Text(row.Rows)),
			Td(Text(row.WithTech)),
			Td(Text(row.WithoutTech)),
			Td(Text(row.Ingested)),
		))
	}

	tableNode := Node(emptyStateCard("No datasets ingested yet. Use `censotec ingest` or POST /v1/datasets."))
	if len(tableRows) > 0 {
		tableNode = card(Table(Class("data-table"),
			THead(Tr(Th(Text("Name")), Th(Text("Rows")), Th(Text("With tech")), Th(Text("Without tech")), Th(Text("Ingested")))),
			TBody(Group(tableRows)),
		))
	}

	return appPage("Datasets", "datasets",
		quickFilterCard("Filter by dataset name"),
		tableNode,
	)
}

type datasetDetailPageData struct {
	Dataset *domain.Dataset
	Groups  []domain.GroupStats
	TTest   *domain.TTestResult
}

func datasetDetailPage(d datasetDetailPageData) Node {
	ds := d.Dataset

	statRows := make([]Node, 0, len(d.Groups))
	for i := range d.Groups {
		g := d.Groups[i]
		statRows = append(statRows, Tr(
			Td(groupBadge(g.Group)),
			Td(Text(strconv.Itoa(g.Count))),
			Td(Text(formatFloat(g.Mean))),
			Td(Text(formatFloat(g.Median))),
			Td(Text(formatFloat(g.Mode))),
			Td(Text(formatFloat(g.StdDev))),
			Td(Text(formatFloat(g.Min))),
			Td(Text(formatFloat(g.Q1))),
			Td(Text(formatFloat(g.Q3))),
			Td(Text(formatFloat(g.Max))),
			Td(Text(formatFloat(g.Skewness))),
		))
	}

	return appPage(ds.Name, "datasets",
		card(
			Table(Class("data-table"),
				TBody(
					Tr(Td(Text("Source")), Td(Text(ds.SourcePath))),
					Tr(Td(Text("Rows")), Td(Text(strconv.FormatInt(ds.Rows, 10)))),
					Tr(Td(Text("With tech")), Td(Text(strconv.FormatInt(ds.WithTech, 10)))),
					Tr(Td(Text("Without tech")), Td(Text(strconv.FormatInt(ds.WithoutTech, 10)))),
					Tr(Td(Text("Ingested")), Td(Text(formatTime(ds.IngestedAt)))),
				),
			),
		),
		card(
			H2(Text("Pass-rate statistics")),
			Table(Class("data-table"),
				THead(Tr(
					Th(Text("Group")), Th(Text("n")), Th(Text("Mean")), Th(Text("Median")),
					Th(Text("Mode")), Th(Text("Std")), Th(Text("Min")), Th(Text("Q1")),
					Th(Text("Q3")), Th(Text("Max")), Th(Text("Skew")),
				)),
				TBody(Group(statRows)),
			),
		),
		ttestCard(d.TTest),
		Div(Class("chart-grid"),
			card(Img(Src("/v1/charts/"+ds.Name+"/histogram"), Alt("Pass-rate histogram"))),
			card(Img(Src("/v1/charts/"+ds.Name+"/boxplot"), Alt("Pass-rate boxplot"))),
			card(Img(Src("/v1/charts/"+ds.Name+"/means"), Alt("Group means"))),
		),
	)
}

func ttestCard(res *domain.TTestResult) Node {
	if res == nil {
		return emptyStateCard("No t-test recorded for this dataset yet. Run one with `censotec ttest` or POST /v1/datasets/{name}/ttest.")
	}

	tone := "danger"
	if res.Significant {
		tone = "success"
	}
	return card(
		H2(Text("Welch t-test")),
		P(statusLabel(res.Decision(), tone)),
		Table(Class("data-table"),
			TBody(
				Tr(Td(Text("t statistic")), Td(Text(formatFloat(res.TStatistic)))),
				Tr(Td(Text("Degrees of freedom")), Td(Text(formatFloat(res.DegreesFree)))),
				Tr(Td(Text("p-value")), Td(Text(strconv.FormatFloat(res.PValue, 'g', 4, 64)))),
				Tr(Td(Text("Alpha")), Td(Text(formatFloat(res.Alpha)))),
			),
		),
	)
}

func groupBadge(group string) Node {
	if group == domain.GroupWithTech {
		return statusLabel("with tech", "accent")
	}
	return statusLabel("without tech", "")
}
