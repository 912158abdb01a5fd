package ui

import (
	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

type distributionItemData struct {
	Name  string
	Title string
}

func distributionsPage(items []distributionItemData) Node {
	cards := make([]Node, 0, len(items))
	for i := range items {
		item := items[i]
		cards = append(cards, card(
			H2(Text(item.Title)),
			Img(Src("/ui/distributions/"+item.Name+".svg"), Alt(item.Title)),
		))
	}

	return appPage("Distributions", "distributions",
		card(P(Class("muted"), Text("Reference histograms of the standard probability distributions, sampled with a fixed seed."))),
		Div(Class("chart-grid"), Group(cards)),
	)
}
