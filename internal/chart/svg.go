package chart

import (
	"fmt"
	"io"
	"strconv"

	g "maragu.dev/gomponents"

	"github.com/rudidomingues/censotec/internal/domain"
)

// Canvas geometry shared by all chart kinds.
const (
	svgWidth     = 640.0
	svgHeight    = 400.0
	marginLeft   = 56.0
	marginRight  = 24.0
	marginTop    = 44.0
	marginBottom = 48.0
)

var (
	plotWidth  = svgWidth - marginLeft - marginRight
	plotHeight = svgHeight - marginTop - marginBottom
)

// HistSeries is one named, colored histogram drawn on a shared axis.
// Multiple series overlay with translucent fills.
type HistSeries struct {
	Name  string
	Hist  Histogram
	Color string
}

// RenderHistogram writes an SVG histogram of one or more overlaid series.
func RenderHistogram(w io.Writer, title string, series []HistSeries) error {
	if len(series) == 0 {
		return domain.ErrValidation("histogram chart needs at least one series")
	}

	// Shared axis ranges across all series.
	xLo, xHi := series[0].Hist.Bins[0].Lo, series[0].Hist.Bins[0].Hi
	maxCount := 0
	for _, s := range series {
		if len(s.Hist.Bins) == 0 {
			return domain.ErrValidation("series %q has no bins", s.Name)
		}
		if s.Hist.Bins[0].Lo < xLo {
			xLo = s.Hist.Bins[0].Lo
		}
		if last := s.Hist.Bins[len(s.Hist.Bins)-1].Hi; last > xHi {
			xHi = last
		}
		if s.Hist.MaxCount > maxCount {
			maxCount = s.Hist.MaxCount
		}
	}
	if xHi == xLo {
		xHi = xLo + 1
	}
	if maxCount == 0 {
		maxCount = 1
	}

	xScale := func(v float64) float64 { return marginLeft + (v-xLo)/(xHi-xLo)*plotWidth }
	yScale := func(count int) float64 { return marginTop + plotHeight - float64(count)/float64(maxCount)*plotHeight }

	nodes := []g.Node{axes(title, fmtNum(xLo), fmtNum(xHi), "0", strconv.Itoa(maxCount))}
	for _, s := range series {
		for _, b := range s.Hist.Bins {
			if b.Count == 0 {
				continue
			}
			x := xScale(b.Lo)
			y := yScale(b.Count)
			nodes = append(nodes, rect(x, y, xScale(b.Hi)-x, marginTop+plotHeight-y, s.Color, 0.7))
		}
	}
	if len(series) > 1 {
		nodes = append(nodes, legend(series))
	}

	return svgDoc(nodes...).Render(w)
}

// BoxplotEntry is one labeled box in a boxplot chart.
type BoxplotEntry struct {
	Label string
	Box   Boxplot
	Color string
}

// RenderBoxplot writes an SVG boxplot with one box per entry.
func RenderBoxplot(w io.Writer, title string, entries []BoxplotEntry) error {
	if len(entries) == 0 {
		return domain.ErrValidation("boxplot chart needs at least one entry")
	}

	yLo, yHi := entries[0].Box.Min, entries[0].Box.Max
	for _, e := range entries {
		if e.Box.Min < yLo {
			yLo = e.Box.Min
		}
		if e.Box.Max > yHi {
			yHi = e.Box.Max
		}
	}
	if yHi == yLo {
		yHi = yLo + 1
	}

	yScale := func(v float64) float64 { return marginTop + plotHeight - (v-yLo)/(yHi-yLo)*plotHeight }
	slot := plotWidth / float64(len(entries))
	boxWidth := slot * 0.4

	nodes := []g.Node{axes(title, "", "", fmtNum(yLo), fmtNum(yHi))}
	for i, e := range entries {
		cx := marginLeft + slot*(float64(i)+0.5)
		b := e.Box

		// Whiskers and caps.
		nodes = append(nodes,
			line(cx, yScale(b.WhiskerLo), cx, yScale(b.Q1), "#374151"),
			line(cx, yScale(b.Q3), cx, yScale(b.WhiskerHi), "#374151"),
			line(cx-boxWidth/4, yScale(b.WhiskerLo), cx+boxWidth/4, yScale(b.WhiskerLo), "#374151"),
			line(cx-boxWidth/4, yScale(b.WhiskerHi), cx+boxWidth/4, yScale(b.WhiskerHi), "#374151"),
		)
		// Box and median.
		nodes = append(nodes,
			rect(cx-boxWidth/2, yScale(b.Q3), boxWidth, yScale(b.Q1)-yScale(b.Q3), e.Color, 0.8),
			line(cx-boxWidth/2, yScale(b.Median), cx+boxWidth/2, yScale(b.Median), "#111827"),
		)
		// Outliers.
		for _, v := range b.Outliers {
			nodes = append(nodes, circle(cx, yScale(v), 2.5, "#374151"))
		}
		nodes = append(nodes, text(cx, svgHeight-14, e.Label, "middle", 12))
	}

	return svgDoc(nodes...).Render(w)
}

// RenderBars writes an SVG bar chart (one bar per label, e.g. group means).
func RenderBars(w io.Writer, title string, bars []Bar) error {
	if len(bars) == 0 {
		return domain.ErrValidation("bar chart needs at least one bar")
	}

	maxVal := bars[0].Value
	for _, b := range bars[1:] {
		if b.Value > maxVal {
			maxVal = b.Value
		}
	}
	if maxVal <= 0 {
		maxVal = 1
	}

	yScale := func(v float64) float64 { return marginTop + plotHeight - v/maxVal*plotHeight }
	slot := plotWidth / float64(len(bars))
	barWidth := slot * 0.5

	nodes := []g.Node{axes(title, "", "", "0", fmtNum(maxVal))}
	for i, b := range bars {
		cx := marginLeft + slot*(float64(i)+0.5)
		y := yScale(b.Value)
		nodes = append(nodes,
			rect(cx-barWidth/2, y, barWidth, marginTop+plotHeight-y, Color(i), 0.9),
			text(cx, svgHeight-14, b.Label, "middle", 12),
			text(cx, y-6, fmtNum(b.Value), "middle", 11),
		)
	}

	return svgDoc(nodes...).Render(w)
}

// --- SVG helpers ---

func svgDoc(children ...g.Node) g.Node {
	return g.El("svg",
		g.Attr("xmlns", "http://www.w3.org/2000/svg"),
		g.Attr("width", fmtNum(svgWidth)),
		g.Attr("height", fmtNum(svgHeight)),
		g.Attr("viewBox", fmt.Sprintf("0 0 %s %s", fmtNum(svgWidth), fmtNum(svgHeight))),
		g.Attr("font-family", "sans-serif"),
		rect(0, 0, svgWidth, svgHeight, "#FFFFFF", 1),
		g.Group(children),
	)
}

func axes(title, xLoLabel, xHiLabel, yLoLabel, yHiLabel string) g.Node {
	nodes := []g.Node{
		text(svgWidth/2, 24, title, "middle", 15),
		line(marginLeft, marginTop, marginLeft, marginTop+plotHeight, "#9CA3AF"),
		line(marginLeft, marginTop+plotHeight, marginLeft+plotWidth, marginTop+plotHeight, "#9CA3AF"),
	}
	if xLoLabel != "" {
		nodes = append(nodes, text(marginLeft, svgHeight-14, xLoLabel, "middle", 11))
	}
	if xHiLabel != "" {
		nodes = append(nodes, text(marginLeft+plotWidth, svgHeight-14, xHiLabel, "middle", 11))
	}
	if yLoLabel != "" {
		nodes = append(nodes, text(marginLeft-8, marginTop+plotHeight+4, yLoLabel, "end", 11))
	}
	if yHiLabel != "" {
		nodes = append(nodes, text(marginLeft-8, marginTop+4, yHiLabel, "end", 11))
	}
	return g.Group(nodes)
}

func legend(series []HistSeries) g.Node {
	nodes := make([]g.Node, 0, 2*len(series))
	y := marginTop + 8
	for _, s := range series {
		nodes = append(nodes,
			rect(svgWidth-marginRight-130, y-9, 12, 12, s.Color, 0.9),
			text(svgWidth-marginRight-112, y+1, s.Name, "start", 12),
		)
		y += 18
	}
	return g.Group(nodes)
}

func rect(x, y, w, h float64, fill string, opacity float64) g.Node {
	return g.El("rect",
		g.Attr("x", fmtNum(x)), g.Attr("y", fmtNum(y)),
		g.Attr("width", fmtNum(w)), g.Attr("height", fmtNum(h)),
		g.Attr("fill", fill),
		g.Attr("fill-opacity", strconv.FormatFloat(opacity, 'g', -1, 64)),
	)
}

func line(x1, y1, x2, y2 float64, stroke string) g.Node {
	return g.El("line",
		g.Attr("x1", fmtNum(x1)), g.Attr("y1", fmtNum(y1)),
		g.Attr("x2", fmtNum(x2)), g.Attr("y2", fmtNum(y2)),
		g.Attr("stroke", stroke),
		g.Attr("stroke-width", "1.5"),
	)
}

func circle(cx, cy, r float64, fill string) g.Node {
	return g.El("circle",
		g.Attr("cx", fmtNum(cx)), g.Attr("cy", fmtNum(cy)),
		g.Attr("r", fmtNum(r)),
		g.Attr("fill", fill),
	)
}

func text(x, y float64, content, anchor string, size int) g.Node {
	return g.El("text",
		g.Attr("x", fmtNum(x)), g.Attr("y", fmtNum(y)),
		g.Attr("text-anchor", anchor),
		g.Attr("font-size", strconv.Itoa(size)),
		g.Attr("fill", "#111827"),
		g.Text(content),
	)
}

func fmtNum(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
