package routes

import (
	"fmt"
	"strings"

	"silverradar/internal/market"
)

// RenderSVG draws the schematic route map: every city as a labeled dot, the
// travel leg as a dashed arrow colored by route risk. The output embeds
// directly into the dashboard without further processing.
func (p Plan) RenderSVG() string {
	lineColor := "#fbbf24"
	if p.RedZone {
		lineColor = "#ef4444"
	}

	var b strings.Builder
	b.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 1000 1000">`)
	b.WriteString(`<rect width="1000" height="1000" fill="#0c121e"/>`)

	fmt.Fprintf(&b,
		`<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-width="4" stroke-dasharray="12 8"/>`,
		p.FromPoint.X, p.FromPoint.Y, p.ToPoint.X, p.ToPoint.Y, lineColor)

	for _, city := range market.Cities() {
		pt := cityPoints[city]
		radius := 14
		if pt.Label == p.FromPoint.Label || pt.Label == p.ToPoint.Label {
			radius = 22
		}
		fmt.Fprintf(&b,
			`<circle cx="%d" cy="%d" r="%d" fill="%s" stroke="#0c121e" stroke-width="3"/>`,
			pt.X, pt.Y, radius, pt.Color)
		fmt.Fprintf(&b,
			`<text x="%d" y="%d" fill="#e2e8f0" font-size="28" font-family="sans-serif" text-anchor="middle">%s</text>`,
			pt.X, pt.Y-28, pt.Label)
	}

	b.WriteString(`</svg>`)
	return b.String()
}
