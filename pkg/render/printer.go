package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/1F47E/campus-nav/pkg/estimate"
	"github.com/1F47E/campus-nav/pkg/models"
	"github.com/1F47E/campus-nav/pkg/nav"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorPurple = "\033[35m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"
)

// Printer writes CLI output, colored only when writing to a terminal
type Printer struct {
	w     io.Writer
	color bool
}

// NewPrinter creates a printer for w. Color is enabled when w is a
// terminal.
func NewPrinter(w io.Writer) *Printer {
	color := false
	if f, ok := w.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Printer{w: w, color: color}
}

// NewPlainPrinter creates a printer that never emits color codes
func NewPlainPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

func (p *Printer) paint(code, s string) string {
	if !p.color {
		return s
	}
	return code + s + colorReset
}

func (p *Printer) Title(title string) {
	fmt.Fprintf(p.w, "\n%s\n", p.paint(colorBold+colorPurple, "📍 "+title))
	fmt.Fprintln(p.w, strings.Repeat("=", 60))
}

func (p *Printer) Subtitle(subtitle string) {
	fmt.Fprintf(p.w, "\n%s\n", p.paint(colorBold+colorCyan, subtitle))
}

func (p *Printer) Success(message string) {
	fmt.Fprintln(p.w, p.paint(colorGreen, "✓ "+message))
}

func (p *Printer) Info(message string) {
	fmt.Fprintln(p.w, p.paint(colorYellow, "• "+message))
}

func (p *Printer) Error(message string) {
	fmt.Fprintln(p.w, p.paint(colorRed, "✗ "+message))
}

func (p *Printer) Stat(label string, value interface{}) {
	fmt.Fprintf(p.w, "  %s %s\n", p.paint(colorBold, label+":"), p.paint(colorYellow, fmt.Sprint(value)))
}

// ClassColor returns the ANSI color used for a hotspot class
func ClassColor(c nav.Class) string {
	switch c {
	case nav.IsStart:
		return colorGreen
	case nav.IsDestination:
		return colorBlue
	}
	return ""
}

// Hotspots lists the selectable locations with their classes
func (p *Printer) Hotspots(hotspots []nav.Hotspot) {
	if len(hotspots) == 0 {
		p.Info("No locations available")
		return
	}
	for _, h := range hotspots {
		line := fmt.Sprintf("%-8s %-28s %s", h.Location.ID, h.Location.Label(), h.Class)
		if code := ClassColor(h.Class); code != "" {
			line = p.paint(code, line)
		}
		fmt.Fprintln(p.w, "  "+line)
	}
}

// Map draws the text map inside a frame
func (p *Printer) Map(g *Grid) {
	border := "+" + strings.Repeat("-", g.Width) + "+"
	fmt.Fprintln(p.w, border)
	for _, row := range strings.Split(g.String(), "\n") {
		fmt.Fprintln(p.w, "|"+row+"|")
	}
	fmt.Fprintln(p.w, border)
}

// Panel prints the info panel for the navigator state
func (p *Printer) Panel(n *nav.Navigator) {
	for _, line := range PanelLines(n) {
		fmt.Fprintln(p.w, line)
	}
}

// PanelLines returns the info panel text: the focused location, the two
// slots and, for a complete route, the distance and walking time.
func PanelLines(n *nav.Navigator) []string {
	var lines []string
	if f := n.Focus(); f != nil {
		lines = append(lines, f.Label())
		if f.Description != "" {
			lines = append(lines, f.Description)
		}
		lines = append(lines, "")
	}

	sel := n.Selection()
	lines = append(lines,
		"Start:       "+slotLabel(sel.Start(), "click a location"),
		"Destination: "+slotLabel(sel.Destination(), destinationHint(sel.Phase())),
	)

	if est := n.Estimate(); est != nil {
		lines = append(lines, EstimateLines(*est)...)
	}
	return lines
}

// EstimateLines formats a route estimate
func EstimateLines(est estimate.Estimate) []string {
	return []string{
		"Distance:    " + est.DistanceLabel() + " units",
		"Walking:     " + est.WalkingTime,
	}
}

func slotLabel(loc *models.Location, empty string) string {
	if loc == nil {
		return "(" + empty + ")"
	}
	return loc.Label()
}

func destinationHint(p nav.Phase) string {
	if p == nav.Empty {
		return "select a start first"
	}
	return "click a location"
}
