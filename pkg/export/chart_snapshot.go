package export

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vanderheijden86/feedlens/pkg/analysis"
	"github.com/vanderheijden86/feedlens/pkg/metrics"
	"github.com/vanderheijden86/feedlens/pkg/model"

	"git.sr.ht/~sbinet/gg"
	"github.com/ajstarks/svgo"
	"golang.org/x/image/font/basicfont"
)

// DonutHole is the inner radius of the chart as a fraction of the outer radius.
const DonutHole = 0.3

// ErrNothingToChart is returned when the counts contain no rows.
var ErrNothingToChart = errors.New("no feedback rows to chart")

// ChartOptions controls chart snapshot export.
type ChartOptions struct {
	Path   string // Output path; format inferred from extension when Format empty
	Format string // "svg" or "png" (case-insensitive)
	Title  string // Defaults to the dashboard chart title
	Counts analysis.Counts
}

// SaveChartSnapshot renders the category breakdown as a donut chart with a
// legend, as SVG or PNG.
func SaveChartSnapshot(opts ChartOptions) error {
	defer metrics.Timer(metrics.ChartRender)()

	if opts.Counts.Total() == 0 {
		return ErrNothingToChart
	}
	if opts.Path == "" {
		return fmt.Errorf("output path is required")
	}

	format := strings.ToLower(strings.TrimPrefix(opts.Format, "."))
	if format == "" {
		switch strings.ToLower(filepath.Ext(opts.Path)) {
		case ".svg":
			format = "svg"
		case ".png":
			format = "png"
		default:
			format = "svg"
			if filepath.Ext(opts.Path) == "" {
				opts.Path += ".svg"
			}
		}
	}
	if format != "svg" && format != "png" {
		return fmt.Errorf("unsupported format %q (want svg or png)", format)
	}

	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}

	layout := buildDonut(opts)
	if format == "png" {
		return renderDonutPNG(opts.Path, layout)
	}

	file, err := os.Create(opts.Path)
	if err != nil {
		return err
	}
	if err := renderDonutSVG(file, layout); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// --- layout ------------------------------------------------------------------

type donutSlice struct {
	Category   string
	Count      int
	Fraction   float64
	Start, End float64 // radians, clockwise from 12 o'clock
	Color      color.RGBA
}

type donutLayout struct {
	Width, Height int
	Title         string
	CX, CY        float64
	Outer, Inner  float64
	LegendX       float64
	LegendY       float64
	Slices        []donutSlice
}

func buildDonut(opts ChartOptions) donutLayout {
	const (
		width   = 760
		height  = 480
		radius  = 170.0
		legendX = 470.0
		legendY = 110.0
	)

	title := opts.Title
	if title == "" {
		title = model.ChartTitle
	}

	l := donutLayout{
		Width:   width,
		Height:  height,
		Title:   title,
		CX:      40 + radius,
		CY:      70 + radius,
		Outer:   radius,
		Inner:   radius * DonutHole,
		LegendX: legendX,
		LegendY: legendY,
	}

	angle := -math.Pi / 2
	for i, s := range analysis.Shares(opts.Counts) {
		sweep := s.Fraction * 2 * math.Pi
		l.Slices = append(l.Slices, donutSlice{
			Category: s.Category,
			Count:    s.Count,
			Fraction: s.Fraction,
			Start:    angle,
			End:      angle + sweep,
			Color:    hexColor(model.PaletteColor(i)),
		})
		angle += sweep
	}
	return l
}

var (
	colorText     = color.RGBA{0x11, 0x11, 0x11, 0xff}
	colorSubtle   = color.RGBA{0x66, 0x66, 0x66, 0xff}
	colorStroke   = color.RGBA{0xff, 0xff, 0xff, 0xff}
	colorBackdrop = color.RGBA{0xf9, 0xfa, 0xfb, 0xff}
	colorLegendBG = color.RGBA{0xee, 0xee, 0xee, 0xff}
)

func sliceLabel(s donutSlice) string {
	return fmt.Sprintf("%s  %d (%.1f%%)", s.Category, s.Count, s.Fraction*100)
}

// --- SVG ---------------------------------------------------------------------

func renderDonutSVG(w io.Writer, l donutLayout) error {
	canvas := svg.New(w)
	canvas.Start(l.Width, l.Height)
	canvas.Rect(0, 0, l.Width, l.Height, fmt.Sprintf("fill:%s", css(colorBackdrop)))
	canvas.Text(32, 40, l.Title, fmt.Sprintf("fill:%s;font-size:18px;font-family:monospace;font-weight:bold", css(colorText)))

	for _, s := range l.Slices {
		style := fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1.5", css(s.Color), css(colorStroke))
		// A single arc cannot describe a full circle.
		if s.End-s.Start > math.Pi {
			mid := (s.Start + s.End) / 2
			canvas.Path(sectorPath(l, s.Start, mid), style)
			canvas.Path(sectorPath(l, mid, s.End), style)
			continue
		}
		canvas.Path(sectorPath(l, s.Start, s.End), style)
	}

	drawLegendSVG(canvas, l)
	canvas.End()
	return nil
}

// sectorPath returns the SVG path of the ring segment between angles a1 and a2.
func sectorPath(l donutLayout, a1, a2 float64) string {
	large := 0
	if a2-a1 > math.Pi {
		large = 1
	}
	ox1, oy1 := polar(l.CX, l.CY, l.Outer, a1)
	ox2, oy2 := polar(l.CX, l.CY, l.Outer, a2)
	ix2, iy2 := polar(l.CX, l.CY, l.Inner, a2)
	ix1, iy1 := polar(l.CX, l.CY, l.Inner, a1)
	return fmt.Sprintf("M%.2f,%.2f A%.2f,%.2f 0 %d 1 %.2f,%.2f L%.2f,%.2f A%.2f,%.2f 0 %d 0 %.2f,%.2f Z",
		ox1, oy1, l.Outer, l.Outer, large, ox2, oy2,
		ix2, iy2, l.Inner, l.Inner, large, ix1, iy1)
}

func drawLegendSVG(canvas *svg.SVG, l donutLayout) {
	x := int(l.LegendX)
	y := int(l.LegendY)
	boxW := l.Width - x - 20
	boxH := 40 + 22*len(l.Slices)
	canvas.Roundrect(x, y, boxW, boxH, 10, 10, fmt.Sprintf("fill:%s", css(colorLegendBG)))
	canvas.Text(x+12, y+24, model.ChartLegend, fmt.Sprintf("fill:%s;font-size:13px;font-family:monospace;font-weight:bold", css(colorText)))
	for i, s := range l.Slices {
		ry := y + 46 + 22*i
		canvas.Roundrect(x+12, ry-10, 14, 14, 3, 3, fmt.Sprintf("fill:%s", css(s.Color)))
		canvas.Text(x+34, ry+1, sliceLabel(s), fmt.Sprintf("fill:%s;font-size:12px;font-family:monospace", css(colorSubtle)))
	}
}

// --- PNG ---------------------------------------------------------------------

func renderDonutPNG(path string, l donutLayout) error {
	dc := drawDonut(l)
	return dc.SavePNG(path)
}

func drawDonut(l donutLayout) *gg.Context {
	dc := gg.NewContext(l.Width, l.Height)
	dc.SetColor(colorBackdrop)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	dc.SetColor(colorText)
	dc.DrawStringAnchored(l.Title, 32, 36, 0, 0.5)

	for _, s := range l.Slices {
		dc.NewSubPath()
		dc.DrawArc(l.CX, l.CY, l.Outer, s.Start, s.End)
		dc.DrawArc(l.CX, l.CY, l.Inner, s.End, s.Start)
		dc.ClosePath()
		dc.SetColor(s.Color)
		dc.FillPreserve()
		dc.SetColor(colorStroke)
		dc.SetLineWidth(1.5)
		dc.Stroke()
	}

	x := l.LegendX
	y := l.LegendY
	dc.SetColor(colorLegendBG)
	dc.DrawRoundedRectangle(x, y, float64(l.Width)-x-20, float64(40+22*len(l.Slices)), 10)
	dc.Fill()
	dc.SetColor(colorText)
	dc.DrawStringAnchored(model.ChartLegend, x+12, y+20, 0, 0.5)
	for i, s := range l.Slices {
		ry := y + 46 + 22*float64(i)
		dc.SetColor(s.Color)
		dc.DrawRoundedRectangle(x+12, ry-10, 14, 14, 3)
		dc.Fill()
		dc.SetColor(colorSubtle)
		dc.DrawStringAnchored(sliceLabel(s), x+34, ry-3, 0, 0.5)
	}
	return dc
}

// --- helpers -----------------------------------------------------------------

func polar(cx, cy, r, angle float64) (float64, float64) {
	return cx + r*math.Cos(angle), cy + r*math.Sin(angle)
}

func css(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// hexColor parses "#RRGGBB"; anything else yields mid grey.
func hexColor(s string) color.RGBA {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return color.RGBA{0x88, 0x88, 0x88, 0xff}
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{0x88, 0x88, 0x88, 0xff}
	}
	return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 0xff}
}
