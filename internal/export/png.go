package export

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/mireval/chartbot/internal"
)

var (
	backgroundColor = color.RGBA{R: 0x1a, G: 0x1a, B: 0x2e, A: 0xff}
	barColor        = color.RGBA{R: 0x63, G: 0x66, B: 0xf1, A: 0xff}
	textColor       = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// PNGExporter renders a minimal bar-style representation of the chart and
// encodes it as a raster image
type PNGExporter struct{}

// Export draws the chart onto a canvas of the requested size and encodes
// it as PNG
func (e *PNGExporter) Export(chart *internal.ChartDescriptor, opts Options, w io.Writer) error {
	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(backgroundColor), image.Point{}, draw.Src)

	drawCenteredText(img, chartTitle(chart), opts.Width/2, 40)
	drawBars(img, chart, opts.Width, opts.Height)

	return png.Encode(w, img)
}

// Extension returns the file extension for this format
func (e *PNGExporter) Extension() string {
	return "png"
}

// MIME returns the artifact content type
func (e *PNGExporter) MIME() string {
	return "image/png"
}

// barGeometry is shared by the PNG and SVG renderers: bars scale against
// the maximum value, with a zero guard so all-zero charts still export.
type bar struct {
	x, y          int
	width, height int
	label         string
	labelX        int
}

func layoutBars(chart *internal.ChartDescriptor, width, height int) []bar {
	n := len(chart.Values)
	if n == 0 {
		return nil
	}

	barWidth := (width - 100) / n
	if barWidth < 1 {
		barWidth = 1
	}
	maxValue := 0.0
	for _, v := range chart.Values {
		if v > maxValue {
			maxValue = v
		}
	}
	barMaxHeight := float64(height-100) * 0.8

	bars := make([]bar, 0, n)
	for i, v := range chart.Values {
		barHeight := 0
		if maxValue > 0 {
			barHeight = int(v / maxValue * barMaxHeight)
		}
		x := 50 + i*barWidth
		b := bar{
			x:      x,
			y:      height - 80 - barHeight,
			width:  barWidth - 10,
			height: barHeight,
			labelX: x + barWidth/2 - 5,
		}
		if i < len(chart.Labels) {
			b.label = chart.Labels[i]
		}
		bars = append(bars, b)
	}
	return bars
}

func drawBars(img *image.RGBA, chart *internal.ChartDescriptor, width, height int) {
	for _, b := range layoutBars(chart, width, height) {
		fillRect(img, b.x, b.y, b.width, b.height)
		if b.label != "" {
			drawCenteredText(img, b.label, b.labelX, height-20)
		}
	}
}

func fillRect(img *image.RGBA, x, y, w, h int) {
	if w < 1 || h < 1 {
		return
	}
	rect := image.Rect(x, y, x+w, y+h)
	draw.Draw(img, rect, image.NewUniform(barColor), image.Point{}, draw.Src)
}

func drawCenteredText(img *image.RGBA, text string, centerX, baselineY int) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(textColor),
		Face: face,
	}
	width := d.MeasureString(text)
	d.Dot = fixed.Point26_6{
		X: fixed.I(centerX) - width/2,
		Y: fixed.I(baselineY),
	}
	d.DrawString(text)
}

func chartTitle(chart *internal.ChartDescriptor) string {
	if chart.Title != "" {
		return chart.Title
	}
	return "Chart"
}
