package pdf

import "github.com/jung-kurt/gofpdf"

// canvas wraps the gofpdf document with the semantic centimeter space of one
// geometry. Composers only ever talk to this type; the point conversion stays
// in one place.
type canvas struct {
	doc *gofpdf.Fpdf
	geo Geometry
}

func newCanvas(doc *gofpdf.Fpdf, geo Geometry) *canvas {
	return &canvas{doc: doc, geo: geo}
}

// setFont activates the proportional face; style is "" or "B".
func (c *canvas) setFont(style string, size float64) {
	c.doc.SetFont("Helvetica", style, size)
}

// setMonoFont activates the fixed-width face used by the watermark.
func (c *canvas) setMonoFont(size float64) {
	c.doc.SetFont("Courier", "", size)
}

// text draws s with its baseline starting at (x, y).
func (c *canvas) text(x, y float64, s string) {
	c.doc.Text(toPoints(x), toPoints(y), s)
}

// textCentered draws s centered on x.
func (c *canvas) textCentered(x, y float64, s string) {
	c.doc.Text(toPoints(x)-c.doc.GetStringWidth(s)/2, toPoints(y), s)
}

// textRight draws s ending at x.
func (c *canvas) textRight(x, y float64, s string) {
	c.doc.Text(toPoints(x)-c.doc.GetStringWidth(s), toPoints(y), s)
}

// line draws a stroke between two semantic points.
func (c *canvas) line(x1, y1, x2, y2 float64) {
	c.doc.SetDrawColor(0, 0, 0)
	c.doc.Line(toPoints(x1), toPoints(y1), toPoints(x2), toPoints(y2))
}

// width measures s under the active font, in centimeters.
func (c *canvas) width(s string) float64 {
	return c.doc.GetStringWidth(s) / pointsPerCm
}

// measurer exposes width measurement for the wrapping algorithm.
func (c *canvas) measurer() Measurer {
	return c.width
}

// addPage opens a fresh page for table carry-over.
func (c *canvas) addPage() {
	c.doc.AddPage()
}
