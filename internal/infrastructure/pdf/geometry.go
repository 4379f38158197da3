// Package pdf renders invoices and timesheet annexes onto fixed A4 pages.
// All layout runs in a semantic centimeter space with the origin at the page
// top; a pure conversion maps it to the canvas points at draw time.
package pdf

// pointsPerCm converts semantic centimeters to PDF points (1 in = 72 pt).
const pointsPerCm = 72.0 / 2.54

func toPoints(v float64) float64 {
	return v * pointsPerCm
}

// Geometry holds the fixed layout constants of one document style. Column
// centers in the composers align against these values, so they are named here
// instead of being scattered as literals.
type Geometry struct {
	PageWidth  float64 // cm
	PageHeight float64 // cm

	RowHeight float64
	RowSpace  float64

	TopMargin    float64 // first header baseline, from page top
	BottomMargin float64 // watermark baseline, from page bottom
	LeftMargin   float64
	RightMargin  float64

	FontTiny     float64
	FontSmall    float64
	FontNormal   float64
	FontSubtitle float64
	FontTitle    float64
}

// Center returns the horizontal page center.
func (g Geometry) Center() float64 {
	return g.PageWidth / 2
}

// invoiceGeometry is the page style shared by the invoice page and the
// timesheet annex.
func invoiceGeometry() Geometry {
	return Geometry{
		PageWidth:  21.0,
		PageHeight: 29.7,

		RowHeight: 0.5,
		RowSpace:  0.1,

		TopMargin:    1.1,
		BottomMargin: 0.7,
		LeftMargin:   1.9,
		RightMargin:  21.0 - 1.1,

		FontTiny:     8,
		FontSmall:    10,
		FontNormal:   11,
		FontSubtitle: 14,
		FontTitle:    20,
	}
}
