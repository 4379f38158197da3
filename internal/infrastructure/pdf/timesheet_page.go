package pdf

import (
	"github.com/kopsha/micro-invoicer/internal/application/usecase"
	"github.com/kopsha/micro-invoicer/internal/domain/entity"
)

// taskNameColumnWidth bounds the rendered task name, in cm.
const taskNameColumnWidth = 10.5

// timesheetPage lays out the work log annex. Long task lists carry over onto
// continuation pages with the table headings repeated.
type timesheetPage struct {
	c         *canvas
	f         *Formatter
	doc       *usecase.PrintableInvoice
	ts        *entity.Timesheet
	watermark string
}

func (p *timesheetPage) render() error {
	p.renderHeader()
	y := p.renderTitle()
	y = p.renderPeriodSubtitle(y)
	y = p.renderTasks(y)
	y = p.signatureStartY(y)
	p.renderSignatures(y)
	renderWatermark(p.c, p.watermark)
	return nil
}

func (p *timesheetPage) renderHeader() {
	geo := p.c.geo
	p.c.setFont("", geo.FontSmall)

	for i, line := range p.f.HeaderLines(p.doc.Seller, true) {
		p.c.text(geo.LeftMargin, geo.TopMargin+float64(i)*geo.RowHeight, line)
	}
	for i, line := range p.f.HeaderLines(p.doc.Buyer, false) {
		p.c.textRight(geo.RightMargin, geo.TopMargin+float64(i)*geo.RowHeight, line)
	}
}

func (p *timesheetPage) renderTitle() float64 {
	geo := p.c.geo
	p.c.setFont("", geo.FontTitle)

	y := 8.0
	p.c.textCentered(geo.Center(), y, p.f.TimesheetTitle())
	return y
}

// renderPeriodSubtitle names the covered month right of the page center.
func (p *timesheetPage) renderPeriodSubtitle(fromY float64) float64 {
	geo := p.c.geo
	p.c.setFont("", geo.FontSubtitle)

	y := fromY + geo.RowHeight + 2*geo.RowSpace
	p.c.text(geo.Center()+geo.RowSpace, y, p.f.MonthYear(p.ts.StartDate))
	return y + geo.RowHeight*2
}

// renderTaskHeadings draws the column captions and the rule below them,
// returning the y of the first content row.
func (p *timesheetPage) renderTaskHeadings(y float64) float64 {
	geo := p.c.geo
	p.c.setFont("", geo.FontSmall)
	for _, h := range p.f.TaskHeadings() {
		p.c.textCentered(h.X, y, h.Text)
	}
	p.c.line(geo.LeftMargin+1, y+geo.RowHeight/2, geo.RightMargin-1, y+geo.RowHeight/2)
	return y + geo.RowHeight*2
}

// renderTasks draws the task rows with a running total, breaking to a new
// page whenever the next row would cross the bottom margin.
func (p *timesheetPage) renderTasks(fromY float64) float64 {
	geo := p.c.geo
	// keep room for the closing rule and the total row
	bottomLimit := geo.PageHeight - geo.BottomMargin - 2*geo.RowHeight

	y := p.renderTaskHeadings(fromY + geo.RowHeight + geo.RowSpace)
	p.c.setFont("", geo.FontNormal)

	for _, task := range p.ts.Tasks {
		lines := WrapText(task.Name, taskNameColumnWidth, p.c.measurer())
		rowSpan := float64(len(lines))*geo.RowHeight + geo.RowSpace

		if y+rowSpan > bottomLimit {
			p.c.line(geo.LeftMargin+1, y-geo.RowHeight/2, geo.RightMargin-1, y-geo.RowHeight/2)
			renderWatermark(p.c, p.watermark)
			p.c.addPage()
			y = p.renderTaskHeadings(geo.TopMargin + geo.RowHeight)
			p.c.setFont("", geo.FontNormal)
		}

		p.c.textCentered(4, y, task.Date.Format("2006-01-02"))
		p.c.textCentered(7, y, task.Project)
		for i, line := range lines {
			p.c.text(9, y+float64(i)*geo.RowHeight, line)
		}
		p.c.textCentered(18, y, task.Duration.String())
		y += rowSpan
	}

	p.c.line(geo.LeftMargin+1, y-geo.RowHeight/2, geo.RightMargin-1, y-geo.RowHeight/2)
	y += geo.RowHeight

	p.c.setFont("B", geo.FontNormal)
	p.c.textRight(16, y, "Total")
	p.c.textCentered(18, y, p.ts.Duration().String())
	return y
}

// signatureStartY returns the y the signature block begins at. When the room
// left under the table cannot hold the whole block, the block moves to a fresh
// page; its lines never cross the bottom margin.
func (p *timesheetPage) signatureStartY(fromY float64) float64 {
	geo := p.c.geo
	// last signature line lands at fromY + 11*(RowHeight+RowSpace)
	needed := 11 * (geo.RowHeight + geo.RowSpace)
	if fromY+needed > geo.PageHeight-geo.BottomMargin {
		renderWatermark(p.c, p.watermark)
		p.c.addPage()
		return geo.TopMargin + geo.RowHeight
	}
	return fromY
}

// renderSignatures draws the two-column footer with the legal representatives
// and the stamp placeholders.
func (p *timesheetPage) renderSignatures(fromY float64) {
	geo := p.c.geo

	left := []string{
		p.sigLabel(true), "", p.doc.Seller.Name, p.doc.Seller.OwnerFullname, "", "L.S.",
	}
	right := []string{
		p.sigLabel(false), "", p.doc.Buyer.Name, p.doc.Buyer.OwnerFullname, "", "L.S.",
	}

	p.c.setFont("", geo.FontNormal)

	y := fromY + 6*(geo.RowHeight+geo.RowSpace)
	for _, t := range left {
		p.c.textCentered(6, y, t)
		y += geo.RowHeight + geo.RowSpace
	}
	y = fromY + 6*(geo.RowHeight+geo.RowSpace)
	for _, t := range right {
		p.c.textCentered(15, y, t)
		y += geo.RowHeight + geo.RowSpace
	}
}

func (p *timesheetPage) sigLabel(seller bool) string {
	if p.f.Domestic() {
		if seller {
			return "Furnizor:"
		}
		return "Beneficiar:"
	}
	if seller {
		return "Supplier:"
	}
	return "Buyer:"
}
