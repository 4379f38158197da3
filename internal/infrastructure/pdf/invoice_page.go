package pdf

import (
	"strconv"
	"strings"

	"github.com/kopsha/micro-invoicer/internal/application/usecase"
	"github.com/kopsha/micro-invoicer/internal/domain"
	"github.com/kopsha/micro-invoicer/internal/domain/billing"
)

// descriptionColumnWidth bounds the rendered item description, in cm.
const descriptionColumnWidth = 8.0

// invoicePage lays out one invoice page. Composers thread a top-down cursor in
// semantic units: each one takes the current y, draws its block and returns
// the y below it.
type invoicePage struct {
	c         *canvas
	f         *Formatter
	doc       *usecase.PrintableInvoice
	val       billing.Valuation
	watermark string
}

func (p *invoicePage) render() error {
	geo := p.c.geo

	p.renderHeader()
	y := p.renderTitle(p.f.InvoiceTitle())
	y = p.renderSubtitle(y)
	y, err := p.renderItems(y)
	if err != nil {
		return err
	}
	if y > geo.PageHeight-geo.BottomMargin {
		return &domain.LayoutOverflowError{
			Document:  p.doc.Invoice.SeriesNumber(),
			Needed:    y - (geo.PageHeight - geo.BottomMargin),
			Available: 0,
		}
	}
	renderWatermark(p.c, p.watermark)
	return nil
}

// renderHeader draws the two party blocks: seller flush left, buyer flush
// right, one text line per row.
func (p *invoicePage) renderHeader() {
	geo := p.c.geo
	p.c.setFont("", geo.FontSmall)

	for i, line := range p.f.HeaderLines(p.doc.Seller, true) {
		p.c.text(geo.LeftMargin, geo.TopMargin+float64(i)*geo.RowHeight, line)
	}
	for i, line := range p.f.HeaderLines(p.doc.Buyer, false) {
		p.c.textRight(geo.RightMargin, geo.TopMargin+float64(i)*geo.RowHeight, line)
	}
}

func (p *invoicePage) renderTitle(title string) float64 {
	geo := p.c.geo
	p.c.setFont("", geo.FontTitle)

	y := 8.0
	p.c.textCentered(geo.Center(), y, title)
	return y
}

// renderSubtitle writes the series number and issue date lines under the
// title, labels right of center, values left of it.
func (p *invoicePage) renderSubtitle(fromY float64) float64 {
	geo := p.c.geo
	p.c.setFont("", geo.FontSubtitle)

	cx := geo.Center()
	y := fromY + geo.RowHeight + 2*geo.RowSpace
	p.c.textRight(cx-geo.RowSpace, y, p.f.SubtitleNo())
	p.c.text(cx+geo.RowSpace, y, p.doc.Invoice.SeriesNumber())
	y += geo.RowHeight
	p.c.textRight(cx-geo.RowSpace, y, p.f.SubtitleFrom())
	p.c.text(cx+geo.RowSpace, y, p.f.Date(p.doc.Invoice.IssueDate))
	return y + geo.RowHeight*2
}

// renderItems draws the single aggregate line item, the optional VAT and
// attached cost lines, the payable total and the trailing notes.
func (p *invoicePage) renderItems(fromY float64) (float64, error) {
	geo := p.c.geo
	inv := p.doc.Invoice

	ruler := func(y float64) float64 {
		p.c.line(geo.LeftMargin, y+geo.RowHeight/2, geo.RightMargin, y+geo.RowHeight/2)
		return y + geo.RowHeight*2
	}

	p.c.setFont("B", geo.FontSmall)
	y := fromY + geo.RowHeight + 12*geo.RowSpace + geo.RowHeight/2
	for _, h := range p.f.ItemHeadings() {
		p.c.textCentered(h.X, y, h.Text)
	}
	y = ruler(y)

	p.c.setFont("", geo.FontNormal)
	descLines := p.descriptionLines()

	// The item row grows with the description; the numeric cells center on
	// the middle of the grown row.
	rowCenter := y + float64(len(descLines)-1)*geo.RowHeight/2
	p.c.textCentered(2.5, rowCenter, "1")
	for i, line := range descLines {
		p.c.textCentered(6, y+float64(i)*geo.RowHeight, line)
	}
	p.c.textCentered(11, rowCenter, p.f.Quantity(inv.Quantity))
	p.c.textCentered(13, rowCenter, p.f.Unit(inv.Unit))
	p.c.textCentered(15.5, rowCenter, p.f.Money(p.val.UnitPrice, inv.Currency))
	p.c.textCentered(18.35, rowCenter, p.f.Money(p.val.TimeValue, inv.Currency))
	y += float64(len(descLines)) * geo.RowHeight

	if inv.IncludeVAT > 0 {
		p.c.textCentered(6, y, p.f.VATLabel(strconv.Itoa(inv.IncludeVAT)+"%"))
		p.c.textCentered(18.35, y, p.f.Money(p.val.VATValue, inv.Currency))
		y += geo.RowHeight
	}
	if inv.AttachedCost.Valid {
		p.c.textCentered(6, y, inv.AttachedDescription)
		p.c.textCentered(18.35, y, p.f.Money(inv.AttachedCost.Decimal, inv.Currency))
		y += geo.RowHeight
	}

	y = ruler(y - geo.RowHeight/2)

	p.c.setFont("B", geo.FontSmall)
	p.c.textCentered(15.5, y, p.f.TotalLabel())
	p.c.setFont("B", geo.FontNormal)
	p.c.textCentered(18.35, y, p.f.Money(p.val.Total, inv.Currency))

	y += geo.RowHeight * 2
	y = p.renderConversionNote(y)
	y = p.renderFootnotes(y)
	return y, nil
}

// renderConversionNote documents the applied exchange rate, when one applies.
func (p *invoicePage) renderConversionNote(fromY float64) float64 {
	inv := p.doc.Invoice
	if !inv.ConversionRate.Valid {
		return fromY
	}
	geo := p.c.geo
	p.c.setFont("", geo.FontSmall)

	caption := "Exchange rate"
	if p.f.Domestic() {
		caption = "Curs BNR"
	}
	from := strings.ToUpper(p.doc.Contract.Currency)
	to := strings.ToUpper(inv.Currency)
	if p.f.Domestic() {
		to = "lei"
	}

	p.c.text(4, fromY, caption)
	p.c.text(4, fromY+geo.RowHeight, "1 "+from+" = "+p.f.Rate(inv.ConversionRate.Decimal)+" "+to)
	return fromY + geo.RowHeight*2
}

// renderFootnotes closes the page: domestic invoices carry the signature boxes
// and the no-stamp circulation note, international ones the reverse charge
// mention.
func (p *invoicePage) renderFootnotes(fromY float64) float64 {
	geo := p.c.geo
	y := fromY + geo.RowHeight*7

	if p.f.Domestic() {
		p.c.setFont("", geo.FontSmall)
		p.c.textCentered(4, y, "Semnatura si")
		p.c.textCentered(4, y+geo.RowHeight, "stampila furnizor")
		p.c.textCentered(17, y, "Semnatura")
		p.c.textCentered(17, y+geo.RowHeight, "de primire")

		p.c.setFont("", geo.FontTiny)
		p.c.textCentered(11, y, "Prezenta factura circula")
		p.c.textCentered(11, y+geo.RowHeight, "fara semnatura si stampila,")
		p.c.textCentered(11, y+2*geo.RowHeight, "cf. art. 319 (29) din Codul Fiscal")
		return y + geo.RowHeight*2
	}

	p.c.setFont("", geo.FontTiny)
	p.c.textCentered(geo.Center(), y, "VAT reverse charge,")
	p.c.textCentered(geo.Center(), y+geo.RowHeight, "acc. art. 196 of EU VAT Directive 2006/112/EC")
	return y + geo.RowHeight
}

// descriptionLines splits the item description over the soft two-line target
// and wraps any part still wider than the column, growing the row instead of
// overlapping neighbours. An absent description falls back to the contract
// reference.
func (p *invoicePage) descriptionLines() []string {
	desc := p.doc.Invoice.Description
	if desc == "" {
		first := "Furnizare servicii software,"
		prefix := "cf. contract "
		if !p.f.Domestic() {
			first = "Software services,"
			prefix = "acc. contract "
		}
		return []string{
			first,
			prefix + p.doc.Contract.RegistrationNo + " / " + p.f.Date(p.doc.Contract.RegistrationDate),
		}
	}

	first, second := SplitDescription(desc)
	lines := WrapText(first, descriptionColumnWidth, p.c.measurer())
	if second != "" {
		lines = append(lines, WrapText(second, descriptionColumnWidth, p.c.measurer())...)
	}
	return lines
}

// renderWatermark stamps the identification line at the bottom right corner.
func renderWatermark(c *canvas, text string) {
	geo := c.geo
	c.setMonoFont(geo.FontTiny)
	c.textRight(geo.RightMargin, geo.PageHeight-geo.BottomMargin, text)
}
