package pdf

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/kopsha/micro-invoicer/internal/application/usecase"
	"github.com/kopsha/micro-invoicer/internal/domain/billing"
	"github.com/kopsha/micro-invoicer/internal/domain/entity"
	"github.com/kopsha/micro-invoicer/pkg/config"
	"github.com/kopsha/micro-invoicer/pkg/logger"
)

var _ usecase.DocumentRenderer = (*Renderer)(nil)

// Renderer produces finished PDF documents from invoice aggregates.
type Renderer struct {
	cfg config.PDFConfig
	log *logger.Logger
}

// NewRenderer builds the renderer with its configuration.
func NewRenderer(cfg config.PDFConfig, log *logger.Logger) *Renderer {
	return &Renderer{cfg: cfg, log: log}
}

// Render produces the invoice page, followed by the work log annex when a
// timesheet is given.
func (r *Renderer) Render(ctx context.Context, doc *usecase.PrintableInvoice, ts *entity.Timesheet) ([]byte, error) {
	return r.render(ctx, doc, ts, true)
}

// RenderTimesheet produces the standalone work log annex.
func (r *Renderer) RenderTimesheet(ctx context.Context, doc *usecase.PrintableInvoice, ts *entity.Timesheet) ([]byte, error) {
	if ts == nil {
		return nil, fmt.Errorf("render timesheet of %s: no timesheet given", doc.Invoice.SeriesNumber())
	}
	return r.render(ctx, doc, ts, false)
}

func (r *Renderer) render(ctx context.Context, doc *usecase.PrintableInvoice, ts *entity.Timesheet, withInvoice bool) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mode, err := ModeForCountry(doc.Buyer.Country)
	if err != nil {
		return nil, err
	}
	valuation, err := billing.Valuate(doc.Invoice)
	if err != nil {
		return nil, err
	}
	formatter := NewFormatter(mode)

	pd := gofpdf.New("P", "pt", "A4", "")
	pd.SetAutoPageBreak(false, 0)
	r.setMetadata(pd, doc)

	canvas := newCanvas(pd, invoiceGeometry())

	if withInvoice {
		pd.AddPage()
		page := &invoicePage{c: canvas, f: formatter, doc: doc, val: valuation, watermark: r.cfg.Watermark}
		if err := page.render(); err != nil {
			return nil, err
		}
	}

	if ts != nil {
		pd.AddPage()
		annex := &timesheetPage{c: canvas, f: formatter, doc: doc, ts: ts, watermark: r.cfg.Watermark}
		if err := annex.render(); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := pd.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing PDF of %s: %w", doc.Invoice.SeriesNumber(), err)
	}

	r.log.Debug().
		Str("invoice", doc.Invoice.SeriesNumber()).
		Bool("annex", ts != nil).
		Int("bytes", buf.Len()).
		Msg("document assembled")

	return buf.Bytes(), nil
}

// setMetadata stamps the document identification fields.
func (r *Renderer) setMetadata(pd *gofpdf.Fpdf, doc *usecase.PrintableInvoice) {
	pd.SetTitle(doc.Invoice.SeriesNumber(), true)
	pd.SetAuthor(fmt.Sprintf("%s [%s]", doc.Seller.OwnerFullname, doc.Seller.Name), true)
	pd.SetSubject(fmt.Sprintf("acc. contract %s / %s",
		doc.Contract.RegistrationNo, doc.Contract.RegistrationDate.Format("02-Jan-2006")), true)
	pd.SetCreator(r.cfg.Creator, true)
}
