package pdfgen

import (
	"bytes"
	"strconv"

	domain "github.com/billaged/billaged/internal/domain/pdf"
	ierr "github.com/billaged/billaged/internal/errors"
	"github.com/billaged/billaged/internal/logger"
	"github.com/billaged/billaged/internal/pdf"
	"github.com/jung-kurt/gofpdf"
)

// FpdfRenderer replays a paginated document's draw instructions into a PDF.
// All layout decisions were already made by the paginator; this backend only
// positions text where the instructions say.
type FpdfRenderer struct {
	log *logger.Logger
}

// NewFpdfRenderer creates a new gofpdf-backed renderer
func NewFpdfRenderer(log *logger.Logger) Renderer {
	return &FpdfRenderer{log: log}
}

// Compile renders every page of the document into a single PDF
func (r *FpdfRenderer) Compile(doc *domain.Document, tpl domain.Template, layout pdf.Layout) ([]byte, error) {
	if doc == nil || len(doc.Pages) == 0 {
		return nil, ierr.NewError("empty document").
			WithHint("nothing to render").
			Mark(ierr.ErrInvalidOperation)
	}

	tpl = tpl.WithDefaults()

	f := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: layout.PageWidth, Ht: layout.PageHeight},
	})
	f.SetAutoPageBreak(false, 0)
	f.SetMargins(layout.MarginLeft, layout.MarginTop, layout.MarginRight)

	for _, page := range doc.Pages {
		f.AddPage()
		r.drawRows(f, page.Rows, tpl, layout)
		for _, block := range page.Texts {
			r.drawText(f, block, tpl)
		}
	}

	var buf bytes.Buffer
	if err := f.Output(&buf); err != nil {
		return nil, ierr.WithError(err).
			WithHint("failed to compile pdf document").
			Mark(ierr.ErrSystem)
	}

	r.log.Debugw("compiled invoice pdf", "pages", len(doc.Pages), "bytes", buf.Len())
	return buf.Bytes(), nil
}

func (r *FpdfRenderer) drawText(f *gofpdf.Fpdf, block domain.TextBlock, tpl domain.Template) {
	style := ""
	if block.FontWeight == domain.FontWeightBold {
		style = "B"
	}
	f.SetFont(tpl.BodyFont, style, block.FontSize)
	setTextColor(f, block.Color, tpl.TextColor)

	width := f.GetStringWidth(block.Text)
	x := block.X
	switch block.Align {
	case domain.AlignRight:
		x -= width
	case domain.AlignCenter:
		x -= width / 2
	}

	// TextBlock.Y is the top of the line; gofpdf positions by baseline
	f.Text(x, block.Y+block.FontSize*0.3528, block.Text)
}

func (r *FpdfRenderer) drawRows(f *gofpdf.Fpdf, rows []domain.TableRow, tpl domain.Template, layout pdf.Layout) {
	widths := layout.ColumnWidths()

	for _, row := range rows {
		style := ""
		if row.Header {
			style = "B"
		}
		f.SetFont(tpl.BodyFont, style, layout.BodyFontSize)
		setTextColor(f, tpl.TextColor, tpl.TextColor)

		f.SetXY(layout.MarginLeft, row.Y)
		for i, cell := range row.Cells {
			align := "L"
			if i > 0 {
				align = "R"
			}
			f.CellFormat(widths[i], layout.LineHeight+2, cell, "", 0, align, false, 0, "")
		}

		if row.Note != "" {
			f.SetFont(tpl.BodyFont, "I", layout.BodyFontSize-1)
			setTextColor(f, tpl.SecondaryColor, tpl.SecondaryColor)
			f.SetXY(layout.MarginLeft+4, row.Y+layout.LineHeight+2)
			f.CellFormat(widths[0]-4, layout.LineHeight, row.Note, "", 0, "L", false, 0, "")
		}
	}
}

func setTextColor(f *gofpdf.Fpdf, color, fallback string) {
	red, green, blue, ok := parseHexColor(color)
	if !ok {
		red, green, blue, ok = parseHexColor(fallback)
		if !ok {
			red, green, blue = 0, 0, 0
		}
	}
	f.SetTextColor(red, green, blue)
}

// parseHexColor parses a #rrggbb color; anything else reports ok = false
func parseHexColor(color string) (int, int, int, bool) {
	if len(color) != 7 || color[0] != '#' {
		return 0, 0, 0, false
	}
	value, err := strconv.ParseUint(color[1:], 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(value >> 16 & 0xff), int(value >> 8 & 0xff), int(value & 0xff), true
}
