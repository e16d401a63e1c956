package pdf

import (
	domain "github.com/billaged/billaged/internal/domain/pdf"
	"github.com/samber/lo"
)

// Layout describes the page geometry in millimetres and the base typography
// used by the paginator. The same layout must be handed to the rendering
// backend so that draw instructions land where the paginator measured them.
type Layout struct {
	PageWidth    float64 `json:"page_width" mapstructure:"page_width"`
	PageHeight   float64 `json:"page_height" mapstructure:"page_height"`
	MarginTop    float64 `json:"margin_top" mapstructure:"margin_top"`
	MarginBottom float64 `json:"margin_bottom" mapstructure:"margin_bottom"`
	MarginLeft   float64 `json:"margin_left" mapstructure:"margin_left"`
	MarginRight  float64 `json:"margin_right" mapstructure:"margin_right"`

	BodyFontSize    float64 `json:"body_font_size" mapstructure:"body_font_size"`
	HeadingFontSize float64 `json:"heading_font_size" mapstructure:"heading_font_size"`
	LineHeight      float64 `json:"line_height" mapstructure:"line_height"`
}

// DefaultLayout returns an A4 page with the stock margins
func DefaultLayout() Layout {
	return Layout{
		PageWidth:       210,
		PageHeight:      297,
		MarginTop:       15,
		MarginBottom:    18,
		MarginLeft:      15,
		MarginRight:     15,
		BodyFontSize:    10,
		HeadingFontSize: 16,
		LineHeight:      5,
	}
}

// ContentWidth returns the usable column width between the side margins
func (l Layout) ContentWidth() float64 {
	return l.PageWidth - l.MarginLeft - l.MarginRight
}

// contentBottom is the lowest Y a block may end on
func (l Layout) contentBottom() float64 {
	return l.PageHeight - l.MarginBottom
}

// Item table column widths, description takes the remainder.
const (
	colWidthQuantity = 18
	colWidthRate     = 28
	colWidthTax      = 18
	colWidthAmount   = 30
)

// ColumnWidths returns the item table column widths in order
// (description, quantity, rate, tax, amount).
func (l Layout) ColumnWidths() []float64 {
	desc := l.ContentWidth() - colWidthQuantity - colWidthRate - colWidthTax - colWidthAmount
	return []float64{desc, colWidthQuantity, colWidthRate, colWidthTax, colWidthAmount}
}

// Paginator lays out a computed invoice as an ordered sequence of fixed-size
// pages of positioned blocks. It is a pure projection: same inputs always
// produce the same page sequence, and the invoice data is never mutated.
type Paginator struct {
	layout Layout
}

// NewPaginator creates a paginator for the given layout. A zero layout is
// replaced by the default A4 geometry.
func NewPaginator(layout Layout) *Paginator {
	if layout.PageWidth <= 0 || layout.PageHeight <= 0 {
		layout = DefaultLayout()
	}
	return &Paginator{layout: layout}
}

// Paginate renders the invoice into pages. No block is ever split
// mid-content across pages: rows (including their note sub-line), the
// totals block and each wrapped text line are atomic for pagination.
func (p *Paginator) Paginate(data *domain.InvoiceData, tpl domain.Template) *domain.Document {
	tpl = tpl.WithDefaults()

	s := &layoutState{layout: p.layout, doc: &domain.Document{}}
	s.addPage()

	p.renderHeader(s, data, tpl)
	p.renderBillTo(s, data, tpl)
	p.renderItemTable(s, data)
	p.renderTotals(s, data, tpl)
	p.renderFreeText(s, data, tpl)

	return s.doc
}

// layoutState tracks the current page and the running vertical cursor
type layoutState struct {
	layout Layout
	doc    *domain.Document
	page   *domain.Page
	cursor float64
}

func (s *layoutState) addPage() {
	s.page = &domain.Page{
		Number: len(s.doc.Pages) + 1,
		Width:  s.layout.PageWidth,
		Height: s.layout.PageHeight,
	}
	s.doc.Pages = append(s.doc.Pages, s.page)
	s.cursor = s.layout.MarginTop
}

// ensure starts a new page when the cursor plus the block height would
// exceed the safe content height
func (s *layoutState) ensure(height float64) {
	if s.cursor+height > s.layout.contentBottom() {
		s.addPage()
	}
}

func (s *layoutState) text(t domain.TextBlock) {
	s.page.Texts = append(s.page.Texts, t)
}

// line emits a single left-aligned text line at the cursor and advances it
func (s *layoutState) line(text string, x, fontSize float64, weight domain.FontWeight, color string) {
	s.text(domain.TextBlock{
		Text:       text,
		X:          x,
		Y:          s.cursor,
		FontSize:   fontSize,
		FontWeight: weight,
		Align:      domain.AlignLeft,
		Color:      color,
	})
	s.cursor += s.layout.LineHeight
}

func (p *Paginator) renderHeader(s *layoutState, data *domain.InvoiceData, tpl domain.Template) {
	l := p.layout
	right := l.PageWidth - l.MarginRight
	top := s.cursor

	// left column: company identity
	y := top
	if data.Biller != nil {
		s.text(domain.TextBlock{
			Text: data.Biller.Name, X: l.MarginLeft, Y: y,
			FontSize: l.HeadingFontSize, FontWeight: domain.FontWeightBold,
			Align: domain.AlignLeft, Color: tpl.PrimaryColor,
		})
		y += l.LineHeight + 2

		if lo.FromPtr(tpl.ShowCompanyDetails) {
			for _, detail := range billerDetailLines(data.Biller) {
				s.text(domain.TextBlock{
					Text: detail, X: l.MarginLeft, Y: y,
					FontSize: l.BodyFontSize - 1, FontWeight: domain.FontWeightRegular,
					Align: domain.AlignLeft, Color: tpl.SecondaryColor,
				})
				y += l.LineHeight
			}
		}
	}

	// right column: invoice metadata
	meta := []struct {
		text   string
		size   float64
		weight domain.FontWeight
		color  string
	}{
		{"INVOICE", l.HeadingFontSize + 2, domain.FontWeightBold, tpl.PrimaryColor},
		{data.InvoiceNumber, l.BodyFontSize + 1, domain.FontWeightBold, tpl.TextColor},
		{data.Status, l.BodyFontSize, domain.FontWeightRegular, tpl.AccentColor},
		{"Issued: " + tpl.DateFormat.Format(data.IssueDate.Time), l.BodyFontSize - 1, domain.FontWeightRegular, tpl.SecondaryColor},
		{"Due: " + tpl.DateFormat.Format(data.DueDate.Time), l.BodyFontSize - 1, domain.FontWeightRegular, tpl.SecondaryColor},
	}
	my := top
	for _, m := range meta {
		s.text(domain.TextBlock{
			Text: m.text, X: right, Y: my,
			FontSize: m.size, FontWeight: m.weight,
			Align: domain.AlignRight, Color: m.color,
		})
		my += l.LineHeight + 1
	}

	if my > y {
		y = my
	}
	s.cursor = y + l.LineHeight
}

func billerDetailLines(b *domain.BillerInfo) []string {
	var lines []string
	for _, line := range []string{
		b.Address.Street,
		joinNonEmpty(b.Address.City, b.Address.State, b.Address.PostalCode),
		b.Address.Country,
		b.Email,
		b.Phone,
		b.Website,
	} {
		if line != "" {
			lines = append(lines, line)
		}
	}
	if b.TaxID != "" {
		lines = append(lines, "Tax ID: "+b.TaxID)
	}
	return lines
}

func joinNonEmpty(parts ...string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += ", "
		}
		out += p
	}
	return out
}

func (p *Paginator) renderBillTo(s *layoutState, data *domain.InvoiceData, tpl domain.Template) {
	l := p.layout

	var lines []string
	if data.Recipient != nil {
		lines = append(lines, data.Recipient.Name)
		for _, line := range []string{
			data.Recipient.Address.Street,
			joinNonEmpty(data.Recipient.Address.City, data.Recipient.Address.State, data.Recipient.Address.PostalCode),
			data.Recipient.Address.Country,
			data.Recipient.Email,
		} {
			if line != "" {
				lines = append(lines, line)
			}
		}
	}

	blockHeight := float64(len(lines)+1) * l.LineHeight
	s.ensure(blockHeight)

	s.line("Bill To", l.MarginLeft, l.BodyFontSize+1, domain.FontWeightBold, tpl.PrimaryColor)
	for _, line := range lines {
		s.line(line, l.MarginLeft, l.BodyFontSize, domain.FontWeightRegular, tpl.TextColor)
	}

	if data.Project != nil && data.Project.Name != "" {
		mid := l.MarginLeft + l.ContentWidth()/2
		s.text(domain.TextBlock{
			Text: "Project", X: mid, Y: s.cursor - blockHeight,
			FontSize: l.BodyFontSize + 1, FontWeight: domain.FontWeightBold,
			Align: domain.AlignLeft, Color: tpl.PrimaryColor,
		})
		s.text(domain.TextBlock{
			Text: data.Project.Name, X: mid, Y: s.cursor - blockHeight + l.LineHeight,
			FontSize: l.BodyFontSize, FontWeight: domain.FontWeightRegular,
			Align: domain.AlignLeft, Color: tpl.TextColor,
		})
	}

	s.cursor += l.LineHeight
}

func (p *Paginator) renderItemTable(s *layoutState, data *domain.InvoiceData) {
	l := p.layout

	header := domain.TableRow{
		Cells:  []string{"Description", "Qty", "Rate", "Tax", "Amount"},
		Height: l.LineHeight + 2,
		Header: true,
	}
	s.ensure(header.Height + l.LineHeight)
	header.Y = s.cursor
	s.page.Rows = append(s.page.Rows, header)
	s.cursor += header.Height

	for _, item := range data.LineItems {
		row := domain.TableRow{
			Cells: []string{
				item.Description,
				FormatQuantity(item.Quantity),
				FormatAmount(item.Rate, data.Currency),
				FormatPercent(item.TaxRate),
				FormatAmount(item.Amount, data.Currency),
			},
			Note:   item.Note,
			Height: l.LineHeight + 2,
		}
		if item.Note != "" {
			// the indented note sub-line belongs to the row and
			// paginates with it
			row.Height += l.LineHeight
		}

		s.ensure(row.Height)
		row.Y = s.cursor
		s.page.Rows = append(s.page.Rows, row)
		s.cursor += row.Height
	}

	s.cursor += l.LineHeight
}

func (p *Paginator) renderTotals(s *layoutState, data *domain.InvoiceData, tpl domain.Template) {
	l := p.layout
	right := l.PageWidth - l.MarginRight
	labelX := right - colWidthAmount - 4

	type totalLine struct {
		label  string
		value  string
		weight domain.FontWeight
	}

	lines := []totalLine{
		{"Subtotal", FormatAmount(data.Subtotal, data.Currency), domain.FontWeightRegular},
	}
	if data.TaxAmount.IsPositive() {
		lines = append(lines, totalLine{"Tax", FormatAmount(data.TaxAmount, data.Currency), domain.FontWeightRegular})
	}
	if data.DiscountAmount.IsPositive() {
		lines = append(lines, totalLine{"Discount", "-" + FormatAmount(data.DiscountAmount, data.Currency), domain.FontWeightRegular})
	}
	lines = append(lines, totalLine{"Total", FormatAmount(data.TotalAmount, data.Currency), domain.FontWeightBold})
	if data.PaidAmount.IsPositive() {
		lines = append(lines, totalLine{"Paid", FormatAmount(data.PaidAmount, data.Currency), domain.FontWeightRegular})
		if data.PaymentDate != nil {
			lines = append(lines, totalLine{"Payment Date", tpl.DateFormat.Format(*data.PaymentDate), domain.FontWeightRegular})
		}
		lines = append(lines, totalLine{"Balance Due", FormatAmount(data.TotalAmount.Sub(data.PaidAmount), data.Currency), domain.FontWeightBold})
	}

	blockHeight := float64(len(lines)) * (l.LineHeight + 1)
	s.ensure(blockHeight)

	for _, line := range lines {
		s.text(domain.TextBlock{
			Text: line.label, X: labelX, Y: s.cursor,
			FontSize: l.BodyFontSize, FontWeight: line.weight,
			Align: domain.AlignRight, Color: tpl.TextColor,
		})
		s.text(domain.TextBlock{
			Text: line.value, X: right, Y: s.cursor,
			FontSize: l.BodyFontSize, FontWeight: line.weight,
			Align: domain.AlignRight, Color: tpl.TextColor,
		})
		s.cursor += l.LineHeight + 1
	}

	s.cursor += l.LineHeight
}

func (p *Paginator) renderFreeText(s *layoutState, data *domain.InvoiceData, tpl domain.Template) {
	l := p.layout

	p.renderTextSection(s, "Notes", data.Notes, tpl)

	if lo.FromPtr(tpl.ShowPaymentTerms) {
		terms := tpl.PaymentTermsText
		if terms == "" {
			terms = data.Terms
		}
		p.renderTextSection(s, "Payment Terms", terms, tpl)
	}

	p.renderTextSection(s, "Terms & Conditions", tpl.TermsAndConditions, tpl)

	if tpl.FooterText != "" {
		s.ensure(l.LineHeight)
		s.text(domain.TextBlock{
			Text: tpl.FooterText, X: l.MarginLeft + l.ContentWidth()/2, Y: s.cursor,
			FontSize: l.BodyFontSize - 1, FontWeight: domain.FontWeightRegular,
			Align: domain.AlignCenter, Color: tpl.SecondaryColor,
		})
		s.cursor += l.LineHeight
	}
}

// renderTextSection word-wraps the text to the content width and emits each
// wrapped line as its own atomic block
func (p *Paginator) renderTextSection(s *layoutState, heading, text string, tpl domain.Template) {
	if text == "" {
		return
	}
	l := p.layout

	maxChars := charsPerLine(l.ContentWidth(), l.BodyFontSize)
	wrapped := wrapText(text, maxChars)

	// heading stays with at least the first wrapped line
	s.ensure(2 * l.LineHeight)
	s.line(heading, l.MarginLeft, l.BodyFontSize+1, domain.FontWeightBold, tpl.PrimaryColor)

	for _, line := range wrapped {
		s.ensure(l.LineHeight)
		s.line(line, l.MarginLeft, l.BodyFontSize, domain.FontWeightRegular, tpl.TextColor)
	}

	s.cursor += l.LineHeight
}
