package pdf

// Draw instructions produced by the paginator. A page sequence is sufficient
// for any rendering backend (raster, PDF, HTML) to reproduce the same
// visual layout.

// FontWeight selects the weight of a text block
type FontWeight string

const (
	FontWeightRegular FontWeight = "regular"
	FontWeightBold    FontWeight = "bold"
)

// Alignment positions a text block relative to its X coordinate
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// TextBlock is a single positioned run of text
type TextBlock struct {
	Text       string     `json:"text"`
	X          float64    `json:"x"`
	Y          float64    `json:"y"`
	FontSize   float64    `json:"font_size"`
	FontWeight FontWeight `json:"font_weight"`
	Align      Alignment  `json:"alignment"`
	Color      string     `json:"color,omitempty"`
}

// TableRow is one row of the item table, positioned at Y with the given
// effective height (a note sub-line increases the height of its row)
type TableRow struct {
	Cells  []string `json:"cells"`
	Note   string   `json:"note,omitempty"`
	Y      float64  `json:"y"`
	Height float64  `json:"height"`
	Header bool     `json:"header,omitempty"`
}

// Page is one bounded-height canvas of positioned blocks
type Page struct {
	Number int         `json:"number"`
	Width  float64     `json:"width"`
	Height float64     `json:"height"`
	Texts  []TextBlock `json:"texts"`
	Rows   []TableRow  `json:"rows"`
}

// Document is the ordered, finite page sequence for one invoice
type Document struct {
	Pages []*Page `json:"pages"`
}
