package pdfgen

import (
	domain "github.com/billaged/billaged/internal/domain/pdf"
	"github.com/billaged/billaged/internal/pdf"
)

// Renderer compiles a paginated document into a binary artifact
type Renderer interface {
	Compile(doc *domain.Document, tpl domain.Template, layout pdf.Layout) ([]byte, error)
}
