package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/billaged/billaged/internal/config"
	domain "github.com/billaged/billaged/internal/domain/pdf"
	"github.com/billaged/billaged/internal/logger"
	"github.com/billaged/billaged/internal/pdf"
	"github.com/billaged/billaged/internal/pdfgen"
	"github.com/spf13/cobra"
)

var (
	renderInput    string
	renderOutput   string
	renderTemplate string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render an invoice JSON document to PDF",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.NewConfig()
		if err != nil {
			return err
		}

		log, err := logger.NewLoggerWithLevel(cfg.Logging.Level)
		if err != nil {
			return err
		}

		raw, err := os.ReadFile(renderInput)
		if err != nil {
			return fmt.Errorf("failed to read invoice data: %w", err)
		}

		var data domain.InvoiceData
		if err := json.Unmarshal(raw, &data); err != nil {
			return fmt.Errorf("failed to parse invoice data: %w", err)
		}

		tpl := domain.DefaultTemplate()
		if renderTemplate != "" {
			rawTpl, err := os.ReadFile(renderTemplate)
			if err != nil {
				return fmt.Errorf("failed to read template: %w", err)
			}
			if err := json.Unmarshal(rawTpl, &tpl); err != nil {
				return fmt.Errorf("failed to parse template: %w", err)
			}
		}

		paginator := pdf.NewPaginator(cfg.Pdf.Layout)
		doc := paginator.Paginate(&data, tpl)

		renderer := pdfgen.NewFpdfRenderer(log)
		out, err := renderer.Compile(doc, tpl, cfg.Pdf.Layout)
		if err != nil {
			return err
		}

		if err := os.WriteFile(renderOutput, out, 0o644); err != nil {
			return fmt.Errorf("failed to write pdf: %w", err)
		}

		log.Infow("rendered invoice",
			"invoice_number", data.InvoiceNumber,
			"pages", len(doc.Pages),
			"output", renderOutput)
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVarP(&renderInput, "input", "i", "invoice.json", "invoice data JSON file")
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "invoice.pdf", "output PDF file")
	renderCmd.Flags().StringVarP(&renderTemplate, "template", "t", "", "template options JSON file")
	rootCmd.AddCommand(renderCmd)
}
