package config

import (
	"fmt"
	"strings"

	"github.com/billaged/billaged/internal/pdf"
	"github.com/billaged/billaged/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Configuration struct {
	Logging LoggingConfig `validate:"required"`
	Invoice InvoiceConfig `validate:"required"`
	Pdf     PdfConfig     `validate:"required"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

type InvoiceConfig struct {
	Numbering       types.NumberingConfig `mapstructure:"numbering"`
	DefaultCurrency string                `mapstructure:"default_currency"`
	DateFormat      string                `mapstructure:"date_format"`
	DueDays         int                   `mapstructure:"due_days"`
}

type PdfConfig struct {
	Layout pdf.Layout `mapstructure:"layout"`
}

func NewConfig() (*Configuration, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/billaged")

	// Set up environment variables support
	v.SetEnvPrefix("BILLAGED")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// a missing config file is fine, defaults and env vars apply
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Configuration
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	numbering := types.DefaultNumberingConfig()
	layout := pdf.DefaultLayout()

	v.SetDefault("logging.level", "info")
	v.SetDefault("invoice.numbering.prefix", numbering.Prefix)
	v.SetDefault("invoice.numbering.separator", numbering.Separator)
	v.SetDefault("invoice.numbering.suffix_length", numbering.SuffixLength)
	v.SetDefault("invoice.numbering.start_sequence", numbering.StartSequence)
	v.SetDefault("invoice.default_currency", types.CurrencyUSD.String())
	v.SetDefault("invoice.date_format", types.DateFormatMDY.String())
	v.SetDefault("invoice.due_days", types.InvoiceDefaultDueDays)
	v.SetDefault("pdf.layout.page_width", layout.PageWidth)
	v.SetDefault("pdf.layout.page_height", layout.PageHeight)
	v.SetDefault("pdf.layout.margin_top", layout.MarginTop)
	v.SetDefault("pdf.layout.margin_bottom", layout.MarginBottom)
	v.SetDefault("pdf.layout.margin_left", layout.MarginLeft)
	v.SetDefault("pdf.layout.margin_right", layout.MarginRight)
	v.SetDefault("pdf.layout.body_font_size", layout.BodyFontSize)
	v.SetDefault("pdf.layout.heading_font_size", layout.HeadingFontSize)
	v.SetDefault("pdf.layout.line_height", layout.LineHeight)
}

func (c *Configuration) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	if err := c.Invoice.Numbering.Validate(); err != nil {
		return err
	}
	return types.Currency(c.Invoice.DefaultCurrency).Validate()
}

// GetDefaultConfig returns the stock configuration used by tests
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Logging: LoggingConfig{Level: "debug"},
		Invoice: InvoiceConfig{
			Numbering:       types.DefaultNumberingConfig(),
			DefaultCurrency: types.CurrencyUSD.String(),
			DateFormat:      types.DateFormatMDY.String(),
			DueDays:         types.InvoiceDefaultDueDays,
		},
		Pdf: PdfConfig{Layout: pdf.DefaultLayout()},
	}
}
