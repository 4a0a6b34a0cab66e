package services

import (
	"github.com/SscSPs/bookkeeping_app/internal/platform/config"
	"github.com/SscSPs/bookkeeping_app/internal/utils"
)

// Formatters bundles the display conversions shared by the services.
type Formatters struct {
	Amounts  *utils.AmountFormatter
	Dates    *utils.DateFormatter
	Collator *utils.Collator
}

// DefaultFormatters uses "." as decimal separator, a space between thousands
// and day/month/year dates.
func DefaultFormatters() Formatters {
	return Formatters{
		Amounts:  utils.NewAmountFormatter(".", " "),
		Dates:    utils.NewDateFormatter("dmy"),
		Collator: utils.NewCollator("und"),
	}
}

// NewFormatters builds the formatters from the configuration.
func NewFormatters(cfg *config.Config) Formatters {
	return Formatters{
		Amounts:  utils.NewAmountFormatter(cfg.AmountDecimalSep, cfg.AmountThousandSep),
		Dates:    utils.NewDateFormatter(cfg.DateDisplayFormat),
		Collator: utils.NewCollator(cfg.CollationLocale),
	}
}
