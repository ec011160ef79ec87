package render

import (
	"fmt"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	DefaultExchangeRate = 5.5
	DefaultCurrency     = "BRL"
	DefaultLocale       = "pt-BR"
)

// A PriceFormatter converts a source price with a fixed exchange rate and
// formats it as a currency amount of the display locale.
type PriceFormatter struct {
	printer *message.Printer
	unit    currency.Unit
	rate    float64
}

func NewPriceFormatter(
	locale, currencyCode string, rate float64,
) (PriceFormatter, error) {
	const op = "render.NewPriceFormatter"

	tag, err := language.Parse(locale)
	if err != nil {
		return PriceFormatter{}, fmt.Errorf("%s: locale: %w", op, err)
	}

	unit, err := currency.ParseISO(currencyCode)
	if err != nil {
		return PriceFormatter{}, fmt.Errorf("%s: currency: %w", op, err)
	}

	return PriceFormatter{
		printer: message.NewPrinter(tag),
		unit:    unit,
		rate:    rate,
	}, nil
}

// Format renders price*rate, e.g. "R$ 55,00".
func (f PriceFormatter) Format(price float64) string {
	return f.printer.Sprint(currency.Symbol(f.unit.Amount(price * f.rate)))
}
