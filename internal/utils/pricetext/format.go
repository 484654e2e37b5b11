package pricetext

import (
	"github.com/SscSPs/dual_price_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/net/html"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatAmount renders two decimals with comma thousands grouping, e.g. "1,234.50".
func FormatAmount(amount decimal.Decimal) string {
	// amounts reaching here are already rounded to cents, so the float is exact enough
	return printer.Sprintf("%.2f", amount.Round(2).InexactFloat64())
}

// FormatSecondary renders amount followed by label, e.g. "12.78 €".
func FormatSecondary(amount decimal.Decimal, label string) string {
	return FormatAmount(amount) + " " + label
}

// Compose places the already formatted secondary amount next to primary.
// primary is inserted verbatim.
func Compose(primary, secondary string, opts domain.DisplayOptions) string {
	span := wrap(secondary, opts.Format)
	if opts.Position == domain.PositionLeft {
		return span + " " + primary
	}
	return primary + " " + span
}

// ComposeRange annotates a min/max price range with converted bounds. single
// reports whether the primary bounds were equal, in which case only min is shown.
func ComposeRange(primary string, min, max decimal.Decimal, single bool, label string, opts domain.DisplayOptions) string {
	if single {
		return Compose(primary, FormatSecondary(min, label), opts)
	}
	return Compose(primary, FormatAmount(min)+" - "+FormatAmount(max)+" "+label, opts)
}

func wrap(secondary string, format domain.Format) string {
	inner := "(" + html.EscapeString(secondary) + ")"
	if format == domain.FormatDivider {
		inner = "/ " + html.EscapeString(secondary)
	}
	return `<span class="` + AnnotationClass + `">` + inner + `</span>`
}

// RelabelLegacy renders an amount recorded in lev before the store switched to
// euro with the euro label. The amount is not converted. Discounts render negative.
func RelabelLegacy(amount decimal.Decimal, discount bool) string {
	if discount {
		return "-" + FormatSecondary(amount.Abs(), domain.EuroLabel)
	}
	return FormatSecondary(amount, domain.EuroLabel)
}
