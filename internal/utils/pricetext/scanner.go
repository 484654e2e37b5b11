package pricetext

import (
	"regexp"
	"strings"

	"github.com/SscSPs/dual_price_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/net/html"
)

// AnnotationClass marks the span that holds a secondary amount. Its presence
// means a fragment was already annotated.
const AnnotationClass = "eur-price"

// amountPattern matches "1 650,00", "1.650,00", "1,650.00", "25,00" and "25.00".
// The last separator must be followed by exactly two digits.
const amountPattern = `(\d+(?:[ \t\x{00A0}\x{202F}.,]\d{3})*[.,]\d{2})`

const space = `[\s\x{00A0}\x{202F}]*`

var (
	bareAmountRe = regexp.MustCompile(amountPattern + `(?:\D|$)`)

	currencyAmountRe = map[domain.CurrencyCode]*regexp.Regexp{
		domain.BGN: regexp.MustCompile(amountPattern + space + `(?:лв\.|BGN)`),
		domain.EUR: regexp.MustCompile(`(?:€` + space + amountPattern + `(?:\D|$)|` + amountPattern + space + `(?:€|EUR))`),
	}
)

// ExtractAmount finds the first price in fragment written in currency's notation.
// Markup is stripped first. A price next to the currency's symbol wins over a
// bare number.
func ExtractAmount(fragment string, currency domain.CurrencyCode) (decimal.Decimal, bool) {
	text := Text(fragment)

	if re, ok := currencyAmountRe[currency]; ok {
		if m := re.FindStringSubmatch(text); m != nil {
			for _, group := range m[1:] {
				if group != "" {
					return parseAmount(group)
				}
			}
		}
	}

	m := bareAmountRe.FindStringSubmatch(text)
	if m == nil {
		return decimal.Zero, false
	}
	return parseAmount(m[1])
}

// parseAmount treats the final separator as the decimal point and drops every
// other separator.
func parseAmount(raw string) (decimal.Decimal, bool) {
	if len(raw) < 4 {
		return decimal.Zero, false
	}
	fraction := raw[len(raw)-2:]
	integer := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw[:len(raw)-3])
	if integer == "" {
		integer = "0"
	}

	amount, err := decimal.NewFromString(integer + "." + fraction)
	if err != nil {
		return decimal.Zero, false
	}
	return amount, true
}

// HasAnnotation reports whether fragment already carries a secondary amount,
// either through the marker class or the secondary label.
func HasAnnotation(fragment, secondaryLabel string) bool {
	if strings.Contains(fragment, AnnotationClass) {
		return true
	}
	if secondaryLabel == "" {
		return false
	}
	return strings.Contains(fragment, secondaryLabel) || strings.Contains(Text(fragment), secondaryLabel)
}

// Text returns the decoded text content of an HTML fragment.
func Text(fragment string) string {
	if !strings.ContainsAny(fragment, "<&") {
		return fragment
	}

	var sb strings.Builder
	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF or a malformed tail; either way the text so far is all we get
			return sb.String()
		case html.TextToken:
			sb.Write(z.Text())
		}
	}
}
