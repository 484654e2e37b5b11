package pricetext

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/SscSPs/dual_price_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ConvertFunc converts an amount from the primary into the secondary currency.
type ConvertFunc func(decimal.Decimal) decimal.Decimal

// Input carries the primary amounts behind a fragment. Which fields are read
// depends on the context.
type Input struct {
	Amount  decimal.Decimal
	Regular *decimal.Decimal
	Sale    *decimal.Decimal
	Min     *decimal.Decimal
	Max     *decimal.Decimal
}

// Annotator adds secondary amounts to primary price fragments.
type Annotator struct {
	Primary domain.CurrencyCode
	Options domain.DisplayOptions
	Convert ConvertFunc
}

// NewAnnotator creates an Annotator for a store operating in primary.
func NewAnnotator(primary domain.CurrencyCode, opts domain.DisplayOptions, convert ConvertFunc) *Annotator {
	return &Annotator{Primary: primary, Options: opts, Convert: convert}
}

// SecondaryLabel is the label of the currency added by the annotator.
func (a *Annotator) SecondaryLabel() string {
	return a.Primary.Other().Label()
}

// Annotate returns fragment with the secondary amount added for the given
// context. Fragments that already carry an annotation come back unchanged.
func (a *Annotator) Annotate(fragment string, ctx domain.AnnotationContext, in Input) (string, error) {
	if ctx == domain.ContextOrdersTable {
		return FormatSecondary(a.Convert(in.Amount), a.SecondaryLabel()), nil
	}
	if HasAnnotation(fragment, a.SecondaryLabel()) {
		return fragment, nil
	}

	switch ctx {
	case domain.ContextSingleProduct, domain.ContextCartItem, domain.ContextCartSubtotal, domain.ContextMiniCart:
		return a.single(fragment, in.Amount), nil

	case domain.ContextSalePrice:
		if in.Regular == nil || in.Sale == nil {
			return "", fmt.Errorf("sale price needs both regular and sale amounts")
		}
		return a.salePrice(*in.Regular, *in.Sale), nil

	case domain.ContextVariableProduct:
		if in.Min == nil || in.Max == nil {
			return "", fmt.Errorf("variable product needs min and max amounts")
		}
		return ComposeRange(fragment, a.Convert(*in.Min), a.Convert(*in.Max), in.Min.Equal(*in.Max), a.SecondaryLabel(), a.Options), nil

	case domain.ContextCartTotal, domain.ContextOrderTotal:
		return a.single(a.inlineTax(fragment), in.Amount), nil

	case domain.ContextFee, domain.ContextTaxLine, domain.ContextShippingLabel:
		if !in.Amount.IsPositive() {
			return fragment, nil
		}
		return a.single(fragment, in.Amount), nil

	case domain.ContextCoupon:
		if !in.Amount.IsPositive() {
			return fragment, nil
		}
		return Compose(fragment, FormatSecondary(a.Convert(in.Amount).Neg(), a.SecondaryLabel()), a.Options), nil
	}
	return "", fmt.Errorf("unknown annotation context %q", ctx)
}

func (a *Annotator) single(fragment string, amount decimal.Decimal) string {
	return Compose(fragment, FormatSecondary(a.Convert(amount), a.SecondaryLabel()), a.Options)
}

func (a *Annotator) salePrice(regular, sale decimal.Decimal) string {
	label := a.Primary.Label()
	regularDual := a.single(FormatSecondary(regular, label), regular)
	saleDual := a.single(FormatSecondary(sale, label), sale)
	return "<del>" + regularDual + "</del> <ins>" + saleDual + "</ins>"
}

var (
	includesTaxRe = regexp.MustCompile(`(?s)(<small[^>]*class="[^"]*includes_tax[^"]*"[^>]*>)(.*?)(</small>)`)

	inlineTaxAmountRe = map[domain.CurrencyCode]*regexp.Regexp{
		domain.BGN: inlineAmountRe(regexp.QuoteMeta(domain.LevLabel)),
		domain.EUR: inlineAmountRe(regexp.QuoteMeta(domain.EuroLabel)),
	}
)

func inlineAmountRe(symbol string) *regexp.Regexp {
	return regexp.MustCompile(`(\d+(?:[.,]\d{3})*(?:[.,]\d{2})?)\s*(?:&nbsp;)?(?:<span[^>]*class="[^"]*woocommerce-Price-currencySymbol[^"]*"[^>]*>` + symbol + `</span>|` + symbol + `)`)
}

// inlineTax annotates tax amounts inside <small class="includes_tax"> elements
// of a totals fragment.
func (a *Annotator) inlineTax(fragment string) string {
	if !strings.Contains(fragment, "includes_tax") || !strings.Contains(fragment, a.Primary.Label()) {
		return fragment
	}
	amountRe := inlineTaxAmountRe[a.Primary]

	return includesTaxRe.ReplaceAllStringFunc(fragment, func(small string) string {
		parts := includesTaxRe.FindStringSubmatch(small)
		inner := amountRe.ReplaceAllStringFunc(parts[2], func(match string) string {
			m := amountRe.FindStringSubmatch(match)
			amount, ok := parseInlineAmount(m[1])
			if !ok {
				return match
			}
			secondary := html.EscapeString(FormatSecondary(a.Convert(amount), a.SecondaryLabel()))
			if a.Options.Format == domain.FormatDivider {
				return match + " / " + secondary
			}
			return match + " (" + secondary + ")"
		})
		return parts[1] + inner + parts[3]
	})
}

func parseInlineAmount(raw string) (decimal.Decimal, bool) {
	if len(raw) > 3 && (raw[len(raw)-3] == '.' || raw[len(raw)-3] == ',') {
		return parseAmount(raw)
	}
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)
	amount, err := decimal.NewFromString(digits)
	return amount, err == nil
}

// AnnotateHTML walks an HTML fragment and annotates every element accepted by
// isPrice that does not carry an annotation yet. It returns the rendered
// fragment and the number of elements changed.
func (a *Annotator) AnnotateHTML(fragment string, isPrice func(*html.Node) bool) (string, int, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return "", 0, fmt.Errorf("failed to parse price fragment: %w", err)
	}
	for _, n := range nodes {
		body.AppendChild(n)
	}

	var targets []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && isPrice(n) {
			targets = append(targets, n)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(body)

	changed := 0
	for _, n := range targets {
		if HasAnnotationNode(n, a.SecondaryLabel()) {
			continue
		}
		amount, ok := ExtractAmount(strings.TrimSpace(nodeText(n)), a.Primary)
		if !ok {
			continue
		}
		a.insertSpan(n, FormatSecondary(a.Convert(amount), a.SecondaryLabel()))
		changed++
	}

	var sb strings.Builder
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&sb, c); err != nil {
			return "", 0, fmt.Errorf("failed to render price fragment: %w", err)
		}
	}
	return sb.String(), changed, nil
}

func (a *Annotator) insertSpan(n *html.Node, secondary string) {
	inner := "(" + secondary + ")"
	if a.Options.Format == domain.FormatDivider {
		inner = "/ " + secondary
	}
	span := &html.Node{
		Type:     html.ElementNode,
		Data:     "span",
		DataAtom: atom.Span,
		Attr:     []html.Attribute{{Key: "class", Val: AnnotationClass}},
	}
	span.AppendChild(&html.Node{Type: html.TextNode, Data: inner})
	gap := &html.Node{Type: html.TextNode, Data: " "}

	if a.Options.Position == domain.PositionLeft {
		first := n.FirstChild
		n.InsertBefore(span, first)
		n.InsertBefore(gap, first)
		return
	}
	n.AppendChild(gap)
	n.AppendChild(span)
}

// HasClass reports whether n is an element carrying class.
func HasClass(n *html.Node, class string) bool {
	return hasClass(n, class)
}
