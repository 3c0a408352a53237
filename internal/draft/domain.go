package draft

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/edwin-niwaha/pure-shopper/internal/catalog"
)

var hundred = decimal.NewFromInt(100)

// LineItem is one row of a transaction draft. Name, volume and unit price are
// snapshotted from the catalog when the row is added, so later catalog edits
// never change an existing row. LineTotal is always UnitPrice * Quantity.
type LineItem struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Volume    string          `json:"volume"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// Totals holds the derived aggregate amounts of a draft.
type Totals struct {
	Subtotal   decimal.Decimal `json:"sub_total"`
	TaxAmount  decimal.Decimal `json:"tax_amount"`
	GrandTotal decimal.Decimal `json:"grand_total"`
	ChangeDue  decimal.Decimal `json:"amount_change"`
}

// Draft is a running transaction before submission. Items keep insertion
// order, one row per distinct product. All money is decimal internally;
// rounding to two places happens only when rendering or serializing.
type Draft struct {
	ID             string          `json:"id"`
	Items          []LineItem      `json:"items"`
	TaxPercentage  decimal.Decimal `json:"tax_percentage"`
	AmountTendered decimal.Decimal `json:"amount_payed"`
	Totals         Totals          `json:"totals"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func (d *Draft) find(productID string) int {
	for i := range d.Items {
		if d.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// AddItem appends a row for the product with quantity 1. Adding a product
// that already has a row is a no-op: the policy is one row per distinct
// product, not an increment. Reports whether a row was added.
func (d *Draft) AddItem(p *catalog.Product) bool {
	if p == nil || p.ID == "" {
		return false
	}
	if d.find(p.ID) >= 0 {
		return false
	}

	d.Items = append(d.Items, LineItem{
		ProductID: p.ID,
		Name:      p.Name,
		Volume:    p.Volume,
		UnitPrice: p.UnitPrice,
		Quantity:  1,
		LineTotal: p.UnitPrice,
	})
	d.Recompute()
	return true
}

// SetQuantity updates a row's quantity from raw user input. Anything that
// does not parse to an integer >= 1 clamps to 1. The row's line total is
// recomputed before the aggregate so the two can never disagree.
// A missing row is a no-op.
func (d *Draft) SetQuantity(productID, raw string) bool {
	i := d.find(productID)
	if i < 0 {
		return false
	}

	qty := parseQuantity(raw)
	d.Items[i].Quantity = qty
	d.Items[i].LineTotal = d.Items[i].UnitPrice.Mul(decimal.NewFromInt(int64(qty)))
	d.Recompute()
	return true
}

// RemoveItem deletes the row for productID. Removing an absent product is a
// no-op, so stale delete clicks are harmless. Reports whether a row was removed.
func (d *Draft) RemoveItem(productID string) bool {
	i := d.find(productID)
	if i < 0 {
		return false
	}
	d.Items = append(d.Items[:i], d.Items[i+1:]...)
	d.Recompute()
	return true
}

// SetTaxPercentage updates the tax rate from raw user input and recomputes.
// Unparsable or negative input falls back to 0.
func (d *Draft) SetTaxPercentage(raw string) {
	d.TaxPercentage = parseAmount(raw)
	d.Recompute()
}

// SetAmountTendered updates the amount tendered from raw user input and
// recomputes. Unparsable or negative input falls back to 0.
func (d *Draft) SetAmountTendered(raw string) {
	d.AmountTendered = parseAmount(raw)
	d.Recompute()
}

// Recompute rebuilds every aggregate from the per-line totals. The subtotal
// is summed from scratch on every call rather than adjusted incrementally,
// so repeated calls without a mutation always yield the same totals.
func (d *Draft) Recompute() {
	subtotal := decimal.Zero
	for i := range d.Items {
		subtotal = subtotal.Add(d.Items[i].LineTotal)
	}

	taxAmount := subtotal.Mul(d.TaxPercentage).Div(hundred)
	grandTotal := subtotal.Add(taxAmount)

	d.Totals = Totals{
		Subtotal:   subtotal,
		TaxAmount:  taxAmount,
		GrandTotal: grandTotal,
		// Change due may be negative; the gate, not the ledger, decides
		// whether that blocks submission.
		ChangeDue: d.AmountTendered.Sub(grandTotal),
	}
}

// parseQuantity interprets raw quantity input, clamping to 1 on anything
// invalid. Transient typing states ("", "-", "abc") are expected, not errors.
func parseQuantity(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// parseAmount interprets raw tax/tendered input, defaulting to 0 on anything
// invalid or negative.
func parseAmount(raw string) decimal.Decimal {
	v, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || v.IsNegative() {
		return decimal.Zero
	}
	return v
}
