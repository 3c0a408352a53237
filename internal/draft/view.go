package draft

// Row is the rendered projection of one line item. Money fields are fixed to
// two decimal places; Number is the 1-based display position.
type Row struct {
	Number    int    `json:"number"`
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Volume    string `json:"volume"`
	UnitPrice string `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	LineTotal string `json:"line_total"`
}

// View is the rendered projection of a whole draft. It is derived from the
// draft on every request and never read back, so displayed totals cannot
// drift from the ledger. Field names match the sale form the page renders.
type View struct {
	ID            string `json:"id"`
	Rows          []Row  `json:"rows"`
	SubTotal      string `json:"sub_total"`
	TaxPercentage string `json:"tax_percentage"`
	TaxAmount     string `json:"tax_amount"`
	GrandTotal    string `json:"grand_total"`
	AmountPayed   string `json:"amount_payed"`
	AmountChange  string `json:"amount_change"`
}

// Render projects the draft into its display form.
func (d *Draft) Render() View {
	rows := make([]Row, 0, len(d.Items))
	for i, item := range d.Items {
		rows = append(rows, Row{
			Number:    i + 1,
			ProductID: item.ProductID,
			Name:      item.Name,
			Volume:    item.Volume,
			UnitPrice: item.UnitPrice.StringFixed(2),
			Quantity:  item.Quantity,
			LineTotal: item.LineTotal.StringFixed(2),
		})
	}

	return View{
		ID:            d.ID,
		Rows:          rows,
		SubTotal:      d.Totals.Subtotal.StringFixed(2),
		TaxPercentage: d.TaxPercentage.StringFixed(2),
		TaxAmount:     d.Totals.TaxAmount.StringFixed(2),
		GrandTotal:    d.Totals.GrandTotal.StringFixed(2),
		AmountPayed:   d.AmountTendered.StringFixed(2),
		AmountChange:  d.Totals.ChangeDue.StringFixed(2),
	}
}
