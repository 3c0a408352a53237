package catalog

import "github.com/shopspring/decimal"

// Product is a read-only catalog entry supplied by the embedding page.
type Product struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Volume    string          `json:"volume"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}
