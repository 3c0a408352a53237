package draft

import (
	"context"
	"errors"
	"fmt"
	"time"

	"resty.dev/v3"
)

// ErrInsufficientPayment blocks submission when the amount tendered does not
// cover the grand total. The draft stays editable; this is the only
// validation failure shown to the user.
var ErrInsufficientPayment = errors.New("the paid amount must be equal to or greater than the total amount")

// ErrInvalidPaymentMethod is returned for a payment method outside the
// accepted choices.
var ErrInvalidPaymentMethod = errors.New("invalid payment method")

// Payment method choices accepted by the sales endpoint.
var paymentMethods = map[string]bool{
	"CASH":             true,
	"CREDIT_CARD":      true,
	"DEBIT_CARD":       true,
	"PAYPAL":           true,
	"BANK_TRANSFER":    true,
	"MTN_MOBILE_MONEY": true,
	"AIRTEL_MONEY":     true,
}

// ProductRecord is one serialized line item in the submission payload,
// in the shape the sales endpoint expects per product.
type ProductRecord struct {
	ID           string  `json:"id"`
	Price        float64 `json:"price"`
	Quantity     int     `json:"quantity"`
	TotalProduct float64 `json:"total_product"`
}

// Payload is the finished transaction handed to the sales endpoint.
type Payload struct {
	TransDate     string          `json:"trans_date"`
	CustomerID    string          `json:"customer_id,omitempty"`
	PaymentMethod string          `json:"payment_method"`
	SubTotal      float64         `json:"sub_total"`
	TaxPercentage float64         `json:"tax_percentage"`
	TaxAmount     float64         `json:"tax_amount"`
	GrandTotal    float64         `json:"grand_total"`
	AmountPayed   float64         `json:"amount_payed"`
	AmountChange  float64         `json:"amount_change"`
	Products      []ProductRecord `json:"products"`
}

// Receipt acknowledges a forwarded submission.
type Receipt struct {
	ReceiptNumber string    `json:"receipt_number"`
	SubmittedAt   time.Time `json:"submitted_at"`
	Payload       *Payload  `json:"payload"`
}

// SubmitOptions carry the submit-time fields that are not part of the ledger.
// Zero values get defaults: CASH and today's date.
type SubmitOptions struct {
	PaymentMethod string
	CustomerID    string
	TransDate     string
}

// serialize builds the wire payload from the current ledger state. It is
// rebuilt from scratch on every attempt, so repeated submits never stack
// stale records. Amounts are rounded to two places here, at the boundary.
func (d *Draft) serialize(opts SubmitOptions) *Payload {
	products := make([]ProductRecord, 0, len(d.Items))
	for _, item := range d.Items {
		products = append(products, ProductRecord{
			ID:           item.ProductID,
			Price:        item.UnitPrice.Round(2).InexactFloat64(),
			Quantity:     item.Quantity,
			TotalProduct: item.LineTotal.Round(2).InexactFloat64(),
		})
	}

	return &Payload{
		TransDate:     opts.TransDate,
		CustomerID:    opts.CustomerID,
		PaymentMethod: opts.PaymentMethod,
		SubTotal:      d.Totals.Subtotal.Round(2).InexactFloat64(),
		TaxPercentage: d.TaxPercentage.Round(2).InexactFloat64(),
		TaxAmount:     d.Totals.TaxAmount.Round(2).InexactFloat64(),
		GrandTotal:    d.Totals.GrandTotal.Round(2).InexactFloat64(),
		AmountPayed:   d.AmountTendered.Round(2).InexactFloat64(),
		AmountChange:  d.Totals.ChangeDue.Round(2).InexactFloat64(),
		Products:      products,
	}
}

// Submitter hands a finished payload to the external sales endpoint.
type Submitter interface {
	Submit(ctx context.Context, p *Payload) error
}

// RestySubmitter posts submissions to the sales endpoint over HTTP.
type RestySubmitter struct {
	client   *resty.Client
	salesURL string
}

// NewRestySubmitter creates a submitter targeting the given sales endpoint URL.
func NewRestySubmitter(salesURL string) *RestySubmitter {
	return &RestySubmitter{
		client:   resty.New().SetTimeout(10 * time.Second),
		salesURL: salesURL,
	}
}

// Submit posts the payload as JSON. Any non-2xx response is an error.
func (r *RestySubmitter) Submit(ctx context.Context, p *Payload) error {
	resp, err := r.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(p).
		Post(r.salesURL)
	if err != nil {
		return fmt.Errorf("error making request to sales API: %w", err)
	}
	if !resp.IsSuccess() {
		return fmt.Errorf("sales API returned unexpected status: %d", resp.StatusCode())
	}
	return nil
}

// Close releases the underlying HTTP client resources.
func (r *RestySubmitter) Close() error {
	return r.client.Close()
}
