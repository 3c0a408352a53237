package draft

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap/zaptest"

	"github.com/edwin-niwaha/pure-shopper/internal/catalog"
)

// captureSubmitter records forwarded payloads instead of calling the sales API.
type captureSubmitter struct {
	payloads []*Payload
	err      error
}

func (c *captureSubmitter) Submit(_ context.Context, p *Payload) error {
	if c.err != nil {
		return c.err
	}
	c.payloads = append(c.payloads, p)
	return nil
}

func newTestService(t *testing.T) (*Service, *captureSubmitter) {
	t.Helper()
	logger := zaptest.NewLogger(t)

	catalogStorage := catalog.NewLocalStorage()
	catalogService := catalog.NewService(catalogStorage, logger)
	err := catalogService.Seed([]catalog.Product{
		{ID: "P1", Name: "Widget", Volume: "50 ml", UnitPrice: decimal.RequireFromString("10.00")},
		{ID: "P2", Name: "Gadget", Volume: "100 ml", UnitPrice: decimal.RequireFromString("4.35")},
	})
	if err != nil {
		t.Fatalf("failed to seed catalog: %v", err)
	}

	submitter := &captureSubmitter{}
	svc := NewService(NewLocalStorage(), catalogService, submitter, logger)
	return svc, submitter
}

func TestNewService(t *testing.T) {
	svc, _ := newTestService(t)

	if svc == nil {
		t.Fatal("NewService returned nil")
	}
	if svc.storage == nil {
		t.Error("Service storage was not initialized")
	}
	if svc.logger == nil {
		t.Error("Service logger was not initialized")
	}
}

func TestCreateDraft_Empty(t *testing.T) {
	svc, _ := newTestService(t)

	d, err := svc.CreateDraft()
	if err != nil {
		t.Fatalf("CreateDraft returned error: %v", err)
	}
	if d.ID == "" {
		t.Error("expected a generated draft ID")
	}
	if len(d.Items) != 0 {
		t.Errorf("new draft should be empty, got %d items", len(d.Items))
	}
	if d.Totals.GrandTotal.StringFixed(2) != "0.00" {
		t.Errorf("new draft grand total = %s, want 0.00", d.Totals.GrandTotal.StringFixed(2))
	}
}

func TestAddItem_UnresolvedProductIsNoOp(t *testing.T) {
	svc, _ := newTestService(t)
	d, _ := svc.CreateDraft()

	for _, productID := range []string{"", "no-such-product"} {
		got, err := svc.AddItem(d.ID, productID)
		if err != nil {
			t.Fatalf("AddItem(%q) returned error: %v", productID, err)
		}
		if len(got.Items) != 0 {
			t.Errorf("AddItem(%q) should be a no-op, got %d items", productID, len(got.Items))
		}
	}
}

func TestAddItem_UnknownDraft(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.AddItem("missing-draft", "P1")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSubmit_BlockedOnUnderpayment(t *testing.T) {
	svc, submitter := newTestService(t)
	d, _ := svc.CreateDraft()
	svc.AddItem(d.ID, "P1")
	svc.SetQuantity(d.ID, "P1", "3")
	tax := "10"
	payed := "20.00"
	svc.UpdateCharges(d.ID, &tax, &payed)

	_, err := svc.Submit(context.Background(), d.ID, SubmitOptions{})

	if !errors.Is(err, ErrInsufficientPayment) {
		t.Fatalf("expected ErrInsufficientPayment, got %v", err)
	}
	if len(submitter.payloads) != 0 {
		t.Errorf("blocked submission must not forward a payload, got %d", len(submitter.payloads))
	}

	// The draft stays editable and unchanged.
	got, err := svc.GetDraft(d.ID)
	if err != nil {
		t.Fatalf("draft should survive a blocked submission: %v", err)
	}
	if len(got.Items) != 1 || got.Items[0].Quantity != 3 {
		t.Errorf("ledger changed by blocked submission: %+v", got.Items)
	}
}

func TestSubmit_ForwardsPayloadAndDiscardsDraft(t *testing.T) {
	svc, submitter := newTestService(t)
	d, _ := svc.CreateDraft()
	svc.AddItem(d.ID, "P1")
	svc.SetQuantity(d.ID, "P1", "3")
	tax := "10"
	payed := "33.00"
	svc.UpdateCharges(d.ID, &tax, &payed)

	receipt, err := svc.Submit(context.Background(), d.ID, SubmitOptions{TransDate: "2026-08-30"})
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if receipt.ReceiptNumber == "" {
		t.Error("expected a generated receipt number")
	}

	if len(submitter.payloads) != 1 {
		t.Fatalf("expected 1 forwarded payload, got %d", len(submitter.payloads))
	}
	p := submitter.payloads[0]
	if p.PaymentMethod != "CASH" {
		t.Errorf("payment method = %q, want default CASH", p.PaymentMethod)
	}
	if p.TransDate != "2026-08-30" {
		t.Errorf("trans_date = %q", p.TransDate)
	}
	if p.SubTotal != 30.00 || p.TaxAmount != 3.00 || p.GrandTotal != 33.00 {
		t.Errorf("totals = %v / %v / %v, want 30 / 3 / 33", p.SubTotal, p.TaxAmount, p.GrandTotal)
	}
	if p.AmountPayed != 33.00 || p.AmountChange != 0.00 {
		t.Errorf("payment = %v change %v, want 33 / 0", p.AmountPayed, p.AmountChange)
	}
	if len(p.Products) != 1 {
		t.Fatalf("expected 1 product record, got %d", len(p.Products))
	}
	rec := p.Products[0]
	if rec.ID != "P1" || rec.Price != 10.00 || rec.Quantity != 3 || rec.TotalProduct != 30.00 {
		t.Errorf("product record = %+v", rec)
	}

	// The submitted draft is discarded.
	if _, err := svc.GetDraft(d.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected submitted draft to be gone, got %v", err)
	}
}

func TestSubmit_InvalidPaymentMethod(t *testing.T) {
	svc, submitter := newTestService(t)
	d, _ := svc.CreateDraft()

	_, err := svc.Submit(context.Background(), d.ID, SubmitOptions{PaymentMethod: "BARTER"})
	if !errors.Is(err, ErrInvalidPaymentMethod) {
		t.Fatalf("expected ErrInvalidPaymentMethod, got %v", err)
	}
	if len(submitter.payloads) != 0 {
		t.Error("invalid payment method must not forward a payload")
	}
}

func TestSubmit_ForwardingFailureKeepsDraft(t *testing.T) {
	svc, submitter := newTestService(t)
	submitter.err = errors.New("sales API returned unexpected status: 500")

	d, _ := svc.CreateDraft()
	svc.AddItem(d.ID, "P2")
	payed := "5.00"
	svc.UpdateCharges(d.ID, nil, &payed)

	_, err := svc.Submit(context.Background(), d.ID, SubmitOptions{})
	if err == nil {
		t.Fatal("expected forwarding error")
	}

	if _, err := svc.GetDraft(d.ID); err != nil {
		t.Errorf("draft should survive a failed forward for retry: %v", err)
	}
}

// Repeated submits after a failure rebuild the payload from scratch rather
// than stacking records.
func TestSubmit_ReserializesFresh(t *testing.T) {
	svc, submitter := newTestService(t)
	submitter.err = errors.New("temporarily down")

	d, _ := svc.CreateDraft()
	svc.AddItem(d.ID, "P1")
	payed := "10.00"
	svc.UpdateCharges(d.ID, nil, &payed)

	if _, err := svc.Submit(context.Background(), d.ID, SubmitOptions{}); err == nil {
		t.Fatal("expected first submit to fail")
	}

	submitter.err = nil
	receipt, err := svc.Submit(context.Background(), d.ID, SubmitOptions{})
	if err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if len(receipt.Payload.Products) != 1 {
		t.Errorf("expected exactly 1 product record after retry, got %d", len(receipt.Payload.Products))
	}
}
