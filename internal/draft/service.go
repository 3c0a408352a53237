package draft

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/edwin-niwaha/pure-shopper/internal/catalog"
)

// ProductLookup resolves a selected product ID to its catalog entry.
type ProductLookup interface {
	Lookup(id string) (*catalog.Product, error)
}

// Service provides high-level draft editing operations on a Storage backend.
// Mutations are serialized under one lock, so every call observes and leaves
// a draft whose displayed totals agree with its ledger.
type Service struct {
	mu        sync.Mutex
	storage   Storage
	catalog   ProductLookup
	submitter Submitter
	logger    *zap.Logger
}

// NewService creates a new draft Service.
func NewService(storage Storage, cat ProductLookup, submitter Submitter, logger *zap.Logger) *Service {
	if logger == nil {
		logger, _ = zap.NewProduction()
	}

	return &Service{
		storage:   storage,
		catalog:   cat,
		submitter: submitter,
		logger:    logger,
	}
}

// CreateDraft opens a new empty transaction draft.
func (s *Service) CreateDraft() (*Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	d := &Draft{
		ID:        uuid.NewString(),
		Items:     []LineItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	d.Recompute()

	if err := s.storage.Set(d); err != nil {
		s.logger.Error("failed to save draft", zap.String("draft_id", d.ID), zap.Error(err))
		return nil, fmt.Errorf("failed to save draft: %w", err)
	}

	s.logger.Info("draft created", zap.String("draft_id", d.ID))
	return d, nil
}

// GetDraft retrieves a draft by ID.
func (s *Service) GetDraft(id string) (*Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.storage.Read(id)
}

// AddItem resolves productID against the catalog and appends a row with
// quantity 1. An empty or unresolved product and a product that already has
// a row are both no-ops: the draft comes back unchanged either way.
func (s *Service) AddItem(draftID, productID string) (*Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.storage.Read(draftID)
	if err != nil {
		return nil, err
	}

	p, err := s.catalog.Lookup(productID)
	if err != nil {
		s.logger.Warn("product selection did not resolve",
			zap.String("draft_id", draftID),
			zap.String("product_id", productID))
		return d, nil
	}

	if d.AddItem(p) {
		d.UpdatedAt = time.Now()
		s.logger.Info("line item added",
			zap.String("draft_id", draftID),
			zap.String("product_id", p.ID),
			zap.String("sub_total", d.Totals.Subtotal.StringFixed(2)))
	}
	return d, nil
}

// SetQuantity updates a row's quantity from raw input, clamping to 1 on
// invalid values. An unknown product row is ignored.
func (s *Service) SetQuantity(draftID, productID, raw string) (*Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.storage.Read(draftID)
	if err != nil {
		return nil, err
	}

	if d.SetQuantity(productID, raw) {
		d.UpdatedAt = time.Now()
	}
	return d, nil
}

// RemoveItem deletes a row. Removing an absent row is a no-op.
func (s *Service) RemoveItem(draftID, productID string) (*Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.storage.Read(draftID)
	if err != nil {
		return nil, err
	}

	if d.RemoveItem(productID) {
		d.UpdatedAt = time.Now()
		s.logger.Info("line item removed",
			zap.String("draft_id", draftID),
			zap.String("product_id", productID))
	}
	return d, nil
}

// UpdateCharges applies tax-percentage and amount-tendered edits. A nil
// pointer means the field was not touched; anything unparsable defaults to 0.
func (s *Service) UpdateCharges(draftID string, taxPercentage, amountTendered *string) (*Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.storage.Read(draftID)
	if err != nil {
		return nil, err
	}

	if taxPercentage != nil {
		d.SetTaxPercentage(*taxPercentage)
	}
	if amountTendered != nil {
		d.SetAmountTendered(*amountTendered)
	}
	if taxPercentage != nil || amountTendered != nil {
		d.UpdatedAt = time.Now()
	}
	return d, nil
}

// Submit runs the submission gate: recompute for freshness, validate the
// payment covers the grand total, serialize the wire payload and forward it.
// A blocked or failed submission leaves the draft editable; a successful one
// discards the draft and returns the receipt.
func (s *Service) Submit(ctx context.Context, draftID string, opts SubmitOptions) (*Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.storage.Read(draftID)
	if err != nil {
		return nil, err
	}

	if opts.PaymentMethod == "" {
		opts.PaymentMethod = "CASH"
	}
	if !paymentMethods[opts.PaymentMethod] {
		return nil, fmt.Errorf("%w: '%s'", ErrInvalidPaymentMethod, opts.PaymentMethod)
	}
	if opts.TransDate == "" {
		opts.TransDate = time.Now().Format("2006-01-02")
	}

	d.Recompute()
	if d.AmountTendered.LessThan(d.Totals.GrandTotal) {
		s.logger.Warn("submission blocked: insufficient payment",
			zap.String("draft_id", draftID),
			zap.String("grand_total", d.Totals.GrandTotal.StringFixed(2)),
			zap.String("amount_payed", d.AmountTendered.StringFixed(2)))
		return nil, ErrInsufficientPayment
	}

	payload := d.serialize(opts)
	if err := s.submitter.Submit(ctx, payload); err != nil {
		s.logger.Error("failed to forward submission",
			zap.String("draft_id", draftID), zap.Error(err))
		return nil, fmt.Errorf("failed to forward submission: %w", err)
	}

	if err := s.storage.Delete(draftID); err != nil {
		s.logger.Error("failed to discard submitted draft",
			zap.String("draft_id", draftID), zap.Error(err))
	}

	receipt := &Receipt{
		ReceiptNumber: uuid.NewString(),
		SubmittedAt:   time.Now(),
		Payload:       payload,
	}
	s.logger.Info("draft submitted",
		zap.String("draft_id", draftID),
		zap.String("receipt_number", receipt.ReceiptNumber),
		zap.Float64("grand_total", payload.GrandTotal),
		zap.Int("items", len(payload.Products)))
	return receipt, nil
}
