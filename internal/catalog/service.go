package catalog

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Service provides read-only lookup and search over the product catalog.
type Service struct {
	storage Storage
	logger  *zap.Logger
}

// NewService creates a new catalog Service.
func NewService(storage Storage, logger *zap.Logger) *Service {
	if logger == nil {
		logger, _ = zap.NewProduction()
	}

	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// Seed loads the initial product set supplied by the page-rendering layer.
func (s *Service) Seed(products []Product) error {
	for i := range products {
		p := products[i]
		if p.UnitPrice.IsNegative() {
			return fmt.Errorf("product %q has negative unit price", p.ID)
		}
		if err := s.storage.Set(&p); err != nil {
			return fmt.Errorf("failed to seed product %q: %w", p.ID, err)
		}
	}
	s.logger.Info("catalog seeded", zap.Int("products", len(products)))
	return nil
}

// Lookup resolves a selected product ID to its catalog entry.
// An empty ID means nothing is selected and resolves to ErrProductNotFound.
func (s *Service) Lookup(id string) (*Product, error) {
	if id == "" {
		return nil, ErrProductNotFound
	}
	return s.storage.Read(id)
}

// Search returns the products whose name contains the query, case-insensitive.
// An empty query returns the whole catalog.
func (s *Service) Search(query string) ([]*Product, error) {
	all, err := s.storage.GetAll()
	if err != nil {
		s.logger.Error("failed to list catalog", zap.Error(err))
		return nil, fmt.Errorf("failed to list catalog: %w", err)
	}

	if query == "" {
		return all, nil
	}

	q := strings.ToLower(query)
	matched := make([]*Product, 0)
	for _, p := range all {
		if strings.Contains(strings.ToLower(p.Name), q) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}
