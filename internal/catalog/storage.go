package catalog

import "errors"

// ErrProductNotFound is returned when no product exists for the given ID.
var ErrProductNotFound = errors.New("product not found")

// ErrEmptyID is returned when trying to store a product with an empty ID.
var ErrEmptyID = errors.New("empty product ID")

// Storage is the main interface for the product catalog layer.
type Storage interface {
	Set(product *Product) error
	Read(id string) (*Product, error)
	GetAll() ([]*Product, error)
}

// LocalStorage provides an in-memory implementation of the product catalog.
// Insertion order is preserved so listings match the order the page seeded.
type LocalStorage struct {
	m     map[string]*Product
	order []string
}

// NewLocalStorage instantiates a new LocalStorage with an empty catalog.
func NewLocalStorage() *LocalStorage {
	return &LocalStorage{
		m: map[string]*Product{},
	}
}

// Set stores a product in the catalog.
// Returns ErrEmptyID if the product has an empty ID.
func (l *LocalStorage) Set(product *Product) error {
	if product.ID == "" {
		return ErrEmptyID
	}
	if _, ok := l.m[product.ID]; !ok {
		l.order = append(l.order, product.ID)
	}
	l.m[product.ID] = product
	return nil
}

// Read retrieves a product from the catalog by ID.
// Returns ErrProductNotFound if the product is not found.
func (l *LocalStorage) Read(id string) (*Product, error) {
	p, ok := l.m[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	return p, nil
}

// GetAll retrieves every product in seeding order.
func (l *LocalStorage) GetAll() ([]*Product, error) {
	products := make([]*Product, 0, len(l.m))
	for _, id := range l.order {
		products = append(products, l.m[id])
	}
	return products, nil
}
