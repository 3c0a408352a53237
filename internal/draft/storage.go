package draft

import "errors"

// ErrNotFound is returned when no draft exists for the given ID.
var ErrNotFound = errors.New("draft not found")

// ErrEmptyID is returned when trying to store a draft with an empty ID.
var ErrEmptyID = errors.New("empty draft ID")

// Storage is the main interface for the draft storage layer.
type Storage interface {
	Set(d *Draft) error
	Read(id string) (*Draft, error)
	Delete(id string) error
}

// LocalStorage provides an in-memory implementation for storing drafts.
type LocalStorage struct {
	m map[string]*Draft
}

// NewLocalStorage instantiates a new LocalStorage for drafts with an empty map.
func NewLocalStorage() *LocalStorage {
	return &LocalStorage{
		m: map[string]*Draft{},
	}
}

// Set stores a draft. Returns ErrEmptyID if the draft has an empty ID.
func (l *LocalStorage) Set(d *Draft) error {
	if d.ID == "" {
		return ErrEmptyID
	}
	l.m[d.ID] = d
	return nil
}

// Read retrieves a draft by ID. Returns ErrNotFound if the draft is not found.
func (l *LocalStorage) Read(id string) (*Draft, error) {
	d, ok := l.m[id]
	if !ok {
		return nil, ErrNotFound
	}
	return d, nil
}

// Delete removes a draft by ID. Deleting an absent draft is not an error.
func (l *LocalStorage) Delete(id string) error {
	delete(l.m, id)
	return nil
}
