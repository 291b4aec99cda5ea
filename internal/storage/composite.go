package storage

import (
	"errors"
	"log"
)

// CompositeStorage writes to a primary backend and any number of mirrors.
// Only the primary's failure is returned; mirror failures are logged.
type CompositeStorage struct {
	primary Storage
	mirrors []Storage
}

// NewCompositeStorage creates a new composite storage around a primary backend
func NewCompositeStorage(primary Storage, mirrors ...Storage) *CompositeStorage {
	return &CompositeStorage{
		primary: primary,
		mirrors: mirrors,
	}
}

// Append writes to every backend, even after one of them fails.
func (cs *CompositeStorage) Append(entry Entry) error {
	err := cs.primary.Append(entry)
	if err != nil {
		log.Printf("Error saving to primary storage: %v", err)
	}
	for _, mirror := range cs.mirrors {
		if mErr := mirror.Append(entry); mErr != nil {
			log.Printf("Error saving to mirror storage: %v", mErr)
		}
	}
	return err
}

// Close closes all storage backends
func (cs *CompositeStorage) Close() error {
	var errs []error
	for _, storage := range append([]Storage{cs.primary}, cs.mirrors...) {
		if closer, ok := storage.(interface{ Close() error }); ok {
			if err := closer.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
