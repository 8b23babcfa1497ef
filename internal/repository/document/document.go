package document

import (
	"context"
	"errors"

	jsoniter "github.com/json-iterator/go"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"
	"carrental-backend/internal/storage"
)

// Document keys, kept compatible with the browser build. Rental timestamps
// written there as epoch milliseconds are read back by domain.Rental.
const (
	KeyRentals       = "rentals"
	KeySelection     = "selectedCar"
	KeyLastBooking   = "booking"
	KeyLastBillingID = "lastBillingId"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Store bundles the repositories served from one document store
type Store struct {
	repository.RentalRepository
	repository.SessionRepository
}

func NewStore(docs storage.Store) *Store {
	return &Store{
		RentalRepository:  NewRentalRepository(docs),
		SessionRepository: NewSessionRepository(docs),
	}
}

// read decodes key into v. found is false when the key holds no document.
func read(ctx context.Context, docs storage.Store, key string, v any) (found bool, err error) {
	data, err := docs.Get(ctx, key)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, domain.StorageError("read "+key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, domain.StorageError("decode "+key, err)
	}
	return true, nil
}

func write(ctx context.Context, docs storage.Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return domain.StorageError("encode "+key, err)
	}
	if err := docs.Put(ctx, key, data); err != nil {
		return domain.StorageError("write "+key, err)
	}
	return nil
}
