package document

import (
	"context"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"
	"carrental-backend/internal/storage"
)

type rentalRepository struct {
	docs storage.Store
}

func NewRentalRepository(docs storage.Store) repository.RentalRepository {
	return &rentalRepository{docs: docs}
}

func (r *rentalRepository) Load(ctx context.Context) ([]domain.Rental, error) {
	var rentals []domain.Rental
	if _, err := read(ctx, r.docs, KeyRentals, &rentals); err != nil {
		return nil, err
	}
	if rentals == nil {
		rentals = []domain.Rental{}
	}
	return rentals, nil
}

func (r *rentalRepository) Save(ctx context.Context, rentals []domain.Rental) error {
	if rentals == nil {
		rentals = []domain.Rental{}
	}
	return write(ctx, r.docs, KeyRentals, rentals)
}
