package repository

import (
	"context"

	"carrental-backend/internal/domain"
)

// RentalRepository persists the whole rentals collection in insertion order.
// Every write replaces the full collection.
type RentalRepository interface {
	Load(ctx context.Context) ([]domain.Rental, error)
	Save(ctx context.Context, rentals []domain.Rental) error
}

// SessionRepository holds the transient records shared between the
// booking, return and billing views. Getters return domain.ErrNotFound
// when nothing has been stored yet.
type SessionRepository interface {
	GetSelection(ctx context.Context) (*domain.Selection, error)
	SaveSelection(ctx context.Context, sel *domain.Selection) error
	GetLastBooking(ctx context.Context) (*domain.LastBooking, error)
	SaveLastBooking(ctx context.Context, booking *domain.LastBooking) error
	GetLastBillingID(ctx context.Context) (string, error)
	SaveLastBillingID(ctx context.Context, id string) error
}
