package service

import (
	"context"
	"time"

	"carrental-backend/internal/domain"
)

// RentalService is the rental lifecycle manager: the only writer of the rentals collection.
type RentalService interface {
	CreateRental(ctx context.Context, facts domain.BookingFacts) (*domain.Rental, error)
	GetRental(ctx context.Context, id string) (*domain.Rental, error)
	ListRentals(ctx context.Context) ([]domain.Rental, error)
	MostRecentActive(ctx context.Context) (*domain.Rental, error)
	MostRecent(ctx context.Context) (*domain.Rental, error)
	AdvanceToRented(ctx context.Context, id string) (*domain.Rental, error)
	SubmitReturn(ctx context.Context, id, returnLoc string, photos []string) (*domain.Rental, error)
	ConfirmPayment(ctx context.Context, id string) (*domain.Rental, error)
}

type BookingService interface {
	Catalog(ctx context.Context) []domain.Car
	SelectCar(ctx context.Context, name string, rate int64) (*domain.Selection, error)
	Selection(ctx context.Context) (*domain.Selection, error)
	Quote(ctx context.Context, req QuoteRequest) (domain.Quote, error)
	Book(ctx context.Context, req BookingRequest) (*domain.Rental, error)
	Confirmation(ctx context.Context) (*domain.LastBooking, error)
}

type ReturnService interface {
	ActiveRental(ctx context.Context) (*domain.Rental, error)
	SubmitReturn(ctx context.Context, id, returnLoc string, files []PhotoFile) (*domain.Rental, error)
}

type BillingService interface {
	Bill(ctx context.Context, id string) (*domain.Bill, error)
	Pay(ctx context.Context, id string) (*domain.Rental, error)
}

// Inspector assesses the damage fee of a submitted return.
type Inspector interface {
	Inspect(ctx context.Context, rental domain.Rental, photos []string) (int64, error)
}

// IDGenerator issues opaque unique identifiers for rentals and receipts.
type IDGenerator interface {
	NewID() string
}

// Clock supplies transition timestamps.
type Clock func() time.Time
