package service

import (
	"context"
	"errors"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/repository"
)

type billingService struct {
	rentals RentalService
	session repository.SessionRepository
}

func NewBillingService(rentals RentalService, session repository.SessionRepository) BillingService {
	return &billingService{rentals: rentals, session: session}
}

// Bill resolves the billing target: the given id, else the last returned
// rental, else the most recently created rental.
func (s *billingService) Bill(ctx context.Context, id string) (*domain.Bill, error) {
	if id == "" {
		last, err := s.session.GetLastBillingID(ctx)
		switch {
		case err == nil:
			id = last
		case errors.Is(err, domain.ErrNotFound):
		default:
			return nil, err
		}
	}

	if id != "" {
		rental, err := s.rentals.GetRental(ctx, id)
		if err == nil {
			return domain.NewBill(*rental), nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		logger.Debug("Billing target not found, using most recent rental", "rentalID", id)
	}

	rental, err := s.rentals.MostRecent(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, &domain.NotFoundError{Resource: "bill"}
		}
		return nil, err
	}
	return domain.NewBill(*rental), nil
}

func (s *billingService) Pay(ctx context.Context, id string) (*domain.Rental, error) {
	return s.rentals.ConfirmPayment(ctx, id)
}
