package service

import (
	"context"
	"strings"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/repository"
)

type returnService struct {
	rentals RentalService
	session repository.SessionRepository
	photos  *PhotoEncoder
}

func NewReturnService(rentals RentalService, session repository.SessionRepository, photos *PhotoEncoder) ReturnService {
	if photos == nil {
		photos = NewPhotoEncoder(0)
	}
	return &returnService{rentals: rentals, session: session, photos: photos}
}

// ActiveRental returns the rental awaiting return, handing it over first if
// it is still reserved.
func (s *returnService) ActiveRental(ctx context.Context) (*domain.Rental, error) {
	rental, err := s.rentals.MostRecentActive(ctx)
	if err != nil {
		return nil, err
	}
	if rental.Status != domain.RentalStatusReserved {
		return rental, nil
	}
	return s.rentals.AdvanceToRented(ctx, rental.ID)
}

func (s *returnService) SubmitReturn(ctx context.Context, id, returnLoc string, files []PhotoFile) (*domain.Rental, error) {
	returnLoc = strings.TrimSpace(returnLoc)
	if returnLoc == "" {
		return nil, &domain.ValidationError{Field: "returnLoc", Message: "select a return location"}
	}

	photos, err := s.photos.Encode(ctx, files)
	if err != nil {
		logger.Warn("Return photo upload failed", "rentalID", id, "error", err)
		return nil, err
	}

	rental, err := s.rentals.SubmitReturn(ctx, id, returnLoc, photos)
	if err != nil {
		return nil, err
	}

	// The billing view falls back to the most recent rental without it.
	if err := s.session.SaveLastBillingID(ctx, rental.ID); err != nil {
		logger.Warn("Failed to remember billing target", "rentalID", rental.ID, "error", err)
	}
	return rental, nil
}
