package document

import (
	"context"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"
	"carrental-backend/internal/storage"
)

type sessionRepository struct {
	docs storage.Store
}

func NewSessionRepository(docs storage.Store) repository.SessionRepository {
	return &sessionRepository{docs: docs}
}

func (s *sessionRepository) GetSelection(ctx context.Context) (*domain.Selection, error) {
	sel := &domain.Selection{}
	found, err := read(ctx, s.docs, KeySelection, sel)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, &domain.NotFoundError{Resource: "car selection"}
	}
	return sel, nil
}

func (s *sessionRepository) SaveSelection(ctx context.Context, sel *domain.Selection) error {
	return write(ctx, s.docs, KeySelection, sel)
}

func (s *sessionRepository) GetLastBooking(ctx context.Context) (*domain.LastBooking, error) {
	b := &domain.LastBooking{}
	found, err := read(ctx, s.docs, KeyLastBooking, b)
	if err != nil {
		return nil, err
	}
	if !found || b.Car == "" {
		return nil, &domain.NotFoundError{Resource: "booking"}
	}
	return b, nil
}

func (s *sessionRepository) SaveLastBooking(ctx context.Context, booking *domain.LastBooking) error {
	return write(ctx, s.docs, KeyLastBooking, booking)
}

func (s *sessionRepository) GetLastBillingID(ctx context.Context) (string, error) {
	var id string
	found, err := read(ctx, s.docs, KeyLastBillingID, &id)
	if err != nil {
		return "", err
	}
	if !found || id == "" {
		return "", &domain.NotFoundError{Resource: "billing target"}
	}
	return id, nil
}

func (s *sessionRepository) SaveLastBillingID(ctx context.Context, id string) error {
	return write(ctx, s.docs, KeyLastBillingID, id)
}
