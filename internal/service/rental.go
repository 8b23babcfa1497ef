package service

import (
	"context"
	"errors"
	"fmt"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/metrics"
	"carrental-backend/internal/repository"
)

const maxIDAttempts = 5

type rentalService struct {
	rentalRepo repository.RentalRepository
	inspector  Inspector
	ids        IDGenerator
	now        Clock
}

func NewRentalService(
	rentalRepo repository.RentalRepository,
	inspector Inspector,
	ids IDGenerator,
	now Clock,
) RentalService {
	if inspector == nil {
		inspector = NewZeroFeeInspector()
	}
	if ids == nil {
		ids = NewUUIDGenerator()
	}
	if now == nil {
		now = UTCClock
	}
	return &rentalService{
		rentalRepo: rentalRepo,
		inspector:  inspector,
		ids:        ids,
		now:        now,
	}
}

func (s *rentalService) CreateRental(ctx context.Context, facts domain.BookingFacts) (*domain.Rental, error) {
	logger.EnterMethod("rentalService.CreateRental", "car", facts.Car, "plan", facts.Plan)

	rentals, err := s.rentalRepo.Load(ctx)
	if err != nil {
		logger.ExitMethodWithError("rentalService.CreateRental", err)
		return nil, err
	}

	id, err := s.uniqueID(rentals)
	if err != nil {
		logger.ExitMethodWithError("rentalService.CreateRental", err)
		return nil, err
	}

	rental := domain.Rental{
		ID:           id,
		CustomerName: facts.CustomerName,
		Car:          facts.Car,
		Plan:         facts.Plan,
		Start:        facts.Start,
		End:          facts.End,
		Pickup:       facts.Pickup,
		ReturnLoc:    facts.ReturnLoc,
		BaseTotal:    facts.BaseTotal,
		DamageFee:    0,
		FinalTotal:   facts.BaseTotal,
		Status:       domain.RentalStatusReserved,
		CreatedAt:    s.now(),
	}

	if err := s.rentalRepo.Save(ctx, append(rentals, rental)); err != nil {
		logger.ExitMethodWithError("rentalService.CreateRental", err)
		return nil, err
	}
	metrics.RecordTransition("", string(rental.Status))

	logger.ExitMethod("rentalService.CreateRental", "rentalID", rental.ID, "baseTotal", rental.BaseTotal)
	return &rental, nil
}

func (s *rentalService) GetRental(ctx context.Context, id string) (*domain.Rental, error) {
	rentals, err := s.rentalRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	idx := domain.IndexOf(rentals, id)
	if idx < 0 {
		return nil, &domain.NotFoundError{Resource: "rental", ID: id}
	}
	r := rentals[idx].Clone()
	return &r, nil
}

func (s *rentalService) ListRentals(ctx context.Context) ([]domain.Rental, error) {
	return s.rentalRepo.Load(ctx)
}

func (s *rentalService) MostRecentActive(ctx context.Context) (*domain.Rental, error) {
	rentals, err := s.rentalRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	r, ok := domain.FindMostRecentActive(rentals)
	if !ok {
		return nil, &domain.NotFoundError{Resource: "active rental"}
	}
	return &r, nil
}

func (s *rentalService) MostRecent(ctx context.Context) (*domain.Rental, error) {
	rentals, err := s.rentalRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	r, ok := domain.FindMostRecent(rentals)
	if !ok {
		return nil, &domain.NotFoundError{Resource: "rental"}
	}
	return &r, nil
}

// AdvanceToRented records the office handover of a reserved car.
func (s *rentalService) AdvanceToRented(ctx context.Context, id string) (*domain.Rental, error) {
	return s.mutate(ctx, "AdvanceToRented", id, func(r *domain.Rental) error {
		return r.Transition(domain.RentalStatusRented)
	})
}

// SubmitReturn stores the return facts and runs inspection in one write.
// A reserved rental is handed over first.
func (s *rentalService) SubmitReturn(ctx context.Context, id, returnLoc string, photos []string) (*domain.Rental, error) {
	if len(photos) > domain.MaxReturnPhotos {
		photos = photos[:domain.MaxReturnPhotos]
	}

	return s.mutate(ctx, "SubmitReturn", id, func(r *domain.Rental) error {
		if r.Status != domain.RentalStatusReserved && r.Status != domain.RentalStatusRented {
			return &domain.StateError{RentalID: r.ID, From: r.Status, To: domain.RentalStatusReturned}
		}
		if r.Status == domain.RentalStatusReserved {
			if err := r.Transition(domain.RentalStatusRented); err != nil {
				return err
			}
		}

		returnedAt := s.now()
		r.ReturnLoc = returnLoc
		r.ImagesReturned = append([]string(nil), photos...)
		r.ReturnedAt = &returnedAt
		if err := r.Transition(domain.RentalStatusReturned); err != nil {
			return err
		}

		fee, err := s.inspector.Inspect(ctx, r.Clone(), r.ImagesReturned)
		if err != nil {
			return fmt.Errorf("inspection failed: %w", err)
		}
		if err := r.SetDamageFee(fee); err != nil {
			return err
		}
		return r.Transition(domain.RentalStatusInspected)
	})
}

// ConfirmPayment bills an inspected rental and issues its receipt.
// A billed rental is rejected so the existing receipt stays authoritative.
func (s *rentalService) ConfirmPayment(ctx context.Context, id string) (*domain.Rental, error) {
	return s.mutate(ctx, "ConfirmPayment", id, func(r *domain.Rental) error {
		if err := r.Transition(domain.RentalStatusBilled); err != nil {
			return err
		}
		paidAt := s.now()
		r.PaidAt = &paidAt
		r.ReceiptRef = "RCPT-" + s.ids.NewID()
		return nil
	})
}

// mutate loads the collection, applies fn to a copy of the target record and
// writes the whole collection back. Nothing is saved when fn fails.
func (s *rentalService) mutate(ctx context.Context, op, id string, fn func(r *domain.Rental) error) (*domain.Rental, error) {
	method := "rentalService." + op
	logger.EnterMethod(method, "rentalID", id)

	rentals, err := s.rentalRepo.Load(ctx)
	if err != nil {
		logger.ExitMethodWithError(method, err, "rentalID", id)
		return nil, err
	}

	idx := domain.IndexOf(rentals, id)
	if idx < 0 {
		err := &domain.NotFoundError{Resource: "rental", ID: id}
		logger.ExitMethodWithError(method, err, "rentalID", id)
		return nil, err
	}

	updated := rentals[idx].Clone()
	from := updated.Status
	if err := fn(&updated); err != nil {
		if errors.Is(err, domain.ErrInvalidTransition) {
			metrics.RecordStateRejection(op, string(from))
		}
		logger.ExitMethodWithError(method, err, "rentalID", id, "status", from)
		return nil, err
	}

	rentals[idx] = updated
	if err := s.rentalRepo.Save(ctx, rentals); err != nil {
		logger.ExitMethodWithError(method, err, "rentalID", id)
		return nil, err
	}
	metrics.RecordTransition(string(from), string(updated.Status))

	logger.ExitMethod(method, "rentalID", id, "from", from, "to", updated.Status)
	return &updated, nil
}

func (s *rentalService) uniqueID(rentals []domain.Rental) (string, error) {
	for i := 0; i < maxIDAttempts; i++ {
		id := s.ids.NewID()
		if id != "" && domain.IndexOf(rentals, id) < 0 {
			return id, nil
		}
	}
	return "", errors.New("could not generate a unique rental id")
}
