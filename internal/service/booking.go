package service

import (
	"context"
	"errors"
	"strings"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/repository"
	"carrental-backend/internal/utils"
)

const (
	minCardNumberLen = 12
	minCVVLen        = 3
	defaultCustomer  = "Guest"
)

type QuoteRequest struct {
	Car   string      `json:"car"`
	Plan  domain.Plan `json:"plan"`
	Start string      `json:"start"`
	End   string      `json:"end"`
}

type BookingRequest struct {
	QuoteRequest
	Pickup     string `json:"pickup"`
	ReturnLoc  string `json:"returnLoc"`
	CardName   string `json:"cardName"`
	CardNumber string `json:"cardNumber"`
	CVV        string `json:"cvv"`
}

type bookingService struct {
	catalog []domain.Car
	rentals RentalService
	session repository.SessionRepository
}

func NewBookingService(catalog []domain.Car, rentals RentalService, session repository.SessionRepository) BookingService {
	return &bookingService{
		catalog: append([]domain.Car(nil), catalog...),
		rentals: rentals,
		session: session,
	}
}

func (s *bookingService) Catalog(ctx context.Context) []domain.Car {
	return append([]domain.Car(nil), s.catalog...)
}

func (s *bookingService) SelectCar(ctx context.Context, name string, rate int64) (*domain.Selection, error) {
	name = strings.TrimSpace(name)
	if name == "" || rate <= 0 {
		return nil, &domain.ValidationError{Field: "car", Message: "missing car info"}
	}
	sel := &domain.Selection{Name: name, Rate: rate}
	if err := s.session.SaveSelection(ctx, sel); err != nil {
		return nil, err
	}
	return sel, nil
}

func (s *bookingService) Selection(ctx context.Context) (*domain.Selection, error) {
	return s.session.GetSelection(ctx)
}

func (s *bookingService) Quote(ctx context.Context, req QuoteRequest) (domain.Quote, error) {
	rate, err := s.rateFor(ctx, strings.TrimSpace(req.Car))
	if err != nil {
		return domain.Quote{}, err
	}
	return utils.ComputeTotal(rate, req.Plan, req.Start, req.End)
}

// Book prices the request, checks the demo payment fields and creates the
// reserved rental.
func (s *bookingService) Book(ctx context.Context, req BookingRequest) (*domain.Rental, error) {
	quote, err := s.Quote(ctx, req.QuoteRequest)
	if err != nil {
		return nil, err
	}
	if err := validatePayment(req.CardNumber, req.CVV); err != nil {
		return nil, err
	}

	customer := strings.TrimSpace(req.CardName)
	if customer == "" {
		customer = defaultCustomer
	}

	rental, err := s.rentals.CreateRental(ctx, domain.BookingFacts{
		CustomerName: customer,
		Car:          strings.TrimSpace(req.Car),
		Plan:         req.Plan,
		Start:        req.Start,
		End:          req.End,
		Pickup:       req.Pickup,
		ReturnLoc:    req.ReturnLoc,
		BaseTotal:    quote.Total,
	})
	if err != nil {
		return nil, err
	}

	last := &domain.LastBooking{
		RentalID:  rental.ID,
		Car:       rental.Car,
		Plan:      rental.Plan,
		Start:     rental.Start,
		End:       rental.End,
		Pickup:    rental.Pickup,
		ReturnLoc: rental.ReturnLoc,
		Total:     rental.BaseTotal,
	}
	if err := s.session.SaveLastBooking(ctx, last); err != nil {
		logger.Warn("Failed to store booking confirmation", "rentalID", rental.ID, "error", err)
	}
	return rental, nil
}

func (s *bookingService) Confirmation(ctx context.Context) (*domain.LastBooking, error) {
	return s.session.GetLastBooking(ctx)
}

// rateFor looks the car up in the catalog, then falls back to the current selection.
func (s *bookingService) rateFor(ctx context.Context, car string) (int64, error) {
	if car == "" {
		return 0, &domain.ValidationError{Field: "car", Message: "select a car first"}
	}
	for _, c := range s.catalog {
		if c.Name == car {
			return c.Rate, nil
		}
	}

	sel, err := s.session.GetSelection(ctx)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return 0, err
	}
	if sel != nil && sel.Name == car {
		return sel.Rate, nil
	}
	return 0, &domain.ValidationError{Field: "car", Message: "unknown car " + car}
}

func validatePayment(cardNumber, cvv string) error {
	digits := strings.Join(strings.Fields(cardNumber), "")
	if len(digits) < minCardNumberLen || len(strings.TrimSpace(cvv)) < minCVVLen {
		return &domain.ValidationError{Field: "payment", Message: "please enter a valid card number and CVV"}
	}
	return nil
}
