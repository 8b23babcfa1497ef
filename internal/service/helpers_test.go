package service_test

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository/document"
	"carrental-backend/internal/service"
	"carrental-backend/internal/storage"

	"github.com/stretchr/testify/mock"
)

// sequenceIDs yields ID-1, ID-2, ...
type sequenceIDs struct {
	mu sync.Mutex
	n  int
}

func (s *sequenceIDs) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("ID-%d", s.n)
}

// stepClock advances one minute per call.
type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func newStepClock() *stepClock {
	return &stepClock{now: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Minute)
	return c.now
}

type fixture struct {
	docs    *storage.MemoryStore
	store   *document.Store
	ids     *sequenceIDs
	clock   *stepClock
	rentals service.RentalService
}

func newFixture() *fixture {
	docs := storage.NewMemoryStore()
	f := &fixture{
		docs:  docs,
		store: document.NewStore(docs),
		ids:   &sequenceIDs{},
		clock: newStepClock(),
	}
	f.rentals = service.NewRentalService(f.store.RentalRepository, nil, f.ids, f.clock.Now)
	return f
}

func sampleFacts() domain.BookingFacts {
	return domain.BookingFacts{
		CustomerName: "Ada",
		Car:          "Toyota Corolla",
		Plan:         domain.PlanDaily,
		Start:        "2024-01-01",
		End:          "2024-01-04",
		Pickup:       "Downtown Car Park A",
		ReturnLoc:    "East Car Park B",
		BaseTotal:    300,
	}
}

// MockRentalRepo
type MockRentalRepo struct {
	mock.Mock
}

func (m *MockRentalRepo) Load(ctx context.Context) ([]domain.Rental, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rental), args.Error(1)
}

func (m *MockRentalRepo) Save(ctx context.Context, rentals []domain.Rental) error {
	args := m.Called(ctx, rentals)
	return args.Error(0)
}

// MockInspector
type MockInspector struct {
	mock.Mock
}

func (m *MockInspector) Inspect(ctx context.Context, rental domain.Rental, photos []string) (int64, error) {
	args := m.Called(ctx, rental, photos)
	return args.Get(0).(int64), args.Error(1)
}

func textPhoto(name, body string) service.PhotoFile {
	return service.PhotoFile{
		Name: name,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(body)), nil
		},
	}
}

func failingPhoto(name string) service.PhotoFile {
	return service.PhotoFile{
		Name: name,
		Open: func() (io.ReadCloser, error) {
			return nil, fmt.Errorf("disk unplugged")
		},
	}
}
