package document

import (
	"context"
	"testing"
	"time"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDocStore struct {
	mock.Mock
}

func (m *MockDocStore) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockDocStore) Put(ctx context.Context, key string, data []byte) error {
	args := m.Called(ctx, key, data)
	return args.Error(0)
}

func TestRentalRepository_LoadSave(t *testing.T) {
	ctx := context.Background()
	repo := NewRentalRepository(storage.NewMemoryStore())

	t.Run("Empty store loads empty collection", func(t *testing.T) {
		rentals, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.NotNil(t, rentals)
		assert.Empty(t, rentals)
	})

	t.Run("Round trip keeps order and fields", func(t *testing.T) {
		created := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
		paid := created.Add(72 * time.Hour)
		in := []domain.Rental{
			{ID: "B", Car: "Civic", Plan: domain.PlanDaily, Status: domain.RentalStatusBilled, BaseTotal: 300, FinalTotal: 300, CreatedAt: created, PaidAt: &paid, ReceiptRef: "R1"},
			{ID: "A", Car: "Corolla", Plan: domain.PlanWeekly, Status: domain.RentalStatusReserved, BaseTotal: 567, FinalTotal: 567, CreatedAt: created.Add(time.Hour)},
		}
		require.NoError(t, repo.Save(ctx, in))

		out, err := repo.Load(ctx)
		require.NoError(t, err)
		require.Len(t, out, 2)
		assert.Equal(t, "B", out[0].ID)
		assert.Equal(t, "A", out[1].ID)
		assert.True(t, out[0].PaidAt.Equal(paid))
		assert.Nil(t, out[1].PaidAt)
	})
}

func TestRentalRepository_WireFormat(t *testing.T) {
	ctx := context.Background()
	docs := storage.NewMemoryStore()
	require.NoError(t, docs.Put(ctx, KeyRentals, []byte(`[{"id":"X1","customerName":"Guest","car":"Civic","plan":"weekly","start":"2024-01-01","end":"2024-01-10","pickup":"Downtown","returnLoc":"","baseTotal":1134,"damageFee":0,"finalTotal":1134,"status":"Returned (submitted)","createdAt":"2024-01-01T10:00:00Z"}]`)))

	rentals, err := NewRentalRepository(docs).Load(ctx)
	require.NoError(t, err)
	require.Len(t, rentals, 1)
	assert.Equal(t, domain.RentalStatusReturned, rentals[0].Status)
	assert.Equal(t, domain.PlanWeekly, rentals[0].Plan)
	assert.Equal(t, int64(1134), rentals[0].FinalTotal)
}

func TestRentalRepository_BrowserTimestamps(t *testing.T) {
	ctx := context.Background()
	docs := storage.NewMemoryStore()
	require.NoError(t, docs.Put(ctx, KeyRentals, []byte(`[{"id":"X1","customerName":"Guest","car":"Civic","plan":"daily","start":"2024-01-01","end":"2024-01-04","pickup":"Downtown","returnLoc":"East","baseTotal":300,"damageFee":0,"finalTotal":300,"status":"Billed","createdAt":1704103200000,"returnedAt":1704362400000,"paidAt":1704362460000,"receiptRef":"R1"}]`)))

	repo := NewRentalRepository(docs)
	rentals, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, rentals, 1)

	created := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, created, rentals[0].CreatedAt)
	require.NotNil(t, rentals[0].ReturnedAt)
	assert.Equal(t, created.Add(72*time.Hour), *rentals[0].ReturnedAt)
	require.NotNil(t, rentals[0].PaidAt)
	assert.Equal(t, created.Add(72*time.Hour+time.Minute), *rentals[0].PaidAt)

	// Saving rewrites the collection in RFC 3339.
	require.NoError(t, repo.Save(ctx, rentals))
	data, err := docs.Get(ctx, KeyRentals)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"createdAt":"2024-01-01T10:00:00Z"`)
}

func TestRentalRepository_StorageErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("Read failure", func(t *testing.T) {
		docs := new(MockDocStore)
		docs.On("Get", ctx, KeyRentals).Return(nil, assert.AnError)

		_, err := NewRentalRepository(docs).Load(ctx)
		assert.ErrorIs(t, err, domain.ErrStorage)
		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("Corrupt document", func(t *testing.T) {
		docs := new(MockDocStore)
		docs.On("Get", ctx, KeyRentals).Return([]byte(`{not json`), nil)

		_, err := NewRentalRepository(docs).Load(ctx)
		assert.ErrorIs(t, err, domain.ErrStorage)
	})

	t.Run("Write failure", func(t *testing.T) {
		docs := new(MockDocStore)
		docs.On("Put", ctx, KeyRentals, mock.Anything).Return(assert.AnError)

		err := NewRentalRepository(docs).Save(ctx, nil)
		assert.ErrorIs(t, err, domain.ErrStorage)
		docs.AssertExpectations(t)
	})
}

func TestSessionRepository(t *testing.T) {
	ctx := context.Background()
	store := NewStore(storage.NewMemoryStore())

	t.Run("Nothing stored", func(t *testing.T) {
		_, err := store.GetSelection(ctx)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		_, err = store.GetLastBooking(ctx)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		_, err = store.GetLastBillingID(ctx)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Selection", func(t *testing.T) {
		require.NoError(t, store.SaveSelection(ctx, &domain.Selection{Name: "Civic", Rate: 55}))
		sel, err := store.GetSelection(ctx)
		require.NoError(t, err)
		assert.Equal(t, &domain.Selection{Name: "Civic", Rate: 55}, sel)
	})

	t.Run("Last booking", func(t *testing.T) {
		b := &domain.LastBooking{RentalID: "A", Car: "Civic", Plan: domain.PlanDaily, Start: "2024-01-01", End: "2024-01-04", Total: 165}
		require.NoError(t, store.SaveLastBooking(ctx, b))
		got, err := store.GetLastBooking(ctx)
		require.NoError(t, err)
		assert.Equal(t, b, got)
	})

	t.Run("Billing id", func(t *testing.T) {
		require.NoError(t, store.SaveLastBillingID(ctx, "A"))
		id, err := store.GetLastBillingID(ctx)
		require.NoError(t, err)
		assert.Equal(t, "A", id)
	})
}
