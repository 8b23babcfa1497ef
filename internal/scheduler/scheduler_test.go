package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carrental-backend/internal/jobs"
	"carrental-backend/internal/repository/document"
	"carrental-backend/internal/service"
	"carrental-backend/internal/storage"
)

func newRunner() *jobs.JobRunner {
	store := document.NewStore(storage.NewMemoryStore())
	return jobs.NewJobRunner(service.NewRentalService(store.RentalRepository, nil, nil, nil), nil)
}

func TestNewScheduler(t *testing.T) {
	s, err := NewScheduler(newRunner(), "")
	require.NoError(t, err)
	assert.True(t, s.IsRunning())

	s.Start()
	s.Stop()
}

func TestNewScheduler_CustomSchedule(t *testing.T) {
	s, err := NewScheduler(newRunner(), "*/30 * * * * *")
	require.NoError(t, err)
	assert.True(t, s.IsRunning())
}

func TestNewScheduler_InvalidSchedule(t *testing.T) {
	_, err := NewScheduler(newRunner(), "every hour")
	assert.Error(t, err)

	// five-field expressions lack the seconds column
	_, err = NewScheduler(newRunner(), "0 * * * *")
	assert.Error(t, err)
}
