package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordTransition(t *testing.T) {
	before := testutil.ToFloat64(RentalTransitions.WithLabelValues("Inspected", "Billed"))
	RecordTransition("Inspected", "Billed")
	RecordTransition("Billed", "Billed")
	assert.Equal(t, before+1, testutil.ToFloat64(RentalTransitions.WithLabelValues("Inspected", "Billed")))

	created := testutil.ToFloat64(RentalTransitions.WithLabelValues("none", "Reserved"))
	RecordTransition("", "Reserved")
	assert.Equal(t, created+1, testutil.ToFloat64(RentalTransitions.WithLabelValues("none", "Reserved")))
}

func TestMiddleware(t *testing.T) {
	router := mux.NewRouter()
	router.Use(Middleware)
	router.HandleFunc("/api/v1/rentals/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	counter := RequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/rentals/{id}", "404")
	before := testutil.ToFloat64(counter)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/rentals/ABC", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
	assert.Equal(t, float64(0), testutil.ToFloat64(RequestsInFlight))
}
