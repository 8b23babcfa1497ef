package http

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/metrics"
	"carrental-backend/internal/service"
)

const (
	maxJSONBody      = 1 << 20
	maxFieldBytes    = 4 << 10
	photosFormField  = "photos"
	returnLocField   = "returnLoc"
	billingIDQuery   = "id"
	rentalIDRouteVar = "id"
)

// Handler serves the booking, return and billing pages' API
type Handler struct {
	booking       service.BookingService
	rentals       service.RentalService
	returns       service.ReturnService
	billing       service.BillingService
	maxPhotoBytes int64
}

func NewHandler(
	booking service.BookingService,
	rentals service.RentalService,
	returns service.ReturnService,
	billing service.BillingService,
	maxPhotoBytes int64,
) *Handler {
	if maxPhotoBytes <= 0 {
		maxPhotoBytes = service.DefaultMaxPhotoBytes
	}
	return &Handler{
		booking:       booking,
		rentals:       rentals,
		returns:       returns,
		billing:       billing,
		maxPhotoBytes: maxPhotoBytes,
	}
}

// RegisterRoutes registers the API endpoints and the metrics endpoint
func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.Use(metrics.Middleware)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/cars", h.ListCars).Methods("GET")
	api.HandleFunc("/selection", h.SelectCar).Methods("PUT")
	api.HandleFunc("/selection", h.GetSelection).Methods("GET")
	api.HandleFunc("/quotes", h.Quote).Methods("POST")
	api.HandleFunc("/bookings", h.Book).Methods("POST")
	api.HandleFunc("/bookings/last", h.LastBooking).Methods("GET")
	api.HandleFunc("/rentals", h.ListRentals).Methods("GET")
	api.HandleFunc("/rentals/active", h.ActiveRental).Methods("GET")
	api.HandleFunc("/rentals/{id}", h.GetRental).Methods("GET")
	api.HandleFunc("/rentals/{id}/return", h.SubmitReturn).Methods("POST")
	api.HandleFunc("/rentals/{id}/payment", h.Pay).Methods("POST")
	api.HandleFunc("/billing", h.Bill).Methods("GET")

	router.Handle("/metrics", promhttp.Handler()).Methods("GET")
}

// NewRouter builds a router with all routes registered
func NewRouter(h *Handler) *mux.Router {
	router := mux.NewRouter()
	h.RegisterRoutes(router)
	return router
}

func (h *Handler) ListCars(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.booking.Catalog(r.Context()))
}

func (h *Handler) SelectCar(w http.ResponseWriter, r *http.Request) {
	var req domain.Selection
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	sel, err := h.booking.SelectCar(r.Context(), req.Name, req.Rate)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sel)
}

func (h *Handler) GetSelection(w http.ResponseWriter, r *http.Request) {
	sel, err := h.booking.Selection(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sel)
}

func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	var req service.QuoteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	quote, err := h.booking.Quote(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

func (h *Handler) Book(w http.ResponseWriter, r *http.Request) {
	var req service.BookingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	rental, err := h.booking.Book(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rental)
}

func (h *Handler) LastBooking(w http.ResponseWriter, r *http.Request) {
	last, err := h.booking.Confirmation(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, last)
}

func (h *Handler) ListRentals(w http.ResponseWriter, r *http.Request) {
	rentals, err := h.rentals.ListRentals(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rentals)
}

// ActiveRental serves the return page; a reserved rental is handed over on first view.
func (h *Handler) ActiveRental(w http.ResponseWriter, r *http.Request) {
	rental, err := h.returns.ActiveRental(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (h *Handler) GetRental(w http.ResponseWriter, r *http.Request) {
	rental, err := h.rentals.GetRental(r.Context(), mux.Vars(r)[rentalIDRouteVar])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

// SubmitReturn accepts a multipart form with returnLoc and photos. Parts are
// streamed: the first six photos are kept and later ones are discarded.
// A plain urlencoded form without photos is accepted too.
func (h *Handler) SubmitReturn(w http.ResponseWriter, r *http.Request) {
	returnLoc, files, err := h.readReturnForm(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	rental, err := h.returns.SubmitReturn(r.Context(), mux.Vars(r)[rentalIDRouteVar], returnLoc, files)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

// readReturnForm buffers at most maxPhotoBytes+1 bytes of each kept photo so
// the encoder can still report an oversize file.
func (h *Handler) readReturnForm(r *http.Request) (string, []service.PhotoFile, error) {
	mr, err := r.MultipartReader()
	if errors.Is(err, http.ErrNotMultipart) {
		return r.FormValue(returnLocField), nil, nil
	}
	if err != nil {
		return "", nil, &domain.ValidationError{Field: photosFormField, Message: "invalid upload: " + err.Error()}
	}

	var (
		returnLoc string
		files     []service.PhotoFile
	)
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", nil, &domain.ValidationError{Field: photosFormField, Message: "invalid upload: " + err.Error()}
		}

		switch part.FormName() {
		case returnLocField:
			data, err := io.ReadAll(io.LimitReader(part, maxFieldBytes))
			if err != nil {
				part.Close()
				return "", nil, &domain.ValidationError{Field: returnLocField, Message: "invalid upload: " + err.Error()}
			}
			returnLoc = string(data)

		case photosFormField:
			if len(files) == domain.MaxReturnPhotos {
				break
			}
			data, err := io.ReadAll(io.LimitReader(part, h.maxPhotoBytes+1))
			if err != nil {
				part.Close()
				return "", nil, &domain.ValidationError{Field: photosFormField, Message: "invalid upload: " + err.Error()}
			}
			// An empty file input still sends a nameless part.
			if part.FileName() == "" && len(data) == 0 {
				break
			}
			files = append(files, bufferedPhoto(part.FileName(), data))
		}
		part.Close()
	}
	return returnLoc, files, nil
}

func bufferedPhoto(name string, data []byte) service.PhotoFile {
	return service.PhotoFile{
		Name: name,
		Open: func() (io.ReadCloser, error) { return io.NopCloser(bytes.NewReader(data)), nil },
	}
}

func (h *Handler) Bill(w http.ResponseWriter, r *http.Request) {
	bill, err := h.billing.Bill(r.Context(), r.URL.Query().Get(billingIDQuery))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bill)
}

func (h *Handler) Pay(w http.ResponseWriter, r *http.Request) {
	rental, err := h.billing.Pay(r.Context(), mux.Vars(r)[rentalIDRouteVar])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}
