package domain

import "time"

type RentalStatus string

const (
	RentalStatusReserved  RentalStatus = "Reserved"
	RentalStatusRented    RentalStatus = "Rented"
	RentalStatusReturned  RentalStatus = "Returned (submitted)"
	RentalStatusInspected RentalStatus = "Inspected"
	RentalStatusBilled    RentalStatus = "Billed"
)

// AllRentalStatuses lists the statuses in lifecycle order.
var AllRentalStatuses = []RentalStatus{
	RentalStatusReserved,
	RentalStatusRented,
	RentalStatusReturned,
	RentalStatusInspected,
	RentalStatusBilled,
}

// rentalTransitions is the closed set of allowed status moves.
var rentalTransitions = map[RentalStatus]RentalStatus{
	RentalStatusReserved:  RentalStatusRented,
	RentalStatusRented:    RentalStatusReturned,
	RentalStatusReturned:  RentalStatusInspected,
	RentalStatusInspected: RentalStatusBilled,
}

// Valid reports whether s is one of the known statuses.
func (s RentalStatus) Valid() bool {
	switch s {
	case RentalStatusReserved, RentalStatusRented, RentalStatusReturned, RentalStatusInspected, RentalStatusBilled:
		return true
	}
	return false
}

// Active reports whether a rental in this status still awaits return or inspection.
func (s RentalStatus) Active() bool {
	return s == RentalStatusReserved || s == RentalStatusRented || s == RentalStatusReturned
}

// CanTransition reports whether the table allows moving from s to next.
func (s RentalStatus) CanTransition(next RentalStatus) bool {
	to, ok := rentalTransitions[s]
	return ok && to == next
}

// MaxReturnPhotos caps the photos kept on a return submission.
const MaxReturnPhotos = 6

// BookingFacts are the immutable inputs captured when a car is booked.
type BookingFacts struct {
	CustomerName string `json:"customerName"`
	Car          string `json:"car"`
	Plan         Plan   `json:"plan"`
	Start        string `json:"start"`
	End          string `json:"end"`
	Pickup       string `json:"pickup"`
	ReturnLoc    string `json:"returnLoc"`
	BaseTotal    int64  `json:"baseTotal"`
}

type Rental struct {
	ID           string `json:"id"`
	CustomerName string `json:"customerName"`
	Car          string `json:"car"`
	Plan         Plan   `json:"plan"`
	Start        string `json:"start"`
	End          string `json:"end"`
	Pickup       string `json:"pickup"`
	ReturnLoc    string `json:"returnLoc"`
	// BaseTotal is fixed at booking time; FinalTotal is always BaseTotal + DamageFee.
	BaseTotal      int64        `json:"baseTotal"`
	DamageFee      int64        `json:"damageFee"`
	FinalTotal     int64        `json:"finalTotal"`
	Status         RentalStatus `json:"status"`
	ImagesReturned []string     `json:"imagesReturned,omitempty"`
	CreatedAt      time.Time    `json:"createdAt"`
	ReturnedAt     *time.Time   `json:"returnedAt,omitempty"`
	PaidAt         *time.Time   `json:"paidAt,omitempty"`
	ReceiptRef     string       `json:"receiptRef,omitempty"`
}

// Transition moves the rental to next, rejecting anything outside the table.
func (r *Rental) Transition(next RentalStatus) error {
	if !r.Status.CanTransition(next) {
		return &StateError{RentalID: r.ID, From: r.Status, To: next}
	}
	r.Status = next
	return nil
}

// SetDamageFee assesses fee and keeps FinalTotal consistent.
func (r *Rental) SetDamageFee(fee int64) error {
	if fee < 0 {
		return &ValidationError{Field: "damageFee", Message: "damage fee must not be negative"}
	}
	r.DamageFee = fee
	r.FinalTotal = r.BaseTotal + r.DamageFee
	return nil
}

// Clone returns a deep copy so callers can mutate without touching the stored record.
func (r Rental) Clone() Rental {
	c := r
	if r.ImagesReturned != nil {
		c.ImagesReturned = append([]string(nil), r.ImagesReturned...)
	}
	if r.ReturnedAt != nil {
		t := *r.ReturnedAt
		c.ReturnedAt = &t
	}
	if r.PaidAt != nil {
		t := *r.PaidAt
		c.PaidAt = &t
	}
	return c
}

// FindMostRecentActive returns the active rental with the latest CreatedAt.
// Equal timestamps resolve to the later position in the collection.
func FindMostRecentActive(rentals []Rental) (Rental, bool) {
	idx := -1
	for i := range rentals {
		if !rentals[i].Status.Active() {
			continue
		}
		if idx < 0 || !rentals[i].CreatedAt.Before(rentals[idx].CreatedAt) {
			idx = i
		}
	}
	if idx < 0 {
		return Rental{}, false
	}
	return rentals[idx].Clone(), true
}

// FindMostRecent is FindMostRecentActive without the status filter.
func FindMostRecent(rentals []Rental) (Rental, bool) {
	idx := -1
	for i := range rentals {
		if idx < 0 || !rentals[i].CreatedAt.Before(rentals[idx].CreatedAt) {
			idx = i
		}
	}
	if idx < 0 {
		return Rental{}, false
	}
	return rentals[idx].Clone(), true
}

// IndexOf returns the position of id in rentals, or -1.
func IndexOf(rentals []Rental, id string) int {
	for i := range rentals {
		if rentals[i].ID == id {
			return i
		}
	}
	return -1
}
