package domain

type Plan string

const (
	PlanDaily   Plan = "daily"
	PlanWeekly  Plan = "weekly"
	PlanMonthly Plan = "monthly"
)

func (p Plan) Valid() bool {
	return p == PlanDaily || p == PlanWeekly || p == PlanMonthly
}

// Car is a catalog entry; Rate is the daily price in whole currency units.
type Car struct {
	Name string `json:"name" yaml:"name"`
	Rate int64  `json:"rate" yaml:"rate"`
}

// Selection is the transient "current selection" written by the car list.
type Selection struct {
	Name string `json:"name"`
	Rate int64  `json:"rate"`
}

// LastBooking is the transient record the confirmation view reads.
type LastBooking struct {
	RentalID  string `json:"rentalId"`
	Car       string `json:"car"`
	Plan      Plan   `json:"plan"`
	Start     string `json:"start"`
	End       string `json:"end"`
	Pickup    string `json:"pickup"`
	ReturnLoc string `json:"returnLoc"`
	Total     int64  `json:"total"`
}

// Quote is the priced outcome of a plan over a date span.
type Quote struct {
	Days  int   `json:"days"`
	Total int64 `json:"total"`
}
