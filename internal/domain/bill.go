package domain

type BillState string

const (
	BillStatePreparing BillState = "preparing"
	BillStateDue       BillState = "due"
	BillStatePaid      BillState = "paid"
)

// Bill is the billing view of one rental.
type Bill struct {
	Rental     Rental    `json:"rental"`
	State      BillState `json:"state"`
	BaseTotal  int64     `json:"baseTotal"`
	DamageFee  int64     `json:"damageFee"`
	FinalTotal int64     `json:"finalTotal"`
}

// NewBill derives the billing state from the rental status
func NewBill(r Rental) *Bill {
	state := BillStatePreparing
	switch r.Status {
	case RentalStatusInspected:
		state = BillStateDue
	case RentalStatusBilled:
		state = BillStatePaid
	}
	return &Bill{
		Rental:     r,
		State:      state,
		BaseTotal:  r.BaseTotal,
		DamageFee:  r.DamageFee,
		FinalTotal: r.BaseTotal + r.DamageFee,
	}
}
