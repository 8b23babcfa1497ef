package domain

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// UnmarshalJSON accepts createdAt, returnedAt and paidAt either as RFC 3339
// strings or as epoch milliseconds, the form the browser build writes.
// Rentals are always encoded with RFC 3339.
func (r *Rental) UnmarshalJSON(data []byte) error {
	type plain Rental
	var aux struct {
		plain
		CreatedAt  jsoniter.RawMessage `json:"createdAt"`
		ReturnedAt jsoniter.RawMessage `json:"returnedAt"`
		PaidAt     jsoniter.RawMessage `json:"paidAt"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	created, err := parseTimestamp(aux.CreatedAt)
	if err != nil {
		return fmt.Errorf("createdAt: %w", err)
	}
	returned, err := parseTimestamp(aux.ReturnedAt)
	if err != nil {
		return fmt.Errorf("returnedAt: %w", err)
	}
	paid, err := parseTimestamp(aux.PaidAt)
	if err != nil {
		return fmt.Errorf("paidAt: %w", err)
	}

	*r = Rental(aux.plain)
	r.CreatedAt = time.Time{}
	if created != nil {
		r.CreatedAt = *created
	}
	r.ReturnedAt = returned
	r.PaidAt = paid
	return nil
}

// parseTimestamp returns nil for a missing or null value.
func parseTimestamp(raw []byte) (*time.Time, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	if raw[0] == '"' {
		var t time.Time
		if err := json.Unmarshal(raw, &t); err != nil {
			return nil, err
		}
		return &t, nil
	}

	ms, err := strconv.ParseFloat(string(raw), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid timestamp %s", raw)
	}
	t := time.UnixMilli(int64(ms)).UTC()
	return &t, nil
}
