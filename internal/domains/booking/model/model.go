package model

import (
	"time"

	"fieldbook/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID            = "id"
	FieldFieldID       = "field_id"
	FieldHunterID      = "hunter_id"
	FieldBookingDate   = "booking_date"
	FieldNumHunters    = "num_hunters"
	FieldTotalPrice    = "total_price"
	FieldStatus        = "status"
	FieldPaymentMethod = "payment_method"
	FieldPaymentRef    = "payment_ref"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusRejected  = "rejected"
)

// ActiveStatuses are the statuses that hold capacity and block double booking.
var ActiveStatuses = []string{StatusPending, StatusConfirmed}

var allowedTransitions = map[string][]string{
	StatusPending:   {StatusConfirmed, StatusRejected},
	StatusConfirmed: {StatusCancelled},
}

// CanTransition reports whether the status change is a legal step of the
// booking lifecycle. Cancelled and rejected are terminal.
func CanTransition(from, to string) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}

	return false
}

type Booking struct {
	ID            string    `db:"id"`
	FieldID       string    `db:"field_id"`
	HunterID      string    `db:"hunter_id"`
	BookingDate   time.Time `db:"booking_date"`
	NumHunters    int       `db:"num_hunters"`
	TotalPrice    float64   `db:"total_price"`
	Status        string    `db:"status"`
	PaymentMethod string    `db:"payment_method"`
	PaymentRef    *string   `db:"payment_ref"`
	model.Metadata
}
