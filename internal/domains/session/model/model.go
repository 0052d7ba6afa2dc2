package model

import (
	"time"

	"fieldbook/shared/model"
)

const (
	TableName  = "hunt_sessions"
	EntityName = "session"

	FieldID        = "id"
	FieldBookingID = "booking_id"
	FieldHunterID  = "hunter_id"
	FieldFieldID   = "field_id"
	FieldStartTime = "start_time"
	FieldEndTime   = "end_time"
	FieldStatus    = "status"
)

const (
	StatusNotStarted = "not_started"
	StatusActive     = "active"
	StatusCompleted  = "completed"
)

type HuntSession struct {
	ID        string     `db:"id"`
	BookingID string     `db:"booking_id"`
	HunterID  string     `db:"hunter_id"`
	FieldID   string     `db:"field_id"`
	StartTime *time.Time `db:"start_time"`
	EndTime   *time.Time `db:"end_time"`
	Status    string     `db:"status"`
	model.Metadata
}
