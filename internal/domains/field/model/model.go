package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"slices"

	"fieldbook/shared/model"
)

const (
	TableName  = "fields"
	EntityName = "field"

	FieldID                  = "id"
	FieldOutfitterID         = "outfitter_id"
	FieldName                = "name"
	FieldLocation            = "location"
	FieldType                = "field_type"
	FieldCapacity            = "capacity"
	FieldPricePerDay         = "price_per_day"
	FieldCurrency            = "currency"
	FieldBlockedDates        = "blocked_dates"
	FieldAutoApprove         = "auto_approve_bookings"
	FieldQuotaTotal          = "quota_total"
	FieldQuotaRemaining      = "quota_remaining"
	FieldQuotaSpecies        = "quota_species"
	FieldLastVisitDate       = "last_visit_date"
	FieldLastVisitHadHarvest = "last_visit_had_harvest"
	FieldActive              = "active"
)

const (
	TypeDIYLeased     = "diy-leased"
	TypeSubsidised    = "subsidised"
	TypeInternational = "international"
)

var errInvalidJSONBSource = errors.New("invalid jsonb source")

// DayList is a JSONB array of ISO calendar days ("2006-01-02").
type DayList []string

func (d DayList) Value() (driver.Value, error) {
	if d == nil {
		d = DayList{}
	}

	return json.Marshal(d) //nolint:wrapcheck
}

func (d *DayList) Scan(src any) error {
	if src == nil {
		*d = DayList{}

		return nil
	}

	raw, ok := src.([]byte)
	if !ok {
		return errInvalidJSONBSource
	}

	return json.Unmarshal(raw, d) //nolint:wrapcheck
}

type Field struct {
	ID                  string           `db:"id"`
	OutfitterID         string           `db:"outfitter_id"`
	Name                string           `db:"name"`
	Location            string           `db:"location"`
	FieldType           string           `db:"field_type"`
	Capacity            int              `db:"capacity"`
	PricePerDay         float64          `db:"price_per_day"`
	Currency            string           `db:"currency"`
	BlockedDates        DayList          `db:"blocked_dates"`
	AutoApproveBookings bool             `db:"auto_approve_bookings"`
	QuotaTotal          *int             `db:"quota_total"`
	QuotaRemaining      *int             `db:"quota_remaining"`
	QuotaSpecies        SpeciesQuotaList `db:"quota_species"`
	LastVisitDate       *string          `db:"last_visit_date"`
	LastVisitHadHarvest *bool            `db:"last_visit_had_harvest"`
	Active              bool             `db:"active"`
	model.Metadata
}

// IsBlocked reports whether bookings are closed on the given day.
func (f *Field) IsBlocked(day string) bool {
	return slices.Contains(f.BlockedDates, day)
}
