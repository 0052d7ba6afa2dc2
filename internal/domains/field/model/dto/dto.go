package dto

import (
	"fieldbook/internal/domains/field/model"
	"fieldbook/shared"
	gDto "fieldbook/shared/dto"
)

type UpdateBlockedDatesRequest struct {
	BlockedDates []string `json:"blocked_dates" validate:"required,dive,day"`
}

type FieldResponse struct {
	ID                  string   `json:"id"`
	OutfitterID         string   `json:"outfitter_id"`
	Name                string   `json:"name"`
	Location            string   `json:"location"`
	FieldType           string   `json:"field_type"`
	Capacity            int      `json:"capacity"`
	PricePerDay         float64  `json:"price_per_day"`
	Currency            string   `json:"currency"`
	BlockedDates        []string `json:"blocked_dates"`
	AutoApproveBookings bool     `json:"auto_approve_bookings"`
	Active              bool     `json:"active"`
	gDto.Metadata
}

func (r *FieldResponse) FromModel(model model.Field) {
	r.ID = model.ID
	r.OutfitterID = model.OutfitterID
	r.Name = model.Name
	r.Location = model.Location
	r.FieldType = model.FieldType
	r.Capacity = model.Capacity
	r.PricePerDay = model.PricePerDay
	r.Currency = model.Currency
	r.BlockedDates = model.BlockedDates
	r.AutoApproveBookings = model.AutoApproveBookings
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetFieldsResponse struct {
	Fields    []FieldResponse `json:"fields"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetFieldsResponse) FromModels(models []model.Field, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Fields = make([]FieldResponse, len(models))
	for i, mod := range models {
		r.Fields[i].FromModel(mod)
	}
}

type QuotaSummaryResponse struct {
	FieldID   string                    `json:"field_id"`
	Tracked   bool                      `json:"tracked"`
	Total     int                       `json:"total"`
	Remaining int                       `json:"remaining"`
	Exhausted bool                      `json:"exhausted"`
	Species   []model.SpeciesQuotaEntry `json:"species,omitempty"`
}

func (r *QuotaSummaryResponse) FromModel(field model.Field) {
	quota := field.Quota()

	r.FieldID = field.ID
	r.Tracked = quota.Tracked()
	r.Total = quota.Total()
	r.Remaining = quota.Remaining()
	r.Exhausted = quota.Exhausted()

	if species, ok := quota.(*model.SpeciesQuota); ok {
		r.Species = species.Entries
	}
}
