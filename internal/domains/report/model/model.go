package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	fieldModel "fieldbook/internal/domains/field/model"
	"fieldbook/shared/model"
)

const (
	TableName  = "hunt_reports"
	EntityName = "report"

	FieldID               = "id"
	FieldSessionID        = "session_id"
	FieldFieldID          = "field_id"
	FieldHunterID         = "hunter_id"
	FieldAnimalsHarvested = "animals_harvested"
	FieldSpeciesHarvested = "species_harvested"
	FieldAnimalsDetail    = "animals_detail"
	FieldWeather          = "weather"
	FieldTimeSpentHours   = "time_spent_hours"
	FieldNotes            = "notes"
	FieldGroundRemarks    = "ground_remarks"
	FieldSuccess          = "success"
	FieldReviewRating     = "review_rating"
	FieldReviewText       = "review_text"
)

var errInvalidJSONBSource = errors.New("invalid jsonb source")

// HarvestCounts is the JSONB per-species tally of a report.
type HarvestCounts []fieldModel.HarvestCount

func (h HarvestCounts) Value() (driver.Value, error) {
	if h == nil {
		h = HarvestCounts{}
	}

	return json.Marshal(h) //nolint:wrapcheck
}

func (h *HarvestCounts) Scan(src any) error {
	if src == nil {
		*h = HarvestCounts{}

		return nil
	}

	raw, ok := src.([]byte)
	if !ok {
		return errInvalidJSONBSource
	}

	return json.Unmarshal(raw, h) //nolint:wrapcheck
}

type AnimalDetail struct {
	Species     string `json:"species"`
	Condition   string `json:"condition"`
	DiseaseType string `json:"disease_type,omitempty"`
	PhysicalTag string `json:"physical_tag,omitempty"`
	Remarks     string `json:"remarks,omitempty"`
}

// AnimalDetails is the JSONB per-animal breakdown of a report.
type AnimalDetails []AnimalDetail

func (a AnimalDetails) Value() (driver.Value, error) {
	if a == nil {
		a = AnimalDetails{}
	}

	return json.Marshal(a) //nolint:wrapcheck
}

func (a *AnimalDetails) Scan(src any) error {
	if src == nil {
		*a = AnimalDetails{}

		return nil
	}

	raw, ok := src.([]byte)
	if !ok {
		return errInvalidJSONBSource
	}

	return json.Unmarshal(raw, a) //nolint:wrapcheck
}

type HuntReport struct {
	ID               string        `db:"id"`
	SessionID        string        `db:"session_id"`
	FieldID          string        `db:"field_id"`
	HunterID         string        `db:"hunter_id"`
	AnimalsHarvested int           `db:"animals_harvested"`
	SpeciesHarvested HarvestCounts `db:"species_harvested"`
	AnimalsDetail    AnimalDetails `db:"animals_detail"`
	Weather          string        `db:"weather"`
	TimeSpentHours   float64       `db:"time_spent_hours"`
	Notes            string        `db:"notes"`
	GroundRemarks    string        `db:"ground_remarks"`
	Success          bool          `db:"success"`
	ReviewRating     *int          `db:"review_rating"`
	ReviewText       *string       `db:"review_text"`
	model.Metadata
}
