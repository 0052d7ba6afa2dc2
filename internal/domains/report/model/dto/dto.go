package dto

import (
	fieldModel "fieldbook/internal/domains/field/model"
	"fieldbook/internal/domains/report/model"
	"fieldbook/shared"
	gDto "fieldbook/shared/dto"
	gModel "fieldbook/shared/model"
	"fieldbook/shared/timezone"

	"github.com/google/uuid"
)

type HarvestCountRequest struct {
	Species  string `json:"species"  validate:"required,max=100"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

type AnimalDetailRequest struct {
	Species     string `json:"species"      validate:"required,max=100"`
	Condition   string `json:"condition"    validate:"required,max=100"`
	DiseaseType string `json:"disease_type" validate:"omitempty,max=100"`
	PhysicalTag string `json:"physical_tag" validate:"omitempty,max=100"`
	Remarks     string `json:"remarks"      validate:"omitempty,max=500"`
}

type CreateReportRequest struct {
	SessionID        string                `json:"session_id"        validate:"required,uuid"`
	AnimalsHarvested int                   `json:"animals_harvested" validate:"min=0"`
	SpeciesHarvested []HarvestCountRequest `json:"species_harvested" validate:"omitempty,dive"`
	AnimalsDetail    []AnimalDetailRequest `json:"animals_detail"    validate:"omitempty,dive"`
	Weather          string                `json:"weather"           validate:"omitempty,max=100"`
	TimeSpentHours   float64               `json:"time_spent_hours"  validate:"omitempty,min=0"`
	Notes            string                `json:"notes"             validate:"omitempty,max=2000"`
	GroundRemarks    string                `json:"ground_remarks"    validate:"omitempty,max=2000"`
	ReviewRating     *int                  `json:"review_rating"     validate:"omitempty,min=1,max=5"`
	ReviewText       *string               `json:"review_text"       validate:"omitempty,max=2000"`
}

func (c *CreateReportRequest) ToModel(hunterID, fieldID string) model.HuntReport {
	species := make(model.HarvestCounts, len(c.SpeciesHarvested))
	for i, harvest := range c.SpeciesHarvested {
		species[i] = fieldModel.HarvestCount{Species: harvest.Species, Quantity: harvest.Quantity}
	}

	details := make(model.AnimalDetails, len(c.AnimalsDetail))
	for i, detail := range c.AnimalsDetail {
		details[i] = model.AnimalDetail{
			Species:     detail.Species,
			Condition:   detail.Condition,
			DiseaseType: detail.DiseaseType,
			PhysicalTag: detail.PhysicalTag,
			Remarks:     detail.Remarks,
		}
	}

	return model.HuntReport{
		ID:               uuid.NewString(),
		SessionID:        c.SessionID,
		FieldID:          fieldID,
		HunterID:         hunterID,
		AnimalsHarvested: c.AnimalsHarvested,
		SpeciesHarvested: species,
		AnimalsDetail:    details,
		Weather:          c.Weather,
		TimeSpentHours:   c.TimeSpentHours,
		Notes:            c.Notes,
		GroundRemarks:    c.GroundRemarks,
		Success:          c.AnimalsHarvested > 0,
		ReviewRating:     c.ReviewRating,
		ReviewText:       c.ReviewText,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  hunterID,
			ModifiedBy: hunterID,
		},
	}
}

type UpdateReviewRequest struct {
	ReviewRating *int    `json:"review_rating" validate:"omitempty,min=1,max=5"`
	ReviewText   *string `json:"review_text"   validate:"omitempty,max=2000"`
}

type ReportResponse struct {
	ID               string               `json:"id"`
	SessionID        string               `json:"session_id"`
	FieldID          string               `json:"field_id"`
	HunterID         string               `json:"hunter_id"`
	AnimalsHarvested int                  `json:"animals_harvested"`
	SpeciesHarvested model.HarvestCounts  `json:"species_harvested"`
	AnimalsDetail    model.AnimalDetails  `json:"animals_detail"`
	Weather          string               `json:"weather"`
	TimeSpentHours   float64              `json:"time_spent_hours"`
	Notes            string               `json:"notes"`
	GroundRemarks    string               `json:"ground_remarks"`
	Success          bool                 `json:"success"`
	ReviewRating     *int                 `json:"review_rating,omitempty"`
	ReviewText       *string              `json:"review_text,omitempty"`
	gDto.Metadata
}

func (r *ReportResponse) FromModel(model model.HuntReport) {
	r.ID = model.ID
	r.SessionID = model.SessionID
	r.FieldID = model.FieldID
	r.HunterID = model.HunterID
	r.AnimalsHarvested = model.AnimalsHarvested
	r.SpeciesHarvested = model.SpeciesHarvested
	r.AnimalsDetail = model.AnimalsDetail
	r.Weather = model.Weather
	r.TimeSpentHours = model.TimeSpentHours
	r.Notes = model.Notes
	r.GroundRemarks = model.GroundRemarks
	r.Success = model.Success
	r.ReviewRating = model.ReviewRating
	r.ReviewText = model.ReviewText
	r.Metadata.FromModel(model.Metadata)
}

type GetReportsResponse struct {
	Reports   []ReportResponse `json:"reports"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetReportsResponse) FromModels(models []model.HuntReport, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reports = make([]ReportResponse, len(models))
	for i, mod := range models {
		r.Reports[i].FromModel(mod)
	}
}
