package dto

import (
	"fieldbook/internal/domains/tag/model"
	"fieldbook/shared"
	gDto "fieldbook/shared/dto"
	gModel "fieldbook/shared/model"
	"fieldbook/shared/timezone"

	"github.com/google/uuid"
)

type CreateTagRequest struct {
	ReportID    string  `json:"report_id"    validate:"required,uuid"`
	Species     string  `json:"species"      validate:"required,max=100"`
	Condition   string  `json:"condition"    validate:"required,max=100"`
	Photo       string  `json:"photo"        validate:"required"`
	PhysicalTag *string `json:"physical_tag" validate:"omitempty,max=100"`
	DiseaseType *string `json:"disease_type" validate:"omitempty,max=100"`
	Notes       *string `json:"notes"        validate:"omitempty,max=500"`
}

func (c *CreateTagRequest) ToModel(tagNumber, hunterID, fieldID, photoURL, qrCodeURL, user string) model.AnimalTag {
	return model.AnimalTag{
		ID:          uuid.NewString(),
		TagNumber:   tagNumber,
		ReportID:    c.ReportID,
		HunterID:    hunterID,
		FieldID:     fieldID,
		Species:     c.Species,
		Condition:   c.Condition,
		PhotoURL:    photoURL,
		QRCodeURL:   qrCodeURL,
		PhysicalTag: c.PhysicalTag,
		DiseaseType: c.DiseaseType,
		Notes:       c.Notes,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type TagResponse struct {
	ID          string  `json:"id"`
	TagNumber   string  `json:"tag_number"`
	ReportID    string  `json:"report_id"`
	HunterID    string  `json:"hunter_id"`
	FieldID     string  `json:"field_id"`
	Species     string  `json:"species"`
	Condition   string  `json:"condition"`
	PhotoURL    string  `json:"photo_url"`
	QRCodeURL   string  `json:"qr_code_url"`
	PhysicalTag *string `json:"physical_tag,omitempty"`
	DiseaseType *string `json:"disease_type,omitempty"`
	Notes       *string `json:"notes,omitempty"`
	gDto.Metadata
}

func (r *TagResponse) FromModel(model model.AnimalTag) {
	r.ID = model.ID
	r.TagNumber = model.TagNumber
	r.ReportID = model.ReportID
	r.HunterID = model.HunterID
	r.FieldID = model.FieldID
	r.Species = model.Species
	r.Condition = model.Condition
	r.PhotoURL = model.PhotoURL
	r.QRCodeURL = model.QRCodeURL
	r.PhysicalTag = model.PhysicalTag
	r.DiseaseType = model.DiseaseType
	r.Notes = model.Notes
	r.Metadata.FromModel(model.Metadata)
}

type GetTagsResponse struct {
	Tags      []TagResponse `json:"tags"`
	TotalPage int           `json:"total_page"`
	TotalData int           `json:"total_data"`
}

func (r *GetTagsResponse) FromModels(models []model.AnimalTag, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Tags = make([]TagResponse, len(models))
	for i, mod := range models {
		r.Tags[i].FromModel(mod)
	}
}

// VerifyTagResponse is the public view served on a QR scan. It summarizes the
// hunter and field without exposing full records.
type VerifyTagResponse struct {
	TagNumber  string `json:"tag_number"`
	Species    string `json:"species"`
	Condition  string `json:"condition"`
	PhotoURL   string `json:"photo_url"`
	HunterName string `json:"hunter_name"`
	FieldName  string `json:"field_name"`
	TaggedAt   string `json:"tagged_at"`
}
