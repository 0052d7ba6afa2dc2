package model

import "fieldbook/shared/model"

const (
	TableName  = "animal_tags"
	EntityName = "tag"

	FieldID          = "id"
	FieldTagNumber   = "tag_number"
	FieldReportID    = "report_id"
	FieldHunterID    = "hunter_id"
	FieldFieldID     = "field_id"
	FieldSpecies     = "species"
	FieldCondition   = "condition"
	FieldPhotoURL    = "photo_url"
	FieldQRCodeURL   = "qr_code_url"
	FieldPhysicalTag = "physical_tag"
	FieldDiseaseType = "disease_type"
	FieldNotes       = "notes"
)

type AnimalTag struct {
	ID          string  `db:"id"`
	TagNumber   string  `db:"tag_number"`
	ReportID    string  `db:"report_id"`
	HunterID    string  `db:"hunter_id"`
	FieldID     string  `db:"field_id"`
	Species     string  `db:"species"`
	Condition   string  `db:"condition"`
	PhotoURL    string  `db:"photo_url"`
	QRCodeURL   string  `db:"qr_code_url"`
	PhysicalTag *string `db:"physical_tag"`
	DiseaseType *string `db:"disease_type"`
	Notes       *string `db:"notes"`
	model.Metadata
}
