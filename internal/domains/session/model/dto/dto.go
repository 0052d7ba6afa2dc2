package dto

import (
	"fieldbook/internal/domains/session/model"
	"fieldbook/shared"
	"fieldbook/shared/constant"
	gDto "fieldbook/shared/dto"
	"fieldbook/shared/timezone"
)

type SessionResponse struct {
	ID        string  `json:"id"`
	BookingID string  `json:"booking_id"`
	HunterID  string  `json:"hunter_id"`
	FieldID   string  `json:"field_id"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
	Status    string  `json:"status"`
	gDto.Metadata
}

func (r *SessionResponse) FromModel(model model.HuntSession) {
	r.ID = model.ID
	r.BookingID = model.BookingID
	r.HunterID = model.HunterID
	r.FieldID = model.FieldID
	r.Status = model.Status

	if model.StartTime != nil {
		start := timezone.Format(*model.StartTime, constant.DateFormat)
		r.StartTime = &start
	}

	if model.EndTime != nil {
		end := timezone.Format(*model.EndTime, constant.DateFormat)
		r.EndTime = &end
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetSessionsResponse struct {
	Sessions  []SessionResponse `json:"sessions"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetSessionsResponse) FromModels(models []model.HuntSession, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Sessions = make([]SessionResponse, len(models))
	for i, mod := range models {
		r.Sessions[i].FromModel(mod)
	}
}
