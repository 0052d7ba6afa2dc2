package dto

import (
	"fmt"

	"fieldbook/internal/domains/booking/model"
	"fieldbook/shared"
	"fieldbook/shared/constant"
	gDto "fieldbook/shared/dto"
	gModel "fieldbook/shared/model"
	"fieldbook/shared/timezone"

	"github.com/google/uuid"
)

type CheckAvailabilityRequest struct {
	FieldID    string `json:"field_id"    validate:"required,uuid"`
	Date       string `json:"date"        validate:"required,day"`
	NumHunters int    `json:"num_hunters" validate:"required,min=1"`
}

type AvailabilityResponse struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
	Remaining int    `json:"remaining"`
}

type CreateBookingRequest struct {
	FieldID       string  `json:"field_id"       validate:"required,uuid"`
	Date          string  `json:"date"           validate:"required,day"`
	NumHunters    int     `json:"num_hunters"    validate:"required,min=1"`
	TotalPrice    float64 `json:"total_price"    validate:"min=0"`
	PaymentMethod string  `json:"payment_method" validate:"omitempty,max=50"`
	PaymentRef    *string `json:"payment_ref"    validate:"omitempty,max=100"`
	AdminOverride bool    `json:"admin_override" validate:"omitempty"`
}

func (c *CreateBookingRequest) ToModel(hunterID, status string) (model.Booking, error) {
	date, err := timezone.Parse(constant.DayFormat, c.Date)
	if err != nil {
		return model.Booking{}, fmt.Errorf("invalid booking date: %w", err)
	}

	return model.Booking{
		ID:            uuid.NewString(),
		FieldID:       c.FieldID,
		HunterID:      hunterID,
		BookingDate:   date,
		NumHunters:    c.NumHunters,
		TotalPrice:    c.TotalPrice,
		Status:        status,
		PaymentMethod: c.PaymentMethod,
		PaymentRef:    c.PaymentRef,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  hunterID,
			ModifiedBy: hunterID,
		},
	}, nil
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled rejected"`
	Force  bool   `json:"force"  validate:"omitempty"`
}

type BookingResponse struct {
	ID            string  `json:"id"`
	FieldID       string  `json:"field_id"`
	HunterID      string  `json:"hunter_id"`
	Date          string  `json:"date"`
	NumHunters    int     `json:"num_hunters"`
	TotalPrice    float64 `json:"total_price"`
	Status        string  `json:"status"`
	PaymentMethod string  `json:"payment_method"`
	PaymentRef    *string `json:"payment_ref,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.FieldID = model.FieldID
	r.HunterID = model.HunterID
	r.Date = timezone.Format(model.BookingDate, constant.DayFormat)
	r.NumHunters = model.NumHunters
	r.TotalPrice = model.TotalPrice
	r.Status = model.Status
	r.PaymentMethod = model.PaymentMethod
	r.PaymentRef = model.PaymentRef
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}
