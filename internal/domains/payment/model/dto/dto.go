package dto

type SimulatePaymentRequest struct {
	Amount     float64 `json:"amount"      validate:"required,gt=0"`
	CardNumber string  `json:"card_number" validate:"required"`
	CardExpiry string  `json:"card_expiry" validate:"required"`
	CardCVV    string  `json:"card_cvv"    validate:"required"`
	CardName   string  `json:"card_name"   validate:"required"`
}

type SimulatePaymentResponse struct {
	PaymentID string `json:"payment_id"`
	Message   string `json:"message"`
}
