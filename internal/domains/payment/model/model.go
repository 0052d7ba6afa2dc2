package model

import "fieldbook/shared/model"

const (
	TableName  = "payment_tokens"
	EntityName = "payment"

	FieldID        = "id"
	FieldPaymentID = "payment_id"
	FieldAmount    = "amount"
	FieldCurrency  = "currency"
	FieldStatus    = "status"
	FieldCardLast4 = "card_last4"
)

const (
	StatusSucceeded = "succeeded"

	DefaultCurrency = "GBP"
)

type PaymentToken struct {
	ID        string  `db:"id"`
	PaymentID string  `db:"payment_id"`
	Amount    float64 `db:"amount"`
	Currency  string  `db:"currency"`
	Status    string  `db:"status"`
	CardLast4 string  `db:"card_last4"`
	model.Metadata
}
