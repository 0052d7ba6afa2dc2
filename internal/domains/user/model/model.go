package model

import "fieldbook/shared/model"

const (
	TableName  = "users"
	EntityName = "user"

	FieldID       = "id"
	FieldEmail    = "email"
	FieldFullName = "full_name"
	FieldRole     = "role"
	FieldPhone    = "phone"
	FieldLocation = "location"
	FieldActive   = "active"
)

type User struct {
	ID       string  `db:"id"`
	Email    string  `db:"email"`
	FullName string  `db:"full_name"`
	Role     string  `db:"role"`
	Phone    *string `db:"phone"`
	Location *string `db:"location"`
	Active   bool    `db:"active"`
	model.Metadata
}
