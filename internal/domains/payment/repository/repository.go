package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"fieldbook/infras/otel"
	"fieldbook/infras/postgres"
	"fieldbook/internal/domains/payment/model"
	gDto "fieldbook/shared/dto"
	gRepo "fieldbook/shared/repository"
)

type Payment interface {
	Insert(ctx context.Context, model model.PaymentToken) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.PaymentToken, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.PaymentToken]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Payment {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.PaymentToken](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
