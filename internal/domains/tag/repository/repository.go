package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"fieldbook/infras/otel"
	"fieldbook/infras/postgres"
	"fieldbook/internal/domains/tag/model"
	gDto "fieldbook/shared/dto"
	gRepo "fieldbook/shared/repository"
)

type Tag interface {
	Insert(ctx context.Context, model model.AnimalTag) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.AnimalTag, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.AnimalTag, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.AnimalTag]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Tag {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.AnimalTag](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
