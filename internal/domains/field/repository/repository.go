package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fieldbook/infras/otel"
	"fieldbook/infras/postgres"
	"fieldbook/internal/domains/field/model"
	"fieldbook/shared/constant"
	gDto "fieldbook/shared/dto"
	"fieldbook/shared/logger"
	gRepo "fieldbook/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Field interface {
	Insert(ctx context.Context, model model.Field) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Field, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Field, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	GetForUpdateTx(ctx context.Context, tx *sqlx.Tx, id string) (model.Field, error)
	UpdateQuotaTx(ctx context.Context, tx *sqlx.Tx, field model.Field) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Field]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Field {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Field](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// GetForUpdateTx locks the field row for the duration of the transaction so
// concurrent quota depletions serialize. A missing row comes back as a zero
// model, not an error.
func (repo *repositoryImpl) GetForUpdateTx(ctx context.Context, tx *sqlx.Tx, id string) (field model.Field, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".field.GetForUpdateTx")
	defer scope.End()

	query := fmt.Sprintf("SELECT * FROM %s WHERE %s = $1 FOR UPDATE", model.TableName, model.FieldID)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if err = tx.GetContext(ctx, &field, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Field{}, nil
		}

		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return field, fmt.Errorf("failed to lock field row: %w", err)
	}

	return field, nil
}

// UpdateQuotaTx writes the quota and last-visit columns back inside the
// transaction that holds the row lock taken by GetForUpdateTx.
func (repo *repositoryImpl) UpdateQuotaTx(ctx context.Context, tx *sqlx.Tx, field model.Field) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".field.UpdateQuotaTx")
	defer scope.End()

	query := fmt.Sprintf(
		"UPDATE %s SET %s = :%s, %s = :%s, %s = :%s, %s = :%s, modified_at = NOW() WHERE %s = :%s",
		model.TableName,
		model.FieldQuotaRemaining, model.FieldQuotaRemaining,
		model.FieldQuotaSpecies, model.FieldQuotaSpecies,
		model.FieldLastVisitDate, model.FieldLastVisitDate,
		model.FieldLastVisitHadHarvest, model.FieldLastVisitHadHarvest,
		model.FieldID, model.FieldID,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := tx.NamedExecContext(ctx, query, field); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to update field quota: %w", err)
	}

	return nil
}
