package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"fieldbook/infras/otel"
	"fieldbook/infras/postgres"
	fieldRepo "fieldbook/internal/domains/field/repository"
	"fieldbook/internal/domains/report/model"
	"fieldbook/shared/constant"
	gDto "fieldbook/shared/dto"
	"fieldbook/shared/failure"
	gRepo "fieldbook/shared/repository"
	"fieldbook/shared/timezone"

	"github.com/jmoiron/sqlx"
)

type Report interface {
	Insert(ctx context.Context, model model.HuntReport) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.HuntReport, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.HuntReport, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	CreateApplyingQuota(ctx context.Context, report model.HuntReport) error
}

type repositoryImpl struct {
	gRepo.Repository[model.HuntReport]
	db     *postgres.Connection
	fields fieldRepo.Field
	otel   otel.Otel
}

func New(db *postgres.Connection, fields fieldRepo.Field, otel otel.Otel) Report {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.HuntReport](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		fields:     fields,
		otel:       otel,
	}
}

// CreateApplyingQuota inserts the report and depletes the field's harvest
// quota in one transaction. The field row is locked FOR UPDATE for the
// duration, so concurrent reports against the same field serialize and
// remaining counts never go negative. An empty-handed report inserts without
// touching quota; last-visit tracking is stamped either way.
func (repo *repositoryImpl) CreateApplyingQuota(ctx context.Context, report model.HuntReport) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".report.CreateApplyingQuota")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = repo.db.Transact(ctx, func(tx *sqlx.Tx) error {
		field, err := repo.fields.GetForUpdateTx(ctx, tx, report.FieldID)
		if err != nil {
			return err //nolint:wrapcheck
		}

		if field.ID == constant.Empty {
			return failure.NotFound("field not found") // nolint:wrapcheck
		}

		if err := repo.InsertTx(ctx, tx, report); err != nil {
			return err //nolint:wrapcheck
		}

		if report.AnimalsHarvested > 0 {
			quota := field.Quota()
			quota.Deplete(report.AnimalsHarvested, report.SpeciesHarvested)
			field.ApplyQuota(quota)
		}

		visitDay := timezone.Format(report.CreatedAt, constant.DayFormat)
		hadHarvest := report.AnimalsHarvested > 0
		field.LastVisitDate = &visitDay
		field.LastVisitHadHarvest = &hadHarvest

		return repo.fields.UpdateQuotaTx(ctx, tx, field) //nolint:wrapcheck
	})
	if err != nil {
		return err //nolint:wrapcheck
	}

	return nil
}
