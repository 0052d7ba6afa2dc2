package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"fieldbook/infras/otel"
	"fieldbook/infras/postgres"
	"fieldbook/internal/domains/booking/model"
	fieldModel "fieldbook/internal/domains/field/model"
	"fieldbook/shared/constant"
	gDto "fieldbook/shared/dto"
	"fieldbook/shared/failure"
	"fieldbook/shared/logger"
	gRepo "fieldbook/shared/repository"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	SumHuntersOn(ctx context.Context, fieldID string, date time.Time) (int, error)
	CreateAtomic(ctx context.Context, booking model.Booking, capacity int, adminOverride bool) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// SumHuntersOn totals the hunters held by pending and confirmed bookings for a
// field on a given day.
func (repo *repositoryImpl) SumHuntersOn(ctx context.Context, fieldID string, date time.Time) (sum int, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.SumHuntersOn")
	defer scope.End()

	query := fmt.Sprintf(
		"SELECT COALESCE(SUM(%s), 0) FROM %s WHERE %s = $1 AND %s = $2 AND %s = ANY($3)",
		model.FieldNumHunters, model.TableName, model.FieldFieldID, model.FieldBookingDate, model.FieldStatus,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if err = repo.db.Read.GetContext(ctx, &sum, query, fieldID, date, pq.Array(model.ActiveStatuses)); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to sum booked hunters: %w", err)
	}

	return sum, nil
}

// CreateAtomic runs the double-booking check, the capacity re-check, and the
// insert in one transaction. Advisory xact locks keyed on (hunter, day) and
// (field, day) serialize concurrent creates so two requests cannot jointly
// overshoot capacity or slip past the one-booking-per-day rule. With
// adminOverride the double-booking check is skipped; capacity still holds.
func (repo *repositoryImpl) CreateAtomic(ctx context.Context, booking model.Booking, capacity int, adminOverride bool) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.CreateAtomic")
	defer scope.End()
	defer scope.TraceIfError(err)

	day := booking.BookingDate.Format(constant.DayFormat)

	err = repo.db.Transact(ctx, func(tx *sqlx.Tx) error {
		hunterKey := fmt.Sprintf("booking:hunter:%s:%s", booking.HunterID, day)
		fieldKey := fmt.Sprintf("booking:field:%s:%s", booking.FieldID, day)

		if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext($1)), pg_advisory_xact_lock(hashtext($2))", hunterKey, fieldKey); err != nil {
			return fmt.Errorf("failed to take booking locks: %w", err)
		}

		if !adminOverride {
			conflictQuery := fmt.Sprintf(
				"SELECT f.%s FROM %s b JOIN %s f ON f.%s = b.%s WHERE b.%s = $1 AND b.%s = $2 AND b.%s = ANY($3) LIMIT 1",
				fieldModel.FieldName, model.TableName, fieldModel.TableName, fieldModel.FieldID,
				model.FieldFieldID, model.FieldHunterID, model.FieldBookingDate, model.FieldStatus,
			)

			var conflictingField string

			err := tx.GetContext(ctx, &conflictingField, conflictQuery, booking.HunterID, booking.BookingDate, pq.Array(model.ActiveStatuses))
			if err == nil {
				return failure.DoubleBooking(day, conflictingField) // nolint:wrapcheck
			}

			if !errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("failed to check double booking: %w", err)
			}
		}

		sumQuery := fmt.Sprintf(
			"SELECT COALESCE(SUM(%s), 0) FROM %s WHERE %s = $1 AND %s = $2 AND %s = ANY($3)",
			model.FieldNumHunters, model.TableName, model.FieldFieldID, model.FieldBookingDate, model.FieldStatus,
		)

		var booked int
		if err := tx.GetContext(ctx, &booked, sumQuery, booking.FieldID, booking.BookingDate, pq.Array(model.ActiveStatuses)); err != nil {
			return fmt.Errorf("failed to sum booked hunters: %w", err)
		}

		if booked+booking.NumHunters > capacity {
			return failure.CapacityExceeded(capacity - booked) // nolint:wrapcheck
		}

		return repo.InsertTx(ctx, tx, booking) //nolint:wrapcheck
	})
	if err != nil {
		return err //nolint:wrapcheck
	}

	return nil
}
