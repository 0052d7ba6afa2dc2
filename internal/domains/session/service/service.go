package service

import (
	"context"
	"errors"
	"fmt"

	"fieldbook/config"
	"fieldbook/infras/otel"
	bookingModel "fieldbook/internal/domains/booking/model"
	bookingRepo "fieldbook/internal/domains/booking/repository"
	fieldModel "fieldbook/internal/domains/field/model"
	fieldRepo "fieldbook/internal/domains/field/repository"
	reportModel "fieldbook/internal/domains/report/model"
	reportRepo "fieldbook/internal/domains/report/repository"
	"fieldbook/internal/domains/session/model"
	"fieldbook/internal/domains/session/model/dto"
	"fieldbook/internal/domains/session/repository"
	userModel "fieldbook/internal/domains/user/model"
	userRepo "fieldbook/internal/domains/user/repository"
	"fieldbook/internal/notifications"
	"fieldbook/shared"
	"fieldbook/shared/constant"
	gDto "fieldbook/shared/dto"
	"fieldbook/shared/failure"
	gModel "fieldbook/shared/model"
	"fieldbook/shared/timezone"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

type Session interface {
	EnsureForBooking(ctx context.Context, bookingID string) (dto.SessionResponse, error)
	Start(ctx context.Context, id string) error
	End(ctx context.Context, id string) error
	GetByBooking(ctx context.Context, bookingID string) (dto.SessionResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetSessionsResponse, error)
}

type serviceImpl struct {
	repo        repository.Session
	bookingRepo bookingRepo.Booking
	reportRepo  reportRepo.Report
	fieldRepo   fieldRepo.Field
	userRepo    userRepo.User
	notifier    notifications.Notifier
	cfg         *config.Config
	otel        otel.Otel
}

func New(repo repository.Session, bookingRepo bookingRepo.Booking, reportRepo reportRepo.Report, fieldRepo fieldRepo.Field, userRepo userRepo.User, notifier notifications.Notifier, cfg *config.Config, otel otel.Otel) Session {
	return &serviceImpl{
		repo:        repo,
		bookingRepo: bookingRepo,
		reportRepo:  reportRepo,
		fieldRepo:   fieldRepo,
		userRepo:    userRepo,
		notifier:    notifier,
		cfg:         cfg,
		otel:        otel,
	}
}

// EnsureForBooking lazily creates the hunt session for a confirmed booking on
// its hunt day. Sessions never exist ahead of the day; asking on any other day
// is a sequencing error. At most one session per booking: a concurrent create
// losing the unique-index race falls back to the row that won.
func (s *serviceImpl) EnsureForBooking(ctx context.Context, bookingID string) (res dto.SessionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".EnsureForBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	booking, err := s.bookingRepo.Get(ctx, shared.FilterByID(bookingID, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if role != constant.RoleAdmin && booking.HunterID != user {
		return res, failure.Forbidden("booking belongs to another hunter") // nolint:wrapcheck
	}

	if booking.Status != bookingModel.StatusConfirmed {
		return res, failure.InvalidSequence("hunt session requires a confirmed booking") // nolint:wrapcheck
	}

	today := timezone.Format(timezone.Now(), constant.DayFormat)
	if timezone.Format(booking.BookingDate, constant.DayFormat) != today {
		return res, failure.InvalidSequence("hunt sessions open on the hunt day only") // nolint:wrapcheck
	}

	existing, err := s.repo.Get(ctx, shared.FilterByID(bookingID, model.FieldBookingID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get session")

		return res, fmt.Errorf("failed to get session: %w", err)
	}

	if existing.ID != constant.Empty {
		res.FromModel(existing)

		return res, nil
	}

	session := model.HuntSession{
		ID:        uuid.NewString(),
		BookingID: booking.ID,
		HunterID:  booking.HunterID,
		FieldID:   booking.FieldID,
		Status:    model.StatusNotStarted,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}

	if err = s.repo.Insert(ctx, session); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeUniqueViolation {
			existing, getErr := s.repo.Get(ctx, shared.FilterByID(bookingID, model.FieldBookingID, model.TableName))
			if getErr == nil && existing.ID != constant.Empty {
				res.FromModel(existing)

				return res, nil
			}
		}

		log.Error().Err(err).Msg("failed to create session")

		return res, fmt.Errorf("failed to create session: %w", err)
	}

	res.FromModel(session)

	return res, nil
}

// Start moves a session from not_started to active and stamps the start
// time. Only the session's hunter (or an admin) can start it.
func (s *serviceImpl) Start(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Start")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	session, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get session")

		return fmt.Errorf("failed to get session: %w", err)
	}

	if session.ID == constant.Empty {
		return failure.NotFound("session not found") // nolint:wrapcheck
	}

	if role != constant.RoleAdmin && session.HunterID != user {
		return failure.Forbidden("session belongs to another hunter") // nolint:wrapcheck
	}

	if session.Status != model.StatusNotStarted {
		return failure.InvalidSequence(fmt.Sprintf("cannot start a session that is %s", session.Status)) // nolint:wrapcheck
	}

	now := timezone.Now()
	updatedFields := map[string]any{
		model.FieldStatus:        model.StatusActive,
		model.FieldStartTime:     now,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: user,
	}

	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to start session")

		return fmt.Errorf("failed to start session: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		s.notifyHuntStarted(c, session)
	}()

	return nil
}

// End completes an active session. The hunt report must already be filed:
// report first, then end, so no session completes unreported. Only the
// session's hunter (or an admin) can end it.
func (s *serviceImpl) End(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".End")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	session, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get session")

		return fmt.Errorf("failed to get session: %w", err)
	}

	if session.ID == constant.Empty {
		return failure.NotFound("session not found") // nolint:wrapcheck
	}

	if role != constant.RoleAdmin && session.HunterID != user {
		return failure.Forbidden("session belongs to another hunter") // nolint:wrapcheck
	}

	if session.Status != model.StatusActive {
		return failure.InvalidSequence(fmt.Sprintf("cannot end a session that is %s", session.Status)) // nolint:wrapcheck
	}

	reported, err := s.reportRepo.Exist(ctx, shared.FilterByID(id, reportModel.FieldSessionID, reportModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check report existence")

		return fmt.Errorf("failed to check report existence: %w", err)
	}

	if !reported {
		return failure.InvalidSequence("file the hunt report before ending the session") // nolint:wrapcheck
	}

	now := timezone.Now()
	updatedFields := map[string]any{
		model.FieldStatus:        model.StatusCompleted,
		model.FieldEndTime:       now,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: user,
	}

	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to end session")

		return fmt.Errorf("failed to end session: %w", err)
	}

	return nil
}

func (s *serviceImpl) GetByBooking(ctx context.Context, bookingID string) (res dto.SessionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByBooking")
	defer scope.End()
	defer scope.TraceIfError(nil)

	session, err := s.repo.Get(ctx, shared.FilterByID(bookingID, model.FieldBookingID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get session")

		return res, fmt.Errorf("failed to get session: %w", err)
	}

	if session.ID == constant.Empty {
		return res, failure.NotFound("session not found") // nolint:wrapcheck
	}

	res.FromModel(session)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetSessionsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count sessions")

		return res, fmt.Errorf("failed to count sessions: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get sessions")

		return res, fmt.Errorf("failed to get sessions: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) notifyHuntStarted(ctx context.Context, session model.HuntSession) {
	booking, err := s.bookingRepo.Get(ctx, shared.FilterByID(session.BookingID, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking for hunt notification")

		return
	}

	field, err := s.fieldRepo.Get(ctx, shared.FilterByID(session.FieldID, fieldModel.FieldID, fieldModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get field for hunt notification")

		return
	}

	hunter, err := s.userRepo.Get(ctx, shared.FilterByID(session.HunterID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get hunter for hunt notification")

		return
	}

	outfitter, err := s.userRepo.Get(ctx, shared.FilterByID(field.OutfitterID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get outfitter for hunt notification")

		return
	}

	s.notifier.HuntStarted(ctx, notifications.BookingEvent{
		Booking:   booking,
		Field:     field,
		Hunter:    hunter,
		Outfitter: outfitter,
	})
}
