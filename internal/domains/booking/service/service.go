package service

import (
	"context"
	"fmt"

	"fieldbook/config"
	"fieldbook/infras/otel"
	"fieldbook/internal/domains/booking/model"
	"fieldbook/internal/domains/booking/model/dto"
	"fieldbook/internal/domains/booking/repository"
	fieldModel "fieldbook/internal/domains/field/model"
	fieldRepo "fieldbook/internal/domains/field/repository"
	userModel "fieldbook/internal/domains/user/model"
	userRepo "fieldbook/internal/domains/user/repository"
	"fieldbook/internal/notifications"
	"fieldbook/shared"
	"fieldbook/shared/cache"
	"fieldbook/shared/constant"
	gDto "fieldbook/shared/dto"
	"fieldbook/shared/failure"
	"fieldbook/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
)

type Booking interface {
	CheckAvailability(ctx context.Context, req dto.CheckAvailabilityRequest) (dto.AvailabilityResponse, error)
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	UpdateStatus(ctx context.Context, req dto.UpdateBookingStatusRequest, id string) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	TodayForHunter(ctx context.Context, hunterID string) (dto.GetBookingsResponse, error)
}

type serviceImpl struct {
	repo      repository.Booking
	fieldRepo fieldRepo.Field
	userRepo  userRepo.User
	notifier  notifications.Notifier
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(repo repository.Booking, fieldRepo fieldRepo.Field, userRepo userRepo.User, notifier notifications.Notifier, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Booking {
	return &serviceImpl{
		repo:      repo,
		fieldRepo: fieldRepo,
		userRepo:  userRepo,
		notifier:  notifier,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

// CheckAvailability is a pure read: field existence, blocked date, then
// capacity headroom, in that order. The answer can go stale the moment it is
// returned; Create re-checks under lock.
func (s *serviceImpl) CheckAvailability(ctx context.Context, req dto.CheckAvailabilityRequest) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckAvailability")
	defer scope.End()
	defer scope.TraceIfError(err)

	field, err := s.fieldRepo.Get(ctx, shared.FilterByID(req.FieldID, fieldModel.FieldID, fieldModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get field")

		return res, fmt.Errorf("failed to get field: %w", err)
	}

	if field.ID == constant.Empty {
		return res, failure.NotFound("field not found") // nolint:wrapcheck
	}

	if field.IsBlocked(req.Date) {
		res.Reason = fmt.Sprintf("Date %s is blocked by the outfitter", req.Date)

		return res, nil
	}

	date, err := timezone.Parse(constant.DayFormat, req.Date)
	if err != nil {
		return res, failure.BadRequestFromString("invalid date format") // nolint:wrapcheck
	}

	booked, err := s.repo.SumHuntersOn(ctx, req.FieldID, date)
	if err != nil {
		log.Error().Err(err).Msg("failed to sum booked hunters")

		return res, fmt.Errorf("failed to sum booked hunters: %w", err)
	}

	res.Remaining = field.Capacity - booked
	if req.NumHunters > res.Remaining {
		res.Reason = fmt.Sprintf("Insufficient capacity: only %d spots available", res.Remaining)

		return res, nil
	}

	res.Available = true

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	adminOverride := req.AdminOverride && role == constant.RoleAdmin

	field, err := s.fieldRepo.Get(ctx, shared.FilterByID(req.FieldID, fieldModel.FieldID, fieldModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get field")

		return res, fmt.Errorf("failed to get field: %w", err)
	}

	if field.ID == constant.Empty {
		return res, failure.NotFound("field not found") // nolint:wrapcheck
	}

	if field.IsBlocked(req.Date) {
		return res, failure.DateBlocked(req.Date) // nolint:wrapcheck
	}

	status := model.StatusPending
	if field.AutoApproveBookings {
		status = model.StatusConfirmed
	}

	booking, err := req.ToModel(user, status)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse booking request")

		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) // nolint:wrapcheck
	}

	if err = s.repo.CreateAtomic(ctx, booking, field.Capacity, adminOverride); err != nil {
		if failure.GetCode(err) >= 500 {
			log.Error().Err(err).Msg("failed to create booking")
		}

		return res, err //nolint:wrapcheck
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		s.notify(c, booking, field, notifications.EventBookingCreated)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()

	return res, nil
}

// UpdateStatus walks the booking lifecycle: pending to confirmed or rejected,
// confirmed to cancelled. Approval and decline belong to the field's
// outfitter, cancellation to the owning hunter; admins can take either step.
// Force lets an admin take any step, including out of the terminal statuses;
// the invariants are on the caller then.
func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateBookingStatusRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	booking, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	force := req.Force && role == constant.RoleAdmin
	if !force && !model.CanTransition(booking.Status, req.Status) {
		return failure.InvalidSequence(fmt.Sprintf("cannot move booking from %s to %s", booking.Status, req.Status)) // nolint:wrapcheck
	}

	if !force && role != constant.RoleAdmin {
		switch req.Status {
		case model.StatusConfirmed, model.StatusRejected:
			field, err := s.fieldRepo.Get(ctx, shared.FilterByID(booking.FieldID, fieldModel.FieldID, fieldModel.TableName))
			if err != nil {
				log.Error().Err(err).Msg("failed to get field")

				return fmt.Errorf("failed to get field: %w", err)
			}

			if role != constant.RoleOutfitter || field.OutfitterID != user {
				return failure.Forbidden("only the field's outfitter can approve or decline a booking") // nolint:wrapcheck
			}
		case model.StatusCancelled:
			if booking.HunterID != user {
				return failure.Forbidden("only the booking's hunter can cancel it") // nolint:wrapcheck
			}
		}
	}

	updatedFields := map[string]any{
		model.FieldStatus:        req.Status,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update booking status")

		return fmt.Errorf("failed to update booking status: %w", err)
	}

	booking.Status = req.Status

	go func() {
		c := context.WithoutCancel(ctx)

		field, err := s.fieldRepo.Get(c, shared.FilterByID(booking.FieldID, fieldModel.FieldID, fieldModel.TableName))
		if err == nil {
			switch req.Status {
			case model.StatusConfirmed:
				s.notify(c, booking, field, notifications.EventBookingApproved)
			case model.StatusRejected:
				s.notify(c, booking, field, notifications.EventBookingRejected)
			case model.StatusCancelled:
				s.notify(c, booking, field, notifications.EventBookingCancelled)
			}
		}

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(nil)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

// TodayForHunter lists the hunter's confirmed bookings for the current day in
// the application timezone. These are the bookings a hunt session may be
// opened for.
func (s *serviceImpl) TodayForHunter(ctx context.Context, hunterID string) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".TodayForHunter")
	defer scope.End()
	defer scope.TraceIfError(err)

	today := timezone.Format(timezone.Now(), constant.DayFormat)

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldHunterID, Value: hunterID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldBookingDate, Value: today, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldStatus, Value: model.StatusConfirmed, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}

	models, err := s.repo.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get today's bookings")

		return res, fmt.Errorf("failed to get today's bookings: %w", err)
	}

	res.FromModels(models, len(models), 0)

	return res, nil
}

func (s *serviceImpl) notify(ctx context.Context, booking model.Booking, field fieldModel.Field, event string) {
	hunter, err := s.userRepo.Get(ctx, shared.FilterByID(booking.HunterID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get hunter for notification")

		return
	}

	outfitter, err := s.userRepo.Get(ctx, shared.FilterByID(field.OutfitterID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get outfitter for notification")

		return
	}

	evt := notifications.BookingEvent{
		Booking:   booking,
		Field:     field,
		Hunter:    hunter,
		Outfitter: outfitter,
	}

	switch event {
	case notifications.EventBookingCreated:
		s.notifier.BookingCreated(ctx, evt)
	case notifications.EventBookingApproved:
		s.notifier.BookingApproved(ctx, evt)
	case notifications.EventBookingRejected:
		s.notifier.BookingRejected(ctx, evt)
	case notifications.EventBookingCancelled:
		s.notifier.BookingCancelled(ctx, evt)
	case notifications.EventHuntStarted:
		s.notifier.HuntStarted(ctx, evt)
	}
}
