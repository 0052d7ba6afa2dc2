package service

import (
	"context"
	"fmt"

	"fieldbook/config"
	"fieldbook/infras/otel"
	"fieldbook/internal/domains/field/model"
	"fieldbook/internal/domains/field/model/dto"
	"fieldbook/internal/domains/field/repository"
	"fieldbook/shared"
	"fieldbook/shared/cache"
	"fieldbook/shared/constant"
	gDto "fieldbook/shared/dto"
	"fieldbook/shared/failure"
	"fieldbook/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetField    = "field:get"
	cacheGetAllField = "field:gets"
	cacheCountField  = "field:count"
	cacheQuotaField  = "field:quota"
)

type Field interface {
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetFieldsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.FieldResponse, error)
	QuotaSummary(ctx context.Context, id string) (dto.QuotaSummaryResponse, error)
	UpdateBlockedDates(ctx context.Context, req dto.UpdateBlockedDatesRequest, id string) error
}

type serviceImpl struct {
	repo  repository.Field
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Field, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Field {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetFieldsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllField, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for fields")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count fields")

		return res, fmt.Errorf("failed to count fields: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get fields")

		return res, fmt.Errorf("failed to get fields: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save fields to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountField, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for field count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count fields")

		return res, fmt.Errorf("failed to count fields: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save field count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.FieldResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(nil)

	cacheKey := shared.BuildCacheKey(cacheGetField, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for field")

		return res, nil
	}

	field, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get field")

		return res, fmt.Errorf("failed to get field: %w", err)
	}

	if field.ID == constant.Empty {
		return res, failure.NotFound("field not found") // nolint:wrapcheck
	}

	res.FromModel(field)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save field to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) QuotaSummary(ctx context.Context, id string) (res dto.QuotaSummaryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".QuotaSummary")
	defer scope.End()
	defer scope.TraceIfError(nil)

	cacheKey := shared.BuildCacheKey(cacheQuotaField, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for field quota")

		return res, nil
	}

	field, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get field")

		return res, fmt.Errorf("failed to get field: %w", err)
	}

	if field.ID == constant.Empty {
		return res, failure.NotFound("field not found") // nolint:wrapcheck
	}

	res.FromModel(field)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save field quota to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) UpdateBlockedDates(ctx context.Context, req dto.UpdateBlockedDatesRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateBlockedDates")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if field exists")

		return fmt.Errorf("failed to check if field exists: %w", err)
	}

	if !exist {
		log.Error().Msg("field not found")

		return failure.NotFound("field not found") // nolint:wrapcheck
	}

	updatedFields := map[string]any{
		model.FieldBlockedDates:  model.DayList(req.BlockedDates),
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update blocked dates")

		return fmt.Errorf("failed to update blocked dates: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetField, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete field cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllField)
		shared.InvalidateCaches(c, s.cache, cacheQuotaField)
	}()

	return nil
}
