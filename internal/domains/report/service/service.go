package service

import (
	"context"
	"fmt"

	"fieldbook/config"
	"fieldbook/infras/otel"
	"fieldbook/internal/domains/report/model"
	"fieldbook/internal/domains/report/model/dto"
	"fieldbook/internal/domains/report/repository"
	sessionModel "fieldbook/internal/domains/session/model"
	sessionRepo "fieldbook/internal/domains/session/repository"
	"fieldbook/shared"
	"fieldbook/shared/cache"
	"fieldbook/shared/constant"
	gDto "fieldbook/shared/dto"
	"fieldbook/shared/failure"
	"fieldbook/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetReport    = "report:get"
	cacheGetAllReport = "report:gets"
	cacheQuotaField   = "field:quota"
	cacheGetField     = "field:get"
)

type Report interface {
	Create(ctx context.Context, req dto.CreateReportRequest) (dto.ReportResponse, error)
	UpdateReview(ctx context.Context, req dto.UpdateReviewRequest, id string) error
	GetBySession(ctx context.Context, sessionID string) (dto.ReportResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetReportsResponse, error)
}

type serviceImpl struct {
	repo        repository.Report
	sessionRepo sessionRepo.Session
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(repo repository.Report, sessionRepo sessionRepo.Session, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Report {
	return &serviceImpl{
		repo:        repo,
		sessionRepo: sessionRepo,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

// Create files the hunt report for an active session. One report per session;
// the insert and the field's quota depletion commit together. Zero animals
// harvested is a legitimate empty-handed report.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateReportRequest) (res dto.ReportResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	session, err := s.sessionRepo.Get(ctx, shared.FilterByID(req.SessionID, sessionModel.FieldID, sessionModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get session")

		return res, fmt.Errorf("failed to get session: %w", err)
	}

	if session.ID == constant.Empty {
		return res, failure.NotFound("session not found") // nolint:wrapcheck
	}

	if role != constant.RoleAdmin && session.HunterID != user {
		return res, failure.Forbidden("session belongs to another hunter") // nolint:wrapcheck
	}

	if session.Status != sessionModel.StatusActive {
		return res, failure.InvalidSequence(fmt.Sprintf("cannot report on a session that is %s", session.Status)) // nolint:wrapcheck
	}

	reported, err := s.repo.Exist(ctx, shared.FilterByID(req.SessionID, model.FieldSessionID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check report existence")

		return res, fmt.Errorf("failed to check report existence: %w", err)
	}

	if reported {
		return res, failure.InvalidSequence("hunt report already filed for this session") // nolint:wrapcheck
	}

	report := req.ToModel(session.HunterID, session.FieldID)

	if err = s.repo.CreateApplyingQuota(ctx, report); err != nil {
		if failure.GetCode(err) >= 500 {
			log.Error().Err(err).Msg("failed to create hunt report")
		}

		return res, err //nolint:wrapcheck
	}

	res.FromModel(report)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllReport)
		shared.InvalidateCaches(c, s.cache, cacheQuotaField)
		shared.InvalidateCaches(c, s.cache, cacheGetField)
	}()

	return res, nil
}

// UpdateReview sets the review fields only. Harvest data is immutable once
// filed; quota has already moved.
func (s *serviceImpl) UpdateReview(ctx context.Context, req dto.UpdateReviewRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateReview")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	report, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get report")

		return fmt.Errorf("failed to get report: %w", err)
	}

	if report.ID == constant.Empty {
		return failure.NotFound("report not found") // nolint:wrapcheck
	}

	if role != constant.RoleAdmin && report.HunterID != user {
		return failure.Forbidden("report belongs to another hunter") // nolint:wrapcheck
	}

	if req.ReviewRating == nil && req.ReviewText == nil {
		return failure.BadRequestFromString("review update cannot be empty") // nolint:wrapcheck
	}

	updatedFields := map[string]any{
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if req.ReviewRating != nil {
		updatedFields[model.FieldReviewRating] = req.ReviewRating
	}

	if req.ReviewText != nil {
		updatedFields[model.FieldReviewText] = req.ReviewText
	}

	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update report review")

		return fmt.Errorf("failed to update report review: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetReport, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete report from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllReport)
	}()

	return nil
}

func (s *serviceImpl) GetBySession(ctx context.Context, sessionID string) (res dto.ReportResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetBySession")
	defer scope.End()
	defer scope.TraceIfError(nil)

	report, err := s.repo.Get(ctx, shared.FilterByID(sessionID, model.FieldSessionID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get report")

		return res, fmt.Errorf("failed to get report: %w", err)
	}

	if report.ID == constant.Empty {
		return res, failure.NotFound("report not found") // nolint:wrapcheck
	}

	res.FromModel(report)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetReportsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllReport, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reports")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reports")

		return res, fmt.Errorf("failed to count reports: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reports")

		return res, fmt.Errorf("failed to get reports: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reports to cache")
		}
	}()

	return res, nil
}
