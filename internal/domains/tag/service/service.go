package service

import (
	"context"
	"fmt"

	"fieldbook/config"
	"fieldbook/infras/otel"
	"fieldbook/infras/s3"
	fieldModel "fieldbook/internal/domains/field/model"
	fieldRepo "fieldbook/internal/domains/field/repository"
	reportModel "fieldbook/internal/domains/report/model"
	reportRepo "fieldbook/internal/domains/report/repository"
	"fieldbook/internal/domains/tag/model"
	"fieldbook/internal/domains/tag/model/dto"
	"fieldbook/internal/domains/tag/repository"
	userModel "fieldbook/internal/domains/user/model"
	userRepo "fieldbook/internal/domains/user/repository"
	"fieldbook/shared"
	"fieldbook/shared/base64"
	"fieldbook/shared/constant"
	gDto "fieldbook/shared/dto"
	"fieldbook/shared/failure"
	"fieldbook/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	qrcode "github.com/skip2/go-qrcode"
)

const (
	qrCodeDirectory = "qr_codes"
	photoDirectory  = "animal_photos"
	qrCodeSize      = 256
)

type Tag interface {
	Create(ctx context.Context, req dto.CreateTagRequest) (dto.TagResponse, error)
	Verify(ctx context.Context, tagNumber string) (dto.VerifyTagResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetTagsResponse, error)
}

type serviceImpl struct {
	repo       repository.Tag
	reportRepo reportRepo.Report
	fieldRepo  fieldRepo.Field
	userRepo   userRepo.User
	cfg        *config.Config
	s3         s3.S3
	otel       otel.Otel
}

func New(repo repository.Tag, reportRepo reportRepo.Report, fieldRepo fieldRepo.Field, userRepo userRepo.User, cfg *config.Config, s3 s3.S3, otel otel.Otel) Tag {
	return &serviceImpl{
		repo:       repo,
		reportRepo: reportRepo,
		fieldRepo:  fieldRepo,
		userRepo:   userRepo,
		cfg:        cfg,
		s3:         s3,
		otel:       otel,
	}
}

// Create mints a tag for one harvested animal. The tag number is a fresh uuid,
// never reused. Both artifacts, the QR code pointing at the public
// verification URL and the animal photo, are uploaded before the row is
// inserted; a tag row never references a missing artifact. If the insert
// fails the uploads are removed.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateTagRequest) (res dto.TagResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	report, err := s.reportRepo.Get(ctx, shared.FilterByID(req.ReportID, reportModel.FieldID, reportModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get report")

		return res, fmt.Errorf("failed to get report: %w", err)
	}

	if report.ID == constant.Empty {
		return res, failure.NotFound("report not found") // nolint:wrapcheck
	}

	photoData, photoContentType, err := base64.Decode(req.Photo)
	if err != nil {
		return res, failure.BadRequestFromString("photo must be a base64 data URI") // nolint:wrapcheck
	}

	tagNumber := uuid.NewString()
	verifyURL := fmt.Sprintf("%s/v1/verify/%s", s.cfg.App.VerifyBaseURL, tagNumber)

	qrData, err := qrcode.Encode(verifyURL, qrcode.Medium, qrCodeSize)
	if err != nil {
		log.Error().Err(err).Msg("failed to render QR code")

		return res, fmt.Errorf("failed to render QR code: %w", err)
	}

	bucketName := s.cfg.External.S3.BucketName

	qrCodeURL, err := s.s3.UploadFileBytes(ctx, bucketName, qrCodeDirectory, tagNumber+".png", "image/png", qrData)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload QR code")

		return res, fmt.Errorf("failed to upload QR code: %w", err)
	}

	photoURL, err := s.s3.UploadFileBytes(ctx, bucketName, photoDirectory, tagNumber+extensionFor(photoContentType), photoContentType, photoData)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload photo")

		_ = s.s3.DeleteFile(ctx, bucketName, qrCodeDirectory, tagNumber+".png")

		return res, fmt.Errorf("failed to upload photo: %w", err)
	}

	tag := req.ToModel(tagNumber, report.HunterID, report.FieldID, photoURL, qrCodeURL, user)

	if err = s.repo.Insert(ctx, tag); err != nil {
		log.Error().Err(err).Msg("failed to insert tag")

		_ = s.s3.DeleteFile(ctx, bucketName, qrCodeDirectory, tagNumber+".png")
		_ = s.s3.DeleteFile(ctx, bucketName, photoDirectory, tagNumber+extensionFor(photoContentType))

		return res, fmt.Errorf("failed to insert tag: %w", err)
	}

	res.FromModel(tag)

	return res, nil
}

// Verify is the public lookup behind the QR code. An unknown tag number is a
// NotFound, distinct from a persistence failure.
func (s *serviceImpl) Verify(ctx context.Context, tagNumber string) (res dto.VerifyTagResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Verify")
	defer scope.End()
	defer scope.TraceIfError(nil)

	tag, err := s.repo.Get(ctx, shared.FilterByID(tagNumber, model.FieldTagNumber, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get tag")

		return res, fmt.Errorf("failed to get tag: %w", err)
	}

	if tag.ID == constant.Empty {
		return res, failure.NotFound("tag not found") // nolint:wrapcheck
	}

	res.TagNumber = tag.TagNumber
	res.Species = tag.Species
	res.Condition = tag.Condition
	res.PhotoURL = tag.PhotoURL
	res.TaggedAt = timezone.Format(tag.CreatedAt, constant.DateFormat)

	hunter, err := s.userRepo.Get(ctx, shared.FilterByID(tag.HunterID, userModel.FieldID, userModel.TableName))
	if err == nil {
		res.HunterName = hunter.FullName
	}

	field, err := s.fieldRepo.Get(ctx, shared.FilterByID(tag.FieldID, fieldModel.FieldID, fieldModel.TableName))
	if err == nil {
		res.FieldName = field.Name
	}

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetTagsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count tags")

		return res, fmt.Errorf("failed to count tags: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get tags")

		return res, fmt.Errorf("failed to get tags: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	default:
		return ".jpg"
	}
}
