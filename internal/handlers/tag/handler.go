package tag

import (
	"net/http"

	"fieldbook/infras/otel"
	"fieldbook/internal/domains/tag/model"
	"fieldbook/internal/domains/tag/model/dto"
	"fieldbook/internal/domains/tag/service"
	"fieldbook/shared/constant"
	gDto "fieldbook/shared/dto"
	"fieldbook/shared/validator"
	"fieldbook/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Tag
	otel    otel.Otel
}

func New(service service.Tag, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/tags", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateTag)
		routerGroup.Get("/", handler.GetTags)
	})
}

// PublicRouter mounts the unauthenticated verification endpoint the QR codes
// point at.
func (handler *Handler) PublicRouter(router chi.Router) {
	router.Get("/verify/{tag}", handler.VerifyTag)
}

// CreateTag mints a tag for one harvested animal.
// @Summary Create an animal tag
// @Description Tag one harvested animal: mint a tag number, render its QR code, store the artifacts, persist the tag.
// @Tags Tag
// @Accept json
// @Produce json
// @Param request body dto.CreateTagRequest true "Tag details with base64 photo"
// @Success 201 {object} response.Data[dto.TagResponse] "Tag created"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tags [post]
// @Security BearerAuth
func (handler *Handler) CreateTag(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateTag")
	defer scope.End()

	var req dto.CreateTagRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	tag, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create tag")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Tag created successfully")

	response.WithJSON(w, http.StatusCreated, tag)
}

// GetTags retrieves animal tags with optional filters.
// @Summary Get all tags
// @Description Retrieve animal tags with optional report and hunter filters.
// @Tags Tag
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param report_id query string false "Filter by report"
// @Param hunter_id query string false "Filter by hunter"
// @Success 200 {object} response.Data[dto.GetTagsResponse] "List of tags"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tags [get]
// @Security BearerAuth
func (handler *Handler) GetTags(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTags")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
	}

	for _, field := range []string{model.FieldReportID, model.FieldHunterID} {
		if value := r.URL.Query().Get(field); value != "" {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				Field:    field,
				Operator: gDto.FilterOperatorEq,
				Value:    value,
				Table:    model.TableName,
			})
		}
	}

	tags, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get tags")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Tags retrieved successfully")

	response.WithJSON(w, http.StatusOK, tags)
}

// VerifyTag is the public lookup behind the QR code on a tag.
// @Summary Verify an animal tag
// @Description Public lookup of a tag by its tag number. No authentication required.
// @Tags Tag
// @Accept json
// @Produce json
// @Param tag path string true "Tag number"
// @Success 200 {object} response.Data[dto.VerifyTagResponse] "Tag details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/verify/{tag} [get]
func (handler *Handler) VerifyTag(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".VerifyTag")
	defer scope.End()

	tagNumber := chi.URLParam(r, constant.RequestParamTag)

	tag, err := handler.service.Verify(ctx, tagNumber)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to verify tag")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Tag verified successfully")

	response.WithJSON(w, http.StatusOK, tag)
}
