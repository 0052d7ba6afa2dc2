package field

import (
	"net/http"

	"fieldbook/infras/otel"
	"fieldbook/internal/domains/field/model"
	"fieldbook/internal/domains/field/model/dto"
	"fieldbook/internal/domains/field/service"
	"fieldbook/shared/constant"
	gDto "fieldbook/shared/dto"
	"fieldbook/shared/validator"
	"fieldbook/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Field
	otel    otel.Otel
}

func New(service service.Field, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/fields", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetFields)
		routerGroup.Get("/{id}", handler.GetFieldByID)
		routerGroup.Get("/{id}/quota", handler.GetFieldQuota)
		routerGroup.Patch("/{id}/blocked-dates", handler.UpdateBlockedDates)
	})
}

// GetFields retrieves all hunting fields.
// @Summary Get all fields
// @Description Retrieve all hunting fields with optional filtering and pagination.
// @Tags Field
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Param location query string false "Filter by location"
// @Param field_type query string false "Filter by field type"
// @Success 200 {object} response.Data[dto.GetFieldsResponse] "List of fields"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/fields [get]
// @Security BearerAuth
func (handler *Handler) GetFields(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFields")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldName,
				Operator: gDto.FilterOperatorLike,
				Value:    r.URL.Query().Get(model.FieldName),
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldLocation,
				Operator: gDto.FilterOperatorLike,
				Value:    r.URL.Query().Get(model.FieldLocation),
				Table:    model.TableName,
			},
		},
	}

	if fieldType := r.URL.Query().Get(model.FieldType); fieldType != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldType,
			Operator: gDto.FilterOperatorEq,
			Value:    fieldType,
			Table:    model.TableName,
		})
	}

	fields, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get fields")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Fields retrieved successfully")

	response.WithJSON(w, http.StatusOK, fields)
}

// GetFieldByID retrieves a field by its ID.
// @Summary Get a field by ID
// @Description Retrieve a hunting field by its unique identifier.
// @Tags Field
// @Accept json
// @Produce json
// @Param id path string true "Field ID"
// @Success 200 {object} response.Data[dto.FieldResponse] "Field details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/fields/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetFieldByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFieldByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	field, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get field by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Field retrieved successfully")

	response.WithJSON(w, http.StatusOK, field)
}

// GetFieldQuota retrieves the harvest quota summary for a field.
// @Summary Get field quota
// @Description Retrieve the harvest quota summary (total, remaining, exhaustion) for a field.
// @Tags Field
// @Accept json
// @Produce json
// @Param id path string true "Field ID"
// @Success 200 {object} response.Data[dto.QuotaSummaryResponse] "Quota summary"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/fields/{id}/quota [get]
// @Security BearerAuth
func (handler *Handler) GetFieldQuota(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFieldQuota")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	quota, err := handler.service.QuotaSummary(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get field quota")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Field quota retrieved successfully")

	response.WithJSON(w, http.StatusOK, quota)
}

// UpdateBlockedDates replaces the blocked dates of a field.
// @Summary Update field blocked dates
// @Description Replace the set of dates the outfitter has closed for bookings.
// @Tags Field
// @Accept json
// @Produce json
// @Param id path string true "Field ID"
// @Param request body dto.UpdateBlockedDatesRequest true "Blocked dates"
// @Success 200 {object} response.Message "Blocked dates updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/fields/{id}/blocked-dates [patch]
// @Security BearerAuth
func (handler *Handler) UpdateBlockedDates(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBlockedDates")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	var req dto.UpdateBlockedDatesRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpdateBlockedDates(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update blocked dates")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Blocked dates updated successfully")

	response.WithMessage(w, http.StatusOK, "Blocked dates updated successfully")
}
