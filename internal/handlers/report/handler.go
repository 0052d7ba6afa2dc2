package report

import (
	"net/http"

	"fieldbook/infras/otel"
	"fieldbook/internal/domains/report/model"
	"fieldbook/internal/domains/report/model/dto"
	"fieldbook/internal/domains/report/service"
	"fieldbook/shared/constant"
	gDto "fieldbook/shared/dto"
	"fieldbook/shared/validator"
	"fieldbook/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Report
	otel    otel.Otel
}

func New(service service.Report, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/reports", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateReport)
		routerGroup.Get("/", handler.GetReports)
		routerGroup.Get("/sessions/{id}", handler.GetReportBySession)
		routerGroup.Patch("/{id}/review", handler.UpdateReview)
	})
}

// CreateReport files the hunt report for an active session.
// @Summary Create a hunt report
// @Description File the hunt report for an active session. Quota depletion commits with the insert.
// @Tags Report
// @Accept json
// @Produce json
// @Param request body dto.CreateReportRequest true "Report details"
// @Success 201 {object} response.Data[dto.ReportResponse] "Report created"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reports [post]
// @Security BearerAuth
func (handler *Handler) CreateReport(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateReport")
	defer scope.End()

	var req dto.CreateReportRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	report, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create report")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Report created successfully")

	response.WithJSON(w, http.StatusCreated, report)
}

// GetReports retrieves hunt reports with optional filters.
// @Summary Get all reports
// @Description Retrieve hunt reports with optional field and hunter filters.
// @Tags Report
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param field_id query string false "Filter by field"
// @Param hunter_id query string false "Filter by hunter"
// @Success 200 {object} response.Data[dto.GetReportsResponse] "List of reports"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reports [get]
// @Security BearerAuth
func (handler *Handler) GetReports(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReports")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
	}

	for _, field := range []string{model.FieldFieldID, model.FieldHunterID} {
		if value := r.URL.Query().Get(field); value != "" {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				Field:    field,
				Operator: gDto.FilterOperatorEq,
				Value:    value,
				Table:    model.TableName,
			})
		}
	}

	reports, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get reports")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reports retrieved successfully")

	response.WithJSON(w, http.StatusOK, reports)
}

// GetReportBySession retrieves the report filed for a session.
// @Summary Get report by session
// @Description Retrieve the hunt report filed for a session.
// @Tags Report
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Data[dto.ReportResponse] "Report details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reports/sessions/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetReportBySession(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReportBySession")
	defer scope.End()

	sessionID := chi.URLParam(r, constant.RequestParamID)

	report, err := handler.service.GetBySession(ctx, sessionID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get report by session")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Report retrieved successfully")

	response.WithJSON(w, http.StatusOK, report)
}

// UpdateReview sets the review on a filed report.
// @Summary Update report review
// @Description Set the rating and review text on a filed report. Harvest data is immutable.
// @Tags Report
// @Accept json
// @Produce json
// @Param id path string true "Report ID"
// @Param request body dto.UpdateReviewRequest true "Review"
// @Success 200 {object} response.Message "Review updated successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reports/{id}/review [patch]
// @Security BearerAuth
func (handler *Handler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateReview")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	var req dto.UpdateReviewRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpdateReview(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update review")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Review updated successfully")

	response.WithMessage(w, http.StatusOK, "Review updated successfully")
}
