package session

import (
	"net/http"

	"fieldbook/infras/otel"
	"fieldbook/internal/domains/session/model"
	"fieldbook/internal/domains/session/service"
	"fieldbook/shared/constant"
	gDto "fieldbook/shared/dto"
	"fieldbook/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Session
	otel    otel.Otel
}

func New(service service.Session, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/sessions", func(routerGroup chi.Router) {
		routerGroup.Post("/bookings/{id}", handler.EnsureSession)
		routerGroup.Get("/bookings/{id}", handler.GetSessionByBooking)
		routerGroup.Post("/{id}/start", handler.StartSession)
		routerGroup.Post("/{id}/end", handler.EndSession)
		routerGroup.Get("/", handler.GetSessions)
	})
}

// EnsureSession lazily creates the hunt session for a booking.
// @Summary Ensure a hunt session
// @Description Create the hunt session for a confirmed booking on its hunt day, or return the existing one.
// @Tags Session
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.SessionResponse] "Hunt session"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/sessions/bookings/{id} [post]
// @Security BearerAuth
func (handler *Handler) EnsureSession(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".EnsureSession")
	defer scope.End()

	bookingID := chi.URLParam(r, constant.RequestParamID)

	session, err := handler.service.EnsureForBooking(ctx, bookingID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to ensure session")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Session ensured successfully")

	response.WithJSON(w, http.StatusOK, session)
}

// GetSessionByBooking retrieves the hunt session of a booking.
// @Summary Get session by booking
// @Description Retrieve the hunt session attached to a booking.
// @Tags Session
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.SessionResponse] "Hunt session"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/sessions/bookings/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetSessionByBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSessionByBooking")
	defer scope.End()

	bookingID := chi.URLParam(r, constant.RequestParamID)

	session, err := handler.service.GetByBooking(ctx, bookingID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get session by booking")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Session retrieved successfully")

	response.WithJSON(w, http.StatusOK, session)
}

// StartSession activates a hunt session.
// @Summary Start a hunt session
// @Description Move a session from not_started to active and stamp the start time.
// @Tags Session
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Message "Session started successfully"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/sessions/{id}/start [post]
// @Security BearerAuth
func (handler *Handler) StartSession(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".StartSession")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Start(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to start session")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Session started successfully")

	response.WithMessage(w, http.StatusOK, "Session started successfully")
}

// EndSession completes a hunt session.
// @Summary End a hunt session
// @Description Complete an active session. The hunt report must be filed first.
// @Tags Session
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Message "Session ended successfully"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/sessions/{id}/end [post]
// @Security BearerAuth
func (handler *Handler) EndSession(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".EndSession")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.End(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to end session")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Session ended successfully")

	response.WithMessage(w, http.StatusOK, "Session ended successfully")
}

// GetSessions retrieves hunt sessions with optional filters.
// @Summary Get all sessions
// @Description Retrieve hunt sessions with optional hunter, field, and status filters.
// @Tags Session
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param hunter_id query string false "Filter by hunter"
// @Param field_id query string false "Filter by field"
// @Param status query string false "Filter by status"
// @Success 200 {object} response.Data[dto.GetSessionsResponse] "List of sessions"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/sessions [get]
// @Security BearerAuth
func (handler *Handler) GetSessions(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSessions")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
	}

	for _, field := range []string{model.FieldHunterID, model.FieldFieldID, model.FieldStatus} {
		if value := r.URL.Query().Get(field); value != "" {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				Field:    field,
				Operator: gDto.FilterOperatorEq,
				Value:    value,
				Table:    model.TableName,
			})
		}
	}

	sessions, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get sessions")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Sessions retrieved successfully")

	response.WithJSON(w, http.StatusOK, sessions)
}
