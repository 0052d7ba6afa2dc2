package payment

import (
	"net/http"

	"fieldbook/infras/otel"
	"fieldbook/internal/domains/payment/model/dto"
	"fieldbook/internal/domains/payment/service"
	"fieldbook/shared/constant"
	"fieldbook/shared/validator"
	"fieldbook/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Payment
	otel    otel.Otel
}

func New(service service.Payment, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/payments", func(routerGroup chi.Router) {
		routerGroup.Post("/simulate", handler.SimulatePayment)
	})
}

// SimulatePayment validates card details and mints a payment reference.
// @Summary Simulate a payment
// @Description Validate card details and mint a payment reference for a booking. No charge is made.
// @Tags Payment
// @Accept json
// @Produce json
// @Param request body dto.SimulatePaymentRequest true "Payment details"
// @Success 200 {object} response.Data[dto.SimulatePaymentResponse] "Payment reference"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/payments/simulate [post]
// @Security BearerAuth
func (handler *Handler) SimulatePayment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SimulatePayment")
	defer scope.End()

	var req dto.SimulatePaymentRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	payment, err := handler.service.Simulate(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to simulate payment")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Payment simulated successfully")

	response.WithJSON(w, http.StatusOK, payment)
}
