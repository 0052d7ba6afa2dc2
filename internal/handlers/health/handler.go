package health

import (
	"net/http"

	"fieldbook/transport/http/response"

	"github.com/go-chi/chi/v5"
)

type Handler struct{}

func New() Handler {
	return Handler{}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/health", handler.Health)
}

// Health reports process liveness.
// @Summary Health check
// @Description Report process liveness.
// @Tags Health
// @Produce json
// @Success 200 {object} response.Message "OK"
// @Router /v1/health [get]
func (handler *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	response.WithMessage(w, http.StatusOK, "OK")
}
