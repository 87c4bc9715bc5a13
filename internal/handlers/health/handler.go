package health

import (
	"net/http"
	"resalab/shared/constant"
	"resalab/transport/http/lifecycle"
	"resalab/transport/http/response"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	state *lifecycle.State
}

func New(state *lifecycle.State) Handler {
	return Handler{
		state: state,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/health", handler.Health)
}

// Health reports whether the server still accepts traffic.
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} response.Message
// @Failure 503 {object} response.Message
// @Router /health [get]
func (handler *Handler) Health(writer http.ResponseWriter, _ *http.Request) {
	switch handler.state.Get() {
	case lifecycle.ServerStateReady:
		response.WithMessage(writer, http.StatusOK, constant.ResponseMessageOK)
	case lifecycle.ServerStateInGracePeriod:
		response.WithPreparingShutdown(writer)
	default:
		response.WithUnhealthy(writer)
	}
}
