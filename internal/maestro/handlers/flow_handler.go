package handlers

import (
	"net/http"

	"covoit/internal/maestro/service"
	apperrors "covoit/pkg/errors"
	httputil "covoit/pkg/http"
	"covoit/pkg/logger"
	"covoit/pkg/middleware"

	"github.com/julienschmidt/httprouter"
)

type FlowHandler struct {
	service *service.MaestroService
	log     *logger.Logger
}

func NewFlowHandler(service *service.MaestroService, log *logger.Logger) *FlowHandler {
	return &FlowHandler{
		service: service,
		log:     log,
	}
}

type ExecuteFlowRequest struct {
	Flow  string         `json:"flow"`
	Input map[string]any `json:"input"`
}

type ExecuteFlowResponse struct {
	Success bool           `json:"success"`
	Output  map[string]any `json:"output,omitempty"`
}

type ListFlowsResponse struct {
	Flows []string `json:"flows"`
}

func (h *FlowHandler) ExecuteFlow(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req ExecuteFlowRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.log.Warn("failed to decode request", "request_id", middleware.RequestID(r), "error", err)
		httputil.WriteError(w, err)
		return
	}
	h.execute(w, r, req)
}

// ExecuteNamedFlow takes the flow from the path and the body as its input.
func (h *FlowHandler) ExecuteNamedFlow(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	req := ExecuteFlowRequest{Flow: ps.ByName("flow")}
	if err := httputil.DecodeJSON(r, &req.Input); err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.execute(w, r, req)
}

func (h *FlowHandler) execute(w http.ResponseWriter, r *http.Request, req ExecuteFlowRequest) {
	if req.Flow == "" {
		httputil.WriteError(w, apperrors.InvalidInput("flow name is required"))
		return
	}

	h.log.Info("executing flow", "flow", req.Flow, "request_id", middleware.RequestID(r))

	output, err := h.service.ExecuteFlow(r.Context(), req.Flow, req.Input)
	if err != nil {
		appErr := apperrors.AsAppError(err)
		if appErr.HTTPStatus >= 500 || appErr.HTTPStatus == apperrors.StatusNetwork {
			h.log.Error("flow execution failed", "flow", req.Flow, "error", err)
		} else {
			h.log.Warn("flow rejected", "flow", req.Flow, "code", appErr.Code, "error", err)
		}
		httputil.WriteError(w, appErr)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, ExecuteFlowResponse{
		Success: true,
		Output:  output,
	})
}

func (h *FlowHandler) ListFlows(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	httputil.WriteJSON(w, http.StatusOK, ListFlowsResponse{
		Flows: h.service.GetAvailableFlows(),
	})
}

func (h *FlowHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/maestro/execute", h.ExecuteFlow)
	router.POST("/api/v1/maestro/flows/:flow", h.ExecuteNamedFlow)
	router.GET("/api/v1/maestro/flows", h.ListFlows)
}
