package http

import (
	"context"
	"net/http"

	"btc-signal-bot/internal/dto"
	"btc-signal-bot/internal/service"
	"btc-signal-bot/pkg/utils"

	"github.com/labstack/echo/v4"
)

type HttpAPIHandler struct {
	echo    *echo.Echo
	service *service.Service
}

func NewHttpAPIHandler(echo *echo.Echo, service *service.Service) *HttpAPIHandler {
	return &HttpAPIHandler{
		echo:    echo,
		service: service,
	}
}

func (h *HttpAPIHandler) SetupRoutes() {
	h.echo.GET("/health", h.Health)

	base := h.echo.Group("/api")
	base.GET("/signal/latest", h.LatestSignal)
	base.POST("/jobs/signal-check", h.RunSignalCheck)
}

func (h *HttpAPIHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("ok", nil))
}

func (h *HttpAPIHandler) LatestSignal(c echo.Context) error {
	eval := h.service.SignalService.LastEvaluation()
	if eval == nil {
		return c.JSON(http.StatusNotFound, dto.NewBaseResponse(http.StatusNotFound, "no evaluation has completed yet", nil))
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("latest evaluation", eval))
}

// RunSignalCheck triggers one check cycle without waiting for it; the
// scheduler's daily run is unaffected.
func (h *HttpAPIHandler) RunSignalCheck(c echo.Context) error {
	utils.GoSafe(func() {
		_ = h.service.SignalService.CheckAndNotify(context.Background())
	})
	return c.JSON(http.StatusAccepted, dto.NewBaseResponse(http.StatusAccepted, "signal check started", nil))
}
