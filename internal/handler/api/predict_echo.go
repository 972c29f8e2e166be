package api

import (
	"errors"
	"net/http"

	"fraudscore/internal/domain/models"
	"fraudscore/internal/usecase"
	xhttp "fraudscore/pkg/http"
	xlogger "fraudscore/pkg/logger"

	"github.com/labstack/echo/v4"
)

// PredictEchoHandler exposes the fraud prediction endpoint over Echo.
type PredictEchoHandler struct {
	logger *xlogger.Logger
	scorer *usecase.FraudScorer
}

func NewPredictEchoHandler(logger *xlogger.Logger, scorer *usecase.FraudScorer) *PredictEchoHandler {
	return &PredictEchoHandler{logger: logger, scorer: scorer}
}

func (h *PredictEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/predict", h.Predict)
	e.GET("/healthz", h.Health)
}

// Predict accepts transaction features and returns a fraud prediction.
func (h *PredictEchoHandler) Predict(c echo.Context) error {
	req := &models.PredictRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.scorer.Predict(c.Request().Context(), req.Features())
	if err != nil {
		switch {
		case errors.Is(err, models.ErrModelUnavailable):
			return xhttp.AppErrorResponse(c, xhttp.ServiceUnavailableError("Model is not loaded."))
		case errors.Is(err, models.ErrInvalidFeatures):
			return xhttp.AppErrorResponse(c, xhttp.BadRequestError("feature values must be finite numbers").WithError(err))
		default:
			h.logger.Error("prediction failed", xlogger.Error(err))
			return xhttp.AppErrorResponse(c, err)
		}
	}

	return c.JSON(http.StatusOK, res)
}

// Health reports readiness. The service is reachable even when scoring is
// degraded; model availability is surfaced explicitly.
func (h *PredictEchoHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, models.HealthStatus{
		Status:      "ok",
		ModelLoaded: h.scorer.Available(),
	})
}
