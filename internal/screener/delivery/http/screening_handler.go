package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"golang-bandar-screener/internal/screener/dto"
	"golang-bandar-screener/internal/screener/repository"
	"golang-bandar-screener/internal/screener/service"
	"golang-bandar-screener/pkg/logger"
)

// ScreeningHandler handles HTTP requests that trigger screening runs.
type ScreeningHandler struct {
	screeningService service.ScreeningService
	logger           *logger.Logger
}

// NewScreeningHandler creates a new ScreeningHandler.
func NewScreeningHandler(screeningService service.ScreeningService, logger *logger.Logger) *ScreeningHandler {
	return &ScreeningHandler{screeningService: screeningService, logger: logger}
}

// RegisterRoutes registers the screening routes to the Echo group.
func (h *ScreeningHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.RunScreening)
}

// RunScreening godoc
// @Summary Run a screening
// @Description Fetches market data for every symbol, scores and ranks it and asks the AI provider for a recommendation
// @Tags screenings
// @Produce  json
// @Produce  html
// @Param   format  query    string false    "Set to html to receive only the rendered fragment"
// @Success 200 {object} dto.ScreeningResult
// @Failure 409 {object} dto.ScreeningErrorResponse
// @Failure 500 {object} dto.ScreeningErrorResponse
// @Failure 502 {object} dto.ScreeningErrorResponse
// @Router /screenings [post]
func (h *ScreeningHandler) RunScreening(c echo.Context) error {
	result, err := h.screeningService.Run(c.Request().Context(), nil)
	if err != nil {
		return h.handleError(c, err)
	}

	if c.QueryParam("format") == "html" {
		return c.HTML(http.StatusOK, result.HTML)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *ScreeningHandler) handleError(c echo.Context, err error) error {
	resp := dto.ScreeningErrorResponse{Error: err.Error()}
	var runErr *service.RunError
	if errors.As(err, &runErr) {
		resp.RunID = runErr.RunID
		resp.Progress = runErr.Progress
	}

	var upstream *repository.UpstreamError
	switch {
	case errors.Is(err, service.ErrRunInProgress):
		return c.JSON(http.StatusConflict, resp)
	case errors.As(err, &upstream),
		errors.Is(err, repository.ErrInvalidAIResponse),
		errors.Is(err, repository.ErrInvalidSymbolList),
		errors.Is(err, service.ErrNoStockData):
		h.logger.Error("Screening run failed on an upstream", logger.ErrorField(err))
		return c.JSON(http.StatusBadGateway, resp)
	default:
		h.logger.Error("Screening run failed", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, resp)
	}
}
