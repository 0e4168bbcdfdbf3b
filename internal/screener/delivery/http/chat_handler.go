package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"golang-bandar-screener/internal/screener/dto"
	"golang-bandar-screener/internal/screener/repository"
	"golang-bandar-screener/internal/screener/service"
	"golang-bandar-screener/pkg/logger"
)

// ChatHandler proxies chat prompts and manages the chat rules.
type ChatHandler struct {
	chatService service.ChatService
	logger      *logger.Logger
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chatService service.ChatService, logger *logger.Logger) *ChatHandler {
	return &ChatHandler{chatService: chatService, logger: logger}
}

// RegisterRoutes registers the chat proxy route to the Echo group.
func (h *ChatHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.Chat)
}

// RegisterRulesRoutes registers the chat rules routes to the Echo group.
func (h *ChatHandler) RegisterRulesRoutes(g *echo.Group) {
	g.POST("/reload", h.ReloadRules)
}

// Chat godoc
// @Summary Send a chat prompt
// @Description Answers identity questions from the chat rules and forwards every other prompt to the AI provider
// @Tags chat
// @Accept  json
// @Produce  json
// @Param   request  body    dto.ChatRequest   true    "Prompt"
// @Success 200 {object} dto.ChatResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /chat [post]
func (h *ChatHandler) Chat(c echo.Context) error {
	var req dto.ChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "prompt is required"})
	}

	resp, err := h.chatService.Chat(c.Request().Context(), req.Prompt)
	if err != nil {
		var upstream *repository.UpstreamError
		if errors.As(err, &upstream) {
			h.logger.Warn("Chat API responded with an error", logger.IntField("status_code", upstream.StatusCode))
			if json.Valid(upstream.Body) {
				return c.JSONBlob(upstream.StatusCode, upstream.Body)
			}
			return c.JSON(upstream.StatusCode, dto.ErrorResponse{Error: string(upstream.Body)})
		}
		h.logger.Error("Error proxying to chat API", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to communicate with API"})
	}

	return c.JSONBlob(http.StatusOK, resp)
}

// ReloadRules godoc
// @Summary Reload chat rules
// @Description Reads the chat rules file again
// @Tags chat
// @Produce  json
// @Success 200 {object} dto.ChatRules
// @Failure 500 {object} dto.ErrorResponse
// @Router /rules/reload [post]
func (h *ChatHandler) ReloadRules(c echo.Context) error {
	rules, err := h.chatService.Reload(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to reload chat rules", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, rules)
}
