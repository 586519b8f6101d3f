package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cicd-demo/board-service/internal/application"
	"github.com/cicd-demo/board-service/internal/platform/apperror"
	"github.com/cicd-demo/board-service/internal/platform/response"
)

// MessageHandler handles HTTP requests for the message board.
type MessageHandler struct {
	service *application.MessageService
	now     func() time.Time
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(service *application.MessageService) *MessageHandler {
	return &MessageHandler{service: service, now: time.Now}
}

// RegisterRoutes registers the message routes under r (normally the /api group).
func (h *MessageHandler) RegisterRoutes(r *gin.RouterGroup) {
	messages := r.Group("/messages")
	{
		messages.GET("", h.ListMessages)
		messages.POST("", h.CreateMessage)
		messages.GET("/health", h.Health)
	}
}

// ListMessages handles GET /api/messages.
func (h *MessageHandler) ListMessages(c *gin.Context) {
	result, err := h.service.ListMessages(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// CreateMessage handles POST /api/messages.
func (h *MessageHandler) CreateMessage(c *gin.Context) {
	var req application.CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.NewValidationError("invalid request body: "+err.Error()))
		return
	}

	result, err := h.service.CreateMessage(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// Health handles GET /api/messages/health.
func (h *MessageHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": h.now().UTC().Format(time.RFC3339Nano),
	})
}
