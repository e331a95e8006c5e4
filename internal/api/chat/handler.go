package chat

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/liliang-cn/claimwizard/internal/api/httperr"
	"github.com/liliang-cn/claimwizard/internal/api/middleware"
	"github.com/liliang-cn/claimwizard/internal/domain"
	"github.com/liliang-cn/claimwizard/internal/service"
)

// Handler handles chat API requests
type Handler struct {
	chatService *service.ChatService
}

// NewHandler creates a new chat handler
func NewHandler(chatService *service.ChatService) *Handler {
	return &Handler{chatService: chatService}
}

// RegisterRoutes registers chat routes
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("", h.Get)
	r.POST("/open", h.Open)
	r.POST("/close", h.Close)
	r.POST("/messages", h.Send)
	r.POST("/messages/stream", h.SendStream)
}

// Get returns the chat panel state
func (h *Handler) Get(c *gin.Context) {
	v, err := h.chatService.Get(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		httperr.JSON(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// Open opens the chat panel
func (h *Handler) Open(c *gin.Context) {
	v, err := h.chatService.Open(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		httperr.JSON(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// Close closes the chat panel, dropping pending replies
func (h *Handler) Close(c *gin.Context) {
	v, err := h.chatService.Close(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		httperr.JSON(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// Send posts a message. The reply is appended later; poll Get for it.
func (h *Handler) Send(c *gin.Context) {
	var req domain.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	v, _, err := h.chatService.Send(c.Request.Context(), middleware.SessionID(c), &req)
	if err != nil {
		httperr.JSON(c, err)
		return
	}

	c.JSON(http.StatusAccepted, v)
}

// SendStream posts a message and streams the reply (SSE)
func (h *Handler) SendStream(c *gin.Context) {
	var req domain.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	stream, err := h.chatService.ChatStream(c.Request.Context(), middleware.SessionID(c), &req)
	if err != nil {
		httperr.JSON(c, err)
		return
	}

	// Set SSE headers
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		chunk, ok := <-stream
		if !ok {
			return false
		}
		writeSSE(w, chunk)
		return true
	})
}

func writeSSE(w io.Writer, chunk domain.StreamChunk) {
	data, _ := json.Marshal(chunk)
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", chunk.Type, string(data))
}
